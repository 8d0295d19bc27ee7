// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filter

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/normalize"
)

type DateRange string

const (
	RangeAll     DateRange = "all"
	RangeToday   DateRange = "today"
	RangeWeek    DateRange = "week"
	RangeMonth   DateRange = "month"
	RangeQuarter DateRange = "quarter"
)

var ErrInvalidDateRange = errors.New("invalid date range")

// ParseDateRange accepts the range names case-insensitively. An empty
// string means RangeAll.
func ParseDateRange(s string) (DateRange, error) {
	switch d := DateRange(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return RangeAll, nil
	case RangeAll, RangeToday, RangeWeek, RangeMonth, RangeQuarter:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDateRange, s)
	}
}

// Cutoff returns the exclusive lower bound of d relative to now, in now's
// location. ok is false for RangeAll.
func (d DateRange) Cutoff(now time.Time) (cutoff time.Time, ok bool) {
	y, m, day := now.Date()
	loc := now.Location()
	switch d {
	case RangeToday:
		return time.Date(y, m, day, 0, 0, 0, 0, loc), true
	case RangeWeek:
		return time.Date(y, m, day-7, 0, 0, 0, 0, loc), true
	case RangeMonth:
		return time.Date(y, m-1, day, 0, 0, 0, 0, loc), true
	case RangeQuarter:
		return time.Date(y, m-3, day, 0, 0, 0, 0, loc), true
	default:
		return time.Time{}, false
	}
}

// Filters selects the responses that reach the aggregators. Questions maps a
// question ID to its allow-list; an empty allow-list does not filter.
type Filters struct {
	DateRange DateRange
	Questions map[string][]string
}

// Active reports whether f can exclude anything.
func (f Filters) Active() bool {
	if _, ok := f.DateRange.Cutoff(time.Time{}); ok {
		return true
	}
	for _, allowed := range f.Questions {
		if len(allowed) > 0 {
			return true
		}
	}
	return false
}

// Apply returns the records that pass every filter, in their original
// order. The result never aliases records.
func Apply(records []models.ResponseRecord, f Filters, now time.Time) []models.ResponseRecord {
	cutoff, dated := f.DateRange.Cutoff(now)

	out := make([]models.ResponseRecord, 0, len(records))
	for _, rec := range records {
		if dated && !inRange(rec, cutoff, now) {
			continue
		}
		if !matchesQuestions(rec, f.Questions) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func inRange(rec models.ResponseRecord, cutoff, now time.Time) bool {
	at, ok := rec.SubmittedAt()
	if !ok {
		return false
	}
	return at.After(cutoff) && !at.After(now)
}

func matchesQuestions(rec models.ResponseRecord, questions map[string][]string) bool {
	for qid, allowed := range questions {
		if len(allowed) == 0 {
			continue
		}
		if !normalize.Present(rec, qid) {
			return false
		}
		candidates := normalize.Candidates(gjson.ParseBytes(rec.Responses[qid].Value))
		if !slices.ContainsFunc(candidates, func(c string) bool { return slices.Contains(allowed, c) }) {
			return false
		}
	}
	return true
}

// maxFilterOptions bounds how many options a choice question may have and
// still be offered as a filter.
const maxFilterOptions = 20

// Filterable returns the IDs of questions whose answers make useful
// filters: radio and checkbox questions with a short option list, matrix
// questions and tag questions.
func Filterable(questions []models.Question) []string {
	ids := []string{}
	for _, q := range questions {
		switch q.Type {
		case models.TypeRadio, models.TypeCheckbox:
			if n := len(q.Options); n > 0 && n <= maxFilterOptions {
				ids = append(ids, q.ID)
			}
		case models.TypeMatrix2D, models.TypeTags:
			ids = append(ids, q.ID)
		}
	}
	return ids
}
