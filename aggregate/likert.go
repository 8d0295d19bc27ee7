// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"strconv"

	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/normalize"
)

// Likert counts ratings per option on the question's closed scale. Ratings
// outside [min, max] are ignored. Each option's percentages are relative to
// the ratings that option received. Options come from the definition, or
// from the answers in first-seen order when none are declared.
func Likert(values []normalize.Labeled[[]normalize.Rating], q models.Question) models.LikertAggregate {
	agg := models.LikertAggregate{
		Options:                 []models.Option{},
		ScaleValues:             []int{},
		ScaleLabels:             map[int]string{},
		Counts:                  map[string]map[int]int{},
		Percentages:             map[string]map[int]int{},
		Tooltips:                map[string]map[int]string{},
		TotalResponsesPerOption: map[string]int{},
		TotalResponses:          len(values),
	}
	scale := q.LikertScale
	if scale == nil || scale.Max < scale.Min {
		return agg
	}

	for s := scale.Min; s <= scale.Max; s++ {
		agg.ScaleValues = append(agg.ScaleValues, s)
		if label, ok := scale.Labels[strconv.Itoa(s)]; ok {
			agg.ScaleLabels[s] = label
		} else {
			agg.ScaleLabels[s] = strconv.Itoa(s)
		}
	}

	declared := len(q.Options) > 0
	options := make(map[string]bool, len(q.Options))
	addOption := func(opt models.Option) {
		options[opt.Value] = true
		agg.Options = append(agg.Options, opt)
		agg.Counts[opt.Value] = make(map[int]int, len(agg.ScaleValues))
		for _, s := range agg.ScaleValues {
			agg.Counts[opt.Value][s] = 0
		}
		agg.TotalResponsesPerOption[opt.Value] = 0
	}
	for _, opt := range q.Options {
		addOption(opt)
	}

	type bucket struct {
		option string
		value  int
	}
	tips := labelLog[bucket]{}
	for _, v := range values {
		for _, r := range v.Value {
			if r.Value < scale.Min || r.Value > scale.Max {
				continue
			}
			if !options[r.Option] {
				if declared {
					continue
				}
				addOption(models.Option{Value: r.Option, Label: r.Option})
			}
			agg.Counts[r.Option][r.Value]++
			agg.TotalResponsesPerOption[r.Option]++
			tips.add(bucket{r.Option, r.Value}, v.Label)
		}
	}

	for _, opt := range agg.Options {
		total := agg.TotalResponsesPerOption[opt.Value]
		agg.Percentages[opt.Value] = make(map[int]int, len(agg.ScaleValues))
		agg.Tooltips[opt.Value] = make(map[int]string, len(agg.ScaleValues))
		for _, s := range agg.ScaleValues {
			agg.Percentages[opt.Value][s] = percent(agg.Counts[opt.Value][s], total)
			agg.Tooltips[opt.Value][s] = tips.tooltip(bucket{opt.Value, s})
		}
	}
	return agg
}
