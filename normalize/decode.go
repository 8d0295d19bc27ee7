// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package normalize

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// OtherKey is the bucket used for free-text "other" checkbox answers.
const OtherKey = "other"

// Selection is a canonical checkbox answer.
type Selection struct {
	Values []string // selected option values, in submission order
	Other  bool
}

// Cell is one selected matrix cell.
type Cell struct {
	Row    string
	Column string
}

// Rating is one option's Likert rating.
type Rating struct {
	Option string
	Value  int
}

// Level is one slider position. Numeric is false when the submitted value
// was not a number; the option still belongs to the slider's universe.
type Level struct {
	Option  string
	Value   float64
	Numeric bool
}

// Placement is an option's 0-based position on a ballot.
type Placement struct {
	Option   string
	Position int
}

// Ballot lists placements ordered by position, each option at most once.
type Ballot []Placement

// Radio decodes single-choice answers. Strings and numbers are accepted.
func Radio(entries []Entry) []Labeled[string] {
	out := make([]Labeled[string], 0, len(entries))
	for _, e := range entries {
		if Classify(e.Value) != ShapeScalar {
			continue
		}
		s, ok := scalarString(e.Value)
		if !ok {
			continue
		}
		out = append(out, Labeled[string]{Label: e.Label, Value: s})
	}
	return out
}

// Checkbox decodes multi-select answers from either a list of option values
// (with optional {isOther, otherValue} markers) or a mapping of option → true.
func Checkbox(entries []Entry) []Labeled[Selection] {
	out := make([]Labeled[Selection], 0, len(entries))
	for _, e := range entries {
		var sel Selection
		switch Classify(e.Value) {
		case ShapeList, ShapePairs:
			for _, item := range e.Value.Array() {
				switch {
				case item.Type == gjson.String:
					sel.Values = append(sel.Values, item.Str)
				case item.IsObject() && item.Get("isOther").Bool() && truthy(item.Get("otherValue")):
					sel.Other = true
				}
			}
		case ShapeMapping:
			e.Value.ForEach(func(key, value gjson.Result) bool {
				if key.Str == OtherKey {
					if value.Type == gjson.True || (value.Type == gjson.String && value.Str != "") {
						sel.Other = true
					}
					return true
				}
				if value.Type == gjson.True {
					sel.Values = append(sel.Values, key.Str)
				}
				return true
			})
		default:
			continue
		}
		out = append(out, Labeled[Selection]{Label: e.Label, Value: sel})
	}
	return out
}

// Text decodes free-text answers, dropping whitespace-only strings.
func Text(entries []Entry) []Labeled[string] {
	out := make([]Labeled[string], 0, len(entries))
	for _, e := range entries {
		if e.Value.Type != gjson.String || strings.TrimSpace(e.Value.Str) == "" {
			continue
		}
		out = append(out, Labeled[string]{Label: e.Label, Value: e.Value.Str})
	}
	return out
}

// Matrix decodes 2D answers given as a list of "rowId:colId" strings or as a
// mapping of rowId → colId.
func Matrix(entries []Entry) []Labeled[[]Cell] {
	out := make([]Labeled[[]Cell], 0, len(entries))
	for _, e := range entries {
		var cells []Cell
		switch Classify(e.Value) {
		case ShapeList:
			for _, item := range e.Value.Array() {
				if item.Type != gjson.String {
					continue
				}
				row, col, ok := strings.Cut(item.Str, ":")
				if !ok || row == "" || col == "" {
					continue
				}
				cells = append(cells, Cell{Row: row, Column: col})
			}
		case ShapeMapping:
			e.Value.ForEach(func(key, value gjson.Result) bool {
				if col, ok := scalarString(value); ok {
					cells = append(cells, Cell{Row: key.Str, Column: col})
				}
				return true
			})
		default:
			continue
		}
		out = append(out, Labeled[[]Cell]{Label: e.Label, Value: cells})
	}
	return out
}

// Likert decodes option → rating mappings. Ratings must be integral numbers
// or integer strings.
func Likert(entries []Entry) []Labeled[[]Rating] {
	out := make([]Labeled[[]Rating], 0, len(entries))
	for _, e := range entries {
		if Classify(e.Value) != ShapeMapping {
			continue
		}
		var ratings []Rating
		e.Value.ForEach(func(key, value gjson.Result) bool {
			if n, ok := integer(value); ok {
				ratings = append(ratings, Rating{Option: key.Str, Value: n})
			}
			return true
		})
		out = append(out, Labeled[[]Rating]{Label: e.Label, Value: ratings})
	}
	return out
}

// Slider decodes multi-value slider answers. The mapping may be nested one
// level under a "value" key; a "comment" key is never a slider.
func Slider(entries []Entry) []Labeled[[]Level] {
	out := make([]Labeled[[]Level], 0, len(entries))
	for _, e := range entries {
		if Classify(e.Value) != ShapeMapping {
			continue
		}
		m := e.Value
		if inner := m.Get("value"); inner.IsObject() {
			m = inner
		}
		var levels []Level
		m.ForEach(func(key, value gjson.Result) bool {
			if key.Str == "comment" {
				return true
			}
			lvl := Level{Option: key.Str}
			if value.Type == gjson.Number {
				lvl.Value = value.Num
				lvl.Numeric = true
			}
			levels = append(levels, lvl)
			return true
		})
		out = append(out, Labeled[[]Level]{Label: e.Label, Value: levels})
	}
	return out
}

// Ballots decodes ranked answers in any of the three accepted shapes:
// an ordered list of option ids, a list of {id, rank} pairs, or a mapping of
// option id → rank. Ranks are 1-based and must lie in [1, optionCount];
// list positions beyond optionCount are dropped. Any list or mapping counts
// as a ballot even when none of its placements survive.
func Ballots(entries []Entry, optionCount int) []Labeled[Ballot] {
	out := make([]Labeled[Ballot], 0, len(entries))
	for _, e := range entries {
		var placements []Placement
		switch Classify(e.Value) {
		case ShapeList:
			for i, item := range e.Value.Array() {
				if item.Type != gjson.String || i >= optionCount {
					continue
				}
				placements = append(placements, Placement{Option: item.Str, Position: i})
			}
		case ShapePairs:
			for _, item := range e.Value.Array() {
				id, ok := scalarString(item.Get("id"))
				if !ok {
					continue
				}
				if rank, ok := integer(item.Get("rank")); ok && rank >= 1 && rank <= optionCount {
					placements = append(placements, Placement{Option: id, Position: rank - 1})
				}
			}
		case ShapeMapping:
			e.Value.ForEach(func(key, value gjson.Result) bool {
				if value.Type != gjson.Number {
					return true
				}
				if rank, ok := integer(value); ok && rank >= 1 && rank <= optionCount {
					placements = append(placements, Placement{Option: key.Str, Position: rank - 1})
				}
				return true
			})
		default:
			continue
		}
		out = append(out, Labeled[Ballot]{Label: e.Label, Value: canonicalBallot(placements)})
	}
	return out
}

func canonicalBallot(placements []Placement) Ballot {
	sort.SliceStable(placements, func(i, j int) bool {
		return placements[i].Position < placements[j].Position
	})
	seen := make(map[string]bool, len(placements))
	ballot := make(Ballot, 0, len(placements))
	for _, p := range placements {
		if seen[p.Option] {
			continue
		}
		seen[p.Option] = true
		ballot = append(ballot, p)
	}
	return ballot
}

// Range decodes single-value slider answers, given directly or as {value}.
// Values are truncated toward zero.
func Range(entries []Entry) []Labeled[int] {
	out := make([]Labeled[int], 0, len(entries))
	for _, e := range entries {
		v := e.Value
		if v.IsObject() {
			v = v.Get("value")
		}
		n, ok := leadingInt(v)
		if !ok {
			continue
		}
		out = append(out, Labeled[int]{Label: e.Label, Value: n})
	}
	return out
}

// Tags decodes tag lists. Non-string items are skipped.
func Tags(entries []Entry) []Labeled[[]string] {
	out := make([]Labeled[[]string], 0, len(entries))
	for _, e := range entries {
		if Classify(e.Value) != ShapeList {
			continue
		}
		var tags []string
		for _, item := range e.Value.Array() {
			if item.Type == gjson.String && item.Str != "" {
				tags = append(tags, item.Str)
			}
		}
		out = append(out, Labeled[[]string]{Label: e.Label, Value: tags})
	}
	return out
}

// Candidates lists the string values a filter can match against: the scalar
// itself, list items, mapping keys set to true, and the row of "row:col"
// matrix cells.
func Candidates(v gjson.Result) []string {
	var out []string
	switch Classify(v) {
	case ShapeScalar:
		if s, ok := scalarString(v); ok {
			out = append(out, s)
		}
	case ShapeList:
		for _, item := range v.Array() {
			if item.Type != gjson.String {
				continue
			}
			out = append(out, item.Str)
			if row, _, ok := strings.Cut(item.Str, ":"); ok {
				out = append(out, row)
			}
		}
	case ShapePairs:
		for _, item := range v.Array() {
			if s, ok := scalarString(item.Get("id")); ok {
				out = append(out, s)
			}
		}
	case ShapeMapping:
		v.ForEach(func(key, value gjson.Result) bool {
			if value.Type == gjson.True {
				out = append(out, key.Str)
			}
			return true
		})
	}
	return out
}

func integer(v gjson.Result) (int, bool) {
	switch v.Type {
	case gjson.Number:
		if v.Num != math.Trunc(v.Num) {
			return 0, false
		}
		return int(v.Num), true
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(v.Str))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// leadingInt parses the integer prefix of a number or numeric string,
// so "42.9" and 42.9 both yield 42.
func leadingInt(v gjson.Result) (int, bool) {
	switch v.Type {
	case gjson.Number:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return 0, false
		}
		return int(v.Num), true
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		end := 0
		for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && (s[end] == '-' || s[end] == '+')) {
			end++
		}
		n, err := strconv.Atoi(s[:end])
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
