// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package normalize

import (
	"github.com/tidwall/gjson"

	"github.com/danielhkuo/quickly-tally/models"
)

// Entry is one respondent's raw value for a question, paired with the
// respondent label used for tooltips.
type Entry struct {
	Label string
	Value gjson.Result
}

// Labeled pairs a decoded value with the label of the respondent who gave it.
type Labeled[T any] struct {
	Label string
	Value T
}

// Shape is the wire shape of a raw response value.
type Shape int

const (
	ShapeInvalid Shape = iota
	ShapeScalar        // string, number or boolean
	ShapeList          // array whose elements are not all {id, rank} pairs
	ShapePairs         // non-empty array of {id, rank} objects
	ShapeMapping       // object
)

func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeList:
		return "list"
	case ShapePairs:
		return "pairs"
	case ShapeMapping:
		return "mapping"
	default:
		return "invalid"
	}
}

// Classify reports the wire shape of v.
func Classify(v gjson.Result) Shape {
	switch {
	case !v.Exists():
		return ShapeInvalid
	case v.IsObject():
		return ShapeMapping
	case v.IsArray():
		items := v.Array()
		if len(items) == 0 {
			return ShapeList
		}
		for _, item := range items {
			if !item.IsObject() || !item.Get("id").Exists() || !item.Get("rank").Exists() {
				return ShapeList
			}
		}
		return ShapePairs
	}

	switch v.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return ShapeScalar
	default:
		return ShapeInvalid
	}
}

// Extract collects the present values for questionID in record order.
// Missing answers, JSON null, empty strings and empty arrays are dropped.
func Extract(records []models.ResponseRecord, questionID string) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		answer, ok := rec.Responses[questionID]
		if !ok || len(answer.Value) == 0 {
			continue
		}
		v := gjson.ParseBytes(answer.Value)
		if !present(v) {
			continue
		}
		entries = append(entries, Entry{Label: rec.Label, Value: v})
	}
	return entries
}

// Present reports whether rec carries a non-empty value for questionID.
func Present(rec models.ResponseRecord, questionID string) bool {
	answer, ok := rec.Responses[questionID]
	if !ok || len(answer.Value) == 0 {
		return false
	}
	return present(gjson.ParseBytes(answer.Value))
}

func present(v gjson.Result) bool {
	if !v.Exists() || v.Type == gjson.Null {
		return false
	}
	if v.Type == gjson.String && v.Str == "" {
		return false
	}
	if v.IsArray() && len(v.Array()) == 0 {
		return false
	}
	return true
}

// Labels returns the respondent labels of entries, in order.
func Labels(entries []Entry) []string {
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
	}
	return labels
}

// Values strips the respondent labels from decoded values.
func Values[T any](in []Labeled[T]) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = v.Value
	}
	return out
}

// scalarString renders a string or number scalar as text.
func scalarString(v gjson.Result) (string, bool) {
	switch v.Type {
	case gjson.String:
		return v.Str, v.Str != ""
	case gjson.Number:
		return v.Raw, true
	default:
		return "", false
	}
}

// truthy mirrors the loose truthiness the survey front end applies to
// "other" markers: true, a non-empty string, or a non-zero number.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.String:
		return v.Str != ""
	case gjson.Number:
		return v.Num != 0
	default:
		return false
	}
}
