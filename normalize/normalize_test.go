// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/danielhkuo/quickly-tally/models"
)

func record(label string, answers map[string]string) models.ResponseRecord {
	rec := models.ResponseRecord{ID: label, Label: label, Responses: map[string]models.Answer{}}
	for qid, raw := range answers {
		rec.Responses[qid] = models.Answer{Value: json.RawMessage(raw)}
	}
	return rec
}

func entries(raws ...string) []Entry {
	out := make([]Entry, len(raws))
	for i, raw := range raws {
		out[i] = Entry{Label: string(rune('A' + i)), Value: gjson.Parse(raw)}
	}
	return out
}

func TestExtract_DropsAbsentValues(t *testing.T) {
	records := []models.ResponseRecord{
		record("r1", map[string]string{"q": `"yes"`}),
		record("r2", map[string]string{"q": `null`}),
		record("r3", map[string]string{"q": `""`}),
		record("r4", map[string]string{"q": `[]`}),
		record("r5", map[string]string{"other": `"x"`}),
		record("r6", map[string]string{"q": `0`}),
		record("r7", map[string]string{"q": `false`}),
		record("r8", map[string]string{"q": `{"a":1}`}),
	}

	got := Extract(records, "q")

	require.Len(t, got, 4)
	assert.Equal(t, []string{"r1", "r6", "r7", "r8"}, Labels(got))
	assert.False(t, Present(records[1], "q"))
	assert.True(t, Present(records[5], "q"))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Shape
	}{
		{"string", `"a"`, ShapeScalar},
		{"number", `3`, ShapeScalar},
		{"bool", `true`, ShapeScalar},
		{"list", `["a","b"]`, ShapeList},
		{"empty list", `[]`, ShapeList},
		{"pairs", `[{"id":"a","rank":1},{"id":"b","rank":2}]`, ShapePairs},
		{"mixed pairs", `[{"id":"a","rank":1},"b"]`, ShapeList},
		{"mapping", `{"a":true}`, ShapeMapping},
		{"null", `null`, ShapeInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(gjson.Parse(tt.raw)))
		})
	}
}

func TestRadio(t *testing.T) {
	got := Radio(entries(`"a"`, `2`, `["x"]`, `{"a":1}`, `"b"`))

	require.Len(t, got, 3)
	assert.Equal(t, Labeled[string]{Label: "A", Value: "a"}, got[0])
	assert.Equal(t, Labeled[string]{Label: "B", Value: "2"}, got[1])
	assert.Equal(t, Labeled[string]{Label: "E", Value: "b"}, got[2])
}

func TestCheckbox(t *testing.T) {
	got := Checkbox(entries(
		`["a","b"]`,
		`{"a":true,"b":false,"other":"free text"}`,
		`["c",{"isOther":true,"otherValue":"thing"}]`,
		`{"other":false}`,
		`"scalar"`,
	))

	require.Len(t, got, 4)
	assert.Equal(t, Selection{Values: []string{"a", "b"}}, got[0].Value)
	assert.Equal(t, Selection{Values: []string{"a"}, Other: true}, got[1].Value)
	assert.Equal(t, Selection{Values: []string{"c"}, Other: true}, got[2].Value)
	assert.Equal(t, Selection{}, got[3].Value)
}

func TestText(t *testing.T) {
	got := Text(entries(`"hello"`, `"   "`, `5`, `"world"`))

	require.Len(t, got, 2)
	assert.Equal(t, "hello", got[0].Value)
	assert.Equal(t, "D", got[1].Label)
}

func TestMatrix(t *testing.T) {
	got := Matrix(entries(`["r1:c1","bad","r2:c2"]`, `{"r1":"c2"}`, `"r1:c1"`))

	require.Len(t, got, 2)
	assert.Equal(t, []Cell{{Row: "r1", Column: "c1"}, {Row: "r2", Column: "c2"}}, got[0].Value)
	assert.Equal(t, []Cell{{Row: "r1", Column: "c2"}}, got[1].Value)
}

func TestLikert(t *testing.T) {
	got := Likert(entries(`{"a":3,"b":"4","c":2.5,"d":"x"}`, `[1,2]`))

	require.Len(t, got, 1)
	assert.Equal(t, []Rating{{Option: "a", Value: 3}, {Option: "b", Value: 4}}, got[0].Value)
}

func TestSlider(t *testing.T) {
	got := Slider(entries(
		`{"speed":40,"cost":"n/a","comment":"meh"}`,
		`{"value":{"quality":90}}`,
	))

	require.Len(t, got, 2)
	assert.Equal(t, []Level{
		{Option: "speed", Value: 40, Numeric: true},
		{Option: "cost"},
	}, got[0].Value)
	assert.Equal(t, []Level{{Option: "quality", Value: 90, Numeric: true}}, got[1].Value)
}

func TestBallots(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Ballot
	}{
		{
			name: "ordered list",
			raw:  `["b","a","c"]`,
			want: Ballot{{"b", 0}, {"a", 1}, {"c", 2}},
		},
		{
			name: "list longer than option count",
			raw:  `["a","b","c","d"]`,
			want: Ballot{{"a", 0}, {"b", 1}, {"c", 2}},
		},
		{
			name: "pairs out of order",
			raw:  `[{"id":"c","rank":1},{"id":"a","rank":3},{"id":"b","rank":2}]`,
			want: Ballot{{"c", 0}, {"b", 1}, {"a", 2}},
		},
		{
			name: "mapping with out of range rank",
			raw:  `{"a":2,"b":1,"c":7}`,
			want: Ballot{{"b", 0}, {"a", 1}},
		},
		{
			name: "duplicate option keeps best position",
			raw:  `["a","a","b"]`,
			want: Ballot{{"a", 0}, {"b", 2}},
		},
		{
			name: "empty mapping still a ballot",
			raw:  `{}`,
			want: Ballot{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ballots(entries(tt.raw), 3)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Value)
		})
	}

	t.Run("scalar is not a ballot", func(t *testing.T) {
		assert.Empty(t, Ballots(entries(`"a"`), 3))
	})
}

func TestRange(t *testing.T) {
	got := Range(entries(`42`, `"17.9"`, `{"value":8.6}`, `"abc"`, `true`))

	require.Len(t, got, 3)
	assert.Equal(t, 42, got[0].Value)
	assert.Equal(t, 17, got[1].Value)
	assert.Equal(t, 8, got[2].Value)
}

func TestTags(t *testing.T) {
	got := Tags(entries(`["Go","", 3, "sql"]`, `"go"`))

	require.Len(t, got, 1)
	assert.Equal(t, []string{"Go", "sql"}, got[0].Value)
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"scalar", `"a"`, []string{"a"}},
		{"list", `["a","b"]`, []string{"a", "b"}},
		{"matrix cells", `["r1:c2"]`, []string{"r1:c2", "r1"}},
		{"mapping", `{"a":true,"b":false}`, []string{"a"}},
		{"pairs", `[{"id":"x","rank":1}]`, []string{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Candidates(gjson.Parse(tt.raw)))
		})
	}
}
