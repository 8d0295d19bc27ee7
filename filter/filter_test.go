// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-tally/models"
)

var now = time.Date(2025, time.March, 15, 14, 30, 0, 0, time.UTC)

func rec(id string, at *time.Time, answers map[string]string) models.ResponseRecord {
	r := models.ResponseRecord{ID: id, Label: id, CompletedAt: at, Responses: map[string]models.Answer{}}
	for qid, raw := range answers {
		r.Responses[qid] = models.Answer{Value: json.RawMessage(raw)}
	}
	return r
}

func ago(d time.Duration) *time.Time {
	t := now.Add(-d)
	return &t
}

func ids(records []models.ResponseRecord) []string {
	out := []string{}
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		in      string
		want    DateRange
		wantErr bool
	}{
		{"", RangeAll, false},
		{"all", RangeAll, false},
		{"Week", RangeWeek, false},
		{" quarter ", RangeQuarter, false},
		{"year", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDateRange(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDateRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCutoff(t *testing.T) {
	tests := []struct {
		r    DateRange
		want time.Time
	}{
		{RangeToday, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)},
		{RangeWeek, time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC)},
		{RangeMonth, time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC)},
		{RangeQuarter, time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			got, ok := tt.r.Cutoff(now)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := RangeAll.Cutoff(now)
	assert.False(t, ok)
}

func TestApply_AllIsCopy(t *testing.T) {
	records := []models.ResponseRecord{
		rec("a", ago(time.Hour), nil),
		rec("b", nil, nil),
	}

	got := Apply(records, Filters{DateRange: RangeAll}, now)

	assert.Equal(t, records, got)
	got[0].ID = "changed"
	assert.Equal(t, "a", records[0].ID)
}

func TestApply_DateRange(t *testing.T) {
	future := now.Add(time.Hour)
	modified := now.Add(-2 * time.Hour)
	withModified := rec("modified", nil, nil)
	withModified.LastModified = &modified

	records := []models.ResponseRecord{
		rec("hour", ago(time.Hour), nil),
		rec("yesterday", ago(24*time.Hour), nil),
		rec("undated", nil, nil),
		rec("future", &future, nil),
		withModified,
		rec("midnight", ago(14*time.Hour+30*time.Minute), nil),
	}

	got := Apply(records, Filters{DateRange: RangeToday}, now)

	assert.Equal(t, []string{"hour", "modified"}, ids(got))
}

func TestApply_QuestionFilters(t *testing.T) {
	records := []models.ResponseRecord{
		rec("radio", nil, map[string]string{"role": `"dev"`}),
		rec("list", nil, map[string]string{"role": `["ops","pm"]`}),
		rec("mapping", nil, map[string]string{"role": `{"qa":true,"dev":false}`}),
		rec("missing", nil, map[string]string{"other": `"x"`}),
		rec("empty", nil, map[string]string{"role": `""`}),
	}

	tests := []struct {
		name    string
		filters map[string][]string
		want    []string
	}{
		{"no filters", nil, []string{"radio", "list", "mapping", "missing", "empty"}},
		{"empty allow-list inactive", map[string][]string{"role": {}}, []string{"radio", "list", "mapping", "missing", "empty"}},
		{"scalar match", map[string][]string{"role": {"dev"}}, []string{"radio"}},
		{"any overlap", map[string][]string{"role": {"pm", "qa"}}, []string{"list", "mapping"}},
		{"no match", map[string][]string{"role": {"ceo"}}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(records, Filters{Questions: tt.filters}, now)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_MatrixRowMatch(t *testing.T) {
	records := []models.ResponseRecord{
		rec("a", nil, map[string]string{"grid": `["r1:c1","r2:c3"]`}),
		rec("b", nil, map[string]string{"grid": `["r3:c1"]`}),
	}

	got := Apply(records, Filters{Questions: map[string][]string{"grid": {"r2"}}}, now)

	assert.Equal(t, []string{"a"}, ids(got))
}

func TestFilters_Active(t *testing.T) {
	assert.False(t, Filters{}.Active())
	assert.False(t, Filters{DateRange: RangeAll, Questions: map[string][]string{"q": nil}}.Active())
	assert.True(t, Filters{DateRange: RangeWeek}.Active())
	assert.True(t, Filters{Questions: map[string][]string{"q": {"x"}}}.Active())
}

func TestFilterable(t *testing.T) {
	many := make([]models.Option, 21)
	for i := range many {
		many[i] = models.Option{Value: string(rune('a' + i))}
	}
	questions := []models.Question{
		{ID: "radio", Type: models.TypeRadio, Options: []models.Option{{Value: "x"}}},
		{ID: "radio-bare", Type: models.TypeRadio},
		{ID: "check-many", Type: models.TypeCheckbox, Options: many},
		{ID: "grid", Type: models.TypeMatrix2D},
		{ID: "tags", Type: models.TypeTags},
		{ID: "text", Type: models.TypeShortText},
	}

	assert.Equal(t, []string{"radio", "grid", "tags"}, Filterable(questions))
}
