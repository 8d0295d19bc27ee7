// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-tally/filter"
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/prefs"
	"github.com/danielhkuo/quickly-tally/report"
	"github.com/danielhkuo/quickly-tally/testutil"
)

func newResultsHandler(t *testing.T) (*ResultsHandler, prefs.Store) {
	t.Helper()
	store := prefs.NewSQLStore(testutil.SetupTestDB(t))
	builder := report.NewBuilder(store, nil, report.Config{Workers: 2})
	return NewResultsHandler(testutil.TestSource(t), builder), store
}

func findQuestion(t *testing.T, rep models.Report, id string) models.QuestionResult {
	t.Helper()
	for _, step := range rep.Steps {
		for _, q := range step.Questions {
			if q.QuestionID == id {
				return q
			}
		}
	}
	require.FailNowf(t, "missing question", "question %s not in report", id)
	return models.QuestionResult{}
}

func TestGetResults(t *testing.T) {
	handler, _ := newResultsHandler(t)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		checkResponse  func(t *testing.T, rep models.Report)
	}{
		{
			name:           "all responses",
			path:           "/results",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, rep models.Report) {
				assert.Equal(t, testutil.TestSurveyID, rep.SurveyID)
				assert.Equal(t, "all", rep.DateRange)
				assert.Equal(t, 3, rep.Overview.TotalResponses)
				assert.Equal(t, 3, rep.Overview.FilteredResponses)
				require.Len(t, rep.Steps, 2)

				role := findQuestion(t, rep, "role")
				require.NotNil(t, role.Radio)
				assert.Equal(t, models.ViewPie, role.View)
				assert.Equal(t, []string{"dev", "ops"}, role.Radio.Values)
				assert.Equal(t, []string{"Developer", "Operations"}, role.Radio.Labels)
				assert.Equal(t, []int{2, 1}, role.Radio.Data)
				assert.Equal(t, []int{67, 33}, role.Radio.Percentages)
				assert.Equal(t, "Ada, Linus", role.Radio.Tooltips[0])

				priorities := findQuestion(t, rep, "priorities")
				require.NotNil(t, priorities.Ranking)
				assert.Equal(t, "a", priorities.Ranking.Rankings[0].OptionID)
				assert.Equal(t, 8, priorities.Ranking.Rankings[0].Points)
			},
		},
		{
			name:           "date range",
			path:           "/results?dateRange=week",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, rep models.Report) {
				assert.Equal(t, "week", rep.DateRange)
				assert.Equal(t, 3, rep.Overview.TotalResponses)
				assert.Equal(t, 2, rep.Overview.FilteredResponses)
				role := findQuestion(t, rep, "role")
				assert.Equal(t, []int{1, 1}, role.Radio.Data)
			},
		},
		{
			name:           "question filter",
			path:           "/results?filter.role=dev",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, rep models.Report) {
				assert.Equal(t, 2, rep.Overview.FilteredResponses)
				tools := findQuestion(t, rep, "tools")
				require.NotNil(t, tools.Checkbox)
				assert.Equal(t, 2, tools.Checkbox.TotalResponses)
			},
		},
		{
			name:           "comma separated filter values",
			path:           "/results?filter.tools=sql,k8s",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, rep models.Report) {
				assert.Equal(t, 2, rep.Overview.FilteredResponses)
			},
		},
		{
			name:           "invalid date range",
			path:           "/results?dateRange=forever",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown filter question",
			path:           "/results?filter.nope=x",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.GetResults(w, testutil.MakeRequest("GET", tt.path, nil, nil))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.checkResponse != nil {
				var rep models.Report
				testutil.AssertJSON(t, w, &rep)
				tt.checkResponse(t, rep)
			}
		})
	}
}

func TestGetQuestionResults(t *testing.T) {
	handler, store := newResultsHandler(t)
	require.NoError(t, store.Save(context.Background(), "role", models.Visualization{Type: models.ViewDoughnut}))

	tests := []struct {
		name           string
		questionID     string
		query          string
		expectedStatus int
		checkResponse  func(t *testing.T, res models.QuestionResult)
	}{
		{
			name:           "saved preference is used",
			questionID:     "role",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, res models.QuestionResult) {
				assert.Equal(t, models.ViewDoughnut, res.View)
				require.NotNil(t, res.Radio)
			},
		},
		{
			name:           "explicit irv view",
			questionID:     "priorities",
			query:          "?view=irv",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, res models.QuestionResult) {
				assert.Equal(t, models.ViewIRV, res.View)
				require.NotNil(t, res.Runoff)
				require.NotNil(t, res.Runoff.Winner)
				assert.Equal(t, "a", *res.Runoff.Winner)
				require.Len(t, res.Runoff.Rounds, 2)
				assert.Equal(t, []string{"c"}, res.Runoff.Rounds[0].Eliminated)
				assert.Nil(t, res.Ranking)
			},
		},
		{
			name:           "default ranked order",
			questionID:     "priorities",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, res models.QuestionResult) {
				assert.Equal(t, models.ViewRankedOrder, res.View)
				require.NotNil(t, res.Ranking)
				assert.Equal(t, 3, res.Ranking.TotalResponses)
			},
		},
		{
			name:           "view not valid for type",
			questionID:     "role",
			query:          "?view=irv",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown question",
			questionID:     "missing",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/results/"+tt.questionID+tt.query, nil, nil)
			req.SetPathValue("questionId", tt.questionID)
			w := httptest.NewRecorder()

			handler.GetQuestionResults(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.checkResponse != nil {
				var res models.QuestionResult
				testutil.AssertJSON(t, w, &res)
				tt.checkResponse(t, res)
			}
		})
	}
}

func TestParseFilters(t *testing.T) {
	s := testutil.TestSurvey()

	tests := []struct {
		name    string
		query   string
		want    filter.Filters
		wantErr bool
	}{
		{
			name:  "empty",
			query: "",
			want:  filter.Filters{DateRange: filter.RangeAll},
		},
		{
			name:  "repeated and comma separated values",
			query: "dateRange=Month&filter.tools=go&filter.tools=sql,%20k8s&view=pie",
			want: filter.Filters{
				DateRange: filter.RangeMonth,
				Questions: map[string][]string{"tools": {"go", "sql", "k8s"}},
			},
		},
		{
			name:  "blank filter ignored",
			query: "filter.role=",
			want:  filter.Filters{DateRange: filter.RangeAll},
		},
		{name: "unknown question", query: "filter.zzz=a", wantErr: true},
		{name: "bad date range", query: "dateRange=yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := parseFilters(q, s)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
