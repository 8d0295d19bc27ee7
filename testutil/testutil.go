// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-tally/auth"
	"github.com/danielhkuo/quickly-tally/cliparse"
	"github.com/danielhkuo/quickly-tally/db"
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/survey"
)

// TestSurveyID is the ID of the survey built by TestSurvey
const TestSurveyID = "team-pulse"

// Now is when the test binary started; fixtures are dated relative to it
// because handlers read the wall clock.
var Now = time.Now().UTC()

// SetupTestDB creates a fresh in-memory sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.CreateSchema(conn), "failed to create schema")
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: db.TypeSQLite,
		DatabaseURL:  ":memory:",
		AdminKeySalt: "test-admin-salt",
		LogLevel:     "info",
		Workers:      2,
		TextSamples:  5,
		AdminRate:    100,
	}
}

// AdminKey returns the valid admin key for TestSurvey under cfg
func AdminKey(cfg cliparse.Config) string {
	return auth.GenerateAdminKey(TestSurveyID, cfg.AdminKeySalt)
}

// TestSurvey returns a two-step survey covering the common question types
func TestSurvey() models.Survey {
	return models.Survey{
		ID:    TestSurveyID,
		Title: "Team pulse",
		Steps: []models.Step{
			{
				ID:    "about",
				Title: "About you",
				Questions: []models.Question{
					{
						ID: "role", Type: models.TypeRadio, Title: "Role",
						Options: []models.Option{{Value: "dev", Label: "Developer"}, {Value: "ops", Label: "Operations"}},
					},
					{
						ID: "tools", Type: models.TypeCheckbox, Title: "Tools",
						Options: []models.Option{{Value: "go"}, {Value: "sql"}, {Value: "k8s"}},
					},
				},
			},
			{
				ID:    "opinions",
				Title: "Opinions",
				Questions: []models.Question{
					{
						ID: "priorities", Type: models.TypeRankOptions, Title: "Priorities",
						Options: []models.Option{{Value: "a", Label: "Alpha"}, {Value: "b", Label: "Beta"}, {Value: "c", Label: "Gamma"}},
					},
					{ID: "comments", Type: models.TypeLongText, Title: "Comments"},
				},
			},
		},
	}
}

// Answer marshals v as a raw response value
func Answer(t *testing.T, v any) models.Answer {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return models.Answer{Value: raw}
}

// Record builds a response completed ago before Now
func Record(t *testing.T, label string, ago time.Duration, answers map[string]any) models.ResponseRecord {
	t.Helper()
	completed := Now.Add(-ago)
	rec := models.ResponseRecord{
		ID:          label,
		Label:       label,
		CompletedAt: &completed,
		Responses:   make(map[string]models.Answer, len(answers)),
	}
	for qid, v := range answers {
		rec.Responses[qid] = Answer(t, v)
	}
	return rec
}

// TestResponses returns responses to TestSurvey spread over the last month
func TestResponses(t *testing.T) []models.ResponseRecord {
	t.Helper()
	return []models.ResponseRecord{
		Record(t, "Ada", 2*time.Hour, map[string]any{
			"role": "dev", "tools": []string{"go", "sql"}, "priorities": []string{"a", "b", "c"},
			"comments": "Great pairing sessions",
		}),
		Record(t, "Grace", 3*24*time.Hour, map[string]any{
			"role": "ops", "tools": []string{"k8s"}, "priorities": []string{"b", "a", "c"},
		}),
		Record(t, "Linus", 20*24*time.Hour, map[string]any{
			"role": "dev", "tools": []string{"go"}, "priorities": []string{"a", "c", "b"},
			"comments": "More pairing please",
		}),
	}
}

// TestSource serves TestSurvey with TestResponses
func TestSource(t *testing.T) survey.Static {
	t.Helper()
	return survey.Static{
		Survey:    TestSurvey(),
		Responses: TestResponses(t),
		LoadedAt:  Now,
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
