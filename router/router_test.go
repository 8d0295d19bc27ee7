// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-tally/auth"
	"github.com/danielhkuo/quickly-tally/middleware"
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/testutil"
)

func newTestRouter(t *testing.T) (*http.ServeMux, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	mux := NewRouter(testutil.SetupTestDB(t), testutil.GetTestConfig(), testutil.TestSource(t), reg)
	return mux, reg
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestHealthEndpoint_DatabaseDown(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	mux := NewRouter(conn, testutil.GetTestConfig(), testutil.TestSource(t), nil)
	conn.Close()

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRootEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "quickly-tally API v1", w.Body.String())

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/no-such-route", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouteExistence(t *testing.T) {
	mux, _ := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"GET", "/survey"},
		{"GET", "/responses"},
		{"GET", "/results"},
		{"GET", "/results/role"},
		{"GET", "/preferences"},
		{"GET", "/preferences/export"},
		{"PUT", "/preferences/role"},
		{"DELETE", "/preferences/role"},
		{"DELETE", "/preferences"},
		{"POST", "/preferences/import"},
		{"GET", "/metrics"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			// 400, 401 and 404 are valid handler responses; 405 means no route
			assert.NotEqual(t, http.StatusMethodNotAllowed, w.Code)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"POST", "/results"},
		{"PATCH", "/preferences/role"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		})
	}
}

func TestPreferenceRoundTrip(t *testing.T) {
	mux, _ := newTestRouter(t)
	adminKey := testutil.AdminKey(testutil.GetTestConfig())
	headers := map[string]string{auth.AdminKeyHeader: adminKey}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("PUT", "/preferences/priorities",
		models.SavePreferenceRequest{Type: models.ViewIRV}, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	// Results without ?view= pick up the saved preference.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/results/priorities", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var res models.QuestionResult
	testutil.AssertJSON(t, w, &res)
	assert.Equal(t, models.ViewIRV, res.View)
	require.NotNil(t, res.Runoff)
}

func TestMetricsEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/results", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	body := w.Body.String()
	assert.Contains(t, body, `quickly_tally_http_requests_total{route="GET /results",status="200"} 1`)
	assert.Contains(t, body, `quickly_tally_reports_total{date_range="all"} 1`)
	assert.Contains(t, body, "quickly_tally_aggregations_total")
}

func TestAdminRoutesAreRateLimited(t *testing.T) {
	cfg := testutil.GetTestConfig()
	cfg.AdminRate = 0.001
	mux := NewRouter(testutil.SetupTestDB(t), cfg, testutil.TestSource(t), nil)

	for i := 0; i < adminBurst; i++ {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("DELETE", "/preferences", nil))
		require.Equal(t, http.StatusUnauthorized, w.Code, "request %d", i)
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("DELETE", "/preferences", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// A forged forwarding header does not buy a fresh bucket
	req := httptest.NewRequest("DELETE", "/preferences", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.99")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Reads are not limited
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/preferences", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
