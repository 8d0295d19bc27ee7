// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/danielhkuo/quickly-tally/aggregate"
	"github.com/danielhkuo/quickly-tally/cliparse"
	"github.com/danielhkuo/quickly-tally/handlers"
	"github.com/danielhkuo/quickly-tally/metrics"
	"github.com/danielhkuo/quickly-tally/middleware"
	"github.com/danielhkuo/quickly-tally/prefs"
	"github.com/danielhkuo/quickly-tally/report"
	"github.com/danielhkuo/quickly-tally/survey"
)

// adminBurst is how many admin requests a client may send back to back.
const adminBurst = 10

// NewRouter wires every endpoint. reg may be nil, which disables metrics
// and the /metrics endpoint.
func NewRouter(db *sql.DB, cfg cliparse.Config, src survey.Source, reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()

	var m *metrics.Metrics
	if reg != nil {
		m = metrics.New(reg)
	}

	store := prefs.NewSQLStore(db)
	builder := report.NewBuilder(store, m, report.Config{
		Workers: cfg.Workers,
		Options: aggregate.Options{TextSamples: cfg.TextSamples},
	})

	// Initialize handlers
	surveyHandler := handlers.NewSurveyHandler(src)
	resultsHandler := handlers.NewResultsHandler(src, builder)
	prefsHandler := handlers.NewPreferencesHandler(store, src, cfg)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithMetrics(m, middleware.WithLogging(h)))
	}
	admin := middleware.NewRateLimiter(rate.Limit(cfg.AdminRate), adminBurst, cfg.TrustProxy)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Survey and respondents
	handle("GET /survey", surveyHandler.GetSurvey)
	handle("GET /responses", surveyHandler.GetResponses)

	// Results
	handle("GET /results", resultsHandler.GetResults)
	handle("GET /results/{questionId}", resultsHandler.GetQuestionResults)

	// Visualization preferences (writes require X-Admin-Key)
	handle("GET /preferences", prefsHandler.ListPreferences)
	handle("GET /preferences/export", prefsHandler.ExportPreferences)
	handle("PUT /preferences/{questionId}", admin.Wrap(prefsHandler.SavePreference))
	handle("DELETE /preferences/{questionId}", admin.Wrap(prefsHandler.DeletePreference))
	handle("DELETE /preferences", admin.Wrap(prefsHandler.ClearPreferences))
	handle("POST /preferences/import", admin.Wrap(prefsHandler.ImportPreferences))

	if reg != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	}

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-tally API v1"))
	})

	return mux
}
