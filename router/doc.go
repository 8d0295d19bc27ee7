// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Tally API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, src, reg)

# Endpoints

Health:

	GET /health - pings the preference database

Survey (public):

	GET /survey    - Definition and filterable question IDs
	GET /responses - Respondents, newest first

Results (public):

	GET /results               - Every question, grouped by step
	GET /results/{questionId}  - One question, optionally ?view=

Preferences (writes require X-Admin-Key):

	GET    /preferences              - Resolved view per question
	GET    /preferences/export       - Saved preferences, JSON or YAML
	PUT    /preferences/{questionId} - Save one
	DELETE /preferences/{questionId} - Delete one
	DELETE /preferences              - Delete all
	POST   /preferences/import       - Bulk save

Metrics:

	GET /metrics - Prometheus exposition, only when a registry is given

Every route except /health and /metrics is wrapped with
middleware.WithLogging and middleware.WithMetrics.
*/
package router
