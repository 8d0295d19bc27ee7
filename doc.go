// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Tally API server.

Quickly Tally turns exported survey responses into chart-ready aggregates.
It reads a survey definition (JSON or YAML) and a results file, normalizes
every answer, and computes per-question statistics for radio, checkbox,
text, matrix, Likert, slider, range, tag and ranked-choice questions.
Ranked questions can be shown as Borda rankings or as an instant-runoff
election. The chosen chart for each question is stored in a small SQL
database.

# Starting the Server

	SURVEY_PATH=survey.yaml RESULTS_PATH=results.json go run .

Or with flags:

	go run . -survey survey.yaml -results results.json -t postgres -d "postgres://..."

Print the admin key for the configured survey and exit:

	go run . -survey survey.yaml -admin-salt secret -print-admin-key

# Configuration

Settings come from flags, then environment variables, then a .env file
(loaded with godotenv; -env picks another path).

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): DSN or sqlite file (default: quickly-tally.db)
  - SURVEY_PATH (-survey): Survey definition, .json or .yaml
  - RESULTS_PATH (-results): Exported responses
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC
  - LOG_LEVEL (-log-level): debug, info, warn, error
  - WORKERS (-workers): Questions aggregated in parallel per report
  - TEXT_SAMPLES (-text-samples): Sample answers per text question

The survey and results files are re-read whenever they change on disk.

# Architecture

  - normalize: Raw answer shapes to canonical per-type values
  - aggregate: Per-type reducers (counts, percentages, tooltips, words)
  - rankedchoice: Borda scoring and instant-runoff rounds
  - filter: Date range and answer filters
  - report: Concurrent per-question aggregation into a report
  - prefs: Visualization preference store and view catalogue
  - survey: Definition and results loading
  - handlers, router, middleware: HTTP API
  - auth: Admin key HMAC
  - db: Connection and schema
  - metrics, logging: Prometheus collectors and slog setup
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
