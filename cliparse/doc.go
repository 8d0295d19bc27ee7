// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: sqlite file or postgres connection string (default: quickly-tally.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - SurveyPath: survey definition, JSON or YAML (required)
  - ResultsPath: exported responses, JSON (required)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - LogLevel: debug, info, warn or error (default: info)
  - Workers: questions aggregated in parallel (default: 4)
  - TextSamples: raw answers kept per text question, -1 for all (default: 5)
  - AdminRate: admin requests per second per client IP (default: 2)
  - TrustProxy: key the admin limit on forwarded client IP headers (default: false)

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	-survey           Survey definition file
	-results          Survey results file
	-admin-salt       Admin key salt
	-log-level        Log level
	-workers          Parallel aggregation workers
	-text-samples     Text samples per question
	-admin-rate       Admin request rate per client
	-trust-proxy      Trust X-Forwarded-For / X-Real-IP
	-env              Environment file (default: .env)
	-print-admin-key  Print the admin key and exit

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	SURVEY_PATH    → -survey
	RESULTS_PATH   → -results
	ADMIN_KEY_SALT → -admin-salt
	LOG_LEVEL      → -log-level
	WORKERS        → -workers
	TEXT_SAMPLES   → -text-samples
	ADMIN_RATE_LIMIT → -admin-rate
	TRUST_PROXY    → -trust-proxy

CLI flags take precedence over environment variables. Variables from the
-env file are loaded first with github.com/joho/godotenv and never replace
variables already set in the process environment. A missing env file is not
an error.

# Validation

The assembled Config is checked with go-playground/validator; ParseFlags
returns an error if a required value is missing or out of range.

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(conn, cfg, source, registry)
*/
package cliparse
