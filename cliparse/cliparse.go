// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         int    `validate:"min=1,max=65535"`
	DatabaseURL  string `validate:"required"`
	DatabaseType string `validate:"oneof=sqlite postgres"`
	SurveyPath   string `validate:"required"`
	ResultsPath  string `validate:"required"`
	AdminKeySalt string `validate:"required"`
	LogLevel     string `validate:"oneof=debug info warn warning error"`
	Workers      int    `validate:"min=1,max=256"`
	TextSamples  int    `validate:"min=-1"`
	// AdminRate is admin requests per second allowed per client IP.
	AdminRate float64 `validate:"gt=0"`
	// TrustProxy keys the admin limiter on X-Forwarded-For / X-Real-IP.
	// Only set it behind a proxy that overwrites those headers.
	TrustProxy bool `validate:"-"`

	// PrintAdminKey prints the admin key for the configured survey and exits.
	PrintAdminKey bool `validate:"-"`
}

var validate = validator.New()

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := flag.NewFlagSet("quickly-tally", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Survey input files
	fs.StringVar(&cfg.SurveyPath, "survey", "", "Survey definition file (.json, .yaml)")
	fs.StringVar(&cfg.ResultsPath, "results", "", "Survey results file (.json)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")

	// Tuning
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.IntVar(&cfg.Workers, "workers", 0, "Questions aggregated in parallel")
	fs.IntVar(&cfg.TextSamples, "text-samples", 0, "Sample answers kept per text question (-1 for all)")
	fs.Float64Var(&cfg.AdminRate, "admin-rate", 0, "Admin requests per second per client")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Trust forwarded client IP headers")

	fs.StringVar(&envFile, "env", ".env", "Environment file loaded before reading env variables")
	fs.BoolVar(&cfg.PrintAdminKey, "print-admin-key", false, "Print the admin key and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Variables already set in the environment win over the file
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	// Fall back to environment variables
	var err error
	if cfg.Port == 0 {
		if cfg.Port, err = envInt("PORT", 3318); err != nil {
			return Config{}, err
		}
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envOr("DATABASE_TYPE", "sqlite")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseType == "sqlite" {
		cfg.DatabaseURL = "quickly-tally.db"
	}
	if cfg.SurveyPath == "" {
		cfg.SurveyPath = os.Getenv("SURVEY_PATH")
	}
	if cfg.ResultsPath == "" {
		cfg.ResultsPath = os.Getenv("RESULTS_PATH")
	}
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = envOr("LOG_LEVEL", "info")
	}
	if cfg.Workers == 0 {
		if cfg.Workers, err = envInt("WORKERS", 4); err != nil {
			return Config{}, err
		}
	}
	if cfg.TextSamples == 0 {
		if cfg.TextSamples, err = envInt("TEXT_SAMPLES", 5); err != nil {
			return Config{}, err
		}
	}
	if cfg.AdminRate == 0 {
		if cfg.AdminRate, err = envFloat("ADMIN_RATE_LIMIT", 2); err != nil {
			return Config{}, err
		}
	}
	if !cfg.TrustProxy {
		if cfg.TrustProxy, err = envBool("TRUST_PROXY"); err != nil {
			return Config{}, err
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func envOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func envInt(name string, def int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", name)
	}
	return n, nil
}

func envFloat(name string, def float64) (float64, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", name)
	}
	return f, nil
}

func envBool(name string) (bool, error) {
	s := os.Getenv(name)
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s env variable", name)
	}
	return b, nil
}
