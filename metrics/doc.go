// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus collectors for aggregation work and
// HTTP traffic. Collectors are registered on the registry passed to New so
// tests can use a private prometheus.NewRegistry().
package metrics
