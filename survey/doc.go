// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package survey loads survey definitions and exported responses.

# Definitions

Definitions are JSON or YAML, chosen by file extension:

	s, err := survey.LoadDefinition("survey.yaml")

A definition is a list of steps, each holding questions. Struct tags are
checked with go-playground/validator; Validate also rejects duplicate step
IDs, duplicate question IDs and duplicate option values.

# Results

Results files hold {"responses": [...]}, one record per respondent:

	{"id": "r1", "label": "Ann", "completedAt": "2025-03-01T10:00:00Z",
	 "responses": {"q1": {"value": "yes"}}}

Unlabeled records are named "Respondent N".

# Sources

FileSource re-reads both files when either changes on disk and otherwise
returns the last snapshot. Concurrent callers hitting a change share a
single reload through singleflight. Static wraps an in-memory snapshot.
*/
package survey
