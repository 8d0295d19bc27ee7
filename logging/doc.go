// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package logging builds the process-wide slog logger.

	level, err := logging.ParseLevel(cfg.LogLevel)
	slog.SetDefault(logging.New(os.Stderr, level))

Output is human-readable text when stderr is a terminal and JSON lines
otherwise, so the same binary logs well in a shell and under a collector.
*/
package logging
