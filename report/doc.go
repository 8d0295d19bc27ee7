// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package report assembles dashboard results from a survey snapshot.

A report pass applies the filters once, resolves each question's view
(saved preference, then the definition's visualization, then the type
default) and aggregates every question:

	b := report.NewBuilder(store, m, report.Config{Workers: 4})
	rep, err := b.Build(ctx, snap, filter.Filters{DateRange: filter.RangeWeek})

Questions are aggregated in parallel, at most Workers at a time. Each
aggregation reads the shared, read-only filtered records and writes only its
own result slot. Results are grouped by step in definition order; steps
with no reportable question are omitted.

The overview carries the unfiltered and filtered response counts and the
most recent submission among the filtered responses, both as a timestamp
and in words ("3 hours ago").
*/
package report
