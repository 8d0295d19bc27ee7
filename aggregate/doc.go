// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package aggregate reduces normalized answers into chart-ready summaries.

There is one reducer per question type. Each is a pure function of its
decoded answers and the question definition and returns a fresh value, so
reducers may run concurrently over shared inputs.

	agg := aggregate.Radio(normalize.Radio(entries), q)

Compute dispatches on the question type and view:

	res, err := aggregate.Compute(q, entries, models.ViewIRV, aggregate.Options{})

# Denominators

  - radio: number of classified answers
  - checkbox: number of responses, so percentages may exceed 100 in sum
  - matrix: selections made in the row
  - likert: ratings received by the option
  - range slider: values that fell into a bin

Percentages round half up. An empty input yields zero totals and zero
percentages, never an error.

# Tooltips

Bucketed aggregates carry, per bucket, the labels of the respondents who
contributed to it, joined with ", " in answer order. Empty buckets have an
empty tooltip.

# Configuration Problems

A question missing the configuration its type needs (a Likert scale, matrix
axes, rank options, valid range bounds) yields an empty aggregate and a
warning log entry. Compute only fails for an unknown question type.
*/
package aggregate
