// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package normalize turns raw survey answers into canonical per-type values.

Answers arrive as untyped JSON. A checkbox answer may be a list of option
values or a mapping of option to true; a ranked answer may be an ordered
list, a list of {id, rank} pairs, or a mapping of option to rank. This
package classifies each value into one explicit wire shape and decodes it
into a single in-memory form per question type.

# Extraction

	entries := normalize.Extract(records, "q1")

Extract keeps record order and drops missing answers, JSON null, empty
strings and empty arrays. Each Entry keeps the respondent label next to its
value, so decoded values never drift out of step with their tooltips.

# Shapes

	ShapeScalar   string, number or boolean
	ShapeList     array of scalars
	ShapePairs    array of {id, rank} objects
	ShapeMapping  object

# Decoders

Every decoder is total: entries of the wrong shape are skipped, never
reported as errors.

	normalize.Radio(entries)          // []Labeled[string]
	normalize.Checkbox(entries)       // []Labeled[Selection]
	normalize.Text(entries)           // []Labeled[string]
	normalize.Matrix(entries)         // []Labeled[[]Cell]
	normalize.Likert(entries)         // []Labeled[[]Rating]
	normalize.Slider(entries)         // []Labeled[[]Level]
	normalize.Ballots(entries, n)     // []Labeled[Ballot]
	normalize.Range(entries)          // []Labeled[int]
	normalize.Tags(entries)           // []Labeled[[]string]

Candidates lists the strings a question filter can match against.
*/
package normalize
