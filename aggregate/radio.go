// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/normalize"
)

// Radio counts single-choice answers. Declared options always appear, in
// declaration order; undeclared values follow in first-seen order under
// their literal value.
func Radio(values []normalize.Labeled[string], q models.Question) models.RadioAggregate {
	counts := newOrderedCounts(optionValues(q.Options)...)
	tips := labelLog[string]{}

	total := 0
	for _, v := range values {
		counts.inc(v.Value)
		tips.add(v.Value, v.Label)
		total++
	}

	agg := models.RadioAggregate{
		Values:      counts.order,
		Labels:      make([]string, len(counts.order)),
		Data:        make([]int, len(counts.order)),
		Percentages: make([]int, len(counts.order)),
		Tooltips:    make([]string, len(counts.order)),
		Total:       total,
	}
	for i, value := range counts.order {
		agg.Labels[i] = q.OptionLabel(value)
		agg.Data[i] = counts.counts[value]
		agg.Percentages[i] = percent(agg.Data[i], total)
		agg.Tooltips[i] = tips.tooltip(value)
	}
	return agg
}

func optionValues(options []models.Option) []string {
	values := make([]string, len(options))
	for i, opt := range options {
		values[i] = opt.Value
	}
	return values
}
