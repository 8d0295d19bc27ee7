// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/normalize"
)

// Checkbox counts multi-select answers. Percentages use the number of
// responses as denominator, so they may sum past 100.
func Checkbox(values []normalize.Labeled[normalize.Selection], q models.Question) models.CheckboxAggregate {
	counts := newOrderedCounts(optionValues(q.Options)...)
	tips := labelLog[string]{}

	for _, v := range values {
		for _, value := range v.Value.Values {
			counts.inc(value)
			tips.add(value, v.Label)
		}
		if v.Value.Other {
			counts.inc(normalize.OtherKey)
			tips.add(normalize.OtherKey, v.Label)
		}
	}

	totalResponses := len(values)
	agg := models.CheckboxAggregate{
		Values:         counts.order,
		Labels:         make([]string, len(counts.order)),
		Data:           make([]int, len(counts.order)),
		Percentages:    make([]int, len(counts.order)),
		Tooltips:       make([]string, len(counts.order)),
		TotalResponses: totalResponses,
	}
	for i, value := range counts.order {
		agg.Labels[i] = q.OptionLabel(value)
		agg.Data[i] = counts.counts[value]
		agg.Percentages[i] = percent(agg.Data[i], totalResponses)
		agg.Tooltips[i] = tips.tooltip(value)
	}
	return agg
}
