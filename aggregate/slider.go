// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/normalize"
)

// Slider computes per-slider statistics for multi-value slider answers.
// The slider set is the union of keys seen in the answers, in first-seen
// order, and falls back to the declared options only when no answer had
// any key. A slider without numeric values reports zeros.
func Slider(values []normalize.Labeled[[]normalize.Level], q models.Question) models.SliderAggregate {
	seen := newOrderedCounts()
	samples := make(map[string][]float64)
	for _, v := range values {
		for _, lvl := range v.Value {
			seen.touch(lvl.Option)
			if lvl.Numeric {
				samples[lvl.Option] = append(samples[lvl.Option], lvl.Value)
			}
		}
	}

	options := seen.order
	if len(options) == 0 {
		options = optionValues(q.Options)
	}

	agg := models.SliderAggregate{
		Options:        options,
		Labels:         make([]string, len(options)),
		Statistics:     make(map[string]models.SliderStats, len(options)),
		TotalResponses: len(values),
	}
	for i, opt := range options {
		agg.Labels[i] = q.OptionLabel(opt)
		nums := samples[opt]
		lo, hi := bounds(nums)
		agg.Statistics[opt] = models.SliderStats{
			Average: round(mean(nums)),
			Min:     lo,
			Max:     hi,
			Count:   len(nums),
		}
	}
	return agg
}
