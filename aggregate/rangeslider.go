// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"math"
	"strconv"

	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/normalize"
)

// defaultRange applies when a question declares no slider bounds.
var defaultRange = models.RangeSlider{Min: 0, Max: 100, Step: 1}

// Range bins single-value slider answers into one bucket per step between
// min and max. Values outside the range are ignored; Total counts binned
// values only.
func Range(values []normalize.Labeled[int], q models.Question) models.RangeAggregate {
	agg := models.RangeAggregate{Labels: []string{}, Data: []int{}}
	cfg, ok := rangeConfig(q)
	if !ok {
		return agg
	}

	bins := int(math.Floor((cfg.Max-cfg.Min)/cfg.Step)) + 1
	agg.Labels = make([]string, bins)
	agg.Data = make([]int, bins)
	for i := range bins {
		agg.Labels[i] = strconv.FormatFloat(cfg.Min+float64(i)*cfg.Step, 'f', -1, 64)
	}

	for _, v := range values {
		f := float64(v.Value)
		if f < cfg.Min || f > cfg.Max {
			continue
		}
		idx := int(math.Floor((f - cfg.Min) / cfg.Step))
		if idx < 0 || idx >= bins {
			continue
		}
		agg.Data[idx]++
		agg.Total++
	}
	return agg
}

// maxRangeBins bounds the histogram a slider definition can ask for.
const maxRangeBins = 10000

// rangeConfig resolves the question's slider bounds. A zero step means 1.
// Bounds that are not finite, or that would need more than maxRangeBins
// buckets, are unusable.
func rangeConfig(q models.Question) (models.RangeSlider, bool) {
	cfg := defaultRange
	if q.RangeSlider != nil {
		cfg = *q.RangeSlider
	}
	if cfg.Step == 0 {
		cfg.Step = 1
	}
	for _, f := range []float64{cfg.Min, cfg.Max, cfg.Step} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return cfg, false
		}
	}
	if cfg.Step <= 0 || cfg.Max < cfg.Min {
		return cfg, false
	}
	bins := math.Floor((cfg.Max-cfg.Min)/cfg.Step) + 1
	return cfg, !math.IsInf(bins, 0) && bins <= maxRangeBins
}
