// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"math"
	"strings"

	"golang.org/x/exp/constraints"
)

type number interface {
	constraints.Integer | constraints.Float
}

// round is half-up rounding, so 2.5 → 3 and -2.5 → -2.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// percent returns round(count/total*100), or 0 when total is 0.
func percent(count, total int) int {
	if total <= 0 {
		return 0
	}
	return round(float64(count) / float64(total) * 100)
}

func mean[T number](values []T) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	return sum / float64(len(values))
}

// bounds returns the smallest and largest value, or zero values for an
// empty slice.
func bounds[T constraints.Ordered](values []T) (lo, hi T) {
	if len(values) == 0 {
		return lo, hi
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// labelLog collects respondent labels per bucket in encounter order.
type labelLog[K comparable] map[K][]string

func (l labelLog[K]) add(key K, label string) {
	if label == "" {
		return
	}
	l[key] = append(l[key], label)
}

func (l labelLog[K]) tooltip(key K) string {
	return strings.Join(l[key], ", ")
}

// orderedCounts counts keys while remembering first-seen order.
type orderedCounts struct {
	order  []string
	counts map[string]int
}

func newOrderedCounts(seed ...string) *orderedCounts {
	oc := &orderedCounts{order: make([]string, 0, len(seed)), counts: make(map[string]int, len(seed))}
	for _, k := range seed {
		oc.touch(k)
	}
	return oc
}

func (oc *orderedCounts) touch(key string) {
	if _, ok := oc.counts[key]; !ok {
		oc.order = append(oc.order, key)
		oc.counts[key] = 0
	}
}

func (oc *orderedCounts) inc(key string) {
	oc.touch(key)
	oc.counts[key]++
}
