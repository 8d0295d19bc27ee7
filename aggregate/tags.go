// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/normalize"
)

// Tags counts case-insensitive tag frequencies, most used first.
func Tags(values []normalize.Labeled[[]string]) models.TagsAggregate {
	lower := cases.Lower(language.Und)
	counts := newOrderedCounts()
	total := 0
	for _, v := range values {
		for _, tag := range v.Value {
			counts.inc(fold(lower, tag))
			total++
		}
	}
	return models.TagsAggregate{
		TotalTags: total,
		TopTags:   topCounts(counts, 0),
	}
}
