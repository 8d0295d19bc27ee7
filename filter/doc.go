// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package filter narrows the response set before aggregation.

# Date Ranges

	today    since local midnight
	week     since midnight seven days ago
	month    since midnight on the same day last month
	quarter  since midnight on the same day three months ago
	all      no date filter

A record's date is completedAt, falling back to lastModified. A record
passes when cutoff < date <= now. Records without a date are dropped while a
date filter is active.

# Question Filters

	f := filter.Filters{
		DateRange: filter.RangeWeek,
		Questions: map[string][]string{"role": {"dev", "ops"}},
	}
	kept := filter.Apply(records, f, time.Now())

A record passes a question filter when any value it gave for that question
is in the allow-list. Matrix answers also match on their row ID. A record
that did not answer a filtered question is dropped.
*/
package filter
