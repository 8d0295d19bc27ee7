// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rankedchoice tabulates ranked ballots.

# Borda Count

Each placement earns optionCount - position points, position being 0-based,
so on a three-option ballot [A, B, C] A earns 3, B 2 and C 1. Per-position
counters record how often each option landed at each position.

	result := rankedchoice.Borda(ballots, q.RankChoices())

Rankings are sorted by descending points. Equal points keep the order in
which the options were declared.

# Instant-Runoff Voting

Every round gives each ballot to its highest-placed candidate that is still
active, then eliminates every candidate tied at the lowest count at once:

	Counting ──▶ Eliminating ──▶ Counting          (more than one left)
	                        ├──▶ winner            (exactly one left)
	                        └──▶ no winner         (everyone tied)

	result := rankedchoice.InstantRunoff(ballots, q.RankChoices())

Each round records its counts, the number of ballots and the eliminated
candidates. Results are fully determined by ballot and option order.
*/
package rankedchoice
