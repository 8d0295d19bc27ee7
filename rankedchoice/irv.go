// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rankedchoice

import (
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/normalize"
)

// InstantRunoff runs rounds until one candidate is left or every remaining
// candidate ties at the minimum. In the tie case Winner is nil and the last
// round lists all of them as eliminated.
func InstantRunoff(ballots []normalize.Ballot, options []models.Option) models.IRVResult {
	result := models.IRVResult{Rounds: []models.IRVRound{}}

	active := make([]string, 0, len(options))
	seen := make(map[string]bool, len(options))
	for _, opt := range options {
		if !seen[opt.Value] {
			seen[opt.Value] = true
			active = append(active, opt.Value)
		}
	}

	for len(active) > 1 {
		round := tally(ballots, active)
		low := round.Counts[active[0]]
		for _, c := range active[1:] {
			low = min(low, round.Counts[c])
		}

		remaining := make([]string, 0, len(active))
		for _, c := range active {
			if round.Counts[c] == low {
				round.Eliminated = append(round.Eliminated, c)
			} else {
				remaining = append(remaining, c)
			}
		}
		result.Rounds = append(result.Rounds, round)
		active = remaining
	}

	if len(active) == 1 {
		winner := active[0]
		result.Winner = &winner
	}
	return result
}

// tally gives each ballot to its best-placed active candidate.
func tally(ballots []normalize.Ballot, active []string) models.IRVRound {
	counts := make(map[string]int, len(active))
	for _, c := range active {
		counts[c] = 0
	}
	for _, ballot := range ballots {
		for _, p := range ballot {
			if _, ok := counts[p.Option]; ok {
				counts[p.Option]++
				break
			}
		}
	}
	return models.IRVRound{Counts: counts, TotalVotes: len(ballots)}
}
