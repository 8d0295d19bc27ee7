// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rankedchoice

import (
	"sort"

	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/normalize"
)

// Borda scores ballots over the declared options. Placements of undeclared
// options or beyond the option count earn nothing.
func Borda(ballots []normalize.Ballot, options []models.Option) models.RankingResult {
	n := len(options)
	rankings := make([]models.RankedOption, 0, n)
	index := make(map[string]int, n)
	for _, opt := range options {
		if _, dup := index[opt.Value]; dup {
			continue
		}
		index[opt.Value] = len(rankings)
		rankings = append(rankings, models.RankedOption{
			OptionID:       opt.Value,
			Label:          optionLabel(opt),
			PositionCounts: make([]int, n),
		})
	}

	for _, ballot := range ballots {
		for _, p := range ballot {
			i, ok := index[p.Option]
			if !ok || p.Position < 0 || p.Position >= n {
				continue
			}
			rankings[i].Points += n - p.Position
			rankings[i].PositionCounts[p.Position]++
		}
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Points > rankings[j].Points
	})

	return models.RankingResult{
		Rankings:       rankings,
		TotalResponses: len(ballots),
		OptionCount:    n,
	}
}

func optionLabel(opt models.Option) string {
	if opt.Label != "" {
		return opt.Label
	}
	return opt.Value
}
