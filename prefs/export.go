// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package prefs

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/quickly-tally/models"
)

// Entry is one question's preference in the survey-definition layout, so
// an export can be pasted back into a definition file.
type Entry struct {
	Visualization models.Visualization `json:"visualization" yaml:"visualization"`
}

// Export returns every stored preference keyed by question ID.
func Export(ctx context.Context, s Store) (map[string]Entry, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Entry, len(all))
	for qid, v := range all {
		out[qid] = Entry{Visualization: v}
	}
	return out, nil
}

type replacer interface {
	ReplaceAll(ctx context.Context, prefs map[string]models.Visualization) error
}

// Import replaces the stored preferences with the entries that name a
// known question and a view valid for its type, and returns how many were
// stored. Other entries are logged and skipped. Preferences absent from
// entries are removed.
func Import(ctx context.Context, s Store, survey models.Survey, entries map[string]Entry) (int, error) {
	valid := make(map[string]models.Visualization, len(entries))
	for qid, e := range entries {
		q, ok := survey.Question(qid)
		if !ok {
			slog.Warn("skipping preference for unknown question", "question_id", qid)
			continue
		}
		if !Allowed(q.Type, e.Visualization.Type) {
			slog.Warn("skipping invalid preference",
				"question_id", qid,
				"type", q.Type,
				"view", e.Visualization.Type,
			)
			continue
		}
		valid[qid] = e.Visualization
	}

	if rs, ok := s.(replacer); ok {
		if err := rs.ReplaceAll(ctx, valid); err != nil {
			return 0, err
		}
		return len(valid), nil
	}
	if err := s.Clear(ctx); err != nil {
		return 0, err
	}
	for qid, v := range valid {
		if err := s.Save(ctx, qid, v); err != nil {
			return 0, err
		}
	}
	return len(valid), nil
}
