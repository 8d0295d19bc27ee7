// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/normalize"
	"github.com/danielhkuo/quickly-tally/rankedchoice"
)

var ErrUnsupportedType = errors.New("unsupported question type")

// Options tunes aggregation. The zero value is ready to use.
type Options struct {
	// TextSamples is how many raw answers text aggregates keep.
	// 0 means DefaultTextSamples, negative keeps all.
	TextSamples int
}

func (o Options) textSamples() int {
	if o.TextSamples == 0 {
		return DefaultTextSamples
	}
	return o.TextSamples
}

type computeFunc func(q models.Question, entries []normalize.Entry, view string, opts Options) models.QuestionResult

var computers = map[models.QuestionType]computeFunc{
	models.TypeRadio: func(q models.Question, e []normalize.Entry, _ string, _ Options) models.QuestionResult {
		agg := Radio(normalize.Radio(e), q)
		return models.QuestionResult{Radio: &agg}
	},
	models.TypeCheckbox: func(q models.Question, e []normalize.Entry, _ string, _ Options) models.QuestionResult {
		agg := Checkbox(normalize.Checkbox(e), q)
		return models.QuestionResult{Checkbox: &agg}
	},
	models.TypeShortText: computeText,
	models.TypeLongText:  computeText,
	models.TypeMatrix2D: func(q models.Question, e []normalize.Entry, _ string, _ Options) models.QuestionResult {
		if q.Matrix == nil || len(q.Matrix.Rows) == 0 || len(q.Matrix.Columns) == 0 {
			warnConfig(q, "matrix rows and columns")
		}
		agg := Matrix(normalize.Matrix(e), q)
		return models.QuestionResult{Matrix: &agg}
	},
	models.TypeLikert: func(q models.Question, e []normalize.Entry, _ string, _ Options) models.QuestionResult {
		if q.LikertScale == nil || q.LikertScale.Max < q.LikertScale.Min {
			warnConfig(q, "likert scale")
		}
		agg := Likert(normalize.Likert(e), q)
		return models.QuestionResult{Likert: &agg}
	},
	models.TypeMultiValueSlider: func(q models.Question, e []normalize.Entry, _ string, _ Options) models.QuestionResult {
		agg := Slider(normalize.Slider(e), q)
		return models.QuestionResult{Slider: &agg}
	},
	models.TypeRangeSlider: func(q models.Question, e []normalize.Entry, _ string, _ Options) models.QuestionResult {
		if _, ok := rangeConfig(q); !ok {
			warnConfig(q, "range slider bounds")
		}
		agg := Range(normalize.Range(e), q)
		return models.QuestionResult{Range: &agg}
	},
	models.TypeTags: func(_ models.Question, e []normalize.Entry, _ string, _ Options) models.QuestionResult {
		agg := Tags(normalize.Tags(e))
		return models.QuestionResult{Tags: &agg}
	},
	models.TypeRankOptions: func(q models.Question, e []normalize.Entry, view string, _ Options) models.QuestionResult {
		options := q.RankChoices()
		if len(options) == 0 {
			warnConfig(q, "rank options")
		}
		ballots := normalize.Values(normalize.Ballots(e, len(options)))
		if view == models.ViewIRV {
			res := rankedchoice.InstantRunoff(ballots, options)
			return models.QuestionResult{Runoff: &res}
		}
		res := rankedchoice.Borda(ballots, options)
		return models.QuestionResult{Ranking: &res}
	},
}

func computeText(_ models.Question, e []normalize.Entry, _ string, opts Options) models.QuestionResult {
	agg := Text(normalize.Text(e), opts.textSamples())
	return models.QuestionResult{Text: &agg}
}

// Compute aggregates the entries of one question for the given view.
// Malformed entries are skipped; only an unknown question type is an error.
func Compute(q models.Question, entries []normalize.Entry, view string, opts Options) (models.QuestionResult, error) {
	fn, ok := computers[q.Type]
	if !ok {
		return models.QuestionResult{}, fmt.Errorf("%w: %q", ErrUnsupportedType, q.Type)
	}
	res := fn(q, entries, view, opts)
	res.QuestionID = q.ID
	res.Type = q.Type
	res.Title = q.Title
	res.View = view
	return res, nil
}

// Supported reports whether Compute handles questions of type t.
func Supported(t models.QuestionType) bool {
	_, ok := computers[t]
	return ok
}

func warnConfig(q models.Question, missing string) {
	slog.Warn("question configuration incomplete, returning empty aggregate",
		"question_id", q.ID,
		"type", q.Type,
		"missing", missing,
	)
}
