// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/quickly-tally/aggregate"
	"github.com/danielhkuo/quickly-tally/filter"
	"github.com/danielhkuo/quickly-tally/metrics"
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/normalize"
	"github.com/danielhkuo/quickly-tally/prefs"
	"github.com/danielhkuo/quickly-tally/survey"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidView      = errors.New("view not available for question type")
)

const DefaultWorkers = 4

type Config struct {
	Workers int
	Options aggregate.Options
}

// Builder turns a survey snapshot into result reports.
type Builder struct {
	prefs   prefs.Store
	metrics *metrics.Metrics
	cfg     Config
	now     func() time.Time
}

// NewBuilder returns a Builder. prefs and m may be nil.
func NewBuilder(store prefs.Store, m *metrics.Metrics, cfg Config) *Builder {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	return &Builder{prefs: store, metrics: m, cfg: cfg, now: time.Now}
}

// Build filters the snapshot's responses and aggregates every question,
// grouped by step in definition order. Questions of unsupported types are
// logged and left out.
func (b *Builder) Build(ctx context.Context, snap survey.Snapshot, f filter.Filters) (models.Report, error) {
	now := b.now()
	records := filter.Apply(snap.Responses, f, now)

	saved, err := b.savedViews(ctx)
	if err != nil {
		return models.Report{}, err
	}

	questions := snap.Survey.Questions()
	results := make([]*models.QuestionResult, len(questions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Workers)
	for i, q := range questions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := b.compute(q, records, prefs.Resolve(q, saved))
			if errors.Is(err, aggregate.ErrUnsupportedType) {
				slog.Warn("skipping question", "question_id", q.ID, "error", err)
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = &res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.Report{}, fmt.Errorf("failed to build report: %w", err)
	}

	rep := models.Report{
		SurveyID:    snap.Survey.ID,
		GeneratedAt: now,
		DateRange:   string(dateRangeOrAll(f.DateRange)),
		Overview:    overview(snap.Responses, records, now),
		Steps:       groupBySteps(snap.Survey, questions, results),
	}
	b.metrics.ObserveReport(rep.DateRange, len(records))
	return rep, nil
}

// Question aggregates one question. An empty view resolves through the
// stored preferences.
func (b *Builder) Question(ctx context.Context, snap survey.Snapshot, f filter.Filters, questionID, view string) (models.QuestionResult, error) {
	q, ok := snap.Survey.Question(questionID)
	if !ok {
		return models.QuestionResult{}, fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
	}

	if view == "" {
		saved, err := b.savedViews(ctx)
		if err != nil {
			return models.QuestionResult{}, err
		}
		view = prefs.Resolve(q, saved)
	} else if !prefs.Allowed(q.Type, view) {
		return models.QuestionResult{}, fmt.Errorf("%w: %s cannot be shown as %s", ErrInvalidView, q.Type, view)
	}

	records := filter.Apply(snap.Responses, f, b.now())
	return b.compute(q, records, view)
}

func (b *Builder) compute(q models.Question, records []models.ResponseRecord, view string) (models.QuestionResult, error) {
	start := time.Now()
	res, err := aggregate.Compute(q, normalize.Extract(records, q.ID), view, b.cfg.Options)
	if err != nil {
		b.metrics.AggregationFailed(string(q.Type))
		return models.QuestionResult{}, err
	}
	b.metrics.ObserveAggregation(string(q.Type), view, time.Since(start))
	return res, nil
}

func (b *Builder) savedViews(ctx context.Context) (map[string]models.Visualization, error) {
	if b.prefs == nil {
		return nil, nil
	}
	saved, err := b.prefs.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return saved, nil
}

func overview(all, filtered []models.ResponseRecord, now time.Time) models.Overview {
	ov := models.Overview{
		TotalResponses:    len(all),
		FilteredResponses: len(filtered),
	}
	var last time.Time
	for _, rec := range filtered {
		if at, ok := rec.SubmittedAt(); ok && at.After(last) {
			last = at
		}
	}
	if !last.IsZero() {
		ov.LastResponseAt = &last
		ov.LastResponseAgo = humanize.RelTime(last, now, "ago", "from now")
	}
	return ov
}

func groupBySteps(s models.Survey, questions []models.Question, results []*models.QuestionResult) []models.StepResult {
	byStep := make(map[string][]models.QuestionResult, len(s.Steps))
	for i, q := range questions {
		if results[i] != nil {
			byStep[q.StepID] = append(byStep[q.StepID], *results[i])
		}
	}

	steps := make([]models.StepResult, 0, len(s.Steps))
	for _, step := range s.Steps {
		qs, ok := byStep[step.ID]
		if !ok {
			continue
		}
		steps = append(steps, models.StepResult{
			ID:          step.ID,
			Title:       step.Title,
			Description: step.Description,
			Questions:   qs,
		})
	}
	return steps
}

func dateRangeOrAll(d filter.DateRange) filter.DateRange {
	if d == "" {
		return filter.RangeAll
	}
	return d
}
