// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package prefs

import (
	"slices"

	"github.com/danielhkuo/quickly-tally/models"
)

type viewSet struct {
	def     string
	allowed []string
}

var catalog = map[models.QuestionType]viewSet{
	models.TypeRadio: {models.ViewPie, []string{
		models.ViewPie, models.ViewDoughnut, models.ViewHorizontalBar, models.ViewVerticalBar,
	}},
	models.TypeCheckbox: {models.ViewHorizontalBar, []string{
		models.ViewHorizontalBar, models.ViewVerticalBar, models.ViewStackedBar, models.ViewRadar,
	}},
	models.TypeMatrix2D: {models.ViewHeatmap, []string{
		models.ViewHeatmap, models.ViewGroupedBar, models.ViewRadar, models.ViewBubble,
	}},
	models.TypeLikert: {models.ViewHeatmap, []string{
		models.ViewHeatmap, models.ViewStackedBar,
	}},
	models.TypeRangeSlider: {models.ViewHistogram, []string{
		models.ViewHistogram,
	}},
	models.TypeTags: {models.ViewWordcloud, []string{
		models.ViewWordcloud,
	}},
	models.TypeMultiValueSlider: {models.ViewHistogram, []string{
		models.ViewHistogram, models.ViewBoxplot, models.ViewStackedPositions,
	}},
	models.TypeRankOptions: {models.ViewRankedOrder, []string{
		models.ViewRankedOrder, models.ViewStackedPositions, models.ViewIRV,
	}},
	models.TypeShortText: {models.ViewWordcloud, []string{
		models.ViewWordcloud, models.ViewList,
	}},
	models.TypeLongText: {models.ViewWordcloud, []string{
		models.ViewWordcloud, models.ViewList,
	}},
}

// DefaultView returns the view used for t when nothing else is chosen.
func DefaultView(t models.QuestionType) string {
	return catalog[t].def
}

// AllowedViews lists the views a question of type t can be shown as.
func AllowedViews(t models.QuestionType) []string {
	return slices.Clone(catalog[t].allowed)
}

// Allowed reports whether view is valid for t.
func Allowed(t models.QuestionType, view string) bool {
	return slices.Contains(catalog[t].allowed, view)
}

// Resolve picks the view for q: a saved preference first, then the view
// named in the survey definition, then the type default. Views not valid
// for the question type are skipped.
func Resolve(q models.Question, saved map[string]models.Visualization) string {
	if v, ok := saved[q.ID]; ok && Allowed(q.Type, v.Type) {
		return v.Type
	}
	if q.Visualization != nil && Allowed(q.Type, q.Visualization.Type) {
		return q.Visualization.Type
	}
	return DefaultView(q.Type)
}
