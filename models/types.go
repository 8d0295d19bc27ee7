// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"time"
)

// QuestionType identifies how a question's responses are shaped and aggregated.
type QuestionType string

// Question type constants
const (
	TypeRadio            QuestionType = "radio"
	TypeCheckbox         QuestionType = "checkbox"
	TypeShortText        QuestionType = "shortText"
	TypeLongText         QuestionType = "longText"
	TypeMatrix2D         QuestionType = "matrix2d"
	TypeLikert           QuestionType = "likert"
	TypeMultiValueSlider QuestionType = "multiValueSlider"
	TypeRankOptions      QuestionType = "rankOptions"
	TypeRangeSlider      QuestionType = "rangeSlider"
	TypeTags             QuestionType = "tags"
)

// Visualization view constants
const (
	ViewPie              = "pie"
	ViewDoughnut         = "doughnut"
	ViewHorizontalBar    = "horizontalBar"
	ViewVerticalBar      = "verticalBar"
	ViewStackedBar       = "stackedBar"
	ViewRadar            = "radar"
	ViewHeatmap          = "heatmap"
	ViewGroupedBar       = "groupedBar"
	ViewBubble           = "bubble"
	ViewHistogram        = "histogram"
	ViewBoxplot          = "boxplot"
	ViewWordcloud        = "wordcloud"
	ViewList             = "list"
	ViewRankedOrder      = "rankedOrder"
	ViewStackedPositions = "stackedPositions"
	ViewIRV              = "irv"
)

// Survey definition types

type Option struct {
	Value string `json:"value" yaml:"value" validate:"required"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

type MatrixAxis struct {
	ID    string `json:"id" yaml:"id" validate:"required"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

type Matrix struct {
	Rows    []MatrixAxis `json:"rows" yaml:"rows" validate:"dive"`
	Columns []MatrixAxis `json:"columns" yaml:"columns" validate:"dive"`
}

// LikertScale is a closed integer scale. Labels are keyed by the scale value
// rendered as a string ("1", "2", ...).
type LikertScale struct {
	Min    int               `json:"min" yaml:"min"`
	Max    int               `json:"max" yaml:"max" validate:"gtefield=Min"`
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

type RankOptions struct {
	Options []Option `json:"options" yaml:"options" validate:"dive"`
}

type RangeSlider struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max" validate:"gtefield=Min"`
	Step float64 `json:"step" yaml:"step" validate:"gte=0"`
}

type TagOptions struct {
	Tags []string `json:"tags" yaml:"tags"`
}

type Visualization struct {
	Type    string         `json:"type" yaml:"type"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

type Question struct {
	ID            string         `json:"id" yaml:"id" validate:"required"`
	Type          QuestionType   `json:"type" yaml:"type" validate:"required,oneof=radio checkbox shortText longText matrix2d likert multiValueSlider rankOptions rangeSlider tags"`
	Title         string         `json:"title" yaml:"title"`
	Description   string         `json:"description,omitempty" yaml:"description,omitempty"`
	Options       []Option       `json:"options,omitempty" yaml:"options,omitempty" validate:"dive"`
	Matrix        *Matrix        `json:"matrix,omitempty" yaml:"matrix,omitempty"`
	LikertScale   *LikertScale   `json:"likertScale,omitempty" yaml:"likertScale,omitempty"`
	RankOptions   *RankOptions   `json:"rankOptions,omitempty" yaml:"rankOptions,omitempty"`
	RangeSlider   *RangeSlider   `json:"rangeSlider,omitempty" yaml:"rangeSlider,omitempty"`
	TagOptions    *TagOptions    `json:"tagOptions,omitempty" yaml:"tagOptions,omitempty"`
	Visualization *Visualization `json:"visualization,omitempty" yaml:"visualization,omitempty"`

	// Step metadata is stamped on by Survey.Questions.
	StepID          string `json:"stepId,omitempty" yaml:"-"`
	StepTitle       string `json:"stepTitle,omitempty" yaml:"-"`
	StepDescription string `json:"stepDescription,omitempty" yaml:"-"`
}

// OptionLabel returns the declared label for value, or value itself.
func (q Question) OptionLabel(value string) string {
	for _, opt := range q.Options {
		if opt.Value == value {
			if opt.Label != "" {
				return opt.Label
			}
			return value
		}
	}
	return value
}

// RankChoices returns the options a rank question is ranked over.
// rankOptions takes precedence over the plain options list.
func (q Question) RankChoices() []Option {
	if q.RankOptions != nil && len(q.RankOptions.Options) > 0 {
		return q.RankOptions.Options
	}
	return q.Options
}

type Step struct {
	ID          string     `json:"id" yaml:"id" validate:"required"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Questions   []Question `json:"questions" yaml:"questions" validate:"dive"`
}

type Survey struct {
	ID    string `json:"id" yaml:"id" validate:"required"`
	Title string `json:"title" yaml:"title"`
	Steps []Step `json:"steps" yaml:"steps" validate:"required,min=1,dive"`
}

// Questions flattens all steps into one list, copying step metadata onto
// each question.
func (s Survey) Questions() []Question {
	var questions []Question
	for _, step := range s.Steps {
		for _, q := range step.Questions {
			q.StepID = step.ID
			q.StepTitle = step.Title
			q.StepDescription = step.Description
			questions = append(questions, q)
		}
	}
	return questions
}

// Question looks up a question by ID across all steps.
func (s Survey) Question(id string) (Question, bool) {
	for _, q := range s.Questions() {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Response types

// Answer holds one question's raw value exactly as submitted.
type Answer struct {
	Value json.RawMessage `json:"value"`
}

type ResponseRecord struct {
	ID           string            `json:"id"`
	Label        string            `json:"label,omitempty"`
	CompletedAt  *time.Time        `json:"completedAt,omitempty"`
	LastModified *time.Time        `json:"lastModified,omitempty"`
	Responses    map[string]Answer `json:"responses"`
}

// SubmittedAt returns completedAt, falling back to lastModified.
func (r ResponseRecord) SubmittedAt() (time.Time, bool) {
	if r.CompletedAt != nil && !r.CompletedAt.IsZero() {
		return *r.CompletedAt, true
	}
	if r.LastModified != nil && !r.LastModified.IsZero() {
		return *r.LastModified, true
	}
	return time.Time{}, false
}

// ResultsFile is the on-disk envelope for exported responses.
type ResultsFile struct {
	Responses []ResponseRecord `json:"responses"`
}

// Request types

type SavePreferenceRequest struct {
	Type    string         `json:"type"`
	Options map[string]any `json:"options,omitempty"`
}

// Response types

type SurveyResponse struct {
	Survey     Survey   `json:"survey"`
	Filterable []string `json:"filterable"`
}

// PreferenceView describes the view a question is shown with and where
// it came from.
type PreferenceView struct {
	QuestionID string       `json:"question_id"`
	Type       QuestionType `json:"type"`
	View       string       `json:"view"`
	Saved      bool         `json:"saved"`
	Allowed    []string     `json:"allowed"`
}

type PreferencesResponse struct {
	Preferences []PreferenceView `json:"preferences"`
}

type ImportPreferencesResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

type RespondentSummary struct {
	ID           string     `json:"id"`
	Label        string     `json:"label"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	LastModified *time.Time `json:"last_modified,omitempty"`
}

type RespondentsResponse struct {
	Total       int                 `json:"total"`
	Respondents []RespondentSummary `json:"respondents"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
