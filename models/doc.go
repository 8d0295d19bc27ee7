// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the survey, response, aggregate and API types.

# Survey Definition

  - Survey: id, title and ordered steps
  - Step: a titled group of questions
  - Question: id, type, options and the type-specific config
    (Matrix, LikertScale, RankOptions, RangeSlider, TagOptions)
  - Visualization: a view name plus free-form chart options

Survey.Questions flattens the steps and stamps step metadata on each
question.

# Responses

  - ResponseRecord: one respondent, with raw answers per question
  - Answer: the submitted value, kept as raw JSON until normalized

# Aggregates

One aggregate per question type (RadioAggregate, CheckboxAggregate,
TextAggregate, MatrixAggregate, LikertAggregate, SliderAggregate,
RangeAggregate, TagsAggregate) plus RankingResult and IRVResult for
ranked questions. QuestionResult holds exactly one of them.

Report groups question results by step with an Overview of response
counts.

# API Types

  - SavePreferenceRequest: type, options
  - SurveyResponse: survey, filterable
  - RespondentsResponse: total, respondents
  - PreferencesResponse, ImportPreferencesResponse
  - ErrorResponse: error, message

# Constants

Question types:

	TypeRadio, TypeCheckbox, TypeShortText, TypeLongText, TypeMatrix2D,
	TypeLikert, TypeMultiValueSlider, TypeRankOptions, TypeRangeSlider, TypeTags

Views:

	ViewPie, ViewDoughnut, ViewHorizontalBar, ViewVerticalBar, ViewStackedBar,
	ViewRadar, ViewHeatmap, ViewGroupedBar, ViewBubble, ViewHistogram,
	ViewBoxplot, ViewWordcloud, ViewList, ViewRankedOrder,
	ViewStackedPositions, ViewIRV
*/
package models
