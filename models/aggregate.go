// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Aggregate types. Slices in a bucketed aggregate are parallel: index i of
// Values, Labels, Data, Percentages and Tooltips describe the same bucket.

type RadioAggregate struct {
	Values      []string `json:"values"`
	Labels      []string `json:"labels"`
	Data        []int    `json:"data"`
	Percentages []int    `json:"percentages"`
	Tooltips    []string `json:"tooltips"`
	Total       int      `json:"total"`
}

type CheckboxAggregate struct {
	Values         []string `json:"values"`
	Labels         []string `json:"labels"`
	Data           []int    `json:"data"`
	Percentages    []int    `json:"percentages"`
	Tooltips       []string `json:"tooltips"`
	TotalResponses int      `json:"totalResponses"`
}

type WordCount struct {
	Text   string `json:"text"`
	Weight int    `json:"weight"`
}

type TextAggregate struct {
	TotalResponses int         `json:"totalResponses"`
	AverageLength  int         `json:"averageLength"`
	TopWords       []WordCount `json:"topWords"`
	Samples        []string    `json:"samples"`
}

type MatrixAggregate struct {
	Rows           []MatrixAxis                 `json:"rows"`
	Columns        []MatrixAxis                 `json:"columns"`
	Counts         map[string]map[string]int    `json:"counts"`
	Percentages    map[string]map[string]int    `json:"percentages"`
	Tooltips       map[string]map[string]string `json:"tooltips"`
	Totals         map[string]int               `json:"totals"`
	TotalResponses int                          `json:"totalResponses"`
}

type LikertAggregate struct {
	Options                 []Option                  `json:"options"`
	ScaleValues             []int                     `json:"scaleValues"`
	ScaleLabels             map[int]string            `json:"scaleLabels"`
	Counts                  map[string]map[int]int    `json:"counts"`
	Percentages             map[string]map[int]int    `json:"percentages"`
	Tooltips                map[string]map[int]string `json:"tooltips"`
	TotalResponsesPerOption map[string]int            `json:"totalResponsesPerOption"`
	TotalResponses          int                       `json:"totalResponses"`
}

type SliderStats struct {
	Average int     `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Count   int     `json:"count"`
}

type SliderAggregate struct {
	Options        []string               `json:"options"`
	Labels         []string               `json:"labels"`
	Statistics     map[string]SliderStats `json:"statistics"`
	TotalResponses int                    `json:"totalResponses"`
}

type RangeAggregate struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
	Total  int      `json:"total"`
}

type TagsAggregate struct {
	TotalTags int         `json:"totalTags"`
	TopTags   []WordCount `json:"topTags"`
}

// Ranked-choice results

type RankedOption struct {
	OptionID       string `json:"optionId"`
	Label          string `json:"label"`
	Points         int    `json:"points"`
	PositionCounts []int  `json:"positionCounts"`
}

type RankingResult struct {
	Rankings       []RankedOption `json:"rankings"`
	TotalResponses int            `json:"totalResponses"`
	OptionCount    int            `json:"optionCount"`
}

type IRVRound struct {
	Counts     map[string]int `json:"counts"`
	TotalVotes int            `json:"totalVotes"`
	Eliminated []string       `json:"eliminated"`
}

type IRVResult struct {
	Winner *string    `json:"winner"`
	Rounds []IRVRound `json:"rounds"`
}

// QuestionResult is the aggregate for one question under one view. Exactly
// one of the aggregate fields is populated, selected by Type (and View for
// rank questions).
type QuestionResult struct {
	QuestionID string       `json:"question_id"`
	Type       QuestionType `json:"type"`
	Title      string       `json:"title"`
	View       string       `json:"view"`

	Radio    *RadioAggregate    `json:"radio,omitempty"`
	Checkbox *CheckboxAggregate `json:"checkbox,omitempty"`
	Text     *TextAggregate     `json:"text,omitempty"`
	Matrix   *MatrixAggregate   `json:"matrix,omitempty"`
	Likert   *LikertAggregate   `json:"likert,omitempty"`
	Slider   *SliderAggregate   `json:"slider,omitempty"`
	Range    *RangeAggregate    `json:"range,omitempty"`
	Tags     *TagsAggregate     `json:"tags,omitempty"`
	Ranking  *RankingResult     `json:"ranking,omitempty"`
	Runoff   *IRVResult         `json:"runoff,omitempty"`
}

// Report types

type Overview struct {
	TotalResponses    int        `json:"total_responses"`
	FilteredResponses int        `json:"filtered_responses"`
	LastResponseAt    *time.Time `json:"last_response_at,omitempty"`
	LastResponseAgo   string     `json:"last_response_ago,omitempty"`
}

type StepResult struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Questions   []QuestionResult `json:"questions"`
}

type Report struct {
	SurveyID    string       `json:"survey_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	DateRange   string       `json:"date_range"`
	Overview    Overview     `json:"overview"`
	Steps       []StepResult `json:"steps"`
}
