// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielhkuo/quickly-tally/aggregate"
	"github.com/danielhkuo/quickly-tally/filter"
	"github.com/danielhkuo/quickly-tally/middleware"
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/report"
	"github.com/danielhkuo/quickly-tally/survey"
)

// filterParamPrefix marks a question filter query parameter: filter.<questionId>=value
const filterParamPrefix = "filter."

var errUnknownFilter = errors.New("unknown filter question")

type ResultsHandler struct {
	src     survey.Source
	builder *report.Builder
}

func NewResultsHandler(src survey.Source, builder *report.Builder) *ResultsHandler {
	return &ResultsHandler{src: src, builder: builder}
}

// GetResults handles GET /results?dateRange=week&filter.<qid>=a&filter.<qid>=b
// Returns the aggregate of every question, grouped by step
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	snap, ok := loadSnapshot(w, r, h.src)
	if !ok {
		return
	}

	f, err := parseFilters(r.URL.Query(), snap.Survey)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := h.builder.Build(r.Context(), snap, f)
	if err != nil {
		slog.Error("failed to build report",
			"request_id", middleware.RequestID(r.Context()),
			"survey_id", snap.Survey.ID,
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, rep)
}

// GetQuestionResults handles GET /results/{questionId}?view=irv
// An omitted view falls back to the saved preference
func (h *ResultsHandler) GetQuestionResults(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionId")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "questionId is required")
		return
	}

	snap, ok := loadSnapshot(w, r, h.src)
	if !ok {
		return
	}

	query := r.URL.Query()
	f, err := parseFilters(query, snap.Survey)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.builder.Question(r.Context(), snap, f, questionID, query.Get("view"))
	switch {
	case errors.Is(err, report.ErrQuestionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	case errors.Is(err, report.ErrInvalidView), errors.Is(err, aggregate.ErrUnsupportedType):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("failed to compute question",
			"request_id", middleware.RequestID(r.Context()),
			"question_id", questionID,
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, res)
}

// parseFilters reads dateRange and filter.<qid> parameters. Filter values
// may be repeated or comma separated.
func parseFilters(query url.Values, s models.Survey) (filter.Filters, error) {
	dateRange, err := filter.ParseDateRange(query.Get("dateRange"))
	if err != nil {
		return filter.Filters{}, err
	}

	f := filter.Filters{DateRange: dateRange}
	for key, values := range query {
		qid, ok := strings.CutPrefix(key, filterParamPrefix)
		if !ok {
			continue
		}
		if _, known := s.Question(qid); !known {
			return filter.Filters{}, fmt.Errorf("%w: %s", errUnknownFilter, qid)
		}
		var allowed []string
		for _, v := range values {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					allowed = append(allowed, part)
				}
			}
		}
		if len(allowed) == 0 {
			continue
		}
		if f.Questions == nil {
			f.Questions = make(map[string][]string)
		}
		f.Questions[qid] = allowed
	}
	return f, nil
}
