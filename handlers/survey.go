// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"cmp"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/danielhkuo/quickly-tally/filter"
	"github.com/danielhkuo/quickly-tally/middleware"
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/survey"
)

type SurveyHandler struct {
	src survey.Source
	now func() time.Time
}

func NewSurveyHandler(src survey.Source) *SurveyHandler {
	return &SurveyHandler{src: src, now: time.Now}
}

// GetSurvey handles GET /survey
// Returns the definition and the questions that can be used as filters
func (h *SurveyHandler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	snap, ok := loadSnapshot(w, r, h.src)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SurveyResponse{
		Survey:     snap.Survey,
		Filterable: filter.Filterable(snap.Survey.Questions()),
	})
}

// GetResponses handles GET /responses?dateRange=
// Lists respondents newest first; undated respondents come last
func (h *SurveyHandler) GetResponses(w http.ResponseWriter, r *http.Request) {
	dateRange, err := filter.ParseDateRange(r.URL.Query().Get("dateRange"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, ok := loadSnapshot(w, r, h.src)
	if !ok {
		return
	}

	records := filter.Apply(snap.Responses, filter.Filters{DateRange: dateRange}, h.now())
	slices.SortStableFunc(records, func(a, b models.ResponseRecord) int {
		at, aok := a.SubmittedAt()
		bt, bok := b.SubmittedAt()
		switch {
		case aok && bok:
			return bt.Compare(at)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return cmp.Compare(a.Label, b.Label)
		}
	})

	respondents := make([]models.RespondentSummary, len(records))
	for i, rec := range records {
		respondents[i] = models.RespondentSummary{
			ID:           rec.ID,
			Label:        rec.Label,
			CompletedAt:  rec.CompletedAt,
			LastModified: rec.LastModified,
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.RespondentsResponse{
		Total:       len(respondents),
		Respondents: respondents,
	})
}

// loadSnapshot writes a 500 and returns false when the survey files cannot be read
func loadSnapshot(w http.ResponseWriter, r *http.Request, src survey.Source) (survey.Snapshot, bool) {
	snap, err := src.Load(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		message := "Survey unavailable"
		if errors.Is(err, survey.ErrInvalidDefinition) || errors.Is(err, survey.ErrInvalidResults) {
			message = "Survey files are invalid"
		}
		slog.Error("failed to load survey",
			"request_id", middleware.RequestID(r.Context()),
			"error", err,
		)
		middleware.ErrorResponse(w, status, message)
		return survey.Snapshot{}, false
	}
	return snap, true
}
