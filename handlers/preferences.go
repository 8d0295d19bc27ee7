// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/quickly-tally/auth"
	"github.com/danielhkuo/quickly-tally/cliparse"
	"github.com/danielhkuo/quickly-tally/middleware"
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/prefs"
	"github.com/danielhkuo/quickly-tally/survey"
)

const yamlContentType = "application/yaml"

type PreferencesHandler struct {
	store prefs.Store
	src   survey.Source
	cfg   cliparse.Config
}

func NewPreferencesHandler(store prefs.Store, src survey.Source, cfg cliparse.Config) *PreferencesHandler {
	return &PreferencesHandler{store: store, src: src, cfg: cfg}
}

// ListPreferences handles GET /preferences
// Returns the resolved view of every question and whether it was saved
func (h *PreferencesHandler) ListPreferences(w http.ResponseWriter, r *http.Request) {
	snap, ok := loadSnapshot(w, r, h.src)
	if !ok {
		return
	}

	saved, err := h.store.All(r.Context())
	if err != nil {
		slog.Error("failed to load preferences", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	questions := snap.Survey.Questions()
	views := make([]models.PreferenceView, 0, len(questions))
	for _, q := range questions {
		_, isSaved := saved[q.ID]
		views = append(views, models.PreferenceView{
			QuestionID: q.ID,
			Type:       q.Type,
			View:       prefs.Resolve(q, saved),
			Saved:      isSaved,
			Allowed:    prefs.AllowedViews(q.Type),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.PreferencesResponse{Preferences: views})
}

// ExportPreferences handles GET /preferences/export?format=yaml
// The export uses the survey definition layout so it can be pasted back in
func (h *PreferencesHandler) ExportPreferences(w http.ResponseWriter, r *http.Request) {
	entries, err := prefs.Export(r.Context(), h.store)
	if err != nil {
		slog.Error("failed to export preferences", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		middleware.JSONResponse(w, http.StatusOK, entries)
	case "yaml":
		out, err := yaml.Marshal(entries)
		if err != nil {
			slog.Error("failed to encode preferences", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export preferences")
			return
		}
		w.Header().Set("Content-Type", yamlContentType)
		w.WriteHeader(http.StatusOK)
		w.Write(out)
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "format must be json or yaml")
	}
}

// SavePreference handles PUT /preferences/{questionId}
func (h *PreferencesHandler) SavePreference(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionId")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "questionId is required")
		return
	}

	snap, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.SavePreferenceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	q, found := snap.Survey.Question(questionID)
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if !prefs.Allowed(q.Type, req.Type) {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("%q is not a valid view for %s questions", req.Type, q.Type))
		return
	}

	v := models.Visualization{Type: req.Type, Options: req.Options}
	if err := h.store.Save(r.Context(), questionID, v); err != nil {
		slog.Error("failed to save preference", "question_id", questionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save preference")
		return
	}

	slog.Info("preference saved", "question_id", questionID, "view", req.Type)

	middleware.JSONResponse(w, http.StatusOK, v)
}

// DeletePreference handles DELETE /preferences/{questionId}
func (h *PreferencesHandler) DeletePreference(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionId")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "questionId is required")
		return
	}

	if _, ok := h.authorize(w, r); !ok {
		return
	}

	err := h.store.Delete(r.Context(), questionID)
	if errors.Is(err, prefs.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Preference not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete preference", "question_id", questionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete preference")
		return
	}

	slog.Info("preference deleted", "question_id", questionID)

	w.WriteHeader(http.StatusNoContent)
}

// ClearPreferences handles DELETE /preferences
func (h *PreferencesHandler) ClearPreferences(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authorize(w, r); !ok {
		return
	}

	if err := h.store.Clear(r.Context()); err != nil {
		slog.Error("failed to clear preferences", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to clear preferences")
		return
	}

	slog.Info("preferences cleared")

	w.WriteHeader(http.StatusNoContent)
}

// ImportPreferences handles POST /preferences/import
// Accepts the export layout as JSON, or as YAML with a YAML content type
func (h *PreferencesHandler) ImportPreferences(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var entries map[string]prefs.Entry
	if isYAML(r) {
		defer r.Body.Close()
		if err := yaml.NewDecoder(r.Body).Decode(&entries); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid YAML")
			return
		}
	} else if err := middleware.ParseJSONBody(r, &entries); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	n, err := prefs.Import(r.Context(), h.store, snap.Survey, entries)
	if err != nil {
		slog.Error("failed to import preferences", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to import preferences")
		return
	}

	slog.Info("preferences imported", "imported", n, "skipped", len(entries)-n)

	middleware.JSONResponse(w, http.StatusOK, models.ImportPreferencesResponse{
		Imported: n,
		Skipped:  len(entries) - n,
	})
}

// authorize checks X-Admin-Key against the loaded survey's ID. It writes
// the error response itself and returns false on failure.
func (h *PreferencesHandler) authorize(w http.ResponseWriter, r *http.Request) (survey.Snapshot, bool) {
	snap, ok := loadSnapshot(w, r, h.src)
	if !ok {
		return survey.Snapshot{}, false
	}

	adminKey := r.Header.Get(auth.AdminKeyHeader)
	if err := auth.ValidateAdminKey(snap.Survey.ID, adminKey, h.cfg.AdminKeySalt); err != nil {
		slog.Warn("rejected admin request",
			"request_id", middleware.RequestID(r.Context()),
			"remote", middleware.GetClientIP(r),
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return survey.Snapshot{}, false
	}
	return snap, true
}

func isYAML(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == yamlContentType || mediaType == "application/x-yaml" || mediaType == "text/yaml"
}
