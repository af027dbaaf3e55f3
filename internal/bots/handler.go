package bots

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CreateBlueprint(w http.ResponseWriter, r *http.Request) {
	var answers InterviewAnswers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid json")
		return
	}

	blueprint, err := h.svc.CreateBlueprint(r.Context(), answers, r.Header.Get("X-Session-ID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blueprint)
}

func (h *Handler) Playground(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if payload.Content == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "content must not be empty")
		return
	}

	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		sessionID = "default"
	}

	reply, err := h.svc.Chat(r.Context(), chi.URLParam(r, "botID"), sessionID, payload.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ChatReply{Reply: reply})
}

func (h *Handler) Snippet(w http.ResponseWriter, r *http.Request) {
	snippet, err := h.svc.Snippet(r.Context(), chi.URLParam(r, "botID"), r.URL.Query().Get("lang"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snippet)
}

func (h *Handler) SessionState(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.SessionState(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if state.History == nil {
		state.History = []ChatTurn{}
	}

	writeJSON(w, http.StatusOK, state)
}

// writeServiceError maps domain errors onto the detail envelope the
// client's error extraction expects.
func writeServiceError(w http.ResponseWriter, err error) {
	var validation *ValidationError
	switch {
	case errors.As(err, &validation):
		writeDetail(w, http.StatusUnprocessableEntity, validation.Detail)
	case errors.Is(err, ErrBlueprintNotFound):
		writeDetail(w, http.StatusNotFound, "bot not found")
	case errors.Is(err, ErrAIUnavailable):
		writeDetail(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeDetail(w, http.StatusInternalServerError, "internal error")
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
