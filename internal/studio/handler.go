package studio

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BatyaBracha/IntegrAIte/internal/bots"
	"github.com/BatyaBracha/IntegrAIte/internal/notify"
)

// Handler exposes the studio over localhost HTTP so a browser UI can
// drive it. It adds no behavior of its own: every request maps onto one
// studio intent and answers with the resulting state.
type Handler struct {
	studio *Studio
	toasts *notify.Scheduler
}

func NewHandler(s *Studio, toasts *notify.Scheduler) *Handler {
	return &Handler{studio: s, toasts: toasts}
}

func (h *Handler) State(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.studio.Snapshot())
}

func (h *Handler) GenerateBlueprint(w http.ResponseWriter, r *http.Request) {
	var answers bots.InterviewAnswers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	h.studio.GenerateBlueprint(r.Context(), answers)
	writeJSON(w, http.StatusOK, h.studio.Snapshot())
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if payload.Content == "" {
		http.Error(w, "missing content", http.StatusBadRequest)
		return
	}

	h.studio.SendMessage(r.Context(), payload.Content)
	writeJSON(w, http.StatusOK, h.studio.Snapshot())
}

func (h *Handler) FetchSnippet(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if payload.Language == "" {
		http.Error(w, "missing language", http.StatusBadRequest)
		return
	}

	h.studio.FetchSnippet(r.Context(), payload.Language)
	writeJSON(w, http.StatusOK, h.studio.Snapshot())
}

func (h *Handler) SwitchSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	h.studio.SwitchSession(r.Context(), payload.SessionID)
	writeJSON(w, http.StatusOK, h.studio.Snapshot())
}

func (h *Handler) Toasts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.toasts.Toasts())
}

func (h *Handler) DismissToast(w http.ResponseWriter, r *http.Request) {
	h.toasts.Dismiss(chi.URLParam(r, "toastID"))
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
