package bots

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/bots/blueprint", h.CreateBlueprint)
	r.Post("/bots/{botID}/playground", h.Playground)
	r.Get("/bots/{botID}/snippet", h.Snippet)
	r.Get("/bots/session/{sessionID}", h.SessionState)
}
