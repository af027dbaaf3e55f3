package studio

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/studio/state", h.State)
	r.Post("/studio/blueprint", h.GenerateBlueprint)
	r.Post("/studio/chat", h.SendMessage)
	r.Post("/studio/snippet", h.FetchSnippet)
	r.Post("/studio/session", h.SwitchSession)
	r.Get("/studio/toasts", h.Toasts)
	r.Delete("/studio/toasts/{toastID}", h.DismissToast)
}
