package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Auth
		r.Post("/auth/login", h.Login)

		// Chatbots
		r.Get("/chatbots", h.ListChatbots)
		r.Post("/chatbots", h.CreateChatbot)
		r.Get("/chatbots/{id}", h.GetChatbot)
		r.Patch("/chatbots/{id}", h.UpdateChatbot)
		r.Delete("/chatbots/{id}", h.DeleteChatbot)

		// Contact block (singleton, nested under chatbots)
		r.Post("/chatbots/{id}/contact", h.CreateContact)
		r.Get("/chatbots/{id}/contact", h.GetContact)
		r.Patch("/chatbots/{id}/contact", h.UpdateContact)

		// Schedule blocks (collection, nested under chatbots)
		r.Post("/chatbots/{id}/schedules", h.CreateSchedule)
		r.Get("/chatbots/{id}/schedules", h.ListSchedules)
		r.Get("/chatbots/{id}/schedules/{entityId}", h.GetSchedule)
		r.Patch("/chatbots/{id}/schedules/{entityId}", h.UpdateSchedule)
		r.Delete("/chatbots/{id}/schedules/{entityId}", h.DeleteSchedule)

		// Tags
		r.Get("/tags", h.ListTags)
		r.Post("/tags", h.CreateTag)
		r.Get("/tags/{id}", h.GetTag)
		r.Patch("/tags/{id}", h.UpdateTag)
		r.Delete("/tags/{id}", h.DeleteTag)
	})
}
