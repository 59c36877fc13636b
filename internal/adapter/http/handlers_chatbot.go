package http

import (
	"net/http"

	"github.com/botforge/botforge/internal/domain/chatbot"
)

// CreateChatbot handles POST /api/v1/chatbots
func (h *Handlers) CreateChatbot(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := actingUser(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[chatbot.CreateRequest](w, r)
	if !ok {
		return
	}

	b, err := h.Chatbots.Create(r.Context(), ownerID, req)
	if err != nil {
		writeDomainError(w, err, "chatbot creation failed")
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// ListChatbots handles GET /api/v1/chatbots
func (h *Handlers) ListChatbots(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := actingUser(w, r)
	if !ok {
		return
	}

	bots, err := h.Chatbots.List(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, err, "failed to list chatbots")
		return
	}
	writeJSON(w, http.StatusOK, bots)
}

// GetChatbot handles GET /api/v1/chatbots/{id}
func (h *Handlers) GetChatbot(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := actingUser(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	b, err := h.Chatbots.Get(r.Context(), ownerID, id)
	if err != nil {
		writeDomainError(w, err, "chatbot not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// UpdateChatbot handles PATCH /api/v1/chatbots/{id}
func (h *Handlers) UpdateChatbot(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := actingUser(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := readJSON[chatbot.UpdateRequest](w, r)
	if !ok {
		return
	}

	b, err := h.Chatbots.Update(r.Context(), ownerID, id, req)
	if err != nil {
		writeDomainError(w, err, "chatbot not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// DeleteChatbot handles DELETE /api/v1/chatbots/{id}
func (h *Handlers) DeleteChatbot(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := actingUser(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.Chatbots.Delete(r.Context(), ownerID, id); err != nil {
		writeDomainError(w, err, "chatbot not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
