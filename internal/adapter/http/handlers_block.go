package http

import (
	"net/http"

	"github.com/botforge/botforge/internal/domain/block"
)

// --- Contact block ---

// CreateContact handles POST /api/v1/chatbots/{id}/contact
func (h *Handlers) CreateContact(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := actingUser(w, r)
	if !ok {
		return
	}
	chatbotID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := readJSON[block.CreateContactRequest](w, r)
	if !ok {
		return
	}

	c, err := h.Blocks.CreateContact(r.Context(), ownerID, chatbotID, req)
	if err != nil {
		writeDomainError(w, err, "chatbot not found")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// GetContact handles GET /api/v1/chatbots/{id}/contact
func (h *Handlers) GetContact(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := actingUser(w, r)
	if !ok {
		return
	}
	chatbotID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	c, err := h.Blocks.GetContact(r.Context(), ownerID, chatbotID)
	if err != nil {
		writeDomainError(w, err, "contact block not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// UpdateContact handles PATCH /api/v1/chatbots/{id}/contact
func (h *Handlers) UpdateContact(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := actingUser(w, r)
	if !ok {
		return
	}
	chatbotID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := readJSON[block.UpdateContactRequest](w, r)
	if !ok {
		return
	}

	c, err := h.Blocks.UpdateContact(r.Context(), ownerID, chatbotID, req)
	if err != nil {
		writeDomainError(w, err, "contact block not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// --- Schedule blocks ---

// CreateSchedule handles POST /api/v1/chatbots/{id}/schedules
func (h *Handlers) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := actingUser(w, r)
	if !ok {
		return
	}
	chatbotID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := readJSON[block.CreateScheduleRequest](w, r)
	if !ok {
		return
	}

	sc, err := h.Blocks.CreateSchedule(r.Context(), ownerID, chatbotID, req)
	if err != nil {
		writeDomainError(w, err, "chatbot not found")
		return
	}
	writeJSON(w, http.StatusCreated, sc)
}

// ListSchedules handles GET /api/v1/chatbots/{id}/schedules
func (h *Handlers) ListSchedules(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := actingUser(w, r)
	if !ok {
		return
	}
	chatbotID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	schedules, err := h.Blocks.ListSchedules(r.Context(), ownerID, chatbotID)
	if err != nil {
		writeDomainError(w, err, "chatbot not found")
		return
	}
	writeJSON(w, http.StatusOK, schedules)
}

// GetSchedule handles GET /api/v1/chatbots/{id}/schedules/{entityId}
func (h *Handlers) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := actingUser(w, r)
	if !ok {
		return
	}
	chatbotID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	entityID, ok := uuidParam(w, r, "entityId")
	if !ok {
		return
	}

	sc, err := h.Blocks.GetSchedule(r.Context(), ownerID, chatbotID, entityID)
	if err != nil {
		writeDomainError(w, err, "schedule block not found")
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

// UpdateSchedule handles PATCH /api/v1/chatbots/{id}/schedules/{entityId}
func (h *Handlers) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := actingUser(w, r)
	if !ok {
		return
	}
	chatbotID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	entityID, ok := uuidParam(w, r, "entityId")
	if !ok {
		return
	}
	req, ok := readJSON[block.UpdateScheduleRequest](w, r)
	if !ok {
		return
	}

	sc, err := h.Blocks.UpdateSchedule(r.Context(), ownerID, chatbotID, entityID, req)
	if err != nil {
		writeDomainError(w, err, "schedule block not found")
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

// DeleteSchedule handles DELETE /api/v1/chatbots/{id}/schedules/{entityId}
func (h *Handlers) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := actingUser(w, r)
	if !ok {
		return
	}
	chatbotID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	entityID, ok := uuidParam(w, r, "entityId")
	if !ok {
		return
	}

	if err := h.Blocks.DeleteSchedule(r.Context(), ownerID, chatbotID, entityID); err != nil {
		writeDomainError(w, err, "schedule block not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
