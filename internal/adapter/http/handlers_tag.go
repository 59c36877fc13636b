package http

import (
	"net/http"

	"github.com/botforge/botforge/internal/domain/tag"
)

// CreateTag handles POST /api/v1/tags
func (h *Handlers) CreateTag(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[tag.CreateRequest](w, r)
	if !ok {
		return
	}

	t, err := h.Tags.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "tag creation failed")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// ListTags handles GET /api/v1/tags
func (h *Handlers) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Tags.List(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to list tags")
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

// GetTag handles GET /api/v1/tags/{id}
func (h *Handlers) GetTag(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	t, err := h.Tags.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "tag not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// UpdateTag handles PATCH /api/v1/tags/{id}
func (h *Handlers) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := readJSON[tag.UpdateRequest](w, r)
	if !ok {
		return
	}

	t, err := h.Tags.Update(r.Context(), id, req)
	if err != nil {
		writeDomainError(w, err, "tag not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteTag handles DELETE /api/v1/tags/{id}
func (h *Handlers) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.Tags.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, "tag not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
