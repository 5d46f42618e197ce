package http

import (
	"net/http"

	"estatehub-backend/internal/service"
)

func (h *Handlers) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	property, err := h.Properties.GetProperty(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

// ListProperties returns the caller's listings for owners and bookable
// listings for tenants and buyers.
func (h *Handlers) ListProperties(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	properties, err := h.Properties.ListProperties(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

func (h *Handlers) CreateProperty(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.PropertyInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	property, err := h.Properties.CreateProperty(r.Context(), caller, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, property)
}

func (h *Handlers) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.PropertyInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	property, err := h.Properties.UpdateProperty(r.Context(), caller, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

func (h *Handlers) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Properties.DeleteProperty(r.Context(), caller, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Property deleted successfully"})
}
