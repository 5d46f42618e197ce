package http

import "net/http"

type shortlistResponse struct {
	Message string `json:"message"`
	Created bool   `json:"created"`
}

func (h *Handlers) ListShortlist(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries, err := h.Shortlists.ListShortlist(r.Context(), caller.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handlers) AddToShortlist(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	propertyID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := h.Shortlists.AddToShortlist(r.Context(), caller.UserID, propertyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if created {
		writeJSON(w, http.StatusCreated, shortlistResponse{Message: "Property shortlisted", Created: true})
		return
	}
	writeJSON(w, http.StatusOK, shortlistResponse{Message: "Already shortlisted"})
}

func (h *Handlers) RemoveFromShortlist(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	propertyID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Shortlists.RemoveFromShortlist(r.Context(), caller.UserID, propertyID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Property removed from shortlist"})
}
