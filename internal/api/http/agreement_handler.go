package http

import (
	"net/http"

	"estatehub-backend/internal/service"
)

func (h *Handlers) CreateRentalAgreement(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.CreateAgreementInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	bundle, err := h.Agreements.CreateRentalAgreement(r.Context(), caller, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, bundle)
}

func (h *Handlers) ListRentalAgreements(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	agreements, err := h.Agreements.ListRentalAgreements(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rental_agreements": agreements})
}
