package http

import (
	"net/http"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/service"
)

type userResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.Users.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{Message: "User registered successfully", User: user})
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.Users.GetProfile(r.Context(), caller.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.UpdateProfileInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.Users.UpdateProfile(r.Context(), caller.UserID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Message: "Profile updated successfully", User: user})
}

func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.ChangePasswordInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Users.ChangePassword(r.Context(), caller.UserID, in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Password updated successfully"})
}
