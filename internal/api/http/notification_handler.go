package http

import (
	"net/http"

	"estatehub-backend/internal/domain"
)

func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	pageNum, pageSize := pageParams(r)
	notes, total, err := h.Notifications.GetNotifications(r.Context(), caller.UserID, pageNum, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page[domain.Notification]{Items: notes, Total: total, Page: pageNum, PageSize: pageSize})
}

func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
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
	if err := h.Notifications.MarkAsRead(r.Context(), caller.UserID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
