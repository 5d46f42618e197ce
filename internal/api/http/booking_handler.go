package http

import (
	"net/http"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/service"
)

type statusRequest struct {
	BookingStatus domain.BookingStatus `json:"booking_status"`
}

func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
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
	var in service.CreateBookingInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	booking, err := h.Bookings.CreateBooking(r.Context(), caller, propertyID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

// ListBookings returns bookings on the caller's properties for owners and the
// caller's own bookings for tenants and buyers.
func (h *Handlers) ListBookings(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	pageNum, pageSize := pageParams(r)

	var (
		bookings []domain.Booking
		total    int32
	)
	if caller.Role == domain.UserRoleOwner {
		bookings, total, err = h.Bookings.ListOwnerBookings(r.Context(), caller, pageNum, pageSize)
	} else {
		bookings, total, err = h.Bookings.ListMyBookings(r.Context(), caller, pageNum, pageSize)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page[domain.Booking]{Items: bookings, Total: total, Page: pageNum, PageSize: pageSize})
}

func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
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
	details, err := h.Bookings.GetBooking(r.Context(), caller, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// UpdateBookingStatus answers 200 for refused requests too; the body's
// applied flag tells them apart.
func (h *Handlers) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
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
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.Bookings.TransitionBookingStatus(r.Context(), caller, id, req.BookingStatus)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) GetBookingHistory(w http.ResponseWriter, r *http.Request) {
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
	changes, err := h.Bookings.GetStatusHistory(r.Context(), caller, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": changes})
}
