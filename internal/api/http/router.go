package http

import (
	"context"
	"net/http"

	"estatehub-backend/internal/config"

	"github.com/gorilla/mux"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewRouter registers every API route under /api/v1. Route names key the
// security table in config.
func NewRouter(h *Handlers, auth *AuthMiddleware, db Pinger) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", healthz(db)).Methods(http.MethodGet).Name(config.RouteHealth)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Handler)

	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost).Name(config.RouteRegister)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost).Name(config.RouteLogin)
	api.HandleFunc("/auth/refresh", h.Refresh).Methods(http.MethodPost).Name(config.RouteRefresh)
	api.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost).Name(config.RouteLogout)

	api.HandleFunc("/me", h.GetProfile).Methods(http.MethodGet).Name(config.RouteGetProfile)
	api.HandleFunc("/me", h.UpdateProfile).Methods(http.MethodPatch).Name(config.RouteUpdateProfile)
	api.HandleFunc("/me/password", h.ChangePassword).Methods(http.MethodPost).Name(config.RouteChangePassword)

	api.HandleFunc("/properties", h.ListProperties).Methods(http.MethodGet).Name(config.RouteListProperties)
	api.HandleFunc("/properties", h.CreateProperty).Methods(http.MethodPost).Name(config.RouteCreateProperty)
	api.HandleFunc("/properties/{id:[0-9]+}", h.GetProperty).Methods(http.MethodGet).Name(config.RouteGetProperty)
	api.HandleFunc("/properties/{id:[0-9]+}", h.UpdateProperty).Methods(http.MethodPut).Name(config.RouteUpdateProperty)
	api.HandleFunc("/properties/{id:[0-9]+}", h.DeleteProperty).Methods(http.MethodDelete).Name(config.RouteDeleteProperty)
	api.HandleFunc("/properties/{id:[0-9]+}/bookings", h.CreateBooking).Methods(http.MethodPost).Name(config.RouteCreateBooking)

	api.HandleFunc("/shortlist", h.ListShortlist).Methods(http.MethodGet).Name(config.RouteListShortlist)
	api.HandleFunc("/shortlist/{id:[0-9]+}", h.AddToShortlist).Methods(http.MethodPost).Name(config.RouteAddShortlist)
	api.HandleFunc("/shortlist/{id:[0-9]+}", h.RemoveFromShortlist).Methods(http.MethodDelete).Name(config.RouteRemoveShortlist)

	api.HandleFunc("/bookings", h.ListBookings).Methods(http.MethodGet).Name(config.RouteListBookings)
	api.HandleFunc("/bookings/{id:[0-9]+}", h.GetBooking).Methods(http.MethodGet).Name(config.RouteGetBooking)
	api.HandleFunc("/bookings/{id:[0-9]+}/status", h.UpdateBookingStatus).Methods(http.MethodPatch).Name(config.RouteBookingStatus)
	api.HandleFunc("/bookings/{id:[0-9]+}/history", h.GetBookingHistory).Methods(http.MethodGet).Name(config.RouteBookingHistory)

	api.HandleFunc("/rental-agreements", h.CreateRentalAgreement).Methods(http.MethodPost).Name(config.RouteCreateAgreement)
	api.HandleFunc("/rental-agreements", h.ListRentalAgreements).Methods(http.MethodGet).Name(config.RouteListAgreements)

	api.HandleFunc("/notifications", h.ListNotifications).Methods(http.MethodGet).Name(config.RouteListNotification)
	api.HandleFunc("/notifications/{id:[0-9]+}/read", h.MarkNotificationRead).Methods(http.MethodPost).Name(config.RouteMarkNotification)

	return RequestID(AccessLog(router))
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
