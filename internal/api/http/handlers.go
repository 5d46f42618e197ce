package http

import (
	"net/http"
	"strconv"

	"estatehub-backend/internal/service"

	"github.com/gorilla/mux"
)

// Handlers bundles the services exposed over HTTP.
type Handlers struct {
	Auth          service.AuthService
	Users         service.UserService
	Properties    service.PropertyService
	Shortlists    service.ShortlistService
	Bookings      service.BookingService
	Agreements    service.RentalAgreementService
	Notifications service.NotificationService
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, &service.ValidationError{Fields: map[string]string{name: "must be a positive integer"}}
	}
	return int32(id), nil
}

func queryInt32(r *http.Request, name string) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0
	}
	return int32(v)
}

// pageParams reads page and page_size, applying the list defaults so the
// response echoes what was actually served.
func pageParams(r *http.Request) (int32, int32) {
	return service.NormalizePage(queryInt32(r, "page"), queryInt32(r, "page_size"))
}

type messageResponse struct {
	Message string `json:"message"`
}

type page[T any] struct {
	Items    []T   `json:"items"`
	Total    int32 `json:"total"`
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
}
