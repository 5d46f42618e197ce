// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic  SecurityLevel = iota // No authentication
	SecurityRefresh                      // Refresh token required
	SecurityAccess                       // Access token required
)

// Route names registered on the HTTP router.
const (
	RouteRegister         = "auth.register"
	RouteLogin            = "auth.login"
	RouteRefresh          = "auth.refresh"
	RouteLogout           = "auth.logout"
	RouteHealth           = "healthz"
	RouteGetProfile       = "me.get"
	RouteUpdateProfile    = "me.update"
	RouteChangePassword   = "me.password"
	RouteListProperties   = "properties.list"
	RouteCreateProperty   = "properties.create"
	RouteGetProperty      = "properties.get"
	RouteUpdateProperty   = "properties.update"
	RouteDeleteProperty   = "properties.delete"
	RouteListShortlist    = "shortlist.list"
	RouteAddShortlist     = "shortlist.add"
	RouteRemoveShortlist  = "shortlist.remove"
	RouteCreateBooking    = "bookings.create"
	RouteListBookings     = "bookings.list"
	RouteGetBooking       = "bookings.get"
	RouteBookingStatus    = "bookings.status"
	RouteBookingHistory   = "bookings.history"
	RouteCreateAgreement  = "agreements.create"
	RouteListAgreements   = "agreements.list"
	RouteListNotification = "notifications.list"
	RouteMarkNotification = "notifications.read"
)

// EndpointSecurityConfig maps route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Public
	RouteRegister: SecurityPublic,
	RouteLogin:    SecurityPublic,
	RouteHealth:   SecurityPublic,

	// Refresh Protected
	RouteRefresh: SecurityRefresh,

	// Access Protected
	RouteLogout:           SecurityAccess,
	RouteGetProfile:       SecurityAccess,
	RouteUpdateProfile:    SecurityAccess,
	RouteChangePassword:   SecurityAccess,
	RouteListProperties:   SecurityAccess,
	RouteCreateProperty:   SecurityAccess,
	RouteGetProperty:      SecurityAccess,
	RouteUpdateProperty:   SecurityAccess,
	RouteDeleteProperty:   SecurityAccess,
	RouteListShortlist:    SecurityAccess,
	RouteAddShortlist:     SecurityAccess,
	RouteRemoveShortlist:  SecurityAccess,
	RouteCreateBooking:    SecurityAccess,
	RouteListBookings:     SecurityAccess,
	RouteGetBooking:       SecurityAccess,
	RouteBookingStatus:    SecurityAccess,
	RouteBookingHistory:   SecurityAccess,
	RouteCreateAgreement:  SecurityAccess,
	RouteListAgreements:   SecurityAccess,
	RouteListNotification: SecurityAccess,
	RouteMarkNotification: SecurityAccess,
}

// GetSecurityLevel returns the security level for a given route
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
