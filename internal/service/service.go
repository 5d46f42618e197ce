package service

import (
	"context"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/security"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*TokenPair, *domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, access *security.UserClaims, refreshToken string) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, in UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int32, in ChangePasswordInput) error
}

// PropertyService is the owner-facing catalog. The booking engine only reads
// properties.
type PropertyService interface {
	GetProperty(ctx context.Context, id int32) (*domain.Property, error)
	ListProperties(ctx context.Context, caller domain.Caller) ([]domain.Property, error)
	CreateProperty(ctx context.Context, caller domain.Caller, in PropertyInput) (*domain.Property, error)
	UpdateProperty(ctx context.Context, caller domain.Caller, id int32, in PropertyInput) (*domain.Property, error)
	DeleteProperty(ctx context.Context, caller domain.Caller, id int32) error
}

type ShortlistService interface {
	AddToShortlist(ctx context.Context, userID, propertyID int32) (bool, error)
	RemoveFromShortlist(ctx context.Context, userID, propertyID int32) error
	ListShortlist(ctx context.Context, userID int32) ([]domain.ShortlistedProperty, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, caller domain.Caller, propertyID int32, in CreateBookingInput) (*domain.Booking, error)
	TransitionBookingStatus(ctx context.Context, caller domain.Caller, bookingID int32, requested domain.BookingStatus) (*StatusChangeResult, error)
	GetBooking(ctx context.Context, caller domain.Caller, bookingID int32) (*domain.BookingDetails, error)
	ListOwnerBookings(ctx context.Context, caller domain.Caller, page, pageSize int32) ([]domain.Booking, int32, error)
	ListMyBookings(ctx context.Context, caller domain.Caller, page, pageSize int32) ([]domain.Booking, int32, error)
	GetStatusHistory(ctx context.Context, caller domain.Caller, bookingID int32) ([]domain.BookingStatusChange, error)
}

type RentalAgreementService interface {
	CreateRentalAgreement(ctx context.Context, caller domain.Caller, in CreateAgreementInput) (*domain.AgreementBundle, error)
	ListRentalAgreements(ctx context.Context, caller domain.Caller) ([]domain.RentalAgreement, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendBookingRequestNotification(ctx context.Context, ownerEmail, ownerName, bookerName, propertyName string, booking *domain.Booking) error
	SendBookingStatusNotification(ctx context.Context, bookerEmail, bookerName, propertyName string, status domain.BookingStatus) error
	SendRentalAgreementNotification(ctx context.Context, bookerEmail, bookerName, propertyName string, agreement *domain.RentalAgreement) error
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NormalizePage applies the default page size and caps it at the maximum.
func NormalizePage(page, pageSize int32) (int32, int32) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
