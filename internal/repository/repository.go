package repository

import (
	"context"
	"errors"
	"time"

	"estatehub-backend/internal/domain"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrUniqueViolation and ErrExclusionViolation are returned when a write
	// is refused by a database constraint.
	ErrUniqueViolation    = errors.New("unique constraint violation")
	ErrExclusionViolation = errors.New("exclusion constraint violation")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Update writes the profile fields (email, mobile number, address).
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id int32, passwordHash string) error
}

// PropertyRepository reads listings for the booking engine and writes them
// for the owner-facing catalog.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	GetByID(ctx context.Context, id int32) (*domain.Property, error)
	// GetByIDForUpdate locks the property row until the transaction ends so
	// booking writes on one property are serialized.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Property, error)
	Update(ctx context.Context, property *domain.Property) error
	// Delete removes the property; its bookings, rental agreements and
	// shortlist entries go with it.
	Delete(ctx context.Context, id int32) error
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Property, error)
	ListAvailable(ctx context.Context, status domain.PropertyStatus) ([]domain.Property, error)
}

type ShortlistRepository interface {
	// Add reports false when the property was already shortlisted.
	Add(ctx context.Context, userID, propertyID int32) (bool, error)
	Remove(ctx context.Context, userID, propertyID int32) error
	ListByUser(ctx context.Context, userID int32) ([]domain.ShortlistedProperty, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error
	HasActiveByUser(ctx context.Context, userID, propertyID int32) (bool, error)
	ListActiveByProperty(ctx context.Context, propertyID int32) ([]domain.Booking, error)
	ListByProperties(ctx context.Context, propertyIDs []int32, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Booking, int32, error)
}

type RentalAgreementRepository interface {
	Create(ctx context.Context, agreement *domain.RentalAgreement) error
	GetByBookingID(ctx context.Context, bookingID int32) (*domain.RentalAgreement, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.RentalAgreement, error)
	ListByBooker(ctx context.Context, userID int32) ([]domain.RentalAgreement, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type RevokedTokenRepository interface {
	Revoke(ctx context.Context, jti string, userID int32, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type StatusHistoryRepository interface {
	Append(ctx context.Context, change *domain.BookingStatusChange) error
	ListByBooking(ctx context.Context, bookingID int32) ([]domain.BookingStatusChange, error)
}

// Repositories groups the repositories bound to a single transaction.
type Repositories struct {
	Users      UserRepository
	Properties PropertyRepository
	Bookings   BookingRepository
	Agreements RentalAgreementRepository
}

// Transactor runs fn inside one database transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
