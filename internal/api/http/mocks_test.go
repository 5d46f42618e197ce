package http_test

import (
	"context"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/security"
	"estatehub-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.TokenPair, *domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*service.TokenPair), args.Get(1).(*domain.User), args.Error(2)
}
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}
func (m *MockAuthService) Logout(ctx context.Context, access *security.UserClaims, refreshToken string) error {
	args := m.Called(ctx, access, refreshToken)
	return args.Error(0)
}
func (m *MockAuthService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

// MockPropertyService
type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) GetProperty(ctx context.Context, id int32) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyService) ListProperties(ctx context.Context, caller domain.Caller) ([]domain.Property, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).([]domain.Property), args.Error(1)
}
func (m *MockPropertyService) CreateProperty(ctx context.Context, caller domain.Caller, in service.PropertyInput) (*domain.Property, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyService) UpdateProperty(ctx context.Context, caller domain.Caller, id int32, in service.PropertyInput) (*domain.Property, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyService) DeleteProperty(ctx context.Context, caller domain.Caller, id int32) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

// MockUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, in service.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateProfile(ctx context.Context, userID int32, in service.UpdateProfileInput) (*domain.User, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ChangePassword(ctx context.Context, userID int32, in service.ChangePasswordInput) error {
	args := m.Called(ctx, userID, in)
	return args.Error(0)
}

// MockShortlistService
type MockShortlistService struct {
	mock.Mock
}

func (m *MockShortlistService) AddToShortlist(ctx context.Context, userID, propertyID int32) (bool, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Bool(0), args.Error(1)
}
func (m *MockShortlistService) RemoveFromShortlist(ctx context.Context, userID, propertyID int32) error {
	args := m.Called(ctx, userID, propertyID)
	return args.Error(0)
}
func (m *MockShortlistService) ListShortlist(ctx context.Context, userID int32) ([]domain.ShortlistedProperty, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.ShortlistedProperty), args.Error(1)
}

// MockBookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, caller domain.Caller, propertyID int32, in service.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, caller, propertyID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) TransitionBookingStatus(ctx context.Context, caller domain.Caller, bookingID int32, requested domain.BookingStatus) (*service.StatusChangeResult, error) {
	args := m.Called(ctx, caller, bookingID, requested)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StatusChangeResult), args.Error(1)
}
func (m *MockBookingService) GetBooking(ctx context.Context, caller domain.Caller, bookingID int32) (*domain.BookingDetails, error) {
	args := m.Called(ctx, caller, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetails), args.Error(1)
}
func (m *MockBookingService) ListOwnerBookings(ctx context.Context, caller domain.Caller, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, caller, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingService) ListMyBookings(ctx context.Context, caller domain.Caller, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, caller, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingService) GetStatusHistory(ctx context.Context, caller domain.Caller, bookingID int32) ([]domain.BookingStatusChange, error) {
	args := m.Called(ctx, caller, bookingID)
	return args.Get(0).([]domain.BookingStatusChange), args.Error(1)
}

// MockAgreementService
type MockAgreementService struct {
	mock.Mock
}

func (m *MockAgreementService) CreateRentalAgreement(ctx context.Context, caller domain.Caller, in service.CreateAgreementInput) (*domain.AgreementBundle, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgreementBundle), args.Error(1)
}
func (m *MockAgreementService) ListRentalAgreements(ctx context.Context, caller domain.Caller) ([]domain.RentalAgreement, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).([]domain.RentalAgreement), args.Error(1)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

type okPinger struct{ err error }

func (p okPinger) PingContext(ctx context.Context) error { return p.err }
