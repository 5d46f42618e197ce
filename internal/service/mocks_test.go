package service_test

import (
	"context"
	"time"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, id int32, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockPropertyRepo
type MockPropertyRepo struct {
	mock.Mock
}

func (m *MockPropertyRepo) GetByID(ctx context.Context, id int32) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Property, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) ListAvailable(ctx context.Context, status domain.PropertyStatus) ([]domain.Property, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) Create(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}
func (m *MockPropertyRepo) Update(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}
func (m *MockPropertyRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockShortlistRepo
type MockShortlistRepo struct {
	mock.Mock
}

func (m *MockShortlistRepo) Add(ctx context.Context, userID, propertyID int32) (bool, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Bool(0), args.Error(1)
}
func (m *MockShortlistRepo) Remove(ctx context.Context, userID, propertyID int32) error {
	args := m.Called(ctx, userID, propertyID)
	return args.Error(0)
}
func (m *MockShortlistRepo) ListByUser(ctx context.Context, userID int32) ([]domain.ShortlistedProperty, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.ShortlistedProperty), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockBookingRepo) HasActiveByUser(ctx context.Context, userID, propertyID int32) (bool, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) ListActiveByProperty(ctx context.Context, propertyID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByProperties(ctx context.Context, propertyIDs []int32, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, propertyIDs, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

// MockAgreementRepo
type MockAgreementRepo struct {
	mock.Mock
}

func (m *MockAgreementRepo) Create(ctx context.Context, agreement *domain.RentalAgreement) error {
	args := m.Called(ctx, agreement)
	return args.Error(0)
}
func (m *MockAgreementRepo) GetByBookingID(ctx context.Context, bookingID int32) (*domain.RentalAgreement, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalAgreement), args.Error(1)
}
func (m *MockAgreementRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.RentalAgreement, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.RentalAgreement), args.Error(1)
}
func (m *MockAgreementRepo) ListByBooker(ctx context.Context, userID int32) ([]domain.RentalAgreement, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.RentalAgreement), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockRevokedTokenRepo
type MockRevokedTokenRepo struct {
	mock.Mock
}

func (m *MockRevokedTokenRepo) Revoke(ctx context.Context, jti string, userID int32, expiresAt time.Time) error {
	args := m.Called(ctx, jti, userID, expiresAt)
	return args.Error(0)
}
func (m *MockRevokedTokenRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}
func (m *MockRevokedTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockHistoryRepo
type MockHistoryRepo struct {
	mock.Mock
}

func (m *MockHistoryRepo) Append(ctx context.Context, change *domain.BookingStatusChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}
func (m *MockHistoryRepo) ListByBooking(ctx context.Context, bookingID int32) ([]domain.BookingStatusChange, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.BookingStatusChange), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingRequestNotification(ctx context.Context, ownerEmail, ownerName, bookerName, propertyName string, booking *domain.Booking) error {
	args := m.Called(ctx, ownerEmail, ownerName, bookerName, propertyName, booking)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingStatusNotification(ctx context.Context, bookerEmail, bookerName, propertyName string, status domain.BookingStatus) error {
	args := m.Called(ctx, bookerEmail, bookerName, propertyName, status)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalAgreementNotification(ctx context.Context, bookerEmail, bookerName, propertyName string, agreement *domain.RentalAgreement) error {
	args := m.Called(ctx, bookerEmail, bookerName, propertyName, agreement)
	return args.Error(0)
}

// MockMailSender
type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// fakeTransactor runs the callback with the mock repositories and records
// whether the unit of work succeeded.
type fakeTransactor struct {
	repos     repository.Repositories
	committed int
	rolled    int
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	if err := fn(ctx, f.repos); err != nil {
		f.rolled++
		return err
	}
	f.committed++
	return nil
}

type repoSet struct {
	users      *MockUserRepo
	properties *MockPropertyRepo
	bookings   *MockBookingRepo
	agreements *MockAgreementRepo
	notes      *MockNotificationRepo
	history    *MockHistoryRepo
	shortlists *MockShortlistRepo
	email      *MockEmailService
	tx         *fakeTransactor
}

func newRepoSet() *repoSet {
	rs := &repoSet{
		users:      new(MockUserRepo),
		properties: new(MockPropertyRepo),
		bookings:   new(MockBookingRepo),
		agreements: new(MockAgreementRepo),
		notes:      new(MockNotificationRepo),
		history:    new(MockHistoryRepo),
		shortlists: new(MockShortlistRepo),
		email:      new(MockEmailService),
	}
	rs.tx = &fakeTransactor{repos: repository.Repositories{
		Users:      rs.users,
		Properties: rs.properties,
		Bookings:   rs.bookings,
		Agreements: rs.agreements,
	}}
	return rs
}
