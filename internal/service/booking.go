package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/repository"
)

type CreateBookingInput struct {
	GovernmentIDProof string               `json:"government_id_proof"`
	PaymentMethod     string               `json:"payment_method"`
	PaymentStatus     domain.PaymentStatus `json:"payment_status"`
	TransactionID     string               `json:"transaction_id"`
	BookingStatus     domain.BookingStatus `json:"booking_status"`
	StartDate         string               `json:"start_date"`
	EndDate           string               `json:"end_date"`
}

// StatusChangeResult reports the outcome of a status request. A refused
// request is not an error: Applied is false and Message carries the reason.
type StatusChangeResult struct {
	Booking *domain.Booking `json:"booking"`
	Applied bool            `json:"applied"`
	Message string          `json:"message"`
}

type BookingOptions struct {
	// ForcePendingStatus ignores the caller-supplied booking_status on create
	// and stores pending. Off by default: the value is stored as given and an
	// omitted status is stored as NULL.
	ForcePendingStatus bool
	Now                func() time.Time
}

type bookingService struct {
	tx         repository.Transactor
	bookings   repository.BookingRepository
	properties repository.PropertyRepository
	users      repository.UserRepository
	history    repository.StatusHistoryRepository
	notify     *notifier
	opts       BookingOptions
}

func NewBookingService(
	tx repository.Transactor,
	bookings repository.BookingRepository,
	properties repository.PropertyRepository,
	users repository.UserRepository,
	history repository.StatusHistoryRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	opts BookingOptions,
) BookingService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &bookingService{
		tx:         tx,
		bookings:   bookings,
		properties: properties,
		users:      users,
		history:    history,
		notify:     newNotifier(noteRepo, emailSvc),
		opts:       opts,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, caller domain.Caller, propertyID int32, in CreateBookingInput) (*domain.Booking, error) {
	logger.EnterMethod(ctx, "bookingService.CreateBooking", "userID", caller.UserID, "propertyID", propertyID)

	if !caller.Role.CanBook() {
		err := fmt.Errorf("%w: role %q cannot place bookings", ErrForbidden, caller.Role)
		logger.ExitMethodWithError(ctx, "bookingService.CreateBooking", err)
		return nil, err
	}
	period, err := s.validateCreate(caller.Role, &in)
	if err != nil {
		logger.ExitMethodWithError(ctx, "bookingService.CreateBooking", err, "reason", "validation")
		return nil, err
	}

	var (
		booking  *domain.Booking
		booker   *domain.User
		property *domain.Property
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		booker, err = repos.Users.GetByID(ctx, caller.UserID)
		if err != nil {
			return notFound("user", err)
		}
		property, err = repos.Properties.GetByIDForUpdate(ctx, propertyID)
		if err != nil {
			return notFound("property", err)
		}
		if property.PropertyStatus != caller.Role.BookableStatus() {
			return fmt.Errorf("%w: a %s cannot book a property listed for %s", ErrInvalidRole, caller.Role, property.PropertyStatus)
		}
		if !property.IsAvailable() {
			return fmt.Errorf("%w: property is not available for booking", ErrInvalidState)
		}

		held, err := repos.Bookings.HasActiveByUser(ctx, caller.UserID, property.ID)
		if err != nil {
			return err
		}
		if held {
			return fmt.Errorf("%w: you already hold an active booking for this property", ErrAlreadyBooked)
		}
		active, err := repos.Bookings.ListActiveByProperty(ctx, property.ID)
		if err != nil {
			return err
		}
		if err := checkActiveConflicts(property.PropertyStatus, period, active, 0); err != nil {
			return err
		}

		booking = &domain.Booking{
			UserID:            caller.UserID,
			PropertyID:        property.ID,
			GovernmentIDProof: in.GovernmentIDProof,
			BookingStatus:     in.BookingStatus,
			PaymentStatus:     in.PaymentStatus,
			PaymentMethod:     in.PaymentMethod,
			TransactionID:     in.TransactionID,
			TotalPrice:        property.TotalPrice,
			PropertyStatus:    property.PropertyStatus,
		}
		if s.opts.ForcePendingStatus {
			booking.BookingStatus = domain.BookingStatusPending
		}
		if property.PropertyStatus == domain.PropertyStatusRent {
			start, end := period.Start.Format(domain.DateLayout), period.End.Format(domain.DateLayout)
			booking.StartDate, booking.EndDate = &start, &end
		}
		if err := repos.Bookings.Create(ctx, booking); err != nil {
			return storageConflict(err)
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError(ctx, "bookingService.CreateBooking", err, "propertyID", propertyID)
		return nil, err
	}

	if owner, err := s.users.GetByID(ctx, property.OwnerID); err != nil {
		logger.Warn("Failed to load property owner for notification", "ownerID", property.OwnerID, "error", err)
	} else {
		s.notify.bookingRequested(ctx, owner, booker, property, booking)
	}

	logger.ExitMethod(ctx, "bookingService.CreateBooking", "bookingID", booking.ID)
	return booking, nil
}

// validateCreate checks the request fields and returns the parsed stay for
// tenants. Buyers' dates are ignored.
func (s *bookingService) validateCreate(role domain.UserRole, in *CreateBookingInput) (domain.DateRange, error) {
	v := &ValidationError{}

	in.GovernmentIDProof = strings.TrimSpace(in.GovernmentIDProof)
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	in.TransactionID = strings.TrimSpace(in.TransactionID)

	if in.GovernmentIDProof == "" {
		v.Add("government_id_proof", "government ID proof is required")
	}
	if in.PaymentMethod == "" {
		v.Add("payment_method", "payment method is required")
	}
	if in.PaymentStatus == "" {
		in.PaymentStatus = domain.PaymentStatusPending
	}
	if !in.PaymentStatus.IsValid() {
		v.Add("payment_status", "payment status must be pending or done")
	} else if in.PaymentStatus == domain.PaymentStatusDone && in.TransactionID == "" {
		v.Add("transaction_id", "transaction ID is required when payment is done")
	}
	if in.BookingStatus != "" && !in.BookingStatus.IsValid() {
		v.Add("booking_status", "invalid booking status")
	}

	var period domain.DateRange
	if role == domain.UserRoleTenant {
		period = s.validateStay(v, in.StartDate, in.EndDate)
	}
	return period, v.OrNil()
}

func (s *bookingService) validateStay(v *ValidationError, startStr, endStr string) domain.DateRange {
	if startStr == "" {
		v.Add("start_date", "start date is required")
	}
	if endStr == "" {
		v.Add("end_date", "end date is required")
	}
	if startStr == "" || endStr == "" {
		return domain.DateRange{}
	}
	start, err := domain.ParseDate(startStr)
	if err != nil {
		v.Add("start_date", "start date must be YYYY-MM-DD")
	}
	end, endErr := domain.ParseDate(endStr)
	if endErr != nil {
		v.Add("end_date", "end date must be YYYY-MM-DD")
	}
	if err != nil || endErr != nil {
		return domain.DateRange{}
	}

	now := s.opts.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if start.Before(today) {
		v.Add("start_date", "start date cannot be in the past")
	}
	if end.Before(start) {
		v.Add("end_date", "end date must be on or after the start date")
	}
	return domain.DateRange{Start: start, End: end}
}

// checkActiveConflicts enforces one active booking per buy property and no
// overlapping active stays per rent property. excludeID skips the booking
// being confirmed.
func checkActiveConflicts(status domain.PropertyStatus, period domain.DateRange, active []domain.Booking, excludeID int32) error {
	for i := range active {
		other := &active[i]
		if other.ID == excludeID {
			continue
		}
		if status == domain.PropertyStatusBuy {
			return fmt.Errorf("%w: property already has an active booking", ErrAlreadyBooked)
		}
		otherPeriod, ok := other.Period()
		if !ok {
			continue
		}
		if period.Overlaps(otherPeriod) {
			return fmt.Errorf("%w: %s overlaps booking %d (%s)", ErrDateConflict, period, other.ID, otherPeriod)
		}
	}
	return nil
}

func (s *bookingService) TransitionBookingStatus(ctx context.Context, caller domain.Caller, bookingID int32, requested domain.BookingStatus) (*StatusChangeResult, error) {
	logger.EnterMethod(ctx, "bookingService.TransitionBookingStatus", "bookingID", bookingID, "requested", requested, "actorID", caller.UserID)

	if !requested.IsValid() {
		err := fieldError("booking_status", "invalid booking status")
		logger.ExitMethodWithError(ctx, "bookingService.TransitionBookingStatus", err, "reason", "validation")
		return nil, err
	}

	var (
		result   *StatusChangeResult
		property *domain.Property
		change   *domain.BookingStatusChange
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		booking, err := repos.Bookings.GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			return notFound("booking", err)
		}
		property, err = repos.Properties.GetByIDForUpdate(ctx, booking.PropertyID)
		if err != nil {
			return notFound("property", err)
		}
		if property.OwnerID != caller.UserID {
			return fmt.Errorf("%w: only the property owner can change a booking's status", ErrForbidden)
		}

		decision := domain.ResolveStatusChange(booking.BookingStatus, booking.PaymentStatus, requested)
		change = &domain.BookingStatusChange{
			BookingID:       booking.ID,
			PropertyID:      booking.PropertyID,
			ActorID:         caller.UserID,
			FromStatus:      booking.BookingStatus,
			RequestedStatus: requested,
			ToStatus:        decision.Next,
			PaymentStatus:   booking.PaymentStatus,
			Applied:         decision.Allowed,
			Reason:          decision.Reason,
			OccurredAt:      s.opts.Now().UTC(),
		}
		if !decision.Allowed {
			result = &StatusChangeResult{Booking: booking, Applied: false, Message: decision.Reason}
			return nil
		}

		if decision.Next == domain.BookingStatusConfirmed {
			active, err := repos.Bookings.ListActiveByProperty(ctx, booking.PropertyID)
			if err != nil {
				return err
			}
			period, _ := booking.Period()
			if err := checkActiveConflicts(booking.PropertyStatus, period, active, booking.ID); err != nil {
				return err
			}
		}
		if err := repos.Bookings.UpdateStatus(ctx, booking.ID, decision.Next); err != nil {
			return storageConflict(err)
		}
		booking.BookingStatus = decision.Next
		result = &StatusChangeResult{
			Booking: booking,
			Applied: true,
			Message: fmt.Sprintf("Booking status updated to %s.", decision.Next),
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError(ctx, "bookingService.TransitionBookingStatus", err, "bookingID", bookingID)
		return nil, err
	}

	if err := s.history.Append(ctx, change); err != nil {
		logger.Warn("Failed to record booking status change", "bookingID", bookingID, "error", err)
	}
	if result.Applied {
		if booker, err := s.users.GetByID(ctx, result.Booking.UserID); err != nil {
			logger.Warn("Failed to load booker for notification", "userID", result.Booking.UserID, "error", err)
		} else {
			s.notify.bookingStatusChanged(ctx, booker, property, result.Booking)
		}
	}

	logger.ExitMethod(ctx, "bookingService.TransitionBookingStatus", "bookingID", bookingID, "applied", result.Applied, "status", result.Booking.BookingStatus)
	return result, nil
}

func (s *bookingService) GetBooking(ctx context.Context, caller domain.Caller, bookingID int32) (*domain.BookingDetails, error) {
	logger.EnterMethod(ctx, "bookingService.GetBooking", "bookingID", bookingID, "callerID", caller.UserID)

	details, err := s.getBooking(ctx, caller, bookingID)
	if err != nil {
		logger.ExitMethodWithError(ctx, "bookingService.GetBooking", err, "bookingID", bookingID)
		return nil, err
	}

	logger.ExitMethod(ctx, "bookingService.GetBooking", "bookingID", bookingID)
	return details, nil
}

func (s *bookingService) getBooking(ctx context.Context, caller domain.Caller, bookingID int32) (*domain.BookingDetails, error) {
	if caller.Role != domain.UserRoleOwner {
		return nil, fmt.Errorf("%w: only property owners can view booking details", ErrForbidden)
	}
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, notFound("booking", err)
	}
	property, err := s.properties.GetByID(ctx, booking.PropertyID)
	if err != nil {
		return nil, notFound("property", err)
	}
	if property.OwnerID != caller.UserID {
		return nil, fmt.Errorf("%w: booking belongs to another owner's property", ErrForbidden)
	}
	booker, err := s.users.GetByID(ctx, booking.UserID)
	if err != nil {
		return nil, notFound("user", err)
	}
	return &domain.BookingDetails{
		Booking:  booking,
		Booker:   booker.Contact(),
		Property: property,
	}, nil
}

func (s *bookingService) ListOwnerBookings(ctx context.Context, caller domain.Caller, page, pageSize int32) ([]domain.Booking, int32, error) {
	logger.EnterMethod(ctx, "bookingService.ListOwnerBookings", "ownerID", caller.UserID, "page", page, "pageSize", pageSize)

	if caller.Role != domain.UserRoleOwner {
		err := fmt.Errorf("%w: only property owners can list bookings on their properties", ErrForbidden)
		logger.ExitMethodWithError(ctx, "bookingService.ListOwnerBookings", err)
		return nil, 0, err
	}
	page, pageSize = NormalizePage(page, pageSize)

	properties, err := s.properties.ListByOwner(ctx, caller.UserID)
	if err != nil {
		logger.ExitMethodWithError(ctx, "bookingService.ListOwnerBookings", err)
		return nil, 0, err
	}
	ids := make([]int32, 0, len(properties))
	for _, p := range properties {
		ids = append(ids, p.ID)
	}
	bookings, total, err := s.bookings.ListByProperties(ctx, ids, page, pageSize)
	if err != nil {
		logger.ExitMethodWithError(ctx, "bookingService.ListOwnerBookings", err)
		return nil, 0, err
	}

	logger.ExitMethod(ctx, "bookingService.ListOwnerBookings", "count", len(bookings), "total", total)
	return bookings, total, nil
}

func (s *bookingService) ListMyBookings(ctx context.Context, caller domain.Caller, page, pageSize int32) ([]domain.Booking, int32, error) {
	logger.EnterMethod(ctx, "bookingService.ListMyBookings", "userID", caller.UserID, "page", page, "pageSize", pageSize)

	if !caller.Role.CanBook() {
		err := fmt.Errorf("%w: role %q has no bookings of its own", ErrForbidden, caller.Role)
		logger.ExitMethodWithError(ctx, "bookingService.ListMyBookings", err)
		return nil, 0, err
	}
	page, pageSize = NormalizePage(page, pageSize)
	bookings, total, err := s.bookings.ListByUser(ctx, caller.UserID, page, pageSize)
	if err != nil {
		logger.ExitMethodWithError(ctx, "bookingService.ListMyBookings", err)
		return nil, 0, err
	}

	logger.ExitMethod(ctx, "bookingService.ListMyBookings", "count", len(bookings), "total", total)
	return bookings, total, nil
}

func (s *bookingService) GetStatusHistory(ctx context.Context, caller domain.Caller, bookingID int32) ([]domain.BookingStatusChange, error) {
	logger.EnterMethod(ctx, "bookingService.GetStatusHistory", "bookingID", bookingID, "callerID", caller.UserID)

	changes, err := s.getStatusHistory(ctx, caller, bookingID)
	if err != nil {
		logger.ExitMethodWithError(ctx, "bookingService.GetStatusHistory", err, "bookingID", bookingID)
		return nil, err
	}

	logger.ExitMethod(ctx, "bookingService.GetStatusHistory", "bookingID", bookingID, "count", len(changes))
	return changes, nil
}

func (s *bookingService) getStatusHistory(ctx context.Context, caller domain.Caller, bookingID int32) ([]domain.BookingStatusChange, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, notFound("booking", err)
	}
	if booking.UserID != caller.UserID {
		property, err := s.properties.GetByID(ctx, booking.PropertyID)
		if err != nil {
			return nil, notFound("property", err)
		}
		if property.OwnerID != caller.UserID {
			return nil, fmt.Errorf("%w: booking history is visible to its owner and booker only", ErrForbidden)
		}
	}
	changes, err := s.history.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load status history: %w", err)
	}
	return changes, nil
}
