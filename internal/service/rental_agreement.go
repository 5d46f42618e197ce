package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/repository"
)

type CreateAgreementInput struct {
	PropertyID          int32                `json:"property_id"`
	BookingID           int32                `json:"booking_id"`
	SecurityDeposit     *int32               `json:"security_deposit"`
	LeaseDuration       *string              `json:"lease_duration"`
	BookingConfirmation domain.BookingStatus `json:"booking_confirmation"`
}

func (in *CreateAgreementInput) validate() error {
	v := &ValidationError{}
	if in.PropertyID <= 0 {
		v.Add("property_id", "property ID is required")
	}
	if in.BookingID <= 0 {
		v.Add("booking_id", "booking ID is required")
	}
	if in.SecurityDeposit != nil && *in.SecurityDeposit < 0 {
		v.Add("security_deposit", "security deposit cannot be negative")
	}
	if in.LeaseDuration != nil {
		trimmed := strings.TrimSpace(*in.LeaseDuration)
		in.LeaseDuration = &trimmed
	}
	if !in.BookingConfirmation.IsValid() {
		v.Add("booking_confirmation", "booking confirmation must be confirmed, pending, cancelled or rejected")
	}
	return v.OrNil()
}

type rentalAgreementService struct {
	tx         repository.Transactor
	agreements repository.RentalAgreementRepository
	notify     *notifier
}

func NewRentalAgreementService(
	tx repository.Transactor,
	agreements repository.RentalAgreementRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) RentalAgreementService {
	return &rentalAgreementService{
		tx:         tx,
		agreements: agreements,
		notify:     newNotifier(noteRepo, emailSvc),
	}
}

func (s *rentalAgreementService) CreateRentalAgreement(ctx context.Context, caller domain.Caller, in CreateAgreementInput) (*domain.AgreementBundle, error) {
	logger.EnterMethod(ctx, "rentalAgreementService.CreateRentalAgreement", "ownerID", caller.UserID, "bookingID", in.BookingID)

	if err := in.validate(); err != nil {
		logger.ExitMethodWithError(ctx, "rentalAgreementService.CreateRentalAgreement", err, "reason", "validation")
		return nil, err
	}

	var (
		bundle   *domain.AgreementBundle
		booker   *domain.User
		property *domain.Property
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		booking, err := repos.Bookings.GetByIDForUpdate(ctx, in.BookingID)
		if err != nil {
			return notFound("booking", err)
		}
		if !booking.IsActive() {
			return fmt.Errorf("%w: booking must be confirmed and paid before an agreement is issued", ErrInvalidState)
		}
		property, err = repos.Properties.GetByID(ctx, in.PropertyID)
		if err != nil {
			return notFound("property", err)
		}
		if property.OwnerID != caller.UserID {
			return fmt.Errorf("%w: only the property owner can issue a rental agreement", ErrForbidden)
		}
		if booking.PropertyID != property.ID {
			return fieldError("property_id", "booking does not belong to this property")
		}

		if _, err := repos.Agreements.GetByBookingID(ctx, booking.ID); err == nil {
			return fmt.Errorf("%w: rental agreement already exists for this booking", ErrConflict)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		agreement := &domain.RentalAgreement{
			PropertyID:          property.ID,
			BookingID:           booking.ID,
			SecurityDeposit:     in.SecurityDeposit,
			LeaseDuration:       in.LeaseDuration,
			BookingConfirmation: in.BookingConfirmation,
		}
		if err := repos.Agreements.Create(ctx, agreement); err != nil {
			if errors.Is(err, repository.ErrUniqueViolation) {
				return fmt.Errorf("%w: rental agreement already exists for this booking", ErrConflict)
			}
			return err
		}

		owner, err := repos.Users.GetByID(ctx, property.OwnerID)
		if err != nil {
			return notFound("owner", err)
		}
		booker, err = repos.Users.GetByID(ctx, booking.UserID)
		if err != nil {
			return notFound("user", err)
		}
		bundle = &domain.AgreementBundle{
			Agreement: agreement,
			Property:  property.Summary(),
			Owner:     owner.Contact(),
			Booker:    booker.Contact(),
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError(ctx, "rentalAgreementService.CreateRentalAgreement", err, "bookingID", in.BookingID)
		return nil, err
	}

	s.notify.agreementIssued(ctx, booker, property, bundle.Agreement)

	logger.ExitMethod(ctx, "rentalAgreementService.CreateRentalAgreement", "agreementID", bundle.Agreement.ID)
	return bundle, nil
}

func (s *rentalAgreementService) ListRentalAgreements(ctx context.Context, caller domain.Caller) ([]domain.RentalAgreement, error) {
	switch {
	case caller.Role == domain.UserRoleOwner:
		return s.agreements.ListByOwner(ctx, caller.UserID)
	case caller.Role.CanBook():
		return s.agreements.ListByBooker(ctx, caller.UserID)
	}
	return nil, fmt.Errorf("%w: unknown role %q", ErrForbidden, caller.Role)
}
