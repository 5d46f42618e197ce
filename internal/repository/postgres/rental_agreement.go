package postgres

import (
	"context"
	"database/sql"
	"time"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/repository"
)

type rentalAgreementRepository struct {
	db DBTX
}

func NewRentalAgreementRepository(db DBTX) repository.RentalAgreementRepository {
	return &rentalAgreementRepository{db: db}
}

const agreementColumns = `ra.id, ra.property_id, ra.booking_id, ra.security_deposit, ra.lease_duration, ra.booking_confirmation, ra.created_on`

func scanAgreement(row rowScanner) (*domain.RentalAgreement, error) {
	a := &domain.RentalAgreement{}
	var deposit sql.NullInt32
	var lease sql.NullString
	var createdOn time.Time
	if err := row.Scan(&a.ID, &a.PropertyID, &a.BookingID, &deposit, &lease, &a.BookingConfirmation, &createdOn); err != nil {
		return nil, translateError(err)
	}
	if deposit.Valid {
		a.SecurityDeposit = &deposit.Int32
	}
	if lease.Valid {
		a.LeaseDuration = &lease.String
	}
	a.CreatedOn = formatDate(createdOn)
	return a, nil
}

func (r *rentalAgreementRepository) Create(ctx context.Context, a *domain.RentalAgreement) error {
	logger.EnterMethod(ctx, "rentalAgreementRepository.Create", "bookingID", a.BookingID, "propertyID", a.PropertyID)

	query := `INSERT INTO rental_agreements (property_id, booking_id, security_deposit, lease_duration, booking_confirmation, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	logger.DatabaseCall(ctx, "INSERT", "rental_agreements", "bookingID", a.BookingID)

	var deposit, lease any
	if a.SecurityDeposit != nil {
		deposit = *a.SecurityDeposit
	}
	if a.LeaseDuration != nil {
		lease = *a.LeaseDuration
	}
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, a.PropertyID, a.BookingID, deposit, lease, string(a.BookingConfirmation), now).Scan(&a.ID)
	logger.DatabaseResult(ctx, "INSERT", 1, err, "agreementID", a.ID)
	if err != nil {
		err = translateError(err)
		logger.ExitMethodWithError(ctx, "rentalAgreementRepository.Create", err, "bookingID", a.BookingID)
		return err
	}
	a.CreatedOn = formatDate(now)

	logger.ExitMethod(ctx, "rentalAgreementRepository.Create", "agreementID", a.ID)
	return nil
}

func (r *rentalAgreementRepository) GetByBookingID(ctx context.Context, bookingID int32) (*domain.RentalAgreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM rental_agreements ra WHERE ra.booking_id = $1`
	return scanAgreement(r.db.QueryRowContext(ctx, query, bookingID))
}

func (r *rentalAgreementRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.RentalAgreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM rental_agreements ra
	          JOIN properties p ON p.id = ra.property_id
	          WHERE p.owner_id = $1 ORDER BY ra.created_on DESC, ra.id DESC`
	return r.list(ctx, query, ownerID)
}

func (r *rentalAgreementRepository) ListByBooker(ctx context.Context, userID int32) ([]domain.RentalAgreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM rental_agreements ra
	          JOIN bookings b ON b.id = ra.booking_id
	          WHERE b.user_id = $1 ORDER BY ra.created_on DESC, ra.id DESC`
	return r.list(ctx, query, userID)
}

func (r *rentalAgreementRepository) list(ctx context.Context, query string, arg int32) ([]domain.RentalAgreement, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agreements := []domain.RentalAgreement{}
	for rows.Next() {
		a, err := scanAgreement(rows)
		if err != nil {
			return nil, err
		}
		agreements = append(agreements, *a)
	}
	return agreements, rows.Err()
}
