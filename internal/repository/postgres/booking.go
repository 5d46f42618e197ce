package postgres

import (
	"context"
	"database/sql"
	"time"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/repository"

	"github.com/lib/pq"
)

type bookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, user_id, property_id, government_id_proof, COALESCE(booking_status, ''), payment_status, payment_method, COALESCE(transaction_id, ''), total_price, property_status, start_date, end_date, created_on, updated_on`

// activeBookingFilter matches bookings that hold a property: confirmed and paid.
const activeBookingFilter = `booking_status = 'confirmed' AND payment_status = 'done'`

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	var startDate, endDate sql.NullTime
	var createdOn, updatedOn time.Time
	err := row.Scan(&b.ID, &b.UserID, &b.PropertyID, &b.GovernmentIDProof, &b.BookingStatus, &b.PaymentStatus, &b.PaymentMethod,
		&b.TransactionID, &b.TotalPrice, &b.PropertyStatus, &startDate, &endDate, &createdOn, &updatedOn)
	if err != nil {
		return nil, translateError(err)
	}
	b.StartDate = nullDateString(startDate)
	b.EndDate = nullDateString(endDate)
	b.CreatedOn = formatDate(createdOn)
	b.UpdatedOn = formatDate(updatedOn)
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	logger.EnterMethod(ctx, "bookingRepository.Create", "userID", b.UserID, "propertyID", b.PropertyID)

	query := `INSERT INTO bookings (user_id, property_id, government_id_proof, booking_status, payment_status, payment_method,
	          transaction_id, total_price, property_status, start_date, end_date, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	logger.DatabaseCall(ctx, "INSERT", "bookings", "userID", b.UserID, "propertyID", b.PropertyID)

	now := time.Now()
	var transactionID any
	if b.TransactionID != "" {
		transactionID = b.TransactionID
	}
	var status any
	if b.BookingStatus != "" {
		status = string(b.BookingStatus)
	}
	err := r.db.QueryRowContext(ctx, query, b.UserID, b.PropertyID, b.GovernmentIDProof, status, string(b.PaymentStatus), b.PaymentMethod,
		transactionID, b.TotalPrice, string(b.PropertyStatus), dateArg(b.StartDate), dateArg(b.EndDate), now, now).Scan(&b.ID)
	logger.DatabaseResult(ctx, "INSERT", 1, err, "bookingID", b.ID)
	if err != nil {
		err = translateError(err)
		logger.ExitMethodWithError(ctx, "bookingRepository.Create", err, "propertyID", b.PropertyID)
		return err
	}
	b.CreatedOn = formatDate(now)
	b.UpdatedOn = b.CreatedOn

	logger.ExitMethod(ctx, "bookingRepository.Create", "bookingID", b.ID)
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.db.QueryRowContext(ctx, query, id))
}

func (r *bookingRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	logger.DatabaseCall(ctx, "SELECT FOR UPDATE", "bookings", "bookingID", id)
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	logger.DatabaseResult(ctx, "SELECT FOR UPDATE", 1, err, "bookingID", id)
	return b, err
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	query := `UPDATE bookings SET booking_status = $1, updated_on = $2 WHERE id = $3`
	logger.DatabaseCall(ctx, "UPDATE", "bookings", "bookingID", id, "status", status)
	result, err := r.db.ExecContext(ctx, query, string(status), time.Now(), id)
	if err != nil {
		err = translateError(err)
		logger.DatabaseResult(ctx, "UPDATE", 0, err, "bookingID", id)
		return err
	}
	n, err := result.RowsAffected()
	logger.DatabaseResult(ctx, "UPDATE", n, err, "bookingID", id)
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) HasActiveByUser(ctx context.Context, userID, propertyID int32) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE user_id = $1 AND property_id = $2 AND ` + activeBookingFilter + `)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, propertyID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *bookingRepository) ListActiveByProperty(ctx context.Context, propertyID int32) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE property_id = $1 AND ` + activeBookingFilter + ` ORDER BY start_date NULLS FIRST, id`
	rows, err := r.db.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *bookingRepository) ListByProperties(ctx context.Context, propertyIDs []int32, page, pageSize int32) ([]domain.Booking, int32, error) {
	if len(propertyIDs) == 0 {
		return []domain.Booking{}, 0, nil
	}
	ids := pq.Array(propertyIDs)

	var total int32
	countQuery := `SELECT count(*) FROM bookings WHERE property_id = ANY($1)`
	if err := r.db.QueryRowContext(ctx, countQuery, ids).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE property_id = ANY($1) ORDER BY id LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, ids, pageSize, pageOffset(page, pageSize))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Booking, int32, error) {
	var total int32
	countQuery := `SELECT count(*) FROM bookings WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, pageOffset(page, pageSize))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func collectBookings(rows *sql.Rows) ([]domain.Booking, error) {
	bookings := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
