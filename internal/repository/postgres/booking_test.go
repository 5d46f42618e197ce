package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/repository"
	"estatehub-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingRowColumns = []string{"id", "user_id", "property_id", "government_id_proof", "booking_status", "payment_status", "payment_method",
	"transaction_id", "total_price", "property_status", "start_date", "end_date", "created_on", "updated_on"}

func strPtr(s string) *string { return &s }

func TestBookingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		booking := &domain.Booking{
			UserID:            3,
			PropertyID:        7,
			GovernmentIDProof: "passport.png",
			BookingStatus:     domain.BookingStatusPending,
			PaymentStatus:     domain.PaymentStatusPending,
			PaymentMethod:     "card",
			TotalPrice:        1200,
			PropertyStatus:    domain.PropertyStatusRent,
			StartDate:         strPtr("2026-03-01"),
			EndDate:           strPtr("2026-03-10"),
		}

		mock.ExpectQuery("INSERT INTO bookings").
			WithArgs(int32(3), int32(7), "passport.png", "pending", "pending", "card", nil, int32(1200), "rent",
				"2026-03-01", "2026-03-10", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		err := repo.Create(ctx, booking)
		assert.NoError(t, err)
		assert.Equal(t, int32(11), booking.ID)
		assert.NotEmpty(t, booking.CreatedOn)
	})

	t.Run("EmptyStatusStoredAsNull", func(t *testing.T) {
		booking := &domain.Booking{
			UserID:            4,
			PropertyID:        8,
			GovernmentIDProof: "id.png",
			PaymentStatus:     domain.PaymentStatusPending,
			PaymentMethod:     "wire",
			TotalPrice:        250000,
			PropertyStatus:    domain.PropertyStatusBuy,
		}

		mock.ExpectQuery("INSERT INTO bookings").
			WithArgs(int32(4), int32(8), "id.png", nil, "pending", "wire", nil, int32(250000), "buy",
				nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

		err := repo.Create(ctx, booking)
		assert.NoError(t, err)
		assert.Equal(t, int32(12), booking.ID)
	})

	t.Run("ExclusionViolation", func(t *testing.T) {
		booking := &domain.Booking{
			UserID:         3,
			PropertyID:     7,
			PaymentStatus:  domain.PaymentStatusDone,
			TransactionID:  "tx-1",
			PropertyStatus: domain.PropertyStatusRent,
			StartDate:      strPtr("2026-03-01"),
			EndDate:        strPtr("2026-03-10"),
		}

		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnError(&pq.Error{Code: "23P01", Constraint: "bookings_active_rent_no_overlap"})

		err := repo.Create(ctx, booking)
		assert.True(t, errors.Is(err, repository.ErrExclusionViolation))
	})

	t.Run("UniqueViolation", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_active_buy_unique"})

		err := repo.Create(ctx, &domain.Booking{PropertyStatus: domain.PropertyStatusBuy})
		assert.ErrorIs(t, err, repository.ErrUniqueViolation)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows(bookingRowColumns).
			AddRow(1, 3, 7, "passport.png", "confirmed", "done", "card", "tx-9", 1200, "rent", start, end, now, now)

		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		booking, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, booking.BookingStatus)
		assert.Equal(t, "tx-9", booking.TransactionID)
		require.NotNil(t, booking.StartDate)
		assert.Equal(t, "2026-03-01", *booking.StartDate)
		assert.Equal(t, "2026-03-10", *booking.EndDate)
		assert.True(t, booking.IsActive())
	})

	t.Run("BuyBookingHasNoDates", func(t *testing.T) {
		rows := sqlmock.NewRows(bookingRowColumns).
			AddRow(2, 3, 8, "id.png", "pending", "pending", "cash", "", 90000, "buy", nil, nil, now, now)

		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs(int32(2)).
			WillReturnRows(rows)

		booking, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		assert.Nil(t, booking.StartDate)
		assert.Nil(t, booking.EndDate)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(bookingRowColumns))

		booking, err := repo.GetByID(ctx, 99)
		assert.Nil(t, booking)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE bookings SET booking_status = \\$1").
		WithArgs("confirmed", sqlmock.AnyArg(), int32(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdateStatus(ctx, 5, domain.BookingStatusConfirmed))

	mock.ExpectExec("UPDATE bookings SET booking_status = \\$1").
		WithArgs("cancelled", sqlmock.AnyArg(), int32(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, 6, domain.BookingStatusCancelled), repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ListByProperties(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("NoProperties", func(t *testing.T) {
		bookings, total, err := repo.ListByProperties(ctx, nil, 1, 10)
		assert.NoError(t, err)
		assert.Empty(t, bookings)
		assert.Equal(t, int32(0), total)
	})

	t.Run("Paged", func(t *testing.T) {
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM bookings WHERE property_id = ANY\\(\\$1\\)").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE property_id = ANY\\(\\$1\\)").
			WithArgs(sqlmock.AnyArg(), int32(10), int32(10)).
			WillReturnRows(sqlmock.NewRows(bookingRowColumns).
				AddRow(4, 3, 7, "id.png", "pending", "pending", "card", "", 1200, "buy", nil, nil, now, now))

		bookings, total, err := repo.ListByProperties(ctx, []int32{7, 8}, 2, 10)
		require.NoError(t, err)
		assert.Equal(t, int32(12), total)
		assert.Len(t, bookings, 1)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_HasActiveByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int32(3), int32(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	active, err := repo.HasActiveByUser(context.Background(), 3, 7)
	assert.NoError(t, err)
	assert.True(t, active)
}
