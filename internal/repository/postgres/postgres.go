package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/repository"

	"github.com/lib/pq"
)

// SQLSTATE codes translated into repository errors.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

const dateLayout = "2006-01-02"

// DBTX is satisfied by both *sql.DB and *sql.Tx so repositories can run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store holds repositories bound to the connection pool and opens
// transactions for writes that must be serialized.
type Store struct {
	db            *sql.DB
	Users         repository.UserRepository
	Properties    repository.PropertyRepository
	Bookings      repository.BookingRepository
	Agreements    repository.RentalAgreementRepository
	Notifications repository.NotificationRepository
	RevokedTokens repository.RevokedTokenRepository
	Shortlists    repository.ShortlistRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewUserRepository(db),
		Properties:    NewPropertyRepository(db),
		Bookings:      NewBookingRepository(db),
		Agreements:    NewRentalAgreementRepository(db),
		Notifications: NewNotificationRepository(db),
		RevokedTokens: NewRevokedTokenRepository(db),
		Shortlists:    NewShortlistRepository(db),
	}
}

// DB exposes the underlying pool for jobs that run their own statements.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	repos := repository.Repositories{
		Users:      NewUserRepository(tx),
		Properties: NewPropertyRepository(tx),
		Bookings:   NewBookingRepository(tx),
		Agreements: NewRentalAgreementRepository(tx),
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return translateError(err)
	}
	return nil
}

// translateError maps driver errors onto the repository error set. Errors it
// does not recognise are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			logger.Debug("Unique constraint rejected write", "constraint", pqErr.Constraint)
			return fmt.Errorf("%w: %s", repository.ErrUniqueViolation, pqErr.Constraint)
		case pgExclusionViolation:
			logger.Debug("Exclusion constraint rejected write", "constraint", pqErr.Constraint)
			return fmt.Errorf("%w: %s", repository.ErrExclusionViolation, pqErr.Constraint)
		}
	}
	return err
}

// expectOneRow turns an UPDATE or DELETE that matched nothing into ErrNotFound.
func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func nullDateString(t sql.NullTime) *string {
	if !t.Valid {
		return nil
	}
	s := t.Time.Format(dateLayout)
	return &s
}

// dateArg converts an optional yyyy-mm-dd string into a driver argument.
func dateArg(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func pageOffset(page, pageSize int32) int32 {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
