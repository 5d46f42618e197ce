package postgres

import (
	"context"
	"time"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/repository"
)

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, firstname, lastname, username, email, mobile_number, address, city, state, country, zip_code, password_hash, role, created_on, updated_on`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&u.ID, &u.Firstname, &u.Lastname, &u.Username, &u.Email, &u.MobileNumber, &u.Address, &u.City, &u.State, &u.Country,
		&u.ZipCode, &u.PasswordHash, &u.Role, &createdOn, &updatedOn)
	if err != nil {
		return nil, translateError(err)
	}
	u.CreatedOn = formatDate(createdOn)
	u.UpdatedOn = formatDate(updatedOn)
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (firstname, lastname, username, email, mobile_number, address, city, state, country, zip_code,
	          password_hash, role, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	logger.DatabaseCall(ctx, "INSERT", "users", "username", u.Username)

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, u.Firstname, u.Lastname, u.Username, u.Email, u.MobileNumber, u.Address, u.City, u.State,
		u.Country, u.ZipCode, u.PasswordHash, string(u.Role), now, now).Scan(&u.ID)
	logger.DatabaseResult(ctx, "INSERT", 1, err, "userID", u.ID)
	if err != nil {
		return translateError(err)
	}
	u.CreatedOn = formatDate(now)
	u.UpdatedOn = u.CreatedOn
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=$1, mobile_number=$2, address=$3, updated_on=$4 WHERE id=$5`
	now := time.Now()
	res, err := r.db.ExecContext(ctx, query, u.Email, u.MobileNumber, u.Address, now, u.ID)
	if err != nil {
		return translateError(err)
	}
	if err := expectOneRow(res); err != nil {
		return err
	}
	u.UpdatedOn = formatDate(now)
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int32, passwordHash string) error {
	query := `UPDATE users SET password_hash=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return translateError(err)
	}
	return expectOneRow(res)
}
