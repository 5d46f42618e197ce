package postgres

import (
	"context"
	"time"

	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/repository"
)

type revokedTokenRepository struct {
	db DBTX
}

func NewRevokedTokenRepository(db DBTX) repository.RevokedTokenRepository {
	return &revokedTokenRepository{db: db}
}

func (r *revokedTokenRepository) Revoke(ctx context.Context, jti string, userID int32, expiresAt time.Time) error {
	query := `INSERT INTO revoked_tokens (jti, user_id, expires_at) VALUES ($1, $2, $3) ON CONFLICT (jti) DO NOTHING`
	logger.DatabaseCall(ctx, "INSERT", "revoked_tokens", "userID", userID)
	_, err := r.db.ExecContext(ctx, query, jti, userID, expiresAt)
	logger.DatabaseResult(ctx, "INSERT", 1, err, "userID", userID)
	return err
}

func (r *revokedTokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)`
	var revoked bool
	if err := r.db.QueryRowContext(ctx, query, jti).Scan(&revoked); err != nil {
		return false, err
	}
	return revoked, nil
}

func (r *revokedTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM revoked_tokens WHERE expires_at < $1`
	logger.DatabaseCall(ctx, "DELETE", "revoked_tokens")
	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		logger.DatabaseResult(ctx, "DELETE", 0, err)
		return 0, err
	}
	n, err := result.RowsAffected()
	logger.DatabaseResult(ctx, "DELETE", n, err)
	return n, err
}
