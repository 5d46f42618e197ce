package jobs

import (
	"context"

	"estatehub-backend/internal/logger"
)

// PurgeRevokedTokens removes revocation entries whose tokens have expired.
func (jr *JobRunner) PurgeRevokedTokens() {
	jr.runWithRecovery("PurgeRevokedTokens", func() {
		deleted, err := jr.revokedTokens.DeleteExpired(context.Background(), jr.now())
		if err != nil {
			logger.Error("Failed to purge revoked tokens", "error", err)
			return
		}
		logger.Info("Purged revoked tokens", "count", deleted)
	})
}
