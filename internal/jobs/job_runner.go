package jobs

import (
	"database/sql"
	"time"

	"estatehub-backend/internal/config"
	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/repository"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db            *sql.DB
	revokedTokens repository.RevokedTokenRepository
	history       repository.StatusHistoryRepository
	config        *config.Config
	now           func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, revokedTokens repository.RevokedTokenRepository, history repository.StatusHistoryRepository, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:            db,
		revokedTokens: revokedTokens,
		history:       history,
		config:        cfg,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Config returns the configuration the runner was built with.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.ExpireStaleBookings()
	jr.PurgeRevokedTokens()
}
