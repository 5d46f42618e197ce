package scheduler

import (
	"time"

	"estatehub-backend/internal/jobs"
	"estatehub-backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner. It fails
// when a configured schedule cannot be parsed.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	// Nightly: cancel unpaid pending bookings past their TTL (opt-in)
	if s.jobs.Config().ExpireStaleBookingsEnabled() {
		if _, err := s.cron.AddFunc(cfg.ExpireStaleBookings, s.jobs.ExpireStaleBookings); err != nil {
			logger.Error("Failed to register ExpireStaleBookings job", "error", err)
			return err
		}
	} else {
		logger.Info("ExpireStaleBookings job disabled", "pending_ttl_hours", s.jobs.Config().Booking.PendingTTLHours)
	}

	// Hourly: drop revocations of tokens that have expired anyway
	if _, err := s.cron.AddFunc(cfg.PurgeRevokedTokens, s.jobs.PurgeRevokedTokens); err != nil {
		logger.Error("Failed to register PurgeRevokedTokens job", "error", err)
		return err
	}

	logger.Info("All cron jobs registered successfully", "count", len(s.cron.Entries()))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// EntryCount returns the number of registered jobs.
func (s *Scheduler) EntryCount() int {
	return len(s.cron.Entries())
}
