package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"estatehub-backend/internal/config"
	"estatehub-backend/internal/jobs"
	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/repository"
	"estatehub-backend/internal/repository/mongodb"
	"estatehub-backend/internal/repository/postgres"
	"estatehub-backend/internal/scheduler"
)

type options struct {
	configPath string
	envFile    string
	runOnce    string
}

var jobTable = map[string]func(*jobs.JobRunner){
	"expire-stale-bookings": (*jobs.JobRunner).ExpireStaleBookings,
	"purge-revoked-tokens":  (*jobs.JobRunner).PurgeRevokedTokens,
	"all":                   (*jobs.JobRunner).RunAll,
}

func jobNames() []string {
	names := make([]string, 0, len(jobTable))
	for name := range jobTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func main() {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "estatehub-cronjob",
		Short:        "EstateHub scheduled jobs",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", "config/config.dev.yaml", "path to configuration file")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "optional dotenv file loaded before the config")
	cmd.Flags().StringVar(&opts.runOnce, "run-once", "", "run one job and exit ("+strings.Join(jobNames(), ", ")+")")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options) error {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EstateHub cronjob runner...", "log_level", cfg.Log.Level)

	var job func(*jobs.JobRunner)
	if opts.runOnce != "" {
		var ok bool
		if job, ok = jobTable[opts.runOnce]; !ok {
			return fmt.Errorf("unknown job %q, available: %s", opts.runOnce, strings.Join(jobNames(), ", "))
		}
	}

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	var history repository.StatusHistoryRepository = mongodb.NoopStatusHistoryRepository{}
	if cfg.Mongo.URI != "" {
		client, err := mongodb.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()
		history = mongodb.NewStatusHistoryRepository(client, cfg.Mongo.Database)
	}

	jobRunner := jobs.NewJobRunner(db, store.RevokedTokens, history, cfg)

	if job != nil {
		logger.Info("Running job once", "job", opts.runOnce)
		job(jobRunner)
		logger.Info("Job execution completed", "job", opts.runOnce)
		return nil
	}

	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		return fmt.Errorf("failed to register cron jobs: %w", err)
	}
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
	return nil
}
