package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"estatehub-backend/internal/logger"
)

const defaultCheckInterval = 15 * time.Second

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthReporter keeps the gRPC health status in line with the database.
type HealthReporter struct {
	server   *health.Server
	db       Pinger
	interval time.Duration
}

func NewHealthReporter(db Pinger, interval time.Duration) *HealthReporter {
	if interval <= 0 {
		interval = defaultCheckInterval
	}
	return &HealthReporter{server: health.NewServer(), db: db, interval: interval}
}

// Server exposes the underlying health service.
func (h *HealthReporter) Server() *health.Server {
	return h.server
}

// Check pings the database once and publishes the resulting status.
func (h *HealthReporter) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	st := healthpb.HealthCheckResponse_SERVING
	if err := h.db.PingContext(ctx); err != nil {
		logger.Warn("Database health check failed", "error", err)
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.server.SetServingStatus("", st)
	return st
}

// Run checks on every interval until ctx is cancelled, then marks the
// server as shutting down.
func (h *HealthReporter) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}

// NewServer builds the gRPC server carrying the health and reflection
// services.
func NewServer(reporter *HealthReporter, opts ...grpc.ServerOption) *grpc.Server {
	s := grpc.NewServer(opts...)
	healthpb.RegisterHealthServer(s, reporter.Server())

	// Register reflection service for grpcurl
	reflection.Register(s)
	return s
}
