package server

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	repo "github.com/joseph-ayodele/resume-extractor/internal/repository"
)

// ServiceName is the health service name reported besides the overall ("") status.
const ServiceName = "resume.extractor"

// Health serves grpc.health.v1 and tracks database reachability.
type Health struct {
	hs      *health.Server
	db      *repo.DB
	timeout time.Duration
	logger  *slog.Logger
}

func NewHealth(db *repo.DB, timeout time.Duration, logger *slog.Logger) *Health {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	h := &Health{hs: health.NewServer(), db: db, timeout: timeout, logger: logger}
	h.set(grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	return h
}

// Register adds the health service to s.
func (h *Health) Register(s *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(s, h.hs)
}

// Check pings the store and updates the serving status.
func (h *Health) Check(ctx context.Context) bool {
	if err := PingDB(ctx, h.db, h.logger, h.timeout); err != nil {
		h.set(grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		return false
	}
	h.set(grpc_health_v1.HealthCheckResponse_SERVING)
	return true
}

// Watch re-checks every interval until ctx is done.
func (h *Health) Watch(ctx context.Context, interval time.Duration) {
	h.Check(ctx)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			h.Check(ctx)
		}
	}
}

// Shutdown reports NOT_SERVING to all watchers; later updates are ignored.
func (h *Health) Shutdown() {
	h.hs.Shutdown()
}

func (h *Health) set(st grpc_health_v1.HealthCheckResponse_ServingStatus) {
	h.hs.SetServingStatus("", st)
	h.hs.SetServingStatus(ServiceName, st)
}
