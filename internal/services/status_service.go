package services

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/isdelr/birthdaybot-be/internal/models"
	"github.com/isdelr/birthdaybot-be/internal/store"
)

// StatusServiceProvider defines the interface for status services.
type StatusServiceProvider interface {
	GetStatus(ctx context.Context) models.ServiceStatus
}

// HealthReporter exposes the most recent scheduled health check.
type HealthReporter interface {
	LastCheck() (models.HealthCheck, bool)
}

// StatusService reports store connectivity, record count and instance stats.
type StatusService struct {
	prober    store.Prober
	health    HealthReporter
	startedAt time.Time
}

// NewStatusService creates a new StatusService. health may be nil.
func NewStatusService(prober store.Prober, health HealthReporter, startedAt time.Time) *StatusService {
	return &StatusService{prober: prober, health: health, startedAt: startedAt}
}

// GetStatus probes the store live and gathers process and host statistics.
func (s *StatusService) GetStatus(ctx context.Context) models.ServiceStatus {
	logger := zerolog.Ctx(ctx)

	status := models.ServiceStatus{
		Backend:  s.prober.Backend(),
		Database: "ok",
		Uptime:   time.Since(s.startedAt).Round(time.Second).String(),
	}

	if err := s.prober.Ping(ctx); err != nil {
		logger.Warn().Err(err).Msg("Status: store ping failed")
		status.Database = "unavailable"
	} else if n, err := s.prober.Count(ctx); err != nil {
		logger.Warn().Err(err).Msg("Status: failed to count records")
		status.Database = "unavailable"
	} else {
		status.Records = &n
	}

	if up, err := host.UptimeWithContext(ctx); err == nil {
		status.HostUptimeSeconds = up
	} else {
		logger.Debug().Err(err).Msg("Status: host uptime unavailable")
	}

	if p, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err == nil {
		if mem, err := p.MemoryInfoWithContext(ctx); err == nil {
			status.MemoryRSSBytes = mem.RSS
		}
	}

	if s.health != nil {
		if last, ok := s.health.LastCheck(); ok {
			status.LastHealthCheck = &last
		}
	}
	return status
}
