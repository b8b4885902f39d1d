package monitoring

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/isdelr/birthdaybot-be/internal/models"
	"github.com/isdelr/birthdaybot-be/internal/store"
)

// HealthMonitor periodically probes the store on a cron schedule and keeps the
// latest result.
type HealthMonitor struct {
	prober  store.Prober
	timeout time.Duration
	cron    *cron.Cron

	mu   sync.RWMutex
	last *models.HealthCheck
}

// NewHealthMonitor creates a monitor for prober running on the standard cron
// spec (descriptors such as "@every 1m" are accepted).
func NewHealthMonitor(prober store.Prober, spec string, timeout time.Duration) (*HealthMonitor, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid health check schedule %q: %w", spec, err)
	}

	m := &HealthMonitor{
		prober:  prober,
		timeout: timeout,
		cron:    cron.New(),
	}
	m.cron.Schedule(schedule, cron.FuncJob(m.Check))
	return m, nil
}

// Run performs one check immediately and starts the schedule.
func (m *HealthMonitor) Run() {
	log.Info().Str("backend", m.prober.Backend()).Msg("Starting store health monitor...")
	m.Check()
	m.cron.Start()
}

// Stop halts the schedule and waits for a running check to finish.
func (m *HealthMonitor) Stop() {
	<-m.cron.Stop().Done()
	log.Info().Msg("Stopped store health monitor.")
}

// Check probes the store once and records the outcome.
func (m *HealthMonitor) Check() {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	result := models.HealthCheck{CheckedAt: time.Now(), Healthy: true}
	err := m.prober.Ping(ctx)
	if err == nil {
		result.Records, err = m.prober.Count(ctx)
	}
	if err != nil {
		result.Healthy = false
		result.Error = err.Error()
		log.Error().Err(err).Str("backend", m.prober.Backend()).Msg("HealthMonitor: store is unavailable")
	} else {
		log.Debug().Int("records", result.Records).Msg("HealthMonitor: store is healthy")
	}

	m.mu.Lock()
	m.last = &result
	m.mu.Unlock()
}

// LastCheck returns the most recent result, if any check has run.
func (m *HealthMonitor) LastCheck() (models.HealthCheck, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.last == nil {
		return models.HealthCheck{}, false
	}
	return *m.last, true
}
