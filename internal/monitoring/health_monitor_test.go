package monitoring

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProber struct {
	pingErr error
	count   int
	pings   atomic.Int32
}

func (s *stubProber) Ping(context.Context) error {
	s.pings.Add(1)
	return s.pingErr
}

func (s *stubProber) Count(context.Context) (int, error) { return s.count, nil }
func (s *stubProber) Backend() string                    { return "stub" }

func TestNewHealthMonitor_InvalidSchedule(t *testing.T) {
	_, err := NewHealthMonitor(&stubProber{}, "every now and then", time.Second)
	assert.Error(t, err)
}

func TestHealthMonitor_Check(t *testing.T) {
	p := &stubProber{count: 3}
	m, err := NewHealthMonitor(p, "@every 1h", time.Second)
	require.NoError(t, err)

	_, ok := m.LastCheck()
	assert.False(t, ok, "no result before the first check")

	m.Check()
	last, ok := m.LastCheck()
	require.True(t, ok)
	assert.True(t, last.Healthy)
	assert.Equal(t, 3, last.Records)
	assert.Empty(t, last.Error)

	p.pingErr = errors.New("connection refused")
	m.Check()
	last, ok = m.LastCheck()
	require.True(t, ok)
	assert.False(t, last.Healthy)
	assert.Contains(t, last.Error, "connection refused")
}

func TestHealthMonitor_RunChecksImmediately(t *testing.T) {
	p := &stubProber{}
	m, err := NewHealthMonitor(p, "@every 1h", time.Second)
	require.NoError(t, err)

	m.Run()
	m.Stop()

	assert.Equal(t, int32(1), p.pings.Load())
	_, ok := m.LastCheck()
	assert.True(t, ok)
}
