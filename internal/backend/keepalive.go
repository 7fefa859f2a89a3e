package backend

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sms-portal/pkg/config"
)

type pinger interface {
	Ping(ctx context.Context) (time.Duration, error)
}

// Monitor periodically pings the backend so free-tier hosts stay warm, and
// records the last probe so login pages can warn about a slow server.
type Monitor struct {
	pinger   pinger
	interval time.Duration
	slow     time.Duration
	logger   *zap.Logger

	mu          sync.Mutex
	lastLatency time.Duration
	lastErr     error
	probed      bool
	onProbe     func(latency time.Duration, err error)
}

// NewMonitor constructs a keep-alive monitor.
func NewMonitor(p pinger, cfg config.KeepAliveConfig, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = 3 * time.Second
	}
	return &Monitor{pinger: p, interval: interval, slow: slow, logger: logger}
}

// OnProbe registers a callback invoked after each probe. Set it before Start.
func (m *Monitor) OnProbe(fn func(latency time.Duration, err error)) {
	m.onProbe = fn
}

// Start probes once immediately, then on every interval tick until the
// context is cancelled.
func (m *Monitor) Start(ctx context.Context) {
	go func() {
		m.probe(ctx)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.probe(ctx)
			}
		}
	}()
}

// Slow reports whether the last probe failed or exceeded the slow threshold.
// Before the first probe completes it reports false.
func (m *Monitor) Slow() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.probed {
		return false
	}
	return m.lastErr != nil || m.lastLatency > m.slow
}

func (m *Monitor) probe(ctx context.Context) {
	latency, err := m.pinger.Ping(ctx)

	m.mu.Lock()
	m.lastLatency = latency
	m.lastErr = err
	m.probed = true
	m.mu.Unlock()

	if m.onProbe != nil {
		m.onProbe(latency, err)
	}

	if err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.Warn("backend keep-alive ping failed", zap.Error(err))
		return
	}
	m.logger.Debug("backend keep-alive ping", zap.Duration("latency", latency))
}
