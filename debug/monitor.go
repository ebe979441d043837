// Package debug provides runtime monitoring and diagnostics.
package debug

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/drake/componentgrid/config"
	"github.com/drake/componentgrid/grid"
)

// Enabled returns true if debug mode is active (GRIDVIEW_DEBUG=1).
func Enabled() bool {
	return os.Getenv("GRIDVIEW_DEBUG") == "1"
}

// Logger returns a logger for the program. In debug mode it appends to the
// log file in the config dir at debug level; otherwise it discards. The
// returned closer must be called on exit.
func Logger() (*log.Logger, io.Closer, error) {
	if !Enabled() {
		return log.New(io.Discard), nopCloser{}, nil
	}

	path := config.LogFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
	})
	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// StatsSource is anything that can report grid statistics.
type StatsSource interface {
	Stats() grid.Stats
}

// Monitor periodically logs view statistics when debug mode is enabled.
type Monitor struct {
	source   StatsSource
	interval time.Duration
	ctx      context.Context
	logger   *log.Logger
}

// NewMonitor creates a new monitor for the given view.
// If debug mode is not enabled, returns nil.
func NewMonitor(ctx context.Context, src StatsSource, logger *log.Logger) *Monitor {
	if !Enabled() {
		return nil
	}
	return newMonitor(ctx, src, logger, 5*time.Second)
}

func newMonitor(ctx context.Context, src StatsSource, logger *log.Logger, interval time.Duration) *Monitor {
	return &Monitor{
		source:   src,
		interval: interval,
		ctx:      ctx,
		logger:   logger.WithPrefix("monitor"),
	}
}

// Start begins the monitoring loop in a goroutine.
func (m *Monitor) Start() {
	if m == nil {
		return
	}
	go m.run()
}

func (m *Monitor) run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Debug("started")

	for {
		select {
		case <-m.ctx.Done():
			m.logger.Debug("stopped")
			return
		case <-ticker.C:
			m.logStats()
		}
	}
}

func (m *Monitor) logStats() {
	s := m.source.Stats()
	m.logger.Debug("stats",
		"rows", s.Rows,
		"columns", s.Columns,
		"refreshes", s.Refreshes,
		"focus_restores", s.FocusRestores,
		"focus_drops", s.FocusDrops,
		"changes", s.DataChanges,
		"last_change", s.LastChangeKind,
	)
}
