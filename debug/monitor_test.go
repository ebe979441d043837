package debug

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/componentgrid/grid"
)

type fixedStats grid.Stats

func (f fixedStats) Stats() grid.Stats { return grid.Stats(f) }

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNewMonitorDisabled(t *testing.T) {
	t.Setenv("GRIDVIEW_DEBUG", "")
	m := NewMonitor(context.Background(), fixedStats{}, log.New(&bytes.Buffer{}))
	assert.Nil(t, m)
	m.Start() // nil-safe
}

func TestMonitorLogsStats(t *testing.T) {
	var out syncBuffer
	logger := log.NewWithOptions(&out, log.Options{Level: log.DebugLevel})

	ctx, cancel := context.WithCancel(context.Background())
	m := newMonitor(ctx, fixedStats{Rows: 3, Refreshes: 2}, logger, 5*time.Millisecond)
	m.Start()

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("refreshes=2"))
	}, time.Second, 5*time.Millisecond)
	cancel()

	assert.Contains(t, out.String(), "rows=3")
}

func TestLoggerDisabledDiscards(t *testing.T) {
	t.Setenv("GRIDVIEW_DEBUG", "0")
	logger, closer, err := Logger()
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.NoError(t, closer.Close())
}

func TestLoggerWritesFile(t *testing.T) {
	t.Setenv("GRIDVIEW_DEBUG", "1")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	logger, closer, err := Logger()
	require.NoError(t, err)
	logger.Debug("hello")
	require.NoError(t, closer.Close())
}
