package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jordanella.com/pixel-trigger-go/internal/events"
)

func TestLoggerLevelsAndContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("Detector").SetOutputs(&buf)

	logger.Debug("hidden")
	logger.InfoWithContext("Trigger fired", map[string]interface{}{"y": 501, "x": 500})
	logger.Error("Sample failed", errors.New("off screen"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO [Detector] Trigger fired | x=500 y=501")
	assert.Contains(t, out, "ERROR [Detector] Sample failed | error=off screen")

	logger.SetMinLevel(LogLevelDebug)
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), "DEBUG [Detector] now visible")
}

func TestNamedSharesSink(t *testing.T) {
	var buf bytes.Buffer
	root := NewLogger("Main").SetOutputs(&buf).SetMinLevel(LogLevelWarn)
	child := root.Named("Input")

	child.Info("dropped")
	child.Warn("kept")

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "WARN [Input] kept")
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{
		"debug":   LogLevelDebug,
		" INFO ":  LogLevelInfo,
		"warning": LogLevelWarn,
		"Error":   LogLevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	level, err := ParseLevel("verbose")
	assert.Error(t, err)
	assert.Equal(t, LogLevelInfo, level)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Close() error { return nil }

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestEventLoggerWritesEvents(t *testing.T) {
	bus := events.NewEventBus(8, nil)
	out := &syncBuffer{}
	el := NewEventLoggerTo(bus, out)

	bus.Publish(events.NewDetectionToggledEvent("hotkey", true))
	bus.Publish(events.NewTriggerAbandonedEvent("movement"))
	bus.Stop()

	text := out.String()
	assert.Contains(t, text, "Event: detection.toggled | enabled=true source=hotkey")
	assert.Contains(t, text, "Event: trigger.abandoned | reason=movement source=detector")

	require.NoError(t, el.Close())
	assert.Equal(t, 0, bus.GetSubscriberCount(events.EventTypeTriggerFired))
}

func TestNewEventLoggerCreatesFile(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping file-backed event log test in short mode")
	}

	dir := filepath.Join(t.TempDir(), "logs")
	bus := events.NewEventBus(4, nil)

	el, err := NewEventLogger(bus, dir)
	require.NoError(t, err)

	bus.Publish(events.NewDetectorStartedEvent(960, 540))
	bus.Stop()
	require.NoError(t, el.Close())

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(filepath.Join(dir, "events.log"))
		return err == nil && strings.Contains(string(data), "detector.started")
	}, time.Second, 10*time.Millisecond)
}
