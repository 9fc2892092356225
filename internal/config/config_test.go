package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jordanella.com/pixel-trigger-go/internal/cv"
	"jordanella.com/pixel-trigger-go/internal/input"
)

func TestDefaults(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 5, cfg.Radius)
	assert.Equal(t, 30, cfg.Tolerance)
	assert.Equal(t, cv.RGB(255, 0, 0), cfg.TargetColor)
	assert.Equal(t, input.KeyN, cfg.HoldKey)
	assert.Equal(t, input.KeyF2, cfg.ToggleHotkey)
	assert.Equal(t, 100, cfg.CooldownMs)
	assert.Equal(t, 10, cfg.MinDelayMs)
	assert.Equal(t, 30, cfg.MaxDelayMs)
	assert.False(t, cfg.StartEnabled)
}

func TestNormalize(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Radius = -3
	cfg.Tolerance = 400
	cfg.MinDelayMs = 50
	cfg.MaxDelayMs = 20
	cfg.CooldownMs = -1
	cfg.LogDir = ""

	cfg.Normalize()

	assert.Equal(t, 0, cfg.Radius)
	assert.Equal(t, 255, cfg.Tolerance)
	assert.Equal(t, 20, cfg.MinDelayMs)
	assert.Equal(t, 50, cfg.MaxDelayMs)
	assert.Equal(t, 0, cfg.CooldownMs)
	assert.Equal(t, DefaultLogDir, cfg.LogDir)

	cfg.MaxDelayMs = 5000
	cfg.Radius = 120
	cfg.ClickDelayMs = 90_000
	cfg.Normalize()
	assert.Equal(t, MaxHumanDelayMs, cfg.MaxDelayMs)
	assert.Equal(t, 120, cfg.Radius, "file radius may exceed the slider")
	assert.Equal(t, MaxFileDurationMs, cfg.ClickDelayMs)

	cfg.Radius = 1000
	cfg.Normalize()
	assert.Equal(t, MaxFileRadius, cfg.Radius)
}

func TestSharedSnapshotIsolation(t *testing.T) {
	s := NewShared(NewDefaultConfig())

	snap := s.Snapshot()
	s.Update(func(c *Config) { c.Radius = 12 })

	assert.Equal(t, 5, snap.Radius, "earlier snapshot is unaffected")
	assert.Equal(t, 12, s.Snapshot().Radius)
}

func TestSharedUpdateNormalizesAndNotifies(t *testing.T) {
	s := NewShared(NewDefaultConfig())

	var seen []Config
	cancel := s.OnChange(func(c Config) { seen = append(seen, c) })

	got := s.Update(func(c *Config) {
		c.MinDelayMs = 40
		c.MaxDelayMs = 5
	})

	assert.Equal(t, 5, got.MinDelayMs)
	assert.Equal(t, 40, got.MaxDelayMs)
	require.Len(t, seen, 1)
	assert.Equal(t, got, seen[0])

	cancel()
	s.Update(func(c *Config) { c.Radius = 9 })
	assert.Len(t, seen, 1, "cancelled observer is not called")
}

func TestSharedConcurrentUpdates(t *testing.T) {
	s := NewShared(NewDefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Update(func(c *Config) { c.CooldownMs++ })
		}()
		go func() {
			defer wg.Done()
			snap := s.Snapshot()
			assert.LessOrEqual(t, snap.MinDelayMs, snap.MaxDelayMs)
		}()
	}
	wg.Wait()

	assert.Equal(t, 150, s.Snapshot().CooldownMs)
}

func TestDetectionFlag(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.StartEnabled = true
	s := NewShared(cfg)

	assert.True(t, s.DetectionEnabled())
	assert.False(t, s.ToggleDetection())
	assert.False(t, s.DetectionEnabled())
	assert.True(t, s.ToggleDetection())

	s.SetDetectionEnabled(false)
	assert.False(t, s.DetectionEnabled())
}

func TestINIRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Settings.ini")

	cfg := NewDefaultConfig()
	cfg.Radius = 8
	cfg.TargetColor = cv.RGB(0, 200, 100)
	cfg.HoldKey = input.KeyNone
	cfg.ToggleHotkey = input.KeyF1 + 5
	cfg.ClickDelayMs = 120
	cfg.StartEnabled = true

	require.NoError(t, SaveToINI(cfg, path))

	loaded, err := LoadFromINI(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromINIPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Settings.ini")
	content := `[Trigger]
radius = 3
targetColor = #00ff00
holdKey = none
minDelay = 30
maxDelay = 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromINI(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Radius)
	assert.Equal(t, cv.RGB(0, 255, 0), cfg.TargetColor)
	assert.Equal(t, input.KeyNone, cfg.HoldKey)
	assert.Equal(t, 10, cfg.MinDelayMs)
	assert.Equal(t, 30, cfg.MaxDelayMs)
	assert.Equal(t, 30, cfg.Tolerance, "missing keys keep defaults")
}

func TestLoadFromINIErrors(t *testing.T) {
	dir := t.TempDir()

	badColor := filepath.Join(dir, "color.ini")
	require.NoError(t, os.WriteFile(badColor, []byte("[Trigger]\ntargetColor = purple-ish\n"), 0644))
	_, err := LoadFromINI(badColor)
	assert.ErrorContains(t, err, "targetColor")

	badKey := filepath.Join(dir, "key.ini")
	require.NoError(t, os.WriteFile(badKey, []byte("[Trigger]\ntoggleHotkey = F42\n"), 0644))
	_, err = LoadFromINI(badKey)
	assert.ErrorContains(t, err, "toggleHotkey")
}

func TestLoadOrDefault(t *testing.T) {
	cfg, found, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.ini"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, NewDefaultConfig(), cfg)
}

func TestPresets(t *testing.T) {
	data := []byte(`presets:
  - name: Enemy Red
    color: "#ff0000"
    tolerance: 25
  - name: Purple
    color: "a020f0"
`)

	p, err := ParsePresets(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Enemy Red", "Purple"}, p.Names())

	red, ok := p.Find("enemy red")
	require.True(t, ok)

	cfg := NewDefaultConfig()
	cfg.TargetColor = cv.RGB(1, 2, 3)
	red.Apply(&cfg)
	assert.Equal(t, cv.RGB(255, 0, 0), cfg.TargetColor)
	assert.Equal(t, 25, cfg.Tolerance)

	purple, ok := p.Find("Purple")
	require.True(t, ok)
	purple.Apply(&cfg)
	assert.Equal(t, cv.RGB(0xa0, 0x20, 0xf0), cfg.TargetColor)
	assert.Equal(t, 25, cfg.Tolerance, "no tolerance in preset keeps the current one")

	_, ok = p.Find("missing")
	assert.False(t, ok)
}

func TestPresetsValidation(t *testing.T) {
	for name, data := range map[string]string{
		"bad color":     "presets:\n  - name: x\n    color: nope\n",
		"no name":       "presets:\n  - color: '#ffffff'\n",
		"duplicate":     "presets:\n  - name: a\n    color: '#ffffff'\n  - name: A\n    color: '#000000'\n",
		"bad tolerance": "presets:\n  - name: a\n    color: '#ffffff'\n    tolerance: 300\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePresets([]byte(data))
			assert.Error(t, err)
		})
	}
}
