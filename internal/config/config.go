package config

import (
	"image"

	"jordanella.com/pixel-trigger-go/internal/cv"
	"jordanella.com/pixel-trigger-go/internal/input"
)

// Slider ranges offered by the control panel
const (
	MinRadius        = 1
	MaxRadius        = 30
	MaxTolerance     = 255
	MaxCooldownMs    = 500
	MaxClickDelayMs  = 500
	MaxHumanDelayMs  = 1000
	DefaultLogDir    = "logs"
	DefaultINIPath   = "Settings.ini"
	DefaultPresetYML = "presets.yaml"
)

// Limits for values read from a settings file, wider than the sliders
const (
	MaxFileRadius     = 300
	MaxFileDurationMs = 60_000
)

// Config is one consistent set of trigger settings.
// It is a value type: the detector works on copies taken with Shared.Snapshot.
type Config struct {
	// Detection
	Center       image.Point // screen midpoint, set when the detector starts
	Radius       int
	Tolerance    int
	TargetColor  cv.Color
	ClickEnabled bool
	HoldKey      input.KeyCode // KeyNone disables the hold requirement
	StartEnabled bool          // initial value of the detection flag

	// Timing (milliseconds)
	CooldownMs   int
	MinDelayMs   int
	MaxDelayMs   int
	ClickDelayMs int

	// Hotkeys
	ToggleHotkeyEnabled bool
	ToggleHotkey        input.KeyCode

	// Display
	ShowIndicator bool

	// Logging
	LogLevel string
	LogDir   string
}

// NewDefaultConfig returns the settings the program starts with when no file is given
func NewDefaultConfig() Config {
	return Config{
		Radius:              5,
		Tolerance:           30,
		TargetColor:         cv.RGB(255, 0, 0),
		ClickEnabled:        true,
		HoldKey:             input.KeyN,
		CooldownMs:          100,
		MinDelayMs:          10,
		MaxDelayMs:          30,
		ClickDelayMs:        0,
		ToggleHotkeyEnabled: true,
		ToggleHotkey:        input.KeyF2,
		ShowIndicator:       true,
		LogLevel:            "INFO",
		LogDir:              DefaultLogDir,
	}
}

// Normalize clamps every field into its valid range and swaps an inverted delay range,
// so MinDelayMs <= MaxDelayMs always holds afterwards.
func (c *Config) Normalize() {
	c.Radius = clamp(c.Radius, 0, MaxFileRadius)
	c.Tolerance = clamp(c.Tolerance, 0, MaxTolerance)
	c.CooldownMs = clamp(c.CooldownMs, 0, MaxFileDurationMs)
	c.ClickDelayMs = clamp(c.ClickDelayMs, 0, MaxFileDurationMs)
	c.MinDelayMs = clamp(c.MinDelayMs, 0, MaxHumanDelayMs)
	c.MaxDelayMs = clamp(c.MaxDelayMs, 0, MaxHumanDelayMs)
	if c.MinDelayMs > c.MaxDelayMs {
		c.MinDelayMs, c.MaxDelayMs = c.MaxDelayMs, c.MinDelayMs
	}
	if c.LogDir == "" {
		c.LogDir = DefaultLogDir
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
