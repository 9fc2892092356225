package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/ini.v1"

	"jordanella.com/pixel-trigger-go/internal/cv"
	"jordanella.com/pixel-trigger-go/internal/input"
)

const sectionName = "Trigger"

// LoadFromINI loads startup settings from an INI file.
// Keys that are absent keep their defaults; malformed colors and keys are errors.
func LoadFromINI(path string) (Config, error) {
	config := NewDefaultConfig()

	// Colors are written as #rrggbb, so '#' must not start an inline comment
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
	if err != nil {
		return config, fmt.Errorf("failed to load config file: %w", err)
	}

	section := cfg.Section(sectionName)

	// Detection
	config.Radius = section.Key("radius").MustInt(config.Radius)
	config.Tolerance = section.Key("tolerance").MustInt(config.Tolerance)
	config.ClickEnabled = section.Key("clickWhenDetected").MustBool(config.ClickEnabled)
	config.StartEnabled = section.Key("detectionEnabled").MustBool(config.StartEnabled)

	if section.HasKey("targetColor") {
		color, err := cv.ParseHex(section.Key("targetColor").String())
		if err != nil {
			return config, fmt.Errorf("targetColor: %w", err)
		}
		config.TargetColor = color
	}

	if config.HoldKey, err = parseKeyOr(section, "holdKey", config.HoldKey); err != nil {
		return config, err
	}

	// Timing
	config.CooldownMs = section.Key("cooldownMs").MustInt(config.CooldownMs)
	config.MinDelayMs = section.Key("minDelay").MustInt(config.MinDelayMs)
	config.MaxDelayMs = section.Key("maxDelay").MustInt(config.MaxDelayMs)
	config.ClickDelayMs = section.Key("clickDelay").MustInt(config.ClickDelayMs)

	// Hotkeys
	config.ToggleHotkeyEnabled = section.Key("toggleHotkeyEnabled").MustBool(config.ToggleHotkeyEnabled)
	if config.ToggleHotkey, err = parseKeyOr(section, "toggleHotkey", config.ToggleHotkey); err != nil {
		return config, err
	}

	// Display
	config.ShowIndicator = section.Key("showOverlay").MustBool(config.ShowIndicator)

	// Logging
	config.LogLevel = section.Key("logLevel").MustString(config.LogLevel)
	config.LogDir = section.Key("logDir").MustString(config.LogDir)

	config.Normalize()
	return config, nil
}

// LoadOrDefault loads path when it exists and falls back to defaults when it does not.
// Any other load error is returned together with the defaults.
func LoadOrDefault(path string) (Config, bool, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return NewDefaultConfig(), false, nil
	}
	cfg, err := LoadFromINI(path)
	if err != nil {
		return NewDefaultConfig(), false, err
	}
	return cfg, true, nil
}

func parseKeyOr(section *ini.Section, name string, def input.KeyCode) (input.KeyCode, error) {
	if !section.HasKey(name) {
		return def, nil
	}
	key, err := input.ParseKey(section.Key(name).String())
	if err != nil {
		return def, fmt.Errorf("%s: %w", name, err)
	}
	return key, nil
}

// SaveToINI writes config in the format LoadFromINI reads
func SaveToINI(config Config, path string) error {
	cfg := ini.Empty()
	section := cfg.Section(sectionName)

	// Detection
	section.Key("radius").SetValue(strconv.Itoa(config.Radius))
	section.Key("tolerance").SetValue(strconv.Itoa(config.Tolerance))
	section.Key("targetColor").SetValue(config.TargetColor.Hex())
	section.Key("clickWhenDetected").SetValue(strconv.FormatBool(config.ClickEnabled))
	section.Key("detectionEnabled").SetValue(strconv.FormatBool(config.StartEnabled))
	section.Key("holdKey").SetValue(config.HoldKey.String())

	// Timing
	section.Key("cooldownMs").SetValue(strconv.Itoa(config.CooldownMs))
	section.Key("minDelay").SetValue(strconv.Itoa(config.MinDelayMs))
	section.Key("maxDelay").SetValue(strconv.Itoa(config.MaxDelayMs))
	section.Key("clickDelay").SetValue(strconv.Itoa(config.ClickDelayMs))

	// Hotkeys
	section.Key("toggleHotkeyEnabled").SetValue(strconv.FormatBool(config.ToggleHotkeyEnabled))
	section.Key("toggleHotkey").SetValue(config.ToggleHotkey.String())

	// Display
	section.Key("showOverlay").SetValue(strconv.FormatBool(config.ShowIndicator))

	// Logging
	section.Key("logLevel").SetValue(config.LogLevel)
	section.Key("logDir").SetValue(config.LogDir)

	return cfg.SaveTo(path)
}
