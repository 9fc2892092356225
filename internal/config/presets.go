package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"jordanella.com/pixel-trigger-go/internal/cv"
)

// Preset is a named target color with an optional tolerance override
type Preset struct {
	Name      string `yaml:"name"`
	Color     string `yaml:"color"`
	Tolerance *int   `yaml:"tolerance,omitempty"`

	parsed cv.Color
}

// Presets is the content of a presets file
type Presets struct {
	Presets []Preset `yaml:"presets"`
}

// LoadPresets reads and validates a YAML presets file
func LoadPresets(path string) (*Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}
	return ParsePresets(data)
}

// ParsePresets decodes presets and parses every color up front
func ParsePresets(data []byte) (*Presets, error) {
	var p Presets
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}

	seen := make(map[string]bool, len(p.Presets))
	for i := range p.Presets {
		preset := &p.Presets[i]
		if preset.Name == "" {
			return nil, fmt.Errorf("preset %d: missing name", i)
		}
		key := strings.ToLower(preset.Name)
		if seen[key] {
			return nil, fmt.Errorf("preset %q: duplicate name", preset.Name)
		}
		seen[key] = true

		c, err := cv.ParseHex(preset.Color)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", preset.Name, err)
		}
		preset.parsed = c

		if preset.Tolerance != nil && (*preset.Tolerance < 0 || *preset.Tolerance > MaxTolerance) {
			return nil, fmt.Errorf("preset %q: tolerance %d out of range", preset.Name, *preset.Tolerance)
		}
	}

	return &p, nil
}

// Find looks a preset up by name, case-insensitively
func (p *Presets) Find(name string) (Preset, bool) {
	for _, preset := range p.Presets {
		if strings.EqualFold(preset.Name, name) {
			return preset, true
		}
	}
	return Preset{}, false
}

// Names lists the preset names in file order
func (p *Presets) Names() []string {
	names := make([]string, len(p.Presets))
	for i, preset := range p.Presets {
		names[i] = preset.Name
	}
	return names
}

// TargetColor returns the parsed color
func (p Preset) TargetColor() cv.Color {
	return p.parsed
}

// Apply sets the target color (and tolerance, when the preset has one)
func (p Preset) Apply(cfg *Config) {
	cfg.TargetColor = p.parsed
	if p.Tolerance != nil {
		cfg.Tolerance = *p.Tolerance
	}
}
