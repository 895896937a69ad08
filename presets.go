package ink

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the optional engine configuration loaded from a YAML file.
// The zero value selects every default, so hosts can treat the file as
// entirely optional.
type Settings struct {
	// HistoryLimit bounds the undo/redo stacks. Zero means
	// DefaultHistoryLimit.
	HistoryLimit int `yaml:"history_limit,omitempty"`

	// PressureWindow is the velocity-averaging window for simulated
	// pressure. Zero means DefaultPressureWindow.
	PressureWindow int `yaml:"pressure_window,omitempty"`

	// PressureMaxSpeed is the pointer speed in px/ms mapped to minimum
	// simulated pressure. Zero means DefaultPressureMaxSpeed.
	PressureMaxSpeed float64 `yaml:"pressure_max_speed,omitempty"`

	// Presets are named brush setups selectable by the host UI.
	Presets map[string]BrushPreset `yaml:"presets,omitempty"`
}

// BrushPreset is one named brush in a settings file. Unset fields keep
// the tool's stock value, so a preset only spells out what it changes.
type BrushPreset struct {
	Tool                string   `yaml:"tool"`
	MinWidth            *float64 `yaml:"min_width,omitempty"`
	MaxWidth            *float64 `yaml:"max_width,omitempty"`
	Smoothing           *float64 `yaml:"smoothing,omitempty"`
	PressureSensitivity *float64 `yaml:"pressure_sensitivity,omitempty"`
	Opacity             *float64 `yaml:"opacity,omitempty"`
	Flow                *float64 `yaml:"flow,omitempty"`
	Color               string   `yaml:"color,omitempty"`
	Texture             *string  `yaml:"texture,omitempty"`
}

// Resolve turns the preset into a tool and a validated config, starting
// from the tool's stock configuration. An empty tool means the pen.
func (p BrushPreset) Resolve() (ToolKind, BrushConfig, error) {
	kind := ToolPen
	if p.Tool != "" {
		k, err := ParseToolKind(p.Tool)
		if err != nil {
			return 0, BrushConfig{}, err
		}
		kind = k
	}

	partial := BrushPartial{
		MinWidth:            p.MinWidth,
		MaxWidth:            p.MaxWidth,
		Smoothing:           p.Smoothing,
		PressureSensitivity: p.PressureSensitivity,
		Opacity:             p.Opacity,
		Flow:                p.Flow,
		Texture:             p.Texture,
	}
	if p.Color != "" {
		c, err := ParseHex(p.Color)
		if err != nil {
			return 0, BrushConfig{}, fmt.Errorf("%w: color %q", ErrInvalidBrushConfig, p.Color)
		}
		partial.Color = &c
	}

	cfg := DefaultBrush(kind).Apply(partial)
	if err := cfg.Validate(); err != nil {
		return 0, BrushConfig{}, err
	}
	return kind, cfg, nil
}

// Preset resolves a named preset from the settings.
func (s Settings) Preset(name string) (ToolKind, BrushConfig, error) {
	p, ok := s.Presets[name]
	if !ok {
		return 0, BrushConfig{}, fmt.Errorf("ink: unknown preset %q", name)
	}
	return p.Resolve()
}

// LoadSettings reads a settings file. A missing file is not an error:
// the zero Settings comes back and every default applies.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("ink: read settings %q: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("ink: parse settings %q: %w", path, err)
	}
	return s, nil
}
