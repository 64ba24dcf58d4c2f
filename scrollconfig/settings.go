// Package scrollconfig resolves the effective scroll configuration for a
// scroll event.
/*

A base configuration is built from the user's Settings. For every
combination of active modifications (an input modification like quick or
precise scrolling, and an effect modification like zoom) and input axis, a
variant of the base configuration is derived by a fixed pipeline of
override steps:

	input modification → effect modification → standard acceleration curve

The last step only runs without an input modification. It needs the
animation curve preset which the effect modification may have changed, and
the size of the display under the pointer.

Variants are cached by the Resolver. Reloading structurally different
settings rebuilds the base configuration and drops all cached variants.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package scrollconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer writes to trace with key 'scroll.config'
func tracer() tracing.Trace {
	return tracing.Select("scroll.config")
}

// ErrInvalidSetting indicates a settings value outside of its domain.
var ErrInvalidSetting = errors.New("invalid scroll setting")

// Speed is the user's choice of scroll speed.
type Speed string

// Scroll speeds. SpeedSystem leaves acceleration to the operating system.
const (
	SpeedSystem Speed = "system"
	SpeedLow    Speed = "low"
	SpeedMedium Speed = "medium"
	SpeedHigh   Speed = "high"
)

// Smoothness is the user's choice of scroll inertia.
type Smoothness string

// Inertia levels
const (
	SmoothnessNone   Smoothness = "none"
	SmoothnessLow    Smoothness = "low"
	SmoothnessMedium Smoothness = "medium"
	SmoothnessHigh   Smoothness = "high"
)

// ModifierSettings are keyboard modifier flag masks.
type ModifierSettings struct {
	Horizontal uint64 `yaml:"horizontal"` // modifiers for horizontal scrolling
	Zoom       uint64 `yaml:"zoom"`       // modifiers for zooming
}

// Settings are the raw scroll settings of a user. Settings are comparable;
// two settings are structurally equal iff they are ==.
type Settings struct {
	Speed            Speed            `yaml:"speed"`
	Precise          bool             `yaml:"precise"`
	Smooth           bool             `yaml:"smooth"`
	Smoothness       Smoothness       `yaml:"smoothness"`
	ReverseDirection bool             `yaml:"reverseDirection"`
	Modifiers        ModifierSettings `yaml:"modifiers"`
}

// DefaultSettings returns the settings of a fresh installation.
func DefaultSettings() Settings {
	return Settings{
		Speed:      SpeedMedium,
		Smooth:     true,
		Smoothness: SmoothnessHigh,
	}
}

// ParseSettings reads YAML settings. Keys missing from data keep their
// default values.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse scroll settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Marshal writes settings as YAML.
func (s Settings) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Validate checks the enumerated settings values.
func (s Settings) Validate() error {
	switch s.Speed {
	case SpeedSystem, SpeedLow, SpeedMedium, SpeedHigh:
	default:
		return fmt.Errorf("%w: speed %q", ErrInvalidSetting, s.Speed)
	}
	switch s.Smoothness {
	case SmoothnessNone, SmoothnessLow, SmoothnessMedium, SmoothnessHigh:
	default:
		return fmt.Errorf("%w: smoothness %q", ErrInvalidSetting, s.Smoothness)
	}
	return nil
}

// Lookup returns the value at a dotted key path, e.g. "modifiers.zoom",
// using the YAML keys of the settings.
func (s Settings) Lookup(keyPath string) (any, bool) {
	data, err := yaml.Marshal(s)
	if err != nil {
		tracer().Errorf("cannot marshal settings: %v", err)
		return nil, false
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		tracer().Errorf("cannot unmarshal settings: %v", err)
		return nil, false
	}
	var node any = tree
	for _, key := range strings.Split(keyPath, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		if node, ok = m[key]; !ok {
			return nil, false
		}
	}
	return node, true
}
