package scrollconfig

import (
	"fmt"

	"github.com/npillmayer/smoothscroll"
)

// InputModification changes how scroll input is interpreted.
type InputModification int8

// Input modifications
const (
	InputNone    InputModification = iota
	InputQuick                     // scroll faster, fast scroll triggers easily
	InputPrecise                   // scroll slower, no fast scroll
)

func (m InputModification) String() string {
	switch m {
	case InputNone:
		return "none"
	case InputQuick:
		return "quick"
	case InputPrecise:
		return "precise"
	}
	return fmt.Sprintf("InputModification(%d)", int(m))
}

// EffectModification changes what scrolling does.
type EffectModification int8

// Effect modifications
const (
	EffectNone EffectModification = iota
	EffectHorizontalScroll
	EffectZoom
	EffectRotate
	EffectAppSwitch
	EffectThreeFingerSwipe
	EffectFourFingerPinch
	EffectAddModeFeedback
)

func (m EffectModification) String() string {
	switch m {
	case EffectNone:
		return "none"
	case EffectHorizontalScroll:
		return "horizontalScroll"
	case EffectZoom:
		return "zoom"
	case EffectRotate:
		return "rotate"
	case EffectAppSwitch:
		return "appSwitch"
	case EffectThreeFingerSwipe:
		return "threeFingerSwipe"
	case EffectFourFingerPinch:
		return "fourFingerPinch"
	case EffectAddModeFeedback:
		return "addModeFeedback"
	}
	return fmt.Sprintf("EffectModification(%d)", int(m))
}

// Modifications is the pair of modifications active for a scroll event.
type Modifications struct {
	Input  InputModification
	Effect EffectModification
}

func (m Modifications) String() string {
	return fmt.Sprintf("(%s,%s)", m.Input, m.Effect)
}

// cacheKey packs modifications and axis into an int, ordered by input
// modification, then effect, then axis.
func cacheKey(m Modifications, axis smoothscroll.Axis) int {
	return (int(m.Input)*16+int(m.Effect))*2 + int(axis)
}

// DisplaySize is the pixel size of a display.
type DisplaySize struct {
	Width, Height int
}

// Along returns the display's extent in the direction of scrolling.
// Horizontal scrolling, by axis or by effect, uses the width.
func (d DisplaySize) Along(axis smoothscroll.Axis, effect EffectModification) int {
	if axis == smoothscroll.Horizontal || effect == EffectHorizontalScroll {
		return d.Width
	}
	return d.Height
}

// === Override pipeline =====================================================

// step overrides parts of a configuration copy. Steps run in order; later
// steps override earlier ones.
type step func(c *Config, base *Config, m Modifications, axis smoothscroll.Axis, display DisplaySize) error

var pipeline = []step{
	applyInputModification,
	applyEffectModification,
	applyStandardCurve,
}

// derive copies base and runs the override pipeline on the copy.
func derive(base *Config, m Modifications, axis smoothscroll.Axis, display DisplaySize) (*Config, error) {
	c := *base
	for _, apply := range pipeline {
		if err := apply(&c, base, m, axis, display); err != nil {
			return nil, fmt.Errorf("cannot resolve scroll config for %s on %s axis: %w", m, axis, err)
		}
	}
	return &c, nil
}

func applyInputModification(c, base *Config, m Modifications, _ smoothscroll.Axis, _ DisplaySize) error {
	var err error
	switch m.Input {
	case InputNone:
		// deferred to applyStandardCurve, which depends on the final preset
	case InputQuick:
		if c.AccelerationCurve, err = base.QuickAccelerationCurve(); err != nil {
			return err
		}
		c.setPreset(PresetQuickScroll)
		c.SwipeMaxInterval = scaleDuration(base.SwipeMaxInterval, 1.2)
		c.TickIntervalMax = scaleDuration(base.TickIntervalMax, 1.2)
		c.FastScrollThresholdSwipes = 2
		c.FastScrollSpeedup = 20
	case InputPrecise:
		if c.AccelerationCurve, err = base.PreciseAccelerationCurve(); err != nil {
			return err
		}
		c.setPreset(PresetPreciseScroll)
		c.FastScrollThresholdSwipes = 69 // out of reach
		c.FastScrollExponentialBase = 1
		c.FastScrollSpeedup = 0
	default:
		panic(fmt.Sprintf("unknown input modification %d", int(m.Input)))
	}
	return nil
}

func applyEffectModification(c, _ *Config, m Modifications, _ smoothscroll.Axis, _ DisplaySize) error {
	switch m.Effect {
	case EffectNone, EffectHorizontalScroll, EffectAddModeFeedback:
	case EffectZoom, EffectRotate:
		c.SmoothEnabled = true
		c.setPreset(PresetTouchDriver)
	case EffectThreeFingerSwipe, EffectFourFingerPinch:
		c.SmoothEnabled = true
		c.setPreset(PresetTouchDriverLinear)
	case EffectAppSwitch:
		c.SmoothEnabled = false
	default:
		panic(fmt.Sprintf("unknown effect modification %d", int(m.Effect)))
	}
	return nil
}

func applyStandardCurve(c, _ *Config, m Modifications, axis smoothscroll.Axis, display DisplaySize) error {
	if m.Input != InputNone {
		return nil
	}
	curve, err := c.StandardAccelerationCurve(display.Along(axis, m.Effect))
	if err != nil {
		return err
	}
	c.AccelerationCurve = curve
	return nil
}
