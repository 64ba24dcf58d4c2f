package scrollconfig

import (
	"fmt"
	"math"
	"time"

	"github.com/npillmayer/smoothscroll/accel"
)

// Sensitivity is the tier of the distance scrolled for slow ticks.
type Sensitivity int8

// Sensitivity tiers
const (
	SensitivityLow Sensitivity = iota
	SensitivityMedium
	SensitivityHigh
	SensitivityPrecise
	SensitivityTest
)

func (s Sensitivity) String() string {
	switch s {
	case SensitivityLow:
		return "low"
	case SensitivityMedium:
		return "medium"
	case SensitivityHigh:
		return "high"
	case SensitivityPrecise:
		return "precise"
	case SensitivityTest:
		return "test"
	}
	return fmt.Sprintf("Sensitivity(%d)", int(s))
}

// Acceleration is the tier of the distance scrolled for fast ticks.
type Acceleration int8

// Acceleration tiers
const (
	AccelerationLow Acceleration = iota
	AccelerationMedium
	AccelerationHigh
)

func (a Acceleration) String() string {
	switch a {
	case AccelerationLow:
		return "low"
	case AccelerationMedium:
		return "medium"
	case AccelerationHigh:
		return "high"
	}
	return fmt.Sprintf("Acceleration(%d)", int(a))
}

// Config is a resolved scroll configuration. Configs handed out by a
// Resolver are shared and must be treated as read-only.
type Config struct {
	SmoothEnabled         bool
	InvertDirection       int  // factor, −1 for reversed scrolling, else +1
	UseSystemAcceleration bool // leave acceleration to the operating system
	Sensitivity           Sensitivity
	Acceleration          Acceleration
	HorizontalModifiers   uint64
	ZoomModifiers         uint64

	// Tick analysis
	SwipeThresholdTicks       int           // consecutive ticks which make up a swipe
	SwipeMaxTicks             int           // most ticks in a natural swipe
	TickIntervalMax           time.Duration // ticks further apart are not consecutive
	TickIntervalMin           time.Duration // smallest natural tick interval
	SwipeMaxInterval          time.Duration // swipes further apart are not consecutive
	SwipeMinTickSpeed         float64       // ticks per second
	SmoothingWeight           float64       // tick rate smoothing, 1 turns it off
	FastScrollThresholdSwipes int
	FastScrollFactor          float64
	FastScrollExponentialBase float64
	FastScrollSpeedup         float64

	// Curves
	Preset            AnimationCurvePreset
	Animation         AnimationCurveParams
	AccelerationCurve *accel.Curve
}

// referenceScreenSize is the display dimension the end rates are tuned for.
const referenceScreenSize = 1080

// buildBase derives the base configuration from settings.
func buildBase(s Settings) (*Config, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	c := &Config{
		SmoothEnabled:         s.Smooth,
		InvertDirection:       1,
		UseSystemAcceleration: s.Speed == SpeedSystem,
		HorizontalModifiers:   s.Modifiers.Horizontal,
		ZoomModifiers:         s.Modifiers.Zoom,
		SwipeThresholdTicks:   2,
		SwipeMaxTicks:         11,
		TickIntervalMax:       160 * time.Millisecond,
		TickIntervalMin:       15 * time.Millisecond,
		SmoothingWeight:       0.5,
		FastScrollFactor:      1.0,
		// > 1 for any speedup; closer to 1 makes FastScrollSpeedup less sensitive
		FastScrollExponentialBase: 1.1,
	}
	if s.ReverseDirection {
		c.InvertDirection = -1
	}
	c.Sensitivity, c.Acceleration = tiers(s)
	c.setPreset(presetForSmoothness(s.Smoothness))
	c.tuneAnalysis()
	curve, err := c.StandardAccelerationCurve(referenceScreenSize)
	if err != nil {
		return nil, err
	}
	c.AccelerationCurve = curve
	tracer().Infof("base scroll config: preset %s, sensitivity %s, acceleration %s",
		c.Preset, c.Sensitivity, c.Acceleration)
	return c, nil
}

func tiers(s Settings) (Sensitivity, Acceleration) {
	acc := AccelerationMedium // also for system speed, where it is unused
	switch s.Speed {
	case SpeedLow:
		acc = AccelerationLow
	case SpeedHigh:
		acc = AccelerationHigh
	}
	if s.Precise {
		return SensitivityPrecise, acc
	}
	return Sensitivity(acc), acc
}

func presetForSmoothness(sm Smoothness) AnimationCurvePreset {
	switch sm {
	case SmoothnessNone:
		return PresetNoInertia
	case SmoothnessLow:
		return PresetLowInertia
	case SmoothnessMedium:
		return PresetMediumInertia
	case SmoothnessHigh:
		return PresetHighInertia
	}
	panic(fmt.Sprintf("unknown smoothness %q", sm))
}

// setPreset selects an animation curve preset together with its parameters.
func (c *Config) setPreset(p AnimationCurvePreset) {
	c.Preset = p
	c.Animation = ParamsForPreset(p)
}

// tuneAnalysis sets the tick analysis tunables depending on the preset.
// They are tuned for high inertia and relaxed for the other presets.
func (c *Config) tuneAnalysis() {
	switch c.Preset {
	case PresetHighInertia, PresetQuickScroll:
		c.FastScrollThresholdSwipes = 3
		c.SwipeMinTickSpeed = 12
		c.FastScrollSpeedup = 7
	default:
		c.FastScrollThresholdSwipes = 4
		c.SwipeMinTickSpeed = 16
		c.FastScrollSpeedup = 5
	}
	switch c.Preset {
	case PresetNoInertia, PresetLowInertia, PresetTouchDriver, PresetTouchDriverLinear, PresetPreciseScroll:
		c.SwipeMaxInterval = 350 * time.Millisecond
	case PresetMediumInertia:
		c.SwipeMaxInterval = 475 * time.Millisecond
	case PresetHighInertia, PresetQuickScroll:
		c.SwipeMaxInterval = 600 * time.Millisecond
	default:
		panic(fmt.Sprintf("no analysis tunables for preset %s", c.Preset))
	}
}

// AnalyzerConfig returns the tick analysis tunables.
func (c *Config) AnalyzerConfig() accel.AnalyzerConfig {
	return accel.AnalyzerConfig{
		TickIntervalMax:           c.TickIntervalMax,
		TickIntervalMin:           c.TickIntervalMin,
		SwipeThresholdTicks:       c.SwipeThresholdTicks,
		SwipeMaxTicks:             c.SwipeMaxTicks,
		SwipeMaxInterval:          c.SwipeMaxInterval,
		SwipeMinTickSpeed:         c.SwipeMinTickSpeed,
		SmoothingWeight:           c.SmoothingWeight,
		FastScrollThresholdSwipes: c.FastScrollThresholdSwipes,
		FastScrollFactor:          c.FastScrollFactor,
		FastScrollExponentialBase: c.FastScrollExponentialBase,
		FastScrollSpeedup:         c.FastScrollSpeedup,
	}
}

func (c *Config) accelerationCurve(start, end, accHump, capHump float64) (*accel.Curve, error) {
	return accel.New(accel.Params{
		PxPerTickStart:   start,
		PxPerTickEnd:     end,
		AccelerationHump: accHump,
		CapHump:          capHump,
		MaxTickInterval:  c.TickIntervalMax,
		MinTickInterval:  c.TickIntervalMin,
	})
}

// QuickAccelerationCurve is the acceleration curve for quick scrolling.
func (c *Config) QuickAccelerationCurve() (*accel.Curve, error) {
	return c.accelerationCurve(100, 500, 0, 0)
}

// PreciseAccelerationCurve is the acceleration curve for precise scrolling.
func (c *Config) PreciseAccelerationCurve() (*accel.Curve, error) {
	return c.accelerationCurve(3, 30, 0, 0)
}

// StandardAccelerationCurve derives the acceleration curve from sensitivity,
// acceleration and animation curve preset. screenSize is the display's
// pixel extent along the scroll direction; larger displays scroll further
// for fast ticks. It panics for presets which bring their own curves.
func (c *Config) StandardAccelerationCurve(screenSize int) (*accel.Curve, error) {
	if c.Sensitivity == SensitivityPrecise {
		return c.accelerationCurve(10, 30, 0, 0)
	}
	var inertia, capHump float64
	switch c.Preset {
	case PresetLowInertia, PresetNoInertia:
		inertia, capHump = 2.0/3, 0.6
	case PresetMediumInertia:
		inertia, capHump = 3.0/4, 0.4
	case PresetHighInertia:
		inertia, capHump = 1, 0
	case PresetTouchDriver, PresetTouchDriverLinear:
		inertia, capHump = 2.0/3, 0.4
	default:
		panic(fmt.Sprintf("no standard acceleration curve for preset %s", c.Preset))
	}
	if !c.SmoothEnabled {
		inertia = 1.0 / 2
	}
	var startBase float64
	switch c.Sensitivity {
	case SensitivityLow:
		startBase = 30
	case SensitivityMedium:
		startBase = 60
	case SensitivityHigh:
		startBase = 90
	case SensitivityTest:
		startBase = 120
	default:
		panic(fmt.Sprintf("unknown sensitivity %d", int(c.Sensitivity)))
	}
	var endBase float64
	switch c.Acceleration {
	case AccelerationLow:
		endBase = 90
	case AccelerationMedium:
		endBase = 140
	case AccelerationHigh:
		endBase = 180
	default:
		panic(fmt.Sprintf("unknown acceleration %d", int(c.Acceleration)))
	}
	// pixels per tick are whole pixels
	start := math.Trunc(startBase * inertia)
	end := math.Trunc(endBase*inertia + screenSizeSummand(screenSize))
	if end < start {
		end = start
	}
	tracer().Debugf("standard acceleration curve for screen size %d: %g → %g px/tick",
		screenSize, start, end)
	return c.accelerationCurve(start, end, 0, capHump)
}

// screenSizeSummand is 0 for the reference screen size, grows linearly for
// larger screens and shrinks hyperbolically for smaller ones.
func screenSizeSummand(screenSize int) float64 {
	if screenSize <= 0 {
		screenSize = referenceScreenSize
	}
	f := float64(screenSize) / referenceScreenSize
	if f >= 1 {
		return 20 * (f - 1)
	}
	return -20 * (1/f - 1)
}

func scaleDuration(d time.Duration, f float64) time.Duration {
	return time.Duration(math.Round(float64(d) * f))
}
