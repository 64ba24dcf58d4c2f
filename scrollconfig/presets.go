package scrollconfig

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/npillmayer/smoothscroll"
	"github.com/npillmayer/smoothscroll/animator"
	"github.com/npillmayer/smoothscroll/bezier"
)

// AnimationCurvePreset names a set of animation curve parameters.
type AnimationCurvePreset int8

// Presets selected by the user's smoothness setting, presets applied by
// modifications, and others.
const (
	PresetNoInertia AnimationCurvePreset = iota
	PresetLowInertia
	PresetMediumInertia
	PresetHighInertia
	PresetTouchDriver       // zoom and rotate
	PresetTouchDriverLinear // three-finger swipes and four-finger pinches
	PresetQuickScroll
	PresetPreciseScroll
	PresetTest
	PresetTrackpad // drag parameters emulating a trackpad, no base curve
)

func (p AnimationCurvePreset) String() string {
	switch p {
	case PresetNoInertia:
		return "noInertia"
	case PresetLowInertia:
		return "lowInertia"
	case PresetMediumInertia:
		return "mediumInertia"
	case PresetHighInertia:
		return "highInertia"
	case PresetTouchDriver:
		return "touchDriver"
	case PresetTouchDriverLinear:
		return "touchDriverLinear"
	case PresetQuickScroll:
		return "quickScroll"
	case PresetPreciseScroll:
		return "preciseScroll"
	case PresetTest:
		return "test"
	case PresetTrackpad:
		return "trackpad"
	}
	return fmt.Sprintf("AnimationCurvePreset(%d)", int(p))
}

// ErrNoBaseCurve is returned when animating with parameters lacking a base curve.
var ErrNoBaseCurve = errors.New("animation curve parameters have no base curve")

// AnimationCurveParams define how a scroll distance is animated.
type AnimationCurveParams struct {
	BaseCurve    *bezier.Curve // nil for presets not used for animating
	BaseDuration time.Duration // duration of the base curve; the drag curve adds to it
	UseDragCurve bool          // follow the base curve by drag deceleration
	Drag         animator.Drag // valid if UseDragCurve
	// SendGestureScrolls selects gesture scroll events over simple scroll events.
	SendGestureScrolls bool
	// SendMomentumScrolls sends momentum events during the drag part. It
	// requires SendGestureScrolls.
	SendMomentumScrolls bool
}

func hybridParams(base *bezier.Curve, baseMs int, exponent, coefficient, stopSpeed float64,
	gesture, momentum bool) AnimationCurveParams {
	if momentum && !gesture {
		panic("momentum scrolls require gesture scrolls")
	}
	return AnimationCurveParams{
		BaseCurve:           base,
		BaseDuration:        time.Duration(baseMs) * time.Millisecond,
		UseDragCurve:        true,
		Drag:                animator.Drag{Exponent: exponent, Coefficient: coefficient, StopSpeed: stopSpeed},
		SendGestureScrolls:  gesture,
		SendMomentumScrolls: momentum,
	}
}

func baseParams(base *bezier.Curve, ms int, gesture bool) AnimationCurveParams {
	return AnimationCurveParams{
		BaseCurve:          base,
		BaseDuration:       time.Duration(ms) * time.Millisecond,
		SendGestureScrolls: gesture,
	}
}

// animation curves need a finer inversion tolerance than acceleration
// curves, otherwise animations get choppy
const animationEpsilon = 0.001

func easeOut(x1 float64) *bezier.Curve {
	return bezier.MustNew(animationEpsilon, smoothscroll.P(0, 0), smoothscroll.P(0, 0),
		smoothscroll.P(x1, 1), smoothscroll.P(1, 1))
}

// ParamsForPreset returns the parameters of a preset. It panics for an
// unknown preset.
func ParamsForPreset(p AnimationCurvePreset) AnimationCurveParams {
	switch p {
	case PresetNoInertia:
		return baseParams(easeOut(0.66), 250, false)
	case PresetLowInertia:
		return hybridParams(bezier.Linear(), 140, 1.0, 30, 50, false, false)
	case PresetMediumInertia:
		return hybridParams(bezier.Linear(), 190, 1.0, 17, 50, false, false)
	case PresetHighInertia:
		// snappiest curve still suitable for momentum scrolls
		return hybridParams(bezier.Linear(), 205, 0.7, 40, 50, true, true)
	case PresetTouchDriver:
		return baseParams(easeOut(0.5), 250, false)
	case PresetTouchDriverLinear:
		return baseParams(bezier.Linear(), 180, false)
	case PresetQuickScroll:
		return hybridParams(bezier.Linear(), 220, 0.7, 30, 1, true, true)
	case PresetPreciseScroll:
		return hybridParams(bezier.Linear(), 140, 1.0, 20, 50, false, false)
	case PresetTest:
		return baseParams(bezier.Linear(), 350, false)
	case PresetTrackpad:
		return AnimationCurveParams{
			UseDragCurve:        true,
			Drag:                animator.Drag{Exponent: 0.7, Coefficient: 30, StopSpeed: 1},
			SendGestureScrolls:  true,
			SendMomentumScrolls: true,
		}
	}
	panic(fmt.Sprintf("unknown animation curve preset %d", int(p)))
}

// Animation returns the parameters for animating a scroll distance. With a
// drag curve, the duration depends on the distance. A distance of 0 cannot
// be animated.
func (ap AnimationCurveParams) Animation(distance float64) (animator.StartParams, error) {
	if ap.BaseCurve == nil {
		return animator.StartParams{}, ErrNoBaseCurve
	}
	if !ap.UseDragCurve || math.Abs(distance) < 1 {
		p := animator.StartParams{
			Duration: ap.BaseDuration,
			Value:    distance,
			Curve:    ap.BaseCurve,
		}
		if err := p.Validate(); err != nil {
			return animator.StartParams{}, err
		}
		return p, nil
	}
	h, err := animator.NewHybridCurve(ap.BaseCurve, ap.BaseDuration, distance, ap.Drag)
	if err != nil {
		return animator.StartParams{}, err
	}
	return animator.StartParams{
		Duration: h.Duration(),
		Value:    distance,
		Curve:    h,
	}, nil
}
