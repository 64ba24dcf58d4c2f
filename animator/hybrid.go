package animator

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/npillmayer/smoothscroll/bezier"
)

// ErrInvalidDrag indicates drag parameters outside of their domain.
var ErrInvalidDrag = errors.New("invalid drag parameters")

// Drag describes deceleration by drag, dv/dt = −Coefficient · v^Exponent,
// until the speed drops to StopSpeed. Speeds are in value units per second.
type Drag struct {
	Exponent    float64 // within [0,2)
	Coefficient float64 // > 0
	StopSpeed   float64 // > 0
}

// Validate checks the drag parameters.
func (dr Drag) Validate() error {
	if dr.Exponent < 0 || dr.Exponent >= 2 || math.IsNaN(dr.Exponent) {
		return fmt.Errorf("%w: exponent %g not within [0,2)", ErrInvalidDrag, dr.Exponent)
	}
	if !(dr.Coefficient > 0) {
		return fmt.Errorf("%w: coefficient %g", ErrInvalidDrag, dr.Coefficient)
	}
	if !(dr.StopSpeed > 0) {
		return fmt.Errorf("%w: stop speed %g", ErrInvalidDrag, dr.StopSpeed)
	}
	return nil
}

// stopTime is the time it takes to slow down from v0 to the stop speed.
func (dr Drag) stopTime(v0 float64) float64 {
	if v0 <= dr.StopSpeed {
		return 0
	}
	e, c, vs := dr.Exponent, dr.Coefficient, dr.StopSpeed
	if e == 1 {
		return math.Log(v0/vs) / c
	}
	return (math.Pow(v0, 1-e) - math.Pow(vs, 1-e)) / ((1 - e) * c)
}

// speed is the speed at time t after starting with v0.
func (dr Drag) speed(v0, t float64) float64 {
	e, c := dr.Exponent, dr.Coefficient
	if e == 1 {
		return v0 * math.Exp(-c*t)
	}
	base := math.Pow(v0, 1-e) - (1-e)*c*t
	if base <= 0 {
		return 0
	}
	return math.Pow(base, 1/(1-e))
}

// distance is the distance covered until time t after starting with v0.
func (dr Drag) distance(v0, t float64) float64 {
	e, c := dr.Exponent, dr.Coefficient
	if e == 1 {
		return v0 / c * (1 - math.Exp(-c*t))
	}
	v := dr.speed(v0, t)
	return (math.Pow(v0, 2-e) - math.Pow(v, 2-e)) / ((2 - e) * c)
}

// HybridCurve is a timing curve made of a base Bezier curve, followed by
// drag deceleration starting at the base curve's exit speed. The base part
// and the drag part together cover the distance the curve is built for.
type HybridCurve struct {
	base         *bezier.Curve
	drag         Drag
	baseDuration float64 // seconds
	baseDistance float64
	dragDuration float64 // seconds
	dragDistance float64
	exitSpeed    float64
}

// NewHybridCurve creates a hybrid curve covering distance, where the base
// curve takes baseDuration. The split of the distance between base and drag
// part is found by bisection.
func NewHybridCurve(base *bezier.Curve, baseDuration time.Duration, distance float64, drag Drag) (*HybridCurve, error) {
	if base == nil || baseDuration <= 0 {
		return nil, fmt.Errorf("%w: base curve over %s", ErrInvalidStartParams, baseDuration)
	}
	if err := drag.Validate(); err != nil {
		return nil, err
	}
	h := &HybridCurve{
		base:         base,
		drag:         drag,
		baseDuration: baseDuration.Seconds(),
	}
	distance = math.Abs(distance)
	slope := base.Slope(1) // exit speed per unit of base speed
	total := func(b float64) float64 {
		v0 := b / h.baseDuration * slope
		return b + drag.distance(v0, drag.stopTime(v0))
	}
	lo, hi := 0.0, distance
	for i := 0; i < 64 && hi-lo > 1e-9*math.Max(1, distance); i++ {
		mid := lo + (hi-lo)/2
		if total(mid) < distance {
			lo = mid
		} else {
			hi = mid
		}
	}
	h.baseDistance = lo + (hi-lo)/2
	h.exitSpeed = h.baseDistance / h.baseDuration * slope
	h.dragDuration = drag.stopTime(h.exitSpeed)
	h.dragDistance = drag.distance(h.exitSpeed, h.dragDuration)
	tracer().Debugf("hybrid curve: base %g in %gs, drag %g in %gs",
		h.baseDistance, h.baseDuration, h.dragDistance, h.dragDuration)
	return h, nil
}

// Duration is the total duration of base and drag part.
func (h *HybridCurve) Duration() time.Duration {
	return time.Duration((h.baseDuration + h.dragDuration) * float64(time.Second))
}

// Distance is the total distance of base and drag part.
func (h *HybridCurve) Distance() float64 {
	return h.baseDistance + h.dragDistance
}

// BaseDistance is the distance covered by the base curve.
func (h *HybridCurve) BaseDistance() float64 {
	return h.baseDistance
}

// DragDuration is the duration of the drag part.
func (h *HybridCurve) DragDuration() time.Duration {
	return time.Duration(h.dragDuration * float64(time.Second))
}

// At maps progress in time to progress in distance.
func (h *HybridCurve) At(x float64) float64 {
	total := h.Distance()
	if total <= 0 {
		return x
	}
	t := x * (h.baseDuration + h.dragDuration)
	if t <= h.baseDuration {
		return h.base.At(t/h.baseDuration) * h.baseDistance / total
	}
	d := h.drag.distance(h.exitSpeed, math.Min(t-h.baseDuration, h.dragDuration))
	return (h.baseDistance + d) / total
}
