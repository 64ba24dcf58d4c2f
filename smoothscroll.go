/*
Package smoothscroll implements the numeric core for smooth scrolling:
points, intervals, linear rescaling and the axis type shared by the curve,
acceleration, animation and configuration packages.

Sub-packages:

	bezier        generic Bezier curves with monotonic x, sampling and inversion
	accel         acceleration curves mapping tick rate to pixels per tick
	animator      pixelated animation driver with phase state machine
	scrollconfig  resolution of scroll configurations from user settings
	display       display layout lookup for the pointer location

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package smoothscroll

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'smoothscroll'
func tracer() tracing.Trace {
	return tracing.Select("smoothscroll")
}

// === Numeric Data Type =====================================================

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Clamp restricts n to [lo,hi].
func Clamp(n, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, n))
}

// === Pair Data Type ========================================================

// Pair is a 2D point, e.g. a control point of a curve or a pointer location.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	return real(p), imag(p)
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// IsFinite is a predicate: are both coordinates neither NaN nor infinite?
func (p Pair) IsFinite() bool {
	return !cmplx.IsNaN(complex128(p)) && !cmplx.IsInf(complex128(p))
}

// Axis selects one coordinate of a pair. It is used for sampling curves
// along one dimension and for telling vertical from horizontal scrolling.
type Axis int8

// Axes
const (
	Horizontal Axis = iota // x-axis
	Vertical               // y-axis
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Of returns the coordinate of p on axis a.
func (a Axis) Of(p Pair) float64 {
	switch a {
	case Horizontal:
		return p.X()
	case Vertical:
		return p.Y()
	}
	panic(fmt.Sprintf("invalid axis %d", int(a)))
}

// === Intervals =============================================================

// Interval is a closed range of real numbers [Lower,Upper]. Intervals may be
// reversed (Lower > Upper), which is useful for mirrored rescaling.
type Interval struct {
	Lower, Upper float64
}

// UnitInterval is [0,1].
var UnitInterval = Interval{0, 1}

// I is a quick notation for constructing an interval.
func I(lower, upper float64) Interval {
	return Interval{Lower: lower, Upper: upper}
}

// Length returns Upper−Lower, which is negative for reversed intervals.
func (iv Interval) Length() float64 {
	return iv.Upper - iv.Lower
}

// Min returns the smaller bound.
func (iv Interval) Min() float64 {
	return math.Min(iv.Lower, iv.Upper)
}

// Max returns the larger bound.
func (iv Interval) Max() float64 {
	return math.Max(iv.Lower, iv.Upper)
}

// Contains is a predicate: is v within the interval (bounds included)?
func (iv Interval) Contains(v float64) bool {
	return iv.Min() <= v && v <= iv.Max()
}

// Clamp restricts v to the interval.
func (iv Interval) Clamp(v float64) float64 {
	return Clamp(v, iv.Min(), iv.Max())
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%g,%g]", iv.Lower, iv.Upper)
}

// Scale rescales value linearly from interval from to interval to.
// Values outside of from are extrapolated. A degenerate source interval, i.e.
// one shorter than Epsilon, maps everything onto to.Lower.
func Scale(value float64, from, to Interval) float64 {
	if Is0(from.Length()) {
		tracer().Debugf("scale from degenerate interval %s", from)
		return to.Lower
	}
	normalized := (value - from.Lower) / from.Length()
	return normalized*to.Length() + to.Lower
}
