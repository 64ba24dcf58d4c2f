package bezier

import (
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/smoothscroll"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/combin"
)

// New creates a Bezier curve from control points. It returns an error if
// fewer than 2 control points are given, if a coordinate is not finite or if
// the x-coordinates are not non-decreasing.
func New(points ...smoothscroll.Pair) (*Curve, error) {
	return NewWithEpsilon(DefaultEpsilon, points...)
}

// NewWithEpsilon creates a Bezier curve as New does, setting the x-inversion
// tolerance used by At.
func NewWithEpsilon(epsilon float64, points ...smoothscroll.Pair) (*Curve, error) {
	if !(epsilon > 0) {
		return nil, fmt.Errorf("%w, got %g", ErrInvalidEpsilon, epsilon)
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewControlPoints, len(points))
	}
	c := &Curve{
		points:  make([]smoothscroll.Pair, len(points)),
		xs:      make([]float64, len(points)),
		ys:      make([]float64, len(points)),
		epsilon: epsilon,
	}
	copy(c.points, points)
	for i, pt := range points {
		if !pt.IsFinite() {
			return nil, fmt.Errorf("%w at control point %d", ErrInvalidControlPoint, i)
		}
		c.xs[i], c.ys[i] = pt.F()
		if i > 0 && c.xs[i] < c.xs[i-1] {
			return nil, fmt.Errorf("%w: x[%d]=%g < x[%d]=%g", ErrNonMonotonicX,
				i, c.xs[i], i-1, c.xs[i-1])
		}
	}
	c.xrange = smoothscroll.I(c.xs[0], c.xs[len(c.xs)-1])
	return c, nil
}

// MustNew is a compatibility helper which panics on construction errors.
// It is intended for curves built from constant control points.
func MustNew(epsilon float64, points ...smoothscroll.Pair) *Curve {
	c, err := NewWithEpsilon(epsilon, points...)
	if err != nil {
		panic(err)
	}
	return c
}

// Linear returns the curve y = x on [0,1], spelled as a cubic with doubled
// end points.
func Linear() *Curve {
	return MustNew(DefaultEpsilon, smoothscroll.P(0, 0), smoothscroll.P(0, 0),
		smoothscroll.P(1, 1), smoothscroll.P(1, 1))
}

// Degree returns the number of control points.
func (c *Curve) Degree() int {
	return len(c.points)
}

// ControlPoints returns a copy of the control points.
func (c *Curve) ControlPoints() []smoothscroll.Pair {
	pts := make([]smoothscroll.Pair, len(c.points))
	copy(pts, c.points)
	return pts
}

// Start is the first control point.
func (c *Curve) Start() smoothscroll.Pair {
	return c.points[0]
}

// End is the last control point.
func (c *Curve) End() smoothscroll.Pair {
	return c.points[len(c.points)-1]
}

// XRange is the x-range covered by the curve.
func (c *Curve) XRange() smoothscroll.Interval {
	return c.xrange
}

// Epsilon is the x-inversion tolerance used by At.
func (c *Curve) Epsilon() float64 {
	return c.epsilon
}

func (c *Curve) coords(axis smoothscroll.Axis) []float64 {
	switch axis {
	case smoothscroll.Horizontal:
		return c.xs
	case smoothscroll.Vertical:
		return c.ys
	}
	panic(fmt.Sprintf("invalid axis %d", int(axis)))
}

// Sample evaluates the curve at parameter t on one axis, using De Casteljau's
// algorithm. t is expected to be in [0,1]; callers must clamp it.
func (c *Curve) Sample(axis smoothscroll.Axis, t float64) float64 {
	src := c.coords(axis)
	pts := make([]float64, len(src))
	copy(pts, src)
	for n := len(pts) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			pts[i] = pts[i]*(1-t) + pts[i+1]*t
		}
	}
	return pts[0]
}

// SampleDerivative returns the derivative d/dt of the curve at parameter t
// on one axis.
func (c *Curve) SampleDerivative(axis smoothscroll.Axis, t float64) float64 {
	src := c.coords(axis)
	m := len(src) - 1 // polynomial degree
	diffs := floats.SubTo(make([]float64, m), src[1:], src[:m])
	var sum float64
	for i, d := range diffs {
		sum += bernstein(i, m-1, t) * d
	}
	return float64(m) * sum
}

// bernstein computes the Bernstein basis polynomial b(i,n) at t.
func bernstein(i, n int, t float64) float64 {
	if i < 0 || i > n {
		panic(fmt.Sprintf("bernstein index %d out of range 0…%d", i, n))
	}
	a := float64(combin.Binomial(n, i))
	return a * math.Pow(t, float64(i)) * math.Pow(1-t, float64(n-i))
}

// Invert finds the curve parameter t for which the x-coordinate of the curve
// equals x, within tolerance epsilon.
//
// Newton's method is tried first, starting with x rescaled from the curve's
// x-range to [0,1]. If it does not converge, bisection over [0,1] is used.
// Both are bounded in their number of steps; if no t is found within
// epsilon, the best estimate is returned. x should lie within XRange.
func (c *Curve) Invert(x, epsilon float64) float64 {
	axis := smoothscroll.Horizontal
	t := smoothscroll.Scale(x, c.xrange, smoothscroll.UnitInterval)
	for i := 0; i < maxNewtonIterations; i++ {
		sampled := c.Sample(axis, t)
		if math.Abs(x-sampled) < epsilon {
			if 0 <= t && t <= 1 {
				return t
			}
			break // root of the extrapolated polynomial, outside of the curve
		}
		deriv := c.SampleDerivative(axis, t)
		if math.Abs(deriv) < minDerivative {
			break
		}
		t -= (sampled - x) / deriv
	}
	return c.bisect(x, epsilon, smoothscroll.UnitInterval.Clamp(t))
}

func (c *Curve) bisect(x, epsilon, t float64) float64 {
	axis := smoothscroll.Horizontal
	lo, hi := 0.0, 1.0
	best, besterr := t, math.Inf(1)
	for i := 0; i < maxBisectionIterations && lo < hi; i++ {
		sampled := c.Sample(axis, t)
		e := math.Abs(sampled - x)
		if e < besterr {
			best, besterr = t, e
		}
		if e < epsilon {
			return t
		}
		if sampled < x {
			lo = t
		} else {
			hi = t
		}
		t = lo + (hi-lo)/2
	}
	tracer().Debugf("failed to solve for x=%g, best t=%g off by %g", x, best, besterr)
	return best
}

// Evaluate returns y for a given x. epsilon is the tolerance for finding the
// curve parameter of x, not for the precision of y.
func (c *Curve) Evaluate(x, epsilon float64) float64 {
	t := c.Invert(x, epsilon)
	return c.Sample(smoothscroll.Vertical, t)
}

// At returns y for a given x, using the curve's default tolerance.
func (c *Curve) At(x float64) float64 {
	return c.Evaluate(x, c.epsilon)
}

// Slope returns dy/dx at parameter t. Where both derivatives vanish (doubled
// end points), the slope is approximated by stepping slightly into the curve.
// It returns 0 if the curve is vertical at t.
func (c *Curve) Slope(t float64) float64 {
	const h = 1e-4
	for step := 0; step < 4; step++ {
		dx := c.SampleDerivative(smoothscroll.Horizontal, t)
		dy := c.SampleDerivative(smoothscroll.Vertical, t)
		if math.Abs(dx) >= minDerivative {
			return dy / dx
		}
		if math.Abs(dy) >= minDerivative {
			return 0 // vertical
		}
		if t > 0.5 {
			t -= h
		} else {
			t += h
		}
	}
	return 0
}

// String returns the control points of a curve, e.g.
//
//	bezier (0,0) .. (0.5,1) .. (1,1)
func (c *Curve) String() string {
	var b strings.Builder
	b.WriteString("bezier ")
	for i, pt := range c.points {
		if i > 0 {
			b.WriteString(" .. ")
		}
		b.WriteString(pt.String())
	}
	return b.String()
}
