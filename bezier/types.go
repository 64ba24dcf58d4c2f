package bezier

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/smoothscroll"
)

// tracer writes to trace with key 'scroll.bezier'
func tracer() tracing.Trace {
	return tracing.Select("scroll.bezier")
}

// DefaultEpsilon is the x-inversion tolerance used by At, if a curve has
// been created without an explicit tolerance.
const DefaultEpsilon = 0.001

const (
	maxNewtonIterations    = 8
	maxBisectionIterations = 64
	minDerivative          = 1e-6
)

var (
	// ErrTooFewControlPoints indicates a curve with less than 2 control points.
	ErrTooFewControlPoints = errors.New("curve needs at least 2 control points")
	// ErrNonMonotonicX indicates control points with decreasing x-coordinates.
	ErrNonMonotonicX = errors.New("control point x-coordinates must be non-decreasing")
	// ErrInvalidControlPoint indicates a control point coordinate containing NaN/Inf.
	ErrInvalidControlPoint = errors.New("control point has invalid coordinate")
	// ErrInvalidEpsilon indicates a non-positive inversion tolerance.
	ErrInvalidEpsilon = errors.New("epsilon must be positive")
)

// Curve is an immutable Bezier curve with non-decreasing control point
// x-coordinates. Create curves with New or NewWithEpsilon.
type Curve struct {
	points  []smoothscroll.Pair   // control points
	xs      []float64             // x-coordinates of control points
	ys      []float64             // y-coordinates of control points
	xrange  smoothscroll.Interval // x of first and last control point
	epsilon float64               // default tolerance for At
}
