package bezier

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/smoothscroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

var (
	P = smoothscroll.P
	X = smoothscroll.Horizontal
	Y = smoothscroll.Vertical
)

func mustPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	f()
}

func TestCreateCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, err := New(P(0, 0), P(0.5, 1), P(1, 1))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Degree())
	assert.Equal(t, smoothscroll.I(0, 1), c.XRange())
	assert.Equal(t, P(0, 0), c.Start())
	assert.Equal(t, P(1, 1), c.End())
	assert.Equal(t, "bezier (0,0) .. (0.5,1) .. (1,1)", c.String())
}

func TestConstructionErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := New(P(0, 0))
	assert.True(t, errors.Is(err, ErrTooFewControlPoints))
	_, err = New(P(0, 0), P(2, 1), P(1, 2))
	assert.True(t, errors.Is(err, ErrNonMonotonicX))
	_, err = New(P(0, 0), P(math.NaN(), 1))
	assert.True(t, errors.Is(err, ErrInvalidControlPoint))
	_, err = NewWithEpsilon(0, P(0, 0), P(1, 1))
	assert.True(t, errors.Is(err, ErrInvalidEpsilon))
	mustPanic(t, func() {
		MustNew(0.01, P(1, 0), P(0, 1))
	})
}

func TestControlPointsAreCopied(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts := []smoothscroll.Pair{P(0, 0), P(1, 1)}
	c, err := New(pts...)
	require.NoError(t, err)
	pts[1] = P(5, 5)
	assert.Equal(t, P(1, 1), c.End())
	cp := c.ControlPoints()
	cp[0] = P(9, 9)
	assert.Equal(t, P(0, 0), c.Start())
}

func TestSampleEndpoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := MustNew(0.001, P(1, 2), P(2, 8), P(4, -3), P(5, 7))
	assert.InDelta(t, 1.0, c.Sample(X, 0), 1e-12)
	assert.InDelta(t, 5.0, c.Sample(X, 1), 1e-12)
	assert.InDelta(t, 2.0, c.Sample(Y, 0), 1e-12)
	assert.InDelta(t, 7.0, c.Sample(Y, 1), 1e-12)
	// midpoint of a cubic: (P0 + 3P1 + 3P2 + P3) / 8
	assert.InDelta(t, (1+6+12+5)/8.0, c.Sample(X, 0.5), 1e-12)
}

func TestSampleDerivative(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := MustNew(0.001, P(0, 0), P(1, 3), P(3, 1), P(4, 4))
	// end tangents of a cubic are 3(P1−P0) and 3(P3−P2)
	assert.InDelta(t, 3.0, c.SampleDerivative(X, 0), 1e-12)
	assert.InDelta(t, 9.0, c.SampleDerivative(Y, 0), 1e-12)
	assert.InDelta(t, 3.0, c.SampleDerivative(X, 1), 1e-12)
	assert.InDelta(t, 9.0, c.SampleDerivative(Y, 1), 1e-12)
	// compare against central differences
	const h = 1e-6
	for _, tt := range []float64{0.1, 0.37, 0.5, 0.81} {
		for _, axis := range []smoothscroll.Axis{X, Y} {
			numeric := (c.Sample(axis, tt+h) - c.Sample(axis, tt-h)) / (2 * h)
			assert.InDelta(t, numeric, c.SampleDerivative(axis, tt), 1e-5)
		}
	}
}

func TestLinearCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, err := New(P(0, 0), P(0, 0), P(1, 1), P(1, 1))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, c.Evaluate(0.5, 0.001), 0.001)
	lin := Linear()
	for _, x := range []float64{0, 0.1, 0.25, 0.9, 1} {
		assert.InDelta(t, x, lin.At(x), 0.002, "x=%g", x)
	}
}

func TestInvertBoundaries(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := MustNew(0.001, P(10, 0), P(12, 5), P(30, 8), P(40, 10))
	assert.InDelta(t, 0.0, c.Invert(10, 1e-6), 1e-4)
	assert.InDelta(t, 1.0, c.Invert(40, 1e-6), 1e-4)
	assert.InDelta(t, 0.0, c.Evaluate(10, 1e-6), 1e-3)
	assert.InDelta(t, 10.0, c.Evaluate(40, 1e-6), 1e-3)
}

func TestInvertTerminatesOnFlatCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// all x equal: the derivative vanishes, bisection must still terminate
	c := MustNew(0.001, P(2, 0), P(2, 1), P(2, 3))
	tt := c.Invert(2.5, 1e-9)
	assert.True(t, tt >= 0 && tt <= 1)
	assert.False(t, math.IsNaN(c.Evaluate(2.5, 1e-9)))
}

func randomMonotonicCurve(rnd *rand.Rand, n int) *Curve {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = rnd.Float64() * 100
	}
	sort.Float64s(xs)
	pts := make([]smoothscroll.Pair, n)
	for i := range pts {
		pts[i] = P(xs[i], rnd.Float64()*50-25)
	}
	return MustNew(0.001, pts...)
}

func TestInvertRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rnd := rand.New(rand.NewSource(4711))
	const eps = 1e-6
	for k := 0; k < 200; k++ {
		c := randomMonotonicCurve(rnd, 2+rnd.Intn(3))
		for _, tt := range []float64{0, 0.05, 0.3, 0.5, 0.77, 0.99, 1} {
			x := c.Sample(X, tt)
			got := c.Invert(x, eps)
			require.True(t, got >= 0 && got <= 1, "t out of range: %g", got)
			assert.True(t, scalar.EqualWithinAbs(x, c.Sample(X, got), eps),
				"curve %s: x=%g, got t=%g → x=%g", c, x, got, c.Sample(X, got))
		}
	}
}

func TestInvertRecoversT(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// strictly increasing x with dx/dt ≥ 1 everywhere: x-error bounds t-error
	c := MustNew(0.001, P(0, 0), P(1, 2), P(2, -1), P(3, 3))
	const eps = 1e-7
	for tt := 0.0; tt <= 1.0; tt += 0.0625 {
		got := c.Invert(c.Sample(X, tt), eps)
		assert.InDelta(t, tt, got, eps, "t=%g", tt)
	}
}

func TestSlope(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := MustNew(0.001, P(0, 0), P(1, 2), P(3, 6))
	assert.InDelta(t, 2.0, c.Slope(0), 1e-9)
	assert.InDelta(t, 2.0, c.Slope(1), 1e-9)
	// doubled end points: both derivatives vanish at t=1
	d := MustNew(0.001, P(0, 0), P(0, 0), P(10, 20), P(10, 20))
	assert.InDelta(t, 2.0, d.Slope(1), 1e-3)
}

func TestInvalidAxisPanics(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := Linear()
	mustPanic(t, func() {
		c.Sample(smoothscroll.Axis(3), 0.5)
	})
}
