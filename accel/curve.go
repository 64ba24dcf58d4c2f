// Package accel implements acceleration curves for scroll wheels and the
// analysis of scroll tick sequences which drives them.
//
// An acceleration curve maps the scroll tick rate (ticks per second) to the
// distance scrolled per tick (pixels per tick). Its core is a cubic Bezier
// curve b(x) defined on [xMin,xMax]. Below xMin the curve is flat at yMin,
// so that acceleration only affects ticks which feel consecutive. Above xMax
// it is extended linearly with the slope of b at xMax.
//
// BSD License
//
// Copyright (c) Norbert Pillmayer
//
// All rights reserved.
//
// Please refer to the license file for more information.
package accel

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/smoothscroll"
	"github.com/npillmayer/smoothscroll/bezier"
)

// tracer writes to trace with key 'scroll.accel'
func tracer() tracing.Trace {
	return tracing.Select("scroll.accel")
}

// Epsilon is the x-inversion tolerance for acceleration curves, in ticks
// per second. Near-vertical parts of a curve amplify inversion errors, so it
// must be tight enough to keep the output monotonic.
const Epsilon = 1e-9

var (
	// ErrHumpOutOfRange indicates a hump parameter outside of [-1,1].
	ErrHumpOutOfRange = errors.New("hump must be within [-1,1]")
	// ErrInvalidTickInterval indicates non-positive or inverted tick intervals.
	ErrInvalidTickInterval = errors.New("tick intervals must satisfy 0 < min < max")
	// ErrDecreasingRange indicates pxPerTickEnd < pxPerTickStart.
	ErrDecreasingRange = errors.New("pixels per tick must not decrease")
)

// Params are the hyper-parameters of an acceleration curve.
//
// Hump values lie in [-1,1]. A positive AccelerationHump raises sensitivity
// at low tick rates, a negative one smoothes the transition from the flat
// pre-segment into the curve. CapHump mirrors this at the end of the curve.
type Params struct {
	PxPerTickStart   float64       // output at and below xMin
	PxPerTickEnd     float64       // output at xMax
	AccelerationHump float64       // shapes the start of the curve
	CapHump          float64       // shapes the end of the curve
	MaxTickInterval  time.Duration // ticks further apart are not consecutive; xMin = 1/MaxTickInterval
	MinTickInterval  time.Duration // acceleration end; xMax = 1/MinTickInterval
}

// Validate checks the parameters for contract violations.
func (p Params) Validate() error {
	if math.Abs(p.AccelerationHump) > 1 || math.IsNaN(p.AccelerationHump) {
		return fmt.Errorf("%w: acceleration hump %g", ErrHumpOutOfRange, p.AccelerationHump)
	}
	if math.Abs(p.CapHump) > 1 || math.IsNaN(p.CapHump) {
		return fmt.Errorf("%w: cap hump %g", ErrHumpOutOfRange, p.CapHump)
	}
	if p.MinTickInterval <= 0 || p.MaxTickInterval <= p.MinTickInterval {
		return fmt.Errorf("%w: min=%s, max=%s", ErrInvalidTickInterval,
			p.MinTickInterval, p.MaxTickInterval)
	}
	if p.PxPerTickEnd < p.PxPerTickStart {
		return fmt.Errorf("%w: %g → %g", ErrDecreasingRange, p.PxPerTickStart, p.PxPerTickEnd)
	}
	return nil
}

// Curve maps tick rates to pixels per tick.
type Curve struct {
	params Params
	bezier *bezier.Curve
	domain smoothscroll.Interval // tick rates [xMin,xMax]
	rng    smoothscroll.Interval // pixels per tick [yMin,yMax]
	slope  float64               // slope of the linear extension beyond xMax
}

// New builds an acceleration curve from hyper-parameters.
//
// The four control points are (xMin,yMin), P1, P2, (xMax,yMax). For
// AccelerationHump < 0, P1 moves along y=yMin towards xMax, otherwise it
// moves along x=xMin towards yMax. P2 is mirrored, controlled by CapHump.
func New(p Params) (*Curve, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	xMin := 1 / p.MaxTickInterval.Seconds()
	xMax := 1 / p.MinTickInterval.Seconds()
	yMin, yMax := p.PxPerTickStart, p.PxPerTickEnd
	unit := smoothscroll.UnitInterval
	var x1, y1 float64
	if p.AccelerationHump < 0 {
		x1 = smoothscroll.Scale(-p.AccelerationHump, unit, smoothscroll.I(xMin, xMax))
		y1 = yMin
	} else {
		x1 = xMin
		y1 = smoothscroll.Scale(p.AccelerationHump, unit, smoothscroll.I(yMin, yMax))
	}
	var x2, y2 float64
	if p.CapHump < 0 {
		x2 = xMax
		y2 = smoothscroll.Scale(-p.CapHump, unit, smoothscroll.I(yMax, yMin))
	} else {
		x2 = smoothscroll.Scale(p.CapHump, unit, smoothscroll.I(xMax, xMin))
		y2 = yMax
	}
	if x1 > x2 { // humps pull the inner control points past each other
		tracer().Debugf("inner control points crossed (%g > %g), merging", x1, x2)
		x1 = (x1 + x2) / 2
		x2 = x1
	}
	b, err := bezier.NewWithEpsilon(Epsilon,
		smoothscroll.P(xMin, yMin),
		smoothscroll.P(x1, y1),
		smoothscroll.P(x2, y2),
		smoothscroll.P(xMax, yMax))
	if err != nil {
		return nil, err
	}
	c := &Curve{
		params: p,
		bezier: b,
		domain: smoothscroll.I(xMin, xMax),
		rng:    smoothscroll.I(yMin, yMax),
		slope:  b.Slope(1),
	}
	tracer().Debugf("acceleration curve %s, extension slope %g", b, c.slope)
	return c, nil
}

// MustNew is a compatibility helper which panics on invalid parameters.
func MustNew(p Params) *Curve {
	c, err := New(p)
	if err != nil {
		panic(err)
	}
	return c
}

// Params returns the hyper-parameters the curve has been built from.
func (c *Curve) Params() Params {
	return c.params
}

// Domain is the tick-rate interval [xMin,xMax] covered by the Bezier part.
func (c *Curve) Domain() smoothscroll.Interval {
	return c.domain
}

// Range is the pixels-per-tick interval [yMin,yMax] of the Bezier part.
func (c *Curve) Range() smoothscroll.Interval {
	return c.rng
}

// Bezier returns the Bezier part of the curve.
func (c *Curve) Bezier() *bezier.Curve {
	return c.bezier
}

// Evaluate returns pixels per tick for a tick rate in ticks per second.
func (c *Curve) Evaluate(tickRate float64) float64 {
	switch {
	case tickRate <= c.domain.Lower:
		return c.rng.Lower
	case tickRate >= c.domain.Upper:
		return c.rng.Upper + c.slope*(tickRate-c.domain.Upper)
	}
	return c.bezier.Evaluate(tickRate, Epsilon)
}

// PixelsForTick returns the distance to scroll for one analyzed tick,
// including the fast-scroll multiplier.
func (c *Curve) PixelsForTick(a Analysis) float64 {
	return c.Evaluate(a.TickRate) * a.FastScrollMultiplier
}

func (c *Curve) String() string {
	return fmt.Sprintf("acceleration %s → %s px/tick (%s)", c.domain, c.rng, c.bezier)
}
