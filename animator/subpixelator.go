package animator

import (
	"fmt"
	"math"
)

// Rounding selects how a Subpixelator turns accumulated fractional deltas
// into integers.
type Rounding int8

// Rounding modes
const (
	// Biased rounds away from zero in the direction of the incoming delta:
	// ceil for positive deltas, floor for negative ones. The first non-zero
	// delta of an animation thus produces output immediately, in either direction.
	Biased Rounding = iota
	Ceil
	Floor
	Round
)

func (r Rounding) String() string {
	switch r {
	case Biased:
		return "biased"
	case Ceil:
		return "ceil"
	case Floor:
		return "floor"
	case Round:
		return "round"
	}
	return fmt.Sprintf("Rounding(%d)", int(r))
}

// tolerance against floating point noise: 2.9999999999 must not ceil to 3
// twice.
const roundingTolerance = 1e-9

// Subpixelator converts fractional deltas into integer deltas, carrying the
// rounding error over to the next call. The integer deltas sum up to the
// fractional ones, up to the current remainder.
type Subpixelator struct {
	rounding  Rounding
	remainder float64 // accumulated rounding error
}

// NewSubpixelator creates a subpixelator with a given rounding mode.
func NewSubpixelator(r Rounding) *Subpixelator {
	return &Subpixelator{rounding: r}
}

// Rounding returns the rounding mode.
func (s *Subpixelator) Rounding() Rounding {
	return s.rounding
}

// Remainder is the accumulated fraction not yet emitted. It is negative if
// more has been emitted than received.
func (s *Subpixelator) Remainder() float64 {
	return s.remainder
}

// Reset drops the accumulated rounding error.
func (s *Subpixelator) Reset() {
	s.remainder = 0
}

// IntDelta returns the integer delta for a fractional delta and keeps the
// rounding error.
func (s *Subpixelator) IntDelta(delta float64) int {
	acc := s.remainder + delta
	i := s.round(acc, delta)
	s.remainder = acc - float64(i)
	return i
}

// PeekIntDelta returns what IntDelta would return, without changing the
// subpixelator.
func (s *Subpixelator) PeekIntDelta(delta float64) int {
	return s.round(s.remainder+delta, delta)
}

func (s *Subpixelator) round(acc, delta float64) int {
	switch s.rounding {
	case Biased:
		switch {
		case delta > 0:
			return int(math.Ceil(acc - roundingTolerance))
		case delta < 0:
			return int(math.Floor(acc + roundingTolerance))
		}
		return int(math.Trunc(acc))
	case Ceil:
		return int(math.Ceil(acc - roundingTolerance))
	case Floor:
		return int(math.Floor(acc + roundingTolerance))
	case Round:
		return int(math.Round(acc))
	}
	panic(fmt.Sprintf("invalid rounding mode %d", int(s.rounding)))
}
