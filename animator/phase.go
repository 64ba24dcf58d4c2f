// Package animator drives animations frame by frame and emits value deltas
// to a callback, tagged with the phase of the animation.
/*

The Driver walks a timing curve over the duration of an animation segment
and computes a continuous value delta for every frame. What is emitted for a
delta is decided by a pluggable Quantizer: Continuous passes the delta
through, Pixelated converts it into integer deltas with a Subpixelator,
drops frames with zero delta, and makes sure the first and last emitted
deltas carry the start and end phases.

	None → Start → Continue → … → Continue → End
	None → StartAndEnd                              (single emission)

RunningStart replaces Start if a segment is started while a previous one is
still running.

The Animator serializes all operations on a Driver onto one goroutine, so
curve and phase state are never mutated concurrently. Frames are pushed
into the Animator by an external timing source; the Animator does not
schedule timers itself.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package animator

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'scroll.animator'
func tracer() tracing.Trace {
	return tracing.Select("scroll.animator")
}

// Phase tags a frame with its position within an animation segment.
type Phase int8

// Animation phases
const (
	PhaseNone         Phase = iota // no frame emitted yet
	PhaseStart                     // first frame of a segment
	PhaseRunningStart              // first frame of a segment started while another was running
	PhaseContinue                  // frame in the middle of a segment
	PhaseEnd                       // last frame of a segment
	PhaseStartAndEnd               // only frame of a segment
)

func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseStart:
		return "start"
	case PhaseRunningStart:
		return "runningStart"
	case PhaseContinue:
		return "continue"
	case PhaseEnd:
		return "end"
	case PhaseStartAndEnd:
		return "startAndEnd"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// IsStart is true for Start and RunningStart.
func (p Phase) IsStart() bool {
	return p == PhaseStart || p == PhaseRunningStart
}

// IsEnd is true for End and StartAndEnd.
func (p Phase) IsEnd() bool {
	return p == PhaseEnd || p == PhaseStartAndEnd
}
