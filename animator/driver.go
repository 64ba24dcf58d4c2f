package animator

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/npillmayer/smoothscroll"
)

// Curve is a timing curve mapping animation progress in time, within [0,1],
// to progress in value, within [0,1].
type Curve interface {
	At(x float64) float64
}

// FloatCallback receives continuous value deltas.
type FloatCallback func(valueDelta float64, timeDelta time.Duration, phase Phase)

// IntCallback receives integer value deltas.
type IntCallback func(valueDelta int, timeDelta time.Duration, phase Phase)

// ErrInvalidStartParams indicates a segment which cannot be animated.
var ErrInvalidStartParams = errors.New("invalid animation start parameters")

// StartParams define an animation segment: the value to animate from 0 to
// Value, over Duration, following Curve.
type StartParams struct {
	Duration time.Duration
	Value    float64
	Curve    Curve
}

// Validate checks start parameters. A zero Value has nothing to animate.
func (p StartParams) Validate() error {
	if p.Duration <= 0 {
		return fmt.Errorf("%w: duration %s", ErrInvalidStartParams, p.Duration)
	}
	if p.Curve == nil {
		return fmt.Errorf("%w: missing curve", ErrInvalidStartParams)
	}
	if p.Value == 0 || math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
		return fmt.Errorf("%w: value %g", ErrInvalidStartParams, p.Value)
	}
	return nil
}

// Frame is a driver's computation for one tick of the timing source.
type Frame struct {
	ValueDelta float64       // continuous value delta of this frame
	TimeDelta  time.Duration // time since the previous frame
	ValueLeft  float64       // value still to animate after this frame
}

// Segment is the phase state of a running animation segment. It is owned by
// the Driver and mutated by its Quantizer.
type Segment struct {
	Phase     Phase                 // phase of the current frame
	LastPhase Phase                 // phase of the last emitted frame
	Interval  smoothscroll.Interval // value interval of the segment
	Callback  any                   // FloatCallback or IntCallback, depending on the quantizer
}

// Emitted records an emission: the current phase becomes the last phase,
// and a start phase is demoted to Continue for the following frames.
func (seg *Segment) Emitted() {
	seg.LastPhase = seg.Phase
	if seg.Phase.IsStart() {
		seg.Phase = PhaseContinue
	}
}

// Direction is the sign of the segment's value interval, +1 or −1.
func (seg *Segment) Direction() int {
	if seg.Interval.Length() < 0 {
		return -1
	}
	return 1
}

// Quantizer decides what to emit for a frame. Implementations invoke the
// segment's callback and maintain its phases.
type Quantizer interface {
	// Started is called when a segment starts, with phase Start or RunningStart.
	Started(seg *Segment)
	// Quantize processes one frame.
	Quantize(seg *Segment, f Frame)
}

// Driver walks a timing curve frame by frame. It is not safe for concurrent
// use; see Animator for a serialized driver.
type Driver struct {
	quantizer Quantizer
	seg       Segment
	curve     Curve
	duration  time.Duration
	elapsed   time.Duration
	lastValue float64
	running   bool
}

// NewDriver creates a driver emitting through quantizer q.
func NewDriver(q Quantizer) *Driver {
	if q == nil {
		panic("animator driver needs a quantizer")
	}
	return &Driver{quantizer: q}
}

// IsRunning is true while a segment is animating.
func (d *Driver) IsRunning() bool {
	return d.running
}

// Phase returns the current phase.
func (d *Driver) Phase() Phase {
	return d.seg.Phase
}

// LastPhase returns the phase of the last emitted frame.
func (d *Driver) LastPhase() Phase {
	return d.seg.LastPhase
}

// Curve returns the timing curve of the current or last segment.
func (d *Driver) Curve() Curve {
	return d.curve
}

// ValueLeft is the part of the segment's value not yet animated. It is 0 if
// the driver is not running.
func (d *Driver) ValueLeft() float64 {
	if !d.running {
		return 0
	}
	return d.seg.Interval.Upper - d.lastValue
}

// Start begins a new segment. If a segment is still running, it is replaced
// and the new segment starts with phase RunningStart. The callback must
// match the driver's quantizer.
func (d *Driver) Start(p StartParams, callback any) error {
	if err := p.Validate(); err != nil {
		return err
	}
	phase := PhaseStart
	if d.running {
		phase = PhaseRunningStart
	}
	d.seg = Segment{
		Phase:     phase,
		LastPhase: PhaseNone,
		Interval:  smoothscroll.I(0, p.Value),
		Callback:  callback,
	}
	d.curve = p.Curve
	d.duration = p.Duration
	d.elapsed = 0
	d.lastValue = 0
	d.running = true
	d.quantizer.Started(&d.seg)
	tracer().Debugf("animation %s: value %g over %s", phase, p.Value, p.Duration)
	return nil
}

// Stop ends the current segment without emitting further frames.
func (d *Driver) Stop() {
	d.running = false
	d.seg.Phase = PhaseNone
	d.seg.LastPhase = PhaseNone
}

// Tick advances the animation by timeDelta and emits a frame.
func (d *Driver) Tick(timeDelta time.Duration) {
	if !d.running {
		return
	}
	d.elapsed += timeDelta
	progress := float64(d.elapsed) / float64(d.duration)
	value := d.seg.Interval.Upper
	if progress >= 1 {
		d.seg.Phase = PhaseEnd
		if d.seg.LastPhase == PhaseNone {
			d.seg.Phase = PhaseStartAndEnd
		}
	} else {
		y := smoothscroll.UnitInterval.Clamp(d.curve.At(progress))
		value = smoothscroll.Scale(y, smoothscroll.UnitInterval, d.seg.Interval)
	}
	f := Frame{
		ValueDelta: value - d.lastValue,
		TimeDelta:  timeDelta,
		ValueLeft:  d.seg.Interval.Upper - value,
	}
	d.quantizer.Quantize(&d.seg, f)
	d.lastValue = value
	if d.seg.Phase.IsEnd() {
		d.running = false
	}
}

// === Quantization strategies ===============================================

// A callback of the wrong shape bound to a running segment is a programming
// error, there is no way to continue the animation.

func floatCallback(cb any) FloatCallback {
	switch cb := cb.(type) {
	case FloatCallback:
		return cb
	case func(float64, time.Duration, Phase):
		return cb
	}
	panic(fmt.Sprintf("invalid state: callback is %T, not FloatCallback", cb))
}

func intCallback(cb any) IntCallback {
	switch cb := cb.(type) {
	case IntCallback:
		return cb
	case func(int, time.Duration, Phase):
		return cb
	}
	panic(fmt.Sprintf("invalid state: callback is %T, not IntCallback", cb))
}

// Continuous emits every frame's value delta unchanged to a FloatCallback.
type Continuous struct{}

// Started is a no-op.
func (Continuous) Started(*Segment) {}

// Quantize emits the frame.
func (Continuous) Quantize(seg *Segment, f Frame) {
	callback := floatCallback(seg.Callback)
	callback(f.ValueDelta, f.TimeDelta, seg.Phase)
	seg.Emitted()
}

// Pixelated emits integer value deltas to an IntCallback.
//
// Frames whose delta rounds to zero are skipped. The first emitted delta
// carries the segment's start phase; the last non-zero delta, i.e. the one
// after which the value left would not produce another integer delta, is
// promoted to End (or StartAndEnd if it is the only one).
type Pixelated struct {
	sub     *Subpixelator
	emitted int // sum of integer deltas emitted in the current segment
}

// NewPixelated creates a pixelated quantizer with a biased subpixelator.
func NewPixelated() *Pixelated {
	return NewPixelatedWith(NewSubpixelator(Biased))
}

// NewPixelatedWith creates a pixelated quantizer with a given subpixelator.
func NewPixelatedWith(sub *Subpixelator) *Pixelated {
	return &Pixelated{sub: sub}
}

// Emitted is the sum of integer deltas emitted in the current segment.
func (px *Pixelated) Emitted() int {
	return px.emitted
}

// Started resets the subpixelator.
func (px *Pixelated) Started(seg *Segment) {
	px.sub.Reset()
	px.emitted = 0
}

// Quantize converts the frame's delta into an integer delta and emits it
// if it is non-zero.
func (px *Pixelated) Quantize(seg *Segment, f Frame) {
	callback := intCallback(seg.Callback)
	delta := px.sub.IntDelta(f.ValueDelta)
	if delta == 0 {
		if seg.Phase.IsEnd() {
			// the end must have been predicted on an earlier frame
			tracer().Errorf("integer delta is 0 on final frame of animation, phase %s", seg.Phase)
			delta = seg.Direction()
			px.emitted += delta
			callback(delta, f.TimeDelta, seg.Phase)
			seg.Emitted()
			return
		}
		tracer().Debugf("skipped frame with 0 delta, phase %s", seg.Phase)
		return
	}
	if px.sub.PeekIntDelta(f.ValueLeft) == 0 {
		seg.Phase = PhaseEnd
	}
	if seg.Phase == PhaseEnd && seg.LastPhase == PhaseNone {
		seg.Phase = PhaseStartAndEnd
	}
	px.emitted += delta
	tracer().Debugf("emit %d, phase %s, value left %g", delta, seg.Phase, f.ValueLeft)
	callback(delta, f.TimeDelta, seg.Phase)
	seg.Emitted()
}
