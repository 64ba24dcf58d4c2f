package animator

import (
	"context"
	"sync"
	"time"
)

// State is what a StartCalculation gets to see of the animator when a new
// segment is requested.
type State struct {
	ValueLeft float64 // value left of a running segment, 0 if not running
	Running   bool
	Curve     Curve // curve of the running or last segment, may be nil
}

// StartCalculation computes the parameters of a new segment from the
// animator's state. Returning false for doStart leaves the animator untouched.
type StartCalculation func(s State) (p StartParams, doStart bool)

// Animator serializes all operations on a Driver onto a single goroutine.
// Operations block until they have been executed. Callbacks are invoked on
// the animator's goroutine; they must not call back into the animator.
type Animator struct {
	driver *Driver
	queue  chan func()
	done   chan struct{}
	once   sync.Once
}

// New creates an animator for a quantizer and starts its goroutine.
// Call Close to stop it.
func New(q Quantizer) *Animator {
	a := &Animator{
		driver: NewDriver(q),
		queue:  make(chan func()),
		done:   make(chan struct{}),
	}
	go a.loop()
	return a
}

// NewPixelatedAnimator creates an animator emitting integer deltas.
func NewPixelatedAnimator() *Animator {
	return New(NewPixelated())
}

func (a *Animator) loop() {
	for {
		select {
		case job := <-a.queue:
			job()
		case <-a.done:
			return
		}
	}
}

// do executes job on the animator's goroutine and waits for it. It returns
// false if the animator has been closed.
func (a *Animator) do(job func()) bool {
	select {
	case <-a.done:
		return false
	default:
	}
	finished := make(chan struct{})
	select {
	case a.queue <- func() { job(); close(finished) }:
	case <-a.done:
		return false
	}
	select {
	case <-finished:
		return true
	case <-a.done:
		return false
	}
}

// Close stops the animator's goroutine. Subsequent operations are no-ops.
func (a *Animator) Close() {
	a.once.Do(func() { close(a.done) })
}

// Start starts a new segment with parameters computed by calc. The
// computation sees a consistent state: no frame is processed between
// calculating and applying the parameters.
func (a *Animator) Start(calc StartCalculation, callback any) error {
	var err error
	a.do(func() {
		s := State{
			ValueLeft: a.driver.ValueLeft(),
			Running:   a.driver.IsRunning(),
			Curve:     a.driver.Curve(),
		}
		p, doStart := calc(s)
		if !doStart {
			return
		}
		err = a.driver.Start(p, callback)
	})
	return err
}

// StartPixelated is Start for animators emitting integer deltas.
func (a *Animator) StartPixelated(calc StartCalculation, callback IntCallback) error {
	return a.Start(calc, callback)
}

// StartContinuous is Start for animators emitting continuous deltas.
func (a *Animator) StartContinuous(calc StartCalculation, callback FloatCallback) error {
	return a.Start(calc, callback)
}

// Tick advances a running animation by timeDelta.
func (a *Animator) Tick(timeDelta time.Duration) {
	a.do(func() { a.driver.Tick(timeDelta) })
}

// Stop ends a running animation without emitting further frames.
func (a *Animator) Stop() {
	a.do(a.driver.Stop)
}

// IsRunning is true while a segment is animating.
func (a *Animator) IsRunning() bool {
	var running bool
	a.do(func() { running = a.driver.IsRunning() })
	return running
}

// Phase returns the current phase of the driver.
func (a *Animator) Phase() Phase {
	var phase Phase
	a.do(func() { phase = a.driver.Phase() })
	return phase
}

// Drive ticks the animator for every timestamp received from frames, e.g.
// from a time.Ticker or a display link, until ctx is done, frames is closed
// or the animator is closed. The first timestamp only sets the reference time.
func (a *Animator) Drive(ctx context.Context, frames <-chan time.Time) error {
	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.done:
			return nil
		case now, ok := <-frames:
			if !ok {
				return nil
			}
			if !last.IsZero() {
				a.Tick(now.Sub(last))
			}
			last = now
		}
	}
}
