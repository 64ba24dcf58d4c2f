package animator

import (
	"context"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimatorSerializesDriver(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := NewPixelatedAnimator()
	defer a.Close()
	rec := &recorder{}
	var seen []State
	calc := func(value float64) StartCalculation {
		return func(s State) (StartParams, bool) {
			seen = append(seen, s)
			return linear(s.ValueLeft+value, 100*time.Millisecond), true
		}
	}
	require.NoError(t, a.StartPixelated(calc(10), rec.callback))
	assert.True(t, a.IsRunning())
	a.Tick(10 * time.Millisecond)
	// a second tick of the wheel adds to what is left of the running segment
	require.NoError(t, a.StartPixelated(calc(10), rec.callback))
	assert.Equal(t, PhaseRunningStart, a.Phase())
	for i := 0; i < 10; i++ {
		a.Tick(10 * time.Millisecond)
	}
	assert.False(t, a.IsRunning())
	require.Len(t, seen, 2)
	assert.False(t, seen[0].Running)
	assert.True(t, seen[1].Running)
	assert.InDelta(t, 9.0, seen[1].ValueLeft, 1e-9)
	assert.Equal(t, 20, rec.sum())
	assert.Equal(t, PhaseRunningStart, rec.emitted[1].phase)
}

func TestAnimatorSkipsStart(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := NewPixelatedAnimator()
	defer a.Close()
	err := a.Start(func(State) (StartParams, bool) {
		return StartParams{}, false
	}, IntCallback(nil))
	assert.NoError(t, err)
	assert.False(t, a.IsRunning())
	err = a.Start(func(State) (StartParams, bool) {
		return StartParams{Value: 3, Curve: linearCurve{}}, true
	}, IntCallback(nil))
	assert.ErrorIs(t, err, ErrInvalidStartParams)
}

func TestAnimatorDrive(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := NewPixelatedAnimator()
	defer a.Close()
	rec := &recorder{}
	require.NoError(t, a.StartPixelated(func(State) (StartParams, bool) {
		return linear(-10, 100*time.Millisecond), true
	}, rec.callback))
	frames := make(chan time.Time, 11)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i <= 10; i++ {
		frames <- t0.Add(time.Duration(i) * 10 * time.Millisecond)
	}
	close(frames)
	assert.NoError(t, a.Drive(context.Background(), frames))
	assert.Equal(t, -10, rec.sum())
	assert.Len(t, rec.emitted, 10)
	assert.False(t, a.IsRunning())
}

func TestAnimatorDriveCancel(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := NewPixelatedAnimator()
	defer a.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, a.Drive(ctx, make(chan time.Time)), context.Canceled)
}

func TestAnimatorClose(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := New(Continuous{})
	a.Close()
	a.Close()
	called := false
	err := a.StartContinuous(func(State) (StartParams, bool) {
		called = true
		return linear(1, time.Second), true
	}, func(float64, time.Duration, Phase) {})
	assert.NoError(t, err)
	assert.False(t, called)
	assert.False(t, a.IsRunning())
	a.Tick(time.Second)
	a.Stop()
	assert.NoError(t, a.Drive(context.Background(), make(chan time.Time)))
}
