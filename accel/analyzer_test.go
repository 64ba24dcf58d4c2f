package accel

import (
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func testAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		TickIntervalMax:           160 * time.Millisecond,
		TickIntervalMin:           15 * time.Millisecond,
		SwipeThresholdTicks:       2,
		SwipeMaxTicks:             11,
		SwipeMaxInterval:          600 * time.Millisecond,
		SwipeMinTickSpeed:         12,
		SmoothingWeight:           1,
		FastScrollThresholdSwipes: 3,
		FastScrollFactor:          1,
		FastScrollExponentialBase: 1.1,
		FastScrollSpeedup:         7,
	}
}

// swipe feeds n ticks spaced by gap, starting at t0, and returns the last
// analysis and the time of the last tick.
func swipe(an *Analyzer, t0 time.Time, n int, gap time.Duration) (Analysis, time.Time) {
	var a Analysis
	now := t0
	for i := 0; i < n; i++ {
		if i > 0 {
			now = now.Add(gap)
		}
		a = an.Tick(now)
	}
	return a, now
}

func TestAnalyzerFirstTick(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	an := NewAnalyzer(testAnalyzerConfig())
	a := an.Tick(time.Now())
	assert.True(t, a.IsFirstConsecutive())
	assert.Equal(t, 0, a.ConsecutiveSwipes)
	assert.InDelta(t, 6.25, a.TickRate, 1e-9)
	assert.Equal(t, 1.0, a.FastScrollMultiplier)
}

func TestAnalyzerConsecutiveTicks(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	an := NewAnalyzer(testAnalyzerConfig())
	t0 := time.Now()
	a, last := swipe(an, t0, 4, 50*time.Millisecond)
	assert.Equal(t, 4, a.ConsecutiveTicks)
	assert.Equal(t, 1, a.ConsecutiveSwipes)
	assert.InDelta(t, 20.0, a.TickRate, 1e-9)
	// too fast: interval gets capped
	a = an.Tick(last.Add(time.Millisecond))
	assert.Equal(t, 15*time.Millisecond, a.Interval)
	assert.InDelta(t, 1/0.015, a.TickRate, 1e-9)
	// too slow: new run
	a = an.Tick(last.Add(400 * time.Millisecond))
	assert.True(t, a.IsFirstConsecutive())
	assert.Equal(t, 1, a.ConsecutiveSwipes, "swipe series continues within 600ms")
	a = an.Tick(last.Add(2 * time.Second))
	assert.Equal(t, 0, a.ConsecutiveSwipes, "swipe series broken")
}

func TestAnalyzerSlowRunIsNoSwipe(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	an := NewAnalyzer(testAnalyzerConfig())
	a, _ := swipe(an, time.Now(), 3, 150*time.Millisecond) // 6.7 ticks/s < 12
	assert.Equal(t, 3, a.ConsecutiveTicks)
	assert.Equal(t, 0, a.ConsecutiveSwipes)
}

func TestAnalyzerFastScroll(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	an := NewAnalyzer(testAnalyzerConfig())
	now := time.Now()
	var a Analysis
	for i := 0; i < 5; i++ {
		a, now = swipe(an, now, 3, 30*time.Millisecond)
		now = now.Add(300 * time.Millisecond)
	}
	assert.Equal(t, 5, a.ConsecutiveSwipes)
	// n = 5 − 3 = 2: 1 + 7·(1.1² − 1)
	assert.InDelta(t, 1+7*(1.21-1), a.FastScrollMultiplier, 1e-9)
	an.Reset()
	a = an.Tick(now)
	assert.Equal(t, 0, a.ConsecutiveSwipes)
}

func TestAnalyzerFreeSpinningWheel(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	an := NewAnalyzer(testAnalyzerConfig())
	a, _ := swipe(an, time.Now(), 22, 20*time.Millisecond)
	// one swipe at tick 2, one more at ticks 11 and 22
	assert.Equal(t, 3, a.ConsecutiveSwipes)
}

func TestPixelsForTick(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := MustNew(standardParams())
	px := c.PixelsForTick(Analysis{TickRate: 1, FastScrollMultiplier: 2})
	assert.Equal(t, 120.0, px)
}
