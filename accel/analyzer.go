package accel

import (
	"math"
	"time"
)

// AnalyzerConfig holds the tunables for tick analysis.
type AnalyzerConfig struct {
	TickIntervalMax     time.Duration // ticks further apart are not consecutive
	TickIntervalMin     time.Duration // observed intervals are capped to this
	SwipeThresholdTicks int           // consecutive ticks forming a swipe
	SwipeMaxTicks       int           // ticks per swipe for free-spinning wheels
	SwipeMaxInterval    time.Duration // swipes further apart are not consecutive
	SwipeMinTickSpeed   float64       // ticks/s a run needs to count as a swipe
	SmoothingWeight     float64       // weight of a new tick rate sample, 1 disables smoothing

	FastScrollThresholdSwipes int     // fast scroll kicks in at this swipe count
	FastScrollFactor          float64 // multiplier when fast scroll kicks in
	FastScrollExponentialBase float64 // growth per further swipe, > 1 for speedup
	FastScrollSpeedup         float64 // > 0 for speedup
}

// Analysis describes a scroll tick within its run of consecutive ticks.
type Analysis struct {
	ConsecutiveTicks     int           // ticks in the current run, including this one
	ConsecutiveSwipes    int           // swipes in the current series
	Interval             time.Duration // time since previous tick, capped; 0 for a first tick
	TickRate             float64       // smoothed ticks per second
	FastScrollMultiplier float64       // ≥ 1 when fast scrolling
}

// IsFirstConsecutive is true if the tick starts a new run of ticks.
func (a Analysis) IsFirstConsecutive() bool {
	return a.ConsecutiveTicks == 1
}

// Analyzer classifies scroll ticks into runs and swipes and measures the
// tick rate. It is not safe for concurrent use.
type Analyzer struct {
	cfg          AnalyzerConfig
	lastTick     time.Time
	ticks        int
	swipes       int
	swipeCounted bool
	rate         float64
}

// NewAnalyzer creates an analyzer for a configuration.
func NewAnalyzer(cfg AnalyzerConfig) *Analyzer {
	if cfg.SmoothingWeight <= 0 || cfg.SmoothingWeight > 1 {
		cfg.SmoothingWeight = 1
	}
	return &Analyzer{cfg: cfg}
}

// Reset forgets all previous ticks.
func (an *Analyzer) Reset() {
	an.lastTick = time.Time{}
	an.ticks, an.swipes = 0, 0
	an.swipeCounted = false
	an.rate = 0
}

// Tick registers a scroll tick occurring at time now.
func (an *Analyzer) Tick(now time.Time) Analysis {
	var interval time.Duration
	first := an.lastTick.IsZero()
	if !first {
		interval = now.Sub(an.lastTick)
	}
	an.lastTick = now
	slowest := 1 / an.cfg.TickIntervalMax.Seconds()
	if first || interval > an.cfg.TickIntervalMax {
		if first || interval > an.cfg.SwipeMaxInterval {
			an.swipes = 0
		}
		an.ticks = 1
		an.swipeCounted = false
		an.rate = slowest
		tracer().Debugf("tick starts new run, swipes=%d", an.swipes)
		return Analysis{
			ConsecutiveTicks:     1,
			ConsecutiveSwipes:    an.swipes,
			TickRate:             an.rate,
			FastScrollMultiplier: an.fastScrollMultiplier(),
		}
	}
	if interval < an.cfg.TickIntervalMin {
		interval = an.cfg.TickIntervalMin
	}
	an.ticks++
	raw := 1 / interval.Seconds()
	if an.ticks == 2 {
		an.rate = raw
	} else {
		w := an.cfg.SmoothingWeight
		an.rate = w*raw + (1-w)*an.rate
	}
	switch {
	case !an.swipeCounted && an.ticks >= an.cfg.SwipeThresholdTicks:
		if an.rate >= an.cfg.SwipeMinTickSpeed {
			an.swipes++
			an.swipeCounted = true
		}
	case an.swipeCounted && an.cfg.SwipeMaxTicks > 0 && an.ticks%an.cfg.SwipeMaxTicks == 0:
		an.swipes++ // free-spinning wheel
	}
	return Analysis{
		ConsecutiveTicks:     an.ticks,
		ConsecutiveSwipes:    an.swipes,
		Interval:             interval,
		TickRate:             an.rate,
		FastScrollMultiplier: an.fastScrollMultiplier(),
	}
}

// fastScrollMultiplier is 1 below the swipe threshold. From there on it
// starts at FastScrollFactor and grows exponentially with each further swipe:
//
//	factor · (1 + speedup · (base^n − 1)),   n = swipes − threshold
func (an *Analyzer) fastScrollMultiplier() float64 {
	n := an.swipes - an.cfg.FastScrollThresholdSwipes
	if an.cfg.FastScrollThresholdSwipes <= 0 || n < 0 {
		return 1
	}
	growth := math.Pow(an.cfg.FastScrollExponentialBase, float64(n)) - 1
	m := an.cfg.FastScrollFactor * (1 + an.cfg.FastScrollSpeedup*growth)
	return math.Max(1, m)
}
