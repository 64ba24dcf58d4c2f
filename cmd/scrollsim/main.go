// Command scrollsim simulates smooth scrolling for a sequence of scroll
// wheel ticks and prints the pixel deltas an animator emits.
//
// Usage:
//
//	scrollsim -ticks 12 -interval 40ms
//	scrollsim -settings scroll.yaml -input quick -display 2560x1440
//	scrollsim -app mousefix -effect zoom -axis horizontal -v
//
// Settings are read from a YAML file, from the application's settings
// store, or default to the settings of a fresh installation.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/smoothscroll"
	"github.com/npillmayer/smoothscroll/accel"
	"github.com/npillmayer/smoothscroll/animator"
	"github.com/npillmayer/smoothscroll/display"
	"github.com/npillmayer/smoothscroll/scrollconfig"
)

var inputModifications = map[string]scrollconfig.InputModification{
	"none":    scrollconfig.InputNone,
	"quick":   scrollconfig.InputQuick,
	"precise": scrollconfig.InputPrecise,
}

var effectModifications = map[string]scrollconfig.EffectModification{
	"none":       scrollconfig.EffectNone,
	"horizontal": scrollconfig.EffectHorizontalScroll,
	"zoom":       scrollconfig.EffectZoom,
	"rotate":     scrollconfig.EffectRotate,
	"appswitch":  scrollconfig.EffectAppSwitch,
	"swipe":      scrollconfig.EffectThreeFingerSwipe,
	"pinch":      scrollconfig.EffectFourFingerPinch,
	"feedback":   scrollconfig.EffectAddModeFeedback,
}

var axes = map[string]smoothscroll.Axis{
	"horizontal": smoothscroll.Horizontal,
	"vertical":   smoothscroll.Vertical,
}

var tracers = []string{"scroll.accel", "scroll.animator", "scroll.config", "scroll.display"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	settingsFile string
	appName      string
	mods         scrollconfig.Modifications
	axis         smoothscroll.Axis
	display      scrollconfig.DisplaySize
	ticks        int
	interval     time.Duration
	frame        time.Duration
}

func parseOptions() (options, error) {
	var opts options
	flag.StringVar(&opts.settingsFile, "settings", "", "YAML file with scroll settings")
	flag.StringVar(&opts.appName, "app", "", "load settings from the store of this application")
	input := flag.String("input", "none", "input modification: none, quick, precise")
	effect := flag.String("effect", "none", "effect modification: none, horizontal, zoom, rotate, appswitch, swipe, pinch, feedback")
	axis := flag.String("axis", "vertical", "scroll axis: vertical, horizontal")
	size := flag.String("display", "1920x1080", "display size in pixels, WIDTHxHEIGHT")
	flag.IntVar(&opts.ticks, "ticks", 8, "number of scroll wheel ticks")
	flag.DurationVar(&opts.interval, "interval", 50*time.Millisecond, "time between scroll wheel ticks")
	flag.DurationVar(&opts.frame, "frame", time.Second/60, "time between display frames")
	verbose := flag.Bool("v", false, "trace scroll internals")
	flag.Parse()

	var ok bool
	if opts.mods.Input, ok = inputModifications[*input]; !ok {
		return opts, fmt.Errorf("unknown input modification %q", *input)
	}
	if opts.mods.Effect, ok = effectModifications[*effect]; !ok {
		return opts, fmt.Errorf("unknown effect modification %q", *effect)
	}
	if opts.axis, ok = axes[*axis]; !ok {
		return opts, fmt.Errorf("unknown axis %q", *axis)
	}
	if _, err := fmt.Sscanf(*size, "%dx%d", &opts.display.Width, &opts.display.Height); err != nil {
		return opts, fmt.Errorf("invalid display size %q: %w", *size, err)
	}
	if opts.ticks < 1 || opts.interval <= 0 || opts.frame <= 0 {
		return opts, errors.New("ticks, interval and frame must be positive")
	}
	level := tracing.LevelError
	if *verbose {
		level = tracing.LevelDebug
	}
	for _, key := range tracers {
		tracing.Select(key).SetTraceLevel(level)
	}
	return opts, nil
}

func loadSettings(opts options) (scrollconfig.Settings, error) {
	switch {
	case opts.settingsFile != "":
		data, err := os.ReadFile(opts.settingsFile)
		if err != nil {
			return scrollconfig.Settings{}, fmt.Errorf("failed to read settings: %w", err)
		}
		return scrollconfig.ParseSettings(data)
	case opts.appName != "":
		store, err := scrollconfig.OpenStore(opts.appName)
		if err != nil {
			return scrollconfig.Settings{}, err
		}
		return store.Load()
	}
	return scrollconfig.DefaultSettings(), nil
}

func run() error {
	opts, err := parseOptions()
	if err != nil {
		return err
	}
	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}
	layout, err := display.NewLayout(display.Display{
		ID: 1, Width: opts.display.Width, Height: opts.display.Height, Main: true,
	})
	if err != nil {
		return err
	}
	resolver, err := scrollconfig.NewResolver(settings, layout)
	if err != nil {
		return err
	}
	cfg, err := resolver.Resolve(opts.mods, opts.axis, smoothscroll.Origin)
	if err != nil {
		return err
	}
	fmt.Printf("preset %s, %s\n", cfg.Preset, cfg.AccelerationCurve)
	if cfg.UseSystemAcceleration {
		fmt.Println("speed is left to the system, simulating with the standard curve")
	}
	return simulate(opts, cfg)
}

// simulateUnsmoothed sends each tick's distance at once, without animation.
// Fractional pixels are carried over to the next tick.
func simulateUnsmoothed(w io.Writer, opts options, cfg *scrollconfig.Config) []int {
	analyzer := accel.NewAnalyzer(cfg.AnalyzerConfig())
	sub := animator.NewSubpixelator(animator.Round)
	deltas := make([]int, 0, opts.ticks)
	total := 0
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < opts.ticks; i++ {
		a := analyzer.Tick(clock)
		px := cfg.AccelerationCurve.PixelsForTick(a) * float64(cfg.InvertDirection)
		delta := sub.IntDelta(px)
		deltas = append(deltas, delta)
		total += delta
		fmt.Fprintf(w, "tick %d: %.1f ticks/s, swipes %d, ×%.2f → %+4d px  total %d\n",
			i+1, a.TickRate, a.ConsecutiveSwipes, a.FastScrollMultiplier, delta, total)
		clock = clock.Add(opts.interval)
	}
	fmt.Fprintf(w, "scrolled %d px\n", total)
	return deltas
}

func simulate(opts options, cfg *scrollconfig.Config) error {
	if !cfg.SmoothEnabled {
		fmt.Println("smooth scrolling is off")
		simulateUnsmoothed(os.Stdout, opts, cfg)
		return nil
	}
	analyzer := accel.NewAnalyzer(cfg.AnalyzerConfig())
	anim := animator.NewPixelatedAnimator()
	defer anim.Close()
	total := 0
	emit := func(delta int, dt time.Duration, phase animator.Phase) {
		total += delta
		fmt.Printf("    %+4d px  after %6.2f ms  %-12s  total %d\n",
			delta, float64(dt)/float64(time.Millisecond), phase, total)
	}
	var startErr error
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < opts.ticks; i++ {
		a := analyzer.Tick(clock)
		px := cfg.AccelerationCurve.PixelsForTick(a) * float64(cfg.InvertDirection)
		fmt.Printf("tick %d: %.1f ticks/s, swipes %d, ×%.2f → %.1f px\n",
			i+1, a.TickRate, a.ConsecutiveSwipes, a.FastScrollMultiplier, px)
		err := anim.StartPixelated(func(s animator.State) (animator.StartParams, bool) {
			distance := s.ValueLeft + px
			if distance == 0 {
				return animator.StartParams{}, false
			}
			p, err := cfg.Animation.Animation(distance)
			if err != nil {
				startErr = err
				return p, false
			}
			return p, true
		}, emit)
		if err != nil {
			return err
		}
		if startErr != nil {
			return startErr
		}
		next := clock.Add(opts.interval)
		for i < opts.ticks-1 && clock.Add(opts.frame).Before(next) {
			anim.Tick(opts.frame)
			clock = clock.Add(opts.frame)
		}
		if i < opts.ticks-1 {
			anim.Tick(next.Sub(clock))
		}
		clock = next
	}
	// let the animation run out on a simulated display link
	frames := make(chan time.Time)
	go func() {
		defer close(frames)
		t := clock
		for anim.IsRunning() {
			frames <- t
			t = t.Add(opts.frame)
		}
	}()
	if err := anim.Drive(context.Background(), frames); err != nil {
		return err
	}
	fmt.Printf("scrolled %d px\n", total)
	return nil
}
