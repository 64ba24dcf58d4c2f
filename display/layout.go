// Package display locates the display under the pointer in a desktop made
// of several displays.
//
// Displays are axis-aligned rectangles in a global pixel coordinate system,
// with y growing downwards. A Layout serves as a DisplayLocator for
// scroll configuration, which needs the pixel size of the display the user
// is scrolling on.
//
// BSD License
//
// Copyright (c) Norbert Pillmayer
//
// All rights reserved.
//
// Please refer to the license file for more information.
package display

import (
	"errors"
	"fmt"
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/smoothscroll"
	"github.com/npillmayer/smoothscroll/scrollconfig"
)

// tracer writes to trace with key 'scroll.display'
func tracer() tracing.Trace {
	return tracing.Select("scroll.display")
}

var (
	// ErrNoDisplays is returned for an empty layout.
	ErrNoDisplays = errors.New("layout has no displays")
	// ErrInvalidDisplay is returned for displays without pixels.
	ErrInvalidDisplay = errors.New("display must have positive size")
	// ErrOverlappingDisplays is returned if displays share pixels.
	ErrOverlappingDisplays = errors.New("displays overlap")
)

// Display is a rectangular display at a position of the desktop.
type Display struct {
	ID     uint32
	Origin smoothscroll.Pair // top left corner
	Width  int               // pixels
	Height int               // pixels
	Main   bool
}

// Size returns the pixel size of the display.
func (d Display) Size() scrollconfig.DisplaySize {
	return scrollconfig.DisplaySize{Width: d.Width, Height: d.Height}
}

func (d Display) String() string {
	return fmt.Sprintf("display #%d %dx%d at %s", d.ID, d.Width, d.Height, d.Origin)
}

func (d Display) contour() polyclip.Contour {
	x0, y0 := d.Origin.F()
	x1, y1 := x0+float64(d.Width), y0+float64(d.Height)
	return polyclip.Contour{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// Layout is an arrangement of displays.
type Layout struct {
	displays []Display
	desktop  polyclip.Polygon // one contour per display, same order
	main     int
}

// NewLayout arranges displays. The main display is the one flagged as
// main, or the first one.
func NewLayout(displays ...Display) (*Layout, error) {
	if len(displays) == 0 {
		return nil, ErrNoDisplays
	}
	l := &Layout{}
	for _, d := range displays {
		if d.Width <= 0 || d.Height <= 0 || !d.Origin.IsFinite() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDisplay, d)
		}
		c := d.contour()
		for i, other := range l.desktop {
			if overlaps(c.BoundingBox(), other.BoundingBox()) {
				return nil, fmt.Errorf("%w: %s and %s", ErrOverlappingDisplays, d, l.displays[i])
			}
		}
		if d.Main {
			l.main = len(l.displays)
		}
		l.displays = append(l.displays, d)
		l.desktop.Add(c)
	}
	tracer().Debugf("display layout of %d displays, main is %s", len(l.displays), l.displays[l.main])
	return l, nil
}

// overlaps is true if two rectangles share an area. Touching edges do not
// overlap.
func overlaps(a, b polyclip.Rectangle) bool {
	return a.Min.X < b.Max.X && b.Min.X < a.Max.X && a.Min.Y < b.Max.Y && b.Min.Y < a.Max.Y
}

// Displays returns the displays of the layout.
func (l *Layout) Displays() []Display {
	d := make([]Display, len(l.displays))
	copy(d, l.displays)
	return d
}

// Main returns the main display.
func (l *Layout) Main() Display {
	return l.displays[l.main]
}

// DisplayAt returns the display containing the pixel at pointer.
func (l *Layout) DisplayAt(pointer smoothscroll.Pair) (Display, bool) {
	// test the pixel's center, display edges lie on pixel boundaries
	x, y := pointer.F()
	center := polyclip.Point{X: math.Floor(x) + 0.5, Y: math.Floor(y) + 0.5}
	for i, c := range l.desktop {
		if c.Contains(center) {
			return l.displays[i], true
		}
	}
	return Display{}, false
}

// DisplaySizeAt returns the size of the display under the pointer. A pointer
// outside of all displays, e.g. during a display reconfiguration, falls back
// to the main display.
func (l *Layout) DisplaySizeAt(pointer smoothscroll.Pair) scrollconfig.DisplaySize {
	d, ok := l.DisplayAt(pointer)
	if !ok {
		tracer().Debugf("no display at %s, using main display", pointer)
		d = l.Main()
	}
	return d.Size()
}

// Bounds returns the top left and bottom right corners of the smallest
// rectangle enclosing all displays.
func (l *Layout) Bounds() (smoothscroll.Pair, smoothscroll.Pair) {
	r := l.desktop.BoundingBox()
	return smoothscroll.P(r.Min.X, r.Min.Y), smoothscroll.P(r.Max.X, r.Max.Y)
}
