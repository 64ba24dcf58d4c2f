package display

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/smoothscroll"
	"github.com/npillmayer/smoothscroll/scrollconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a laptop below and to the left of an external display
func twoDisplays(t *testing.T) *Layout {
	t.Helper()
	l, err := NewLayout(
		Display{ID: 1, Origin: smoothscroll.P(0, 0), Width: 2560, Height: 1440, Main: true},
		Display{ID: 2, Origin: smoothscroll.P(-1440, 1440), Width: 1440, Height: 900},
	)
	require.NoError(t, err)
	return l
}

func TestDisplayAt(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	l := twoDisplays(t)
	d, ok := l.DisplayAt(smoothscroll.P(100, 100))
	require.True(t, ok)
	assert.Equal(t, uint32(1), d.ID)
	d, ok = l.DisplayAt(smoothscroll.P(-1, 1440))
	require.True(t, ok)
	assert.Equal(t, uint32(2), d.ID)
	// pixels on the edges belong to the display they start in
	d, ok = l.DisplayAt(smoothscroll.P(0, 0))
	require.True(t, ok)
	assert.Equal(t, uint32(1), d.ID)
	d, ok = l.DisplayAt(smoothscroll.P(2559.7, 1439.2))
	require.True(t, ok)
	assert.Equal(t, uint32(1), d.ID)
	_, ok = l.DisplayAt(smoothscroll.P(2560, 10))
	assert.False(t, ok)
	_, ok = l.DisplayAt(smoothscroll.P(10, 1440))
	assert.False(t, ok)
}

func TestDisplaySizeFallsBackToMain(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	l := twoDisplays(t)
	assert.Equal(t, scrollconfig.DisplaySize{Width: 1440, Height: 900}, l.DisplaySizeAt(smoothscroll.P(-700, 2000)))
	assert.Equal(t, scrollconfig.DisplaySize{Width: 2560, Height: 1440}, l.DisplaySizeAt(smoothscroll.P(5000, 5000)))
	assert.Equal(t, uint32(1), l.Main().ID)
	assert.Len(t, l.Displays(), 2)
}

func TestBounds(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	topLeft, bottomRight := twoDisplays(t).Bounds()
	assert.Equal(t, smoothscroll.P(-1440, 0), topLeft)
	assert.Equal(t, smoothscroll.P(2560, 2340), bottomRight)
}

func TestInvalidLayouts(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewLayout()
	assert.ErrorIs(t, err, ErrNoDisplays)
	_, err = NewLayout(Display{Width: 0, Height: 100})
	assert.ErrorIs(t, err, ErrInvalidDisplay)
	_, err = NewLayout(
		Display{ID: 1, Width: 1920, Height: 1080},
		Display{ID: 2, Origin: smoothscroll.P(1900, 0), Width: 1920, Height: 1080},
	)
	assert.ErrorIs(t, err, ErrOverlappingDisplays)
	// touching displays are fine
	l, err := NewLayout(
		Display{ID: 1, Width: 1920, Height: 1080},
		Display{ID: 2, Origin: smoothscroll.P(1920, 0), Width: 1920, Height: 1080},
	)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), l.Main().ID)
}

func TestLayoutResolvesScrollConfig(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r, err := scrollconfig.NewResolver(scrollconfig.DefaultSettings(), twoDisplays(t))
	require.NoError(t, err)
	c, err := r.Resolve(scrollconfig.Modifications{}, smoothscroll.Vertical, smoothscroll.P(-700, 2000))
	require.NoError(t, err)
	// 900 pixels high: 140 − 20·(1080/900 − 1)
	assert.Equal(t, 136.0, c.AccelerationCurve.Range().Upper)
}
