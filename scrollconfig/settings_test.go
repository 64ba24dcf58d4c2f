package scrollconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettings(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := ParseSettings([]byte(`
speed: high
smoothness: low
reverseDirection: true
modifiers:
  zoom: 1048576
`))
	require.NoError(t, err)
	assert.Equal(t, SpeedHigh, s.Speed)
	assert.Equal(t, SmoothnessLow, s.Smoothness)
	assert.True(t, s.Smooth, "missing keys keep their defaults")
	assert.True(t, s.ReverseDirection)
	assert.Equal(t, uint64(1<<20), s.Modifiers.Zoom)
	assert.Equal(t, uint64(0), s.Modifiers.Horizontal)

	_, err = ParseSettings([]byte("speed: warp"))
	assert.ErrorIs(t, err, ErrInvalidSetting)
	_, err = ParseSettings([]byte("smoothness: [1, 2]"))
	assert.Error(t, err)
}

func TestSettingsRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.Precise = true
	s.Modifiers.Horizontal = 1 << 17
	data, err := s.Marshal()
	require.NoError(t, err)
	s2, err := ParseSettings(data)
	require.NoError(t, err)
	assert.True(t, s == s2)
}

func TestSettingsLookup(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := DefaultSettings()
	s.Modifiers.Zoom = 1 << 20
	v, ok := s.Lookup("speed")
	require.True(t, ok)
	assert.Equal(t, "medium", v)
	v, ok = s.Lookup("modifiers.zoom")
	require.True(t, ok)
	assert.Equal(t, 1<<20, v)
	v, ok = s.Lookup("smooth")
	require.True(t, ok)
	assert.Equal(t, true, v)
	_, ok = s.Lookup("modifiers.pan")
	assert.False(t, ok)
	_, ok = s.Lookup("speed.value")
	assert.False(t, ok)
}

func TestStoreDegradedMode(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	st := NewStore(nil)
	s, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
	s.Speed = SpeedLow
	require.NoError(t, st.Save(s))
	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, SpeedLow, loaded.Speed)
	s.Smoothness = "sticky"
	assert.ErrorIs(t, st.Save(s), ErrInvalidSetting)
}

func TestStorePersists(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	appName := fmt.Sprintf("smoothscroll_test_%d", time.Now().UnixNano())
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skip("cannot open data directory in this environment")
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	st := NewStore(m)
	s, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
	s.Speed = SpeedSystem
	s.ReverseDirection = true
	require.NoError(t, st.Save(s))
	loaded, err := NewStore(m).Load()
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}
