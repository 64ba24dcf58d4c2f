package scrollconfig

import (
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/smoothscroll"
)

// DisplayLocator finds the size of the display under the pointer.
type DisplayLocator interface {
	DisplaySizeAt(pointer smoothscroll.Pair) DisplaySize
}

// FixedDisplay is a DisplayLocator for a single display.
type FixedDisplay DisplaySize

// DisplaySizeAt returns the display's size, wherever the pointer is.
func (d FixedDisplay) DisplaySizeAt(smoothscroll.Pair) DisplaySize {
	return DisplaySize(d)
}

// Resolver owns the base configuration and the derived configurations for
// combinations of modifications and axis. It is safe for concurrent use:
// resolving takes a read lock on the cache, reloading and cache misses
// take the write lock.
//
// Derived configurations are cached by modifications and axis only. The
// display under the pointer is consulted on a cache miss, and the result is
// reused for other displays until the next reload.
type Resolver struct {
	mu          sync.RWMutex
	settings    Settings
	base        *Config
	cache       *treemap.Map // cacheKey → *Config
	displays    DisplayLocator
	subscribers []chan *Config
}

// NewResolver creates a resolver for settings. displays may be nil, in
// which case a 1920×1080 display is assumed.
func NewResolver(s Settings, displays DisplayLocator) (*Resolver, error) {
	base, err := buildBase(s)
	if err != nil {
		return nil, err
	}
	if displays == nil {
		displays = FixedDisplay{Width: 1920, Height: referenceScreenSize}
	}
	return &Resolver{
		settings: s,
		base:     base,
		cache:    treemap.NewWithIntComparator(),
		displays: displays,
	}, nil
}

// Settings returns the settings the base configuration is built from.
func (r *Resolver) Settings() Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings
}

// Base returns the base configuration, without any modifications applied.
func (r *Resolver) Base() *Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.base
}

// Reload rebuilds the base configuration from settings and drops all cached
// configurations. Reloading settings equal to the current ones is a no-op.
// It reports whether the configuration changed. Subscribers receive the new
// base configuration.
func (r *Resolver) Reload(s Settings) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s == r.settings {
		tracer().Debugf("scroll settings unchanged, skipping reload")
		return false, nil
	}
	base, err := buildBase(s)
	if err != nil {
		return false, err
	}
	r.settings = s
	r.base = base
	r.cache.Clear()
	tracer().Infof("scroll config reloaded")
	for _, ch := range r.subscribers {
		notify(ch, base)
	}
	return true, nil
}

// notify delivers the latest configuration to a subscriber, replacing an
// undelivered older one.
func notify(ch chan *Config, c *Config) {
	for {
		select {
		case ch <- c:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Subscribe returns a channel receiving the base configuration after every
// effective reload. A slow subscriber only sees the most recent one.
func (r *Resolver) Subscribe() <-chan *Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan *Config, 1)
	r.subscribers = append(r.subscribers, ch)
	return ch
}

// Resolve returns the configuration for a scroll event with modifications
// m, scrolling along axis, with the pointer at a position.
func (r *Resolver) Resolve(m Modifications, axis smoothscroll.Axis, pointer smoothscroll.Pair) (*Config, error) {
	key := cacheKey(m, axis)
	r.mu.RLock()
	c, found := r.cache.Get(key)
	r.mu.RUnlock()
	if found {
		return c.(*Config), nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, found := r.cache.Get(key); found { // resolved concurrently
		return c.(*Config), nil
	}
	tracer().Debugf("resolving scroll config for %s on %s axis", m, axis)
	derived, err := derive(r.base, m, axis, r.displays.DisplaySizeAt(pointer))
	if err != nil {
		return nil, err
	}
	r.cache.Put(key, derived)
	return derived, nil
}

// CacheSize is the number of cached configurations.
func (r *Resolver) CacheSize() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cache.Size()
}
