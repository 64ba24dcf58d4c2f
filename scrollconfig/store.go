package scrollconfig

import (
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	settingsObject   = "scroll"
	settingsProperty = "settings"
)

// Store persists settings in the platform's application data directory.
//
// A store without a data manager runs in degraded mode: settings are kept
// in memory only and Save never fails.
type Store struct {
	mu       sync.Mutex
	manager  *gdata.Manager // may be nil
	settings Settings
}

// OpenStore opens the data directory for an application.
func OpenStore(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open settings store for %q: %w", appName, err)
	}
	return NewStore(m), nil
}

// NewStore creates a store on a data manager. manager may be nil.
func NewStore(manager *gdata.Manager) *Store {
	if manager == nil {
		tracer().Infof("settings store without data manager, settings will not persist")
	}
	return &Store{manager: manager, settings: DefaultSettings()}
}

// Load reads the stored settings. If nothing has been stored yet, Load
// returns the default settings.
func (st *Store) Load() (Settings, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.manager == nil {
		return st.settings, nil
	}
	if !st.manager.ObjectPropExists(settingsObject, settingsProperty) {
		tracer().Debugf("no stored settings, using defaults")
		return DefaultSettings(), nil
	}
	data, err := st.manager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load scroll settings: %w", err)
	}
	s, err := ParseSettings(data)
	if err != nil {
		return Settings{}, err
	}
	st.settings = s
	return s, nil
}

// Save stores settings.
func (st *Store) Save(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.settings = s
	if st.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal scroll settings: %w", err)
	}
	if err := st.manager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save scroll settings: %w", err)
	}
	tracer().Infof("saved scroll settings")
	return nil
}
