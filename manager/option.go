package manager

import (
	"time"

	"github.com/pkg/errors"

	"github.com/rigado/bluetooth"
)

// SetLogger routes manager logging through l.
func (m *Manager) SetLogger(l bluetooth.Logger) error {
	if l == nil {
		return errors.New("nil logger")
	}
	m.logger = l
	return nil
}

// SetMatchCache replaces the default match cache.
func (m *Manager) SetMatchCache(c bluetooth.MatchCache) error {
	if c == nil {
		return errors.New("nil match cache")
	}
	m.matched = c
	return nil
}

// SetMatchCacheSize sets the capacity used when building the default match
// cache. It has no effect when a cache is injected.
func (m *Manager) SetMatchCacheSize(size int) error {
	if size <= 0 {
		return errors.New("match cache size must be positive")
	}
	m.matchCacheSize = size
	return nil
}

// SetUnavailableTrackInterval overrides the availability sweep interval.
func (m *Manager) SetUnavailableTrackInterval(d time.Duration) error {
	if d <= 0 {
		return errors.New("unavailable track interval must be positive")
	}
	m.trackInterval = d
	return nil
}
