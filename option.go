package bluetooth

import "time"

// ManagerOption is an interface which the manager implements to allow using
// configuration options.
type ManagerOption interface {
	SetLogger(Logger) error
	SetMatchCache(MatchCache) error
	SetMatchCacheSize(int) error
	SetUnavailableTrackInterval(time.Duration) error
}

// An Option is a configuration function, which configures the manager.
type Option func(ManagerOption) error

// OptLogger routes manager logging through l instead of the package logger.
func OptLogger(l Logger) Option {
	return func(opt ManagerOption) error {
		return opt.SetLogger(l)
	}
}

// OptMatchCache replaces the default match cache.
func OptMatchCache(c MatchCache) Option {
	return func(opt ManagerOption) error {
		return opt.SetMatchCache(c)
	}
}

// OptMatchCacheSize sets the capacity of the default match cache.
func OptMatchCacheSize(size int) Option {
	return func(opt ManagerOption) error {
		return opt.SetMatchCacheSize(size)
	}
}

// OptUnavailableTrackInterval overrides how often tracked addresses are
// checked for loss.
func OptUnavailableTrackInterval(d time.Duration) Option {
	return func(opt ManagerOption) error {
		return opt.SetUnavailableTrackInterval(d)
	}
}
