package manager

import (
	"runtime/debug"

	"github.com/rigado/bluetooth"
)

// callbackEntry pairs a subscription callback with its filter. Entries are
// compared by pointer, so registering the same function twice yields two
// independently removable registrations.
type callbackEntry struct {
	callback bluetooth.Callback
	matcher  *bluetooth.Matcher
}

// RegisterCallback subscribes cb to matching advertisements and returns a
// removal handle. The matcher is copied before compilation, so later caller
// mutations have no effect. If the matcher names an address already in
// history, the last advertisement is replayed synchronously before
// RegisterCallback returns; replay ignores the other matcher fields.
func (m *Manager) RegisterCallback(cb bluetooth.Callback, matcher *bluetooth.Matcher) func() {
	if cb == nil {
		m.logger.Warn("ignoring nil discovery callback registration")
		return func() {}
	}

	if matcher != nil {
		mc := *matcher
		mc.ManufacturerDataStart = append([]byte(nil), matcher.ManufacturerDataStart...)
		matcher = &mc
		if err := matcher.Compile(); err != nil {
			// Registered anyway: the broken field just never matches.
			m.logger.Warnf("discovery callback registered with bad matcher: %s", err)
		}
	}

	e := &callbackEntry{callback: cb, matcher: matcher}

	var replay *observation
	m.mu.Lock()
	m.callbacks = append(m.callbacks, e)
	if matcher != nil && matcher.Address != "" {
		replay = m.history[matcher.Address]
	}
	m.mu.Unlock()

	if replay != nil {
		m.invokeCallback(e, bluetooth.NewServiceInfo(replay.dev, replay.adv, bluetooth.SourceLocal))
	}

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, cur := range m.callbacks {
			if cur == e {
				m.callbacks = append(m.callbacks[:i], m.callbacks[i+1:]...)
				return
			}
		}
	}
}

// invokeCallback delivers one event behind a recover boundary so a panicking
// subscriber cannot take down the intake path or its neighbors.
func (m *Manager) invokeCallback(e *callbackEntry, info *bluetooth.ServiceInfo) {
	defer func() {
		if x := recover(); x != nil {
			m.logger.Errorf("run time panic in discovery callback for %s: %v", info.Address, x)
			m.logger.Error(string(debug.Stack()))
		}
	}()
	e.callback(info, bluetooth.ChangeAdvertisement)
}
