package manager

import (
	"runtime/debug"
	"time"

	"github.com/rigado/bluetooth"
)

// UnavailableTrackInterval is how often tracked devices are checked for loss
// when no override is configured.
const UnavailableTrackInterval = 5 * time.Minute

type unavailableEntry struct {
	callback bluetooth.UnavailableCallback
}

// TrackUnavailable registers cb to fire when address stops advertising. The
// returned handle removes the registration; the address key is dropped once
// its last registration goes.
func (m *Manager) TrackUnavailable(cb bluetooth.UnavailableCallback, address string) func() {
	if cb == nil {
		m.logger.Warn("ignoring nil unavailable callback registration")
		return func() {}
	}

	address = bluetooth.NewAddr(address).String()
	e := &unavailableEntry{callback: cb}

	m.mu.Lock()
	m.unavailable[address] = append(m.unavailable[address], e)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		entries := m.unavailable[address]
		for i, cur := range entries {
			if cur == e {
				entries = append(entries[:i], entries[i+1:]...)
				break
			}
		}
		if len(entries) == 0 {
			delete(m.unavailable, address)
		} else {
			m.unavailable[address] = entries
		}
	}
}

// checkUnavailable prunes history entries whose devices the scanner no
// longer reports and fires their unavailability callbacks. All pruning
// happens before any callback runs, so callbacks observe a consistent
// history.
func (m *Manager) checkUnavailable() {
	active := make(map[string]struct{})
	for _, d := range m.scanner.DiscoveredDevices() {
		active[d.Address] = struct{}{}
	}

	type departure struct {
		address string
		entries []*unavailableEntry
	}

	var gone []departure
	m.mu.Lock()
	for address := range m.history {
		if _, ok := active[address]; ok {
			continue
		}
		delete(m.history, address)
		m.logger.Debugf("%s is no longer advertising", address)
		entries := m.unavailable[address]
		if len(entries) == 0 {
			continue
		}
		snapshot := make([]*unavailableEntry, len(entries))
		copy(snapshot, entries)
		gone = append(gone, departure{address: address, entries: snapshot})
	}
	m.mu.Unlock()

	for _, d := range gone {
		for _, e := range d.entries {
			m.invokeUnavailable(e, d.address)
		}
	}
}

func (m *Manager) invokeUnavailable(e *unavailableEntry, address string) {
	defer func() {
		if x := recover(); x != nil {
			m.logger.Errorf("run time panic in unavailable callback for %s: %v", address, x)
			m.logger.Error(string(debug.Stack()))
		}
	}()
	e.callback(address)
}

// trackLoop drives periodic availability sweeps until stop closes.
func (m *Manager) trackLoop(stop chan struct{}) {
	t := time.NewTicker(m.trackInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			m.checkUnavailable()
		case <-stop:
			return
		}
	}
}
