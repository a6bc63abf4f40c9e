package manager

import "github.com/rigado/bluetooth"

// SharedScanner is the handle integrations receive instead of the scanner
// itself: discovery state reads and callback registration, without
// lifecycle control.
type SharedScanner struct {
	m *Manager
}

// SharedScanner returns the manager's shared read handle.
func (m *Manager) SharedScanner() *SharedScanner {
	return &SharedScanner{m: m}
}

// DiscoveredDevices reports the scanner's current live device set.
func (s *SharedScanner) DiscoveredDevices() []*bluetooth.Device {
	return s.m.scanner.DiscoveredDevices()
}

// DiscoveredServiceInfo projects every remembered advertisement.
func (s *SharedScanner) DiscoveredServiceInfo() []*bluetooth.ServiceInfo {
	return s.m.DiscoveredServiceInfo()
}

// DeviceFromAddress returns the remembered device for address, or nil.
func (s *SharedScanner) DeviceFromAddress(address string) *bluetooth.Device {
	return s.m.DeviceFromAddress(address)
}

// AddressPresent reports whether address is in the remembered history.
func (s *SharedScanner) AddressPresent(address string) bool {
	return s.m.AddressPresent(address)
}

// RegisterCallback subscribes to matching advertisements.
func (s *SharedScanner) RegisterCallback(cb bluetooth.Callback, matcher *bluetooth.Matcher) func() {
	return s.m.RegisterCallback(cb, matcher)
}
