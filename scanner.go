package bluetooth

import "context"

// ScanningMode selects how the radio listens for advertisements.
type ScanningMode int

const (
	// ScanningModeActive requests scan responses from advertisers.
	ScanningModeActive ScanningMode = iota

	// ScanningModePassive listens without transmitting scan requests.
	ScanningModePassive
)

func (m ScanningMode) String() string {
	if m == ScanningModePassive {
		return "passive"
	}
	return "active"
}

// Scanner is the boundary contract a radio backend implements. The manager
// owns exactly one Scanner and is its only lifecycle driver; everything else
// reaches the radio through the manager's shared handle.
//
// Backends deliver Device addresses in canonical form (NewAddr) and invoke
// the detection callback one event at a time: the manager relies on serial
// delivery for its ordering guarantees.
type Scanner interface {
	// Setup configures the backend for the given mode before listening
	// starts. An error here means the radio resource is unusable and the
	// failure is not retryable.
	Setup(mode ScanningMode) error

	// Start begins listening. On error the caller may retry later.
	Start(ctx context.Context) error

	// Stop releases the radio. Listeners are always cancelled before Stop
	// is called.
	Stop(ctx context.Context) error

	// RegisterDetectionCallback adds a sink for raw detections and returns
	// a cancel func that removes it.
	RegisterDetectionCallback(cb DetectionCallback) (cancel func())

	// DiscoveredDevices reports the devices the backend currently
	// considers in range. This is the backend's own liveness accounting,
	// distinct from the manager's last-seen history.
	DiscoveredDevices() []*Device
}
