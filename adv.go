package bluetooth

// Advertisement is an immutable snapshot of a single broadcast from a device.
// Scanner backends hand one to the manager per detection, already parsed;
// nothing in this package mutates it after construction.
type Advertisement struct {
	// LocalName is the advertised complete or shortened local name, if any.
	LocalName string

	// RSSI is the received signal strength of this broadcast in dBm.
	RSSI int

	// ManufacturerData maps company identifiers to their raw payloads.
	ManufacturerData map[uint16][]byte

	// ServiceData maps service UUIDs to their raw payloads.
	ServiceData map[string][]byte

	// ServiceUUIDs lists the advertised service UUIDs in canonical
	// 128-bit form (see NormalizeUUID).
	ServiceUUIDs []string
}

// Device is the scanner backend's handle to the physical device at the time
// of an observation. The manager keeps only the most recent Device per
// address; there is no history beyond last-seen.
type Device struct {
	// Address is the device address in canonical form (see NewAddr).
	Address string

	// Name is the name reported by the backend, if any.
	Name string

	// RSSI is the signal strength the backend last reported for the device.
	RSSI int
}

// DetectionCallback receives every raw detection from a Scanner.
type DetectionCallback func(dev *Device, adv *Advertisement)

// Change describes why a subscription callback fired.
type Change int

const (
	// ChangeAdvertisement reports a new advertisement for a matching device.
	ChangeAdvertisement Change = iota
)

func (c Change) String() string {
	if c == ChangeAdvertisement {
		return "advertisement"
	}
	return "unknown"
}

// Callback receives matching advertisements for a subscription.
type Callback func(info *ServiceInfo, change Change)

// UnavailableCallback fires once when a tracked address drops out of range.
type UnavailableCallback func(address string)
