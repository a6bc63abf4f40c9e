package bluetooth

// SourceLocal tags ServiceInfo produced by the locally managed scanner.
const SourceLocal = "local"

// ServiceInfo is the outward-facing projection of one observation, handed to
// subscription callbacks and discovery flows. It keeps the Device and
// Advertisement handles so consumers can reach the backend without another
// scan to translate the address.
type ServiceInfo struct {
	Name             string
	Address          string
	RSSI             int
	ManufacturerData map[uint16][]byte
	ServiceData      map[string][]byte
	ServiceUUIDs     []string

	// Source identifies which scanner produced the observation.
	Source string

	Device        *Device
	Advertisement *Advertisement
}

// effectiveName resolves the display name for an observation, falling back
// from the advertised local name to the backend-reported device name to the
// bare address.
func effectiveName(dev *Device, adv *Advertisement) string {
	if adv.LocalName != "" {
		return adv.LocalName
	}
	if dev.Name != "" {
		return dev.Name
	}
	return dev.Address
}

// NewServiceInfo builds a ServiceInfo from an observation.
func NewServiceInfo(dev *Device, adv *Advertisement, source string) *ServiceInfo {
	return &ServiceInfo{
		Name:             effectiveName(dev, adv),
		Address:          dev.Address,
		RSSI:             dev.RSSI,
		ManufacturerData: adv.ManufacturerData,
		ServiceData:      adv.ServiceData,
		ServiceUUIDs:     adv.ServiceUUIDs,
		Source:           source,
		Device:           dev,
		Advertisement:    adv,
	}
}
