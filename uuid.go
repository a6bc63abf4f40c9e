package bluetooth

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// bluetoothBaseSuffix completes 16- and 32-bit short UUIDs against the
// Bluetooth base UUID.
const bluetoothBaseSuffix = "-0000-1000-8000-00805f9b34fb"

// NormalizeUUID returns the canonical lowercase 128-bit form of a service
// UUID. 4- and 8-character short forms expand against the Bluetooth base
// UUID: "180d" becomes "0000180d-0000-1000-8000-00805f9b34fb".
func NormalizeUUID(s string) (string, error) {
	switch len(s) {
	case 4:
		s = "0000" + s + bluetoothBaseSuffix
	case 8:
		s += bluetoothBaseSuffix
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return "", errors.Wrapf(err, "bad service uuid %q", s)
	}
	return u.String(), nil
}

// MustUUID is NormalizeUUID for UUIDs known good at compile time.
// It panics on error.
func MustUUID(s string) string {
	u, err := NormalizeUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}
