// Package parser decodes the advertising data structures carried by
// legacy advertising and scan response payloads into the fields the
// discovery pipeline consumes. Driver bindings hand the raw payload to
// Parse and attach the report metadata (address, RSSI) themselves.
package parser

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rigado/bluetooth"
	"github.com/rigado/bluetooth/sliceops"
)

var EmptyOrNilPdu = errors.New("nil/empty pdu")

// https://www.bluetooth.org/en-us/specification/assigned-numbers/generic-access-profile
var types = struct {
	flags       byte
	uuid16inc   byte
	uuid16comp  byte
	uuid32inc   byte
	uuid32comp  byte
	uuid128inc  byte
	uuid128comp byte
	svc16       byte
	svc32       byte
	svc128      byte
	nameshort   byte
	namecomp    byte
	txpwr       byte
	mfgdata     byte
}{
	flags:       0x01,
	uuid16inc:   0x02,
	uuid16comp:  0x03,
	uuid32inc:   0x04,
	uuid32comp:  0x05,
	uuid128inc:  0x06,
	uuid128comp: 0x07,
	svc16:       0x16,
	svc32:       0x20,
	svc128:      0x21,
	nameshort:   0x08,
	namecomp:    0x09,
	txpwr:       0x0a,
	mfgdata:     0xff,
}

// Parse walks the length/type/value records of pdu and fills an
// Advertisement. A scan response may be appended to the advertising
// payload; records of both are folded into the same result, with later
// records winning for single-valued fields. On a malformed record the
// records decoded so far are returned together with the error.
func Parse(pdu []byte) (*bluetooth.Advertisement, error) {
	if len(pdu) == 0 {
		return nil, EmptyOrNilPdu
	}

	adv := &bluetooth.Advertisement{}
	for i := 0; (i + 1) < len(pdu); {
		//length @ offset 0
		//type @ offset 1
		//data @ 2 - length
		length := int(pdu[i])
		typ := pdu[i+1]

		//length should be at least 1 since there is a type byte
		if length < 1 {
			return adv, fmt.Errorf("invalid record length %v, idx %v", length, i)
		}

		//do we have all the bytes for the payload?
		if (i + length) >= len(pdu) {
			return adv, fmt.Errorf("buffer overflow: want %v, have %v, idx %v", i+length, len(pdu), i)
		}

		start := i + 2
		end := start + length - 1
		data := make([]byte, end-start)
		copy(data, pdu[start:end])

		if len(data) != 0 {
			if err := decodeRecord(adv, typ, data); err != nil {
				return adv, fmt.Errorf("adv type %v, idx %v: %w", typ, i, err)
			}
		}

		i += length + 1
	}

	return adv, nil
}

func decodeRecord(adv *bluetooth.Advertisement, typ byte, data []byte) error {
	switch typ {
	case types.namecomp:
		adv.LocalName = string(data)

	case types.nameshort:
		//a complete name from an earlier record wins
		if adv.LocalName == "" {
			adv.LocalName = string(data)
		}

	case types.uuid16inc, types.uuid16comp:
		return appendUUIDs(adv, data, 2)

	case types.uuid32inc, types.uuid32comp:
		return appendUUIDs(adv, data, 4)

	case types.uuid128inc, types.uuid128comp:
		return appendUUIDs(adv, data, 16)

	case types.svc16:
		return serviceData(adv, data, 2)

	case types.svc32:
		return serviceData(adv, data, 4)

	case types.svc128:
		return serviceData(adv, data, 16)

	case types.mfgdata:
		if len(data) < 2 {
			return fmt.Errorf("min length 2, have %v", len(data))
		}
		if adv.ManufacturerData == nil {
			adv.ManufacturerData = make(map[uint16][]byte)
		}
		id := binary.LittleEndian.Uint16(data[:2])
		adv.ManufacturerData[id] = data[2:]

	default:
		//flags, tx power and unknown types carry nothing the
		//pipeline consumes
	}

	return nil
}

func appendUUIDs(adv *bluetooth.Advertisement, data []byte, size int) error {
	//any remainder?
	if len(data)%size != 0 {
		return fmt.Errorf("incorrect size")
	}

	for j := 0; j < len(data); j += size {
		adv.ServiceUUIDs = append(adv.ServiceUUIDs, uuidString(data[j:j+size]))
	}

	return nil
}

func serviceData(adv *bluetooth.Advertisement, data []byte, uuidSz int) error {
	if len(data) < uuidSz {
		return fmt.Errorf("min length %v, have %v", uuidSz, len(data))
	}

	if adv.ServiceData == nil {
		adv.ServiceData = make(map[string][]byte)
	}
	adv.ServiceData[uuidString(data[:uuidSz])] = data[uuidSz:]

	return nil
}

// uuidString renders a little-endian uuid of 2, 4 or 16 bytes in the
// canonical 128-bit form.
func uuidString(le []byte) string {
	switch len(le) {
	case 2:
		return bluetooth.MustUUID(fmt.Sprintf("%04x", binary.LittleEndian.Uint16(le)))
	case 4:
		return bluetooth.MustUUID(fmt.Sprintf("%08x", binary.LittleEndian.Uint32(le)))
	default:
		b := sliceops.SwapBuf(le)
		return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
	}
}
