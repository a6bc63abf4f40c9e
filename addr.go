package bluetooth

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// Addr represents a device address.
// It's a MAC address on Linux or a Device UUID on OS X.
// Addresses from different sources (scanner backends, matcher manifests,
// command-line flags) must compare equal in canonical form; NewAddr is the
// one normalization point.
type Addr interface {
	String() string
	Bytes() ([]byte, error)
}

// NewAddr creates an Addr in canonical (lowercased) form.
func NewAddr(s string) Addr {
	return addr(strings.ToLower(s))
}

type addr string

func (a addr) String() string {
	return string(a)
}

func (a addr) Bytes() ([]byte, error) {
	hexStr := strings.Replace(a.String(), ":", "", -1)

	out, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, errors.Wrapf(err, "bad address %s", a.String())
	}

	return out, nil
}
