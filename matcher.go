package bluetooth

import (
	"bytes"
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

// Matcher is a sparse filter over device/advertisement attributes. Fields
// left at their zero value are wildcards; every populated field must match
// (AND semantics). A nil *Matcher matches everything.
type Matcher struct {
	// Address matches the device address exactly, in canonical form.
	Address string

	// LocalName glob-matches the effective device name: the advertised
	// local name, else the backend-reported name, else the address.
	// Patterns support '*', '?', character classes and '[!...]' negation.
	LocalName string

	// ServiceUUID must appear among the advertised service UUIDs.
	// Short 16/32-bit forms are accepted and expanded by Compile.
	ServiceUUID string

	// ManufacturerID must be a key of the advertisement's manufacturer
	// data. A pointer because 0x0000 is a valid company identifier.
	ManufacturerID *uint16

	// ManufacturerDataStart is a byte prefix that at least one
	// manufacturer data payload must begin with.
	ManufacturerDataStart []byte

	localNameGlob glob.Glob
}

// Compile validates the matcher, canonicalizes its address and service UUID,
// and caches the compiled local-name pattern. Matches works without it, but
// Compile lets manifest loading fail fast and keeps the intake path from
// re-compiling patterns on every advertisement.
func (m *Matcher) Compile() error {
	if m.Address != "" {
		m.Address = NewAddr(m.Address).String()
	}
	if m.ServiceUUID != "" {
		u, err := NormalizeUUID(m.ServiceUUID)
		if err != nil {
			return err
		}
		m.ServiceUUID = u
	}
	if m.LocalName != "" && m.localNameGlob == nil {
		g, err := glob.Compile(m.LocalName)
		if err != nil {
			return errors.Wrapf(err, "bad local name pattern %q", m.LocalName)
		}
		m.localNameGlob = g
	}
	return nil
}

// Matches reports whether one observation satisfies the matcher. It has no
// side effects and is independent of any other matcher.
func (m *Matcher) Matches(dev *Device, adv *Advertisement) bool {
	if m == nil {
		return true
	}
	if m.Address != "" && !strings.EqualFold(m.Address, dev.Address) {
		return false
	}
	if m.LocalName != "" {
		g := m.localNameGlob
		if g == nil {
			var err error
			if g, err = glob.Compile(m.LocalName); err != nil {
				return false
			}
		}
		if !g.Match(effectiveName(dev, adv)) {
			return false
		}
	}
	if m.ServiceUUID != "" && !hasServiceUUID(adv.ServiceUUIDs, m.ServiceUUID) {
		return false
	}
	if m.ManufacturerID != nil {
		if _, ok := adv.ManufacturerData[*m.ManufacturerID]; !ok {
			return false
		}
	}
	if len(m.ManufacturerDataStart) > 0 &&
		!hasManufacturerDataPrefix(adv.ManufacturerData, m.ManufacturerDataStart) {
		return false
	}
	return true
}

func hasServiceUUID(uuids []string, want string) bool {
	for _, u := range uuids {
		if strings.EqualFold(u, want) {
			return true
		}
	}
	return false
}

func hasManufacturerDataPrefix(data map[uint16][]byte, prefix []byte) bool {
	for _, d := range data {
		if bytes.HasPrefix(d, prefix) {
			return true
		}
	}
	return false
}

// IntegrationMatcher declares a domain's interest in devices. The set loads
// once at setup and is immutable for the process lifetime.
type IntegrationMatcher struct {
	// Domain identifies the integration that owns the declaration.
	Domain string

	Matcher
}

// Compile validates the declaration.
func (m *IntegrationMatcher) Compile() error {
	if m.Domain == "" {
		return errors.New("integration matcher requires a domain")
	}
	if err := m.Matcher.Compile(); err != nil {
		return errors.Wrapf(err, "matcher for %s", m.Domain)
	}
	return nil
}
