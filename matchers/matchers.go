// Package matchers loads integration matcher manifests from JSON or YAML.
//
// A manifest is a list of entries using the upstream manifest key names:
//
//	- domain: switchbot
//	  service_uuid: "cba20d00-224d-11e6-9fb8-0002a5d5c51b"
//	- domain: govee
//	  manufacturer_id: 26589
//	  manufacturer_data_start: [1, 2]
//
// Every decoded entry is compiled before it is returned, so a manifest that
// loads without error is ready to hand to the discovery manager.
package matchers

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rigado/bluetooth"
)

// entry is the wire shape of one manifest item. Address is decoded only to
// be rejected: integration declarations cannot target a single device.
type entry struct {
	Domain                string `json:"domain" yaml:"domain"`
	Address               string `json:"address" yaml:"address"`
	LocalName             string `json:"local_name" yaml:"local_name"`
	ServiceUUID           string `json:"service_uuid" yaml:"service_uuid"`
	ManufacturerID        *int   `json:"manufacturer_id" yaml:"manufacturer_id"`
	ManufacturerDataStart []int  `json:"manufacturer_data_start" yaml:"manufacturer_data_start"`
}

// LoadFile reads a matcher manifest, dispatching on the file extension.
// Supported extensions are .json, .yaml and .yml.
func LoadFile(path string) ([]bluetooth.IntegrationMatcher, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open matcher manifest")
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(f)
	case ".yaml", ".yml":
		return DecodeYAML(f)
	default:
		return nil, errors.Errorf("unsupported matcher manifest extension %q", filepath.Ext(path))
	}
}

// DecodeJSON decodes a JSON manifest. An empty input yields no matchers.
func DecodeJSON(r io.Reader) ([]bluetooth.IntegrationMatcher, error) {
	var entries []entry
	if err := jsoniter.NewDecoder(r).Decode(&entries); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to decode matcher manifest")
	}

	return build(entries)
}

// DecodeYAML decodes a YAML manifest. An empty input yields no matchers.
func DecodeYAML(r io.Reader) ([]bluetooth.IntegrationMatcher, error) {
	var entries []entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to decode matcher manifest")
	}

	return build(entries)
}

func build(entries []entry) ([]bluetooth.IntegrationMatcher, error) {
	mm := make([]bluetooth.IntegrationMatcher, 0, len(entries))
	for i, e := range entries {
		m, err := e.matcher()
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		mm = append(mm, m)
	}

	return mm, nil
}

func (e entry) matcher() (bluetooth.IntegrationMatcher, error) {
	var m bluetooth.IntegrationMatcher

	if e.Address != "" {
		return m, errors.New("address is not allowed in integration matchers")
	}

	m.Domain = e.Domain
	m.LocalName = e.LocalName
	m.ServiceUUID = e.ServiceUUID

	if e.ManufacturerID != nil {
		id := *e.ManufacturerID
		if id < 0 || id > 0xffff {
			return m, errors.Errorf("manufacturer_id %d out of range", id)
		}
		v := uint16(id)
		m.ManufacturerID = &v
	}

	if len(e.ManufacturerDataStart) > 0 {
		prefix := make([]byte, len(e.ManufacturerDataStart))
		for j, b := range e.ManufacturerDataStart {
			if b < 0 || b > 0xff {
				return m, errors.Errorf("manufacturer_data_start byte %d out of range", b)
			}
			prefix[j] = byte(b)
		}
		m.ManufacturerDataStart = prefix
	}

	if err := m.Compile(); err != nil {
		return m, err
	}

	return m, nil
}
