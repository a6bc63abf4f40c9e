package matchers_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigado/bluetooth"
	"github.com/rigado/bluetooth/matchers"
)

const manifestYAML = `
- domain: switchbot
  service_uuid: "cba20d00-224d-11e6-9fb8-0002a5d5c51b"
- domain: xiaomi_ble
  service_uuid: fe95
- domain: govee
  manufacturer_id: 26589
  manufacturer_data_start: [1, 2]
- domain: oralb
  local_name: "Oral-B*"
`

func TestDecodeYAML(t *testing.T) {
	mm, err := matchers.DecodeYAML(strings.NewReader(manifestYAML))
	require.NoError(t, err)
	require.Len(t, mm, 4)

	assert.Equal(t, "switchbot", mm[0].Domain)
	assert.Equal(t, "cba20d00-224d-11e6-9fb8-0002a5d5c51b", mm[0].ServiceUUID)

	// Short UUID forms are expanded during compilation.
	assert.Equal(t, "0000fe95-0000-1000-8000-00805f9b34fb", mm[1].ServiceUUID)

	require.NotNil(t, mm[2].ManufacturerID)
	assert.Equal(t, uint16(26589), *mm[2].ManufacturerID)
	assert.Equal(t, []byte{1, 2}, mm[2].ManufacturerDataStart)

	assert.Equal(t, "Oral-B*", mm[3].LocalName)
}

func TestDecodeJSON(t *testing.T) {
	manifest := `[
		{"domain": "switchbot", "service_uuid": "cba20d00-224d-11e6-9fb8-0002a5d5c51b"},
		{"domain": "govee", "manufacturer_id": 0}
	]`

	mm, err := matchers.DecodeJSON(strings.NewReader(manifest))
	require.NoError(t, err)
	require.Len(t, mm, 2)

	// Company identifier zero is a real assignment, distinct from absent.
	require.NotNil(t, mm[1].ManufacturerID)
	assert.Equal(t, uint16(0), *mm[1].ManufacturerID)
	assert.Nil(t, mm[0].ManufacturerID)
}

func TestDecode_Empty(t *testing.T) {
	mm, err := matchers.DecodeYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, mm)

	mm, err = matchers.DecodeJSON(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, mm)
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		wantErr  string
	}{
		{
			name:     "address",
			manifest: "- domain: hue\n  address: aa:bb:cc:dd:ee:ff\n",
			wantErr:  "address is not allowed",
		},
		{
			name:     "missing domain",
			manifest: "- service_uuid: fe95\n",
			wantErr:  "requires a domain",
		},
		{
			name:     "manufacturer id too large",
			manifest: "- domain: hue\n  manufacturer_id: 65536\n",
			wantErr:  "out of range",
		},
		{
			name:     "manufacturer id negative",
			manifest: "- domain: hue\n  manufacturer_id: -1\n",
			wantErr:  "out of range",
		},
		{
			name:     "manufacturer data byte too large",
			manifest: "- domain: hue\n  manufacturer_data_start: [256]\n",
			wantErr:  "out of range",
		},
		{
			name:     "bad service uuid",
			manifest: "- domain: hue\n  service_uuid: zz95\n",
			wantErr:  "bad service uuid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := matchers.DecodeYAML(strings.NewReader(tt.manifest))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecode_ErrorNamesEntry(t *testing.T) {
	manifest := "- domain: ok\n- domain: bad\n  manufacturer_id: -1\n"

	_, err := matchers.DecodeYAML(strings.NewReader(manifest))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 1")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "matchers.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(manifestYAML), 0o644))

	mm, err := matchers.LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Len(t, mm, 4)

	jsonPath := filepath.Join(dir, "matchers.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"domain": "switchbot", "local_name": "WoHand*"}]`), 0o644))

	mm, err = matchers.LoadFile(jsonPath)
	require.NoError(t, err)
	require.Len(t, mm, 1)
	assert.Equal(t, "switchbot", mm[0].Domain)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := matchers.LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")

	tomlPath := filepath.Join(dir, "matchers.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(""), 0o644))

	_, err = matchers.LoadFile(tomlPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestLoadedMatcherMatches(t *testing.T) {
	mm, err := matchers.DecodeYAML(strings.NewReader(manifestYAML))
	require.NoError(t, err)

	dev := &bluetooth.Device{Address: "aa:bb:cc:dd:ee:ff"}
	adv := &bluetooth.Advertisement{LocalName: "Oral-B Smart"}

	assert.True(t, mm[3].Matches(dev, adv))
	assert.False(t, mm[0].Matches(dev, adv))
}
