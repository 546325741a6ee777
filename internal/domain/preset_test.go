package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKualaLumpur = "Kuala Lumpur (Tropical Urban)"
	testJakarta     = "Jakarta (High Risk)"
)

func newTestRegistry(t *testing.T) *PresetRegistry {
	t.Helper()
	r, err := NewPresetRegistry(DefaultPresets())
	require.NoError(t, err)
	return r
}

func TestPresetRegistry_Names(t *testing.T) {
	r := newTestRegistry(t)
	assert.Equal(t, []string{
		CustomPreset,
		testKualaLumpur,
		"Singapore (Dense & Tropical)",
		testJakarta,
		"Tokyo (Mixed Urban)",
	}, r.Names())
	assert.Len(t, r.Entries(), 4)
}

func TestPresetRegistry_LookupKualaLumpur(t *testing.T) {
	r := newTestRegistry(t)
	entry, ok := r.Lookup(testKualaLumpur)
	require.True(t, ok)

	assert.Equal(t, MeasurementRecord{
		Temperature:       32,
		PopulationDensity: 7000,
		EnergyConsumption: 5084,
		AQI:               75,
		GreennessRatio:    35,
		WindSpeed:         8,
		Humidity:          78,
		Rainfall:          2400,
		LandCover:         LandCoverUrban,
	}, entry.Record)
}

func TestPresetRegistry_LookupJakartaIndustrial(t *testing.T) {
	r := newTestRegistry(t)
	entry, ok := r.Lookup(testJakarta)
	require.True(t, ok)
	assert.Equal(t, LandCoverIndustrial, entry.Record.LandCover)
	assert.Equal(t, 11000.0, entry.Record.PopulationDensity)
}

func TestPresetRegistry_LookupCustomAndUnknown(t *testing.T) {
	r := newTestRegistry(t)

	_, ok := r.Lookup(CustomPreset)
	assert.False(t, ok, "Custom applies no override")

	_, ok = r.Lookup("Atlantis")
	assert.False(t, ok)
}

func TestNewPresetRegistry_InvalidTable(t *testing.T) {
	valid := DefaultPresets()[0]

	tests := []struct {
		name      string
		mutate    func(d *PresetDefinition)
		wantField string
	}{
		{"unknown land cover", func(d *PresetDefinition) { d.LandCover = "Desert" }, "land_cover"},
		{"empty land cover", func(d *PresetDefinition) { d.LandCover = "" }, "land_cover"},
		{"lower-case label", func(d *PresetDefinition) { d.LandCover = "urban" }, "land_cover"},
		{"padded label", func(d *PresetDefinition) { d.LandCover = " Industrial " }, "land_cover"},
		{"snake-case label", func(d *PresetDefinition) { d.LandCover = "green_space" }, "land_cover"},
		{"joined label", func(d *PresetDefinition) { d.LandCover = "GreenSpace" }, "land_cover"},
		{"trailing dash", func(d *PresetDefinition) { d.LandCover = "Water-" }, "land_cover"},
		{"empty name", func(d *PresetDefinition) { d.Name = "  " }, ""},
		{"reserved name", func(d *PresetDefinition) { d.Name = CustomPreset }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)

			_, err := NewPresetRegistry([]PresetDefinition{d})
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestNewPresetRegistry_DuplicateName(t *testing.T) {
	d := DefaultPresets()[0]
	_, err := NewPresetRegistry([]PresetDefinition{d, d})

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Error(), "duplicate")
}

func TestNewPresetRegistry_ErrorMessageNamesPreset(t *testing.T) {
	d := DefaultPresets()[2]
	d.LandCover = "Swamp"
	_, err := NewPresetRegistry([]PresetDefinition{d})
	require.Error(t, err)
	assert.Contains(t, err.Error(), testJakarta)
	assert.Contains(t, err.Error(), "Swamp")
}

func TestNewPresetRegistry_AcceptsEveryDisplayLabel(t *testing.T) {
	for _, lc := range LandCovers() {
		d := DefaultPresets()[0]
		d.LandCover = lc.String()

		r, err := NewPresetRegistry([]PresetDefinition{d})
		require.NoError(t, err, lc.String())
		entry, ok := r.Lookup(d.Name)
		require.True(t, ok)
		assert.Equal(t, lc, entry.Record.LandCover)
	}
}
