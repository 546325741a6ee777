package domain

import "strings"

// CustomPreset is the selector entry that applies no preset values.
const CustomPreset = "Custom"

// PresetDefinition is one row of the static city table. LandCover is kept as
// the raw label so that a typo in the table is caught by NewPresetRegistry
// instead of silently encoding as no land cover.
type PresetDefinition struct {
	Name              string
	Temperature       float64
	PopulationDensity float64
	EnergyConsumption float64
	AQI               float64
	GreennessRatio    float64
	WindSpeed         float64
	Humidity          float64
	Rainfall          float64
	LandCover         string
}

// PresetEntry is a validated preset: a city name and its complete record.
type PresetEntry struct {
	Name   string            `json:"name"`
	Record MeasurementRecord `json:"values"`
}

// DefaultPresets returns the built-in city table. The values are mock
// baselines and do not reflect real-world measurements.
func DefaultPresets() []PresetDefinition {
	return []PresetDefinition{
		{
			Name:              "Kuala Lumpur (Tropical Urban)",
			Temperature:       32,
			PopulationDensity: 7000,
			EnergyConsumption: 5084,
			AQI:               75,
			GreennessRatio:    35,
			WindSpeed:         8,
			Humidity:          78,
			Rainfall:          2400,
			LandCover:         "Urban",
		},
		{
			Name:              "Singapore (Dense & Tropical)",
			Temperature:       31,
			PopulationDensity: 8000,
			EnergyConsumption: 5016,
			AQI:               55,
			GreennessRatio:    47,
			WindSpeed:         12,
			Humidity:          80,
			Rainfall:          2400,
			LandCover:         "Urban",
		},
		{
			Name:              "Jakarta (High Risk)",
			Temperature:       33,
			PopulationDensity: 11000,
			EnergyConsumption: 3800,
			AQI:               95,
			GreennessRatio:    25,
			WindSpeed:         8,
			Humidity:          75,
			Rainfall:          1800,
			LandCover:         "Industrial",
		},
		{
			Name:              "Tokyo (Mixed Urban)",
			Temperature:       29,
			PopulationDensity: 6500,
			EnergyConsumption: 5200,
			AQI:               60,
			GreennessRatio:    35,
			WindSpeed:         10,
			Humidity:          70,
			Rainfall:          1500,
			LandCover:         "Urban",
		},
	}
}

// PresetRegistry maps city names to baseline records. It is built once at
// startup and is read-only afterwards.
type PresetRegistry struct {
	names   []string
	entries map[string]PresetEntry
}

// NewPresetRegistry validates the table and builds a registry. An unknown
// land-cover label, an empty or duplicate name, or a row named after
// CustomPreset yields a *ConfigurationError.
func NewPresetRegistry(defs []PresetDefinition) (*PresetRegistry, error) {
	r := &PresetRegistry{
		names:   []string{CustomPreset},
		entries: make(map[string]PresetEntry, len(defs)),
	}
	for _, d := range defs {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			return nil, &ConfigurationError{Reason: "preset name is empty"}
		}
		if name == CustomPreset {
			return nil, &ConfigurationError{Preset: name, Reason: "name is reserved for the no-override entry"}
		}
		if _, dup := r.entries[name]; dup {
			return nil, &ConfigurationError{Preset: name, Reason: "duplicate preset name"}
		}
		lc, ok := landCoverByLabel(d.LandCover)
		if !ok {
			return nil, &ConfigurationError{
				Preset: name,
				Field:  "land_cover",
				Value:  d.LandCover,
				Reason: "not one of Urban, Industrial, Green Space, Water",
			}
		}
		r.entries[name] = PresetEntry{
			Name: name,
			Record: MeasurementRecord{
				Temperature:       d.Temperature,
				PopulationDensity: d.PopulationDensity,
				EnergyConsumption: d.EnergyConsumption,
				AQI:               d.AQI,
				GreennessRatio:    d.GreennessRatio,
				WindSpeed:         d.WindSpeed,
				Humidity:          d.Humidity,
				Rainfall:          d.Rainfall,
				LandCover:         lc,
			},
		}
		r.names = append(r.names, name)
	}
	return r, nil
}

// Lookup returns the preset named cityName. It reports false for
// CustomPreset and for names not in the table.
func (r *PresetRegistry) Lookup(cityName string) (PresetEntry, bool) {
	e, ok := r.entries[cityName]
	return e, ok
}

// Names returns the selector options, CustomPreset first, then table order.
func (r *PresetRegistry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Entries returns every preset in table order, excluding CustomPreset.
func (r *PresetRegistry) Entries() []PresetEntry {
	out := make([]PresetEntry, 0, len(r.entries))
	for _, name := range r.names[1:] {
		out = append(out, r.entries[name])
	}
	return out
}

// landCoverByLabel matches a preset table label exactly. The static table is
// held to the display labels; ParseLandCover's leniency is for form input.
func landCoverByLabel(label string) (LandCover, bool) {
	for _, lc := range LandCovers() {
		if lc.String() == label {
			return lc, true
		}
	}
	return 0, false
}
