package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field names a numeric measurement in form input and JSON payloads.
type Field string

const (
	FieldTemperature       Field = "temperature"
	FieldPopulationDensity Field = "population_density"
	FieldEnergyConsumption Field = "energy_consumption"
	FieldAQI               Field = "aqi"
	FieldGreennessRatio    Field = "greenness_ratio"
	FieldWindSpeed         Field = "wind_speed"
	FieldHumidity          Field = "humidity"
	FieldRainfall          Field = "rainfall"
)

// FieldSpec describes one bounded numeric input: its slider label, unit,
// inclusive range and default value.
type FieldSpec struct {
	Field   Field   `json:"field"`
	Label   string  `json:"label"`
	Unit    string  `json:"unit,omitempty"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

// Clamp limits v to [Min, Max]. NaN maps to Min so a clamped value is always
// inside the range.
func (s FieldSpec) Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < s.Min:
		return s.Min
	case v > s.Max:
		return s.Max
	default:
		return v
	}
}

var fieldSpecs = []FieldSpec{
	{Field: FieldTemperature, Label: "Temperature", Unit: "°C", Min: 20, Max: 40, Default: 30},
	{Field: FieldPopulationDensity, Label: "Population Density", Unit: "people/km²", Min: 500, Max: 15000, Default: 5000},
	{Field: FieldEnergyConsumption, Label: "Energy Consumption", Unit: "kWh", Min: 1000, Max: 8000, Default: 3000},
	{Field: FieldAQI, Label: "Air Quality Index (AQI)", Min: 0, Max: 200, Default: 60},
	{Field: FieldGreennessRatio, Label: "Urban Greenness Ratio", Unit: "%", Min: 1, Max: 100, Default: 40},
	{Field: FieldWindSpeed, Label: "Wind Speed", Unit: "km/h", Min: 0, Max: 30, Default: 10},
	{Field: FieldHumidity, Label: "Humidity", Unit: "%", Min: 20, Max: 100, Default: 70},
	{Field: FieldRainfall, Label: "Annual Rainfall", Unit: "mm", Min: 0, Max: 4000, Default: 1500},
}

// DefaultLandCover is preselected when no preset is active.
const DefaultLandCover = LandCoverUrban

// FieldSpecs returns the numeric inputs in form order.
func FieldSpecs() []FieldSpec {
	out := make([]FieldSpec, len(fieldSpecs))
	copy(out, fieldSpecs)
	return out
}

// LookupFieldSpec returns the spec for f.
func LookupFieldSpec(f Field) (FieldSpec, bool) {
	for _, s := range fieldSpecs {
		if s.Field == f {
			return s, true
		}
	}
	return FieldSpec{}, false
}

// MeasurementRecord is the raw operator input for one prediction.
type MeasurementRecord struct {
	Temperature       float64   `json:"temperature"`
	PopulationDensity float64   `json:"population_density"`
	EnergyConsumption float64   `json:"energy_consumption"`
	AQI               float64   `json:"aqi"`
	GreennessRatio    float64   `json:"greenness_ratio"`
	WindSpeed         float64   `json:"wind_speed"`
	Humidity          float64   `json:"humidity"`
	Rainfall          float64   `json:"rainfall"`
	LandCover         LandCover `json:"land_cover"`
}

// DefaultRecord returns the form values used when no preset is selected.
func DefaultRecord() MeasurementRecord {
	r := MeasurementRecord{LandCover: DefaultLandCover}
	for _, s := range fieldSpecs {
		r.set(s.Field, s.Default)
	}
	return r
}

// Value returns the numeric value of f.
func (r MeasurementRecord) Value(f Field) (float64, bool) {
	switch f {
	case FieldTemperature:
		return r.Temperature, true
	case FieldPopulationDensity:
		return r.PopulationDensity, true
	case FieldEnergyConsumption:
		return r.EnergyConsumption, true
	case FieldAQI:
		return r.AQI, true
	case FieldGreennessRatio:
		return r.GreennessRatio, true
	case FieldWindSpeed:
		return r.WindSpeed, true
	case FieldHumidity:
		return r.Humidity, true
	case FieldRainfall:
		return r.Rainfall, true
	default:
		return 0, false
	}
}

func (r *MeasurementRecord) set(f Field, v float64) {
	switch f {
	case FieldTemperature:
		r.Temperature = v
	case FieldPopulationDensity:
		r.PopulationDensity = v
	case FieldEnergyConsumption:
		r.EnergyConsumption = v
	case FieldAQI:
		r.AQI = v
	case FieldGreennessRatio:
		r.GreennessRatio = v
	case FieldWindSpeed:
		r.WindSpeed = v
	case FieldHumidity:
		r.Humidity = v
	case FieldRainfall:
		r.Rainfall = v
	}
}

// clamped returns a copy with every numeric field inside its range.
func (r MeasurementRecord) clamped() MeasurementRecord {
	for _, s := range fieldSpecs {
		v, _ := r.Value(s.Field)
		r.set(s.Field, s.Clamp(v))
	}
	return r
}

// Key is a deterministic identity for the record, used to memoize scores.
// Two records share a key exactly when all fields are bit-identical.
func (r MeasurementRecord) Key() string {
	var b strings.Builder
	for i, s := range fieldSpecs {
		if i > 0 {
			b.WriteByte('|')
		}
		v, _ := r.Value(s.Field)
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	fmt.Fprintf(&b, "|%d", int(r.LandCover))
	return b.String()
}
