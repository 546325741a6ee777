package domain

// Training-time column names. They are matched byte-for-byte against the
// column lists stored in the artifacts.
const (
	ColumnTemperature         = "Temperature (°C)"
	ColumnPopulationDensity   = "Population Density (people/km²)"
	ColumnEnergyConsumption   = "Energy Consumption (kWh)"
	ColumnAQI                 = "Air Quality Index (AQI)"
	ColumnGreennessRatio      = "Urban Greenness Ratio (%)"
	ColumnWindSpeed           = "Wind Speed (km/h)"
	ColumnHumidity            = "Humidity (%)"
	ColumnRainfall            = "Annual Rainfall (mm)"
	ColumnLandCoverGreenSpace = "Land Cover_Green Space"
	ColumnLandCoverIndustrial = "Land Cover_Industrial"
	ColumnLandCoverUrban      = "Land Cover_Urban"
	ColumnLandCoverWater      = "Land Cover_Water"
	ColumnHeatStressIndex     = "Heat Stress Index"
	ColumnUrbanPressureIndex  = "Urban Pressure Index"
	ColumnCoolingPotential    = "Cooling Potential"
)

// NumFeatures is the width of a FeatureRow.
const NumFeatures = 15

var featureColumns = [NumFeatures]string{
	ColumnTemperature,
	ColumnPopulationDensity,
	ColumnEnergyConsumption,
	ColumnAQI,
	ColumnGreennessRatio,
	ColumnWindSpeed,
	ColumnHumidity,
	ColumnRainfall,
	ColumnLandCoverGreenSpace,
	ColumnLandCoverIndustrial,
	ColumnLandCoverUrban,
	ColumnLandCoverWater,
	ColumnHeatStressIndex,
	ColumnUrbanPressureIndex,
	ColumnCoolingPotential,
}

// FeatureColumns returns the model input schema in order.
func FeatureColumns() []string {
	out := make([]string, NumFeatures)
	copy(out, featureColumns[:])
	return out
}

// FeatureRow is a MeasurementRecord in model-input form: the eight raw
// measurements, four land-cover indicators and three composites.
type FeatureRow struct {
	Temperature       float64
	PopulationDensity float64
	EnergyConsumption float64
	AQI               float64
	GreennessRatio    float64
	WindSpeed         float64
	Humidity          float64
	Rainfall          float64

	LandCoverGreenSpace float64
	LandCoverIndustrial float64
	LandCoverUrban      float64
	LandCoverWater      float64

	HeatStressIndex    float64
	UrbanPressureIndex float64
	CoolingPotential   float64
}

// BuildFeatures derives the feature row for r. It is pure and cannot fail:
// the land cover is a closed enum and the greenness divisor is at least 1
// after collection.
func BuildFeatures(r MeasurementRecord) FeatureRow {
	row := FeatureRow{
		Temperature:       r.Temperature,
		PopulationDensity: r.PopulationDensity,
		EnergyConsumption: r.EnergyConsumption,
		AQI:               r.AQI,
		GreennessRatio:    r.GreennessRatio,
		WindSpeed:         r.WindSpeed,
		Humidity:          r.Humidity,
		Rainfall:          r.Rainfall,

		HeatStressIndex:    r.Humidity * r.Temperature,
		UrbanPressureIndex: r.PopulationDensity / r.GreennessRatio,
		CoolingPotential:   r.WindSpeed + r.GreennessRatio + r.Rainfall,
	}

	switch r.LandCover {
	case LandCoverGreenSpace:
		row.LandCoverGreenSpace = 1
	case LandCoverIndustrial:
		row.LandCoverIndustrial = 1
	case LandCoverUrban:
		row.LandCoverUrban = 1
	case LandCoverWater:
		row.LandCoverWater = 1
	}
	return row
}

// Values returns the row in FeatureColumns order.
func (f FeatureRow) Values() []float64 {
	return []float64{
		f.Temperature,
		f.PopulationDensity,
		f.EnergyConsumption,
		f.AQI,
		f.GreennessRatio,
		f.WindSpeed,
		f.Humidity,
		f.Rainfall,
		f.LandCoverGreenSpace,
		f.LandCoverIndustrial,
		f.LandCoverUrban,
		f.LandCoverWater,
		f.HeatStressIndex,
		f.UrbanPressureIndex,
		f.CoolingPotential,
	}
}

// featureRowFromValues is the inverse of Values. v must have NumFeatures entries.
func featureRowFromValues(v []float64) FeatureRow {
	return FeatureRow{
		Temperature:         v[0],
		PopulationDensity:   v[1],
		EnergyConsumption:   v[2],
		AQI:                 v[3],
		GreennessRatio:      v[4],
		WindSpeed:           v[5],
		Humidity:            v[6],
		Rainfall:            v[7],
		LandCoverGreenSpace: v[8],
		LandCoverIndustrial: v[9],
		LandCoverUrban:      v[10],
		LandCoverWater:      v[11],
		HeatStressIndex:     v[12],
		UrbanPressureIndex:  v[13],
		CoolingPotential:    v[14],
	}
}
