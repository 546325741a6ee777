// Package domain models the heat-related mortality estimate for an urban
// area: the operator's measurement record, the feature row the regression
// model was trained on, and the risk tier shown next to the estimate.
//
// # Pipeline
//
// A prediction is a single linear pass with no shared mutable state:
//
//	preset/defaults → InputCollector → BuildFeatures → Normalize → Predict → ClassifyRisk
//
// The scaler and model are opaque artifacts fitted elsewhere. They are
// injected through the [Scaler] and [Model] interfaces and never mutated.
//
// # Measurement bounds
//
// Every numeric field is clamped to the range of its form slider:
//
//	Temperature         20–40 °C         default 30
//	Population density  500–15000 /km²   default 5000
//	Energy consumption  1000–8000 kWh    default 3000
//	AQI                 0–200            default 60
//	Greenness ratio     1–100 %          default 40
//	Wind speed          0–30 km/h        default 10
//	Humidity            20–100 %         default 70
//	Annual rainfall     0–4000 mm        default 1500
//
// The greenness floor of 1 is load-bearing: it is the divisor of the urban
// pressure index. Clamping also maps NaN to the field minimum.
//
// # Feature schema
//
// Column names and order match the training data frame exactly, including
// the "Land Cover_<label>" one-hot columns in sorted label order
// (Green Space, Industrial, Urban, Water). Three composites are appended:
//
//	Heat Stress Index    = Humidity × Temperature
//	Urban Pressure Index = Population Density / Greenness Ratio
//	Cooling Potential    = Wind Speed + Greenness Ratio + Annual Rainfall
//
// Seven columns are standardized by the scaler (population density, energy
// consumption, AQI, rainfall and the three composites). Temperature,
// greenness, wind speed, humidity and the land-cover indicators are passed
// to the model as-is.
//
// # Risk tiers
//
// The estimate is a mortality rate per 100k population:
//
//	< 20        Low
//	20 – <35    Moderate
//	≥ 35        High
//
// Thresholds are fixed. Every float64 classifies, including negative and
// very large scores.
package domain
