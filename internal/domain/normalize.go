package domain

import (
	"fmt"
	"slices"
)

// Scaler is a fitted per-column transform loaded from an artifact.
type Scaler interface {
	// Columns lists the columns the scaler was fitted on, in order.
	Columns() []string
	// Transform scales one row given in Columns order.
	Transform(values []float64) ([]float64, error)
}

var scaledColumns = []string{
	ColumnPopulationDensity,
	ColumnEnergyConsumption,
	ColumnAQI,
	ColumnRainfall,
	ColumnHeatStressIndex,
	ColumnUrbanPressureIndex,
	ColumnCoolingPotential,
}

// scaledIndex holds the FeatureColumns position of each scaled column.
var scaledIndex = func() []int {
	idx := make([]int, len(scaledColumns))
	for i, name := range scaledColumns {
		idx[i] = slices.Index(featureColumns[:], name)
	}
	return idx
}()

// ScaledColumns returns the columns the scaler must have been fitted on.
func ScaledColumns() []string {
	return slices.Clone(scaledColumns)
}

// ScaledFeatureRow is a FeatureRow whose scaled columns hold normalized
// values. Outside this package only Normalize produces a non-zero one.
type ScaledFeatureRow struct {
	row FeatureRow
}

// Row returns a copy of the normalized row.
func (s ScaledFeatureRow) Row() FeatureRow { return s.row }

// Values returns the normalized row in FeatureColumns order.
func (s ScaledFeatureRow) Values() []float64 { return s.row.Values() }

// Normalize applies scaler to the seven scaled columns of row and leaves
// every other column untouched.
func Normalize(row FeatureRow, scaler Scaler) (ScaledFeatureRow, error) {
	if cols := scaler.Columns(); !slices.Equal(cols, scaledColumns) {
		return ScaledFeatureRow{}, &ArtifactMismatchError{
			Artifact: "scaler",
			Expected: ScaledColumns(),
			Actual:   slices.Clone(cols),
		}
	}

	values := row.Values()
	in := make([]float64, len(scaledIndex))
	for i, pos := range scaledIndex {
		in[i] = values[pos]
	}

	out, err := scaler.Transform(in)
	if err != nil {
		return ScaledFeatureRow{}, &ArtifactMismatchError{Artifact: "scaler", Err: err}
	}
	if len(out) != len(in) {
		return ScaledFeatureRow{}, &ArtifactMismatchError{
			Artifact: "scaler",
			Err:      fmt.Errorf("transform returned %d values for %d columns", len(out), len(in)),
		}
	}

	for i, pos := range scaledIndex {
		values[pos] = out[i]
	}
	return ScaledFeatureRow{row: featureRowFromValues(values)}, nil
}
