package artifact

import (
	"fmt"
	"slices"
)

const kindStandardScaler = "standard_scaler"

type scalerDocument struct {
	Kind           string    `json:"kind"`
	FeatureNamesIn []string  `json:"feature_names_in"`
	Mean           []float64 `json:"mean"`
	Scale          []float64 `json:"scale"`
}

// Scaler is a fitted standard scaler: (x - mean) / scale per column.
// It is immutable and safe for concurrent use.
type Scaler struct {
	columns []string
	mean    []float64
	scale   []float64
	digest  string
}

// NewStandardScaler builds a scaler from fitted parameters.
func NewStandardScaler(columns []string, mean, scale []float64) (*Scaler, error) {
	if err := checkNames(columns); err != nil {
		return nil, err
	}
	if len(mean) != len(columns) || len(scale) != len(columns) {
		return nil, fmt.Errorf("scaler has %d columns, %d means and %d scales", len(columns), len(mean), len(scale))
	}
	if err := checkFinite("mean", mean); err != nil {
		return nil, err
	}
	if err := checkFinite("scale", scale); err != nil {
		return nil, err
	}
	for i, s := range scale {
		if s == 0 {
			return nil, fmt.Errorf("scale[%d] is zero", i)
		}
	}
	return &Scaler{
		columns: slices.Clone(columns),
		mean:    slices.Clone(mean),
		scale:   slices.Clone(scale),
	}, nil
}

// LoadScaler reads a standard_scaler document from path.
func LoadScaler(path string) (*Scaler, error) {
	var doc scalerDocument
	digest, err := readDocument("scaler", path, &doc)
	if err != nil {
		return nil, err
	}
	if doc.Kind != kindStandardScaler {
		return nil, loadError("scaler", path, fmt.Errorf("unsupported kind %q", doc.Kind))
	}
	s, err := NewStandardScaler(doc.FeatureNamesIn, doc.Mean, doc.Scale)
	if err != nil {
		return nil, loadError("scaler", path, err)
	}
	s.digest = digest
	return s, nil
}

// Columns returns the fitted column names in order.
func (s *Scaler) Columns() []string { return slices.Clone(s.columns) }

// Digest is the SHA-256 of the source document, empty for in-memory scalers.
func (s *Scaler) Digest() string { return s.digest }

// Transform standardizes one row given in Columns order.
func (s *Scaler) Transform(values []float64) ([]float64, error) {
	if len(values) != len(s.columns) {
		return nil, fmt.Errorf("scaler expects %d values, got %d", len(s.columns), len(values))
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - s.mean[i]) / s.scale[i]
	}
	return out, nil
}
