package domain

import (
	"fmt"
	"strings"
)

// FormInput is one submission of the operator form. Preset selects the
// starting values ("" or CustomPreset for the defaults), Overrides replaces
// individual numeric fields, and LandCover, when set, replaces the land
// cover selection.
type FormInput struct {
	Preset    string            `json:"preset"`
	Overrides map[Field]float64 `json:"overrides,omitempty"`
	LandCover string            `json:"land_cover,omitempty"`
}

// InputCollector turns a form submission into a MeasurementRecord, the way
// the form widgets do: preset or default values, operator overrides, and
// every numeric field clamped to its slider range.
type InputCollector struct {
	presets *PresetRegistry
}

// NewInputCollector creates a collector backed by the given presets.
func NewInputCollector(presets *PresetRegistry) *InputCollector {
	return &InputCollector{presets: presets}
}

// Presets exposes the registry the collector pre-fills from.
func (c *InputCollector) Presets() *PresetRegistry {
	return c.presets
}

// Collect builds the record for in. Selecting a preset resets every field to
// that preset's value before overrides apply.
func (c *InputCollector) Collect(in FormInput) (MeasurementRecord, error) {
	record, err := c.baseline(in.Preset)
	if err != nil {
		return MeasurementRecord{}, err
	}

	for f, v := range in.Overrides {
		spec, ok := LookupFieldSpec(f)
		if !ok {
			return MeasurementRecord{}, fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
		record.set(f, spec.Clamp(v))
	}

	if strings.TrimSpace(in.LandCover) != "" {
		lc, err := ParseLandCover(in.LandCover)
		if err != nil {
			return MeasurementRecord{}, err
		}
		record.LandCover = lc
	}

	return record.clamped(), nil
}

func (c *InputCollector) baseline(preset string) (MeasurementRecord, error) {
	name := strings.TrimSpace(preset)
	if name == "" || name == CustomPreset {
		return DefaultRecord(), nil
	}
	entry, ok := c.presets.Lookup(name)
	if !ok {
		return MeasurementRecord{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return entry.Record, nil
}
