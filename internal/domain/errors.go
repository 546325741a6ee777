package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Request-level input errors. These reject a single submission and never
// indicate a broken deployment.
var (
	ErrUnknownPreset    = errors.New("unknown preset")
	ErrUnknownLandCover = errors.New("unknown land cover")
	ErrUnknownField     = errors.New("unknown measurement field")
)

// ConfigurationError reports invalid static data found at startup, such as a
// preset whose land cover is not one of the known values. It is fatal.
type ConfigurationError struct {
	Preset string
	Field  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if e.Preset != "" {
		fmt.Fprintf(&b, ": preset %q", e.Preset)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": field %s", e.Field)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " value %q", e.Value)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	return b.String()
}

// ArtifactLoadError reports a model or scaler file that is missing,
// unreadable, or structurally corrupt. It is fatal at startup.
type ArtifactLoadError struct {
	Artifact string // "model" or "scaler"
	Path     string
	Err      error
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("load %s artifact %s: %v", e.Artifact, e.Path, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error { return e.Err }

// ArtifactMismatchError reports schema drift between the feature row built
// here and the columns a loaded artifact was fitted on. It surfaces at
// request time but always means a deployment bug.
type ArtifactMismatchError struct {
	Artifact string // "model" or "scaler"
	Expected []string
	Actual   []string
	Err      error
}

func (e *ArtifactMismatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s artifact mismatch: %v", e.Artifact, e.Err)
	}
	if len(e.Expected) != len(e.Actual) {
		return fmt.Sprintf("%s artifact mismatch: expected %d columns, artifact has %d",
			e.Artifact, len(e.Expected), len(e.Actual))
	}
	for i := range e.Expected {
		if e.Expected[i] != e.Actual[i] {
			return fmt.Sprintf("%s artifact mismatch: column %d is %q, expected %q",
				e.Artifact, i, e.Actual[i], e.Expected[i])
		}
	}
	return e.Artifact + " artifact mismatch"
}

func (e *ArtifactMismatchError) Unwrap() error { return e.Err }
