// Package artifact loads the fitted scaler and regression model from the JSON
// documents exported by the training pipeline.
package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/couchcryptid/heat-risk-predictor/internal/domain"
)

// readDocument reads path, decodes it into v and returns the content digest.
// Every failure is wrapped in an *domain.ArtifactLoadError.
func readDocument(artifact, path string, v any) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &domain.ArtifactLoadError{Artifact: artifact, Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return "", &domain.ArtifactLoadError{Artifact: artifact, Path: path, Err: fmt.Errorf("decode: %w", err)}
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func loadError(artifact, path string, err error) error {
	return &domain.ArtifactLoadError{Artifact: artifact, Path: path, Err: err}
}

func checkFinite(name string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s[%d] is not finite", name, i)
		}
	}
	return nil
}

func checkNames(names []string) error {
	if len(names) == 0 {
		return errors.New("feature_names_in is empty")
	}
	seen := make(map[string]struct{}, len(names))
	for i, n := range names {
		if n == "" {
			return fmt.Errorf("feature_names_in[%d] is empty", i)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("feature_names_in has duplicate %q", n)
		}
		seen[n] = struct{}{}
	}
	return nil
}

// Version identifies a scaler and model pair by the leading bytes of their
// digests. Scores cached under one version are never served for another.
func Version(s *Scaler, m *Model) string {
	return shortDigest(s.Digest()) + "-" + shortDigest(m.Digest())
}

func shortDigest(d string) string {
	if d == "" {
		return "mem"
	}
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
