package domain

import (
	"fmt"
	"math"
	"slices"
)

// Model is a fitted single-output regressor loaded from an artifact.
type Model interface {
	// FeatureNames lists the columns the model was trained on, in order.
	FeatureNames() []string
	// Predict runs inference on one row given in FeatureNames order.
	Predict(features []float64) (float64, error)
}

// Predict runs model on row and returns the estimated mortality rate per
// 100k. A schema difference, a rejected row, or a non-finite output is an
// *ArtifactMismatchError.
func Predict(row ScaledFeatureRow, model Model) (float64, error) {
	if names := model.FeatureNames(); !slices.Equal(names, featureColumns[:]) {
		return 0, &ArtifactMismatchError{
			Artifact: "model",
			Expected: FeatureColumns(),
			Actual:   slices.Clone(names),
		}
	}

	score, err := model.Predict(row.Values())
	if err != nil {
		return 0, &ArtifactMismatchError{Artifact: "model", Err: err}
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, &ArtifactMismatchError{
			Artifact: "model",
			Err:      fmt.Errorf("non-finite prediction %v", score),
		}
	}
	return score, nil
}
