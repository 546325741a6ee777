package domain

import (
	"time"

	"github.com/google/uuid"
)

// PredictionResult is what the form displays after a submit.
type PredictionResult struct {
	ID          string            `json:"id"`
	Preset      string            `json:"preset"`
	Input       MeasurementRecord `json:"input"`
	Score       float64           `json:"score"`
	Tier        RiskTier          `json:"tier"`
	Advisory    string            `json:"advisory"`
	Cached      bool              `json:"cached"`
	PredictedAt time.Time         `json:"predicted_at"`
}

// NewPredictionResult classifies score and stamps the result with a fresh ID
// and the current time.
func NewPredictionResult(preset string, input MeasurementRecord, score float64) PredictionResult {
	tier := ClassifyRisk(score)
	if preset == "" {
		preset = CustomPreset
	}
	return PredictionResult{
		ID:          uuid.NewString(),
		Preset:      preset,
		Input:       input,
		Score:       score,
		Tier:        tier,
		Advisory:    tier.Advisory(),
		PredictedAt: clock.Now().UTC(),
	}
}
