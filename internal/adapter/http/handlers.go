package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/couchcryptid/heat-risk-predictor/internal/domain"
)

// Error kinds returned in {"error", "kind"} bodies.
const (
	kindInvalidRequest   = "invalid_request"
	kindUnknownPreset    = "unknown_preset"
	kindUnknownField     = "unknown_field"
	kindUnknownLandCover = "unknown_land_cover"
	kindArtifactMismatch = "artifact_mismatch"
	kindInternal         = "internal"
)

type formResponse struct {
	Fields           []domain.FieldSpec `json:"fields"`
	LandCovers       []domain.LandCover `json:"land_covers"`
	DefaultLandCover domain.LandCover   `json:"default_land_cover"`
	Presets          []string           `json:"presets"`
	Thresholds       riskThresholds     `json:"risk_thresholds"`
}

type riskThresholds struct {
	Moderate float64 `json:"moderate"`
	High     float64 `json:"high"`
}

type presetResponse struct {
	Name   string                   `json:"name"`
	Values domain.MeasurementRecord `json:"values"`
	Custom bool                     `json:"custom,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) handleForm(c *gin.Context) {
	c.JSON(http.StatusOK, formResponse{
		Fields:           domain.FieldSpecs(),
		LandCovers:       domain.LandCovers(),
		DefaultLandCover: domain.DefaultLandCover,
		Presets:          s.presets.Names(),
		Thresholds: riskThresholds{
			Moderate: domain.ModerateRiskThreshold,
			High:     domain.HighRiskThreshold,
		},
	})
}

func (s *Server) handleListPresets(c *gin.Context) {
	entries := s.presets.Entries()
	out := make([]presetResponse, 0, len(entries)+1)
	out = append(out, customPreset())
	for _, e := range entries {
		out = append(out, presetResponse{Name: e.Name, Values: e.Record})
	}
	c.JSON(http.StatusOK, gin.H{"presets": out})
}

func (s *Server) handleGetPreset(c *gin.Context) {
	name := c.Param("name")
	if name == domain.CustomPreset {
		c.JSON(http.StatusOK, customPreset())
		return
	}
	entry, ok := s.presets.Lookup(name)
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "preset not found: " + name, Kind: kindUnknownPreset})
		return
	}
	c.JSON(http.StatusOK, presetResponse{Name: entry.Name, Values: entry.Record})
}

func (s *Server) handlePredict(c *gin.Context) {
	var in domain.FormInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error(), Kind: kindInvalidRequest})
		return
	}

	result, err := s.predictor.Predict(c.Request.Context(), in)
	if err != nil {
		status, kind := classifyError(err)
		msg := err.Error()
		if status >= http.StatusInternalServerError {
			// Artifact column layouts and internal causes stay in the logs.
			s.logger.Error("prediction failed", "error", err, "kind", kind)
			msg = serverErrorMessage(kind)
		}
		c.JSON(status, errorResponse{Error: msg, Kind: kind})
		return
	}
	c.JSON(http.StatusOK, result)
}

func classifyError(err error) (int, string) {
	var mismatch *domain.ArtifactMismatchError
	switch {
	case errors.Is(err, domain.ErrUnknownPreset):
		return http.StatusBadRequest, kindUnknownPreset
	case errors.Is(err, domain.ErrUnknownField):
		return http.StatusBadRequest, kindUnknownField
	case errors.Is(err, domain.ErrUnknownLandCover):
		return http.StatusBadRequest, kindUnknownLandCover
	case errors.As(err, &mismatch):
		return http.StatusInternalServerError, kindArtifactMismatch
	default:
		return http.StatusInternalServerError, kindInternal
	}
}

func serverErrorMessage(kind string) string {
	if kind == kindArtifactMismatch {
		return "model artifacts do not match the feature layout"
	}
	return "internal error"
}

func customPreset() presetResponse {
	return presetResponse{Name: domain.CustomPreset, Values: domain.DefaultRecord(), Custom: true}
}
