package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/heat-risk-predictor/internal/domain"
	"github.com/couchcryptid/heat-risk-predictor/internal/observability"
)

// ResultCache memoizes scores by input key. Implementations must be safe for
// concurrent use.
type ResultCache interface {
	Get(ctx context.Context, key string) (score float64, ok bool, err error)
	Put(ctx context.Context, key string, score float64) error
}

// Artifacts is the fitted scaler and model pair the pipeline runs against.
// Version distinguishes cache entries between artifact deployments.
type Artifacts struct {
	Scaler  domain.Scaler
	Model   domain.Model
	Version string
}

// Error kinds reported on prediction_errors_total.
const (
	kindInvalidInput     = "invalid_input"
	kindArtifactMismatch = "artifact_mismatch"
	kindInternal         = "internal"
)

// Pipeline runs one form submission through collection, feature building,
// normalization, inference, and risk classification.
type Pipeline struct {
	collector *domain.InputCollector
	artifacts Artifacts
	cache     ResultCache
	logger    *slog.Logger
	metrics   *observability.Metrics

	ready    atomic.Bool
	mismatch atomic.Pointer[domain.ArtifactMismatchError]
}

// New creates a Pipeline. Pass a nil cache to score every submission.
func New(collector *domain.InputCollector, artifacts Artifacts, cache ResultCache, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		collector: collector,
		artifacts: artifacts,
		cache:     cache,
		logger:    logger,
		metrics:   metrics,
	}
}

// Presets exposes the preset registry backing the form.
func (p *Pipeline) Presets() *domain.PresetRegistry {
	return p.collector.Presets()
}

// ArtifactVersion returns the version of the loaded artifact pair.
func (p *Pipeline) ArtifactVersion() string {
	return p.artifacts.Version
}

// SelfCheck scores the default record once so that schema drift between the
// feature builder and the artifacts fails at startup instead of on the first
// submit. On success the pipeline reports ready.
func (p *Pipeline) SelfCheck(_ context.Context) error {
	score, err := p.score(domain.DefaultRecord())
	if err != nil {
		p.fail(err)
		return fmt.Errorf("self-check: %w", err)
	}
	p.ready.Store(true)
	p.metrics.ArtifactsLoaded.Set(1)
	p.logger.Info("artifact self-check passed",
		"artifact_version", p.artifacts.Version,
		"default_score", score,
		"default_tier", domain.ClassifyRisk(score).String(),
	)
	return nil
}

// CheckReadiness returns nil once SelfCheck has passed and no artifact
// mismatch has been seen since.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if m := p.mismatch.Load(); m != nil {
		return fmt.Errorf("artifacts unusable: %w", m)
	}
	if !p.ready.Load() {
		return errors.New("artifacts have not passed self-check yet")
	}
	return nil
}

// Predict handles one submit event. Input errors wrap domain.ErrUnknownPreset,
// domain.ErrUnknownField or domain.ErrUnknownLandCover; artifact drift is a
// *domain.ArtifactMismatchError and marks the pipeline not ready.
func (p *Pipeline) Predict(ctx context.Context, in domain.FormInput) (domain.PredictionResult, error) {
	start := time.Now()

	record, err := p.collector.Collect(in)
	if err != nil {
		p.metrics.PredictionErrors.WithLabelValues(kindInvalidInput).Inc()
		return domain.PredictionResult{}, err
	}

	key := p.artifacts.Version + "|" + record.Key()
	score, cached := p.lookup(ctx, key)
	if !cached {
		score, err = p.score(record)
		if err != nil {
			p.fail(err)
			return domain.PredictionResult{}, err
		}
		p.store(ctx, key, score)
	}

	result := domain.NewPredictionResult(strings.TrimSpace(in.Preset), record, score)
	result.Cached = cached

	p.metrics.Predictions.WithLabelValues(result.Tier.String()).Inc()
	p.metrics.PredictedScore.Observe(score)
	p.metrics.PredictionDuration.Observe(time.Since(start).Seconds())

	p.logger.Info("prediction complete",
		"prediction_id", result.ID,
		"preset", result.Preset,
		"score", score,
		"tier", result.Tier.String(),
		"cached", cached,
	)
	return result, nil
}

// score runs the pure stages: features, normalization, inference. The
// normalizer runs exactly once per call.
func (p *Pipeline) score(record domain.MeasurementRecord) (float64, error) {
	row := domain.BuildFeatures(record)
	scaled, err := domain.Normalize(row, p.artifacts.Scaler)
	if err != nil {
		return 0, err
	}
	return domain.Predict(scaled, p.artifacts.Model)
}

func (p *Pipeline) fail(err error) {
	var mismatch *domain.ArtifactMismatchError
	if errors.As(err, &mismatch) {
		p.metrics.PredictionErrors.WithLabelValues(kindArtifactMismatch).Inc()
		p.metrics.ArtifactsLoaded.Set(0)
		if p.mismatch.CompareAndSwap(nil, mismatch) {
			p.logger.Error("artifact mismatch, marking not ready", "error", err)
		}
		return
	}
	p.metrics.PredictionErrors.WithLabelValues(kindInternal).Inc()
	p.logger.Error("prediction failed", "error", err)
}

func (p *Pipeline) lookup(ctx context.Context, key string) (float64, bool) {
	if p.cache == nil {
		return 0, false
	}
	score, ok, err := p.cache.Get(ctx, key)
	switch {
	case err != nil:
		p.metrics.CacheLookups.WithLabelValues("error").Inc()
		p.logger.Warn("score cache lookup failed", "error", err)
		return 0, false
	case ok:
		p.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return score, true
	default:
		p.metrics.CacheLookups.WithLabelValues("miss").Inc()
		return 0, false
	}
}

func (p *Pipeline) store(ctx context.Context, key string, score float64) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Put(ctx, key, score); err != nil {
		p.logger.Warn("score cache store failed", "error", err)
	}
}
