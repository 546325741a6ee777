package observability

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/couchcryptid/heat-risk-predictor/internal/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout points os.Stdout at a pipe while build runs so the handler
// created inside it writes to the returned buffer once done is called.
func captureStdout(t *testing.T, build func()) (done func() string) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w
	build()
	os.Stdout = orig

	return func() string {
		require.NoError(t, w.Close())
		out, err := io.ReadAll(r)
		require.NoError(t, err)
		return string(out)
	}
}

func restoreDefaultLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestNewLogger_JSON(t *testing.T) {
	restoreDefaultLogger(t)

	var logger *slog.Logger
	done := captureStdout(t, func() {
		logger = NewLogger(&config.Config{LogLevel: "info", LogFormat: "json"})
	})

	logger.Debug("hidden")
	logger.Info("prediction complete", "tier", "High")

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(done()), &line))
	assert.Equal(t, "prediction complete", line["msg"])
	assert.Equal(t, "High", line["tier"])
	assert.Equal(t, "heat-risk-predictor", line["service"])
}

func TestNewLogger_TextDebug(t *testing.T) {
	restoreDefaultLogger(t)

	var logger *slog.Logger
	done := captureStdout(t, func() {
		logger = NewLogger(&config.Config{LogLevel: "debug", LogFormat: "text"})
	})

	logger.Debug("cache miss")
	out := done()
	assert.Contains(t, out, "msg=\"cache miss\"")
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "service=heat-risk-predictor")
}

func TestNewLogger_InstallsDefault(t *testing.T) {
	restoreDefaultLogger(t)

	var logger *slog.Logger
	done := captureStdout(t, func() {
		logger = NewLogger(&config.Config{LogLevel: "warn", LogFormat: "json"})
	})
	defer done()

	assert.Same(t, logger, slog.Default())
	ctx := context.Background()
	assert.False(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.True(t, logger.Enabled(ctx, slog.LevelWarn))
}

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.Predictions.WithLabelValues("High").Inc()
	a.ArtifactsLoaded.Set(1)

	assert.InDelta(t, 1, testutil.ToFloat64(a.Predictions.WithLabelValues("High")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.Predictions.WithLabelValues("High")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(a.ArtifactsLoaded), 0)
}
