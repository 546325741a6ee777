package observability

import (
	"log/slog"

	"github.com/couchcryptid/heat-risk-predictor/internal/config"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT, tags
// every record with the service name, and installs it as the slog default.
func NewLogger(cfg *config.Config) *slog.Logger {
	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat).With("service", "heat-risk-predictor")
	slog.SetDefault(logger)
	return logger
}
