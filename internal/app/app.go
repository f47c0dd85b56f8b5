package app

import (
	"log/slog"

	"github.com/heartmarshall/hindict/internal/config"
)

// Bootstrap loads configuration, applies non-empty log overrides from the
// command line, initializes the default logger and logs startup information.
func Bootstrap(configPath string, logOverride config.LogConfig) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	if logOverride.Level != "" {
		cfg.Log.Level = logOverride.Level
	}
	if logOverride.Format != "" {
		cfg.Log.Format = logOverride.Format
	}

	logger := NewLogger(cfg.Log)

	logger.Debug("starting",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	return cfg, logger, nil
}
