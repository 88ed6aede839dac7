// Package logging builds the zap logger shared by the server and the CLI tools.
package logging

import (
	"go.uber.org/zap"

	"cadtools/internal/config"
)

// New creates a logger from the log settings. Format "console" selects the
// development encoder; anything else logs JSON. An unknown level falls back to info.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Development() {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", "cadtools")), nil
}

// Must is New for binaries that cannot continue without a logger.
func Must(cfg config.LogConfig) *zap.Logger {
	logger, err := New(cfg)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
