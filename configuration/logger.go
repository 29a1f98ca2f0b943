package configuration

import (
	"go.uber.org/zap"
)

// NewLogger builds the process logger: JSON in production, console elsewhere.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
