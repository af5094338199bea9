package utils

import (
	"go.uber.org/zap"
)

// NewLogger builds a console logger in development and a JSON logger otherwise.
func NewLogger(cfg Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
