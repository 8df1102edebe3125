package logging

import (
	"go.uber.org/zap"
)

// NewLogger собирает production-логгер со структурированным выводом.
func NewLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	return cfg.Build()
}
