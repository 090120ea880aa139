package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NOOPLogger discards everything. Components fall back to it when no
// logger is wired in, which keeps tests quiet.
var NOOPLogger = zap.NewNop().Sugar()

// New builds a sugared logger for env. "local" gets colored console output
// at debug level, everything else JSON at info level.
func New(env string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if env == "local" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar().With("env", env), nil
}
