package avro

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger returns a development-friendly zap.Logger: console-encoded,
// debug level. Callers embedding this package in a service typically pass
// their own *zap.Logger in instead; this exists for standalone use and
// tests.
func NewLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	return cfg.Build()
}

// RotatingFileConfig configures NewRotatingLogger's log destination.
type RotatingFileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// NewRotatingLogger returns a zap.Logger that writes JSON-encoded entries
// to a size- and age-rotated file, for long-running processes that would
// otherwise grow an unbounded log file across many decode sessions.
func NewRotatingLogger(cfg RotatingFileConfig, level zapcore.Level) *zap.Logger {
	rotator := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(rotator),
		level,
	)
	return zap.New(core)
}
