package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"teamboard/internal/config"
)

// New builds the process logger. Release mode writes JSON to stdout and a
// rotated file; anything else gets the colored development logger.
func New(cfg *config.Config) (*zap.Logger, error) {
	service := zap.Fields(zap.String("service", cfg.OTELServiceName))
	if os.Getenv("GIN_MODE") != "release" {
		devCfg := zap.NewDevelopmentConfig()
		devCfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.LogLevel, zap.DebugLevel))
		return devCfg.Build(service)
	}

	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     14,
			Compress:   true,
		}))
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.NewMultiWriteSyncer(sinks...),
		parseLevel(cfg.LogLevel, zap.InfoLevel),
	)
	return zap.New(core, zap.AddCaller(), service), nil
}

// parseLevel falls back when raw is empty or not a zap level name.
func parseLevel(raw string, fallback zapcore.Level) zapcore.Level {
	if raw == "" {
		return fallback
	}
	var level zapcore.Level
	if err := level.Set(raw); err != nil {
		return fallback
	}
	return level
}
