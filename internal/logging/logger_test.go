package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"teamboard/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback zapcore.Level
		expected zapcore.Level
	}{
		{name: "empty", raw: "", fallback: zapcore.InfoLevel, expected: zapcore.InfoLevel},
		{name: "warn", raw: "warn", fallback: zapcore.InfoLevel, expected: zapcore.WarnLevel},
		{name: "upper case", raw: "ERROR", fallback: zapcore.InfoLevel, expected: zapcore.ErrorLevel},
		{name: "invalid", raw: "loud", fallback: zapcore.DebugLevel, expected: zapcore.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, parseLevel(tt.raw, tt.fallback))
		})
	}
}

func TestNewDevelopmentLogger(t *testing.T) {
	t.Setenv("GIN_MODE", "debug")

	logger, err := New(&config.Config{LogLevel: "warn"})
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	require.False(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestNewReleaseLoggerWritesRotatedFile(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	path := filepath.Join(t.TempDir(), "logs", "teamboard.log")

	logger, err := New(&config.Config{LogFile: path, OTELServiceName: "teamboard"})
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger.Info("broadcast finished")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"msg":"broadcast finished"`)
	require.Contains(t, string(raw), `"service":"teamboard"`)
}
