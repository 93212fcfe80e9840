package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		production bool
		enabled    zapcore.Level
		disabled   zapcore.Level
	}{
		{"debug development", "debug", false, zapcore.DebugLevel, zapcore.InvalidLevel},
		{"warn production", "warn", true, zapcore.WarnLevel, zapcore.InfoLevel},
		{"unknown falls back to info", "loud", true, zapcore.InfoLevel, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.level, tt.production)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			if tt.disabled != zapcore.InvalidLevel {
				assert.False(t, logger.Core().Enabled(tt.disabled))
			}
		})
	}
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	logger, err := New("info", true)
	require.NoError(t, err)
	assert.Same(t, logger, OrNop(logger))
}
