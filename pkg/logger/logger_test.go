package logger

import (
	"devcollab_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestUseRestoresPreviousLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := Use(zap.New(core))

	Log.Warn("rating update failed", zap.Uint("userId", 7))
	restore()
	Log.Warn("dropped")

	assert.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "rating update failed", entry.Message)
	assert.EqualValues(t, 7, entry.ContextMap()["userId"])
}

func TestLevel(t *testing.T) {
	tests := []struct {
		name  string
		mode  string
		level string
		want  zapcore.Level
	}{
		{"debug mode", "debug", "", zap.DebugLevel},
		{"release mode", "release", "", zap.InfoLevel},
		{"explicit level wins", "debug", "warn", zap.WarnLevel},
		{"unparsable level ignored", "release", "loud", zap.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.Mode = tt.mode
			cfg.Log.Level = tt.level
			assert.Equal(t, tt.want, Level(cfg))
		})
	}
}
