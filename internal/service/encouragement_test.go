package service

import (
	"devcollab_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncouragementThresholds(t *testing.T) {
	cfg := config.DefaultEngineConfig()

	tests := []struct {
		failed int64
		want   string
	}{
		{0, ""},
		{6, ""},
		{7, encourageFirstMessage},
		{8, ""},
		{10, encourageSecondMessage},
		{11, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EncouragementFor(tt.failed, cfg), "failed=%d", tt.failed)
	}

	cfg.EncourageFirstAt, cfg.EncourageSecondAt = 2, 4
	assert.Equal(t, encourageFirstMessage, EncouragementFor(2, cfg))
	assert.Empty(t, EncouragementFor(7, cfg))
}
