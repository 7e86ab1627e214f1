package configwatcher

import (
	"context"
	"devcollab_backend/internal/config"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchConfigReloadsEngineSettings(t *testing.T) {
	debounce = 50 * time.Millisecond

	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("engine:\n  pass_threshold: 70\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, file, func(cfg *config.Config) { reloaded <- cfg })
	}()

	// 等待 watcher 注册完成后再修改
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(file, []byte("engine:\n  pass_threshold: 85\n"), 0o644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 85, cfg.Engine.PassThreshold)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
