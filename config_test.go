package moodtrack

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 10, cfg.Tracking.HistoryWindow)
	assert.Equal(t, DefaultTrendWindow, cfg.Tracking.TrendWindow)
	assert.Equal(t, DefaultTopicLimit, cfg.Tracking.TopicLimit)
	assert.Equal(t, DefaultCheckInStreak, cfg.Composer.CheckInStreak)
	assert.Equal(t, DefaultEscalationStreak, cfg.Composer.EscalationStreak)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.False(t, cfg.RequireProfile)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moodtrack.yaml")
	data := `
requireProfile: true
tracking:
  topicLimit: 8
composer:
  escalationStreak: 6
storage:
  backend: redis
  redisTTL: 24h
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.RequireProfile)
	assert.Equal(t, 8, cfg.Tracking.TopicLimit)
	assert.Equal(t, 10, cfg.Tracking.HistoryWindow)
	assert.Equal(t, 6, cfg.Composer.EscalationStreak)
	assert.Equal(t, DefaultCheckInStreak, cfg.Composer.CheckInStreak)
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Storage.RedisTTL)
	assert.Equal(t, "moodtrack", cfg.Storage.RedisPrefix)
}

func TestLoadConfig_MissingAndInvalid(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tracking: [1, 2"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}
