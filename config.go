package moodtrack

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config collects the assistant's tunables. Zero values fall back to defaults.
type Config struct {
	Lexicon  LexiconConfig  `yaml:"lexicon"`
	Tracking TrackingConfig `yaml:"tracking"`
	Composer ComposerConfig `yaml:"composer"`
	Storage  StorageConfig  `yaml:"storage"`

	// RequireProfile rejects messages until department and age group are set.
	RequireProfile bool `yaml:"requireProfile"`
}

// LexiconConfig points at optional override files.
type LexiconConfig struct {
	KeywordsPath string `yaml:"keywordsPath"`
	EmotionsPath string `yaml:"emotionsPath"`
}

// TrackingConfig sizes the history windows.
type TrackingConfig struct {
	HistoryWindow     int `yaml:"historyWindow"`     // turns loaded per message, default 10
	TrendWindow       int `yaml:"trendWindow"`       // prior bot responses inspected, default 3
	TopicLimit        int `yaml:"topicLimit"`        // past messages in topic consistency, default 5
	KeywordTrendLimit int `yaml:"keywordTrendLimit"` // default 10
}

// StorageConfig selects and configures a session repository.
type StorageConfig struct {
	Backend     string        `yaml:"backend"` // memory, redis or sqlite
	RedisURL    string        `yaml:"redisURL"`
	RedisPrefix string        `yaml:"redisPrefix"`
	RedisTTL    time.Duration `yaml:"redisTTL"`
	SQLitePath  string        `yaml:"sqlitePath"`
	MaxTurns    int           `yaml:"maxTurns"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	cfg := Config{
		Composer: DefaultComposerConfig(),
	}
	cfg.Defaults()
	return cfg
}

// Defaults fills zero values.
func (c *Config) Defaults() {
	if c.Tracking.HistoryWindow == 0 {
		c.Tracking.HistoryWindow = 10
	}
	if c.Tracking.TrendWindow == 0 {
		c.Tracking.TrendWindow = DefaultTrendWindow
	}
	if c.Tracking.TopicLimit == 0 {
		c.Tracking.TopicLimit = DefaultTopicLimit
	}
	if c.Tracking.KeywordTrendLimit == 0 {
		c.Tracking.KeywordTrendLimit = DefaultKeywordTrendLimit
	}
	if c.Composer.CheckInStreak == 0 {
		c.Composer.CheckInStreak = DefaultCheckInStreak
	}
	if c.Composer.EscalationStreak == 0 {
		c.Composer.EscalationStreak = DefaultEscalationStreak
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "memory"
	}
	if c.Storage.RedisURL == "" {
		c.Storage.RedisURL = "redis://localhost:6379"
	}
	if c.Storage.RedisPrefix == "" {
		c.Storage.RedisPrefix = "moodtrack"
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = "chat.db"
	}
	if c.Storage.MaxTurns == 0 {
		c.Storage.MaxTurns = 200
	}
}

// LoadConfig reads YAML configuration. A missing file yields defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Defaults()
	return cfg, nil
}
