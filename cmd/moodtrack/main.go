package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	moodtrack "github.com/cyberFlowTech/moodtrack-go"
	"github.com/cyberFlowTech/moodtrack-go/store"
)

var (
	// Global flags
	verbose    bool
	configPath string
	backend    string

	logger *zap.Logger
	cfg    moodtrack.Config
)

var rootCmd = &cobra.Command{
	Use:   "moodtrack",
	Short: "Rule-based mood tracking assistant",
	Long: `moodtrack classifies Japanese chat messages as stressed, positive or neutral,
watches for crisis and harassment language, and replies with context-aware
encouragement, advice and support resources.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = moodtrack.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if backend != "" {
			cfg.Storage.Backend = backend
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "moodtrack.yaml", "config file (optional)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "session storage: memory, redis or sqlite (overrides config)")

	rootCmd.AddCommand(classifyCmd, chatCmd, trendCmd, profileCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// openRepository builds the configured SessionRepository. The returned
// closer releases the backing connection.
func openRepository(ctx context.Context) (moodtrack.SessionRepository, func() error, error) {
	st := cfg.Storage
	switch st.Backend {
	case "memory":
		return moodtrack.NewInMemorySessionRepository(st.MaxTurns), func() error { return nil }, nil
	case "redis":
		repo, err := store.NewRedisSessionRepositoryFromURL(ctx, st.RedisURL, store.RedisStoreConfig{
			Prefix:   st.RedisPrefix,
			TTL:      st.RedisTTL,
			MaxTurns: st.MaxTurns,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("connected to redis", zap.String("url", st.RedisURL))
		return repo, repo.Close, nil
	case "sqlite":
		db, err := store.OpenSQLite(st.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo, err := store.NewSQLiteSessionRepository(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("opened sqlite", zap.String("path", st.SQLitePath))
		return repo, repo.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", st.Backend)
	}
}

// newAssistant opens the repository and wires the pipeline.
func newAssistant(ctx context.Context) (*moodtrack.Assistant, func() error, error) {
	repo, closeRepo, err := openRepository(ctx)
	if err != nil {
		return nil, nil, err
	}
	a, err := moodtrack.NewAssistant(cfg, repo, moodtrack.WithLogger(logger))
	if err != nil {
		closeRepo()
		return nil, nil, err
	}
	a.Use(moodtrack.LoggingMiddleware(logger.Named("pipeline")))
	return a, closeRepo, nil
}
