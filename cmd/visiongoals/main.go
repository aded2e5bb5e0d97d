package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arnold/visiongoals/internal/config"
	"github.com/arnold/visiongoals/internal/database"
	"github.com/arnold/visiongoals/internal/remote"
	"github.com/arnold/visiongoals/internal/services"
	"github.com/arnold/visiongoals/internal/storage"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "visiongoals",
	Short: "Personal goal tracker with an optional Supabase mirror",
	Long: `visiongoals keeps a list of personal goals with progress tracking.

Goals live in a local key-value store (sqlite by default, postgres when
DATABASE_URL is a postgres DSN). A Supabase table can be configured as a
manual backup target with push and pull.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()

		zcfg := zap.NewProductionConfig()
		if cfg.Debug() {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// deps is the object graph every command works against.
type deps struct {
	store *storage.LocalStore
	goals *services.GoalService
	sync  *services.SyncService
}

func bootstrap(seed bool) (*deps, error) {
	kv, err := database.OpenKeyValue(cfg)
	if err != nil {
		// Keep running without durable storage, as a browser without
		// localStorage would.
		logger.Error("opening local storage failed", zap.String("url", cfg.DatabaseURL), zap.Error(err))
		kv = nil
	}
	store := storage.NewLocalStore(kv, logger.Named("local"))

	if err := seedCredentials(store); err != nil {
		logger.Warn("could not store remote credentials from environment", zap.Error(err))
	}

	goals := services.NewGoalService(store, logger.Named("goals"))
	if err := goals.Init(seed); err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}

	mirror := remote.New(store, cfg.RemoteTimeout, logger.Named("remote"))
	return &deps{
		store: store,
		goals: goals,
		sync:  services.NewSyncService(goals, mirror, logger.Named("sync")),
	}, nil
}

// seedCredentials stores SUPABASE_URL/SUPABASE_KEY when the store has none yet.
func seedCredentials(store *storage.LocalStore) error {
	env := storage.Credentials{URL: cfg.RemoteURL, Key: cfg.RemoteKey}
	if !env.Complete() || !store.Available() {
		return nil
	}
	current, err := store.Credentials()
	if err != nil {
		return err
	}
	if current.Complete() {
		return nil
	}
	return store.SetCredentials(env)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
