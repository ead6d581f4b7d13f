package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/stoich/internal/cli/config"
	"github.com/leapstack-labs/stoich/internal/cli/output"
	"github.com/leapstack-labs/stoich/internal/elements"
	"github.com/leapstack-labs/stoich/internal/molecule"
	"github.com/leapstack-labs/stoich/internal/state"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    *state.SQLiteStore
	Elements *elements.Source
	Service  *molecule.Service
	Renderer *output.Renderer
}

// NewCommandContext opens the state database, resolves the element table and
// builds the molecule service.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := openStore(ctx, cfg.StatePath, logger)
	if err != nil {
		return nil, nil, err
	}

	src, err := resolveElements(ctx, cfg, store, logger)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close state database", "error", err)
		}
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Store:    store,
		Elements: src,
		Service:  molecule.NewService(src, store, logger),
		Renderer: newRenderer(cmd, cfg),
	}, cleanup, nil
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	cfg := config.Default()
	cfg.StatePath = getEnvOrDefault(config.EnvPrefix+"STATE_PATH", config.DefaultStateFile)
	cfg.ElementsFile = os.Getenv(config.EnvPrefix + "ELEMENTS_FILE")
	cfg.OutputFormat = getEnvOrDefault(config.EnvPrefix+"OUTPUT", config.DefaultOutput)
	cfg.Verbose = os.Getenv(config.EnvPrefix+"VERBOSE") == "true"
	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func newRenderer(cmd *cobra.Command, cfg *config.Config) *output.Renderer {
	mode := output.Mode(cfg.OutputFormat)
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode).WithPrecision(cfg.Precision)
}

func openStore(ctx context.Context, path string, logger *slog.Logger) (*state.SQLiteStore, error) {
	// Ensure state directory exists
	if path != ":memory:" {
		stateDir := filepath.Dir(path)
		if stateDir != "." && stateDir != "" {
			if err := os.MkdirAll(stateDir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create state directory: %w", err)
			}
		}
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(path); err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate state database: %w", err)
	}
	return store, nil
}

// resolveElements returns the element table source. A configured file wins;
// otherwise the database table is used, seeded from the built-in periodic
// table on first use.
func resolveElements(ctx context.Context, cfg *config.Config, store *state.SQLiteStore, logger *slog.Logger) (*elements.Source, error) {
	if cfg.ElementsFile != "" {
		return elements.NewFileSource(cfg.ElementsFile, logger)
	}

	n, err := store.CountElements(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		seeded, err := store.SeedElements(ctx, elements.DefaultElements())
		if err != nil {
			return nil, fmt.Errorf("failed to seed element table: %w", err)
		}
		logger.Debug("seeded element table", "elements", seeded)
	}

	tbl, err := store.LoadElements(ctx)
	if err != nil {
		return nil, err
	}
	return elements.NewStaticSource(tbl), nil
}
