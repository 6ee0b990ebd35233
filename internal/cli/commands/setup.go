package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/introspect/internal/cli/config"
	"github.com/leapstack-labs/introspect/internal/cli/output"
	"github.com/leapstack-labs/introspect/internal/engine"

	// Register every supported adapter.
	_ "github.com/leapstack-labs/introspect/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/introspect/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/introspect/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/introspect/pkg/adapters/sqlite"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
// The database URL must be configured; the connection itself is opened
// lazily by the engine. Returns the context and a cleanup function that must
// be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig(cmd.Context())
	if err := cfg.RequireDatabaseURL(); err != nil {
		return nil, nil, err
	}

	logger := config.GetLogger(cmd.Context())

	eng := engine.New(engine.Config{
		AdapterConfig: cfg.AdapterConfig(),
		OutputDir:     cfg.OutDir,
		Logger:        logger,
	})

	cleanup := func() {
		_ = eng.Close()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   eng,
		Renderer: newRenderer(cmd, cfg),
	}, cleanup, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
// Useful for commands that don't need database access.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig(cmd.Context())
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: newRenderer(cmd, cfg),
	}
}

// newRenderer prefers the renderer the root command stored in the context.
func newRenderer(cmd *cobra.Command, cfg *config.Config) *output.Renderer {
	if r := output.FromContext(cmd.Context()); r != nil {
		return r
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
}

// getConfig returns the configuration loaded by the root command.
// Commands run outside the root (tests) fall back to environment variables.
func getConfig(ctx context.Context) *config.Config {
	if cfg := config.FromContext(ctx); cfg != nil {
		return cfg
	}

	databaseURL := os.Getenv(config.EnvPrefix + "DATABASE_URL")
	if databaseURL == "" {
		databaseURL = os.Getenv(config.DatabaseURLEnv)
	}

	return &config.Config{
		DatabaseURL:  databaseURL,
		OutDir:       getEnvOrDefault(config.EnvPrefix+"OUT_DIR", config.DefaultOutDir),
		Schema:       os.Getenv(config.EnvPrefix + "SCHEMA"),
		Verbose:      os.Getenv(config.EnvPrefix+"VERBOSE") == "true",
		LogFormat:    getEnvOrDefault(config.EnvPrefix+"LOG_FORMAT", config.DefaultLogFormat),
		OutputFormat: getEnvOrDefault(config.EnvPrefix+"OUTPUT", config.DefaultOutput),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
