package commands

import (
	"context"
	"fmt"

	"github.com/greysolve/outreach-console/config"
	"github.com/greysolve/outreach-console/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "outreachctl",
		Short:        "Cold outreach infrastructure console",
		SilenceUsage: true,
	}

	root.AddCommand(serveCmd(), estimateCmd(), migrateCmd(), tokenCmd())
	return root
}

// loadRuntime reads the environment configuration and builds the logger from it
func loadRuntime(ctx context.Context) (*config.Config, *zap.Logger, error) {
	cfg, err := config.New(ctx)
	if err != nil {
		return nil, nil, err
	}
	logger, err := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger, nil
}
