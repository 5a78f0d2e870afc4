package commands

import (
	"errors"
	"fmt"

	"github.com/greysolve/outreach-console/repositories/postgres"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, logger, err := loadRuntime(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if !cfg.Database.Configured() {
				return errors.New("no database configured: set DATABASE_URL or DB_HOST")
			}

			db, err := postgres.NewDB(cfg.Database, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Migrate(ctx); err != nil {
				return err
			}
			logger.Info("migrations applied", zap.String("connection", cfg.Database.LogString()))
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
