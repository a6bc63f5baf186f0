package cmd

import (
	"context"
	"fmt"

	"printit-bot/internal/config"
	"printit-bot/internal/storage"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down|status",
		Short:     "Apply, roll back or inspect database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), args[0])
		},
	}
}

func runMigrate(ctx context.Context, direction string) error {
	dbCfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := storage.Connect(ctx, *dbCfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	switch direction {
	case "up":
		return storage.RunMigrations(ctx, db.DB, logger)
	case "down":
		return storage.RollbackMigration(ctx, db.DB, logger)
	case "status":
		return storage.MigrationStatus(ctx, db.DB, logger)
	default:
		return fmt.Errorf("unknown migrate direction %q", direction)
	}
}
