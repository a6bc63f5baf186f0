// Package cmd provides the printctl commands.
package cmd

import (
	"fmt"

	"printit-bot/internal/config"
	"printit-bot/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "printctl",
		Short: "Price print jobs and administer the print-order database",
		Long: `printctl prices print jobs offline and runs maintenance tasks
against the print-order database.

Examples:
  printctl estimate --pages 24 --preset report
  printctl estimate --pages 10 --color bw --override basePerPageBW=2
  printctl tier 620
  printctl migrate up
  printctl export --format xlsx --out orders.xlsx`,
		SilenceUsage: true,
	}

	root.AddCommand(newEstimateCmd())
	root.AddCommand(newTierCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newExportCmd())
	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// newLogger builds the logger for commands that touch the database.
func newLogger() (*zap.Logger, error) {
	cfg, err := config.LoadLog()
	if err != nil {
		return nil, err
	}
	l, err := logger.New(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return l, nil
}
