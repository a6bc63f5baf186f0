package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"printit-bot/internal/config"
	"printit-bot/internal/export"
	"printit-bot/internal/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExportCmd() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every order to CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.Context(), format, out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", export.FormatCSV, "csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default print_jobs_<time>.<format>)")
	return cmd
}

func runExport(ctx context.Context, format, out string) error {
	format, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	if out == "" {
		out = export.FileName(format, time.Now().Format("20060102_150405"))
	}

	dbCfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Listing jobs never touches the cache.
	store, err := storage.NewPostgresStorage(ctx, *dbCfg, nil, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	jobs, err := store.ListJobs(ctx, storage.JobFilter{})
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := export.Write(f, format, jobs); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}

	logger.Info("Orders exported",
		zap.Int("jobs", len(jobs)),
		zap.String("format", format),
		zap.String("path", out))
	return nil
}
