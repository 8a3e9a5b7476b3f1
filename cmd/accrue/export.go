package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/accrue-app/accrue/internal/ledger"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export all transactions to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, closeLedger, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			count, err := exportToFile(ctx, eng, args[0], os.Stderr)
			if err != nil {
				return err
			}

			fmt.Printf("Exported %d transactions to %s\n", count, args[0])
			return nil
		},
	}
	return cmd
}

// exportToFile streams the CSV export to a temporary file next to destPath
// and renames it into place once complete. A failure mid-stream never
// leaves a partial file at the destination.
func exportToFile(ctx context.Context, eng *ledger.Ledger, destPath string, progressOut io.Writer) (int, error) {
	tmpPath := destPath + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create export file: %w", err)
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Exporting transactions"),
		progressbar.OptionSetWriter(progressOut),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)

	count, err := eng.ExportCSV(ctx, io.MultiWriter(file, bar))
	if err != nil {
		_ = file.Close()
		_ = os.Remove(tmpPath)
		return 0, err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to finish export file: %w", err)
	}
	_ = bar.Finish()

	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to finalize export file: %w", err)
	}
	return count, nil
}
