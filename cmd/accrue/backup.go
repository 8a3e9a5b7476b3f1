package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshot and restore the database",
	}

	cmd.AddCommand(backupCreateCmd())
	cmd.AddCommand(backupRestoreCmd())

	return cmd
}

func backupCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [FILE]",
		Short: "Write a consistent snapshot of the database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, closeLedger, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			dest := fmt.Sprintf("accrue-backup-%s.db", time.Now().Format("20060102-150405"))
			if len(args) == 1 {
				dest = args[0]
			}

			if err := eng.Backup(ctx, dest); err != nil {
				return err
			}
			fmt.Printf("Backup written to %s\n", dest)
			return nil
		},
	}
	return cmd
}

func backupRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore FILE",
		Short: "Replace the database with a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return fmt.Errorf("restore replaces all current data; rerun with --force to confirm")
			}

			eng, closeLedger, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			if err := eng.Restore(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Database restored from %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "confirm replacing the current database")
	return cmd
}
