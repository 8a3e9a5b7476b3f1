package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all ledger data and reinstall default categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, closeLedger, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			counts, err := eng.RowCounts(ctx)
			if err != nil {
				return err
			}

			force, _ := cmd.Flags().GetBool("force")
			if !force {
				fmt.Printf("This deletes %d accounts, %d categories, %d transactions and %d transfers.\n",
					counts["accounts"], counts["categories"], counts["transactions"], counts["transfers"])
				return fmt.Errorf("rerun with --force to confirm")
			}

			if err := eng.Reset(ctx); err != nil {
				return err
			}
			fmt.Println("Ledger reset. Default categories reinstalled.")
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "confirm deleting all data")
	return cmd
}
