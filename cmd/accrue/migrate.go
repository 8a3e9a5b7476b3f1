package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// initLedger migrates on open; this command exists so the
			// operation can be run (and observed) explicitly.
			_, closeLedger, err := initLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeLedger()

			fmt.Println("Database schema is up to date.")
			return nil
		},
	}
}
