package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/accrue-app/accrue/internal/model"
)

func transfersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transfers",
		Aliases: []string{"transfer"},
		Short:   "Move money between accounts",
	}

	cmd.AddCommand(transfersListCmd())
	cmd.AddCommand(transfersAddCmd())
	cmd.AddCommand(transfersDeleteCmd())

	return cmd
}

func transfersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List transfers, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, closeLedger, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			transfers, err := eng.ListTransfers(ctx)
			if err != nil {
				return err
			}
			if len(transfers) == 0 {
				fmt.Println("No transfers yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tFROM\tTO\tAMOUNT\tTYPE\tNOTES")
			for _, transfer := range transfers {
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\t%s\n",
					transfer.ID, transfer.Date, transfer.FromAccountID,
					transfer.ToAccountID, money(transfer.Amount), transfer.Type,
					transfer.Notes)
			}
			return w.Flush()
		},
	}
}

func transfersAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add AMOUNT",
		Short: "Create a transfer with both legs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, closeLedger, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			dateRaw, _ := cmd.Flags().GetString("date")
			date, err := parseDateFlag(dateRaw)
			if err != nil {
				return err
			}

			from, _ := cmd.Flags().GetInt64("from")
			to, _ := cmd.Flags().GetInt64("to")
			notes, _ := cmd.Flags().GetString("notes")
			transferType, _ := cmd.Flags().GetString("type")

			transfer, err := eng.CreateTransfer(ctx, model.TransferFields{
				FromAccountID: from,
				ToAccountID:   to,
				Amount:        amount,
				Date:          date,
				Notes:         notes,
				Type:          model.TransferType(transferType),
			})
			if err != nil {
				return err
			}
			fmt.Printf("Transferred %s from account %d to account %d (id %d)\n",
				money(transfer.Amount), transfer.FromAccountID, transfer.ToAccountID, transfer.ID)
			return nil
		},
	}

	cmd.Flags().Int64("from", 0, "source account id (required)")
	cmd.Flags().Int64("to", 0, "destination account id (required)")
	cmd.Flags().String("date", "", "date YYYY-MM-DD (default today)")
	cmd.Flags().String("notes", "", "free-form notes")
	cmd.Flags().String("type", "regular", "transfer type (regular, credit_payment)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func transfersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a transfer and both of its legs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, closeLedger, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := eng.DeleteTransfer(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Deleted transfer %d and its legs\n", id)
			return nil
		},
	}
}
