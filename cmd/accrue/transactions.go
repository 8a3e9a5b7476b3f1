package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/accrue-app/accrue/internal/model"
	"github.com/accrue-app/accrue/internal/service"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"txn", "tx"},
		Short:   "Manage ledger transactions",
	}

	cmd.AddCommand(transactionsListCmd())
	cmd.AddCommand(transactionsAddCmd())
	cmd.AddCommand(transactionsEditCmd())
	cmd.AddCommand(transactionsDeleteCmd())

	return cmd
}

func transactionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, closeLedger, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			filter, err := filterFromFlags(cmd)
			if err != nil {
				return err
			}
			transactions, err := eng.ListTransactions(ctx, filter)
			if err != nil {
				return err
			}
			if len(transactions) == 0 {
				fmt.Println("No matching transactions.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tACCOUNT\tCATEGORY\tTYPE\tAMOUNT\tNOTES")
			for _, txn := range transactions {
				notes := txn.Notes
				if txn.IsTransferLeg() {
					notes = "[transfer] " + notes
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					txn.ID, txn.Date, txn.AccountName, txn.CategoryName,
					txn.Type, money(txn.Amount), notes)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int64("account", 0, "filter by account id")
	cmd.Flags().Int64("category", 0, "filter by category id")
	cmd.Flags().String("type", "", "filter by type (income, expense)")
	cmd.Flags().String("from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().String("search", "", "match notes, account or category names")
	cmd.Flags().Int("limit", 0, "maximum rows (default 500)")
	return cmd
}

func filterFromFlags(cmd *cobra.Command) (service.TransactionFilter, error) {
	var filter service.TransactionFilter

	if id, _ := cmd.Flags().GetInt64("account"); id != 0 {
		filter.AccountID = &id
	}
	if id, _ := cmd.Flags().GetInt64("category"); id != 0 {
		filter.CategoryID = &id
	}
	if raw, _ := cmd.Flags().GetString("type"); raw != "" {
		txnType := model.TransactionType(raw)
		filter.Type = &txnType
	}
	if raw, _ := cmd.Flags().GetString("from"); raw != "" {
		date, err := model.ParseDate(raw)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &date
	}
	if raw, _ := cmd.Flags().GetString("to"); raw != "" {
		date, err := model.ParseDate(raw)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &date
	}
	filter.Search, _ = cmd.Flags().GetString("search")
	filter.Limit, _ = cmd.Flags().GetInt("limit")
	return filter, nil
}

func transactionsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add AMOUNT",
		Short: "Record a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, closeLedger, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			fields, err := transactionFieldsFromFlags(cmd, args[0])
			if err != nil {
				return err
			}
			txn, err := eng.CreateTransaction(ctx, fields)
			if err != nil {
				return err
			}
			fmt.Printf("Recorded %s of %s on %s (id %d)\n",
				txn.Type, money(txn.Amount), txn.AccountName, txn.ID)
			return nil
		},
	}
	addTransactionFlags(cmd)
	return cmd
}

func transactionsEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit ID AMOUNT",
		Short: "Replace a transaction's fields",
		Args:  cobra.ExactArgs(2),
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
			fields, err := transactionFieldsFromFlags(cmd, args[1])
			if err != nil {
				return err
			}
			txn, err := eng.UpdateTransaction(ctx, id, fields)
			if err != nil {
				return err
			}
			fmt.Printf("Updated transaction %d\n", txn.ID)
			return nil
		},
	}
	addTransactionFlags(cmd)
	return cmd
}

func addTransactionFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("account", 0, "account id (required)")
	cmd.Flags().Int64("category", 0, "category id")
	cmd.Flags().String("type", "expense", "transaction type (income, expense)")
	cmd.Flags().String("date", "", "date YYYY-MM-DD (default today)")
	cmd.Flags().String("notes", "", "free-form notes")
	cmd.Flags().Bool("recurring", false, "mark as recurring")
	cmd.Flags().String("frequency", "", "recurrence frequency (daily, weekly, monthly, yearly)")
	cmd.Flags().String("next-due", "", "next due date YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("account")
}

func transactionFieldsFromFlags(cmd *cobra.Command, amountRaw string) (model.TransactionFields, error) {
	amount, err := parseAmount(amountRaw)
	if err != nil {
		return model.TransactionFields{}, err
	}

	dateRaw, _ := cmd.Flags().GetString("date")
	date, err := parseDateFlag(dateRaw)
	if err != nil {
		return model.TransactionFields{}, err
	}

	txnType, _ := cmd.Flags().GetString("type")
	notes, _ := cmd.Flags().GetString("notes")
	accountID, _ := cmd.Flags().GetInt64("account")
	recurring, _ := cmd.Flags().GetBool("recurring")
	frequency, _ := cmd.Flags().GetString("frequency")

	fields := model.TransactionFields{
		AccountID:           accountID,
		Type:                model.TransactionType(txnType),
		Amount:              amount,
		Date:                date,
		Notes:               notes,
		IsRecurring:         recurring,
		RecurrenceFrequency: model.RecurrenceFrequency(frequency),
	}

	if id, _ := cmd.Flags().GetInt64("category"); id != 0 {
		fields.CategoryID = &id
	}
	if raw, _ := cmd.Flags().GetString("next-due"); raw != "" {
		due, err := model.ParseDate(raw)
		if err != nil {
			return model.TransactionFields{}, err
		}
		fields.NextDueDate = &due
	}
	return fields, nil
}

func transactionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a standalone transaction",
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
			if err := eng.DeleteTransaction(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Deleted transaction %d\n", id)
			return nil
		},
	}
}
