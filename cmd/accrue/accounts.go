package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/accrue-app/accrue/internal/model"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account", "acc"},
		Short:   "Manage ledger accounts",
	}

	cmd.AddCommand(accountsListCmd())
	cmd.AddCommand(accountsAddCmd())
	cmd.AddCommand(accountsEditCmd())
	cmd.AddCommand(accountsArchiveCmd())
	cmd.AddCommand(accountsRestoreCmd())
	cmd.AddCommand(accountsHistoryCmd())

	return cmd
}

func accountsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts with current balances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, closeLedger, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			all, _ := cmd.Flags().GetBool("all")
			accounts, err := eng.AccountsWithBalances(ctx, !all)
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				fmt.Println("No accounts yet. Create one with 'accrue accounts add'.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tCURRENCY\tBALANCE\tACTIVE")
			for _, account := range accounts {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%t\n",
					account.ID, account.Name, account.Type, account.Currency,
					money(account.Balance), account.IsActive)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Bool("all", false, "include archived accounts")
	return cmd
}

func accountsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, closeLedger, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			fields, err := accountFieldsFromFlags(cmd, args[0])
			if err != nil {
				return err
			}

			account, err := eng.CreateAccount(ctx, fields)
			if err != nil {
				return err
			}
			fmt.Printf("Created account %d: %s (%s)\n", account.ID, account.Name, account.Type)
			return nil
		},
	}
	addAccountFlags(cmd)
	return cmd
}

func accountsEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit ID NAME",
		Short: "Replace an account's fields",
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
			fields, err := accountFieldsFromFlags(cmd, args[1])
			if err != nil {
				return err
			}

			account, err := eng.UpdateAccount(ctx, id, fields)
			if err != nil {
				return err
			}
			fmt.Printf("Updated account %d: %s\n", account.ID, account.Name)
			return nil
		},
	}
	addAccountFlags(cmd)
	return cmd
}

func addAccountFlags(cmd *cobra.Command) {
	cmd.Flags().String("type", "cash", "account type (cash, debit, credit, savings, investment)")
	cmd.Flags().String("subtype", "", "free-form subtype label")
	cmd.Flags().String("currency", "USD", "currency code")
	cmd.Flags().String("opening-balance", "0", "opening balance")
	cmd.Flags().String("credit-limit", "", "credit limit (credit accounts only)")
	cmd.Flags().Int("billing-day", 0, "billing cycle day 1-31 (credit accounts only)")
	cmd.Flags().Int("due-day", 0, "payment due day 1-31 (credit accounts only)")
}

func accountFieldsFromFlags(cmd *cobra.Command, name string) (model.AccountFields, error) {
	accountType, _ := cmd.Flags().GetString("type")
	subtype, _ := cmd.Flags().GetString("subtype")
	currency, _ := cmd.Flags().GetString("currency")
	openingRaw, _ := cmd.Flags().GetString("opening-balance")

	opening, err := parseAmount(openingRaw)
	if err != nil {
		return model.AccountFields{}, err
	}

	fields := model.AccountFields{
		Name:           name,
		Type:           model.AccountType(accountType),
		Subtype:        subtype,
		Currency:       currency,
		OpeningBalance: opening,
	}

	if raw, _ := cmd.Flags().GetString("credit-limit"); raw != "" {
		limit, err := parseAmount(raw)
		if err != nil {
			return model.AccountFields{}, err
		}
		fields.CreditLimit = &limit
	}
	if day, _ := cmd.Flags().GetInt("billing-day"); day != 0 {
		fields.BillingCycleDay = &day
	}
	if day, _ := cmd.Flags().GetInt("due-day"); day != 0 {
		fields.PaymentDueDay = &day
	}
	return fields, nil
}

func accountsArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive an account",
		Args:  cobra.ExactArgs(1),
		RunE:  setAccountActiveRunE(false),
	}
}

func accountsRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore ID",
		Short: "Restore an archived account",
		Args:  cobra.ExactArgs(1),
		RunE:  setAccountActiveRunE(true),
	}
}

func setAccountActiveRunE(active bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
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
		if err := eng.SetAccountActive(ctx, id, active); err != nil {
			return err
		}
		state := "archived"
		if active {
			state = "restored"
		}
		fmt.Printf("Account %d %s\n", id, state)
		return nil
	}
}

func accountsHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history ID",
		Short: "Show an account's running balance history",
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
			history, err := eng.AccountHistory(ctx, id)
			if err != nil {
				return err
			}
			if len(history) == 0 {
				fmt.Println("No transactions on this account.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tTYPE\tAMOUNT\tBALANCE\tNOTES")
			for _, entry := range history {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					entry.Transaction.Date, entry.Transaction.Type,
					money(entry.Transaction.Amount), money(entry.Balance),
					entry.Transaction.Notes)
			}
			return w.Flush()
		},
	}
}
