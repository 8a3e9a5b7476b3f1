package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregated views over the ledger",
	}

	cmd.AddCommand(reportDashboardCmd())
	cmd.AddCommand(reportSpendingCmd())
	cmd.AddCommand(reportTrendsCmd())

	return cmd
}

func reportDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Net worth, balances and this month's activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, closeLedger, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			dashboard, err := eng.Dashboard(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Net worth:        %s\n", money(dashboard.NetWorth))
			fmt.Printf("Income (month):   %s\n", money(dashboard.MonthlyIncome))
			fmt.Printf("Expenses (month): %s\n", money(dashboard.MonthlyExpenses))

			if len(dashboard.Accounts) > 0 {
				fmt.Println("\nAccounts:")
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				for _, account := range dashboard.Accounts {
					fmt.Fprintf(w, "  %s\t%s\t%s\n", account.Name, account.Type, money(account.Balance))
				}
				_ = w.Flush()
			}

			if len(dashboard.SpendingByCategory) > 0 {
				fmt.Println("\nSpending by category (this month):")
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				for _, spend := range dashboard.SpendingByCategory {
					fmt.Fprintf(w, "  %s\t%s\n", spend.CategoryName, money(spend.Amount))
				}
				_ = w.Flush()
			}

			if len(dashboard.RecentTransactions) > 0 {
				fmt.Println("\nRecent transactions:")
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				for _, txn := range dashboard.RecentTransactions {
					fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n",
						txn.Date, txn.AccountName, txn.Type, money(txn.Amount))
				}
				_ = w.Flush()
			}
			return nil
		},
	}
}

func reportSpendingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spending",
		Short: "One month's totals and expense breakdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, closeLedger, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			now := time.Now()
			year, _ := cmd.Flags().GetInt("year")
			month, _ := cmd.Flags().GetInt("month")
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}

			breakdown, err := eng.SpendingBreakdown(ctx, year, month)
			if err != nil {
				return err
			}

			fmt.Printf("%04d-%02d  income %s  expenses %s\n",
				breakdown.Year, breakdown.Month,
				money(breakdown.TotalIncome), money(breakdown.TotalExpenses))
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, spend := range breakdown.Categories {
				fmt.Fprintf(w, "  %s\t%s\n", spend.CategoryName, money(spend.Amount))
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int("year", 0, "year (default current)")
	cmd.Flags().Int("month", 0, "month 1-12 (default current)")
	return cmd
}

func reportTrendsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Monthly income/expense/net trend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, closeLedger, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			months, _ := cmd.Flags().GetInt("months")
			trends, err := eng.MonthlyTrends(ctx, months)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSES\tNET")
			for _, summary := range trends {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					summary.Label, money(summary.Income),
					money(summary.Expenses), money(summary.Net))
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int("months", 6, "number of months (1-24)")
	return cmd
}
