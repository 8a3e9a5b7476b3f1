package model

import "github.com/shopspring/decimal"

// CategorySpend is one row of a spending-by-category breakdown. A nil
// CategoryID groups transactions that carry no category.
type CategorySpend struct {
	Amount       decimal.Decimal `json:"amount"`
	CategoryName string          `json:"category_name"`
	CategoryID   *int64          `json:"category_id"`
}

// DashboardData is the aggregate payload behind the overview screen.
type DashboardData struct {
	NetWorth           decimal.Decimal      `json:"net_worth"`
	MonthlyIncome      decimal.Decimal      `json:"monthly_income"`
	MonthlyExpenses    decimal.Decimal      `json:"monthly_expenses"`
	Accounts           []AccountWithBalance `json:"accounts"`
	RecentTransactions []Transaction        `json:"recent_transactions"`
	SpendingByCategory []CategorySpend      `json:"spending_by_category"`
}

// SpendingBreakdown reports one explicit month's totals and its expense
// breakdown by category, largest first.
type SpendingBreakdown struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Categories    []CategorySpend `json:"categories"`
	Year          int             `json:"year"`
	Month         int             `json:"month"`
}

// MonthSummary is one row of a monthly trend: income, expenses and net for
// a single calendar month.
type MonthSummary struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
	Label    string          `json:"label"`
	Year     int             `json:"year"`
	Month    int             `json:"month"`
}

// RunningBalanceEntry is one step of an account's chronological balance
// history: the transaction applied and the balance after it.
type RunningBalanceEntry struct {
	Balance     decimal.Decimal `json:"balance"`
	Transaction Transaction     `json:"transaction"`
}

// ExportRow is one line of the transaction export, joined with display
// names for the owning account and category.
type ExportRow struct {
	Date        Date
	Amount      decimal.Decimal
	Account     string
	Category    string
	Type        TransactionType
	Notes       string
	ID          int64
	IsRecurring bool
}
