package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/accrue-app/accrue/internal/common"
	"github.com/accrue-app/accrue/internal/model"
	"github.com/accrue-app/accrue/internal/service"
)

// recentTransactionCount is how many of the newest transactions the
// dashboard shows.
const recentTransactionCount = 10

// maxTrendMonths caps the monthly trend window.
const maxTrendMonths = 24

// Dashboard assembles the overview: net worth, per-account balances, the
// current month's totals and expense breakdown, and the newest
// transactions. Transfer legs count toward balances but never toward
// income or expense totals.
func (l *Ledger) Dashboard(ctx context.Context) (*model.DashboardData, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	accounts, err := l.accountsWithBalances(ctx, true)
	if err != nil {
		return nil, err
	}

	netWorth := decimal.Zero
	for _, account := range accounts {
		if account.Type == model.AccountCredit {
			netWorth = netWorth.Sub(account.Balance)
		} else {
			netWorth = netWorth.Add(account.Balance)
		}
	}

	now := model.Today()
	from, to := monthRange(now.Year(), int(now.Time.Month()))
	monthly, err := l.store.TransactionsInRange(ctx, from, to, false)
	if err != nil {
		return nil, err
	}

	income, expenses := decimal.Zero, decimal.Zero
	for _, txn := range monthly {
		switch txn.Type {
		case model.TypeIncome:
			income = income.Add(txn.Amount)
		case model.TypeExpense:
			expenses = expenses.Add(txn.Amount)
		}
	}

	recent, err := l.store.ListTransactions(ctx, service.TransactionFilter{Limit: recentTransactionCount})
	if err != nil {
		return nil, err
	}

	return &model.DashboardData{
		NetWorth:           netWorth,
		MonthlyIncome:      income,
		MonthlyExpenses:    expenses,
		Accounts:           accounts,
		RecentTransactions: recent,
		SpendingByCategory: spendByCategory(monthly),
	}, nil
}

// SpendingBreakdown reports one calendar month's income and expense totals
// plus its expense breakdown by category, largest first.
func (l *Ledger) SpendingBreakdown(ctx context.Context, year, month int) (*model.SpendingBreakdown, error) {
	if month < 1 || month > 12 {
		return nil, common.Validationf("month must be between 1 and 12")
	}
	if year < 1 {
		return nil, common.Validationf("invalid year %d", year)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	from, to := monthRange(year, month)
	transactions, err := l.store.TransactionsInRange(ctx, from, to, false)
	if err != nil {
		return nil, err
	}

	breakdown := &model.SpendingBreakdown{
		Year:          year,
		Month:         month,
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, txn := range transactions {
		switch txn.Type {
		case model.TypeIncome:
			breakdown.TotalIncome = breakdown.TotalIncome.Add(txn.Amount)
		case model.TypeExpense:
			breakdown.TotalExpenses = breakdown.TotalExpenses.Add(txn.Amount)
		}
	}
	breakdown.Categories = spendByCategory(transactions)
	return breakdown, nil
}

// MonthlyTrends summarizes income, expenses and net for the last months
// calendar months including the current one, oldest first. The window is
// clamped to [1, 24].
func (l *Ledger) MonthlyTrends(ctx context.Context, months int) ([]model.MonthSummary, error) {
	if months < 1 {
		months = 1
	}
	if months > maxTrendMonths {
		months = maxTrendMonths
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	now := model.Today()
	start := now.AddMonths(1 - months)
	_, to := monthRange(now.Year(), int(now.Time.Month()))

	transactions, err := l.store.TransactionsInRange(ctx, start, to, false)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*model.MonthSummary, months)
	summaries := make([]model.MonthSummary, 0, months)
	for i := 0; i < months; i++ {
		m := start.AddMonths(i)
		byMonth[m.MonthLabel()] = &model.MonthSummary{
			Label:    m.MonthLabel(),
			Year:     m.Year(),
			Month:    int(m.Time.Month()),
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
			Net:      decimal.Zero,
		}
	}

	for _, txn := range transactions {
		summary, ok := byMonth[txn.Date.MonthLabel()]
		if !ok {
			continue
		}
		switch txn.Type {
		case model.TypeIncome:
			summary.Income = summary.Income.Add(txn.Amount)
		case model.TypeExpense:
			summary.Expenses = summary.Expenses.Add(txn.Amount)
		}
	}

	for i := 0; i < months; i++ {
		summary := byMonth[start.AddMonths(i).MonthLabel()]
		summary.Net = summary.Income.Sub(summary.Expenses)
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

// spendByCategory groups expense transactions by category, largest total
// first. Uncategorized spending becomes its own row with a nil id.
func spendByCategory(transactions []model.Transaction) []model.CategorySpend {
	type bucket struct {
		name   string
		id     *int64
		amount decimal.Decimal
	}

	buckets := make(map[int64]*bucket)
	order := make([]int64, 0)
	for _, txn := range transactions {
		if txn.Type != model.TypeExpense {
			continue
		}

		key := int64(0)
		if txn.CategoryID != nil {
			key = *txn.CategoryID
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{name: txn.CategoryName, id: txn.CategoryID, amount: decimal.Zero}
			if b.id == nil {
				b.name = "Uncategorized"
			}
			buckets[key] = b
			order = append(order, key)
		}
		b.amount = b.amount.Add(txn.Amount)
	}

	spend := make([]model.CategorySpend, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		spend = append(spend, model.CategorySpend{
			Amount:       b.amount,
			CategoryName: b.name,
			CategoryID:   b.id,
		})
	}
	sort.SliceStable(spend, func(i, j int) bool {
		if !spend[i].Amount.Equal(spend[j].Amount) {
			return spend[i].Amount.GreaterThan(spend[j].Amount)
		}
		return spend[i].CategoryName < spend[j].CategoryName
	})
	return spend
}

// monthRange returns the first and last day of a calendar month.
func monthRange(year, month int) (model.Date, model.Date) {
	first := model.NewDate(year, time.Month(month), 1)
	last := model.Date{Time: first.AddMonths(1).AddDate(0, 0, -1)}
	return first, last
}
