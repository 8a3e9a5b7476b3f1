package ledger

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accrue-app/accrue/internal/common"
	"github.com/accrue-app/accrue/internal/model"
)

func TestDashboardNetWorthSubtractsCreditDebt(t *testing.T) {
	eng := createTestLedger(t)
	ctx := context.Background()

	addAccount(t, eng, "Checking", model.AccountDebit, decimal.NewFromInt(1000))
	addAccount(t, eng, "Card", model.AccountCredit, decimal.NewFromInt(400))

	dashboard, err := eng.Dashboard(ctx)
	require.NoError(t, err)
	assert.True(t, dashboard.NetWorth.Equal(decimal.NewFromInt(600)), "got %s", dashboard.NetWorth)
}

func TestDashboardExcludesTransferLegsFromTotals(t *testing.T) {
	eng := createTestLedger(t)
	ctx := context.Background()

	checking := addAccount(t, eng, "Checking", model.AccountDebit, decimal.NewFromInt(1000))
	savings := addAccount(t, eng, "Savings", model.AccountSavings, decimal.Zero)

	today := model.Today()
	addTransaction(t, eng, checking.ID, model.TypeIncome, 2000, today)
	addTransaction(t, eng, checking.ID, model.TypeExpense, 300, today)

	_, err := eng.CreateTransfer(ctx, model.TransferFields{
		FromAccountID: checking.ID,
		ToAccountID:   savings.ID,
		Amount:        decimal.NewFromInt(500),
		Date:          today,
	})
	require.NoError(t, err)

	dashboard, err := eng.Dashboard(ctx)
	require.NoError(t, err)

	// Legs shift balances but never count as income or spending.
	assert.True(t, dashboard.MonthlyIncome.Equal(decimal.NewFromInt(2000)), "got %s", dashboard.MonthlyIncome)
	assert.True(t, dashboard.MonthlyExpenses.Equal(decimal.NewFromInt(300)), "got %s", dashboard.MonthlyExpenses)

	var checkingBalance, savingsBalance decimal.Decimal
	for _, account := range dashboard.Accounts {
		switch account.ID {
		case checking.ID:
			checkingBalance = account.Balance
		case savings.ID:
			savingsBalance = account.Balance
		}
	}
	assert.True(t, checkingBalance.Equal(decimal.NewFromInt(2200)), "got %s", checkingBalance)
	assert.True(t, savingsBalance.Equal(decimal.NewFromInt(500)), "got %s", savingsBalance)
}

func TestDashboardRecentTransactionsCapped(t *testing.T) {
	eng := createTestLedger(t)
	ctx := context.Background()

	account := addAccount(t, eng, "Checking", model.AccountDebit, decimal.Zero)
	for n := 0; n < 12; n++ {
		addTransaction(t, eng, account.ID, model.TypeExpense, 1, model.Today())
	}

	dashboard, err := eng.Dashboard(ctx)
	require.NoError(t, err)
	assert.Len(t, dashboard.RecentTransactions, 10)
}

func TestSpendingBreakdownGroupsByCategory(t *testing.T) {
	eng := createTestLedger(t)
	ctx := context.Background()

	account := addAccount(t, eng, "Checking", model.AccountDebit, decimal.Zero)
	food := findCategory(t, eng, "Food & Dining")
	transport := findCategory(t, eng, "Transportation")

	entries := []struct {
		category *model.Category
		amount   int64
	}{
		{food, 120},
		{food, 80},
		{transport, 50},
		{nil, 30}, // uncategorized
	}
	for _, e := range entries {
		fields := model.TransactionFields{
			AccountID: account.ID,
			Type:      model.TypeExpense,
			Amount:    decimal.NewFromInt(e.amount),
			Date:      model.NewDate(2026, 5, 10),
		}
		if e.category != nil {
			fields.CategoryID = &e.category.ID
		}
		_, err := eng.CreateTransaction(ctx, fields)
		require.NoError(t, err)
	}
	addTransaction(t, eng, account.ID, model.TypeIncome, 3000, model.NewDate(2026, 5, 1))

	breakdown, err := eng.SpendingBreakdown(ctx, 2026, 5)
	require.NoError(t, err)

	assert.True(t, breakdown.TotalIncome.Equal(decimal.NewFromInt(3000)))
	assert.True(t, breakdown.TotalExpenses.Equal(decimal.NewFromInt(280)))

	require.Len(t, breakdown.Categories, 3)
	// Largest first.
	assert.Equal(t, "Food & Dining", breakdown.Categories[0].CategoryName)
	assert.True(t, breakdown.Categories[0].Amount.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "Transportation", breakdown.Categories[1].CategoryName)
	assert.Equal(t, "Uncategorized", breakdown.Categories[2].CategoryName)
	assert.Nil(t, breakdown.Categories[2].CategoryID)
}

func TestSpendingBreakdownRejectsBadMonth(t *testing.T) {
	eng := createTestLedger(t)

	_, err := eng.SpendingBreakdown(context.Background(), 2026, 13)
	require.Error(t, err)
	assert.True(t, common.IsValidation(err))
}

func TestMonthlyTrendsWindow(t *testing.T) {
	eng := createTestLedger(t)
	ctx := context.Background()

	account := addAccount(t, eng, "Checking", model.AccountDebit, decimal.Zero)
	today := model.Today()
	lastMonth := today.AddMonths(-1)

	addTransaction(t, eng, account.ID, model.TypeIncome, 1000, lastMonth)
	addTransaction(t, eng, account.ID, model.TypeExpense, 400, lastMonth)
	addTransaction(t, eng, account.ID, model.TypeExpense, 100, today)

	trends, err := eng.MonthlyTrends(ctx, 3)
	require.NoError(t, err)
	require.Len(t, trends, 3)

	// Oldest first; the current month is last.
	assert.Equal(t, today.MonthLabel(), trends[2].Label)
	assert.Equal(t, lastMonth.MonthLabel(), trends[1].Label)

	assert.True(t, trends[1].Income.Equal(decimal.NewFromInt(1000)))
	assert.True(t, trends[1].Net.Equal(decimal.NewFromInt(600)))
	assert.True(t, trends[2].Expenses.Equal(decimal.NewFromInt(100)))
	// The empty month is reported as zeros, not omitted.
	assert.True(t, trends[0].Income.IsZero())
	assert.True(t, trends[0].Expenses.IsZero())
}

func TestMonthlyTrendsClampsRange(t *testing.T) {
	eng := createTestLedger(t)
	ctx := context.Background()

	tooMany, err := eng.MonthlyTrends(ctx, 99)
	require.NoError(t, err)
	assert.Len(t, tooMany, 24)

	tooFew, err := eng.MonthlyTrends(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, tooFew, 1)
}
