package ledger

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accrue-app/accrue/internal/model"
)

func TestExportCSV(t *testing.T) {
	eng := createTestLedger(t)
	ctx := context.Background()

	account := addAccount(t, eng, "Checking", model.AccountDebit, decimal.Zero)
	food := findCategory(t, eng, "Food & Dining")

	_, err := eng.CreateTransaction(ctx, model.TransactionFields{
		AccountID:  account.ID,
		CategoryID: &food.ID,
		Type:       model.TypeExpense,
		Amount:     decimal.NewFromFloat(12.5),
		Date:       model.NewDate(2026, 1, 10),
		Notes:      "bread, milk, eggs",
	})
	require.NoError(t, err)
	addTransaction(t, eng, account.ID, model.TypeIncome, 2000, model.NewDate(2026, 1, 31))

	var buf bytes.Buffer
	count, err := eng.ExportCSV(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"id", "account", "category", "type", "amount", "date", "notes", "is_recurring"}, records[0])

	// Newest first.
	assert.Equal(t, "income", records[1][3])
	assert.Equal(t, "2000.00", records[1][4])

	// Amounts use two decimal places and note commas become semicolons.
	assert.Equal(t, "12.50", records[2][4])
	assert.Equal(t, "bread; milk; eggs", records[2][6])
	assert.Equal(t, "Food & Dining", records[2][2])
	assert.Equal(t, "false", records[2][7])
}

func TestExportCSVEmptyLedger(t *testing.T) {
	eng := createTestLedger(t)

	var buf bytes.Buffer
	count, err := eng.ExportCSV(context.Background(), &buf)
	require.NoError(t, err)
	assert.Zero(t, count)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1) // header only
}
