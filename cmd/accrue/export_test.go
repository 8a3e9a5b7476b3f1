package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accrue-app/accrue/internal/ledger"
	"github.com/accrue-app/accrue/internal/model"
	"github.com/accrue-app/accrue/internal/storage"
)

func createExportLedger(t *testing.T) *ledger.Ledger {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return ledger.New(store)
}

func TestExportToFile(t *testing.T) {
	eng := createExportLedger(t)
	ctx := context.Background()

	account, err := eng.CreateAccount(ctx, model.AccountFields{
		Name:           "Checking",
		Type:           model.AccountDebit,
		Currency:       "USD",
		OpeningBalance: decimal.Zero,
	})
	require.NoError(t, err)
	_, err = eng.CreateTransaction(ctx, model.TransactionFields{
		AccountID: account.ID,
		Type:      model.TypeExpense,
		Amount:    decimal.NewFromFloat(12.5),
		Date:      model.NewDate(2026, 5, 1),
		Notes:     "groceries",
	})
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "out.csv")
	count, err := exportToFile(ctx, eng, dest, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,account,category,type,amount,date,notes,is_recurring", lines[0])
	assert.Contains(t, lines[1], "12.50")

	_, err = os.Stat(dest + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestExportToFileLeavesNoPartialOutput(t *testing.T) {
	eng := createExportLedger(t)

	dest := filepath.Join(t.TempDir(), "missing", "out.csv")
	_, err := exportToFile(context.Background(), eng, dest, io.Discard)
	require.Error(t, err)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}
