package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accrue-app/accrue/internal/common"
	"github.com/accrue-app/accrue/internal/model"
	"github.com/accrue-app/accrue/internal/service"
)

// createTestStorage creates a migrated store in a temp directory.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func createTestAccount(t *testing.T, store *SQLiteStorage, name string, accountType model.AccountType) *model.Account {
	t.Helper()

	fields := model.AccountFields{
		Name:           name,
		Type:           accountType,
		Currency:       "USD",
		OpeningBalance: decimal.Zero,
	}
	account, err := store.CreateAccount(context.Background(), fields)
	require.NoError(t, err)
	return account
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := createTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, store.Migrate(context.Background()))
}

func TestMigrateSeedsDefaultCategories(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	categories, err := store.ListCategories(ctx, false)
	require.NoError(t, err)
	assert.Len(t, categories, 13)

	names := make(map[string]model.CategoryDirection)
	for _, c := range categories {
		names[c.Name] = c.Direction
	}
	assert.Equal(t, model.DirectionIncome, names["Salary"])
	assert.Equal(t, model.DirectionExpense, names["Food & Dining"])
	assert.Equal(t, model.DirectionExpense, names["Housing"])
}

func TestAccountCRUD(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	limit := decimal.NewFromInt(5000)
	billingDay := 15
	fields := model.AccountFields{
		Name:            "Sapphire Card",
		Type:            model.AccountCredit,
		Subtype:         "rewards",
		Currency:        "USD",
		OpeningBalance:  decimal.NewFromInt(250),
		CreditLimit:     &limit,
		BillingCycleDay: &billingDay,
	}

	created, err := store.CreateAccount(ctx, fields)
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.True(t, created.IsActive)
	assert.True(t, created.OpeningBalance.Equal(decimal.NewFromInt(250)))
	require.NotNil(t, created.CreditLimit)
	assert.True(t, created.CreditLimit.Equal(limit))
	require.NotNil(t, created.BillingCycleDay)
	assert.Equal(t, 15, *created.BillingCycleDay)
	assert.Nil(t, created.PaymentDueDay)

	fetched, err := store.GetAccount(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, fetched.Name)

	fields.Name = "Sapphire Reserve"
	updated, err := store.UpdateAccount(ctx, created.ID, fields)
	require.NoError(t, err)
	assert.Equal(t, "Sapphire Reserve", updated.Name)

	require.NoError(t, store.SetAccountActive(ctx, created.ID, false))
	active, err := store.ListAccounts(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := store.ListAccounts(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.False(t, all[0].IsActive)
}

func TestGetAccountNotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetAccount(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, common.IsNotFound(err))
}

func TestCategoryCRUD(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	created, err := store.CreateCategory(ctx, model.CategoryFields{
		Name:      "Pets",
		Direction: model.DirectionExpense,
		Icon:      "🐕",
	})
	require.NoError(t, err)
	assert.False(t, created.IsArchived)

	updated, err := store.UpdateCategory(ctx, created.ID, model.CategoryFields{
		Name:      "Pet Care",
		Direction: model.DirectionExpense,
		Icon:      "🐕",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pet Care", updated.Name)

	require.NoError(t, store.SetCategoryArchived(ctx, created.ID, true))

	visible, err := store.ListCategories(ctx, false)
	require.NoError(t, err)
	for _, c := range visible {
		assert.NotEqual(t, created.ID, c.ID)
	}

	all, err := store.ListCategories(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 14) // 13 seeded + 1 archived
}

func TestTransactionCRUDWithJoins(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	account := createTestAccount(t, store, "Checking", model.AccountDebit)
	categories, err := store.ListCategories(ctx, false)
	require.NoError(t, err)
	var food *model.Category
	for i := range categories {
		if categories[i].Name == "Food & Dining" {
			food = &categories[i]
		}
	}
	require.NotNil(t, food)

	created, err := store.CreateTransaction(ctx, model.TransactionFields{
		AccountID:  account.ID,
		CategoryID: &food.ID,
		Type:       model.TypeExpense,
		Amount:     decimal.NewFromFloat(42.50),
		Date:       model.NewDate(2026, 3, 14),
		Notes:      "groceries",
	})
	require.NoError(t, err)
	assert.Equal(t, "Checking", created.AccountName)
	assert.Equal(t, "Food & Dining", created.CategoryName)
	assert.True(t, created.Amount.Equal(decimal.NewFromFloat(42.50)))
	assert.Equal(t, "2026-03-14", created.Date.String())
	assert.Nil(t, created.TransferID)

	updated, err := store.UpdateTransaction(ctx, created.ID, model.TransactionFields{
		AccountID: account.ID,
		Type:      model.TypeExpense,
		Amount:    decimal.NewFromInt(40),
		Date:      model.NewDate(2026, 3, 15),
		Notes:     "groceries (corrected)",
	})
	require.NoError(t, err)
	assert.Nil(t, updated.CategoryID)
	assert.Empty(t, updated.CategoryName)

	require.NoError(t, store.DeleteTransaction(ctx, created.ID))
	_, err = store.GetTransaction(ctx, created.ID)
	assert.True(t, common.IsNotFound(err))
}

func TestListTransactionsFilters(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	checking := createTestAccount(t, store, "Checking", model.AccountDebit)
	savings := createTestAccount(t, store, "Savings", model.AccountSavings)

	seed := []model.TransactionFields{
		{AccountID: checking.ID, Type: model.TypeExpense, Amount: decimal.NewFromInt(10), Date: model.NewDate(2026, 1, 5), Notes: "coffee"},
		{AccountID: checking.ID, Type: model.TypeIncome, Amount: decimal.NewFromInt(2000), Date: model.NewDate(2026, 1, 31), Notes: "paycheck"},
		{AccountID: savings.ID, Type: model.TypeExpense, Amount: decimal.NewFromInt(300), Date: model.NewDate(2026, 2, 10), Notes: "car repair"},
	}
	for _, fields := range seed {
		_, err := store.CreateTransaction(ctx, fields)
		require.NoError(t, err)
	}

	byAccount, err := store.ListTransactions(ctx, service.TransactionFilter{AccountID: &checking.ID})
	require.NoError(t, err)
	assert.Len(t, byAccount, 2)

	income := model.TypeIncome
	byType, err := store.ListTransactions(ctx, service.TransactionFilter{Type: &income})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "paycheck", byType[0].Notes)

	from := model.NewDate(2026, 2, 1)
	byDate, err := store.ListTransactions(ctx, service.TransactionFilter{DateFrom: &from})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "car repair", byDate[0].Notes)

	bySearch, err := store.ListTransactions(ctx, service.TransactionFilter{Search: "coff"})
	require.NoError(t, err)
	assert.Len(t, bySearch, 1)

	limited, err := store.ListTransactions(ctx, service.TransactionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	// Newest first, ties broken by id.
	all, err := store.ListTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "car repair", all[0].Notes)
	assert.Equal(t, "coffee", all[2].Notes)
}

func TestTransactionsByAccountChronological(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	account := createTestAccount(t, store, "Checking", model.AccountDebit)
	dates := []model.Date{
		model.NewDate(2026, 3, 10),
		model.NewDate(2026, 1, 1),
		model.NewDate(2026, 3, 10),
	}
	for _, date := range dates {
		_, err := store.CreateTransaction(ctx, model.TransactionFields{
			AccountID: account.ID,
			Type:      model.TypeExpense,
			Amount:    decimal.NewFromInt(1),
			Date:      date,
		})
		require.NoError(t, err)
	}

	transactions, err := store.TransactionsByAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 3)
	assert.Equal(t, "2026-01-01", transactions[0].Date.String())
	// Same-day rows keep insertion order.
	assert.Less(t, transactions[1].ID, transactions[2].ID)
}

func TestCreateTransferWritesBothLegs(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	checking := createTestAccount(t, store, "Checking", model.AccountDebit)
	card := createTestAccount(t, store, "Card", model.AccountCredit)

	transfer, err := store.CreateTransfer(ctx, model.TransferFields{
		FromAccountID: checking.ID,
		ToAccountID:   card.ID,
		Amount:        decimal.NewFromInt(500),
		Date:          model.NewDate(2026, 4, 1),
		Notes:         "card payment",
		Type:          model.TransferCreditPayment,
	})
	require.NoError(t, err)

	fromLegs, err := store.TransactionsByAccount(ctx, checking.ID)
	require.NoError(t, err)
	require.Len(t, fromLegs, 1)
	assert.Equal(t, model.TypeExpense, fromLegs[0].Type)
	require.NotNil(t, fromLegs[0].TransferID)
	assert.Equal(t, transfer.ID, *fromLegs[0].TransferID)

	toLegs, err := store.TransactionsByAccount(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, toLegs, 1)
	assert.Equal(t, model.TypeIncome, toLegs[0].Type)
	assert.True(t, toLegs[0].Amount.Equal(transfer.Amount))
}

func TestDeleteTransferRemovesLegs(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	checking := createTestAccount(t, store, "Checking", model.AccountDebit)
	savings := createTestAccount(t, store, "Savings", model.AccountSavings)

	transfer, err := store.CreateTransfer(ctx, model.TransferFields{
		FromAccountID: checking.ID,
		ToAccountID:   savings.ID,
		Amount:        decimal.NewFromInt(100),
		Date:          model.NewDate(2026, 4, 2),
		Type:          model.TransferRegular,
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteTransfer(ctx, transfer.ID))

	_, err = store.GetTransfer(ctx, transfer.ID)
	assert.True(t, common.IsNotFound(err))

	remaining, err := store.ListTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestResetReseedsCategories(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	account := createTestAccount(t, store, "Checking", model.AccountDebit)
	_, err := store.CreateTransaction(ctx, model.TransactionFields{
		AccountID: account.ID,
		Type:      model.TypeExpense,
		Amount:    decimal.NewFromInt(5),
		Date:      model.NewDate(2026, 1, 1),
	})
	require.NoError(t, err)

	require.NoError(t, store.Reset(ctx))

	counts, err := store.RowCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, counts["accounts"])
	assert.Equal(t, 0, counts["transactions"])
	assert.Equal(t, 0, counts["transfers"])
	assert.Equal(t, 13, counts["categories"])
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	account := createTestAccount(t, store, "Checking", model.AccountDebit)
	_, err := store.CreateTransaction(ctx, model.TransactionFields{
		AccountID: account.ID,
		Type:      model.TypeIncome,
		Amount:    decimal.NewFromInt(1000),
		Date:      model.NewDate(2026, 1, 15),
		Notes:     "before backup",
	})
	require.NoError(t, err)

	backupPath := filepath.Join(t.TempDir(), "snapshot.db")
	require.NoError(t, store.Backup(ctx, backupPath))

	// Mutate after the snapshot, then restore and confirm the mutation is gone.
	_, err = store.CreateTransaction(ctx, model.TransactionFields{
		AccountID: account.ID,
		Type:      model.TypeExpense,
		Amount:    decimal.NewFromInt(999),
		Date:      model.NewDate(2026, 1, 16),
		Notes:     "after backup",
	})
	require.NoError(t, err)

	require.NoError(t, store.Restore(ctx, backupPath))

	transactions, err := store.ListTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "before backup", transactions[0].Notes)
}

func TestRestoreLeavesSnapshotUntouched(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	account := createTestAccount(t, store, "Checking", model.AccountDebit)
	_, err := store.CreateTransaction(ctx, model.TransactionFields{
		AccountID: account.ID,
		Type:      model.TypeIncome,
		Amount:    decimal.NewFromInt(100),
		Date:      model.NewDate(2026, 2, 1),
	})
	require.NoError(t, err)

	backupPath := filepath.Join(t.TempDir(), "snapshot.db")
	require.NoError(t, store.Backup(ctx, backupPath))

	before, err := os.ReadFile(backupPath)
	require.NoError(t, err)

	require.NoError(t, store.Restore(ctx, backupPath))

	// Verification and the swap read the snapshot but never write to it.
	after, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(before, after))
}

func TestRestoreRejectsGarbageFile(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	garbage := filepath.Join(t.TempDir(), "garbage.db")
	require.NoError(t, os.WriteFile(garbage, []byte("this is not a database"), 0600))

	err := store.Restore(ctx, garbage)
	require.Error(t, err)
	assert.True(t, common.IsValidation(err))

	// The live database must still work.
	_, err = store.ListCategories(ctx, false)
	require.NoError(t, err)
}
