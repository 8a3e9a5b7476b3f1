package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accrue-app/accrue/internal/model"
	"github.com/accrue-app/accrue/internal/storage"
)

// createTestLedger creates an engine over a migrated store in a temp dir.
func createTestLedger(t *testing.T) *Ledger {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })

	return New(store)
}

func addAccount(t *testing.T, eng *Ledger, name string, accountType model.AccountType, opening decimal.Decimal) *model.Account {
	t.Helper()

	account, err := eng.CreateAccount(context.Background(), model.AccountFields{
		Name:           name,
		Type:           accountType,
		Currency:       "USD",
		OpeningBalance: opening,
	})
	require.NoError(t, err)
	return account
}

func addTransaction(t *testing.T, eng *Ledger, accountID int64, txnType model.TransactionType, amount int64, date model.Date) *model.Transaction {
	t.Helper()

	txn, err := eng.CreateTransaction(context.Background(), model.TransactionFields{
		AccountID: accountID,
		Type:      txnType,
		Amount:    decimal.NewFromInt(amount),
		Date:      date,
	})
	require.NoError(t, err)
	return txn
}

func TestSignedConventions(t *testing.T) {
	amount := decimal.NewFromInt(100)

	tests := []struct {
		name        string
		accountType model.AccountType
		txnType     model.TransactionType
		want        decimal.Decimal
	}{
		{"cash income adds value", model.AccountCash, model.TypeIncome, amount},
		{"cash expense removes value", model.AccountCash, model.TypeExpense, amount.Neg()},
		{"savings income adds value", model.AccountSavings, model.TypeIncome, amount},
		{"credit expense grows debt", model.AccountCredit, model.TypeExpense, amount},
		{"credit income pays down debt", model.AccountCredit, model.TypeIncome, amount.Neg()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := model.Transaction{TransactionFields: model.TransactionFields{
				Type:   tt.txnType,
				Amount: amount,
			}}
			got := Signed(tt.accountType, txn)
			assert.True(t, got.Equal(tt.want), "got %s want %s", got, tt.want)
		})
	}
}

func TestCashAccountBalance(t *testing.T) {
	eng := createTestLedger(t)
	ctx := context.Background()

	account := addAccount(t, eng, "Wallet", model.AccountCash, decimal.Zero)
	addTransaction(t, eng, account.ID, model.TypeIncome, 1000, model.NewDate(2026, 1, 1))
	addTransaction(t, eng, account.ID, model.TypeExpense, 250, model.NewDate(2026, 1, 5))

	balance, err := eng.AccountBalance(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(750)), "got %s", balance)
}

func TestCreditAccountBalanceIsAmountOwed(t *testing.T) {
	eng := createTestLedger(t)
	ctx := context.Background()

	card := addAccount(t, eng, "Card", model.AccountCredit, decimal.Zero)
	addTransaction(t, eng, card.ID, model.TypeExpense, 400, model.NewDate(2026, 1, 2))
	addTransaction(t, eng, card.ID, model.TypeIncome, 150, model.NewDate(2026, 1, 20))

	balance, err := eng.AccountBalance(ctx, card.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(250)), "owed should be 250, got %s", balance)
}

func TestOpeningBalanceIncluded(t *testing.T) {
	eng := createTestLedger(t)
	ctx := context.Background()

	account := addAccount(t, eng, "Checking", model.AccountDebit, decimal.NewFromInt(500))
	addTransaction(t, eng, account.ID, model.TypeExpense, 200, model.NewDate(2026, 1, 1))

	balance, err := eng.AccountBalance(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(300)), "got %s", balance)
}

func TestTransferMovesValueBetweenBalances(t *testing.T) {
	eng := createTestLedger(t)
	ctx := context.Background()

	checking := addAccount(t, eng, "Checking", model.AccountDebit, decimal.NewFromInt(1000))
	card := addAccount(t, eng, "Card", model.AccountCredit, decimal.NewFromInt(800))

	_, err := eng.CreateTransfer(ctx, model.TransferFields{
		FromAccountID: checking.ID,
		ToAccountID:   card.ID,
		Amount:        decimal.NewFromInt(500),
		Date:          model.NewDate(2026, 2, 1),
		Type:          model.TransferCreditPayment,
	})
	require.NoError(t, err)

	checkingBalance, err := eng.AccountBalance(ctx, checking.ID)
	require.NoError(t, err)
	assert.True(t, checkingBalance.Equal(decimal.NewFromInt(500)), "got %s", checkingBalance)

	// The income leg on a credit account reduces the amount owed.
	cardBalance, err := eng.AccountBalance(ctx, card.ID)
	require.NoError(t, err)
	assert.True(t, cardBalance.Equal(decimal.NewFromInt(300)), "got %s", cardBalance)
}

func TestAccountHistoryRunningBalance(t *testing.T) {
	eng := createTestLedger(t)
	ctx := context.Background()

	account := addAccount(t, eng, "Checking", model.AccountDebit, decimal.NewFromInt(100))
	addTransaction(t, eng, account.ID, model.TypeIncome, 50, model.NewDate(2026, 1, 10))
	addTransaction(t, eng, account.ID, model.TypeExpense, 30, model.NewDate(2026, 1, 20))
	addTransaction(t, eng, account.ID, model.TypeExpense, 20, model.NewDate(2026, 1, 5))

	history, err := eng.AccountHistory(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)

	// Oldest first: 100-20=80, +50=130, -30=100.
	assert.Equal(t, "2026-01-05", history[0].Transaction.Date.String())
	assert.True(t, history[0].Balance.Equal(decimal.NewFromInt(80)))
	assert.True(t, history[1].Balance.Equal(decimal.NewFromInt(130)))
	assert.True(t, history[2].Balance.Equal(decimal.NewFromInt(100)))
}
