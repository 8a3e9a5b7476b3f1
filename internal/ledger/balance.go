package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/accrue-app/accrue/internal/model"
)

// Signed returns the contribution of one transaction to its account's
// balance. For a credit account the balance is the amount owed, so an
// expense grows it and an income (a payment toward the card) shrinks it.
// Every other account type holds value, so the signs reverse.
func Signed(accountType model.AccountType, txn model.Transaction) decimal.Decimal {
	positive := txn.Type == model.TypeIncome
	if accountType == model.AccountCredit {
		positive = !positive
	}
	if positive {
		return txn.Amount
	}
	return txn.Amount.Neg()
}

// CurrentBalance folds an account's full transaction history, transfer legs
// included, onto its opening balance.
func CurrentBalance(account model.Account, transactions []model.Transaction) decimal.Decimal {
	balance := account.OpeningBalance
	for _, txn := range transactions {
		balance = balance.Add(Signed(account.Type, txn))
	}
	return balance
}

// RunningBalances walks transactions in the order given (oldest first) and
// records the balance after each step.
func RunningBalances(account model.Account, transactions []model.Transaction) []model.RunningBalanceEntry {
	entries := make([]model.RunningBalanceEntry, 0, len(transactions))
	balance := account.OpeningBalance
	for _, txn := range transactions {
		balance = balance.Add(Signed(account.Type, txn))
		entries = append(entries, model.RunningBalanceEntry{
			Transaction: txn,
			Balance:     balance,
		})
	}
	return entries
}

// AccountBalance derives the current balance of one account.
func (l *Ledger) AccountBalance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	account, err := l.store.GetAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	transactions, err := l.store.TransactionsByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	return CurrentBalance(*account, transactions), nil
}

// AccountHistory returns an account's chronological balance history, one
// entry per transaction, oldest first.
func (l *Ledger) AccountHistory(ctx context.Context, accountID int64) ([]model.RunningBalanceEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	account, err := l.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	transactions, err := l.store.TransactionsByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return RunningBalances(*account, transactions), nil
}

// AccountsWithBalances lists accounts with their derived balances attached.
func (l *Ledger) AccountsWithBalances(ctx context.Context, activeOnly bool) ([]model.AccountWithBalance, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.accountsWithBalances(ctx, activeOnly)
}

// accountsWithBalances assumes the caller holds the read lock.
func (l *Ledger) accountsWithBalances(ctx context.Context, activeOnly bool) ([]model.AccountWithBalance, error) {
	accounts, err := l.store.ListAccounts(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]model.AccountWithBalance, 0, len(accounts))
	for _, account := range accounts {
		transactions, err := l.store.TransactionsByAccount(ctx, account.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, model.AccountWithBalance{
			Account: account,
			Balance: CurrentBalance(account, transactions),
		})
	}
	return result, nil
}
