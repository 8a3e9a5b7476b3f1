package ledger

import (
	"context"
	"strings"

	"github.com/accrue-app/accrue/internal/common"
	"github.com/accrue-app/accrue/internal/model"
	"github.com/accrue-app/accrue/internal/service"
)

// CreateAccount validates and stores a new account.
func (l *Ledger) CreateAccount(ctx context.Context, fields model.AccountFields) (*model.Account, error) {
	normalized, err := validateAccountFields(fields)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.CreateAccount(ctx, normalized)
}

// GetAccount retrieves one account.
func (l *Ledger) GetAccount(ctx context.Context, id int64) (*model.Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.GetAccount(ctx, id)
}

// ListAccounts lists accounts, optionally restricted to active ones.
func (l *Ledger) ListAccounts(ctx context.Context, activeOnly bool) ([]model.Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.ListAccounts(ctx, activeOnly)
}

// UpdateAccount validates and replaces an account's fields.
func (l *Ledger) UpdateAccount(ctx context.Context, id int64, fields model.AccountFields) (*model.Account, error) {
	normalized, err := validateAccountFields(fields)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.UpdateAccount(ctx, id, normalized)
}

// SetAccountActive archives or reactivates an account. Repeating the
// current state succeeds without effect.
func (l *Ledger) SetAccountActive(ctx context.Context, id int64, active bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.SetAccountActive(ctx, id, active)
}

func validateAccountFields(fields model.AccountFields) (model.AccountFields, error) {
	fields.Name = strings.TrimSpace(fields.Name)
	if fields.Name == "" {
		return fields, common.Validationf("account name is required")
	}
	if !fields.Type.Valid() {
		return fields, common.Validationf("invalid account type %q", fields.Type)
	}
	if fields.Currency == "" {
		fields.Currency = "USD"
	}

	if fields.Type != model.AccountCredit {
		if fields.CreditLimit != nil || fields.BillingCycleDay != nil || fields.PaymentDueDay != nil {
			return fields, common.Validationf("credit fields are only valid on credit accounts")
		}
		return fields, nil
	}

	if fields.CreditLimit != nil && fields.CreditLimit.IsNegative() {
		return fields, common.Validationf("credit limit cannot be negative")
	}
	for name, day := range map[string]*int{
		"billing_cycle_day": fields.BillingCycleDay,
		"payment_due_day":   fields.PaymentDueDay,
	} {
		if day != nil && (*day < 1 || *day > 31) {
			return fields, common.Validationf("%s must be between 1 and 31", name)
		}
	}
	return fields, nil
}

// CreateCategory validates and stores a new category.
func (l *Ledger) CreateCategory(ctx context.Context, fields model.CategoryFields) (*model.Category, error) {
	if err := validateCategoryFields(fields); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.CreateCategory(ctx, fields)
}

// GetCategory retrieves one category.
func (l *Ledger) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.GetCategory(ctx, id)
}

// ListCategories lists categories, optionally including archived ones.
func (l *Ledger) ListCategories(ctx context.Context, includeArchived bool) ([]model.Category, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.ListCategories(ctx, includeArchived)
}

// UpdateCategory validates and replaces a category's fields.
func (l *Ledger) UpdateCategory(ctx context.Context, id int64, fields model.CategoryFields) (*model.Category, error) {
	if err := validateCategoryFields(fields); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.UpdateCategory(ctx, id, fields)
}

// SetCategoryArchived archives or restores a category. Transactions keep
// their references to archived categories.
func (l *Ledger) SetCategoryArchived(ctx context.Context, id int64, archived bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.SetCategoryArchived(ctx, id, archived)
}

func validateCategoryFields(fields model.CategoryFields) error {
	if strings.TrimSpace(fields.Name) == "" {
		return common.Validationf("category name is required")
	}
	if !fields.Direction.Valid() {
		return common.Validationf("invalid category direction %q", fields.Direction)
	}
	return nil
}

// CreateTransaction validates and stores a new transaction.
func (l *Ledger) CreateTransaction(ctx context.Context, fields model.TransactionFields) (*model.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.validateTransactionFields(ctx, fields); err != nil {
		return nil, err
	}
	return l.store.CreateTransaction(ctx, fields)
}

// GetTransaction retrieves one transaction.
func (l *Ledger) GetTransaction(ctx context.Context, id int64) (*model.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.GetTransaction(ctx, id)
}

// ListTransactions lists transactions matching the filter, newest first.
func (l *Ledger) ListTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.ListTransactions(ctx, filter)
}

// UpdateTransaction validates and replaces a transaction's fields. Transfer
// legs are immutable here; they change only through their parent transfer.
func (l *Ledger) UpdateTransaction(ctx context.Context, id int64, fields model.TransactionFields) (*model.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.store.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.IsTransferLeg() {
		return nil, common.Invariantf("transaction %d is a transfer leg; edit the transfer instead", id)
	}
	if err := l.validateTransactionFields(ctx, fields); err != nil {
		return nil, err
	}
	return l.store.UpdateTransaction(ctx, id, fields)
}

// DeleteTransaction removes a standalone transaction. Transfer legs are
// refused; deleting one leg alone would silently unbalance two accounts.
func (l *Ledger) DeleteTransaction(ctx context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.store.GetTransaction(ctx, id)
	if err != nil {
		return err
	}
	if existing.IsTransferLeg() {
		return common.Invariantf("transaction %d is a transfer leg; delete the transfer instead", id)
	}
	return l.store.DeleteTransaction(ctx, id)
}

func (l *Ledger) validateTransactionFields(ctx context.Context, fields model.TransactionFields) error {
	if !fields.Type.Valid() {
		return common.Validationf("invalid transaction type %q", fields.Type)
	}
	if !fields.Amount.IsPositive() {
		return common.Validationf("amount must be positive")
	}
	if fields.Date.IsZero() {
		return common.Validationf("date is required")
	}
	if fields.IsRecurring {
		if !fields.RecurrenceFrequency.Valid() {
			return common.Validationf("invalid recurrence frequency %q", fields.RecurrenceFrequency)
		}
	} else if fields.RecurrenceFrequency != "" || fields.NextDueDate != nil {
		return common.Validationf("recurrence fields require is_recurring")
	}

	if _, err := l.store.GetAccount(ctx, fields.AccountID); err != nil {
		if common.IsNotFound(err) {
			return common.Validationf("account %d does not exist", fields.AccountID)
		}
		return err
	}

	if fields.CategoryID != nil {
		category, err := l.store.GetCategory(ctx, *fields.CategoryID)
		if err != nil {
			if common.IsNotFound(err) {
				return common.Validationf("category %d does not exist", *fields.CategoryID)
			}
			return err
		}
		if !category.Direction.Admits(fields.Type) {
			return common.Validationf("category %q does not accept %s transactions", category.Name, fields.Type)
		}
	}
	return nil
}

// CreateTransfer validates and stores a transfer along with both legs.
func (l *Ledger) CreateTransfer(ctx context.Context, fields model.TransferFields) (*model.Transfer, error) {
	if fields.Type == "" {
		fields.Type = model.TransferRegular
	}
	if !fields.Type.Valid() {
		return nil, common.Validationf("invalid transfer type %q", fields.Type)
	}
	if !fields.Amount.IsPositive() {
		return nil, common.Validationf("amount must be positive")
	}
	if fields.Date.IsZero() {
		return nil, common.Validationf("date is required")
	}
	if fields.FromAccountID == fields.ToAccountID {
		return nil, common.Validationf("source and destination accounts must differ")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, id := range []int64{fields.FromAccountID, fields.ToAccountID} {
		if _, err := l.store.GetAccount(ctx, id); err != nil {
			if common.IsNotFound(err) {
				return nil, common.Validationf("account %d does not exist", id)
			}
			return nil, err
		}
	}

	return l.store.CreateTransfer(ctx, fields)
}

// GetTransfer retrieves one transfer.
func (l *Ledger) GetTransfer(ctx context.Context, id int64) (*model.Transfer, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.GetTransfer(ctx, id)
}

// ListTransfers lists all transfers, newest first.
func (l *Ledger) ListTransfers(ctx context.Context) ([]model.Transfer, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.ListTransfers(ctx)
}

// DeleteTransfer removes a transfer and both legs in one step.
func (l *Ledger) DeleteTransfer(ctx context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.DeleteTransfer(ctx, id)
}
