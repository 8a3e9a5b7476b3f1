package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/accrue-app/accrue/internal/common"
	"github.com/accrue-app/accrue/internal/model"
)

const accountColumns = `id, name, type, subtype, currency, opening_balance,
	credit_limit, billing_cycle_day, payment_due_day, is_active, created_at, updated_at`

// CreateAccount inserts a new account and returns it with its assigned id.
func (s *SQLiteStorage) CreateAccount(ctx context.Context, fields model.AccountFields) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (name, type, subtype, currency, opening_balance,
			credit_limit, billing_cycle_day, payment_due_day)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		fields.Name,
		string(fields.Type),
		nullableString(fields.Subtype),
		fields.Currency,
		decimalToDB(fields.OpeningBalance),
		nullableDecimalToDB(fields.CreditLimit),
		nullableInt(fields.BillingCycleDay),
		nullableInt(fields.PaymentDueDay),
	)
	if err != nil {
		return nil, common.Storagef(err, "failed to insert account")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, common.Storagef(err, "failed to get account id")
	}

	return s.GetAccount(ctx, id)
}

// GetAccount retrieves a single account by id.
func (s *SQLiteStorage) GetAccount(ctx context.Context, id int64) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)

	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NotFoundf("account %d", id)
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// ListAccounts returns all accounts ordered by name. With activeOnly set,
// archived accounts are omitted.
func (s *SQLiteStorage) ListAccounts(ctx context.Context, activeOnly bool) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + accountColumns + ` FROM accounts`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY name COLLATE NOCASE`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, common.Storagef(err, "failed to query accounts")
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		account, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, common.Storagef(err, "failed to iterate accounts")
	}
	return accounts, nil
}

// UpdateAccount replaces all caller-supplied fields of an account.
func (s *SQLiteStorage) UpdateAccount(ctx context.Context, id int64, fields model.AccountFields) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET name = ?, type = ?, subtype = ?, currency = ?, opening_balance = ?,
			credit_limit = ?, billing_cycle_day = ?, payment_due_day = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		fields.Name,
		string(fields.Type),
		nullableString(fields.Subtype),
		fields.Currency,
		decimalToDB(fields.OpeningBalance),
		nullableDecimalToDB(fields.CreditLimit),
		nullableInt(fields.BillingCycleDay),
		nullableInt(fields.PaymentDueDay),
		id,
	)
	if err != nil {
		return nil, common.Storagef(err, "failed to update account")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, common.Storagef(err, "failed to check update result")
	}
	if affected == 0 {
		return nil, common.NotFoundf("account %d", id)
	}

	return s.GetAccount(ctx, id)
}

// SetAccountActive archives or unarchives an account. Flipping to the
// current state is a no-op, not an error.
func (s *SQLiteStorage) SetAccountActive(ctx context.Context, id int64, active bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE accounts SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		active, id)
	if err != nil {
		return common.Storagef(err, "failed to update account state")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return common.Storagef(err, "failed to check update result")
	}
	if affected == 0 {
		return common.NotFoundf("account %d", id)
	}
	return nil
}

// scanner matches both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*model.Account, error) {
	var (
		account        model.Account
		accountType    string
		subtype        sql.NullString
		openingBalance string
		creditLimit    sql.NullString
		billingDay     sql.NullInt64
		dueDay         sql.NullInt64
	)

	err := row.Scan(
		&account.ID,
		&account.Name,
		&accountType,
		&subtype,
		&account.Currency,
		&openingBalance,
		&creditLimit,
		&billingDay,
		&dueDay,
		&account.IsActive,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, common.Storagef(err, "failed to scan account")
	}

	account.Type = model.AccountType(accountType)
	account.Subtype = subtype.String

	account.OpeningBalance, err = decimalFromDB(openingBalance)
	if err != nil {
		return nil, fmt.Errorf("account %d opening balance: %w", account.ID, err)
	}
	account.CreditLimit, err = nullableDecimalFromDB(creditLimit)
	if err != nil {
		return nil, fmt.Errorf("account %d credit limit: %w", account.ID, err)
	}
	account.BillingCycleDay = intPtr(billingDay)
	account.PaymentDueDay = intPtr(dueDay)

	return &account, nil
}
