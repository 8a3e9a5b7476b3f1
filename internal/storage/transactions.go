package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/accrue-app/accrue/internal/common"
	"github.com/accrue-app/accrue/internal/model"
	"github.com/accrue-app/accrue/internal/service"
)

// defaultTransactionLimit caps unfiltered listings so a big ledger never
// produces an unbounded payload.
const defaultTransactionLimit = 500

const transactionSelect = `
	SELECT t.id, t.account_id, t.category_id, t.transfer_id, t.type, t.amount,
		t.date, t.notes, t.is_recurring, t.recurrence_frequency, t.next_due_date,
		t.created_at, t.updated_at,
		a.name AS account_name,
		COALESCE(c.name, '') AS category_name
	FROM transactions t
	JOIN accounts a ON a.id = t.account_id
	LEFT JOIN categories c ON c.id = t.category_id`

// CreateTransaction inserts a new transaction and returns it with its
// assigned id and joined display names.
func (s *SQLiteStorage) CreateTransaction(ctx context.Context, fields model.TransactionFields) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var txErr error
		id, txErr = insertTransaction(ctx, tx, fields, nil)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	return s.GetTransaction(ctx, id)
}

// insertTransaction writes one transaction row. A non-nil transferID tags
// the row as a transfer leg.
func insertTransaction(ctx context.Context, q queryable, fields model.TransactionFields, transferID *int64) (int64, error) {
	result, err := q.ExecContext(ctx, `
		INSERT INTO transactions (account_id, category_id, transfer_id, type,
			amount, date, notes, is_recurring, recurrence_frequency, next_due_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fields.AccountID,
		nullableInt64(fields.CategoryID),
		nullableInt64(transferID),
		string(fields.Type),
		decimalToDB(fields.Amount),
		fields.Date.String(),
		nullableString(fields.Notes),
		fields.IsRecurring,
		nullableString(string(fields.RecurrenceFrequency)),
		nullableDate(fields.NextDueDate),
	)
	if err != nil {
		return 0, common.Storagef(err, "failed to insert transaction")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, common.Storagef(err, "failed to get transaction id")
	}
	return id, nil
}

// GetTransaction retrieves a single transaction by id.
func (s *SQLiteStorage) GetTransaction(ctx context.Context, id int64) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, transactionSelect+` WHERE t.id = ?`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NotFoundf("transaction %d", id)
	}
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// UpdateTransaction replaces all caller-supplied fields of a transaction.
// Transfer-leg protection is enforced one layer up; the store applies what
// it is told.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, id int64, fields model.TransactionFields) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET account_id = ?, category_id = ?, type = ?, amount = ?, date = ?,
			notes = ?, is_recurring = ?, recurrence_frequency = ?,
			next_due_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		fields.AccountID,
		nullableInt64(fields.CategoryID),
		string(fields.Type),
		decimalToDB(fields.Amount),
		fields.Date.String(),
		nullableString(fields.Notes),
		fields.IsRecurring,
		nullableString(string(fields.RecurrenceFrequency)),
		nullableDate(fields.NextDueDate),
		id,
	)
	if err != nil {
		return nil, common.Storagef(err, "failed to update transaction")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, common.Storagef(err, "failed to check update result")
	}
	if affected == 0 {
		return nil, common.NotFoundf("transaction %d", id)
	}

	return s.GetTransaction(ctx, id)
}

// DeleteTransaction removes a transaction by id.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return common.Storagef(err, "failed to delete transaction")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return common.Storagef(err, "failed to check delete result")
	}
	if affected == 0 {
		return common.NotFoundf("transaction %d", id)
	}
	return nil
}

// ListTransactions returns transactions matching the filter, newest first.
// Filter fields combine conjunctively; an empty filter lists everything up
// to the default limit.
func (s *SQLiteStorage) ListTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var (
		conditions []string
		args       []any
	)

	if filter.AccountID != nil {
		conditions = append(conditions, "t.account_id = ?")
		args = append(args, *filter.AccountID)
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, "t.category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if filter.Type != nil {
		conditions = append(conditions, "t.type = ?")
		args = append(args, string(*filter.Type))
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, "t.date >= ?")
		args = append(args, filter.DateFrom.String())
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "t.date <= ?")
		args = append(args, filter.DateTo.String())
	}
	if filter.Search != "" {
		conditions = append(conditions, "(t.notes LIKE ? OR a.name LIKE ? OR c.name LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	query := transactionSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.date DESC, t.id DESC LIMIT ?"

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultTransactionLimit
	}
	args = append(args, limit)

	return s.queryTransactions(ctx, query, args...)
}

// TransactionsByAccount returns every transaction on one account in
// chronological order, oldest first, same-day rows in insertion order.
func (s *SQLiteStorage) TransactionsByAccount(ctx context.Context, accountID int64) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	return s.queryTransactions(ctx,
		transactionSelect+` WHERE t.account_id = ? ORDER BY t.date ASC, t.id ASC`,
		accountID)
}

// TransactionsInRange returns all transactions dated within [from, to],
// optionally excluding transfer legs.
func (s *SQLiteStorage) TransactionsInRange(ctx context.Context, from, to model.Date, includeTransferLegs bool) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := transactionSelect + ` WHERE t.date >= ? AND t.date <= ?`
	if !includeTransferLegs {
		query += ` AND t.transfer_id IS NULL`
	}
	query += ` ORDER BY t.date ASC, t.id ASC`

	return s.queryTransactions(ctx, query, from.String(), to.String())
}

func (s *SQLiteStorage) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.Storagef(err, "failed to query transactions")
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, common.Storagef(err, "failed to iterate transactions")
	}
	return transactions, nil
}

func scanTransaction(row scanner) (*model.Transaction, error) {
	var (
		txn        model.Transaction
		categoryID sql.NullInt64
		transferID sql.NullInt64
		txnType    string
		amount     string
		date       string
		notes      sql.NullString
		frequency  sql.NullString
		nextDue    sql.NullString
	)

	err := row.Scan(
		&txn.ID,
		&txn.AccountID,
		&categoryID,
		&transferID,
		&txnType,
		&amount,
		&date,
		&notes,
		&txn.IsRecurring,
		&frequency,
		&nextDue,
		&txn.CreatedAt,
		&txn.UpdatedAt,
		&txn.AccountName,
		&txn.CategoryName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, common.Storagef(err, "failed to scan transaction")
	}

	txn.CategoryID = int64Ptr(categoryID)
	txn.TransferID = int64Ptr(transferID)
	txn.Type = model.TransactionType(txnType)
	txn.Notes = notes.String
	txn.RecurrenceFrequency = model.RecurrenceFrequency(frequency.String)

	txn.Amount, err = decimalFromDB(amount)
	if err != nil {
		return nil, fmt.Errorf("transaction %d amount: %w", txn.ID, err)
	}
	txn.Date, err = model.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("transaction %d date: %w", txn.ID, err)
	}
	txn.NextDueDate, err = nullableDateFromDB(nextDue)
	if err != nil {
		return nil, fmt.Errorf("transaction %d next due date: %w", txn.ID, err)
	}

	return &txn, nil
}
