package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/accrue-app/accrue/internal/common"
	"github.com/accrue-app/accrue/internal/model"
)

// Reset deletes all ledger data and reinstalls the default categories in a
// single transaction. The schema and its version are untouched.
func (s *SQLiteStorage) Reset(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		// Children before parents to satisfy foreign keys.
		tables := []string{"transactions", "transfers", "accounts", "categories"}
		for _, table := range tables {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return common.Storagef(err, "failed to clear %s", table)
			}
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM sqlite_sequence WHERE name IN ('transactions','transfers','accounts','categories')`); err != nil {
			return common.Storagef(err, "failed to reset id sequences")
		}
		if err := seedCategories(tx); err != nil {
			return common.Storagef(err, "failed to reseed categories")
		}
		return nil
	})
}

// ExportRows returns every transaction joined with its account and category
// names, newest first, for CSV export.
func (s *SQLiteStorage) ExportRows(ctx context.Context) ([]model.ExportRow, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, a.name, COALESCE(c.name, ''), t.type, t.amount, t.date,
			COALESCE(t.notes, ''), t.is_recurring
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		LEFT JOIN categories c ON c.id = t.category_id
		ORDER BY t.date DESC, t.id DESC`)
	if err != nil {
		return nil, common.Storagef(err, "failed to query export rows")
	}
	defer func() { _ = rows.Close() }()

	var export []model.ExportRow
	for rows.Next() {
		var (
			row     model.ExportRow
			txnType string
			amount  string
			date    string
		)
		if err := rows.Scan(&row.ID, &row.Account, &row.Category, &txnType,
			&amount, &date, &row.Notes, &row.IsRecurring); err != nil {
			return nil, common.Storagef(err, "failed to scan export row")
		}

		row.Type = model.TransactionType(txnType)
		row.Amount, err = decimalFromDB(amount)
		if err != nil {
			return nil, fmt.Errorf("export row %d amount: %w", row.ID, err)
		}
		row.Date, err = model.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("export row %d date: %w", row.ID, err)
		}
		export = append(export, row)
	}
	if err := rows.Err(); err != nil {
		return nil, common.Storagef(err, "failed to iterate export rows")
	}
	return export, nil
}

// RowCounts reports the number of rows per ledger table, for status output
// and reset confirmations.
func (s *SQLiteStorage) RowCounts(ctx context.Context) (map[string]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	counts := make(map[string]int, 4)
	for _, table := range []string{"accounts", "categories", "transactions", "transfers"} {
		var n int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
			return nil, common.Storagef(err, "failed to count %s", table)
		}
		counts[table] = n
	}
	return counts, nil
}
