package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/accrue-app/accrue/internal/common"
	"github.com/accrue-app/accrue/internal/model"
)

const transferColumns = `id, from_account_id, to_account_id, amount, date,
	notes, transfer_type, created_at`

// CreateTransfer writes the transfer row and both legs in one transaction:
// an expense on the source account and an income on the destination, each
// tagged with the transfer's id. Either all three rows land or none do.
func (s *SQLiteStorage) CreateTransfer(ctx context.Context, fields model.TransferFields) (*model.Transfer, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, txErr := tx.ExecContext(ctx, `
			INSERT INTO transfers (from_account_id, to_account_id, amount, date, notes, transfer_type)
			VALUES (?, ?, ?, ?, ?, ?)`,
			fields.FromAccountID,
			fields.ToAccountID,
			decimalToDB(fields.Amount),
			fields.Date.String(),
			nullableString(fields.Notes),
			string(fields.Type),
		)
		if txErr != nil {
			return common.Storagef(txErr, "failed to insert transfer")
		}

		id, txErr = result.LastInsertId()
		if txErr != nil {
			return common.Storagef(txErr, "failed to get transfer id")
		}

		legs := []model.TransactionFields{
			{
				AccountID: fields.FromAccountID,
				Type:      model.TypeExpense,
				Amount:    fields.Amount,
				Date:      fields.Date,
				Notes:     fields.Notes,
			},
			{
				AccountID: fields.ToAccountID,
				Type:      model.TypeIncome,
				Amount:    fields.Amount,
				Date:      fields.Date,
				Notes:     fields.Notes,
			},
		}
		for _, leg := range legs {
			if _, txErr = insertTransaction(ctx, tx, leg, &id); txErr != nil {
				return fmt.Errorf("failed to insert transfer leg: %w", txErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetTransfer(ctx, id)
}

// GetTransfer retrieves a single transfer by id.
func (s *SQLiteStorage) GetTransfer(ctx context.Context, id int64) (*model.Transfer, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+transferColumns+` FROM transfers WHERE id = ?`, id)

	transfer, err := scanTransfer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NotFoundf("transfer %d", id)
	}
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// ListTransfers returns all transfers, newest first.
func (s *SQLiteStorage) ListTransfers(ctx context.Context) ([]model.Transfer, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+transferColumns+` FROM transfers ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, common.Storagef(err, "failed to query transfers")
	}
	defer func() { _ = rows.Close() }()

	var transfers []model.Transfer
	for rows.Next() {
		transfer, scanErr := scanTransfer(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		transfers = append(transfers, *transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, common.Storagef(err, "failed to iterate transfers")
	}
	return transfers, nil
}

// DeleteTransfer removes a transfer and both of its legs atomically.
func (s *SQLiteStorage) DeleteTransfer(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, txErr := tx.ExecContext(ctx, `DELETE FROM transfers WHERE id = ?`, id)
		if txErr != nil {
			return common.Storagef(txErr, "failed to delete transfer")
		}

		affected, txErr := result.RowsAffected()
		if txErr != nil {
			return common.Storagef(txErr, "failed to check delete result")
		}
		if affected == 0 {
			return common.NotFoundf("transfer %d", id)
		}

		if _, txErr = tx.ExecContext(ctx,
			`DELETE FROM transactions WHERE transfer_id = ?`, id); txErr != nil {
			return common.Storagef(txErr, "failed to delete transfer legs")
		}
		return nil
	})
}

func scanTransfer(row scanner) (*model.Transfer, error) {
	var (
		transfer     model.Transfer
		amount       string
		date         string
		notes        sql.NullString
		transferType string
	)

	err := row.Scan(
		&transfer.ID,
		&transfer.FromAccountID,
		&transfer.ToAccountID,
		&amount,
		&date,
		&notes,
		&transferType,
		&transfer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, common.Storagef(err, "failed to scan transfer")
	}

	transfer.Notes = notes.String
	transfer.Type = model.TransferType(transferType)

	transfer.Amount, err = decimalFromDB(amount)
	if err != nil {
		return nil, fmt.Errorf("transfer %d amount: %w", transfer.ID, err)
	}
	transfer.Date, err = model.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("transfer %d date: %w", transfer.ID, err)
	}

	return &transfer, nil
}
