package ledger

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/accrue-app/accrue/internal/common"
	"github.com/accrue-app/accrue/internal/model"
)

var exportHeader = []string{"id", "account", "category", "type", "amount", "date", "notes", "is_recurring"}

// ExportCSV writes every transaction to w as CSV, newest first. Amounts are
// rendered with two decimal places and commas inside notes are flattened to
// semicolons.
func (l *Ledger) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rows, err := l.store.ExportRows(ctx)
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return 0, common.Storagef(err, "failed to write export header")
	}

	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.ID, 10),
			row.Account,
			row.Category,
			string(row.Type),
			row.Amount.StringFixed(2),
			row.Date.String(),
			strings.ReplaceAll(row.Notes, ",", ";"),
			strconv.FormatBool(row.IsRecurring),
		}
		if err := writer.Write(record); err != nil {
			return 0, common.Storagef(err, "failed to write export row")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, common.Storagef(err, "failed to flush export")
	}
	return len(rows), nil
}

// ExportRows returns the joined export rows without serializing them, for
// callers that render their own output.
func (l *Ledger) ExportRows(ctx context.Context) ([]model.ExportRow, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.ExportRows(ctx)
}

// Reset wipes all ledger data and reinstalls the default categories.
func (l *Ledger) Reset(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Reset(ctx)
}

// RowCounts reports how many rows each ledger table holds.
func (l *Ledger) RowCounts(ctx context.Context) (map[string]int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.RowCounts(ctx)
}

// Backup snapshots the database to destPath.
func (l *Ledger) Backup(ctx context.Context, destPath string) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.Backup(ctx, destPath)
}

// Restore replaces the database with the snapshot at srcPath. It holds the
// write lock for the whole swap, so no query can touch the connection
// while the file underneath it changes.
func (l *Ledger) Restore(ctx context.Context, srcPath string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Restore(ctx, srcPath); err != nil {
		return err
	}
	// A restored snapshot may predate the current schema.
	if err := l.store.Migrate(ctx); err != nil {
		return fmt.Errorf("restored database needs migration: %w", err)
	}
	return nil
}
