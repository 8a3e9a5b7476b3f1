package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial ledger schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS accounts (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					type TEXT NOT NULL CHECK (type IN ('cash','debit','credit','savings','investment')),
					subtype TEXT,
					currency TEXT NOT NULL DEFAULT 'USD',
					opening_balance TEXT NOT NULL DEFAULT '0',
					credit_limit TEXT,
					billing_cycle_day INTEGER,
					payment_due_day INTEGER,
					is_active INTEGER NOT NULL DEFAULT 1,
					created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS categories (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					direction TEXT NOT NULL CHECK (direction IN ('income','expense','both')),
					icon TEXT,
					is_archived INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS transfers (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					from_account_id INTEGER NOT NULL REFERENCES accounts(id),
					to_account_id INTEGER NOT NULL REFERENCES accounts(id),
					amount TEXT NOT NULL,
					date TEXT NOT NULL,
					notes TEXT,
					transfer_type TEXT NOT NULL DEFAULT 'regular' CHECK (transfer_type IN ('regular','credit_payment')),
					created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
					CHECK (from_account_id <> to_account_id)
				)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					account_id INTEGER NOT NULL REFERENCES accounts(id),
					category_id INTEGER REFERENCES categories(id),
					transfer_id INTEGER REFERENCES transfers(id),
					type TEXT NOT NULL CHECK (type IN ('income','expense')),
					amount TEXT NOT NULL,
					date TEXT NOT NULL,
					notes TEXT,
					is_recurring INTEGER NOT NULL DEFAULT 0,
					recurrence_frequency TEXT CHECK (recurrence_frequency IN ('daily','weekly','monthly','yearly')),
					next_due_date TEXT,
					created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE INDEX idx_transactions_date ON transactions(date)`,
				`CREATE INDEX idx_transactions_account ON transactions(account_id)`,
				`CREATE INDEX idx_transactions_category ON transactions(category_id)`,
				`CREATE INDEX idx_transactions_transfer ON transactions(transfer_id)`,
				`CREATE INDEX idx_accounts_active ON accounts(is_active)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Seed default categories",
		Up: func(tx *sql.Tx) error {
			var count int
			if err := tx.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
				return fmt.Errorf("failed to count categories: %w", err)
			}
			if count > 0 {
				return nil
			}
			return seedCategories(tx)
		},
	},
}

// defaultCategories is the category set installed on first run and after a
// full reset.
var defaultCategories = []struct {
	Name      string
	Direction string
	Icon      string
}{
	{"Salary", "income", "💼"},
	{"Freelance", "income", "💻"},
	{"Investments", "income", "📈"},
	{"Other Income", "income", "💰"},
	{"Food & Dining", "expense", "🍽️"},
	{"Transportation", "expense", "🚗"},
	{"Shopping", "expense", "🛍️"},
	{"Utilities", "expense", "💡"},
	{"Entertainment", "expense", "🎬"},
	{"Health", "expense", "🏥"},
	{"Education", "expense", "📚"},
	{"Housing", "expense", "🏠"},
	{"Other Expense", "expense", "💸"},
}

func seedCategories(tx *sql.Tx) error {
	for _, c := range defaultCategories {
		if _, err := tx.Exec(
			`INSERT INTO categories (name, direction, icon) VALUES (?, ?, ?)`,
			c.Name, c.Direction, c.Icon,
		); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
		}
	}
	return nil
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
