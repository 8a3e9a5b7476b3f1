package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/accrue-app/accrue/internal/common"
	"github.com/accrue-app/accrue/internal/config"
	"github.com/accrue-app/accrue/internal/ledger"
	"github.com/accrue-app/accrue/internal/model"
	"github.com/accrue-app/accrue/internal/storage"
)

// initLedger opens the database, runs migrations and wraps the store in the
// ledger engine. The caller owns the returned close function.
func initLedger(ctx context.Context) (*ledger.Ledger, func(), error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/accrue/accrue.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return ledger.New(store), func() { _ = store.Close() }, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, common.Validationf("invalid id %q", raw)
	}
	return id, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, common.Validationf("invalid amount %q", raw)
	}
	return amount, nil
}

// parseDateFlag parses an optional date flag, defaulting to today.
func parseDateFlag(raw string) (model.Date, error) {
	if raw == "" {
		return model.Today(), nil
	}
	return model.ParseDate(raw)
}

// money formats a decimal with two places for table output.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
