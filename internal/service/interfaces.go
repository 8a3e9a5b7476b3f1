// Package service defines the contracts between the ledger engine and its
// persistence layer.
package service

import (
	"context"

	"github.com/accrue-app/accrue/internal/model"
)

// TransactionFilter narrows a transaction listing. All fields are optional
// and combine conjunctively. Search matches notes and the display names of
// the owning account and category.
type TransactionFilter struct {
	AccountID  *int64
	CategoryID *int64
	Type       *model.TransactionType
	DateFrom   *model.Date
	DateTo     *model.Date
	Search     string
	Limit      int
}

// Storage is the contract for the durable ledger store. Every multi-row
// effect (transfer create/delete, reset, restore) is atomic: either fully
// applied or not observable at all.
type Storage interface {
	// Account operations
	CreateAccount(ctx context.Context, fields model.AccountFields) (*model.Account, error)
	GetAccount(ctx context.Context, id int64) (*model.Account, error)
	ListAccounts(ctx context.Context, activeOnly bool) ([]model.Account, error)
	UpdateAccount(ctx context.Context, id int64, fields model.AccountFields) (*model.Account, error)
	SetAccountActive(ctx context.Context, id int64, active bool) error

	// Category operations
	CreateCategory(ctx context.Context, fields model.CategoryFields) (*model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	ListCategories(ctx context.Context, includeArchived bool) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id int64, fields model.CategoryFields) (*model.Category, error)
	SetCategoryArchived(ctx context.Context, id int64, archived bool) error

	// Transaction operations
	CreateTransaction(ctx context.Context, fields model.TransactionFields) (*model.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, fields model.TransactionFields) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	TransactionsByAccount(ctx context.Context, accountID int64) ([]model.Transaction, error)
	TransactionsInRange(ctx context.Context, from, to model.Date, includeTransferLegs bool) ([]model.Transaction, error)

	// Transfer operations
	CreateTransfer(ctx context.Context, fields model.TransferFields) (*model.Transfer, error)
	GetTransfer(ctx context.Context, id int64) (*model.Transfer, error)
	ListTransfers(ctx context.Context) ([]model.Transfer, error)
	DeleteTransfer(ctx context.Context, id int64) error

	// Maintenance operations
	Reset(ctx context.Context) error
	ExportRows(ctx context.Context) ([]model.ExportRow, error)
	RowCounts(ctx context.Context) (map[string]int, error)
	Backup(ctx context.Context, destPath string) error
	Restore(ctx context.Context, srcPath string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
