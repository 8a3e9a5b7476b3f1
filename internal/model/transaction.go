package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

// Supported transaction types.
const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is a supported transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// RecurrenceFrequency describes how often a recurring transaction repeats.
// Recurrence is metadata only; nothing in the engine fires it.
type RecurrenceFrequency string

// Supported recurrence frequencies.
const (
	FrequencyDaily   RecurrenceFrequency = "daily"
	FrequencyWeekly  RecurrenceFrequency = "weekly"
	FrequencyMonthly RecurrenceFrequency = "monthly"
	FrequencyYearly  RecurrenceFrequency = "yearly"
)

// Valid reports whether f is a supported frequency.
func (f RecurrenceFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// TransactionFields is the caller-supplied portion of a transaction.
// Amounts are always stored positive; the sign a transaction contributes to
// a balance is derived from its type and the account's type.
type TransactionFields struct {
	Date                Date                `json:"date"`
	Amount              decimal.Decimal     `json:"amount"`
	Notes               string              `json:"notes,omitempty"`
	Type                TransactionType     `json:"type"`
	RecurrenceFrequency RecurrenceFrequency `json:"recurrence_frequency,omitempty"`
	NextDueDate         *Date               `json:"next_due_date,omitempty"`
	CategoryID          *int64              `json:"category_id,omitempty"`
	AccountID           int64               `json:"account_id"`
	IsRecurring         bool                `json:"is_recurring"`
}

// Transaction is one ledger entry on a single account. A non-nil TransferID
// marks the entry as a transfer leg, which may only be changed or removed
// through its parent transfer.
type Transaction struct {
	TransactionFields
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	AccountName  string    `json:"account_name,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	TransferID   *int64    `json:"transfer_id,omitempty"`
	ID           int64     `json:"id"`
}

// IsTransferLeg reports whether the transaction was generated by a transfer.
func (t *Transaction) IsTransferLeg() bool {
	return t.TransferID != nil
}
