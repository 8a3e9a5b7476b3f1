// Package model defines the entities of the ledger: accounts, categories,
// transactions and transfers, plus the report payloads derived from them.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType identifies what kind of account a balance belongs to. The
// type drives the sign convention: a credit account's balance is the amount
// owed, every other type holds value.
type AccountType string

// Supported account types.
const (
	AccountCash       AccountType = "cash"
	AccountDebit      AccountType = "debit"
	AccountCredit     AccountType = "credit"
	AccountSavings    AccountType = "savings"
	AccountInvestment AccountType = "investment"
)

// Valid reports whether t is one of the supported account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountCash, AccountDebit, AccountCredit, AccountSavings, AccountInvestment:
		return true
	}
	return false
}

// AccountFields is the caller-supplied portion of an account. Updates
// replace all fields; pointer fields are null when absent.
type AccountFields struct {
	OpeningBalance  decimal.Decimal  `json:"opening_balance"`
	Name            string           `json:"name"`
	Type            AccountType      `json:"type"`
	Subtype         string           `json:"subtype,omitempty"`
	Currency        string           `json:"currency"`
	CreditLimit     *decimal.Decimal `json:"credit_limit,omitempty"`
	BillingCycleDay *int             `json:"billing_cycle_day,omitempty"`
	PaymentDueDay   *int             `json:"payment_due_day,omitempty"`
}

// Account is a tracked source or destination of money. Accounts are never
// hard-deleted once they carry history; archiving flips IsActive only.
type Account struct {
	AccountFields
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        int64     `json:"id"`
	IsActive  bool      `json:"is_active"`
}

// AccountWithBalance pairs an account with its derived current balance.
type AccountWithBalance struct {
	Account
	Balance decimal.Decimal `json:"balance"`
}
