package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferType labels why money moved. A credit_payment behaves exactly
// like a regular transfer; the distinction only affects reporting labels.
type TransferType string

// Supported transfer types.
const (
	TransferRegular       TransferType = "regular"
	TransferCreditPayment TransferType = "credit_payment"
)

// Valid reports whether t is a supported transfer type.
func (t TransferType) Valid() bool {
	return t == TransferRegular || t == TransferCreditPayment
}

// TransferFields is the caller-supplied portion of a transfer.
type TransferFields struct {
	Date          Date            `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Notes         string          `json:"notes,omitempty"`
	Type          TransferType    `json:"transfer_type"`
	FromAccountID int64           `json:"from_account_id"`
	ToAccountID   int64           `json:"to_account_id"`
}

// Transfer moves money between two accounts. It owns exactly two
// transaction legs: an expense on the source account and an income on the
// destination, both tagged with the transfer's id. The legs never exist
// without the transfer, and the transfer never exists with fewer than both.
type Transfer struct {
	TransferFields
	CreatedAt time.Time `json:"created_at"`
	ID        int64     `json:"id"`
}
