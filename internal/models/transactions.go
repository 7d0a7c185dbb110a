package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Transaction amounts are always stored positive; the sign of the effect on
// a wallet balance is derived from Type (income adds, expense subtracts).
type Transaction struct {
	ID          int             `json:"id,omitempty" db:"id,omitempty"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Description string          `json:"description,omitempty" db:"description,omitempty"`
	CategoryID  sql.NullInt64   `json:"category_id,omitempty" db:"category_id,omitempty"`
	WalletID    int             `json:"wallet_id,omitempty" db:"wallet_id,omitempty"`
	Type        string          `json:"type,omitempty" db:"type,omitempty"`
	Reference   string          `json:"reference,omitempty" db:"reference,omitempty"`
	Date        string          `json:"date,omitempty" db:"date,omitempty"`
	CreatedAt   sql.NullString  `json:"created_at,omitempty" db:"created_at,omitempty"`
}

// SignedAmount returns the effect of the transaction on its wallet's balance.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}
