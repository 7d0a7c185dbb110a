package models

import "github.com/shopspring/decimal"

type Wallet struct {
	ID        int             `json:"id,omitempty" db:"id,omitempty"`
	Name      string          `json:"name,omitempty" db:"name,omitempty"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	CreatedAt string          `json:"created_at,omitempty" db:"created_at,omitempty"`
}
