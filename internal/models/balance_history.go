package models

import "github.com/shopspring/decimal"

// BalanceHistory rows are append-only snapshots of the sum of all wallet
// balances. They are written opportunistically after mutations and by the
// hourly cron job, never updated or deleted.
type BalanceHistory struct {
	ID           int             `json:"id,omitempty" db:"id,omitempty"`
	TotalBalance decimal.Decimal `json:"total_balance" db:"total_balance"`
	Timestamp    string          `json:"timestamp,omitempty" db:"timestamp,omitempty"`
}
