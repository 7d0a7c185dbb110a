package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name string
		txn  Transaction
		want decimal.Decimal
	}{
		{"income adds", Transaction{Amount: decimal.NewFromInt(250), Type: TypeIncome}, decimal.NewFromInt(250)},
		{"expense subtracts", Transaction{Amount: decimal.NewFromInt(250), Type: TypeExpense}, decimal.NewFromInt(-250)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.txn.SignedAmount(); !got.Equal(tt.want) {
				t.Errorf("SignedAmount() = %s, want %s", got, tt.want)
			}
		})
	}
}

// Deleting a transaction compensates the wallet with the opposite of its
// original effect: removing income of amount A lowers the balance by A,
// removing an expense of amount A raises it by A.
func TestDeleteCompensation(t *testing.T) {
	balance := decimal.NewFromInt(1000)

	tests := []struct {
		name string
		txn  Transaction
		want decimal.Decimal
	}{
		{
			name: "deleting income lowers the balance",
			txn:  Transaction{Amount: decimal.NewFromInt(300), Type: TypeIncome},
			want: decimal.NewFromInt(700),
		},
		{
			name: "deleting expense raises the balance",
			txn:  Transaction{Amount: decimal.NewFromInt(300), Type: TypeExpense},
			want: decimal.NewFromInt(1300),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := balance.Sub(tt.txn.SignedAmount())
			if !got.Equal(tt.want) {
				t.Errorf("compensated balance = %s, want %s", got, tt.want)
			}
		})
	}
}
