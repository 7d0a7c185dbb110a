package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SnapshotStore is the slice of the data layer needed to append a total
// balance snapshot.
type SnapshotStore interface {
	TotalBalance(ctx context.Context) (decimal.Decimal, error)
	InsertBalanceSnapshot(ctx context.Context, total decimal.Decimal, timestamp string) error
}

// RecordBalanceSnapshot sums all wallet balances and appends the result to
// balance_history. Callers on mutation paths treat a failure here as
// best-effort: logged, never surfaced.
func RecordBalanceSnapshot(ctx context.Context, store SnapshotStore) error {
	total, err := store.TotalBalance(ctx)
	if err != nil {
		return err
	}
	return store.InsertBalanceSnapshot(ctx, total, time.Now().UTC().Format(TimestampLayout))
}
