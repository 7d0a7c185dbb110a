package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// fakeTransferStore implements TransferStore in memory, with switchable
// failure points to exercise partial-failure behavior.
type fakeTransferStore struct {
	wallets      []models.Wallet
	transactions []models.Transaction
	snapshots    []decimal.Decimal

	listErr     error
	failDebitOf int // wallet id whose balance update fails
	insertErr   error
	snapshotErr error

	balanceUpdates int
}

func (f *fakeTransferStore) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	wallets := make([]models.Wallet, len(f.wallets))
	copy(wallets, f.wallets)
	return wallets, nil
}

func (f *fakeTransferStore) UpdateWalletBalance(ctx context.Context, id int, expected, balance decimal.Decimal) error {
	if f.failDebitOf == id {
		return errors.New("forced update failure")
	}
	for i := range f.wallets {
		if f.wallets[i].ID == id {
			if !f.wallets[i].Balance.Equal(expected) {
				return errors.New("balance changed concurrently")
			}
			f.wallets[i].Balance = balance
			f.balanceUpdates++
			return nil
		}
	}
	return errors.New("wallet not found")
}

func (f *fakeTransferStore) InsertTransaction(ctx context.Context, t models.Transaction) (int, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.transactions = append(f.transactions, t)
	return len(f.transactions), nil
}

func (f *fakeTransferStore) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, w := range f.wallets {
		total = total.Add(w.Balance)
	}
	return total, nil
}

func (f *fakeTransferStore) InsertBalanceSnapshot(ctx context.Context, total decimal.Decimal, timestamp string) error {
	if f.snapshotErr != nil {
		return f.snapshotErr
	}
	f.snapshots = append(f.snapshots, total)
	return nil
}

func (f *fakeTransferStore) balanceOf(t *testing.T, id int) decimal.Decimal {
	t.Helper()
	for _, w := range f.wallets {
		if w.ID == id {
			return w.Balance
		}
	}
	t.Fatalf("wallet %d not found", id)
	return decimal.Zero
}

func newTestStore() *fakeTransferStore {
	return &fakeTransferStore{
		wallets: []models.Wallet{
			{ID: 1, Name: "Checking", Balance: decimal.NewFromInt(1000)},
			{ID: 2, Name: "Savings", Balance: decimal.NewFromInt(500)},
		},
	}
}

func TestTransferSuccess(t *testing.T) {
	store := newTestStore()
	coordinator := NewTransferCoordinator(store)

	result, err := coordinator.Transfer(context.Background(), TransferRequest{
		FromWalletID: 1,
		ToWalletID:   2,
		Amount:       decimal.NewFromInt(300),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := store.balanceOf(t, 1); !got.Equal(decimal.NewFromInt(700)) {
		t.Errorf("source balance = %s, want 700", got)
	}
	if got := store.balanceOf(t, 2); !got.Equal(decimal.NewFromInt(800)) {
		t.Errorf("destination balance = %s, want 800", got)
	}

	if len(store.transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(store.transactions))
	}

	expense, income := store.transactions[0], store.transactions[1]
	if expense.Type != models.TypeExpense || expense.WalletID != 1 {
		t.Errorf("first leg should be an expense on wallet 1, got %+v", expense)
	}
	if income.Type != models.TypeIncome || income.WalletID != 2 {
		t.Errorf("second leg should be an income on wallet 2, got %+v", income)
	}
	if !expense.Amount.Equal(decimal.NewFromInt(300)) || !income.Amount.Equal(decimal.NewFromInt(300)) {
		t.Errorf("both legs should carry amount 300, got %s and %s", expense.Amount, income.Amount)
	}
	if !expense.SignedAmount().Add(income.SignedAmount()).IsZero() {
		t.Error("legs should sum to zero net effect")
	}
	if !strings.Contains(expense.Description, "Transfer to Savings") {
		t.Errorf("expense description missing destination name: %q", expense.Description)
	}
	if !strings.Contains(income.Description, "Transfer from Checking") {
		t.Errorf("income description missing source name: %q", income.Description)
	}
	if expense.Reference == "" || expense.Reference != income.Reference {
		t.Errorf("legs should share a reference, got %q and %q", expense.Reference, income.Reference)
	}

	if len(store.snapshots) != 1 {
		t.Fatalf("expected 1 balance snapshot, got %d", len(store.snapshots))
	}
	if !store.snapshots[0].Equal(decimal.NewFromInt(1500)) {
		t.Errorf("snapshot total = %s, want 1500", store.snapshots[0])
	}

	if result.Reference != expense.Reference {
		t.Errorf("result reference %q does not match ledger %q", result.Reference, expense.Reference)
	}
	if !result.FromBalance.Equal(decimal.NewFromInt(700)) || !result.ToBalance.Equal(decimal.NewFromInt(800)) {
		t.Errorf("result balances = %s/%s, want 700/800", result.FromBalance, result.ToBalance)
	}
}

func TestTransferValidationRejectsBeforeAnyWrite(t *testing.T) {
	tests := []struct {
		name    string
		req     TransferRequest
		wantErr error
	}{
		{
			name:    "zero amount",
			req:     TransferRequest{FromWalletID: 1, ToWalletID: 2, Amount: decimal.Zero},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			req:     TransferRequest{FromWalletID: 1, ToWalletID: 2, Amount: decimal.NewFromInt(-5)},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "same wallet",
			req:     TransferRequest{FromWalletID: 1, ToWalletID: 1, Amount: decimal.NewFromInt(10)},
			wantErr: ErrSameWallet,
		},
		{
			name:    "missing source",
			req:     TransferRequest{FromWalletID: 99, ToWalletID: 2, Amount: decimal.NewFromInt(10)},
			wantErr: ErrWalletNotFound,
		},
		{
			name:    "missing destination",
			req:     TransferRequest{FromWalletID: 1, ToWalletID: 99, Amount: decimal.NewFromInt(10)},
			wantErr: ErrWalletNotFound,
		},
		{
			name:    "insufficient funds",
			req:     TransferRequest{FromWalletID: 1, ToWalletID: 2, Amount: decimal.NewFromInt(1001)},
			wantErr: ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore()
			coordinator := NewTransferCoordinator(store)

			_, err := coordinator.Transfer(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			if store.balanceUpdates != 0 || len(store.transactions) != 0 || len(store.snapshots) != 0 {
				t.Error("validation failure must not perform any write")
			}
			if !store.balanceOf(t, 1).Equal(decimal.NewFromInt(1000)) || !store.balanceOf(t, 2).Equal(decimal.NewFromInt(500)) {
				t.Error("wallet balances must remain unchanged")
			}
		})
	}
}

func TestTransferPartialFailureLeavesAppliedSteps(t *testing.T) {
	store := newTestStore()
	store.failDebitOf = 2 // step 2 (credit destination) fails
	coordinator := NewTransferCoordinator(store)

	_, err := coordinator.Transfer(context.Background(), TransferRequest{
		FromWalletID: 1,
		ToWalletID:   2,
		Amount:       decimal.NewFromInt(300),
	})
	if err == nil {
		t.Fatal("expected error from failed credit step")
	}

	// the debit from step 1 stands: no compensating rollback
	if got := store.balanceOf(t, 1); !got.Equal(decimal.NewFromInt(700)) {
		t.Errorf("source balance = %s, want 700 (debit not rolled back)", got)
	}
	if got := store.balanceOf(t, 2); !got.Equal(decimal.NewFromInt(500)) {
		t.Errorf("destination balance = %s, want 500", got)
	}
	if len(store.transactions) != 0 {
		t.Errorf("no ledger legs should exist, got %d", len(store.transactions))
	}
	if len(store.snapshots) != 0 {
		t.Errorf("no snapshot should exist, got %d", len(store.snapshots))
	}
}

func TestTransferLedgerFailureAborted(t *testing.T) {
	store := newTestStore()
	store.insertErr = errors.New("forced insert failure")
	coordinator := NewTransferCoordinator(store)

	_, err := coordinator.Transfer(context.Background(), TransferRequest{
		FromWalletID: 1,
		ToWalletID:   2,
		Amount:       decimal.NewFromInt(300),
	})
	if err == nil {
		t.Fatal("expected error from failed ledger insert")
	}

	// both balance updates applied, neither rolled back
	if got := store.balanceOf(t, 1); !got.Equal(decimal.NewFromInt(700)) {
		t.Errorf("source balance = %s, want 700", got)
	}
	if got := store.balanceOf(t, 2); !got.Equal(decimal.NewFromInt(800)) {
		t.Errorf("destination balance = %s, want 800", got)
	}
	if len(store.snapshots) != 0 {
		t.Error("snapshot must not be written after an aborted flow")
	}
}

func TestTransferSnapshotFailureSwallowed(t *testing.T) {
	store := newTestStore()
	store.snapshotErr = errors.New("forced snapshot failure")
	coordinator := NewTransferCoordinator(store)

	result, err := coordinator.Transfer(context.Background(), TransferRequest{
		FromWalletID: 1,
		ToWalletID:   2,
		Amount:       decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("snapshot failure must not fail the transfer: %v", err)
	}
	if !result.FromBalance.Equal(decimal.NewFromInt(900)) {
		t.Errorf("transfer should complete, from balance = %s", result.FromBalance)
	}
	if len(store.transactions) != 2 {
		t.Errorf("both legs should exist, got %d", len(store.transactions))
	}
}

func TestRecordBalanceSnapshot(t *testing.T) {
	store := newTestStore()

	if err := RecordBalanceSnapshot(context.Background(), store); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.snapshots) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(store.snapshots))
	}
	if !store.snapshots[0].Equal(decimal.NewFromInt(1500)) {
		t.Errorf("snapshot total = %s, want sum of wallet balances 1500", store.snapshots[0])
	}
}
