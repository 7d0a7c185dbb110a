package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fintrack/internal/models"
	"fintrack/pkg/utils"

	"github.com/shopspring/decimal"
)

// Validation failures reported before any write is attempted.
var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrSameWallet        = errors.New("cannot transfer to the same wallet")
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrInsufficientFunds = errors.New("insufficient funds in source wallet")
)

// TransferStore is the slice of the data layer the coordinator writes
// through.
type TransferStore interface {
	ListWallets(ctx context.Context) ([]models.Wallet, error)
	UpdateWalletBalance(ctx context.Context, id int, expected, balance decimal.Decimal) error
	InsertTransaction(ctx context.Context, t models.Transaction) (int, error)
	SnapshotStore
}

type TransferRequest struct {
	FromWalletID int             `json:"from_wallet_id"`
	ToWalletID   int             `json:"to_wallet_id"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
}

type TransferResult struct {
	Reference   string          `json:"reference"`
	FromWallet  string          `json:"from_wallet"`
	ToWallet    string          `json:"to_wallet"`
	Amount      decimal.Decimal `json:"amount"`
	FromBalance decimal.Decimal `json:"from_balance"`
	ToBalance   decimal.Decimal `json:"to_balance"`
}

// TransferCoordinator moves funds between two wallets as a sequence of
// independent writes: debit source, credit destination, then one expense and
// one income transaction forming the audit trail, then a best-effort balance
// snapshot. There is no cross-step transaction boundary and no rollback: if
// a required step fails, already-applied steps stand and the error is
// surfaced to the caller.
type TransferCoordinator struct {
	store TransferStore
}

func NewTransferCoordinator(store TransferStore) *TransferCoordinator {
	return &TransferCoordinator{store: store}
}

func (c *TransferCoordinator) Transfer(ctx context.Context, req TransferRequest) (TransferResult, error) {
	if !req.Amount.IsPositive() {
		return TransferResult{}, ErrInvalidAmount
	}
	if req.FromWalletID == req.ToWalletID {
		return TransferResult{}, ErrSameWallet
	}

	wallets, err := c.store.ListWallets(ctx)
	if err != nil {
		return TransferResult{}, fmt.Errorf("loading wallets: %w", err)
	}

	var fromWallet, toWallet *models.Wallet
	for i := range wallets {
		switch wallets[i].ID {
		case req.FromWalletID:
			fromWallet = &wallets[i]
		case req.ToWalletID:
			toWallet = &wallets[i]
		}
	}
	if fromWallet == nil {
		return TransferResult{}, fmt.Errorf("source %w", ErrWalletNotFound)
	}
	if toWallet == nil {
		return TransferResult{}, fmt.Errorf("destination %w", ErrWalletNotFound)
	}
	if fromWallet.Balance.LessThan(req.Amount) {
		return TransferResult{}, ErrInsufficientFunds
	}

	description := req.Description
	if description == "" {
		description = "Transfer between wallets"
	}
	reference := NewTransferReference()
	date := time.Now().Format(DateLayout)
	newFromBalance := fromWallet.Balance.Sub(req.Amount)
	newToBalance := toWallet.Balance.Add(req.Amount)

	// step 1: debit source
	if err := c.store.UpdateWalletBalance(ctx, fromWallet.ID, fromWallet.Balance, newFromBalance); err != nil {
		return TransferResult{}, fmt.Errorf("debiting wallet %q: %w", fromWallet.Name, err)
	}

	// step 2: credit destination
	if err := c.store.UpdateWalletBalance(ctx, toWallet.ID, toWallet.Balance, newToBalance); err != nil {
		return TransferResult{}, fmt.Errorf("crediting wallet %q: %w", toWallet.Name, err)
	}

	// step 3: expense leg on the source wallet
	expense := models.Transaction{
		Amount:      req.Amount,
		Description: fmt.Sprintf("%s (Transfer to %s)", description, toWallet.Name),
		WalletID:    fromWallet.ID,
		Type:        models.TypeExpense,
		Reference:   reference,
		Date:        date,
	}
	if _, err := c.store.InsertTransaction(ctx, expense); err != nil {
		return TransferResult{}, fmt.Errorf("recording expense leg: %w", err)
	}

	// step 4: income leg on the destination wallet
	income := models.Transaction{
		Amount:      req.Amount,
		Description: fmt.Sprintf("%s (Transfer from %s)", description, fromWallet.Name),
		WalletID:    toWallet.ID,
		Type:        models.TypeIncome,
		Reference:   reference,
		Date:        date,
	}
	if _, err := c.store.InsertTransaction(ctx, income); err != nil {
		return TransferResult{}, fmt.Errorf("recording income leg: %w", err)
	}

	// step 5: best-effort snapshot, never fails the transfer
	if err := RecordBalanceSnapshot(ctx, c.store); err != nil {
		utils.Logger.Errorf("failed to record balance history after transfer %s: %v", reference, err)
	}

	return TransferResult{
		Reference:   reference,
		FromWallet:  fromWallet.Name,
		ToWallet:    toWallet.Name,
		Amount:      req.Amount,
		FromBalance: newFromBalance,
		ToBalance:   newToBalance,
	}, nil
}
