package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict means a wallet balance changed between read and update; the
	// compare-and-swap matched zero rows.
	ErrConflict = errors.New("wallet balance changed concurrently")
)

// Store is the process-wide data access layer, set once at startup.
var Store *DataStore

// DataStore owns every table-scoped operation against the finance database
// plus the read caches for the two small, hot tables (wallets, categories).
type DataStore struct {
	db         *sql.DB
	wallets    listCache[models.Wallet]
	categories listCache[models.Category]
}

func New(db *sql.DB) *DataStore {
	return &DataStore{db: db}
}

// Init wires the package-level store. Handlers reach it the same way they
// reach sqlconnect.DB.
func Init(db *sql.DB) {
	Store = New(db)
}

// ------------------------------------------------------------------
// wallets
// ------------------------------------------------------------------

func (s *DataStore) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	if wallets, ok := s.wallets.get(); ok {
		return wallets, nil
	}

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, balance, created_at FROM wallets ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing wallets: %w", err)
	}
	defer rows.Close()

	var wallets []models.Wallet
	for rows.Next() {
		var w models.Wallet
		if err := rows.Scan(&w.ID, &w.Name, &w.Balance, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning wallet: %w", err)
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wallets: %w", err)
	}

	s.wallets.set(wallets)
	return wallets, nil
}

func (s *DataStore) GetWallet(ctx context.Context, id int) (models.Wallet, error) {
	var w models.Wallet
	err := s.db.QueryRowContext(ctx, "SELECT id, name, balance, created_at FROM wallets WHERE id = ?", id).
		Scan(&w.ID, &w.Name, &w.Balance, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Wallet{}, ErrNotFound
		}
		return models.Wallet{}, fmt.Errorf("fetching wallet %d: %w", id, err)
	}
	return w, nil
}

func (s *DataStore) InsertWallet(ctx context.Context, name string, balance decimal.Decimal) (models.Wallet, error) {
	res, err := s.db.ExecContext(ctx, "INSERT INTO wallets (name, balance) VALUES (?, ?)", name, balance)
	if err != nil {
		return models.Wallet{}, fmt.Errorf("inserting wallet: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Wallet{}, fmt.Errorf("reading wallet insert id: %w", err)
	}

	s.wallets.invalidate()
	return s.GetWallet(ctx, int(id))
}

func (s *DataStore) UpdateWalletName(ctx context.Context, id int, name string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE wallets SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return fmt.Errorf("renaming wallet %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.wallets.invalidate()
	return nil
}

// UpdateWalletBalance is a compare-and-swap: the update only applies while
// the stored balance still equals expected, so a concurrent writer surfaces
// as ErrConflict instead of a silent lost update.
func (s *DataStore) UpdateWalletBalance(ctx context.Context, id int, expected, balance decimal.Decimal) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE wallets SET balance = ? WHERE id = ? AND balance = ?", balance, id, expected)
	if err != nil {
		return fmt.Errorf("updating wallet %d balance: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.GetWallet(ctx, id); errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return ErrConflict
	}

	s.wallets.invalidate()
	return nil
}

func (s *DataStore) DeleteWallet(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM wallets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting wallet %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.wallets.invalidate()
	return nil
}

func (s *DataStore) CountWalletTransactions(ctx context.Context, walletID int) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions WHERE wallet_id = ?", walletID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting wallet %d transactions: %w", walletID, err)
	}
	return count, nil
}

// TotalBalance sums every wallet's balance straight from the table; the
// displayed total must always equal the arithmetic sum of the rows.
func (s *DataStore) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := s.db.QueryRowContext(ctx, "SELECT SUM(balance) FROM wallets").Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing wallet balances: %w", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// ------------------------------------------------------------------
// categories
// ------------------------------------------------------------------

func (s *DataStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	if categories, ok := s.categories.get(); ok {
		return categories, nil
	}

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, type, created_at FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	s.categories.set(categories)
	return categories, nil
}

func (s *DataStore) InsertCategory(ctx context.Context, name, categoryType string) (models.Category, error) {
	res, err := s.db.ExecContext(ctx, "INSERT INTO categories (name, type) VALUES (?, ?)", name, categoryType)
	if err != nil {
		return models.Category{}, fmt.Errorf("inserting category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Category{}, fmt.Errorf("reading category insert id: %w", err)
	}

	s.categories.invalidate()

	var c models.Category
	err = s.db.QueryRowContext(ctx, "SELECT id, name, type, created_at FROM categories WHERE id = ?", id).
		Scan(&c.ID, &c.Name, &c.Type, &c.CreatedAt)
	if err != nil {
		return models.Category{}, fmt.Errorf("fetching category %d: %w", id, err)
	}
	return c, nil
}

// ------------------------------------------------------------------
// transactions
// ------------------------------------------------------------------

// TransactionFilter narrows ListTransactions. Zero values mean "no filter".
type TransactionFilter struct {
	Type       string
	WalletID   int
	CategoryID int
	DateFrom   string
	DateTo     string
	SortBy     string // date or created_at, default date
	SortAsc    bool
	Limit      int
	Offset     int
}

func (s *DataStore) ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error) {
	query := `SELECT id, amount, description, category_id, wallet_id, type, reference, date, created_at
		FROM transactions WHERE 1=1`
	var args []interface{}

	if filter.Type != "" {
		query += " AND type = ?"
		args = append(args, filter.Type)
	}
	if filter.WalletID != 0 {
		query += " AND wallet_id = ?"
		args = append(args, filter.WalletID)
	}
	if filter.CategoryID != 0 {
		query += " AND category_id = ?"
		args = append(args, filter.CategoryID)
	}
	if filter.DateFrom != "" {
		query += " AND date >= ?"
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		query += " AND date <= ?"
		args = append(args, filter.DateTo)
	}

	sortBy := "date"
	if filter.SortBy == "created_at" {
		sortBy = "created_at"
	}
	order := "DESC"
	if filter.SortAsc {
		order = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, order)

	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Amount, &t.Description, &t.CategoryID, &t.WalletID, &t.Type, &t.Reference, &t.Date, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}
	return transactions, nil
}

func (s *DataStore) GetTransaction(ctx context.Context, id int) (models.Transaction, error) {
	var t models.Transaction
	err := s.db.QueryRowContext(ctx,
		`SELECT id, amount, description, category_id, wallet_id, type, reference, date, created_at
		FROM transactions WHERE id = ?`, id).
		Scan(&t.ID, &t.Amount, &t.Description, &t.CategoryID, &t.WalletID, &t.Type, &t.Reference, &t.Date, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Transaction{}, ErrNotFound
		}
		return models.Transaction{}, fmt.Errorf("fetching transaction %d: %w", id, err)
	}
	return t, nil
}

func (s *DataStore) InsertTransaction(ctx context.Context, t models.Transaction) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (amount, description, category_id, wallet_id, type, reference, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.Amount, t.Description, t.CategoryID, t.WalletID, t.Type, t.Reference, t.Date)
	if err != nil {
		return 0, fmt.Errorf("inserting transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading transaction insert id: %w", err)
	}
	return int(id), nil
}

func (s *DataStore) DeleteTransaction(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting transaction %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ------------------------------------------------------------------
// balance_history
// ------------------------------------------------------------------

func (s *DataStore) ListBalanceHistory(ctx context.Context) ([]models.BalanceHistory, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, total_balance, timestamp FROM balance_history ORDER BY timestamp ASC")
	if err != nil {
		return nil, fmt.Errorf("listing balance history: %w", err)
	}
	defer rows.Close()

	var history []models.BalanceHistory
	for rows.Next() {
		var h models.BalanceHistory
		if err := rows.Scan(&h.ID, &h.TotalBalance, &h.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning balance history: %w", err)
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating balance history: %w", err)
	}
	return history, nil
}

func (s *DataStore) InsertBalanceSnapshot(ctx context.Context, total decimal.Decimal, timestamp string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO balance_history (total_balance, timestamp) VALUES (?, ?)", total, timestamp)
	if err != nil {
		return fmt.Errorf("inserting balance snapshot: %w", err)
	}
	return nil
}
