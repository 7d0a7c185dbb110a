package services

import (
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

func decimalFromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestParseCadence(t *testing.T) {
	tests := []struct {
		input   string
		want    Cadence
		wantErr bool
	}{
		{"", CadenceDay, false},
		{"hour", CadenceHour, false},
		{"day", CadenceDay, false},
		{"month", CadenceMonth, false},
		{"week", "", true},
		{"Hour", "", true},
	}

	for _, tt := range tests {
		t.Run("input="+tt.input, func(t *testing.T) {
			got, err := ParseCadence(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCadence(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCadence(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCadence(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestReconstructWindowSizes(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		cadence   Cadence
		periods   int
		lastLabel string
	}{
		{CadenceHour, 24, "14:00"},
		{CadenceDay, 30, "15 Mar"},
		{CadenceMonth, 12, "Mar 2025"},
	}

	for _, tt := range tests {
		t.Run(string(tt.cadence), func(t *testing.T) {
			points := ReconstructBalanceSeries(tt.cadence, nil, nil, decimal.Zero, now)
			if len(points) != tt.periods {
				t.Fatalf("expected %d points, got %d", tt.periods, len(points))
			}
			if points[len(points)-1].Label != tt.lastLabel {
				t.Errorf("last label = %q, want %q", points[len(points)-1].Label, tt.lastLabel)
			}
		})
	}
}

func TestReconstructEmptyInputs(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

	points := ReconstructBalanceSeries(CadenceDay, nil, nil, decimal.Zero, now)
	if len(points) != 30 {
		t.Fatalf("expected 30 points, got %d", len(points))
	}
	for i, p := range points {
		if !p.Balance.IsZero() {
			t.Errorf("point %d: expected zero balance, got %s", i, p.Balance)
		}
	}
}

func TestReconstructTransactionReplay(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)
	currentBalance := decimalFromInt(1000)

	transactions := []models.Transaction{
		{Amount: decimalFromInt(100), Type: models.TypeExpense, Date: "2025-03-14"},
	}

	points := ReconstructBalanceSeries(CadenceDay, nil, transactions, currentBalance, now)
	if len(points) != 30 {
		t.Fatalf("expected 30 points, got %d", len(points))
	}

	today := points[29]
	if !today.Balance.Equal(decimalFromInt(1000)) {
		t.Errorf("today = %s, want 1000", today.Balance)
	}

	// yesterday's own bucket still carries the post-transaction balance;
	// only boundaries strictly before the transaction date see it undone
	yesterday := points[28]
	if !yesterday.Balance.Equal(decimalFromInt(1000)) {
		t.Errorf("yesterday = %s, want 1000", yesterday.Balance)
	}

	twoDaysAgo := points[27]
	if !twoDaysAgo.Balance.Equal(decimalFromInt(1100)) {
		t.Errorf("two days ago = %s, want 1100 (expense added back)", twoDaysAgo.Balance)
	}

	oldest := points[0]
	if !oldest.Balance.Equal(decimalFromInt(1100)) {
		t.Errorf("oldest = %s, want 1100", oldest.Balance)
	}
}

func TestReconstructReplayIncomeAndExpense(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	currentBalance := decimalFromInt(500)

	transactions := []models.Transaction{
		{Amount: decimalFromInt(200), Type: models.TypeIncome, Date: "2025-03-13"},
		{Amount: decimalFromInt(50), Type: models.TypeExpense, Date: "2025-03-14"},
	}

	points := ReconstructBalanceSeries(CadenceDay, nil, transactions, currentBalance, now)

	// before either transaction: 500 - 200 + 50
	if !points[0].Balance.Equal(decimalFromInt(350)) {
		t.Errorf("oldest = %s, want 350", points[0].Balance)
	}
	// after the income, before the expense (boundary 13 Mar)
	thirteenth := points[27]
	if !thirteenth.Balance.Equal(decimalFromInt(550)) {
		t.Errorf("13 Mar = %s, want 550", thirteenth.Balance)
	}
	if !points[29].Balance.Equal(decimalFromInt(500)) {
		t.Errorf("today = %s, want 500", points[29].Balance)
	}
}

func TestReconstructReplayMalformedDateSkipped(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	transactions := []models.Transaction{
		{Amount: decimalFromInt(100), Type: models.TypeExpense, Date: "not-a-date"},
	}

	points := ReconstructBalanceSeries(CadenceDay, nil, transactions, decimalFromInt(42), now)
	for i, p := range points {
		if !p.Balance.Equal(decimalFromInt(42)) {
			t.Fatalf("point %d: expected flat 42, got %s", i, p.Balance)
		}
	}
}

func TestReconstructSnapshotMode(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

	history := []models.BalanceHistory{
		{TotalBalance: decimalFromInt(50), Timestamp: "2025-03-10 10:00:00"},
		{TotalBalance: decimalFromInt(75), Timestamp: "2025-03-12 09:00:00"},
		{TotalBalance: decimalFromInt(120), Timestamp: "2025-03-14 18:00:00"},
	}

	points := ReconstructBalanceSeries(CadenceDay, history, nil, decimalFromInt(999), now)
	if len(points) != 30 {
		t.Fatalf("expected 30 points, got %d", len(points))
	}

	byLabel := make(map[string]decimal.Decimal, len(points))
	for _, p := range points {
		byLabel[p.Label] = p.Balance
	}

	// boundary between the second and third snapshot resolves to the second
	if got := byLabel["13 Mar"]; !got.Equal(decimalFromInt(75)) {
		t.Errorf("13 Mar = %s, want 75 (most recent not-after)", got)
	}
	if got := byLabel["10 Mar"]; !got.Equal(decimalFromInt(50)) {
		t.Errorf("10 Mar = %s, want 50", got)
	}
	if got := byLabel["14 Mar"]; !got.Equal(decimalFromInt(120)) {
		t.Errorf("14 Mar = %s, want 120", got)
	}
	if got := byLabel["15 Mar"]; !got.Equal(decimalFromInt(120)) {
		t.Errorf("15 Mar = %s, want 120 (carried forward)", got)
	}
	// periods before the first snapshot have nothing to inherit
	if got := byLabel["09 Mar"]; !got.IsZero() {
		t.Errorf("09 Mar = %s, want 0", got)
	}
}

func TestReconstructSnapshotModeIgnoresTransactions(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

	history := []models.BalanceHistory{
		{TotalBalance: decimalFromInt(10), Timestamp: "2025-03-01 00:00:00"},
	}
	transactions := []models.Transaction{
		{Amount: decimalFromInt(9999), Type: models.TypeExpense, Date: "2025-03-10"},
	}

	points := ReconstructBalanceSeries(CadenceDay, history, transactions, decimalFromInt(500), now)
	if got := points[len(points)-1].Balance; !got.Equal(decimalFromInt(10)) {
		t.Errorf("snapshot mode should win over replay, got %s", got)
	}
}

func TestReconstructPointsAreChronological(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

	for _, cadence := range []Cadence{CadenceHour, CadenceDay, CadenceMonth} {
		points := ReconstructBalanceSeries(cadence, nil, nil, decimal.Zero, now)
		var prev time.Time
		for i, p := range points {
			at, err := time.Parse(TimestampLayout, p.Date)
			if err != nil {
				t.Fatalf("%s point %d: bad date %q: %v", cadence, i, p.Date, err)
			}
			if i > 0 && !at.After(prev) {
				t.Fatalf("%s point %d (%s) not after previous (%s)", cadence, i, at, prev)
			}
			prev = at
		}
	}
}
