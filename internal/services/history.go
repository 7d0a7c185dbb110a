package services

import (
	"fmt"
	"sort"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// Cadence is the bucket size used to reconstruct the historical balance
// series. Each cadence has a fixed lookback window.
type Cadence string

const (
	CadenceHour  Cadence = "hour"
	CadenceDay   Cadence = "day"
	CadenceMonth Cadence = "month"
)

type cadenceSpec struct {
	labelFormat string
	periods     int
	periodStart func(now time.Time, i int) time.Time
	periodEnd   func(start time.Time) time.Time
}

var cadences = map[Cadence]cadenceSpec{
	CadenceHour: {
		labelFormat: "15:04",
		periods:     24,
		periodStart: func(now time.Time, i int) time.Time {
			start := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
			return start.Add(-time.Duration(i) * time.Hour)
		},
		periodEnd: func(start time.Time) time.Time { return start.Add(time.Hour) },
	},
	CadenceDay: {
		labelFormat: "02 Jan",
		periods:     30,
		periodStart: func(now time.Time, i int) time.Time {
			start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			return start.AddDate(0, 0, -i)
		},
		periodEnd: func(start time.Time) time.Time { return start.AddDate(0, 0, 1) },
	},
	CadenceMonth: {
		labelFormat: "Jan 2006",
		periods:     12,
		periodStart: func(now time.Time, i int) time.Time {
			start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			return start.AddDate(0, -i, 0)
		},
		periodEnd: func(start time.Time) time.Time { return start.AddDate(0, 1, 0) },
	},
}

// ParseCadence maps the range query parameter onto a Cadence. An empty value
// defaults to daily.
func ParseCadence(s string) (Cadence, error) {
	switch Cadence(s) {
	case "":
		return CadenceDay, nil
	case CadenceHour, CadenceDay, CadenceMonth:
		return Cadence(s), nil
	}
	return "", fmt.Errorf("invalid range %q: must be hour, day or month", s)
}

// BalancePoint is one bucket of the reconstructed series.
type BalancePoint struct {
	Date    string          `json:"date"`
	Label   string          `json:"formatted_date"`
	Balance decimal.Decimal `json:"balance"`
}

// ReconstructBalanceSeries produces one point per period of the cadence's
// lookback window, oldest first.
//
// When snapshot history exists, each period takes the most recent snapshot
// not after the period's end; periods with no snapshot yet inherit the
// nearest earlier period's value, or zero. Without history it falls back to
// replaying transactions backward from the current total balance.
// Transaction dates carry no time of day, so hourly buckets over same-day
// transactions are an accepted approximation. Rows with malformed
// timestamps are skipped. Empty inputs yield a flat zero series.
func ReconstructBalanceSeries(cadence Cadence, history []models.BalanceHistory, transactions []models.Transaction, currentBalance decimal.Decimal, now time.Time) []BalancePoint {
	spec, ok := cadences[cadence]
	if !ok {
		spec = cadences[CadenceDay]
	}

	starts := make([]time.Time, spec.periods)
	for i := 0; i < spec.periods; i++ {
		starts[spec.periods-1-i] = spec.periodStart(now, i)
	}

	points := make([]BalancePoint, len(starts))
	for i, start := range starts {
		points[i] = BalancePoint{
			Date:    start.Format(TimestampLayout),
			Label:   start.Format(spec.labelFormat),
			Balance: decimal.Zero,
		}
	}

	if len(history) > 0 {
		fillFromSnapshots(points, starts, spec, history, now.Location())
	} else {
		fillFromTransactions(points, starts, transactions, currentBalance, now.Location())
	}
	return points
}

type snapshot struct {
	at      time.Time
	balance decimal.Decimal
}

// fillFromSnapshots is a last-observation-carried-forward fill over an
// irregularly sampled snapshot log.
func fillFromSnapshots(points []BalancePoint, starts []time.Time, spec cadenceSpec, history []models.BalanceHistory, loc *time.Location) {
	snapshots := make([]snapshot, 0, len(history))
	for _, h := range history {
		at, err := parseTimestamp(h.Timestamp, loc)
		if err != nil {
			continue
		}
		snapshots = append(snapshots, snapshot{at: at, balance: h.TotalBalance})
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].at.Before(snapshots[j].at) })

	for i, start := range starts {
		end := spec.periodEnd(start)

		// latest snapshot strictly before the next period's start
		idx := sort.Search(len(snapshots), func(j int) bool {
			return !snapshots[j].at.Before(end)
		})
		if idx > 0 {
			points[i].Balance = snapshots[idx-1].balance
		} else if i > 0 {
			points[i].Balance = points[i-1].Balance
		}
	}
}

// fillFromTransactions walks periods newest to oldest, undoing the effect of
// every transaction dated strictly after each period boundary. Each
// transaction is consumed once.
func fillFromTransactions(points []BalancePoint, starts []time.Time, transactions []models.Transaction, currentBalance decimal.Decimal, loc *time.Location) {
	type event struct {
		date   time.Time
		amount decimal.Decimal
		income bool
	}

	events := make([]event, 0, len(transactions))
	for _, t := range transactions {
		date, err := time.ParseInLocation(DateLayout, t.Date, loc)
		if err != nil {
			continue
		}
		events = append(events, event{date: date, amount: t.Amount, income: t.Type == models.TypeIncome})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].date.After(events[j].date) })

	running := currentBalance
	next := 0
	for i := len(starts) - 1; i >= 0; i-- {
		for next < len(events) && events[next].date.After(starts[i]) {
			if events[next].income {
				running = running.Sub(events[next].amount)
			} else {
				running = running.Add(events[next].amount)
			}
			next++
		}
		points[i].Balance = running
	}
}

func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if at, err := time.ParseInLocation(TimestampLayout, s, loc); err == nil {
		return at, nil
	}
	return time.Parse(time.RFC3339, s)
}
