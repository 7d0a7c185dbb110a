package services

import (
	"sort"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

type CategorySummary struct {
	CategoryID int             `json:"category_id,omitempty"`
	Category   string          `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Share      decimal.Decimal `json:"share"`
}

// SummarizeByCategory groups transactions of the given type by category and
// returns per-category totals with their percentage share, largest first.
// Transactions without a category land in an "Uncategorized" bucket.
func SummarizeByCategory(transactions []models.Transaction, categories []models.Category, txType string) []CategorySummary {
	names := make(map[int]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	totals := make(map[int]decimal.Decimal)
	grand := decimal.Zero
	for _, t := range transactions {
		if t.Type != txType {
			continue
		}
		categoryID := 0
		if t.CategoryID.Valid {
			categoryID = int(t.CategoryID.Int64)
		}
		totals[categoryID] = totals[categoryID].Add(t.Amount)
		grand = grand.Add(t.Amount)
	}

	summaries := make([]CategorySummary, 0, len(totals))
	for categoryID, total := range totals {
		name, ok := names[categoryID]
		if !ok {
			name = "Uncategorized"
		}
		share := decimal.Zero
		if grand.IsPositive() {
			share = total.Div(grand).Mul(decimal.NewFromInt(100)).Round(2)
		}
		summaries = append(summaries, CategorySummary{
			CategoryID: categoryID,
			Category:   name,
			Total:      total,
			Share:      share,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Total.Equal(summaries[j].Total) {
			return summaries[i].Category < summaries[j].Category
		}
		return summaries[i].Total.GreaterThan(summaries[j].Total)
	})
	return summaries
}

// FilterCategoriesByType partitions the cached category list for the
// add-transaction form: income forms only see income categories.
func FilterCategoriesByType(categories []models.Category, categoryType string) []models.Category {
	if categoryType == "" {
		return categories
	}
	filtered := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if c.Type == categoryType {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
