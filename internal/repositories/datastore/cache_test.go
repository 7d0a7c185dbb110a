package datastore

import (
	"testing"

	"fintrack/internal/models"
)

func TestListCache(t *testing.T) {
	var c listCache[models.Category]

	if _, ok := c.get(); ok {
		t.Fatal("fresh cache should miss")
	}

	c.set([]models.Category{{ID: 1, Name: "Groceries", Type: models.TypeExpense}})

	items, ok := c.get()
	if !ok || len(items) != 1 || items[0].Name != "Groceries" {
		t.Fatalf("expected cached Groceries, got ok=%v items=%+v", ok, items)
	}

	// callers get a copy, not the backing slice
	items[0].Name = "mutated"
	fresh, _ := c.get()
	if fresh[0].Name != "Groceries" {
		t.Error("cache contents leaked through returned slice")
	}

	c.invalidate()
	if _, ok := c.get(); ok {
		t.Error("invalidated cache should miss")
	}
}

func TestListCacheEmptySet(t *testing.T) {
	var c listCache[models.Wallet]

	c.set(nil)
	items, ok := c.get()
	if !ok {
		t.Fatal("an empty list is still a valid cached result")
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list, got %d items", len(items))
	}
}
