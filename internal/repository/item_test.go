package repository

import (
	"context"
	"testing"

	"stockpilot/backend/internal/models"
)

func seedItems(t *testing.T, repo *ItemRepository, items ...models.Item) {
	t.Helper()
	for i := range items {
		if _, err := repo.Create(context.Background(), &items[i]); err != nil {
			t.Fatalf("seed %s: %v", items[i].Name, err)
		}
	}
}

// The low-stock boundary is inclusive: quantity == min_quantity counts.
func TestFindLowStockBoundary(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)
	seedItems(t, repo,
		models.Item{Name: "depleted", Category: "Other", Quantity: 3, MinQuantity: 5},
		models.Item{Name: "at-level", Category: "Other", Quantity: 5, MinQuantity: 5},
		models.Item{Name: "healthy", Category: "Other", Quantity: 6, MinQuantity: 5},
	)

	low, err := repo.FindLowStock(context.Background())
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(low) != 2 {
		t.Fatalf("expected 2 low-stock items got %d", len(low))
	}
	// Most depleted first.
	if low[0].Name != "depleted" || low[1].Name != "at-level" {
		t.Fatalf("unexpected order: %s, %s", low[0].Name, low[1].Name)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)
	seedItems(t, repo,
		models.Item{Name: "USB Cable", Category: "Other", SKU: "CAB-01"},
		models.Item{Name: "Keyboard", Category: "Other", Description: "usb wired"},
		models.Item{Name: "Monitor", Category: "Other"},
	)

	got, err := repo.Search(context.Background(), "  UsB ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches got %d", len(got))
	}
	got, err = repo.Search(context.Background(), "cab-01")
	if err != nil {
		t.Fatalf("search by sku: %v", err)
	}
	if len(got) != 1 || got[0].Name != "USB Cable" {
		t.Fatalf("unexpected sku match: %+v", got)
	}
}

func TestFindBySKUAndBarcode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)
	seedItems(t, repo, models.Item{Name: "Widget", Category: "Other", SKU: "W-1", Barcode: "123456"})
	ctx := context.Background()

	got, err := repo.FindBySKU(ctx, "W-1")
	if err != nil || got == nil || got.Name != "Widget" {
		t.Fatalf("FindBySKU = %+v, %v", got, err)
	}
	got, err = repo.FindByBarcode(ctx, "123456")
	if err != nil || got == nil || got.Name != "Widget" {
		t.Fatalf("FindByBarcode = %+v, %v", got, err)
	}
	got, err = repo.FindBySKU(ctx, "missing")
	if err != nil || got != nil {
		t.Fatalf("missing sku should be nil, nil; got %+v, %v", got, err)
	}
}

func TestFindByCategoryAndCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)
	seedItems(t, repo,
		models.Item{Name: "zeta", Category: "Tools"},
		models.Item{Name: "alpha", Category: "Tools"},
		models.Item{Name: "other", Category: "Other"},
	)
	ctx := context.Background()

	got, err := repo.FindByCategory(ctx, "Tools")
	if err != nil {
		t.Fatalf("by category: %v", err)
	}
	if len(got) != 2 || got[0].Name != "alpha" {
		t.Fatalf("expected 2 tools ordered by name, got %+v", got)
	}
	n, err := repo.CountByCategory(ctx, "Tools")
	if err != nil || n != 2 {
		t.Fatalf("CountByCategory = %d, %v; want 2", n, err)
	}
}

func TestUpdateQuantity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	item := models.Item{Name: "Widget", Category: "Other", Quantity: 10}
	id, err := repo.Create(ctx, &item)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.UpdateQuantity(ctx, id, 4); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	got, err := repo.FindByID(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("find: %+v, %v", got, err)
	}
	if got.Quantity != 4 {
		t.Fatalf("quantity = %d, want 4", got.Quantity)
	}
}
