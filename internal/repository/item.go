package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stockpilot/backend/internal/models"
)

// ItemRepository adds the stock-oriented queries on top of the generic
// contract.
type ItemRepository struct {
	Repository[models.Item]
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{NewRepository[models.Item](db)}
}

func (r *ItemRepository) FindByCategory(ctx context.Context, category string) ([]models.Item, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var items []models.Item
	if err := db.Where("category = ?", category).Order("name").Find(&items).Error; err != nil {
		return nil, classify(err)
	}
	return items, nil
}

func (r *ItemRepository) FindBySKU(ctx context.Context, sku string) (*models.Item, error) {
	return r.first(ctx, "sku = ?", sku)
}

func (r *ItemRepository) FindByBarcode(ctx context.Context, barcode string) (*models.Item, error) {
	return r.first(ctx, "barcode = ?", barcode)
}

// FindLowStock lists items at or below their reorder level, most
// depleted first. The boundary is inclusive: quantity == min_quantity
// counts as low.
func (r *ItemRepository) FindLowStock(ctx context.Context) ([]models.Item, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var items []models.Item
	if err := db.Where("quantity <= min_quantity").Order("quantity asc").Find(&items).Error; err != nil {
		return nil, classify(err)
	}
	return items, nil
}

// Search matches the query as a case-insensitive substring of name,
// description, or SKU.
func (r *ItemRepository) Search(ctx context.Context, query string) ([]models.Item, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	like := "%" + lowered(query) + "%"
	var items []models.Item
	err = db.Where("lower(name) LIKE ? OR lower(description) LIKE ? OR lower(sku) LIKE ?", like, like, like).
		Order("name").Find(&items).Error
	if err != nil {
		return nil, classify(err)
	}
	return items, nil
}

// UpdateQuantity sets the quantity on hand and stamps the update time.
func (r *ItemRepository) UpdateQuantity(ctx context.Context, id uint, quantity int) error {
	return r.Update(ctx, id, map[string]any{
		"quantity":   quantity,
		"updated_at": time.Now(),
	})
}

// CountByCategory is used by the category delete pre-check.
func (r *ItemRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := db.Model(&models.Item{}).Where("category = ?", category).Count(&n).Error; err != nil {
		return 0, classify(err)
	}
	return n, nil
}
