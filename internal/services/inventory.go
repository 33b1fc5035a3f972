package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"stockpilot/backend/internal/finance"
	"stockpilot/backend/internal/models"
	"stockpilot/backend/internal/repository"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// InventoryService records stock movements. Every movement writes a
// ledger row and patches the item quantity in the same transaction, so
// the ledger and the on-hand count cannot drift apart.
type InventoryService struct {
	db    *gorm.DB
	items *repository.ItemRepository
}

func NewInventoryService(conn *gorm.DB) *InventoryService {
	return &InventoryService{db: conn, items: repository.NewItemRepository(conn)}
}

// MovementInput describes one sale, purchase, or adjustment.
type MovementInput struct {
	Type      models.TransactionType `json:"type"`
	ItemID    uint                   `json:"item_id"`
	Quantity  int                    `json:"quantity"`
	UnitPrice float64                `json:"unit_price"`
	Reference string                 `json:"reference,omitempty"`
	Notes     string                 `json:"notes,omitempty"`
}

// Record appends the movement to the ledger and applies its delta to
// the item's quantity. Sales that would drive stock negative are
// rejected before anything is written.
func (s *InventoryService) Record(ctx context.Context, in MovementInput) (*models.Transaction, error) {
	switch in.Type {
	case models.TransactionSale, models.TransactionPurchase, models.TransactionAdjustment:
	default:
		return nil, fmt.Errorf("invalid transaction type %q", in.Type)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", in.Quantity)
	}
	item, err := s.items.FindByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item=%d", ErrUnknownItem, in.ItemID)
	}

	entry := models.Transaction{
		Type:       in.Type,
		ItemID:     in.ItemID,
		Quantity:   in.Quantity,
		UnitPrice:  in.UnitPrice,
		TotalPrice: finance.Round2(float64(in.Quantity) * in.UnitPrice),
		Reference:  in.Reference,
		Notes:      in.Notes,
	}
	newQuantity := item.Quantity + entry.QuantityDelta()
	if newQuantity < 0 {
		return nil, fmt.Errorf("%w: item=%d on_hand=%d requested=%d", ErrInsufficientStock, item.ID, item.Quantity, in.Quantity)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.Item{}).Where("id = ?", item.ID).
			Updates(map[string]any{"quantity": newQuantity, "updated_at": time.Now()}).Error
	})
	if err != nil {
		return nil, repositoryClassify(err)
	}
	return &entry, nil
}
