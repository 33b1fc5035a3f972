package repository

import (
	"context"

	"gorm.io/gorm"

	"stockpilot/backend/internal/models"
)

// defaultHistoryLimit caps ItemHistory when the caller passes no limit.
const defaultHistoryLimit = 50

type TransactionRepository struct {
	Repository[models.Transaction]
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{NewRepository[models.Transaction](db)}
}

func (r *TransactionRepository) FindByItem(ctx context.Context, itemID uint) ([]models.Transaction, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var txs []models.Transaction
	if err := db.Where("item_id = ?", itemID).Order("created_at desc").Find(&txs).Error; err != nil {
		return nil, classify(err)
	}
	return txs, nil
}

func (r *TransactionRepository) FindByType(ctx context.Context, typ models.TransactionType) ([]models.Transaction, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var txs []models.Transaction
	if err := db.Where("type = ?", typ).Order("created_at desc").Find(&txs).Error; err != nil {
		return nil, classify(err)
	}
	return txs, nil
}

// ItemHistory returns the most recent movements for an item, newest
// first, capped at limit (default 50 when limit <= 0).
func (r *TransactionRepository) ItemHistory(ctx context.Context, itemID uint, limit int) ([]models.Transaction, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	var txs []models.Transaction
	err = db.Where("item_id = ?", itemID).Order("created_at desc").Limit(limit).Find(&txs).Error
	if err != nil {
		return nil, classify(err)
	}
	return txs, nil
}
