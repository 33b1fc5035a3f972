package services

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"stockpilot/backend/internal/cache"
	"stockpilot/backend/internal/finance"
	"stockpilot/backend/internal/models"
	"stockpilot/backend/internal/repository"
)

const summaryCacheKey = "stockpilot:summary"

// ReportService computes the dashboard aggregate. Results are held in
// the summary cache between recomputations; cache failures degrade to
// a fresh computation, never to an error.
type ReportService struct {
	db    *gorm.DB
	items *repository.ItemRepository
	cache cache.SummaryCache
	ttl   time.Duration
}

func NewReportService(conn *gorm.DB, c cache.SummaryCache, ttl time.Duration) *ReportService {
	if c == nil {
		c = cache.NoopSummaryCache{}
	}
	return &ReportService{
		db:    conn,
		items: repository.NewItemRepository(conn),
		cache: c,
		ttl:   ttl,
	}
}

// Summary returns counts, total stock quantity, inventory value, and
// the low-stock count.
func (s *ReportService) Summary(ctx context.Context) (*models.StockSummary, error) {
	if cached, ok, err := s.cache.Get(ctx, summaryCacheKey); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Printf("summary cache read failed: %v", err)
	}

	items, err := s.items.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var totalQty int64
	var lowStock int64
	stock := make([]finance.StockInput, 0, len(items))
	for _, it := range items {
		totalQty += int64(it.Quantity)
		if it.IsLowStock() {
			lowStock++
		}
		stock = append(stock, finance.StockInput{Quantity: it.Quantity, Cost: it.Cost})
	}

	summary := &models.StockSummary{
		ItemCount:      int64(len(items)),
		TotalQuantity:  totalQty,
		InventoryValue: finance.InventoryValue(stock),
		LowStockCount:  lowStock,
		GeneratedAt:    time.Now(),
	}
	conn := s.db.WithContext(ctx)
	if err := conn.Model(&models.Customer{}).Count(&summary.CustomerCount).Error; err != nil {
		return nil, err
	}
	if err := conn.Model(&models.Invoice{}).Count(&summary.InvoiceCount).Error; err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, summaryCacheKey, summary, s.ttl); err != nil {
		log.Printf("summary cache write failed: %v", err)
	}
	return summary, nil
}
