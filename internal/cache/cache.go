package cache

import (
	"context"
	"time"

	"stockpilot/backend/internal/models"
)

// SummaryCache holds the dashboard aggregate between recomputations.
type SummaryCache interface {
	Get(ctx context.Context, key string) (*models.StockSummary, bool, error)
	Set(ctx context.Context, key string, value *models.StockSummary, ttl time.Duration) error
}

// NoopSummaryCache is the fallback when no redis address is configured.
type NoopSummaryCache struct{}

func (NoopSummaryCache) Get(_ context.Context, _ string) (*models.StockSummary, bool, error) {
	return nil, false, nil
}

func (NoopSummaryCache) Set(_ context.Context, _ string, _ *models.StockSummary, _ time.Duration) error {
	return nil
}
