package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/drinkslane/backend/internal/domain"
	"github.com/drinkslane/backend/internal/usecase"
)

// refreshTimeout bounds one scheduled refresh run.
const refreshTimeout = 2 * time.Minute

// ProductIndexer receives the refreshed catalog after each run, so an
// external search index stays aligned with the served products.
type ProductIndexer interface {
	IndexProducts(ctx context.Context, products []domain.GroupedProduct) error
}

// StartRefresh schedules periodic catalog refreshes so the cache slot
// stays warm between browsing sessions. indexer may be nil. The returned
// cron can be stopped by the caller on shutdown.
func StartRefresh(service *usecase.CatalogService, indexer ProductIndexer, schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		products, err := service.Refresh(ctx)
		if err != nil {
			log.Printf("[REFRESH] scheduled refresh failed: %v", err)
			return
		}
		if indexer != nil {
			if err := indexer.IndexProducts(ctx, products); err != nil {
				log.Printf("[REFRESH] search index update failed: %v", err)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("[REFRESH] scheduled catalog refresh: %s", schedule)
	return c, nil
}
