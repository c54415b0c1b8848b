package usecase

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/drinkslane/backend/internal/domain"
)

const (
	// CacheTTL bounds how long a cached catalog may be served.
	CacheTTL = 30 * time.Minute

	// CacheVersion is bumped whenever the grouped-product shape changes;
	// entries written under another version are discarded on read.
	CacheVersion = "v2"
)

// CatalogCache is the single-slot, versioned, TTL-bounded store of the
// last grouped catalog. The slot is read-then-replaced, never partially
// mutated: a writer commits a complete entry or leaves the old one
// untouched.
type CatalogCache struct {
	store   domain.SlotStore
	version string
	ttl     time.Duration
	now     func() time.Time
}

// NewCatalogCache creates a cache over the given slot store with the
// current code version and the 30-minute TTL.
func NewCatalogCache(store domain.SlotStore) *CatalogCache {
	return &CatalogCache{
		store:   store,
		version: CacheVersion,
		ttl:     CacheTTL,
		now:     time.Now,
	}
}

// Load reads the persisted slot. Corrupt or stale entries are discarded
// silently and reported as ErrCacheInvalid; an unoccupied slot is
// ErrCacheMiss.
func (c *CatalogCache) Load(ctx context.Context) (*domain.CacheEntry, error) {
	data, err := c.store.Load(ctx)
	if err != nil {
		return nil, domain.ErrCacheMiss
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Printf("[CACHE] discarding corrupt entry: %v", err)
		_ = c.store.Clear(ctx)
		return nil, domain.ErrCacheInvalid
	}

	if !c.entryValidAt(&entry, c.now()) {
		_ = c.store.Clear(ctx)
		return nil, domain.ErrCacheInvalid
	}

	return &entry, nil
}

// Save replaces the slot with a fresh entry. An empty product set leaves
// the existing entry untouched: the cache only ever holds the result of
// a successful fetch+group.
func (c *CatalogCache) Save(ctx context.Context, products, productsByOriginalOrder []domain.GroupedProduct) error {
	if len(products) == 0 {
		log.Printf("[CACHE] skipping save of empty catalog")
		return nil
	}

	entry := domain.CacheEntry{
		Products:                products,
		ProductsByOriginalOrder: productsByOriginalOrder,
		Timestamp:               c.now(),
		Version:                 c.version,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.store.Store(ctx, data)
}

// Clear forces the slot to Empty.
func (c *CatalogCache) Clear(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// IsValid reports whether the slot currently holds a servable entry. It
// is a pure predicate: unlike Load, it never discards anything.
func (c *CatalogCache) IsValid(ctx context.Context) bool {
	data, err := c.store.Load(ctx)
	if err != nil {
		return false
	}
	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return false
	}
	return c.entryValidAt(&entry, c.now())
}

// entryValidAt holds the Valid conditions: matching version, non-empty
// products, and age strictly under the TTL.
func (c *CatalogCache) entryValidAt(entry *domain.CacheEntry, now time.Time) bool {
	if entry.Version != c.version {
		return false
	}
	if len(entry.Products) == 0 {
		return false
	}
	return now.Sub(entry.Timestamp) < c.ttl
}
