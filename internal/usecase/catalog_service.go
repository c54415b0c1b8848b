package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/drinkslane/backend/internal/domain"
)

// CatalogServiceConfig holds configuration for the catalog service.
type CatalogServiceConfig struct {
	EnableDebugLogging bool
}

// CatalogService orchestrates the catalog pipeline: fetch rows, group,
// filter, cache, and resolve display images. Browsing must always render
// something: backend failures degrade to an empty set or a fallback
// icon, never to a hard error on the render path.
type CatalogService struct {
	source     domain.CatalogSource
	cache      *CatalogCache
	generator  domain.ImageGenerator
	corrector  domain.NameCorrector
	resolver   *CategoryResolver
	grouper    *ProductGrouper
	filter     *CatalogFilter
	matcher    *ImageMatcher
	classifier *ImageClassifier

	// refreshMu keeps the cache slot single-writer.
	refreshMu sync.Mutex

	// imagesMu guards the memoized asset listing.
	imagesMu sync.Mutex
	images   []domain.FilterImage

	enableDebugLogging bool
}

// NewCatalogService wires the core components around the injected
// collaborators. A nil corrector uses the default title corrector; a nil
// generator disables image generation (rejects fall through to the
// category icon).
func NewCatalogService(
	source domain.CatalogSource,
	cache *CatalogCache,
	generator domain.ImageGenerator,
	corrector domain.NameCorrector,
	config CatalogServiceConfig,
) *CatalogService {
	if corrector == nil {
		corrector = NewTitleCorrector()
	}
	resolver := NewCategoryResolver()
	return &CatalogService{
		source:             source,
		cache:              cache,
		generator:          generator,
		corrector:          corrector,
		resolver:           resolver,
		grouper:            NewProductGrouper(corrector, resolver),
		filter:             NewCatalogFilter(resolver),
		matcher:            NewImageMatcher(corrector, config.EnableDebugLogging),
		classifier:         NewImageClassifier(),
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// GroupAndFilter is the pure pipeline exposed to UI collaborators: group
// raw rows, then apply search/category/price predicates.
func (s *CatalogService) GroupAndFilter(
	rows []domain.CatalogRow,
	query, category string,
	priceRange *domain.PriceRange,
) []domain.GroupedProduct {
	return s.filter.Apply(s.grouper.Group(rows), query, category, priceRange)
}

// LoadCatalog returns the grouped catalog, serving the cache slot when
// valid and refreshing from the backend otherwise.
func (s *CatalogService) LoadCatalog(ctx context.Context) ([]domain.GroupedProduct, error) {
	if entry, err := s.cache.Load(ctx); err == nil {
		if s.enableDebugLogging {
			log.Printf("[CATALOG] serving %d products from cache", len(entry.Products))
		}
		return entry.Products, nil
	}
	return s.Refresh(ctx)
}

// Refresh fetches rows from the backend, regroups them, and replaces the
// cache slot. The slot has at most one logical writer at a time.
func (s *CatalogService) Refresh(ctx context.Context) ([]domain.GroupedProduct, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	rows, err := s.source.ListRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	byOriginalOrder := s.grouper.Group(rows)
	products := sortByTaxonomy(byOriginalOrder, s.resolver)

	if err := s.cache.Save(ctx, products, byOriginalOrder); err != nil {
		log.Printf("[CATALOG] cache save failed: %v", err)
	}
	s.invalidateImages()

	log.Printf("[CATALOG] refreshed: %d rows into %d products", len(rows), len(products))
	return products, nil
}

// Browse loads the catalog and applies the filter pipeline. A backend
// failure is logged and rendered as an empty set with disabled price
// bounds.
func (s *CatalogService) Browse(
	ctx context.Context,
	query, category string,
	priceRange *domain.PriceRange,
) ([]domain.GroupedProduct, domain.PriceBounds) {
	products, err := s.LoadCatalog(ctx)
	if err != nil {
		log.Printf("[CATALOG] browse degraded to empty set: %v", err)
		return []domain.GroupedProduct{}, domain.PriceBounds{}
	}

	narrowed := s.filter.BySearchAndCategory(products, query, category)
	bounds := PriceBoundsFor(narrowed)
	if priceRange == nil || !bounds.Enabled {
		return narrowed, bounds
	}

	kept := make([]domain.GroupedProduct, 0, len(narrowed))
	for _, p := range narrowed {
		if p.LowestPrice >= priceRange.Min && p.LowestPrice <= priceRange.Max {
			kept = append(kept, p)
		}
	}
	return kept, bounds
}

// FindByID looks a grouped product up in the loaded catalog.
func (s *CatalogService) FindByID(ctx context.Context, id string) (*domain.GroupedProduct, error) {
	products, err := s.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, domain.ErrProductNotFound
}

// ResolveDisplayImage picks the display image URL for a product: best
// asset-namespace match, else the source row's own URL, classified for
// acceptability; a reject routes to the generation collaborator. An
// empty result means "show the category icon".
func (s *CatalogService) ResolveDisplayImage(ctx context.Context, product domain.GroupedProduct) string {
	candidate := ""

	images, err := s.listImages(ctx)
	if err != nil {
		log.Printf("[IMAGE] asset listing unavailable: %v", err)
	} else {
		candidate = s.matcher.FindBestMatch(product.BaseName, s.usableImages(images)).URL
	}

	if candidate == "" && len(product.Variants) > 0 {
		candidate = product.Variants[0].Source.ImageURL
	}
	if candidate == "" {
		return s.generateOrFallback(ctx, product)
	}

	verdict := s.classifier.Classify(candidate, product.BaseName, product.Category)
	if verdict.SuggestedAction == domain.ImageActionUse {
		return candidate
	}
	if s.enableDebugLogging {
		log.Printf("[IMAGE] rejected %q (%.1f): %s", candidate, verdict.Confidence, verdict.Reason)
	}
	return s.generateOrFallback(ctx, product)
}

// FallbackIcon is the deterministic glyph for a product's category.
func (s *CatalogService) FallbackIcon(product domain.GroupedProduct) string {
	return CategoryIcon(product.Category)
}

func (s *CatalogService) generateOrFallback(ctx context.Context, product domain.GroupedProduct) string {
	if s.generator == nil {
		return ""
	}
	generated, err := s.generator.Generate(ctx, product.BaseName, product.Category)
	if err != nil || generated == "" {
		log.Printf("[IMAGE] generation unavailable for %q: %v", product.BaseName, err)
		return ""
	}
	return generated
}

// usableImages drops assets whose public URL trips the denylist check,
// so scored matching never picks an unusable candidate.
func (s *CatalogService) usableImages(images []domain.FilterImage) []domain.FilterImage {
	usable := make([]domain.FilterImage, 0, len(images))
	for _, img := range images {
		if s.classifier.IsDenied(img.PublicURL) {
			if s.enableDebugLogging {
				log.Printf("[IMAGE] skipping denylisted asset %q", img.Name)
			}
			continue
		}
		usable = append(usable, img)
	}
	return usable
}

// listImages memoizes the asset-namespace listing until the next catalog
// refresh.
func (s *CatalogService) listImages(ctx context.Context) ([]domain.FilterImage, error) {
	s.imagesMu.Lock()
	defer s.imagesMu.Unlock()
	if s.images != nil {
		return s.images, nil
	}
	images, err := s.source.ListImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImageSourceUnavailable, err)
	}
	s.images = images
	return images, nil
}

func (s *CatalogService) invalidateImages() {
	s.imagesMu.Lock()
	s.images = nil
	s.imagesMu.Unlock()
}

// sortByTaxonomy orders products by taxonomy position, then base name.
// The grouper's output keeps the source order; this is the display
// order stored alongside it.
func sortByTaxonomy(products []domain.GroupedProduct, resolver *CategoryResolver) []domain.GroupedProduct {
	sorted := make([]domain.GroupedProduct, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := taxonomyRank(sorted[i].Category, resolver), taxonomyRank(sorted[j].Category, resolver)
		if ri != rj {
			return ri < rj
		}
		return strings.ToLower(sorted[i].BaseName) < strings.ToLower(sorted[j].BaseName)
	})
	return sorted
}

func taxonomyRank(category string, resolver *CategoryResolver) int {
	resolved := resolver.Resolve(category)
	for i, c := range canonicalCategories {
		if c == resolved {
			return i
		}
	}
	return len(canonicalCategories)
}
