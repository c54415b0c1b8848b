package usecase

import (
	"strings"

	"github.com/drinkslane/backend/internal/domain"
)

// CatalogFilter applies search-term, category, and price-range
// predicates to a grouped product set.
type CatalogFilter struct {
	resolver *CategoryResolver
}

// NewCatalogFilter creates a filter using the given resolver for the
// category predicate.
func NewCatalogFilter(resolver *CategoryResolver) *CatalogFilter {
	return &CatalogFilter{resolver: resolver}
}

// Apply runs all three predicates. A nil priceRange skips price
// filtering, as does a product set with fewer than two distinct positive
// prices.
func (f *CatalogFilter) Apply(
	products []domain.GroupedProduct,
	searchTerm, selectedCategory string,
	priceRange *domain.PriceRange,
) []domain.GroupedProduct {
	narrowed := f.BySearchAndCategory(products, searchTerm, selectedCategory)

	bounds := PriceBoundsFor(narrowed)
	if priceRange == nil || !bounds.Enabled {
		return narrowed
	}

	kept := make([]domain.GroupedProduct, 0, len(narrowed))
	for _, p := range narrowed {
		if p.LowestPrice >= priceRange.Min && p.LowestPrice <= priceRange.Max {
			kept = append(kept, p)
		}
	}
	return kept
}

// BySearchAndCategory applies only the search-term and category
// predicates. Price bounds are always derived from this narrowed set so
// a stale range can never hide valid products.
func (f *CatalogFilter) BySearchAndCategory(
	products []domain.GroupedProduct,
	searchTerm, selectedCategory string,
) []domain.GroupedProduct {
	term := NormalizeText(searchTerm)

	kept := make([]domain.GroupedProduct, 0, len(products))
	for _, p := range products {
		if term != "" && !matchesSearchTerm(p, term) {
			continue
		}
		if !f.resolver.Matches(p.Category, selectedCategory) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// matchesSearchTerm checks the normalized term against base name,
// category, description, and every variant's source title.
func matchesSearchTerm(p domain.GroupedProduct, term string) bool {
	if strings.Contains(NormalizeText(p.BaseName), term) ||
		strings.Contains(NormalizeText(p.Category), term) ||
		strings.Contains(NormalizeText(p.Description), term) {
		return true
	}
	for _, v := range p.Variants {
		if strings.Contains(NormalizeText(v.Source.Title), term) {
			return true
		}
	}
	return false
}

// PriceBoundsFor derives the selectable price window from the current
// product set, ignoring non-positive prices. Fewer than two distinct
// positive prices disables price filtering entirely.
func PriceBoundsFor(products []domain.GroupedProduct) domain.PriceBounds {
	distinct := make(map[int]struct{})
	min, max := 0, 0
	for _, p := range products {
		price := p.LowestPrice
		if price <= 0 {
			continue
		}
		distinct[price] = struct{}{}
		if min == 0 || price < min {
			min = price
		}
		if price > max {
			max = price
		}
	}
	if len(distinct) < 2 {
		return domain.PriceBounds{}
	}
	return domain.PriceBounds{Min: min, Max: max, Enabled: true}
}

// FilterState tracks the user's live query state. Changing the search
// term or category recomputes the price bounds and resets the active
// range to them.
type FilterState struct {
	filter           *CatalogFilter
	products         []domain.GroupedProduct
	searchTerm       string
	selectedCategory string
	bounds           domain.PriceBounds
	activeRange      domain.PriceRange
}

// NewFilterState creates filter state over a product set, starting at
// the "All" category with no search term.
func NewFilterState(filter *CatalogFilter, products []domain.GroupedProduct) *FilterState {
	s := &FilterState{
		filter:           filter,
		products:         products,
		selectedCategory: CategoryAll,
	}
	s.recomputeBounds()
	return s
}

// SetProducts replaces the underlying product set.
func (s *FilterState) SetProducts(products []domain.GroupedProduct) {
	s.products = products
	s.recomputeBounds()
}

// SetSearchTerm updates the search term and resets the price range.
func (s *FilterState) SetSearchTerm(term string) {
	s.searchTerm = term
	s.recomputeBounds()
}

// SetCategory updates the selected category and resets the price range.
func (s *FilterState) SetCategory(category string) {
	s.selectedCategory = category
	s.recomputeBounds()
}

// SetPriceRange narrows the active range. It is clamped to the current
// bounds and ignored while price filtering is disabled.
func (s *FilterState) SetPriceRange(r domain.PriceRange) {
	if !s.bounds.Enabled {
		return
	}
	if r.Min < s.bounds.Min {
		r.Min = s.bounds.Min
	}
	if r.Max > s.bounds.Max {
		r.Max = s.bounds.Max
	}
	s.activeRange = r
}

// Bounds returns the current selectable price window.
func (s *FilterState) Bounds() domain.PriceBounds {
	return s.bounds
}

// Visible returns the products passing all active predicates.
func (s *FilterState) Visible() []domain.GroupedProduct {
	narrowed := s.filter.BySearchAndCategory(s.products, s.searchTerm, s.selectedCategory)
	if !s.bounds.Enabled {
		return narrowed
	}
	kept := make([]domain.GroupedProduct, 0, len(narrowed))
	for _, p := range narrowed {
		if p.LowestPrice >= s.activeRange.Min && p.LowestPrice <= s.activeRange.Max {
			kept = append(kept, p)
		}
	}
	return kept
}

func (s *FilterState) recomputeBounds() {
	narrowed := s.filter.BySearchAndCategory(s.products, s.searchTerm, s.selectedCategory)
	s.bounds = PriceBoundsFor(narrowed)
	s.activeRange = domain.PriceRange{Min: s.bounds.Min, Max: s.bounds.Max}
}
