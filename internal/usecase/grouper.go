package usecase

import (
	"strings"

	"github.com/drinkslane/backend/internal/domain"
)

// ProductGrouper folds a flat list of priced catalog rows into grouped
// products with variants. Rows sharing a corrected base name and a
// resolved category land in the same group; no row is ever dropped.
type ProductGrouper struct {
	corrector domain.NameCorrector
	resolver  *CategoryResolver
}

// NewProductGrouper creates a grouper over the given name-correction
// collaborator.
func NewProductGrouper(corrector domain.NameCorrector, resolver *CategoryResolver) *ProductGrouper {
	return &ProductGrouper{
		corrector: corrector,
		resolver:  resolver,
	}
}

// Group produces grouped products in first-appearance order. Within a
// group, variants preserve source order and LowestPrice is the minimum
// parsed price across variants.
func (g *ProductGrouper) Group(rows []domain.CatalogRow) []domain.GroupedProduct {
	var groups []domain.GroupedProduct
	index := make(map[string]int, len(rows))

	for _, row := range rows {
		base := g.corrector.Correct(row.Title)
		category := g.resolver.Resolve(row.Category)
		price := ParsePrice(row.Price.String())

		variant := domain.ProductVariant{
			Size:           ExtractSize(row.Title),
			Price:          price,
			PriceFormatted: domain.FormatPrice(price),
			Source:         row,
		}

		key := strings.ToLower(base) + "|" + strings.ToLower(category)
		if i, ok := index[key]; ok {
			groups[i].Variants = append(groups[i].Variants, variant)
			if price < groups[i].LowestPrice {
				groups[i].LowestPrice = price
			}
			if groups[i].Description == "" {
				groups[i].Description = row.Description
			}
			continue
		}

		index[key] = len(groups)
		groups = append(groups, domain.GroupedProduct{
			ID:          row.ID,
			BaseName:    base,
			Category:    category,
			Description: row.Description,
			LowestPrice: price,
			Variants:    []domain.ProductVariant{variant},
		})
	}

	return groups
}
