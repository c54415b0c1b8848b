package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// FlexPrice decodes a price that the catalog backend serves either as a
// JSON number or as a formatted string (e.g. "KES 1,200").
type FlexPrice string

// UnmarshalJSON accepts both representations and keeps the raw text.
func (p *FlexPrice) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = FlexPrice(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = FlexPrice(n.String())
	return nil
}

func (p FlexPrice) String() string { return string(p) }

// MarshalJSON keeps the string form so cached entries round-trip.
func (p FlexPrice) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

// CatalogRow is one raw priced row from the catalog backend. The source
// of truth lives outside this service; rows are never mutated.
type CatalogRow struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       FlexPrice `json:"price"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
}

// ProductVariant is one size/price option of a grouped product. It is
// owned exclusively by its GroupedProduct and never shared.
type ProductVariant struct {
	Size           string     `json:"size"`
	Price          int        `json:"price"`
	PriceFormatted string     `json:"priceFormatted"`
	Source         CatalogRow `json:"source"`
}

// GroupedProduct aggregates one or more priced variant rows under a
// single display entry. Variants is never empty and keeps source order;
// LowestPrice is the minimum variant price.
type GroupedProduct struct {
	ID          string           `json:"id"`
	BaseName    string           `json:"baseName"`
	Category    string           `json:"category"`
	Description string           `json:"description,omitempty"`
	LowestPrice int              `json:"lowestPrice"`
	Variants    []ProductVariant `json:"variants"`
}

// PriceRange is an inclusive price window selected by the caller.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// PriceBounds describes the selectable price window for the current
// product set. Enabled is false when fewer than two distinct positive
// prices exist, in which case price filtering is skipped entirely.
type PriceBounds struct {
	Min     int  `json:"min"`
	Max     int  `json:"max"`
	Enabled bool `json:"enabled"`
}

// CacheEntry is the single persisted catalog cache slot. It is replaced
// wholesale on every write, never mutated in place.
type CacheEntry struct {
	Products                []GroupedProduct `json:"products"`
	ProductsByOriginalOrder []GroupedProduct `json:"productsByOriginalOrder"`
	Timestamp               time.Time        `json:"timestamp"`
	Version                 string           `json:"version"`
}

// Suggestion types. Category suggestions always precede product
// suggestions in a composed list.
const (
	SuggestionTypeProduct  = "product"
	SuggestionTypeCategory = "category"
)

// SearchSuggestion is one entry of a composed suggestion list.
type SearchSuggestion struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Type     string `json:"type"`
	Category string `json:"category,omitempty"`
}

// FormatPrice renders an integer price the way the storefront shows it.
func FormatPrice(price int) string {
	return "KES " + groupThousands(price)
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
