package usecase

import "strings"

// CategoryAll matches every product category.
const CategoryAll = "All"

// canonicalCategories is the fixed storefront taxonomy in display order.
// Suggestion composition and the category listing endpoint both follow
// this order.
var canonicalCategories = []string{
	CategoryAll,
	"Whisky",
	"Wine",
	"Beer (6-Packs)",
	"Vodka",
	"Gin",
	"Rum",
	"Brandy & Cognac",
	"Tequila",
	"Liqueur",
	"Soft Drinks & Mixers",
}

// categoryAliases maps common misspellings and synonyms to canonical
// category names. Lookup is lowercase; unknown labels pass through.
var categoryAliases = map[string]string{
	"whiskey":       "Whisky",
	"whiskies":      "Whisky",
	"scotch":        "Whisky",
	"bourbon":       "Whisky",
	"beer":          "Beer (6-Packs)",
	"beers":         "Beer (6-Packs)",
	"6 pack":        "Beer (6-Packs)",
	"6-pack":        "Beer (6-Packs)",
	"six pack":      "Beer (6-Packs)",
	"cider":         "Beer (6-Packs)",
	"wines":         "Wine",
	"red wine":      "Wine",
	"white wine":    "Wine",
	"champagne":     "Wine",
	"vodkas":        "Vodka",
	"gins":          "Gin",
	"rums":          "Rum",
	"brandy":        "Brandy & Cognac",
	"cognac":        "Brandy & Cognac",
	"tequilas":      "Tequila",
	"liqueurs":      "Liqueur",
	"cream liqueur": "Liqueur",
	"soft drink":    "Soft Drinks & Mixers",
	"soft drinks":   "Soft Drinks & Mixers",
	"mixers":        "Soft Drinks & Mixers",
	"soda":          "Soft Drinks & Mixers",
}

// categoryIcons maps canonical categories to the deterministic glyph
// shown when no acceptable product image can be resolved.
var categoryIcons = map[string]string{
	"Whisky":               "\U0001F943", // 🥃
	"Wine":                 "\U0001F377", // 🍷
	"Beer (6-Packs)":       "\U0001F37A", // 🍺
	"Vodka":                "\U0001F378", // 🍸
	"Gin":                  "\U0001F378",
	"Rum":                  "\U0001F943",
	"Brandy & Cognac":      "\U0001F943",
	"Tequila":              "\U0001F379", // 🍹
	"Liqueur":              "\U0001F377",
	"Soft Drinks & Mixers": "\U0001F964", // 🥤
}

const defaultCategoryIcon = "\U0001F37E" // 🍾

// CategoryResolver maps free-form category labels onto the canonical
// taxonomy and answers the category filter predicate.
type CategoryResolver struct{}

// NewCategoryResolver creates a resolver over the fixed alias table.
func NewCategoryResolver() *CategoryResolver {
	return &CategoryResolver{}
}

// Resolve returns the canonical form of a raw category label. Unknown
// labels are returned unchanged, never rejected.
func (r *CategoryResolver) Resolve(raw string) string {
	if canonical, ok := categoryAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return canonical
	}
	return raw
}

// Matches reports whether a product category satisfies the selected
// category. Besides the "All" wildcard, the test is bidirectional
// substring containment of the resolved forms: it tolerates both over-
// and under-specific labels at the cost of occasional false positives
// ("Sparkling Wine" matches "Wine"). A beer-specific rule catches label
// shapes the alias table misses.
func (r *CategoryResolver) Matches(productCategory, selectedCategory string) bool {
	if selectedCategory == CategoryAll {
		return true
	}

	product := strings.ToLower(r.Resolve(productCategory))
	selected := strings.ToLower(r.Resolve(selectedCategory))
	if product != "" && selected != "" &&
		(strings.Contains(product, selected) || strings.Contains(selected, product)) {
		return true
	}

	if containsBeer(selectedCategory, selected) && containsBeer(productCategory, product) {
		return true
	}
	return false
}

func containsBeer(raw, resolved string) bool {
	return strings.Contains(strings.ToLower(raw), "beer") || strings.Contains(resolved, "beer")
}

// Categories returns the canonical taxonomy in display order.
func Categories() []string {
	out := make([]string, len(canonicalCategories))
	copy(out, canonicalCategories)
	return out
}

// CategoryIcon returns the fallback glyph for a category label.
func CategoryIcon(category string) string {
	resolver := CategoryResolver{}
	if icon, ok := categoryIcons[resolver.Resolve(category)]; ok {
		return icon
	}
	return defaultCategoryIcon
}
