package usecase

import (
	"regexp"
	"strings"
)

// sizeTokenRegex matches trailing size/volume tokens in product titles,
// e.g. "750ml", "1 Litre", "250 ML", "6 pack", "330ml cans".
var sizeTokenRegex = regexp.MustCompile(
	`(?i)\b\d+(?:\.\d+)?\s*(?:ml|cl|l|ltr|litres?|liters?)\b\.?|\b\d+\s*(?:pack|pk|cans?|bottles?)\b`,
)

// titleOverrides fixes supplier misspellings that normalization alone
// cannot recover. Keys are lowercased full titles after size stripping.
var titleOverrides = map[string]string{
	"jack daniels":  "Jack Daniel's",
	"jamesson":      "Jameson",
	"smirnof":       "Smirnoff",
	"famous groose": "Famous Grouse",
	"tusker larger": "Tusker Lager",
	"4th street":    "4th Street",
}

// TitleCorrector is the default name-correction collaborator: it strips
// trailing size/volume tokens from a raw title and applies a small
// misspelling table, yielding the base name shared by all variants of a
// logical product.
type TitleCorrector struct{}

// NewTitleCorrector creates the default corrector.
func NewTitleCorrector() *TitleCorrector {
	return &TitleCorrector{}
}

// Correct returns the canonical base name for a raw catalog title.
func (c *TitleCorrector) Correct(rawTitle string) string {
	base := sizeTokenRegex.ReplaceAllString(rawTitle, " ")
	base = multipleSpacesRegex.ReplaceAllString(base, " ")
	base = strings.Trim(base, " -,")
	if fixed, ok := titleOverrides[strings.ToLower(base)]; ok {
		return fixed
	}
	return base
}

// ExtractSize returns the size token carried by a title ("750ml"), or
// "Standard" when the title has none.
func ExtractSize(title string) string {
	if size := strings.TrimSpace(sizeTokenRegex.FindString(title)); size != "" {
		return size
	}
	return "Standard"
}
