package usecase

import (
	"log"
	"strings"

	"github.com/drinkslane/backend/internal/domain"
)

// imageMatchThreshold is the strict lower bound a scored candidate must
// exceed. Tuning value kept for compatibility with the live asset
// namespace; it has no documented derivation.
const imageMatchThreshold = 0.6

// ImageMatcher resolves a product name to the best-matching entry of the
// image-asset namespace. Assets are named independently of products, so
// matching is exact-then-scored rather than keyed.
type ImageMatcher struct {
	corrector          domain.NameCorrector
	enableDebugLogging bool
}

// NewImageMatcher creates a matcher that corrects product names before
// normalizing them.
func NewImageMatcher(corrector domain.NameCorrector, enableDebugLogging bool) *ImageMatcher {
	return &ImageMatcher{
		corrector:          corrector,
		enableDebugLogging: enableDebugLogging,
	}
}

// FindBestMatch returns the URL and score of the best acceptable asset,
// or a zero result (empty URL) when nothing clears the threshold. The
// caller then falls back to the category icon, never to a broken link.
//
// Exact pass first: a normalized-name equality wins immediately with
// score 1.0. Scored pass: the fraction of product words (length > 2)
// contained in, or containing, some asset word must strictly exceed the
// threshold. Ties keep the first asset encountered.
func (m *ImageMatcher) FindBestMatch(productName string, images []domain.FilterImage) domain.ImageMatchResult {
	normalized := NormalizeText(m.corrector.Correct(productName))
	if normalized == "" {
		return domain.ImageMatchResult{}
	}

	for _, img := range images {
		if NormalizeText(img.Name) == normalized {
			if m.enableDebugLogging {
				log.Printf("[IMAGE] exact match for %q: %s", productName, img.Name)
			}
			return domain.ImageMatchResult{URL: img.PublicURL, Score: 1.0}
		}
	}

	words := qualifyingWords(normalized)
	if len(words) == 0 {
		// Only the exact pass can succeed for all-short names.
		return domain.ImageMatchResult{}
	}

	var best domain.ImageMatchResult
	for _, img := range images {
		score := matchScore(words, strings.Fields(NormalizeText(img.Name)))
		if m.enableDebugLogging {
			log.Printf("[IMAGE] candidate %q scored %.2f for %q", img.Name, score, productName)
		}
		if score > imageMatchThreshold && score > best.Score {
			best = domain.ImageMatchResult{URL: img.PublicURL, Score: score}
		}
	}
	return best
}

// qualifyingWords keeps words longer than two characters.
func qualifyingWords(normalized string) []string {
	var words []string
	for _, w := range strings.Fields(normalized) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

// matchScore is the fraction of product words with a containment match
// among the image words, in either direction.
func matchScore(productWords, imageWords []string) float64 {
	if len(imageWords) == 0 {
		return 0
	}
	matched := 0
	for _, w := range productWords {
		for _, iw := range imageWords {
			if strings.Contains(iw, w) || strings.Contains(w, iw) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(productWords))
}
