package usecase

import (
	"net/url"
	"path"
	"strings"
	"unicode"

	"github.com/drinkslane/backend/internal/domain"
)

// deniedDomains hosts social/media/placeholder imagery that is never a
// usable product shot.
var deniedDomains = []string{
	"pinterest.com",
	"instagram.com",
	"facebook.com",
	"twitter.com",
	"x.com",
	"tiktok.com",
	"youtube.com",
	"gravatar.com",
	"placeholder.com",
	"placehold.co",
	"dummyimage.com",
	"example.com",
}

// nonProductKeywords mark URLs of non-product imagery.
var nonProductKeywords = []string{
	"selfie",
	"avatar",
	"logo",
	"profile",
	"banner",
	"thumbnail",
	"screenshot",
	"watermark",
}

// genericFilenames are camera/placeholder names that carry no product
// information.
var genericFilenames = []string{
	"image",
	"photo",
	"unnamed",
	"img",
	"untitled",
	"download",
}

// allowedExtensions are the accepted image file extensions.
var allowedExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

// Confidence ladder of the appropriateness scorer. Compatibility values,
// not a calibrated model.
const (
	confidenceMissingURL   = 1.0
	confidenceDeniedDomain = 0.9
	confidenceKeyword      = 0.8
	confidenceExtension    = 0.7
	confidenceAccepted     = 0.6
)

// imageContext is the input of one classification.
type imageContext struct {
	url         string
	productName string
	category    string
}

// classifierRule returns a verdict when it fires, nil to pass to the
// next rule.
type classifierRule func(imageContext) *domain.ImageClassification

// ImageClassifier scores a candidate image URL for acceptability as a
// product shot. It only routes to a fallback path; a reject never blocks
// rendering.
type ImageClassifier struct {
	rules []classifierRule
}

// NewImageClassifier creates a classifier with the fixed rule chain:
// missing URL, denied domain, non-product keyword, wrong extension.
func NewImageClassifier() *ImageClassifier {
	return &ImageClassifier{
		rules: []classifierRule{
			rejectMissingURL,
			rejectDeniedDomain,
			rejectNonProductKeyword,
			rejectWrongExtension,
		},
	}
}

// Classify evaluates the rule chain in order and returns the first
// verdict, or an acceptance when no rule fires.
func (c *ImageClassifier) Classify(imageURL, productName, category string) domain.ImageClassification {
	ctx := imageContext{url: imageURL, productName: productName, category: category}
	for _, rule := range c.rules {
		if verdict := rule(ctx); verdict != nil {
			return *verdict
		}
	}
	return domain.ImageClassification{
		IsAppropriate:   true,
		Confidence:      confidenceAccepted,
		Reason:          "no reject rule fired",
		SuggestedAction: domain.ImageActionUse,
	}
}

// IsDenied is the boolean reject-list check, independent of the scorer:
// denied host, missing accepted extension, non-product path keyword,
// generic filename, or a filename with fewer than four letters.
func (c *ImageClassifier) IsDenied(imageURL string) bool {
	parsed, err := url.Parse(imageURL)
	if err != nil || imageURL == "" {
		return true
	}
	if hostDenied(parsed.Host) {
		return true
	}
	if !hasAllowedExtension(parsed.Path) {
		return true
	}
	lowerPath := strings.ToLower(parsed.Path)
	for _, kw := range nonProductKeywords {
		if strings.Contains(lowerPath, kw) {
			return true
		}
	}
	base := filenameStem(parsed.Path)
	for _, generic := range genericFilenames {
		if base == generic {
			return true
		}
	}
	return lettersOnlyLen(base) < 4
}

func rejectMissingURL(ctx imageContext) *domain.ImageClassification {
	if strings.TrimSpace(ctx.url) != "" {
		return nil
	}
	return &domain.ImageClassification{
		Confidence:      confidenceMissingURL,
		Reason:          "missing image url",
		SuggestedAction: domain.ImageActionGenerate,
	}
}

func rejectDeniedDomain(ctx imageContext) *domain.ImageClassification {
	parsed, err := url.Parse(ctx.url)
	if err != nil || !hostDenied(parsed.Host) {
		return nil
	}
	return &domain.ImageClassification{
		Confidence:      confidenceDeniedDomain,
		Reason:          "denylisted image host: " + parsed.Host,
		SuggestedAction: domain.ImageActionGenerate,
	}
}

func rejectNonProductKeyword(ctx imageContext) *domain.ImageClassification {
	lower := strings.ToLower(ctx.url)
	for _, kw := range nonProductKeywords {
		if strings.Contains(lower, kw) {
			return &domain.ImageClassification{
				Confidence:      confidenceKeyword,
				Reason:          "non-product keyword in url: " + kw,
				SuggestedAction: domain.ImageActionGenerate,
			}
		}
	}
	return nil
}

func rejectWrongExtension(ctx imageContext) *domain.ImageClassification {
	parsed, err := url.Parse(ctx.url)
	if err == nil && hasAllowedExtension(parsed.Path) {
		return nil
	}
	return &domain.ImageClassification{
		Confidence:      confidenceExtension,
		Reason:          "not an accepted image extension",
		SuggestedAction: domain.ImageActionGenerate,
	}
}

func hostDenied(host string) bool {
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	for _, denied := range deniedDomains {
		if host == denied || strings.HasSuffix(host, "."+denied) {
			return true
		}
	}
	return false
}

func hasAllowedExtension(urlPath string) bool {
	ext := strings.ToLower(path.Ext(urlPath))
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// filenameStem is the lowercased final path segment without extension.
func filenameStem(urlPath string) string {
	base := strings.ToLower(path.Base(urlPath))
	return strings.TrimSuffix(base, path.Ext(base))
}

func lettersOnlyLen(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
