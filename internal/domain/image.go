package domain

// FilterImage is one entry of the external image-asset namespace. Assets
// are not foreign-keyed to products; matching is inferential.
type FilterImage struct {
	Name      string `json:"name"`
	PublicURL string `json:"publicUrl"`
}

// ImageMatchResult is the outcome of matching a product name against the
// asset namespace. An empty URL means "fall back to the category icon".
type ImageMatchResult struct {
	URL   string  `json:"url"`
	Score float64 `json:"score"`
}

// Suggested actions of the image quality classifier.
const (
	ImageActionUse      = "use"
	ImageActionFallback = "fallback"
	ImageActionGenerate = "generate"
)

// ImageClassification is the verdict of the quality classifier for one
// candidate (url, product) pair. It routes to a fallback path; it never
// blocks rendering.
type ImageClassification struct {
	IsAppropriate   bool    `json:"isAppropriate"`
	Confidence      float64 `json:"confidence"`
	Reason          string  `json:"reason"`
	SuggestedAction string  `json:"suggestedAction"`
}
