package domain

import "context"

// CatalogSource is the managed catalog backend: rows, title search, and
// the image-asset namespace listing.
type CatalogSource interface {
	ListRows(ctx context.Context) ([]CatalogRow, error)
	SearchTitles(ctx context.Context, query string, limit int) ([]CatalogRow, error)
	ListImages(ctx context.Context) ([]FilterImage, error)
}

// TitleSearcher is the slice of CatalogSource the suggestion composer
// needs; a dedicated search index can stand in for the backend here.
type TitleSearcher interface {
	SearchTitles(ctx context.Context, query string, limit int) ([]CatalogRow, error)
}

// NameCorrector canonicalizes a raw product title into its base name.
// It runs before grouping and before image matching.
type NameCorrector interface {
	Correct(rawTitle string) string
}

// ImageGenerator produces a substitute image when the classifier rejects
// every available candidate.
type ImageGenerator interface {
	Generate(ctx context.Context, productName, category string) (string, error)
}

// SlotStore persists the single serialized cache entry. Implementations
// must replace the slot atomically from the reader's point of view.
type SlotStore interface {
	Load(ctx context.Context) ([]byte, error)
	Store(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}
