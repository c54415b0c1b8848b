package domain

import "errors"

var (
	// ErrCatalogUnavailable is returned when the catalog backend is
	// unreachable or returns a malformed payload.
	ErrCatalogUnavailable = errors.New("catalog backend unavailable")

	// ErrImageSourceUnavailable is returned when the image-asset listing
	// cannot be fetched.
	ErrImageSourceUnavailable = errors.New("image asset source unavailable")

	// ErrCacheMiss is returned when no entry occupies the cache slot.
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheInvalid is returned when a stored entry fails the
	// version/TTL/non-empty checks and has been discarded.
	ErrCacheInvalid = errors.New("cache entry invalid")

	// ErrProductNotFound is returned when no grouped product carries the
	// requested identifier.
	ErrProductNotFound = errors.New("product not found")

	// ErrGenerationFailed is returned when the image generation
	// collaborator cannot produce a substitute image.
	ErrGenerationFailed = errors.New("image generation failed")
)
