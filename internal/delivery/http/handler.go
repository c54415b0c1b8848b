package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/drinkslane/backend/internal/domain"
	"github.com/drinkslane/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	catalog     *usecase.CatalogService
	suggestions *usecase.SuggestionService
}

// NewHandler creates a new HTTP handler.
func NewHandler(catalog *usecase.CatalogService, suggestions *usecase.SuggestionService) *Handler {
	return &Handler{
		catalog:     catalog,
		suggestions: suggestions,
	}
}

// HealthCheck returns the health status of the API.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "drinkslane-backend",
		"version": "1.0.0",
	})
}

// GetCatalog serves the grouped catalog filtered by search term,
// category, and optional price range. Backend failures render as an
// empty list, never as a 5xx on the browse path.
func (h *Handler) GetCatalog(c *gin.Context) {
	query := c.Query("q")
	category := c.DefaultQuery("category", usecase.CategoryAll)

	var priceRange *domain.PriceRange
	minRaw, maxRaw := c.Query("min_price"), c.Query("max_price")
	if minRaw != "" && maxRaw != "" {
		min, errMin := strconv.Atoi(minRaw)
		max, errMax := strconv.Atoi(maxRaw)
		if errMin != nil || errMax != nil || min > max {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price range"})
			return
		}
		priceRange = &domain.PriceRange{Min: min, Max: max}
	}

	products, bounds := h.catalog.Browse(c.Request.Context(), query, category, priceRange)
	c.JSON(http.StatusOK, gin.H{
		"products":    products,
		"priceBounds": bounds,
	})
}

// Suggest serves the composed suggestion list for a query. Debouncing
// happens at the typing client; this endpoint composes synchronously.
func (h *Handler) Suggest(c *gin.Context) {
	suggestions, err := h.suggestions.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"suggestions": []domain.SearchSuggestion{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// ListCategories serves the canonical taxonomy in display order.
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": usecase.Categories()})
}

// RefreshCatalog forces a refetch of the backend and replaces the cache
// slot.
func (h *Handler) RefreshCatalog(c *gin.Context) {
	products, err := h.catalog.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog backend unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": len(products)})
}

// GetProductImage resolves the display image for one grouped product.
// An empty url means the client should render the fallback icon.
func (h *Handler) GetProductImage(c *gin.Context) {
	product, err := h.catalog.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog backend unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":          h.catalog.ResolveDisplayImage(c.Request.Context(), *product),
		"fallbackIcon": h.catalog.FallbackIcon(*product),
	})
}
