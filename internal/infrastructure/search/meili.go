package search

import (
	"context"
	"encoding/json"
	"fmt"

	meilisearch "github.com/meilisearch/meilisearch-go"

	"github.com/drinkslane/backend/internal/domain"
)

// productDocument is the shape of one indexed product.
type productDocument struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Price    domain.FlexPrice `json:"price"`
	Category string           `json:"category,omitempty"`
}

// TitleSearcher answers suggestion title queries from a Meilisearch
// index instead of the catalog backend. It satisfies
// domain.TitleSearcher.
type TitleSearcher struct {
	client    meilisearch.ServiceManager
	indexName string
}

// NewTitleSearcher connects to a Meilisearch instance. indexName falls
// back to "products" when empty.
func NewTitleSearcher(baseURL, apiKey, indexName string) *TitleSearcher {
	if indexName == "" {
		indexName = "products"
	}
	return &TitleSearcher{
		client:    meilisearch.New(baseURL, meilisearch.WithAPIKey(apiKey)),
		indexName: indexName,
	}
}

// SearchTitles runs the query against the index and maps hits back to
// catalog rows in ranking order.
func (s *TitleSearcher) SearchTitles(ctx context.Context, query string, limit int) ([]domain.CatalogRow, error) {
	res, err := s.client.Index(s.indexName).Search(query, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	raw, err := json.Marshal(res.Hits)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding hits: %v", domain.ErrCatalogUnavailable, err)
	}
	var docs []productDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("%w: decoding hits: %v", domain.ErrCatalogUnavailable, err)
	}

	rows := make([]domain.CatalogRow, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, domain.CatalogRow{
			ID:       doc.ID,
			Title:    doc.Title,
			Price:    doc.Price,
			Category: doc.Category,
		})
	}
	return rows, nil
}

// IndexProducts pushes grouped products into the index so suggestions
// stay aligned with the served catalog after each refresh.
func (s *TitleSearcher) IndexProducts(ctx context.Context, products []domain.GroupedProduct) error {
	docs := make([]productDocument, 0, len(products))
	for _, p := range products {
		docs = append(docs, productDocument{
			ID:       p.ID,
			Title:    p.BaseName,
			Price:    domain.FlexPrice(fmt.Sprintf("%d", p.LowestPrice)),
			Category: p.Category,
		})
	}
	if _, err := s.client.Index(s.indexName).AddDocuments(docs, nil); err != nil {
		return fmt.Errorf("indexing products: %w", err)
	}
	return nil
}
