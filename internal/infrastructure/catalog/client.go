package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/drinkslane/backend/internal/domain"
)

// Client talks to the managed catalog backend: product rows, title
// search, and the image-asset bucket listing. All three surfaces are
// read-only REST endpoints.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	bucket      string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a catalog client. The backend allows roughly 120
// requests per minute per key, so the limiter runs at 2 req/s with a
// small burst.
func NewClient(baseURL, apiKey, bucket string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		apiKey:      apiKey,
		bucket:      bucket,
		rateLimiter: rate.NewLimiter(rate.Limit(2), 5),
	}
}

// SetDebug toggles request logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// ListRows fetches the full product table.
func (c *Client) ListRows(ctx context.Context) ([]domain.CatalogRow, error) {
	params := url.Values{}
	params.Add("select", "*")
	params.Add("order", "id.asc")

	body, err := c.get(ctx, "/rest/v1/products", params)
	if err != nil {
		return nil, err
	}

	var rows []domain.CatalogRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("%w: decoding rows: %v", domain.ErrCatalogUnavailable, err)
	}
	if c.debug {
		log.Printf("[BACKEND] listed %d rows", len(rows))
	}
	return rows, nil
}

// SearchTitles fetches rows whose title contains the query,
// case-insensitively, capped at limit.
func (c *Client) SearchTitles(ctx context.Context, query string, limit int) ([]domain.CatalogRow, error) {
	params := url.Values{}
	params.Add("select", "id,title,price,category")
	params.Add("title", fmt.Sprintf("ilike.*%s*", query))
	params.Add("limit", fmt.Sprintf("%d", limit))

	body, err := c.get(ctx, "/rest/v1/products", params)
	if err != nil {
		return nil, err
	}

	var rows []domain.CatalogRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("%w: decoding search results: %v", domain.ErrCatalogUnavailable, err)
	}
	return rows, nil
}

// assetObject is one entry of the bucket listing response.
type assetObject struct {
	Name string `json:"name"`
}

// ListImages fetches the asset bucket listing and derives public URLs.
func (c *Client) ListImages(ctx context.Context) ([]domain.FilterImage, error) {
	body, err := c.get(ctx, "/storage/v1/object/list/"+c.bucket, nil)
	if err != nil {
		return nil, err
	}

	var objects []assetObject
	if err := json.Unmarshal(body, &objects); err != nil {
		return nil, fmt.Errorf("%w: decoding asset listing: %v", domain.ErrImageSourceUnavailable, err)
	}

	images := make([]domain.FilterImage, 0, len(objects))
	for _, obj := range objects {
		if obj.Name == "" {
			continue
		}
		images = append(images, domain.FilterImage{
			Name:      obj.Name,
			PublicURL: fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, obj.Name),
		})
	}
	if c.debug {
		log.Printf("[BACKEND] listed %d image assets", len(images))
	}
	return images, nil
}

// get executes a GET with auth headers, rate limiting, and up to three
// attempts for transient failures.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("User-Agent", "drinkslane/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if c.debug {
				log.Printf("[BACKEND] request error (attempt %d): %v", attempt, err)
			}
			lastErr = fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[BACKEND] status %d (attempt %d): %s", resp.StatusCode, attempt, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return nil, lastErr
			}
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		return body, nil
	}

	return nil, lastErr
}
