package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/drinkslane/backend/internal/domain"
)

// Client calls the AI image generation collaborator. It is invoked only
// when the quality classifier rejects every available candidate.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a generation client.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL: baseURL,
	}
}

type generateRequest struct {
	ProductName string `json:"productName"`
	Category    string `json:"category"`
}

type generateResponse struct {
	ImageURL string `json:"imageUrl"`
}

// Generate requests a substitute product image and returns its URL.
func (c *Client) Generate(ctx context.Context, productName, category string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		ProductName: productName,
		Category:    category,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d, body: %s", domain.ErrGenerationFailed, resp.StatusCode, string(body))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", domain.ErrGenerationFailed, err)
	}
	if result.ImageURL == "" {
		return "", domain.ErrGenerationFailed
	}
	return result.ImageURL, nil
}
