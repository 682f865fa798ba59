// Package catalog fetches and holds the read-only product catalog and
// derives the filtered/sorted product view.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ArpanNarula/Shop-Assesment/internal/models"
)

// Client fetches the product listing from the remote API.
type Client struct {
	baseURL string
	limit   int
	httpc   *http.Client
}

// NewClient creates a catalog client for the given listing URL.
// limit caps the number of products requested (the API's limit parameter).
func NewClient(baseURL string, limit int) *Client {
	return &Client{
		baseURL: baseURL,
		limit:   limit,
		httpc:   &http.Client{},
	}
}

// listingResponse mirrors the product-listing API body.
type listingResponse struct {
	Products []models.Product `json:"products"`
}

// Fetch issues the one-shot product listing request.
func (c *Client) Fetch(ctx context.Context) ([]models.Product, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse url: %w", err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(c.limit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: unexpected status %d", resp.StatusCode)
	}

	var body listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("catalog: decode response: %w", err)
	}
	return body.Products, nil
}
