package rainforest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client talks to the Rainforest product-data API. All request types go
// through the single /request endpoint, discriminated by the type param.
type Client struct {
	host       string
	apiKey     string
	httpClient *http.Client
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("rainforest API error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, host, apiKey string) *Client {
	if host == "" {
		host = "https://api.rainforestapi.com"
	}
	host = strings.TrimRight(host, "/")
	return &Client{
		host:       host,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

func (c *Client) doRequest(ctx context.Context, reqType, asin, amazonDomain string) ([]byte, error) {
	if asin == "" {
		return nil, fmt.Errorf("asin is required")
	}
	if amazonDomain == "" {
		amazonDomain = "amazon.com"
	}
	query := url.Values{}
	query.Set("api_key", c.apiKey)
	query.Set("type", reqType)
	query.Set("asin", asin)
	query.Set("amazon_domain", amazonDomain)

	fullURL := c.host + "/request?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (c *Client) GetProduct(ctx context.Context, asin, amazonDomain string) (*ProductResponse, error) {
	body, err := c.doRequest(ctx, "product", asin, amazonDomain)
	if err != nil {
		return nil, err
	}
	var out ProductResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode product response: %w", err)
	}
	return &out, nil
}

func (c *Client) GetOffers(ctx context.Context, asin, amazonDomain string) (*OffersResponse, error) {
	body, err := c.doRequest(ctx, "offers", asin, amazonDomain)
	if err != nil {
		return nil, err
	}
	var out OffersResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode offers response: %w", err)
	}
	return &out, nil
}

// GetReviews returns the raw body; the dashboard renders review payloads
// without remodeling them.
func (c *Client) GetReviews(ctx context.Context, asin, amazonDomain string) (json.RawMessage, error) {
	body, err := c.doRequest(ctx, "reviews", asin, amazonDomain)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}
