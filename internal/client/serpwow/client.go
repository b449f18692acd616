package serpwow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client talks to the SerpWow SERP API. Responses are passed through raw:
// the dashboard consumes the provider's JSON shape directly.
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
	return fmt.Sprintf("serpwow API error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, host, apiKey string) *Client {
	if host == "" {
		host = "https://api.serpwow.com"
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

// SearchParams mirror the query surface the dashboard exposes. Zero values
// are omitted; Engine, Location, Device and Num get provider defaults.
type SearchParams struct {
	Query        string
	Engine       string
	Location     string
	Device       string
	Num          int
	SearchType   string
	GoogleDomain string
	HL           string
	GL           string
	TimePeriod   string
	Safe         string
	Page         int
}

func (c *Client) Search(ctx context.Context, params SearchParams) (json.RawMessage, error) {
	if strings.TrimSpace(params.Query) == "" {
		return nil, fmt.Errorf("query is required")
	}
	query := url.Values{}
	query.Set("api_key", c.apiKey)
	query.Set("q", params.Query)
	query.Set("engine", defaultStr(params.Engine, "google"))
	query.Set("location", defaultStr(params.Location, "United States"))
	query.Set("device", defaultStr(params.Device, "desktop"))
	if params.Num > 0 {
		query.Set("num", fmt.Sprintf("%d", params.Num))
	} else {
		query.Set("num", "10")
	}
	if params.SearchType != "" && params.SearchType != "search" {
		query.Set("search_type", params.SearchType)
	}
	if params.GoogleDomain != "" {
		query.Set("google_domain", params.GoogleDomain)
	}
	if params.HL != "" {
		query.Set("hl", params.HL)
	}
	if params.GL != "" {
		query.Set("gl", params.GL)
	}
	if params.TimePeriod != "" {
		query.Set("time_period", params.TimePeriod)
	}
	if params.Safe != "" {
		query.Set("safe", params.Safe)
	}
	if params.Page > 1 {
		query.Set("page", fmt.Sprintf("%d", params.Page))
	}

	fullURL := c.host + "/search?" + query.Encode()
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
	return json.RawMessage(body), nil
}

func defaultStr(val, def string) string {
	if strings.TrimSpace(val) == "" {
		return def
	}
	return val
}
