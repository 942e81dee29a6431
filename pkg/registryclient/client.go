// Package registryclient is a Go client for the registry REST API. Besides the
// typed calls it carries the search-form rules of the web front end: the
// minimum-length and stale-response rules of autocomplete and client-side
// re-sorting of a fetched page.
package registryclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Client is a minimal HTTP client for the registry API. It keeps the bearer
// token obtained by Login and sends it on every later call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	debug      bool

	mu    sync.RWMutex
	token string
}

// NewClient constructs a new client for the API at baseURL with sane defaults.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		debug:      os.Getenv("ENV") == "development",
	}
}

// SetToken replaces the bearer token, e.g. one restored from a previous session.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, username, password, lang string) (*LoginResult, error) {
	req := loginRequest{Username: username, Password: password, Lang: lang}
	var res LoginResult
	if err := c.doRequest(ctx, http.MethodPost, "/login", nil, req, &res); err != nil {
		return nil, err
	}
	c.SetToken(res.Token)
	return &res, nil
}

// SearchDrugs runs the drug search.
func (c *Client) SearchDrugs(ctx context.Context, q DrugQuery) (*DrugPage, error) {
	var page DrugPage
	if err := c.doRequest(ctx, http.MethodGet, "/drugs/drugs", q.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchCompanies runs the company search.
func (c *Client) SearchCompanies(ctx context.Context, q CompanyQuery) (*CompanyPage, error) {
	var page CompanyPage
	if err := c.doRequest(ctx, http.MethodGet, "/company", q.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Lookup returns the selectable values of a reference column in lang.
func (c *Client) Lookup(ctx context.Context, column, lang string) ([]PltabEntry, error) {
	query := url.Values{"column": {column}, "lang": {lang}}
	var page struct {
		Results []PltabEntry `json:"results"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/pltab", query, nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// PriceList resolves the price list of one package.
func (c *Client) PriceList(ctx context.Context, drdpID string) (*PriceList, error) {
	var pl PriceList
	if err := c.doRequest(ctx, http.MethodGet, "/pcpricelist/"+url.PathEscape(drdpID), nil, nil, &pl); err != nil {
		return nil, err
	}
	return &pl, nil
}

// DrugAutocomplete returns drug names containing q. Use an Autocompleter to
// apply the input rules of a search box.
func (c *Client) DrugAutocomplete(ctx context.Context, q string) ([]string, error) {
	var page struct {
		Results []struct {
			DrName string `json:"drname"`
		} `json:"results"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/drugs/dr/autocomplete", url.Values{"q": {q}}, nil, &page); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(page.Results))
	for _, r := range page.Results {
		names = append(names, r.DrName)
	}
	return names, nil
}

// doRequest performs one JSON call. Non-2xx responses are returned as *APIError.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, query url.Values, body any, result any) error {
	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("method", method).
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			Int("bytes", len(respBody)).
			Msg("[REGISTRY] Incoming response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp.StatusCode, respBody)
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var payload struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
		apiErr.Details = payload.Details
		return apiErr
	}
	apiErr.Message = http.StatusText(status)
	return apiErr
}

func setInt(v url.Values, key string, n int) {
	if n > 0 {
		v.Set(key, strconv.Itoa(n))
	}
}

func setString(v url.Values, key, s string) {
	if s != "" {
		v.Set(key, s)
	}
}
