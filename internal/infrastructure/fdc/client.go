// Package fdc talks to the USDA FoodData Central API. Records come back
// in their decoded-JSON form; normalization happens in the usecase layer
// so API data and locally stored data go through the same path.
package fdc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nutriscan/backend/internal/domain"
)

// datasetFilter restricts searches to the FDC data types the resolution
// engine accepts.
const datasetFilter = "Foundation,SR Legacy,Survey (FNDDS)"

// Client handles communication with the FDC API. It performs no
// automatic retries; failed calls surface to the resolver, which decides
// per slot whether to drop or fail closed.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	log         *zap.Logger
}

// NewClient creates a new FDC API client.
func NewClient(apiKey, baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	// FDC allows 1000 requests per hour: 1000/3600 ≈ 0.278 requests/sec.
	limiter := rate.NewLimiter(rate.Limit(0.278), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
		log:         log,
	}
}

// doRequest executes an HTTP GET after waiting for the rate limiter.
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "NutriScan/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFDCAPIFailure, err)
	}
	return resp, nil
}

// Search queries the FDC search endpoint. An empty result list is not an
// error; the resolver decides what absence means for the slot it fills.
func (c *Client) Search(ctx context.Context, query string, pageSize int) ([]domain.RawFood, error) {
	endpoint := fmt.Sprintf("%s/v1/foods/search", c.baseURL)
	params := url.Values{}
	params.Add("query", query)
	params.Add("api_key", c.apiKey)
	params.Add("dataType", datasetFilter)
	params.Add("pageSize", fmt.Sprintf("%d", pageSize))

	resp, err := c.doRequest(ctx, fmt.Sprintf("%s?%s", endpoint, params.Encode()))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.Warn("FDC search error",
			zap.String("query", query),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, fmt.Errorf("%w: status %d", domain.ErrFDCAPIFailure, resp.StatusCode)
	}

	var searchResp struct {
		Foods     []domain.RawFood `json:"foods"`
		TotalHits int              `json:"totalHits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	c.log.Info("FDC search",
		zap.String("query", query),
		zap.Int("results", len(searchResp.Foods)),
		zap.Int("totalHits", searchResp.TotalHits))
	return searchResp.Foods, nil
}

// GetFood retrieves the full record for one FDC id.
func (c *Client) GetFood(ctx context.Context, fdcID string) (domain.RawFood, error) {
	endpoint := fmt.Sprintf("%s/v1/food/%s", c.baseURL, url.PathEscape(fdcID))
	params := url.Values{}
	params.Add("api_key", c.apiKey)
	params.Add("format", "full")

	resp, err := c.doRequest(ctx, fmt.Sprintf("%s?%s", endpoint, params.Encode()))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrFoodNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.Warn("FDC detail error",
			zap.String("fdcId", fdcID),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, fmt.Errorf("%w: status %d", domain.ErrFDCAPIFailure, resp.StatusCode)
	}

	var food domain.RawFood
	if err := json.NewDecoder(resp.Body).Decode(&food); err != nil {
		return nil, fmt.Errorf("failed to decode food response: %w", err)
	}
	return food, nil
}
