// Package dashapi is the HTTP client for the dashboard API: route geometry,
// stop pricing, and customer-card partials.
package dashapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"routedash/internal/domain"
)

// StatusError reports a non-2xx response, carrying the status code and the
// server's reason text.
type StatusError struct {
	Code   int
	Reason string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Reason)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// RouteGeoJSON fetches the visualization collection for one route.
func (c *Client) RouteGeoJSON(ctx context.Context, routeID string) (domain.FeatureCollection, error) {
	params := url.Values{}
	params.Set("route_id", routeID)

	var fc domain.FeatureCollection
	if err := c.getJSON(ctx, "/dashboard/api/route-geojson", params, &fc); err != nil {
		return domain.FeatureCollection{}, err
	}
	return fc, nil
}

// StopPricing fetches the price breakdown for a (route, stop) pair.
func (c *Client) StopPricing(ctx context.Context, routeID, locationID string, targetMargin float64) (domain.PricingQuote, error) {
	params := url.Values{}
	params.Set("route_id", routeID)
	params.Set("location_id", locationID)
	params.Set("target_margin", strconv.FormatFloat(targetMargin, 'f', -1, 64))

	var quote domain.PricingQuote
	if err := c.getJSON(ctx, "/dashboard/api/stop-pricing", params, &quote); err != nil {
		return domain.PricingQuote{}, err
	}
	return quote, nil
}

// CustomerCard fetches the opaque markup fragment for a location.
func (c *Client) CustomerCard(ctx context.Context, locationID string) (string, error) {
	params := url.Values{}
	params.Set("location_id", locationID)

	resp, err := c.get(ctx, "/dashboard/partials/customer-card", params)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading partial: %w", err)
	}
	return string(body), nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest any) error {
	resp, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, Reason: readReason(resp)}
	}
	return resp, nil
}

// readReason extracts the server's error message, falling back to the
// standard status text.
func readReason(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			return payload.Error
		}
	}
	return http.StatusText(resp.StatusCode)
}
