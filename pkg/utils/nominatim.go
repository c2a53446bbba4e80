package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"wayfare/internal/models/response_models"
)

const defaultNominatimURL = "https://nominatim.openstreetmap.org"

// GeoLookupInterface is a single bounded lookup: one query, one answer,
// no retries. Tiering and caching live above it in the geocode service.
type GeoLookupInterface interface {
	Lookup(ctx context.Context, query string) (*response_models.Coordinate, error)
}

// NominatimClient resolves free-text place descriptions against the
// Nominatim search API.
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewNominatimClient(baseURL string) *NominatimClient {
	if baseURL == "" {
		baseURL = defaultNominatimURL
	}
	return &NominatimClient{
		baseURL: baseURL,
		// Nominatim's usage policy requires an identifying User-Agent.
		userAgent: "wayfare-travel-planner/1.0",
		httpClient: &http.Client{
			// Short timeout so a slow upstream degrades to an unpinned
			// activity instead of hanging the request.
			Timeout: 5 * time.Second,
		},
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (c *NominatimClient) Lookup(ctx context.Context, query string) (*response_models.Coordinate, error) {
	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read nominatim response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim error (%d): %s", resp.StatusCode, string(body))
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to parse nominatim response: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrGeocodeNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim returned bad latitude %q", results[0].Lat)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim returned bad longitude %q", results[0].Lon)
	}

	return &response_models.Coordinate{Lat: lat, Lng: lng}, nil
}
