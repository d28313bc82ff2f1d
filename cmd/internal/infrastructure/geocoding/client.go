package geocoding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const DefaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

var (
	ErrNotFound = errors.New("address not found")
	ErrDisabled = errors.New("geocoding disabled, no API key configured")
)

type Location struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
}

// Client resolves street addresses to coordinates through Google Geocoding.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL points the client somewhere else, e.g. a test server.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Geocode looks up address. Cancelling ctx aborts the lookup.
func (c *Client) Geocode(ctx context.Context, address string) (*Location, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	query := url.Values{
		"address":  {address},
		"key":      {c.apiKey},
		"region":   {"br"},
		"language": {"pt-BR"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding failed with status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(body)
	switch status := parsed.Get("status").String(); status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("geocoding failed with status: %s %s", status, parsed.Get("error_message").String())
	}

	first := parsed.Get("results.0")
	if !first.Exists() {
		return nil, ErrNotFound
	}

	return &Location{
		Latitude:         first.Get("geometry.location.lat").Float(),
		Longitude:        first.Get("geometry.location.lng").Float(),
		FormattedAddress: first.Get("formatted_address").String(),
	}, nil
}
