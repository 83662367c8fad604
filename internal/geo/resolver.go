// Package geo implements the geo-consistency gate: the caller IP is resolved to a country and
// checked against the countries the claimed phone dial code belongs to. Every failure denies.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultLookupURL is the ip-api.com JSON endpoint; the IP is appended to it.
const DefaultLookupURL = "http://ip-api.com/json/"

// ErrLookup is wrapped by every resolution failure: transport errors, timeouts, non-success status.
var ErrLookup = errors.New("geo: lookup failed")

// Resolver maps an IP address to an ISO 3166-1 alpha-2 country code.
type Resolver interface {
	Resolve(ctx context.Context, ip string) (string, error)
}

// IPAPIClient resolves IPs with ip-api.com. Each call is bounded by the client timeout.
type IPAPIClient struct {
	baseURL string
	http    *http.Client
}

// NewIPAPIClient returns a client for baseURL (DefaultLookupURL when empty) with the given timeout.
func NewIPAPIClient(baseURL string, timeout time.Duration) *IPAPIClient {
	if baseURL == "" {
		baseURL = DefaultLookupURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &IPAPIClient{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

type ipAPIResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	CountryCode string `json:"countryCode"`
}

// Resolve looks up ip. Only status "success" with a country code is a result.
func (c *IPAPIClient) Resolve(ctx context.Context, ip string) (string, error) {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return "", fmt.Errorf("%w: empty ip", ErrLookup)
	}
	u := c.baseURL + url.PathEscape(ip) + "?fields=status,message,countryCode"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLookup, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLookup, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: http status %d", ErrLookup, resp.StatusCode)
	}
	var body ipAPIResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrLookup, err)
	}
	if body.Status != "success" {
		return "", fmt.Errorf("%w: status %q: %s", ErrLookup, body.Status, body.Message)
	}
	cc := strings.ToUpper(strings.TrimSpace(body.CountryCode))
	if cc == "" {
		return "", fmt.Errorf("%w: empty country code", ErrLookup)
	}
	return cc, nil
}
