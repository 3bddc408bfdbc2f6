package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vk/magnetsetup/internal/ctxlog"
)

// DefaultTimeout bounds each API call.
const DefaultTimeout = 30 * time.Second

// HTTP is a Provider backed by the magnet database API.
type HTTP struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient returns an http.Client suited to a handful of API calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// NewHTTP returns a provider querying baseURL. A nil client uses a default
// one with DefaultTimeout.
func NewHTTP(baseURL string, client *http.Client) *HTTP {
	if client == nil {
		client = NewHTTPClient(DefaultTimeout)
	}
	return &HTTP{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Lookup fetches GET {url}/{kind}/mdata/{name}.
func (h *HTTP) Lookup(ctx context.Context, kind, name string) (map[string]any, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	endpoint := h.baseURL + "/" + kind + "/mdata/" + url.PathEscape(name)

	var rec map[string]any
	if err := h.getJSON(ctx, endpoint, &rec); err != nil {
		return nil, lookupFailed(ctx, h, kind, name, err)
	}
	return rec, nil
}

// List fetches GET {url}/{kind}s/ and returns the record names. Helix,
// Bitter and Supra records are listed as magnet parts.
func (h *HTTP) List(ctx context.Context, kind string) ([]string, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	switch kind {
	case KindHelix, KindBitter, KindSupra:
		kind = "mpart"
	}
	endpoint := h.baseURL + "/" + kind + "s/"

	var items []struct {
		Name string `json:"name"`
	}
	if err := h.getJSON(ctx, endpoint, &items); err != nil {
		return nil, err
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return names, nil
}

func (h *HTTP) getJSON(ctx context.Context, endpoint string, out any) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Making HTTP request.", "method", http.MethodGet, "url", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	logger.Debug("Received HTTP response.", "status", resp.Status)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}
