package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/oukeidos/vaani/internal/version"
)

const (
	// DefaultTimeout bounds a single upstream call (search, completion or translation).
	// The pipeline itself sets no deadline; this is the collaborator default.
	DefaultTimeout = 2 * time.Minute
	// MaxResponseBytes caps HTTP response bodies to prevent memory spikes.
	MaxResponseBytes = 4 * 1024 * 1024
	// Transport tuning. One run issues at most three requests to three hosts.
	MaxIdleConns          = 16
	MaxIdleConnsPerHost   = 4
	IdleConnTimeout       = 90 * time.Second
	TLSHandshakeTimeout   = 15 * time.Second
	ExpectContinueTimeout = 2 * time.Second
)

var (
	defaultClient     *http.Client
	defaultClientOnce sync.Once
	overrideClient    *http.Client
)

// NewClient builds a client with its own pooled transport. Proxy settings come
// from the environment.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			MaxIdleConns:          MaxIdleConns,
			MaxIdleConnsPerHost:   MaxIdleConnsPerHost,
			IdleConnTimeout:       IdleConnTimeout,
			TLSHandshakeTimeout:   TLSHandshakeTimeout,
			ExpectContinueTimeout: ExpectContinueTimeout,
		},
	}
}

// GetDefaultClient returns the shared http.Client used by all collaborators.
func GetDefaultClient() *http.Client {
	if overrideClient != nil {
		return overrideClient
	}
	defaultClientOnce.Do(func() {
		defaultClient = NewClient(DefaultTimeout)
	})
	return defaultClient
}

// SetDefaultClientForTesting swaps the shared client and returns a restore func.
func SetDefaultClientForTesting(client *http.Client) (restore func()) {
	prev := overrideClient
	overrideClient = client
	return func() { overrideClient = prev }
}

// ErrTooLarge is returned when a response body exceeds MaxResponseBytes.
var ErrTooLarge = fmt.Errorf("response body too large (limit %d bytes)", MaxResponseBytes)

// DoAndRead sends req and returns the whole body, capped at MaxResponseBytes.
// The body is always closed. resp is returned whenever the server answered.
func DoAndRead(client *http.Client, req *http.Request) ([]byte, *http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := readCapped(resp)
	if err != nil {
		return nil, resp, err
	}
	return body, resp, nil
}

func readCapped(resp *http.Response) ([]byte, error) {
	if resp.ContentLength > MaxResponseBytes {
		return nil, ErrTooLarge
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > MaxResponseBytes {
		return nil, ErrTooLarge
	}
	return body, nil
}

// PostJSON marshals payload, POSTs it to url with the given headers and returns the
// raw body. Non-2xx statuses are not treated as errors here; callers classify them.
func PostJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, payload any) ([]byte, *http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if client == nil {
		client = GetDefaultClient()
	}
	return DoAndRead(client, req)
}
