package transcript

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// maxBodyBytes caps a downloaded transcript document
const maxBodyBytes = 20 << 20

// Client downloads transcript documents from the recording provider
type Client struct {
	httpClient *http.Client
}

// NewClient creates a transcript download client. When apiKey is set every
// request carries "Authorization: Token <apiKey>", the provider's scheme.
func NewClient(apiKey string, timeout time.Duration) *Client {
	base := &http.Client{Timeout: timeout}
	if apiKey == "" {
		return &Client{httpClient: base}
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: apiKey,
		TokenType:   "Token",
	})
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	authed := oauth2.NewClient(ctx, src)
	authed.Timeout = timeout

	return &Client{httpClient: authed}
}

// Fetch performs a GET on url and returns the body of a 2xx response
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build transcript request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch transcript: status=%d, body=%s", resp.StatusCode, truncate(body, 256))
	}

	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
