package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"podcatalog/models"
)

const (
	// DefaultEndpoint is the public podcast API the catalog is fetched from.
	DefaultEndpoint = "https://podcast-api.netlify.app/"

	maxPayloadSize = 32 << 20 // 32 MB
)

var (
	// ErrTransport wraps network level failures talking to the catalog API.
	ErrTransport = errors.New("catalog transport failure")
	// ErrMalformedPayload is returned when the response body is not a podcast list.
	ErrMalformedPayload = errors.New("malformed catalog payload")
)

// StatusError reports a non-success HTTP status from the catalog API.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog api returned HTTP %d: %s", e.Code, e.Status)
}

// Client fetches the raw podcast list from the remote catalog API.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient creates a catalog API client. A zero timeout falls back to 30 seconds.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
	}
}

// Endpoint returns the URL the client fetches from.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch issues a single GET to the catalog API and decodes the podcast array.
func (c *Client) Fetch(ctx context.Context) ([]models.Podcast, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	var podcasts []models.Podcast
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxPayloadSize))
	if err := dec.Decode(&podcasts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if podcasts == nil {
		podcasts = []models.Podcast{}
	}
	return podcasts, nil
}
