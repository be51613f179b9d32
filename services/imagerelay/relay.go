// Package imagerelay fetches remote images on behalf of the browser, sending
// the headers image CDNs expect from a regular page load.
package imagerelay

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"podcatalog/utils"
)

const (
	DefaultTimeout      = 15 * time.Second
	DefaultMaxRedirects = 5
	DefaultMaxBytes     = 10 << 20 // 10 MB

	// NoRedirects as Options.MaxRedirects refuses the first redirect.
	NoRedirects = -1

	sniffLen = 3072
)

// browserHeaders are sent on every outbound request. Nothing from the inbound
// request is forwarded.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Referer":         "https://www.art19.com/",
	"Accept":          "image/webp,image/apng,image/*,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Cache-Control":   "no-cache",
}

var (
	// ErrInvalidURL means the target is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid image url")
	// ErrTooLarge means the upstream announced a body above the size limit.
	ErrTooLarge = errors.New("image exceeds size limit")
	// ErrNotImage means neither the declared nor the sniffed type is an image.
	ErrNotImage = errors.New("upstream content is not an image")
	// ErrTooManyRedirects is returned when the redirect limit is hit.
	ErrTooManyRedirects = errors.New("too many redirects")
)

// UpstreamStatusError reports a non-success status from the image host.
type UpstreamStatusError struct {
	Code int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, http.StatusText(e.Code))
}

// Options bounds the relay's outbound behaviour. Zero values take the
// defaults; use NoRedirects to disable redirects.
type Options struct {
	Timeout      time.Duration
	MaxRedirects int
	MaxBytes     int64
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxRedirects == 0 {
		o.MaxRedirects = DefaultMaxRedirects
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	return o
}

// Image is an upstream image ready to be streamed. Callers must Close it.
type Image struct {
	ContentType   string
	ContentLength int64
	Body          io.Reader

	closer   io.Closer
	maxBytes int64
	target   string
}

// Close releases the upstream connection.
func (img *Image) Close() error {
	if img.closer == nil {
		return nil
	}
	return img.closer.Close()
}

// WriteTo streams at most the size limit to w. A body longer than the limit
// is cut there and reported as ErrTooLarge.
func (img *Image) WriteTo(w io.Writer) (int64, error) {
	n, err := io.Copy(w, io.LimitReader(img.Body, img.maxBytes))
	if err != nil || n < img.maxBytes {
		return n, err
	}
	var extra [1]byte
	if m, _ := io.ReadFull(img.Body, extra[:]); m > 0 {
		log.Printf("[image-relay] truncated %s at %d bytes", img.target, img.maxBytes)
		return n, ErrTooLarge
	}
	return n, nil
}

// Relay performs the outbound fetches. It holds no per-request state and is
// safe for concurrent use.
type Relay struct {
	client *http.Client
	opts   Options
}

// New creates a relay. A nil client gets a dedicated one built from opts.
func New(client *http.Client, opts Options) *Relay {
	opts = opts.withDefaults()
	if client == nil {
		client = &http.Client{}
	}
	bounded := *client
	bounded.Timeout = opts.Timeout
	maxRedirects := max(opts.MaxRedirects, 0)
	bounded.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) > maxRedirects {
			return ErrTooManyRedirects
		}
		return nil
	}
	return &Relay{client: &bounded, opts: opts}
}

// Options returns the effective limits.
func (r *Relay) Options() Options {
	return r.opts
}

// Fetch requests target and returns the image once the status and content
// type have been checked. The body has not been read beyond the sniff window.
func (r *Relay) Fetch(ctx context.Context, target string) (*Image, error) {
	normalized, err := utils.NormalizeImageURL(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, normalized, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	for key, value := range browserHeaders {
		req.Header.Set(key, value)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", normalized, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &UpstreamStatusError{Code: resp.StatusCode}
	}

	if resp.ContentLength > r.opts.MaxBytes {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, resp.ContentLength)
	}

	buffered := bufio.NewReaderSize(resp.Body, sniffLen)
	head, peekErr := buffered.Peek(sniffLen)
	if peekErr != nil && !errors.Is(peekErr, io.EOF) && !errors.Is(peekErr, bufio.ErrBufferFull) {
		resp.Body.Close()
		return nil, fmt.Errorf("read %s: %w", normalized, peekErr)
	}

	declared := resp.Header.Get("Content-Type")
	sniffed := mimetype.Detect(head)
	if !isImageType(declared) && !strings.HasPrefix(sniffed.String(), "image/") {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: declared %q, sniffed %q", ErrNotImage, declared, sniffed.String())
	}

	contentType := declared
	if contentType == "" {
		contentType = sniffed.String()
	}

	return &Image{
		ContentType:   contentType,
		ContentLength: resp.ContentLength,
		Body:          buffered,
		closer:        resp.Body,
		maxBytes:      r.opts.MaxBytes,
		target:        normalized,
	}, nil
}

func isImageType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}
