package collection

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultUserAgent   = "binder/0.1"
	httpRequestTimeout = 10 * time.Second
	maxDocumentBytes   = 32 << 20
)

// HTTPSource fetches a JSON collection document over HTTP.
type HTTPSource struct {
	url       *url.URL
	http      *http.Client
	userAgent string
}

// NewHTTPSource builds a source for rawURL.
func NewHTTPSource(rawURL string) (*HTTPSource, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse collection url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("collection url %q: %w", rawURL, ErrUnsupportedSource)
	}
	return &HTTPSource{
		url: u,
		http: &http.Client{
			Timeout: httpRequestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

func (s *HTTPSource) Describe() string {
	return s.url.String()
}

// Load performs a single GET and decodes the body.
func (s *HTTPSource) Load(ctx context.Context) ([]Card, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("collection endpoint returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	cards, err := decodeJSON(body)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return cards, nil
}
