// Package crawler is the page-fetch collaborator: it retrieves a page's
// HTML, decodes it to UTF-8 and enforces politeness toward remote servers.
// The analysis engine itself performs no network I/O.
package crawler

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

type HTTPClient struct {
	client    *http.Client
	limiter   *rate.Limiter
	sizeCap   int64
	userAgent string
}

// NewHTTPClient builds a fetcher with the given timeouts, response size cap
// and minimum delay between requests. A zero delay disables throttling.
func NewHTTPClient(timeout, dialTimeout time.Duration, sizeCap int64, requestDelay time.Duration) *HTTPClient {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	limit := rate.Inf
	if requestDelay > 0 {
		limit = rate.Every(requestDelay)
	}
	return &HTTPClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		limiter:   rate.NewLimiter(limit, 1),
		sizeCap:   sizeCap,
		userAgent: "gapscan/1.0 (+https://example.com)",
	}
}

// Fetch retrieves one HTML page and returns its body decoded to UTF-8.
// It waits on the politeness limiter before issuing the request.
func (h *HTTPClient) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return "", err
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return "", fmt.Errorf("http status %d", resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", err
		}
		defer gz.Close()
		body = gz
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType != "" && !strings.Contains(mediaType, "text/html") && !strings.Contains(mediaType, "application/xhtml+xml") {
		// allow empty media type (some servers omit it), reject anything
		// explicitly non-html
		return "", errors.New("non-html content")
	}

	data, err := io.ReadAll(io.LimitReader(body, h.sizeCap))
	if err != nil {
		return "", err
	}
	return decodeToUTF8(data, contentType)
}

// decodeToUTF8 converts a raw response body to UTF-8 using header and
// sniffed charset information. Legacy-encoded Persian pages depend on this.
func decodeToUTF8(data []byte, contentType string) (string, error) {
	enc, _, _ := charset.DetermineEncoding(data, contentType)
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if utf8.Valid(data) {
			return string(data), nil
		}
		return "", err
	}
	return string(bytes.ToValidUTF8(decoded, nil)), nil
}
