package crawler

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchHTML(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(200)
		_, _ = w.Write([]byte("<html><title>لیزر موهای زائد</title></html>"))
	}))
	defer ts.Close()

	client := NewHTTPClient(5*time.Second, 2*time.Second, 1<<20, 0)
	html, err := client.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "لیزر موهای زائد")
}

func TestFetchRejectsNonHTML(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(200)
		_, _ = w.Write([]byte("{}"))
	}))
	defer ts.Close()

	client := NewHTTPClient(5*time.Second, 2*time.Second, 1<<20, 0)
	_, err := client.Fetch(context.Background(), ts.URL)
	assert.Error(t, err)
}

func TestFetchRejectsErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client := NewHTTPClient(5*time.Second, 2*time.Second, 1<<20, 0)
	_, err := client.Fetch(context.Background(), ts.URL)
	assert.Error(t, err)
}

func TestFetchInvalidURL(t *testing.T) {
	client := NewHTTPClient(5*time.Second, 2*time.Second, 1<<20, 0)
	for _, u := range []string{"", "notaurl", "://missing-scheme"} {
		_, err := client.Fetch(context.Background(), u)
		assert.Error(t, err, "url %q", u)
	}
}

func TestFetchGzip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		defer gz.Close()
		_, _ = gz.Write([]byte("<html><body>compressed page</body></html>"))
	}))
	defer ts.Close()

	client := NewHTTPClient(5*time.Second, 2*time.Second, 1<<20, 0)
	html, err := client.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "compressed page")
}

func TestFetchSizeCap(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>" + strings.Repeat("x", 4096) + "</html>"))
	}))
	defer ts.Close()

	client := NewHTTPClient(5*time.Second, 2*time.Second, 128, 0)
	html, err := client.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(html), 128)
}

func TestFetchRequestDelay(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer ts.Close()

	client := NewHTTPClient(5*time.Second, 2*time.Second, 1<<20, 50*time.Millisecond)
	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.Fetch(context.Background(), ts.URL)
		require.NoError(t, err)
	}
	// first request is free, the next two wait
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestDecodeToUTF8(t *testing.T) {
	// windows-1256 encoded Arabic letter beh (0xC8)
	legacy := []byte{0xC8}
	out, err := decodeToUTF8(legacy, "text/html; charset=windows-1256")
	require.NoError(t, err)
	assert.Equal(t, "ب", out)

	out, err = decodeToUTF8([]byte("plain utf-8 لیزر"), "text/html; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "plain utf-8 لیزر", out)
}
