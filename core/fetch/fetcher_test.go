package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/html2md/core"
)

func requireKind(t *testing.T, err error, want core.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	kind, ok := core.KindOf(err)
	require.True(t, ok, "expected a pipeline error, got %T: %v", err, err)
	assert.Equal(t, want, kind)
}

func TestHTTPFetcher_InvalidURLNeverHitsNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	f := New(5*time.Second, 1024, nil)
	for _, raw := range []string{"", "example.com", "/relative/path", "http://", "://bad"} {
		t.Run(raw, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), raw)
			requireKind(t, err, core.KindFetch)
		})
	}
	assert.Zero(t, hits.Load())
}

func TestHTTPFetcher_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><p>héllo</p></body></html>"))
	}))
	defer srv.Close()

	res, err := New(5*time.Second, 1024, nil).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.HTML, "héllo")
}

func TestHTTPFetcher_DecodesLegacyCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		// 0xE9 is é in Latin-1.
		_, _ = w.Write([]byte("<p>caf\xe9</p>"))
	}))
	defer srv.Close()

	res, err := New(5*time.Second, 1024, nil).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, res.HTML, "café")
}

func TestHTTPFetcher_ContentLengthTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "4096")
		_, _ = w.Write([]byte(strings.Repeat("a", 4096)))
	}))
	defer srv.Close()

	_, err := New(5*time.Second, 1024, nil).Fetch(context.Background(), srv.URL)
	requireKind(t, err, core.KindFetch)
	assert.Contains(t, err.Error(), "content too large: 4096 bytes")
}

func TestHTTPFetcher_StreamedBodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		// Flushing before the body is complete forces chunked encoding,
		// so no Content-Length header is sent.
		for i := 0; i < 4; i++ {
			_, _ = w.Write([]byte(strings.Repeat("b", 1000)))
			flusher.Flush()
		}
	}))
	defer srv.Close()

	_, err := New(5*time.Second, 2500, nil).Fetch(context.Background(), srv.URL)
	requireKind(t, err, core.KindFetch)
	assert.Contains(t, err.Error(), "exceeds maximum of 2500 bytes")
}

func TestHTTPFetcher_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(5*time.Second, 1024, nil).Fetch(context.Background(), srv.URL)
	requireKind(t, err, core.KindFetch)
	assert.Contains(t, err.Error(), "HTTP error 404")
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(50*time.Millisecond, 1024, nil).Fetch(context.Background(), srv.URL)
	requireKind(t, err, core.KindFetch)
	assert.Contains(t, err.Error(), "timeout while fetching URL")
}

func TestHTTPFetcher_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(2*time.Second, 1024, nil).Fetch(context.Background(), url)
	requireKind(t, err, core.KindFetch)
}

type countingTransport struct {
	next  http.RoundTripper
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return c.next.RoundTrip(r)
}

func TestHTTPFetcher_SharedClientPerFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			select {
			case <-time.After(200 * time.Millisecond):
			case <-r.Context().Done():
				return
			}
		}
		w.Write([]byte("<p>ok</p>"))
	}))
	defer srv.Close()

	transport := &countingTransport{next: http.DefaultTransport.(*http.Transport).Clone()}
	client := &http.Client{Transport: transport}
	patient := NewWithClient(client, 5*time.Second, 1024, nil)
	hasty := NewWithClient(client, 50*time.Millisecond, 1024, nil)

	_, err := hasty.Fetch(context.Background(), srv.URL+"/slow")
	requireKind(t, err, core.KindFetch)
	assert.Contains(t, err.Error(), "timeout while fetching URL")

	res, err := patient.Fetch(context.Background(), srv.URL+"/slow")
	require.NoError(t, err)
	assert.Equal(t, "<p>ok</p>", res.HTML)

	assert.Equal(t, int32(2), transport.calls.Load(), "both fetchers send through the shared client")
	assert.Zero(t, client.Timeout, "the timeout lives on the request, not the client")
}

func TestNewClient_HasNoTimeout(t *testing.T) {
	c := NewClient()
	assert.Zero(t, c.Timeout)
	assert.NotSame(t, http.DefaultTransport, c.Transport)
}
