// Package fetch implements the Fetcher interface.
// HTTPFetcher performs a streaming GET with a hard size cap; BrowserFetcher
// drives a real browser through Playwright and reads the rendered DOM.
package fetch

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/gaurav-prasanna/html2md/core"
)

const (
	defaultUserAgent = "Mozilla/5.0 (compatible; HTML2MD-MCP/0.1; +https://github.com/html2md-mcp)"
	chunkSize        = 8192
)

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
	log      *zap.Logger
}

// NewClient returns an http.Client with its own pooled transport, meant to
// be shared by every HTTPFetcher of a process. It sets no timeout; each
// fetch bounds itself through its context.
func NewClient() *http.Client {
	return &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
}

// New creates an HTTPFetcher on a client of its own. See NewWithClient.
func New(timeout time.Duration, maxBytes int64, log *zap.Logger) *HTTPFetcher {
	return NewWithClient(NewClient(), timeout, maxBytes, log)
}

// NewWithClient creates an HTTPFetcher that sends through client, gives up
// after timeout and refuses bodies larger than maxBytes.
func NewWithClient(client *http.Client, timeout time.Duration, maxBytes int64, log *zap.Logger) *HTTPFetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPFetcher{
		client:   client,
		timeout:  timeout,
		maxBytes: maxBytes,
		log:      log,
	}
}

// Fetch retrieves the HTML content of the given URL. The URL is validated
// before any network access.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	if err := core.ValidateURL(url); err != nil {
		return nil, err
	}

	f.log.Info("fetching URL", zap.String("url", url), zap.Int64("max_bytes", f.maxBytes))

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, core.FetchError(err, "creating request for %s", url)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(err, url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, core.FetchError(nil, "HTTP error %d while fetching URL: %s", resp.StatusCode, url)
	}

	if resp.ContentLength > f.maxBytes {
		return nil, core.FetchError(nil, "content too large: %d bytes exceeds maximum of %d bytes", resp.ContentLength, f.maxBytes)
	}

	body, err := f.readCapped(resp)
	if err != nil {
		var pe *core.Error
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, classify(err, url)
	}

	f.log.Info("fetched URL", zap.String("url", url), zap.Int("bytes", len(body)))

	return &core.FetchResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		HTML:       body,
	}, nil
}

// readCapped decodes the body to UTF-8 chunk by chunk and aborts as soon as
// the decoded size passes maxBytes.
func (f *HTTPFetcher) readCapped(resp *http.Response) (string, error) {
	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	buf := make([]byte, chunkSize)
	var total int64
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			total += int64(n)
			if total > f.maxBytes {
				return "", core.FetchError(nil, "content too large: exceeds maximum of %d bytes", f.maxBytes)
			}
			sb.Write(buf[:n])
		}
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}

// classify maps transport errors onto fetch errors with a readable message.
func classify(err error, url string) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return core.FetchError(err, "timeout while fetching URL: %s", url)
	case errors.Is(err, context.Canceled):
		return core.FetchError(err, "request cancelled while fetching URL: %s", url)
	case errors.As(err, &netErr):
		return core.FetchError(err, "connection error while fetching URL: %s", url)
	default:
		return core.FetchError(err, "unexpected error while fetching URL: %s", url)
	}
}
