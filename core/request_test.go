package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRequestIsValid(t *testing.T) {
	req := DefaultRequest("https://example.com")
	require.NoError(t, req.Validate())
	assert.Equal(t, Toggles{Images: true, Tables: true, Links: true}, req.Toggles)
	assert.Equal(t, 30*time.Second, req.Timeout)
	assert.Equal(t, int64(10*1024*1024), req.MaxSize)
	assert.Equal(t, MethodFetch, req.Method)
	assert.Equal(t, BrowserOptions{Engine: EngineChromium, Headless: true, WaitFor: WaitNetworkIdle}, req.Browser)
	assert.False(t, req.UseCache)
	assert.Equal(t, time.Hour, req.CacheTTL)
	assert.Equal(t, 25000, req.MaxTokens)
	assert.Empty(t, req.Section())
}

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		want   string
	}{
		{"missing url", func(r *Request) { r.URL = "" }, "'url' parameter is required"},
		{"both selectors", func(r *Request) { r.SectionID, r.SectionHeading = "a", "b" },
			"'section_id' and 'section_heading' are mutually exclusive. Provide only one."},
		{"timeout low", func(r *Request) { r.Timeout = 4 * time.Second }, "'timeout' must be between 5 and 120 seconds"},
		{"timeout high", func(r *Request) { r.Timeout = 121 * time.Second }, "'timeout' must be between 5 and 120 seconds"},
		{"max size", func(r *Request) { r.MaxSize = 1 }, "'max_size' must be between 1048576 and 52428800 bytes"},
		{"cache ttl", func(r *Request) { r.CacheTTL = time.Second }, "'cache_ttl' must be between 60 and 86400 seconds"},
		{"max tokens", func(r *Request) { r.MaxTokens = 100001 }, "'max_tokens' must be between 1000 and 100000"},
		{"method", func(r *Request) { r.Method = "wget" }, "'fetch_method' must be one of: fetch, playwright"},
		{"engine", func(r *Request) { r.Browser.Engine = "edge" }, "'browser_type' must be one of: chromium, firefox, webkit"},
		{"wait", func(r *Request) { r.Browser.WaitFor = "idle" }, "'wait_for' must be one of: load, domcontentloaded, networkidle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := DefaultRequest("https://example.com")
			tt.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUsage)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestRequest_BoundsAreInclusive(t *testing.T) {
	req := DefaultRequest("https://example.com")
	req.Timeout, req.MaxSize, req.CacheTTL, req.MaxTokens = MaxTimeout, MinMaxSize, MinCacheTTL, MaxMaxTokens
	assert.NoError(t, req.Validate())
}

func TestRequest_Section(t *testing.T) {
	req := DefaultRequest("https://example.com")
	req.SectionHeading = "Usage"
	assert.Equal(t, "Usage", req.Section())
	req.SectionHeading, req.SectionID = "", "usage"
	assert.Equal(t, "usage", req.Section())
}

func TestValidateURL(t *testing.T) {
	for _, bad := range []string{"example.com", "/path/only", "http://", "://x", "mailto:someone"} {
		err := ValidateURL(bad)
		require.Error(t, err, bad)
		kind, ok := KindOf(err)
		assert.True(t, ok)
		assert.Equal(t, KindFetch, kind)
	}
	assert.NoError(t, ValidateURL("https://example.com/a?b=c"))
}

func TestErrors(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := FetchError(cause, "connection error while fetching URL: %s", "https://x")
	assert.Equal(t, "connection error while fetching URL: https://x: dial tcp: refused", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "no content", ParseError(nil, "no content").Error())
	assert.Equal(t, "dial tcp: refused", ConversionError(cause, "").Error())

	_, ok := KindOf(cause)
	assert.False(t, ok)

	assert.Equal(t, "fetch", KindFetch.String())
	assert.Equal(t, "parse", KindParse.String())
	assert.Equal(t, "conversion", KindConversion.String())
}

func TestResult_Compression(t *testing.T) {
	r := Result{RawSize: 4000, MarkdownSize: 1000}
	assert.InDelta(t, 4.0, r.CompressionRatio(), 1e-9)
	assert.InDelta(t, 75.0, r.CompressionPercent(), 1e-9)

	assert.Zero(t, Result{RawSize: 10}.CompressionRatio())
	assert.Zero(t, Result{MarkdownSize: 10}.CompressionPercent())
}
