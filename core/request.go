package core

import (
	"net/url"
	"strings"
	"time"
)

// FetchMethod selects how raw HTML is retrieved.
type FetchMethod string

const (
	MethodFetch      FetchMethod = "fetch"
	MethodPlaywright FetchMethod = "playwright"
)

// Browser engines supported by the rendered fetcher.
const (
	EngineChromium = "chromium"
	EngineFirefox  = "firefox"
	EngineWebKit   = "webkit"
)

// Page readiness signals for rendered fetches.
const (
	WaitLoad             = "load"
	WaitDOMContentLoaded = "domcontentloaded"
	WaitNetworkIdle      = "networkidle"
)

// Defaults and bounds for per-call options.
const (
	DefaultTimeout   = 30 * time.Second
	MinTimeout       = 5 * time.Second
	MaxTimeout       = 120 * time.Second
	DefaultMaxSize   = 10 * 1024 * 1024
	MinMaxSize       = 1 * 1024 * 1024
	MaxMaxSize       = 50 * 1024 * 1024
	DefaultCacheTTL  = time.Hour
	MinCacheTTL      = time.Minute
	MaxCacheTTL      = 24 * time.Hour
	DefaultMaxTokens = 25000
	MinMaxTokens     = 1000
	MaxMaxTokens     = 100000
)

// BrowserOptions configures a rendered fetch.
type BrowserOptions struct {
	Engine     string
	Headless   bool
	WaitFor    string
	UseProfile bool
}

// Request is a single conversion request with every option resolved.
type Request struct {
	URL     string
	Toggles Toggles

	Timeout time.Duration
	MaxSize int64

	Method  FetchMethod
	Browser BrowserOptions

	UseCache bool
	CacheTTL time.Duration

	ReturnSummary bool
	MaxTokens     int

	// At most one of SectionID and SectionHeading is set.
	SectionID      string
	SectionHeading string
}

// DefaultRequest returns a Request for rawURL with the documented defaults.
func DefaultRequest(rawURL string) Request {
	return Request{
		URL:     rawURL,
		Toggles: Toggles{Images: true, Tables: true, Links: true},
		Timeout: DefaultTimeout,
		MaxSize: DefaultMaxSize,
		Method:  MethodFetch,
		Browser: BrowserOptions{
			Engine:   EngineChromium,
			Headless: true,
			WaitFor:  WaitNetworkIdle,
		},
		CacheTTL:  DefaultCacheTTL,
		MaxTokens: DefaultMaxTokens,
	}
}

// Section returns the section selector label, or "" when none is set.
func (r Request) Section() string {
	if r.SectionID != "" {
		return r.SectionID
	}
	return r.SectionHeading
}

// Validate checks the request before any pipeline work. It returns an
// error matching ErrUsage for every violation.
func (r Request) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return Usagef("'url' parameter is required")
	}
	if r.SectionID != "" && r.SectionHeading != "" {
		return Usagef("'section_id' and 'section_heading' are mutually exclusive. Provide only one.")
	}
	if r.Timeout < MinTimeout || r.Timeout > MaxTimeout {
		return Usagef("'timeout' must be between %d and %d seconds", int(MinTimeout.Seconds()), int(MaxTimeout.Seconds()))
	}
	if r.MaxSize < MinMaxSize || r.MaxSize > MaxMaxSize {
		return Usagef("'max_size' must be between %d and %d bytes", MinMaxSize, MaxMaxSize)
	}
	if r.CacheTTL < MinCacheTTL || r.CacheTTL > MaxCacheTTL {
		return Usagef("'cache_ttl' must be between %d and %d seconds", int(MinCacheTTL.Seconds()), int(MaxCacheTTL.Seconds()))
	}
	if r.MaxTokens < MinMaxTokens || r.MaxTokens > MaxMaxTokens {
		return Usagef("'max_tokens' must be between %d and %d", MinMaxTokens, MaxMaxTokens)
	}
	switch r.Method {
	case MethodFetch, MethodPlaywright:
	default:
		return Usagef("'fetch_method' must be one of: fetch, playwright")
	}
	switch r.Browser.Engine {
	case EngineChromium, EngineFirefox, EngineWebKit:
	default:
		return Usagef("'browser_type' must be one of: chromium, firefox, webkit")
	}
	switch r.Browser.WaitFor {
	case WaitLoad, WaitDOMContentLoaded, WaitNetworkIdle:
	default:
		return Usagef("'wait_for' must be one of: load, domcontentloaded, networkidle")
	}
	return nil
}

// ValidateURL reports whether rawURL has both a scheme and a host.
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return FetchError(err, "invalid URL format: %s", rawURL)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return FetchError(nil, "invalid URL format: %s (must include scheme and host, e.g. https://example.com)", rawURL)
	}
	return nil
}
