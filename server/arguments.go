package server

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/gaurav-prasanna/html2md/core"
)

// arguments mirrors the tool's input. Nil fields take their defaults.
type arguments struct {
	URL            *string `json:"url"`
	IncludeImages  *bool   `json:"include_images"`
	IncludeTables  *bool   `json:"include_tables"`
	IncludeLinks   *bool   `json:"include_links"`
	Timeout        *int64  `json:"timeout"`
	MaxSize        *int64  `json:"max_size"`
	UseCache       *bool   `json:"use_cache"`
	CacheTTL       *int64  `json:"cache_ttl"`
	FetchMethod    *string `json:"fetch_method"`
	BrowserType    *string `json:"browser_type"`
	Headless       *bool   `json:"headless"`
	WaitFor        *string `json:"wait_for"`
	UseUserProfile *bool   `json:"use_user_profile"`
	ReturnSummary  *bool   `json:"return_summary"`
	MaxTokens      *int    `json:"max_tokens"`
	SectionID      *string `json:"section_id"`
	SectionHeading *string `json:"section_heading"`
}

// decodeRequest turns raw tool arguments into a validated request.
func decodeRequest(raw json.RawMessage) (core.Request, error) {
	var args arguments
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return core.Request{}, core.Usagef("invalid arguments: %v", err)
		}
	}

	req := args.request()
	if err := req.Validate(); err != nil {
		return core.Request{}, err
	}
	return req, nil
}

func (a arguments) request() core.Request {
	req := core.DefaultRequest(deref(a.URL, ""))

	req.Toggles.Images = deref(a.IncludeImages, req.Toggles.Images)
	req.Toggles.Tables = deref(a.IncludeTables, req.Toggles.Tables)
	req.Toggles.Links = deref(a.IncludeLinks, req.Toggles.Links)

	if a.Timeout != nil {
		req.Timeout = time.Duration(*a.Timeout) * time.Second
	}
	req.MaxSize = deref(a.MaxSize, req.MaxSize)

	req.UseCache = deref(a.UseCache, req.UseCache)
	if a.CacheTTL != nil {
		req.CacheTTL = time.Duration(*a.CacheTTL) * time.Second
	}

	req.Method = core.FetchMethod(deref(a.FetchMethod, string(req.Method)))
	req.Browser.Engine = deref(a.BrowserType, req.Browser.Engine)
	req.Browser.Headless = deref(a.Headless, req.Browser.Headless)
	req.Browser.WaitFor = deref(a.WaitFor, req.Browser.WaitFor)
	req.Browser.UseProfile = deref(a.UseUserProfile, req.Browser.UseProfile)

	req.ReturnSummary = deref(a.ReturnSummary, req.ReturnSummary)
	req.MaxTokens = deref(a.MaxTokens, req.MaxTokens)

	req.SectionID = deref(a.SectionID, "")
	req.SectionHeading = deref(a.SectionHeading, "")
	return req
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
