// Package core defines the pipeline types and interfaces for html2md.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// FetchResult holds the raw HTML returned by a fetcher.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Toggles selects which content kinds survive Markdown extraction.
type Toggles struct {
	Images bool `json:"include_images"`
	Tables bool `json:"include_tables"`
	Links  bool `json:"include_links"`
}

// Result is the outcome of a successful conversion. It is copied by value
// and never mutated after the pipeline returns it.
type Result struct {
	URL          string `json:"url"`
	Markdown     string `json:"markdown"`
	RawSize      int    `json:"original_size"`
	CleanedSize  int    `json:"cleaned_size"`
	MarkdownSize int    `json:"markdown_size"`
}

// CompressionPercent returns how much smaller the Markdown is than the raw HTML.
func (r Result) CompressionPercent() float64 {
	if r.RawSize == 0 {
		return 0
	}
	return 100 - float64(r.MarkdownSize)/float64(r.RawSize)*100
}

// CompressionRatio returns raw/markdown.
func (r Result) CompressionRatio() float64 {
	if r.MarkdownSize == 0 {
		return 0
	}
	return float64(r.RawSize) / float64(r.MarkdownSize)
}

// Statistics describes a document at each pipeline stage.
type Statistics struct {
	OriginalBytes      int    `json:"original_size_bytes"`
	OriginalHuman      string `json:"original_size_human"`
	CleanedBytes       int    `json:"cleaned_size_bytes"`
	CleanedHuman       string `json:"cleaned_size_human"`
	MarkdownBytes      int    `json:"markdown_size_bytes"`
	MarkdownHuman      string `json:"markdown_size_human"`
	EstimatedTokens    int    `json:"estimated_tokens"`
	CompressionRatio   string `json:"compression_ratio"`
	CompressionPercent string `json:"compression_percent"`
}

// Summary stands in for a document that is too large to return whole.
type Summary struct {
	Type            string     `json:"type"` // always "summary"
	URL             string     `json:"url"`
	SavedTo         string     `json:"saved_to"`
	Statistics      Statistics `json:"statistics"`
	Preview         string     `json:"preview"`
	TableOfContents []string   `json:"table_of_contents"`
	Help            string     `json:"help"`
}

// ResponseKind tags the shape of a Response.
type ResponseKind string

const (
	KindFull    ResponseKind = "full"
	KindSummary ResponseKind = "summary"
)

// Response is what the pipeline hands back to its caller. When a section
// was requested, Result.Markdown and Result.MarkdownSize describe the
// section while the other sizes still describe the whole page.
type Response struct {
	Kind            ResponseKind `json:"kind"`
	Result          Result       `json:"result"`
	Summary         *Summary     `json:"summary,omitempty"`
	Section         string       `json:"section,omitempty"`
	EstimatedTokens int          `json:"estimated_tokens"`
	Cached          bool         `json:"cached"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Cleaner strips non-content subtrees from an HTML document.
type Cleaner interface {
	Clean(html string) (string, error)
}

// Extractor converts cleaned HTML into Markdown. Extract keeps only the
// page's main content region; Convert keeps all of a fragment.
type Extractor interface {
	Extract(html string, toggles Toggles) (string, error)
	Convert(fragment string, toggles Toggles) (string, error)
}
