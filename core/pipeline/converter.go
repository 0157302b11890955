// Package pipeline wires the conversion stages together: cache lookup,
// fetch, clean, extract, cache store, then section extraction and the
// token-budget decision between a full response and a summary.
package pipeline

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/html2md/core"
	"github.com/gaurav-prasanna/html2md/core/cache"
	"github.com/gaurav-prasanna/html2md/core/fetch"
	"github.com/gaurav-prasanna/html2md/core/sections"
	"github.com/gaurav-prasanna/html2md/internal/logger"
	"github.com/gaurav-prasanna/html2md/internal/metrics"
)

// FetcherFactory returns the fetcher that serves req.
type FetcherFactory func(req core.Request) core.Fetcher

// DefaultFetchers picks the plain HTTP fetcher or the browser fetcher from
// the request's fetch method. Plain fetchers share one client so
// connections to a host are reused across requests.
func DefaultFetchers(log *zap.Logger) FetcherFactory {
	client := fetch.NewClient()
	return func(req core.Request) core.Fetcher {
		if req.Method == core.MethodPlaywright {
			return fetch.NewBrowser(req.Browser, req.Timeout, log)
		}
		return fetch.NewWithClient(client, req.Timeout, req.MaxSize, log)
	}
}

// Options configures a Converter. Cache, Cleaner, Extractor, Saver and
// Fetchers are required.
type Options struct {
	Cache     *cache.Cache
	Fetchers  FetcherFactory
	Cleaner   core.Cleaner
	Extractor core.Extractor
	Saver     sections.Saver
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
}

// Converter runs one request through the pipeline. It is safe for
// concurrent use when its stages are.
type Converter struct {
	cache     *cache.Cache
	fetchers  FetcherFactory
	cleaner   core.Cleaner
	extractor core.Extractor
	saver     sections.Saver
	log       *zap.Logger
	metrics   *metrics.Metrics
}

// New creates a Converter from opts.
func New(opts Options) *Converter {
	return &Converter{
		cache:     opts.Cache,
		fetchers:  opts.Fetchers,
		cleaner:   opts.Cleaner,
		extractor: opts.Extractor,
		saver:     opts.Saver,
		log:       logger.OrNop(opts.Logger),
		metrics:   opts.Metrics,
	}
}

// document is a converted page plus the cleaned HTML it came from. Cleaned
// is empty when the result was served from the cache.
type document struct {
	result  core.Result
	cleaned string
	cached  bool
}

// Convert runs req through the pipeline. The request must already be
// valid; see core.Request.Validate.
func (c *Converter) Convert(ctx context.Context, req core.Request) (*core.Response, error) {
	log := logger.FromContext(ctx, c.log)
	start := time.Now()
	defer func() { c.metrics.Duration(string(req.Method), time.Since(start)) }()

	// A section cut by id needs the cleaned HTML, which the cache does not keep.
	doc, err := c.load(ctx, req, req.SectionID == "")
	if err != nil {
		return nil, err
	}

	markdown := doc.result.Markdown
	if req.Section() != "" {
		markdown, err = c.section(doc, req)
		if errors.Is(err, errNeedHTML) {
			log.Debug("section not in cached Markdown, fetching HTML", zap.String("section", req.Section()))
			if doc, err = c.load(ctx, req, false); err != nil {
				return nil, err
			}
			markdown, err = c.section(doc, req)
		}
		if err != nil {
			return nil, err
		}
		log.Info("section extracted", zap.String("section", req.Section()), zap.Int("bytes", len(markdown)))
	}

	result := doc.result
	result.Markdown = markdown
	result.MarkdownSize = len(markdown)

	resp := &core.Response{
		Kind:            core.KindFull,
		Result:          result,
		Section:         req.Section(),
		EstimatedTokens: sections.EstimateTokens(markdown),
		Cached:          doc.cached,
	}

	if req.ReturnSummary || resp.EstimatedTokens > req.MaxTokens {
		log.Info("document over token budget, summarizing",
			zap.Int("estimated_tokens", resp.EstimatedTokens),
			zap.Int("max_tokens", req.MaxTokens),
			zap.Bool("requested", req.ReturnSummary),
		)
		summary, err := sections.GenerateSummary(result, c.saver)
		if err != nil {
			return nil, err
		}
		resp.Kind = core.KindSummary
		resp.Summary = summary
		log.Info("summary saved", zap.String("path", summary.SavedTo), zap.Int("headings", len(summary.TableOfContents)))
	}

	return resp, nil
}

// load returns the converted document, from the cache when allowed.
func (c *Converter) load(ctx context.Context, req core.Request, readCache bool) (document, error) {
	log := logger.FromContext(ctx, c.log)
	key := cache.Fingerprint(req.URL, req.Toggles)

	if req.UseCache && readCache {
		result, ok := c.cache.Get(key, req.CacheTTL)
		c.metrics.CacheLookup(ok)
		if ok {
			log.Info("serving from cache", zap.String("url", req.URL))
			return document{result: result, cached: true}, nil
		}
	}

	fetched, err := c.fetchers(req).Fetch(ctx, req.URL)
	if err != nil {
		return document{}, err
	}
	raw := fetched.HTML

	cleaned, err := c.cleaner.Clean(raw)
	if err != nil {
		return document{}, err
	}

	markdown, err := c.extractor.Extract(cleaned, req.Toggles)
	if err != nil {
		return document{}, err
	}

	result := core.Result{
		URL:          req.URL,
		Markdown:     markdown,
		RawSize:      len(raw),
		CleanedSize:  len(cleaned),
		MarkdownSize: len(markdown),
	}
	c.metrics.Bytes(metrics.StageRaw, result.RawSize)
	c.metrics.Bytes(metrics.StageCleaned, result.CleanedSize)
	c.metrics.Bytes(metrics.StageMarkdown, result.MarkdownSize)

	log.Info("conversion complete",
		zap.String("url", req.URL),
		zap.Int("raw_bytes", result.RawSize),
		zap.Int("cleaned_bytes", result.CleanedSize),
		zap.Int("markdown_bytes", result.MarkdownSize),
		zap.Float64("compression_percent", result.CompressionPercent()),
	)

	if req.UseCache {
		c.cache.Set(key, result, req.CacheTTL)
	}
	return document{result: result, cleaned: cleaned}, nil
}
