package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/html2md/core/cache"
	"github.com/gaurav-prasanna/html2md/core/clean"
	"github.com/gaurav-prasanna/html2md/core/extract"
	"github.com/gaurav-prasanna/html2md/core/output"
	"github.com/gaurav-prasanna/html2md/core/pipeline"
	"github.com/gaurav-prasanna/html2md/internal/config"
	"github.com/gaurav-prasanna/html2md/internal/metrics"
)

// newConverter assembles the pipeline stages around c.
func newConverter(cfg *config.Config, c *cache.Cache, log *zap.Logger, m *metrics.Metrics) (*pipeline.Converter, error) {
	writer, err := output.New(cfg.Output.TempDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output writer: %w", err)
	}

	return pipeline.New(pipeline.Options{
		Cache:     c,
		Fetchers:  pipeline.DefaultFetchers(log.Named("fetch")),
		Cleaner:   clean.New(log.Named("clean")),
		Extractor: extract.New(log.Named("extract")),
		Saver:     writer,
		Logger:    log.Named("pipeline"),
		Metrics:   m,
	}), nil
}
