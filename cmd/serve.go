package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/html2md/core/cache"
	"github.com/gaurav-prasanna/html2md/internal/config"
	"github.com/gaurav-prasanna/html2md/internal/metrics"
	"github.com/gaurav-prasanna/html2md/internal/workpool"
	"github.com/gaurav-prasanna/html2md/server"
)

var (
	flagWorkers      int
	flagQueueSize    int
	flagMetricsAddr  string
	flagCacheCleanup time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the html_to_markdown tool over MCP on stdio",
	Long: `Serve runs an MCP server on stdin/stdout exposing one tool,
html_to_markdown. Logs go to stderr (or --log-file) so they never mix with
the protocol stream.

Examples:
  html2md serve
  html2md serve --workers 8 --metrics-addr :9090
  html2md serve --config ~/.config/html2md.yaml --log-file /tmp/html2md.log`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Conversions that run at once (default 4)")
	serveCmd.Flags().IntVar(&flagQueueSize, "queue-size", 0, "Conversions that may wait for a worker, 0 = unbounded (default 64)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	serveCmd.Flags().DurationVar(&flagCacheCleanup, "cache-cleanup", 0, "Interval between purges of expired cache entries, 0 = never (default 10m)")
}

// applyServeFlags copies explicitly set serve flags onto cfg.
func applyServeFlags(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("workers") {
		cfg.Workers.Size = flagWorkers
	}
	if flags.Changed("queue-size") {
		cfg.Workers.QueueSize = flagQueueSize
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = flagMetricsAddr
	}
	if flags.Changed("cache-cleanup") {
		cfg.Cache.CleanupInterval = flagCacheCleanup
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log := appCfg, appLog

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	pool, err := workpool.New(cfg.Workers.Size, cfg.Workers.QueueSize, log.Named("workpool"), m)
	if err != nil {
		return err
	}
	defer pool.Release()

	c := cache.New(log.Named("cache"))
	conv, err := newConverter(cfg, c, log, m)
	if err != nil {
		return err
	}

	if cfg.Cache.CleanupInterval > 0 {
		go cleanupLoop(ctx, c, cfg.Cache.CleanupInterval)
	}
	if cfg.Metrics.Addr != "" {
		go serveMetrics(ctx, cfg.Metrics.Addr, m, log)
	}

	log.Info("html2md ready",
		zap.String("version", version),
		zap.Int("workers", cfg.Workers.Size),
		zap.Int("queue_size", cfg.Workers.QueueSize),
	)

	srv := server.New(conv, pool, version, log.Named("server"), m)
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("MCP server: %w", err)
	}
	log.Info("html2md stopped")
	return nil
}

// cleanupLoop purges expired cache entries every interval until ctx is done.
func cleanupLoop(ctx context.Context, c *cache.Cache, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Cleanup()
		}
	}
}

func serveMetrics(ctx context.Context, addr string, m *metrics.Metrics, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("serving metrics", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("metrics server failed", zap.Error(err))
	}
}
