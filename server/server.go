// Package server exposes the conversion pipeline as an MCP tool server.
// Every call is answered with text: failures are reported in the result,
// never as protocol errors.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/html2md/core"
	"github.com/gaurav-prasanna/html2md/core/render"
	"github.com/gaurav-prasanna/html2md/internal/logger"
	"github.com/gaurav-prasanna/html2md/internal/metrics"
	"github.com/gaurav-prasanna/html2md/internal/workpool"
)

// Converter runs a validated request through the pipeline.
type Converter interface {
	Convert(ctx context.Context, req core.Request) (*core.Response, error)
}

// Server answers html_to_markdown calls on a worker pool.
type Server struct {
	conv    Converter
	pool    *workpool.Pool
	log     *zap.Logger
	metrics *metrics.Metrics
	mcp     *mcp.Server
}

// New creates a Server and registers the html_to_markdown tool.
func New(conv Converter, pool *workpool.Pool, version string, log *zap.Logger, m *metrics.Metrics) *Server {
	s := &Server{
		conv:    conv,
		pool:    pool,
		log:     logger.OrNop(log),
		metrics: m,
	}

	s.mcp = mcp.NewServer(&mcp.Implementation{Name: "html2md", Version: version}, nil)
	s.mcp.AddTool(&mcp.Tool{
		Name:        ToolName,
		Description: toolDescription,
		Annotations: &mcp.ToolAnnotations{Title: "HTML to Markdown", ReadOnlyHint: true},
		InputSchema: inputSchema(),
	}, s.HandleCall)
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcp.Server { return s.mcp }

// Run serves MCP on t until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	s.log.Info("starting MCP server", zap.String("tool", ToolName))
	return s.mcp.Run(ctx, t)
}

// HandleCall answers one tools/call request.
func (s *Server) HandleCall(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := s.log.With(zap.String("request_id", uuid.NewString()))
	ctx = logger.WithContext(ctx, log)
	start := time.Now()

	var name string
	var raw json.RawMessage
	if req != nil && req.Params != nil {
		name, raw = req.Params.Name, req.Params.Arguments
	}

	resp, err := s.call(ctx, name, raw)
	s.metrics.Request(outcome(resp, err))

	if err != nil {
		text := render.Error(err)
		if errors.Is(err, core.ErrUsage) {
			log.Warn("rejected call", zap.String("error", text))
		} else {
			log.Error("conversion failed", zap.String("error", text), zap.Duration("elapsed", time.Since(start)))
		}
		return textResult(text, true), nil
	}

	log.Info("conversion served",
		zap.String("url", resp.Result.URL),
		zap.String("kind", string(resp.Kind)),
		zap.Bool("cached", resp.Cached),
		zap.Int("estimated_tokens", resp.EstimatedTokens),
		zap.Duration("elapsed", time.Since(start)),
	)
	return textResult(render.Text(resp), false), nil
}

func (s *Server) call(ctx context.Context, name string, raw json.RawMessage) (*core.Response, error) {
	if name != ToolName {
		return nil, core.Usagef("unknown tool: %s", name)
	}

	req, err := decodeRequest(raw)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx, s.log).Info("converting",
		zap.String("url", req.URL),
		zap.String("fetch_method", string(req.Method)),
		zap.Bool("use_cache", req.UseCache),
		zap.String("section", req.Section()),
	)

	future, err := workpool.Submit(ctx, s.pool, func(ctx context.Context) (*core.Response, error) {
		return s.conv.Convert(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return future.Wait(ctx)
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isError,
	}
}

func outcome(resp *core.Response, err error) string {
	if err == nil {
		if resp.Kind == core.KindSummary {
			return metrics.OutcomeSummary
		}
		return metrics.OutcomeFull
	}
	if errors.Is(err, core.ErrUsage) {
		return metrics.OutcomeUsage
	}
	kind, ok := core.KindOf(err)
	switch {
	case ok && kind == core.KindFetch:
		return metrics.OutcomeFetch
	case ok && kind == core.KindParse:
		return metrics.OutcomeParse
	default:
		return metrics.OutcomeError
	}
}
