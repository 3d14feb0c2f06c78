// Package mcp serves fitwatch progress data to assistants over the Model
// Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/blackwell-systems/fitwatch/internal/config"
)

// Server answers MCP tool calls against the configured export directory.
type Server struct {
	cfg     *config.Config
	version string
	logger  *zap.Logger
	now     func() time.Time
}

// NewServer constructs a Server. A nil logger disables logging.
func NewServer(cfg *config.Config, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:     cfg,
		version: version,
		logger:  logger.Named("mcp"),
		now:     time.Now,
	}
}

// protocol builds the MCP server with the progress tools registered.
func (s *Server) protocol() *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "fitwatch",
		Version: s.version,
	}, nil)
	addTools(srv, s)
	return srv
}

// Run serves a single session over t until the client disconnects or ctx is
// cancelled. Cancellation is not reported as an error.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	s.logger.Debug("serving", zap.String("version", s.version))
	err := s.protocol().Run(ctx, t)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// ServeStdio runs the server on the process's stdin and stdout.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}

// toolHandler adapts fn to the SDK handler shape. The result is returned as
// indented JSON text; a failure becomes an error result the assistant can read.
func toolHandler[In, Out any](s *Server, name string, fn func(context.Context, In) (Out, error)) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		out, err := fn(ctx, in)
		if err != nil {
			s.logger.Warn("tool failed", zap.String("tool", name), zap.Error(err))
			return errorResult(err.Error()), nil, nil
		}
		raw, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return errorResult("encoding response: " + err.Error()), nil, nil
		}
		s.logger.Debug("tool call",
			zap.String("tool", name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Int("bytes", len(raw)),
		)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
		}, nil, nil
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}
