package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/mcplog"
)

// loggingMiddleware records every tool call as one JSONL entry. Only
// installed when a tool logger is configured.
func (s *Server) loggingMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := mcplog.Now()
			result, err := next(ctx, req)

			var errStr *string
			if err != nil {
				msg := err.Error()
				errStr = &msg
			}

			_ = s.logger.Write(mcplog.Entry{
				Ts:            start.UTC().Format(time.RFC3339),
				Tool:          req.Params.Name,
				Params:        mcplog.SanitizeParams(req.GetArguments()),
				DurationMs:    time.Since(start).Milliseconds(),
				ResponseBytes: mcplog.ResponseBytes(result),
				Error:         errStr,
			})

			return result, err
		}
	}
}
