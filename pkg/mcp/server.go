// Package mcp serves the merged dataset to editor assistants over the
// Model Context Protocol on stdin/stdout.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/dataset"
	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/mcplog"
)

// Server exposes the dataset as MCP resources and tools.
type Server struct {
	mcpServer *server.MCPServer
	svc       *dataset.Service
	logger    *mcplog.Logger // nil when tool-call logging is disabled
}

// NewServer builds the MCP server. toolLogger may be nil.
func NewServer(svc *dataset.Service, version string, toolLogger *mcplog.Logger) (*Server, error) {
	s := &Server{svc: svc, logger: toolLogger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	}
	if toolLogger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("prime-vue-mcp", version, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: listComponentsTool(), Handler: s.handleListComponents},
		server.ServerTool{Tool: searchComponentsTool(), Handler: s.handleSearchComponents},
		server.ServerTool{Tool: getComponentTool(), Handler: s.handleGetComponent},
		server.ServerTool{Tool: searchTokensTool(), Handler: s.handleSearchTokens},
	)

	if err := s.registerResources(); err != nil {
		return nil, err
	}

	return s, nil
}

// ServeStdio blocks serving the protocol on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
