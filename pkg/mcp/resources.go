package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	componentURIPrefix = "primevue://component/"
	tokensURI          = "primevue://tokens"
)

// registerResources publishes one resource per component plus the token
// map. Enumerating components forces the dataset load, so a broken
// dataset file fails server startup instead of the first tool call.
func (s *Server) registerResources() error {
	summaries, err := s.svc.ListComponents("")
	if err != nil {
		return fmt.Errorf("failed to load dataset for resources: %w", err)
	}

	for _, summary := range summaries {
		name := summary.Name
		uri := componentURIPrefix + name
		desc := summary.Description
		if desc == "" {
			desc = "Merged component record: documentation, signatures, and logic signals."
		}
		s.mcpServer.AddResource(
			mcp.NewResource(uri, name,
				mcp.WithResourceDescription(desc),
				mcp.WithMIMEType("application/json"),
			),
			s.readComponentResource(uri, name),
		)
	}

	s.mcpServer.AddResource(
		mcp.NewResource(tokensURI, "design-tokens",
			mcp.WithResourceDescription("Design token map: CSS variable name to source placeholder."),
			mcp.WithMIMEType("application/json"),
		),
		s.readTokensResource,
	)

	return nil
}

func (s *Server) readComponentResource(uri, name string) func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		result, err := s.svc.GetComponent(name, "")
		if err != nil {
			return nil, fmt.Errorf("resource %s: %w", uri, err)
		}
		text, err := json.Marshal(result.Data)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(text),
			},
		}, nil
	}
}

func (s *Server) readTokensResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	tokens, err := s.svc.GetTokens("")
	if err != nil {
		return nil, err
	}
	text, err := json.Marshal(tokens)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      tokensURI,
			MIMEType: "application/json",
			Text:     string(text),
		},
	}, nil
}
