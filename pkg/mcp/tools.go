package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mitchellh/mapstructure"

	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/dataset"
)

var validate = validator.New()

func listComponentsTool() mcp.Tool {
	return mcp.NewTool(
		"list_components",
		mcp.WithDescription("List every component in the dataset with a short summary (name, title, description, available sections)."),
	)
}

func searchComponentsTool() mcp.Tool {
	return mcp.NewTool(
		"search_components",
		mcp.WithDescription("Full-text search across component names, titles, descriptions, signature members, logic signals, and examples."),
		mcp.WithString("query", mcp.Description("Search term. Empty or omitted lists all components.")),
	)
}

func getComponentTool() mcp.Tool {
	return mcp.NewTool(
		"get_component",
		mcp.WithDescription("Fetch the full merged record for one component: documentation, props, emits, slots, and logic signals."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Component name, case-insensitive (e.g. DataTable or datatable).")),
		mcp.WithString("section", mcp.Description("Optional section to narrow to, such as props, emits, slots, or logic.")),
	)
}

func searchTokensTool() mcp.Tool {
	return mcp.NewTool(
		"search_tokens",
		mcp.WithDescription("Look up design tokens by substring match on the CSS variable name or the token path placeholder."),
		mcp.WithString("query", mcp.Description("Substring filter. Empty or omitted returns every token.")),
	)
}

func (s *Server) handleListComponents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summaries, err := s.svc.ListComponents("")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"count":      len(summaries),
		"components": summaries,
	})
}

func (s *Server) handleSearchComponents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type args struct {
		Query string `json:"query" validate:"omitempty"`
	}
	var a args
	if err := mapstructure.Decode(req.GetArguments(), &a); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// An empty query degrades to a plain listing rather than an error;
	// assistants often probe tools with no arguments first.
	if a.Query == "" {
		return s.handleListComponents(ctx, req)
	}

	hits, err := s.svc.Search(a.Query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"query":   a.Query,
		"count":   len(hits),
		"results": hits,
	})
}

func (s *Server) handleGetComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type args struct {
		Name    string `json:"name" validate:"required"`
		Section string `json:"section" validate:"omitempty"`
	}
	var a args
	if err := mapstructure.Decode(req.GetArguments(), &a); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := validate.StructCtx(ctx, a); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.svc.GetComponent(a.Name, a.Section)
	if err != nil {
		var notFound *dataset.NotFoundError
		if errors.As(err, &notFound) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"component %q not found; known components: %s",
				a.Name, joinNames(notFound.Available))), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func (s *Server) handleSearchTokens(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type args struct {
		Query string `json:"query" validate:"omitempty"`
	}
	var a args
	if err := mapstructure.Decode(req.GetArguments(), &a); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tokens, err := s.svc.GetTokens(a.Query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"count":  len(tokens),
		"tokens": tokens,
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func joinNames(names []string) string {
	const limit = 25
	if len(names) <= limit {
		return fmt.Sprintf("%v", names)
	}
	return fmt.Sprintf("%v and %d more", names[:limit], len(names)-limit)
}
