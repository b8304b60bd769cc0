package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/dataset"
)

func (s *Server) handleHealth(c echo.Context) error {
	count, err := s.svc.ComponentCount()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":     "ok",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"uptime":     time.Since(s.startedAt).Round(time.Second).String(),
		"components": count,
	})
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"name":    "prime-vue-mcp",
		"version": s.version,
		"endpoints": []string{
			"GET /health",
			"GET /mcp/components?q=",
			"GET /mcp/component/:name?section=",
			"GET /mcp/tokens?q=",
			"GET /mcp/search?q=",
			"GET /cache/stats",
			"POST /cache/clear",
		},
	})
}

type listRequest struct {
	Query string `query:"q"`
}

func (s *Server) handleListComponents(c echo.Context) error {
	var req listRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	summaries, err := s.svc.ListComponents(req.Query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"count":      len(summaries),
		"components": summaries,
	})
}

func (s *Server) handleGetComponent(c echo.Context) error {
	name := c.Param("name")
	section := c.QueryParam("section")

	result, err := s.svc.GetComponent(name, section)
	if err != nil {
		var notFound *dataset.NotFoundError
		if errors.As(err, &notFound) {
			return c.JSON(http.StatusNotFound, map[string]any{
				"error":     notFound.Error(),
				"available": notFound.Available,
			})
		}
		var noSection *dataset.SectionNotFoundError
		if errors.As(err, &noSection) {
			return c.JSON(http.StatusNotFound, map[string]any{
				"error":     noSection.Error(),
				"component": noSection.Component,
				"sections":  noSection.Available,
			})
		}
		return err
	}

	return c.JSON(http.StatusOK, result)
}

type tokensRequest struct {
	Query string `query:"q"`
}

func (s *Server) handleGetTokens(c echo.Context) error {
	var req tokensRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	tokens, err := s.svc.GetTokens(req.Query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"count":  len(tokens),
		"tokens": tokens,
	})
}

type searchRequest struct {
	Query string `query:"q" validate:"required"`
}

func (s *Server) handleSearch(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hits, err := s.svc.Search(req.Query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"query":   req.Query,
		"count":   len(hits),
		"results": hits,
	})
}

func (s *Server) handleCacheStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.svc.Cache().Stats())
}

func (s *Server) handleCacheClear(c echo.Context) error {
	cleared := s.svc.Cache().Clear()
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "cleared",
		"entries": cleared,
	})
}
