// Package httpapi exposes the merged dataset over a JSON HTTP API.
package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/dataset"
)

// Server wraps an echo instance serving read-only queries against a
// loaded dataset.
type Server struct {
	echo      *echo.Echo
	svc       *dataset.Service
	logger    *slog.Logger
	version   string
	startedAt time.Time
}

// NewServer builds the HTTP server and registers all routes.
func NewServer(svc *dataset.Service, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Validator = &requestValidator{validate: validator.New()}

	s := &Server{
		echo:      e,
		svc:       svc,
		logger:    logger,
		version:   version,
		startedAt: time.Now(),
	}
	e.HTTPErrorHandler = s.errorHandler
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/", s.handleRoot)
	s.echo.GET("/mcp/components", s.handleListComponents)
	s.echo.GET("/mcp/component/:name", s.handleGetComponent)
	s.echo.GET("/mcp/tokens", s.handleGetTokens)
	s.echo.GET("/mcp/search", s.handleSearch)
	s.echo.GET("/cache/stats", s.handleCacheStats)
	s.echo.POST("/cache/clear", s.handleCacheClear)
}

// Handler exposes the route tree for httptest-driven tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// requestValidator adapts go-playground/validator to echo's Validator
// interface.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// fieldError is one entry of a 400 response's error list.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorHandler converts errors escaping handlers into JSON bodies: echo
// HTTP errors keep their status, validation errors become field-level 400s,
// and anything else becomes a generic 500 so internals never leak.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if verrs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed %q validation", fe.Tag()),
			})
		}
		_ = c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "invalid request",
			"fields": fields,
		})
		return
	}

	if he, ok := err.(*echo.HTTPError); ok {
		_ = c.JSON(he.Code, map[string]any{"error": fmt.Sprintf("%v", he.Message)})
		return
	}

	s.logger.Error("request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
	_ = c.JSON(http.StatusInternalServerError, map[string]any{"error": "internal server error"})
}
