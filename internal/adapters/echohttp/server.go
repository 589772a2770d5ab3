// Package echohttp exposes the SmartQA services as a JSON API.
package echohttp

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/example/smartqa/internal/apperrors"
	"github.com/example/smartqa/internal/ctxutil"
	"github.com/example/smartqa/internal/ports/primary"
)

// Services are the primary ports the API drives.
type Services struct {
	Projects   primary.ProjectService
	Scenarios  primary.ScenarioService
	Executions primary.ExecutionService
	BugReports primary.BugReportService
	Dashboard  primary.DashboardService
	Generation primary.GenerationService
	Tracker    primary.TrackerService
}

var v = validator.New()

// Server creates the echo instance with middlewares and routes registered.
func Server(services Services, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(99)

	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(actor())
	e.HTTPErrorHandler = errorHandler(logger)

	h := &handlers{Services: services}
	h.register(e.Group("/api"))
	return e
}

// actor tags every request so the audit log records the HTTP API as the actor.
func actor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(ctxutil.WithActorID(req.Context(), ctxutil.ActorHTTP)))
			return next(c)
		}
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			logger.Info("handled request",
				"method", c.Request().Method,
				"url", c.Request().URL.String(),
				"status", c.Response().Status,
				"duration", time.Since(now))
			return nil
		}
	}
}

// StatusFor maps an error onto the HTTP status the API responds with.
func StatusFor(err error) int {
	var he *echo.HTTPError
	var ve validator.ValidationErrors
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.As(err, &ve), errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrGeneration), errors.Is(err, apperrors.ErrTracker):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := StatusFor(err)
		message := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			if m, ok := he.Message.(string); ok {
				message = m
			}
		}
		if code >= http.StatusInternalServerError && code != http.StatusBadGateway {
			logger.Error("request failed", "error", err)
			message = http.StatusText(code)
		} else {
			logger.Debug("request rejected", "status", code, "error", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, echo.Map{"message": message})
	}
}
