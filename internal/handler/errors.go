package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arivald8/notehub/internal/auth"
	"github.com/arivald8/notehub/internal/metrics"
	"github.com/arivald8/notehub/internal/model"
	"github.com/arivald8/notehub/pkg/logger"
)

// writeError maps a domain error to an HTTP response. Unknown errors are
// logged and reported as a generic 500 so internals never leak.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	case errors.Is(err, auth.ErrUnauthorized):
		metrics.UnauthorizedTotal.Inc()
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	case errors.Is(err, model.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, model.ErrDuplicateUser):
		return c.JSON(http.StatusConflict, echo.Map{"error": "username already taken"})
	case errors.Is(err, model.ErrOwnerNotFound):
		return c.JSON(http.StatusConflict, echo.Map{"error": "owner does not exist"})
	default:
		log := logger.Get()
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
