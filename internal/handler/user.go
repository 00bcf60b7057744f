package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arivald8/notehub/internal/middleware"
	"github.com/arivald8/notehub/internal/model"
)

// UserService is the slice of the profile use cases the handlers need.
type UserService interface {
	Profile(ctx context.Context, actor, username string) (*model.User, error)
	Delete(ctx context.Context, actor, username string) error
}

// UserHandler serves the profile endpoints.
type UserHandler struct {
	Users    UserService
	Sessions SessionManager
}

func NewUserHandler(users UserService, sessions SessionManager) *UserHandler {
	return &UserHandler{Users: users, Sessions: sessions}
}

// Get returns a user's profile. The service rejects any actor other than
// the profile owner before touching the store.
func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.Profile(ctx, middleware.CurrentUser(c), c.Param("username"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(u)})
}

// Delete removes the account together with every note it owns, then ends
// the browser session that performed it.
func (h *UserHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Users.Delete(ctx, middleware.CurrentUser(c), c.Param("username")); err != nil {
		return writeError(c, err)
	}

	// The account is gone; drop its session cookie too.
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		_ = h.Sessions.Destroy(ctx, cookie.Value)
		c.SetCookie(&http.Cookie{
			Name:     middleware.SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return c.NoContent(http.StatusNoContent)
}
