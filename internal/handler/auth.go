package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arivald8/notehub/internal/config"
	"github.com/arivald8/notehub/internal/metrics"
	"github.com/arivald8/notehub/internal/middleware"
	"github.com/arivald8/notehub/internal/model"
	"github.com/arivald8/notehub/internal/service"
	"github.com/arivald8/notehub/internal/utils"
)

// dbTimeout bounds every storage call made from a handler.
const dbTimeout = 5 * time.Second

// AuthService is the slice of the auth use cases the handlers need.
type AuthService interface {
	Register(ctx context.Context, p service.RegisterParams) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
}

// SessionManager creates and destroys the identity bindings behind the
// session cookie.
type SessionManager interface {
	Create(ctx context.Context, username string) (string, error)
	Destroy(ctx context.Context, raw string) error
}

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Auth     AuthService
	Sessions SessionManager
}

func NewAuthHandler(cfg config.Config, a AuthService, s SessionManager) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Auth: a, Sessions: s}
}

// ----- DTOs -----

// Field limits mirror the column widths.
type registerReq struct {
	Username  string `json:"username" form:"username" validate:"required,max=20"`
	Password  string `json:"password" form:"password" validate:"required"`
	Email     string `json:"email" form:"email" validate:"required,email,max=50"`
	FirstName string `json:"first_name" form:"first_name" validate:"required,max=30"`
	LastName  string `json:"last_name" form:"last_name" validate:"required,max=30"`
}

type loginReq struct {
	Username string `json:"username" form:"username" validate:"required,max=20"`
	Password string `json:"password" form:"password" validate:"required"`
}

type userPart struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func toUserPart(u *model.User) userPart {
	return userPart{Username: u.Username, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}

// Register creates the account and logs the new user straight in by
// establishing a session, the same as the login flow.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Auth.Register(ctx, service.RegisterParams{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if err == model.ErrDuplicateUser {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		}
		return writeError(c, err)
	}
	metrics.RegistrationsTotal.WithLabelValues("created").Inc()

	if err := h.startSession(ctx, c, u.Username); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": toUserPart(u)})
}

// Login verifies credentials and establishes a session. Unknown username
// and wrong password produce the identical response.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Auth.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return writeError(c, err)
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	if err := h.startSession(ctx, c, u.Username); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(u)})
}

// Logout destroys the server-side session and expires the cookie. Calling
// it without a session is harmless.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.Sessions.Destroy(ctx, cookie.Value); err != nil {
			return writeError(c, err)
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.NoContent(http.StatusNoContent)
}

// Token exchanges credentials for a short-lived HS256 JWT so non-browser
// clients can skip cookies entirely.
func (h *AuthHandler) Token(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Auth.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return writeError(c, err)
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.Username, h.Cfg.AccessTTLMin)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":   access.Token,
		"expires": access.Exp,
	})
}

// Me returns the authenticated identity.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"username": middleware.CurrentUser(c)})
}

// startSession mints a session and sets the cookie on the response.
func (h *AuthHandler) startSession(ctx context.Context, c echo.Context, username string) error {
	token, err := h.Sessions.Create(ctx, username)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   h.Cfg.SessionTTLHours * 3600,
		HttpOnly: true,
		Secure:   h.Cfg.Env == "prod",
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
