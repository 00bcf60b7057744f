// Package middleware provides the request processing shared by protected
// routes: identity resolution and rate limiting.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "notehub_session"

// identityKey is the context key under which the authenticated username is
// stored. Handlers read it via CurrentUser.
const identityKey = "username"

// SessionResolver maps a raw session token to a username. Implemented by
// session.Store; any error means "no identity".
type SessionResolver interface {
	Resolve(ctx context.Context, raw string) (string, error)
}

// Identity returns middleware that authenticates the request and injects
// the username into the Echo context. Two credentials are accepted, in
// order: the session cookie set at login, and a Bearer HS256 JWT issued by
// the token endpoint for non-browser clients. Requests carrying neither are
// rejected with 401 before any handler runs.
func Identity(sessions SessionResolver, jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				username, err := sessions.Resolve(c.Request().Context(), cookie.Value)
				if err == nil && username != "" {
					c.Set(identityKey, username)
					return next(c)
				}
			}

			if username, ok := bearerUsername(c, jwtSecret); ok {
				c.Set(identityKey, username)
				return next(c)
			}

			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
	}
}

// CurrentUser returns the authenticated username stored by Identity, or ""
// for an unauthenticated request.
func CurrentUser(c echo.Context) string {
	if v, ok := c.Get(identityKey).(string); ok {
		return v
	}
	return ""
}

// HasBearer reports whether the request authenticates with an Authorization
// header rather than a cookie. Used to skip CSRF for API clients, which
// never authenticate ambiently.
func HasBearer(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
}

// bearerUsername validates a Bearer JWT and extracts the subject claim.
func bearerUsername(c echo.Context, secret string) (string, bool) {
	authz := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	raw := strings.TrimPrefix(authz, "Bearer ")

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sub, ok := claims["sub"].(string)
	return sub, ok && sub != ""
}
