package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medbook/appointment-api/internal/auth"
	"github.com/medbook/appointment-api/internal/model"
)

// UserKey is the echo context key under which UserAuth stores the
// authenticated user record.
const UserKey = "user"

// TokenCookie is the cookie carrying the bearer token for browser flows.
const TokenCookie = "token"

// UserLoader resolves token claims to a live user record.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (model.User, error)
}

// UserAuth is the sole gate in front of protected routes. It takes the
// token from the Authorization header, falling back to the token cookie,
// verifies the claims and loads the referenced user. Any failure —
// missing token, bad signature, elapsed expiry, vanished user —
// short-circuits with 401 before handler logic runs.
func UserAuth(secret string, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authentication required."})
			}
			claims, err := auth.Parse(raw, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid or expired token."})
			}
			u, err := users.GetByID(c.Request().Context(), claims.ID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid or expired token."})
				}
				log.Printf("auth: load user %s: %v", claims.ID, err)
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
			}
			c.Set(UserKey, u)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if h := c.Request().Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if ck, err := c.Cookie(TokenCookie); err == nil {
		return ck.Value
	}
	return ""
}

// CurrentUser returns the user attached by UserAuth.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(UserKey).(model.User)
	return u, ok
}
