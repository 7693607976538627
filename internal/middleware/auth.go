package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/shaadibazaarhub/marketplace-api/internal/auth"
	"github.com/shaadibazaarhub/marketplace-api/internal/models"
)

const identityKey = "identity"

// JWTAuth authenticates the bearer header and stores the identity on the
// context. Every failure is the same unauthenticated error.
func JWTAuth(g *auth.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := g.Authenticate(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// RequireRole must run after JWTAuth.
func RequireRole(role models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := Identity(c)
			if err != nil {
				return err
			}
			if err := auth.RequireRole(id, role); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// Identity returns the authenticated caller, or ErrUnauthenticated when the
// route was not behind JWTAuth.
func Identity(c echo.Context) (auth.Identity, error) {
	id, ok := c.Get(identityKey).(auth.Identity)
	if !ok {
		return auth.Identity{}, auth.ErrUnauthenticated
	}
	return id, nil
}

// SetIdentity is used by handler tests to bypass token verification.
func SetIdentity(c echo.Context, id auth.Identity) {
	c.Set(identityKey, id)
}
