package httpserver

import (
	"strings"

	"moviecatalog/errs"
	"moviecatalog/pkg/jwt"
	"moviecatalog/user"

	"github.com/labstack/echo/v4"
)

const claimsKey = "claims"

var (
	ErrMalformedAuthHeader = errs.Errorf(errs.EUNAUTHORIZED, "malformed authorization header")
	ErrAccessTokenRequired = errs.Errorf(errs.EUNAUTHORIZED, "access token required")
	ErrInsufficientRole    = errs.Errorf(errs.EFORBIDDEN, "insufficient role")
)

// authenticate verifies a bearer token when one is presented and stores
// its claims on the context. Requests without an Authorization header
// continue anonymously.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return next(c)
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return ErrMalformedAuthHeader
		}

		claims, err := s.Tokens.Parse(parts[1])
		if err != nil {
			return err
		}
		c.Set(claimsKey, claims)
		return next(c)
	}
}

// requireAccess rejects anonymous requests and refresh tokens.
func requireAccess(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok || claims.Type != jwt.TypeAccess {
			return ErrAccessTokenRequired
		}
		return next(c)
	}
}

// requireRole lets through callers at least as privileged as role.
// It must run after requireAccess.
func requireRole(role user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := claimsFrom(c)
			if !ok {
				return ErrAccessTokenRequired
			}
			if !claims.Role.Satisfies(role) {
				return ErrInsufficientRole
			}
			return next(c)
		}
	}
}

func claimsFrom(c echo.Context) (*jwt.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*jwt.Claims)
	return claims, ok && claims != nil
}
