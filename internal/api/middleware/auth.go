package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskline/todo-api/internal/core/domain"
	"github.com/taskline/todo-api/internal/core/identity"
)

const principalKey = "principal"

// TokenParser validates a bearer token and returns its claims.
type TokenParser interface {
	Parse(tokenString string) (*identity.Claims, error)
}

// Auth validates the JWT and stores the caller's Principal in the request
// context. Downstream code receives the identity explicitly via
// PrincipalFrom; nothing reads it from ambient state.
func Auth(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := parser.Parse(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(principalKey, domain.Principal{
				UserID: claims.Subject,
				Email:  claims.Email,
				Roles:  claims.Roles,
			})

			return next(c)
		}
	}
}

// PrincipalFrom returns the Principal injected by Auth, if any.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

// RequireRole enforces that the caller's token carries one of the allowed
// role claims. Claims are a snapshot from issuance time; handlers doing
// high-privilege work re-check roles against the store via the identity
// service's policy evaluation.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			for _, role := range p.Roles {
				if _, found := allowed[role]; found {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
