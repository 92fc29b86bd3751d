package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-booking/internal/utils"
)

// Context keys set by JWTAuth.
const (
	ClaimsKey = "claims"
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// JWTAuth returns an Echo middleware that validates the token in the
// Authorization header and injects its claims into the request context.  The
// token is the second whitespace-separated field of the header, so
// "Bearer <token>" is the expected form.  A missing token answers 401 and a
// token that fails verification answers 403.  No store is consulted.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			fields := strings.Fields(c.Request().Header.Get(echo.HeaderAuthorization))
			if len(fields) < 2 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "No token provided"})
			}

			claims, err := utils.ParseToken(secret, fields[1])
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Invalid token"})
			}

			// Handlers and downstream middleware read these via c.Get().
			c.Set(ClaimsKey, claims)
			c.Set(UserIDKey, claims.ID)
			c.Set(RoleKey, claims.Role)
			return next(c)
		}
	}
}
