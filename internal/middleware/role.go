package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-booking/internal/model"
)

// RequireAdmin guards the admin endpoints.  It assumes JWTAuth has already
// stored the role claim under RoleKey.  Any other role, including a missing
// one as carried by plain login tokens, is answered with 403.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if role, _ := c.Get(RoleKey).(string); role != model.RoleAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied: Not an admin"})
			}
			return next(c)
		}
	}
}
