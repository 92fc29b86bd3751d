package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-booking/internal/handler"
	"github.com/iliyamo/room-booking/internal/middleware"
)

// RegisterAdmin registers admin endpoints under <base>/admin.  All routes
// require a valid JWT whose role claim is admin.  The admin login endpoint
// is registered by RegisterAuth and stays outside this group.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, d Deps) {
	g := e.Group(
		d.Cfg.App.BasePath+"/admin",
		middleware.JWTAuth(d.Cfg.JWT.Secret),
		middleware.RequireAdmin(),
	)
	g.GET("/pending-bookings", h.PendingBookings)
	g.GET("/dashboard", h.Dashboard)
	g.POST("/confirm-booking", h.ConfirmBooking)
	g.POST("/reject-booking", h.RejectBooking)
}
