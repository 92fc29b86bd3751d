package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-booking/internal/handler"
	"github.com/iliyamo/room-booking/internal/middleware"
)

// RegisterBooking registers the booking endpoints under the base path.  They
// require no token.  Booked-slots listings are cached and each create drops
// the cached listings of its own room kind.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, d Deps) {
	base := d.Cfg.App.BasePath
	g := e.Group(base)
	cache := middleware.NewRedisCache(d.Cfg.Cache, d.Redis, d.Log)
	// cache keys use the registered route, which includes the group prefix
	drop := func(route string) echo.MiddlewareFunc {
		return middleware.InvalidateCache(d.Cfg.Cache, d.Redis, d.Log, base+route)
	}

	g.POST("/book-room", h.BookRoom, drop("/book-room/booked-slots"))
	g.GET("/book-room/booked-slots", h.BookedSlots, cache)

	g.POST("/game-room/book", h.BookGameRoom, drop("/game-room/booked-slots"))
	g.GET("/game-room/booked-slots", h.GameBookedSlots, cache)

	g.POST("/cinema-room/book", h.BookCinemaRoom, drop("/cinema-room/booked-slots"))
	g.GET("/cinema-room/booked-slots", h.CinemaBookedSlots, cache)

	g.GET("/get-bookings", h.UserBookings)
}
