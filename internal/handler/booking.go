package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/model"
)

// BookingHandler serves the public booking endpoints of all three room kinds.
type BookingHandler struct {
	bookings BookingStore
	games    GameRoomStore
	cinemas  CinemaRoomStore
	log      *zap.Logger
}

func NewBookingHandler(b BookingStore, g GameRoomStore, cr CinemaRoomStore, log *zap.Logger) *BookingHandler {
	return &BookingHandler{bookings: b, games: g, cinemas: cr, log: log}
}

type bookRoomReq struct {
	UserID model.ID `json:"userId" validate:"required"`
	Room   string   `json:"room" validate:"required"`
	Slots  []string `json:"slots" validate:"required,min=1,dive,required"`
}

type bookGameRoomReq struct {
	UserID   model.ID `json:"user_id" validate:"required"`
	SlotTime string   `json:"slot_time" validate:"required"`
}

// An empty slots array is a valid cinema booking; only a missing one is not.
type bookCinemaRoomReq struct {
	UserID model.ID `json:"userId" validate:"required"`
	Slots  []string `json:"slots" validate:"required"`
}

// BookRoom creates a pending generic booking.
func (h *BookingHandler) BookRoom(c echo.Context) error {
	var req bookRoomReq
	if ok, err := bindAndValidate(c, &req, missingFields); !ok {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.bookings.Create(ctx, uint64(req.UserID), req.Room, req.Slots)
	if err != nil {
		h.log.Error("book room", zap.Uint64("user_id", uint64(req.UserID)), zap.Error(err))
		return message(c, http.StatusInternalServerError, "Error booking the room")
	}
	return c.JSON(http.StatusCreated, echo.Map{"booking": b})
}

func (h *BookingHandler) BookGameRoom(c echo.Context) error {
	var req bookGameRoomReq
	if ok, err := bindAndValidate(c, &req, missingFields); !ok {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.games.Create(ctx, uint64(req.UserID), strings.TrimSpace(req.SlotTime))
	if err != nil {
		h.log.Error("book game room", zap.Uint64("user_id", uint64(req.UserID)), zap.Error(err))
		return message(c, http.StatusInternalServerError, "Error booking game room")
	}
	return c.JSON(http.StatusCreated, echo.Map{"booking": b})
}

func (h *BookingHandler) BookCinemaRoom(c echo.Context) error {
	var req bookCinemaRoomReq
	if ok, err := bindAndValidate(c, &req, missingFields); !ok {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.cinemas.Create(ctx, uint64(req.UserID), req.Slots)
	if err != nil {
		h.log.Error("book cinema room", zap.Uint64("user_id", uint64(req.UserID)), zap.Error(err))
		return message(c, http.StatusInternalServerError, "Error booking cinema room")
	}
	return c.JSON(http.StatusCreated, echo.Map{"booking": b})
}

// BookedSlots, GameBookedSlots and CinemaBookedSlots list every slot ever
// stored for ?room=, whatever its status or owner.
func (h *BookingHandler) BookedSlots(c echo.Context) error {
	return h.bookedSlots(c, h.bookings.BookedSlots)
}

func (h *BookingHandler) GameBookedSlots(c echo.Context) error {
	return h.bookedSlots(c, h.games.BookedSlots)
}

func (h *BookingHandler) CinemaBookedSlots(c echo.Context) error {
	return h.bookedSlots(c, h.cinemas.BookedSlots)
}

func (h *BookingHandler) bookedSlots(c echo.Context, list func(context.Context, string) ([]string, error)) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room := c.QueryParam("room")
	slots, err := list(ctx, room)
	if err != nil {
		h.log.Error("booked slots", zap.String("room", room), zap.String("path", c.Path()), zap.Error(err))
		return message(c, http.StatusInternalServerError, "Error fetching booked slots")
	}
	return c.JSON(http.StatusOK, slots)
}

// UserBookings returns the booking history of ?userId= across all kinds.
func (h *BookingHandler) UserBookings(c echo.Context) error {
	raw := strings.TrimSpace(c.QueryParam("userId"))
	if raw == "" {
		return message(c, http.StatusBadRequest, "User ID is required")
	}
	userID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || userID == 0 {
		return message(c, http.StatusBadRequest, "Invalid user ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.bookings.ListByUser(ctx, userID)
	if err != nil {
		h.log.Error("user bookings", zap.Uint64("user_id", userID), zap.Error(err))
		return message(c, http.StatusInternalServerError, "Error fetching booking history")
	}
	return c.JSON(http.StatusOK, list)
}
