package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/model"
	"github.com/iliyamo/room-booking/internal/queue"
)

// AdminHandler serves the admin-only booking endpoints.  Routes must be
// wrapped by JWTAuth and RequireAdmin.
type AdminHandler struct {
	bookings BookingStore
	events   EventPublisher
	log      *zap.Logger
}

func NewAdminHandler(b BookingStore, events EventPublisher, log *zap.Logger) *AdminHandler {
	return &AdminHandler{bookings: b, events: events, log: log}
}

type bookingIDReq struct {
	BookingID model.ID `json:"bookingId" validate:"required"`
}

func (h *AdminHandler) PendingBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.bookings.ListPending(ctx)
	if err != nil {
		h.log.Error("pending bookings", zap.Error(err))
		return message(c, http.StatusInternalServerError, "Error fetching pending bookings")
	}
	return c.JSON(http.StatusOK, list)
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.bookings.ListAll(ctx)
	if err != nil {
		h.log.Error("admin dashboard", zap.Error(err))
		return message(c, http.StatusInternalServerError, "Error fetching admin data")
	}
	return c.JSON(http.StatusOK, list)
}

func (h *AdminHandler) ConfirmBooking(c echo.Context) error {
	return h.setStatus(c, model.StatusConfirmed, "Booking confirmed", "Error confirming booking")
}

func (h *AdminHandler) RejectBooking(c echo.Context) error {
	return h.setStatus(c, model.StatusRejected, "Booking rejected", "Error rejecting booking")
}

// setStatus applies status without looking at the current one.  An unknown
// id answers 200 with a null booking.
func (h *AdminHandler) setStatus(c echo.Context, status model.Status, okMsg, failMsg string) error {
	var req bookingIDReq
	if ok, err := bindAndValidate(c, &req, "Booking ID is required"); !ok {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.bookings.UpdateStatus(ctx, uint64(req.BookingID), status)
	if err != nil {
		h.log.Error("update booking status",
			zap.Uint64("booking_id", uint64(req.BookingID)), zap.String("status", string(status)), zap.Error(err))
		return message(c, http.StatusInternalServerError, failMsg)
	}
	if b != nil {
		h.publish(ctx, *b)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": okMsg, "booking": b})
}

// publish is best effort; the status change is already committed.
func (h *AdminHandler) publish(ctx context.Context, b model.Booking) {
	ev := queue.BookingStatusChanged{
		BookingID: b.ID,
		UserID:    b.UserID,
		Room:      b.Room,
		Slots:     b.SlotTime,
		Status:    string(b.Status),
		ChangedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.events.PublishStatusChanged(ctx, ev); err != nil {
		h.log.Warn("publish booking status event", zap.Uint64("booking_id", b.ID), zap.Error(err))
	}
}
