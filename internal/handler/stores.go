package handler

//go:generate mockgen -source=stores.go -destination=mocks/stores.go -package=mocks

import (
	"context"

	"github.com/iliyamo/room-booking/internal/model"
	"github.com/iliyamo/room-booking/internal/queue"
)

// UserStore is the credential store used by the auth endpoints.
type UserStore interface {
	Create(ctx context.Context, u model.User) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// BookingStore covers generic bookings and the per-user history.
type BookingStore interface {
	Create(ctx context.Context, userID uint64, room string, slots []string) (model.Booking, error)
	BookedSlots(ctx context.Context, room string) ([]string, error)
	ListPending(ctx context.Context) ([]model.Booking, error)
	ListAll(ctx context.Context) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id uint64, status model.Status) (*model.Booking, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.UserBooking, error)
}

type GameRoomStore interface {
	Create(ctx context.Context, userID uint64, slot string) (model.GameRoomBooking, error)
	BookedSlots(ctx context.Context, room string) ([]string, error)
}

type CinemaRoomStore interface {
	Create(ctx context.Context, userID uint64, slots []string) (model.CinemaRoomBooking, error)
	BookedSlots(ctx context.Context, room string) ([]string, error)
}

// EventPublisher announces booking status changes.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, ev queue.BookingStatusChanged) error
}

// Pinger reports whether the database answers.
type Pinger interface {
	PingContext(ctx context.Context) error
}
