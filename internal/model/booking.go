package model

import "time"

// Status is the lifecycle state of a generic booking.  Game-room and
// cinema-room bookings have no status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

// Kind identifies which of the three booking tables a row came from.
type Kind string

const (
	KindGeneric Kind = "booking"
	KindGame    Kind = "game"
	KindCinema  Kind = "cinema"
)

// Room labels for the specialised booking tables.
const (
	GameRoomLabel   = "Game Room"
	CinemaRoomLabel = "Cinema Room"
)

// Booking mirrors the `bookings` table.  SlotTime is stored as JSON text and
// decoded by the repository.
type Booking struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Room      string    `json:"room"`
	SlotTime  []string  `json:"slot_time"`
	CreatedAt time.Time `json:"created_at"`
	Status    Status    `json:"status"`
}

// GameRoomBooking mirrors `game_room_bookings`.  A game booking holds a
// single slot value.
type GameRoomBooking struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Room      string    `json:"room"`
	SlotTime  string    `json:"slot_time"`
	CreatedAt time.Time `json:"created_at"`
}

// CinemaRoomBooking mirrors `cinema_room_bookings`.
type CinemaRoomBooking struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Room      string    `json:"room"`
	SlotTime  []string  `json:"slot_time"`
	CreatedAt time.Time `json:"created_at"`
}

// UserBooking is one entry of a user's booking history across all three
// tables.  Status is only set for generic bookings.
type UserBooking struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Kind      Kind      `json:"kind"`
	Room      string    `json:"room"`
	SlotTime  []string  `json:"slot_time"`
	CreatedAt time.Time `json:"created_at"`
	Status    *Status   `json:"status,omitempty"`
}
