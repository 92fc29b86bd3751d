// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// BookingStatusChanged is published when an admin confirms or rejects a
// generic booking.  It carries enough of the booking for downstream consumers
// to log or notify without querying the primary database.
type BookingStatusChanged struct {
	BookingID uint64   `json:"booking_id"`
	UserID    uint64   `json:"user_id"`
	Room      string   `json:"room"`
	Slots     []string `json:"slots"`
	Status    string   `json:"status"`
	ChangedAt string   `json:"changed_at"`
}
