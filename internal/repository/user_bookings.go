package repository

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"

	"github.com/iliyamo/room-booking/internal/model"
)

// The specialised tables get a synthesized room label so that every entry of
// the history can be displayed the same way.
const userBookingsQuery = `
SELECT id, user_id, 'booking' AS kind, room, slot_time, created_at, status
  FROM bookings WHERE user_id = ?
UNION ALL
SELECT id, user_id, 'game' AS kind, 'Game Room' AS room, slot_time, created_at, NULL AS status
  FROM game_room_bookings WHERE user_id = ?
UNION ALL
SELECT id, user_id, 'cinema' AS kind, 'Cinema Room' AS room, slot_time, created_at, NULL AS status
  FROM cinema_room_bookings WHERE user_id = ?
ORDER BY created_at DESC, id DESC`

// ListByUser returns the bookings of all three kinds made by userID, newest
// first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.UserBooking, error) {
	rows, err := r.db.QueryContext(ctx, userBookingsQuery, userID, userID, userID)
	if err != nil {
		return nil, errors.Wrap(err, "select user bookings")
	}
	defer rows.Close()

	out := []model.UserBooking{}
	for rows.Next() {
		var (
			b      model.UserBooking
			kind   string
			raw    string
			status sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.UserID, &kind, &b.Room, &raw, &b.CreatedAt, &status); err != nil {
			return nil, errors.Wrap(err, "scan user booking")
		}
		b.Kind = model.Kind(kind)
		switch b.Kind {
		case model.KindGame:
			b.SlotTime = decodeRow(r.log, "game_room_bookings", b.ID, raw, DecodeGameSlot)
		case model.KindCinema:
			b.SlotTime = decodeRow(r.log, "cinema_room_bookings", b.ID, raw, DecodeSlots)
		default:
			b.SlotTime = decodeRow(r.log, "bookings", b.ID, raw, DecodeSlots)
		}
		if status.Valid {
			s := model.Status(status.String)
			b.Status = &s
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate user bookings")
	}
	return out, nil
}
