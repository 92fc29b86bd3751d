package repository

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/model"
)

// CinemaRoomRepo stores cinema room bookings.
type CinemaRoomRepo struct {
	db  *sql.DB
	log *zap.Logger
}

func NewCinemaRoomRepo(db *sql.DB, log *zap.Logger) *CinemaRoomRepo {
	return &CinemaRoomRepo{db: db, log: log}
}

// Create always books the "Cinema Room".
func (r *CinemaRoomRepo) Create(ctx context.Context, userID uint64, slots []string) (model.CinemaRoomBooking, error) {
	raw, err := EncodeSlots(slots)
	if err != nil {
		return model.CinemaRoomBooking{}, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO cinema_room_bookings (user_id, room, slot_time, created_at) VALUES (?, ?, ?, UTC_TIMESTAMP(6))",
		userID, model.CinemaRoomLabel, raw)
	if err != nil {
		return model.CinemaRoomBooking{}, errors.Wrap(err, "insert cinema room booking")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.CinemaRoomBooking{}, errors.Wrap(err, "cinema room last insert id")
	}

	var b model.CinemaRoomBooking
	err = r.db.QueryRowContext(ctx,
		"SELECT id, user_id, room, slot_time, created_at FROM cinema_room_bookings WHERE id = ?", id).
		Scan(&b.ID, &b.UserID, &b.Room, &raw, &b.CreatedAt)
	if err != nil {
		return model.CinemaRoomBooking{}, errors.Wrap(err, "select cinema room booking")
	}
	b.SlotTime = decodeRow(r.log, "cinema_room_bookings", b.ID, raw, DecodeSlots)
	return b, nil
}

func (r *CinemaRoomRepo) BookedSlots(ctx context.Context, room string) ([]string, error) {
	return bookedSlots(ctx, r.db, r.log, "cinema_room_bookings", room, DecodeSlots)
}
