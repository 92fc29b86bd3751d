package repository

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/model"
)

// GameRoomRepo stores game room bookings.  The room column is left to its
// schema default.
type GameRoomRepo struct {
	db  *sql.DB
	log *zap.Logger
}

func NewGameRoomRepo(db *sql.DB, log *zap.Logger) *GameRoomRepo {
	return &GameRoomRepo{db: db, log: log}
}

func (r *GameRoomRepo) Create(ctx context.Context, userID uint64, slot string) (model.GameRoomBooking, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO game_room_bookings (user_id, slot_time, created_at) VALUES (?, ?, UTC_TIMESTAMP(6))", userID, slot)
	if err != nil {
		return model.GameRoomBooking{}, errors.Wrap(err, "insert game room booking")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.GameRoomBooking{}, errors.Wrap(err, "game room last insert id")
	}

	var b model.GameRoomBooking
	err = r.db.QueryRowContext(ctx,
		"SELECT id, user_id, room, slot_time, created_at FROM game_room_bookings WHERE id = ?", id).
		Scan(&b.ID, &b.UserID, &b.Room, &b.SlotTime, &b.CreatedAt)
	if err != nil {
		return model.GameRoomBooking{}, errors.Wrap(err, "select game room booking")
	}
	return b, nil
}

func (r *GameRoomRepo) BookedSlots(ctx context.Context, room string) ([]string, error) {
	return bookedSlots(ctx, r.db, r.log, "game_room_bookings", room, DecodeGameSlot)
}
