package repository

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/model"
)

// BookingRepo stores generic bookings, the only kind that carries a status.
type BookingRepo struct {
	db  *sql.DB
	log *zap.Logger
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB, log *zap.Logger) *BookingRepo {
	return &BookingRepo{db: db, log: log}
}

const bookingColumns = "id, user_id, room, slot_time, created_at, status"

// Create inserts a pending booking and reads the stored row back.
func (r *BookingRepo) Create(ctx context.Context, userID uint64, room string, slots []string) (model.Booking, error) {
	raw, err := EncodeSlots(slots)
	if err != nil {
		return model.Booking{}, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO bookings (user_id, room, slot_time, created_at, status) VALUES (?, ?, ?, UTC_TIMESTAMP(6), ?)",
		userID, room, raw, string(model.StatusPending))
	if err != nil {
		return model.Booking{}, errors.Wrap(err, "insert booking")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Booking{}, errors.Wrap(err, "booking last insert id")
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID returns ErrBookingNotFound when id does not exist.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE id = ?", id)
	if err != nil {
		return model.Booking{}, errors.Wrap(err, "select booking")
	}
	list, err := r.scan(rows)
	if err != nil {
		return model.Booking{}, err
	}
	if len(list) == 0 {
		return model.Booking{}, ErrBookingNotFound
	}
	return list[0], nil
}

// BookedSlots returns every slot stored for room, whatever its status.
func (r *BookingRepo) BookedSlots(ctx context.Context, room string) ([]string, error) {
	return bookedSlots(ctx, r.db, r.log, "bookings", room, DecodeSlots)
}

// ListPending returns pending bookings, newest first.
func (r *BookingRepo) ListPending(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE status = ? ORDER BY created_at DESC, id DESC",
		string(model.StatusPending))
	if err != nil {
		return nil, errors.Wrap(err, "select pending bookings")
	}
	return r.scan(rows)
}

// ListAll returns every booking, newest first.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, errors.Wrap(err, "select bookings")
	}
	return r.scan(rows)
}

// UpdateStatus sets the status of booking id and returns the updated row.
// The current status is not checked, so a confirmed booking can still be
// rejected and the other way round.  A missing id yields (nil, nil).
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status model.Status) (*model.Booking, error) {
	if _, err := r.db.ExecContext(ctx, "UPDATE bookings SET status = ? WHERE id = ?", string(status), id); err != nil {
		return nil, errors.Wrapf(err, "update booking %d", id)
	}
	b, err := r.GetByID(ctx, id)
	if errors.Is(err, ErrBookingNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) scan(rows *sql.Rows) ([]model.Booking, error) {
	defer rows.Close()
	out := []model.Booking{}
	for rows.Next() {
		var (
			b      model.Booking
			raw    string
			status string
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.Room, &raw, &b.CreatedAt, &status); err != nil {
			return nil, errors.Wrap(err, "scan booking")
		}
		b.Status = model.Status(status)
		b.SlotTime = decodeRow(r.log, "bookings", b.ID, raw, DecodeSlots)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate bookings")
	}
	return out, nil
}

// decodeRow decodes one stored slot_time value; malformed text is logged and
// contributes nothing.
func decodeRow(log *zap.Logger, table string, id uint64, raw string, decode func(string) ([]string, error)) []string {
	slots, err := decode(raw)
	if err != nil {
		log.Warn("invalid slot_time", zap.String("table", table), zap.Uint64("id", id), zap.Error(err))
	}
	return slots
}

// bookedSlots flattens the slot_time of every row of table booked for room.
func bookedSlots(ctx context.Context, db *sql.DB, log *zap.Logger, table, room string, decode func(string) ([]string, error)) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, slot_time FROM "+table+" WHERE room = ? ORDER BY id", room)
	if err != nil {
		return nil, errors.Wrapf(err, "select %s slots", table)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var (
			id  uint64
			raw string
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, errors.Wrapf(err, "scan %s slots", table)
		}
		out = append(out, decodeRow(log, table, id, raw, decode)...)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterate %s slots", table)
	}
	return out, nil
}
