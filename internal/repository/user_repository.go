package repository

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/model"
)

// mysqlDuplicateEntry is the server error number for a UNIQUE violation.
const mysqlDuplicateEntry = 1062

type UserRepo struct {
	db  *sql.DB
	log *zap.Logger
}

func NewUserRepo(db *sql.DB, log *zap.Logger) *UserRepo { return &UserRepo{db: db, log: log} }

// Create inserts user and returns its ID.  The password field must already
// hold the bcrypt hash.
func (r *UserRepo) Create(ctx context.Context, u model.User) (uint64, error) {
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (email, username, password, role) VALUES (?,?,?,?)",
		u.Email, u.Username, u.Password, u.Role)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return 0, ErrEmailExists
		}
		return 0, errors.Wrap(err, "insert user")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "user last insert id")
	}
	return uint64(id), nil
}

const userColumns = "id, email, username, password, role, created_at"

// GetByEmail fetches a user by email, or ErrUserNotFound.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email).
		Scan(&u.ID, &u.Email, &u.Username, &u.Password, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, errors.Wrap(err, "select user")
	}
	return u, nil
}
