package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/model"
)

func newMock(t *testing.T) (sqlmock.Sqlmock, func() *UserRepo) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return mock, func() *UserRepo { return NewUserRepo(db, zap.NewNop()) }
}

func TestUserRepoCreate(t *testing.T) {
	mock, repo := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (email, username, password, role) VALUES (?,?,?,?)")).
		WithArgs("a@b.c", "alice", "$2a$hash", model.RoleUser).
		WillReturnResult(sqlmock.NewResult(9, 1))

	id, err := repo().Create(context.Background(), model.User{Email: "a@b.c", Username: "alice", Password: "$2a$hash"})
	require.NoError(t, err)
	assert.Equal(t, uint64(9), id)
}

func TestUserRepoCreateDuplicate(t *testing.T) {
	mock, repo := newMock(t)
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'uq_users_email'"})

	_, err := repo().Create(context.Background(), model.User{Email: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserRepoCreateFailure(t *testing.T) {
	mock, repo := newMock(t)
	mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("connection reset"))

	_, err := repo().Create(context.Background(), model.User{Email: "a@b.c", Password: "x"})
	assert.ErrorContains(t, err, "connection reset")
	assert.NotErrorIs(t, err, ErrEmailExists)
}

func TestUserRepoGetByEmail(t *testing.T) {
	mock, repo := newMock(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, username, password, role, created_at FROM users WHERE email=? LIMIT 1")).
		WithArgs("root@b.c").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "password", "role", "created_at"}).
			AddRow(1, "root@b.c", "root", "$2a$hash", "admin", created))

	u, err := repo().GetByEmail(context.Background(), "root@b.c")
	require.NoError(t, err)
	assert.Equal(t, model.User{ID: 1, Email: "root@b.c", Username: "root", Password: "$2a$hash", Role: "admin", CreatedAt: created}, u)
}

func TestUserRepoGetNotFound(t *testing.T) {
	mock, repo := newMock(t)
	mock.ExpectQuery("FROM users WHERE email=").WithArgs("ghost@b.c").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo().GetByEmail(context.Background(), "ghost@b.c")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
