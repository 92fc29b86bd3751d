package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/iliyamo/room-booking/internal/handler"
	"github.com/iliyamo/room-booking/internal/handler/mocks"
)

func TestHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mocks.NewMockPinger(ctrl)

	e := newEcho()
	e.GET("/healthz", handler.Health(db))

	db.EXPECT().PingContext(gomock.Any()).Return(nil)
	rec := performRequest(t, e, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	db.EXPECT().PingContext(gomock.Any()).Return(errors.New("down"))
	rec = performRequest(t, e, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
