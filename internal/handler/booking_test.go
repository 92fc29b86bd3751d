package handler_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/handler"
	"github.com/iliyamo/room-booking/internal/handler/mocks"
	"github.com/iliyamo/room-booking/internal/model"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	e        *echo.Echo
	mockCtrl *gomock.Controller
	bookings *mocks.MockBookingStore
	games    *mocks.MockGameRoomStore
	cinemas  *mocks.MockCinemaRoomStore
	at       time.Time
}

func (s *BookingHandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.bookings = mocks.NewMockBookingStore(s.mockCtrl)
	s.games = mocks.NewMockGameRoomStore(s.mockCtrl)
	s.cinemas = mocks.NewMockCinemaRoomStore(s.mockCtrl)
	s.at = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	h := handler.NewBookingHandler(s.bookings, s.games, s.cinemas, zap.NewNop())
	s.e = newEcho()
	s.e.POST("/book-room", h.BookRoom)
	s.e.GET("/book-room/booked-slots", h.BookedSlots)
	s.e.POST("/game-room/book", h.BookGameRoom)
	s.e.GET("/game-room/booked-slots", h.GameBookedSlots)
	s.e.POST("/cinema-room/book", h.BookCinemaRoom)
	s.e.GET("/cinema-room/booked-slots", h.CinemaBookedSlots)
	s.e.GET("/get-bookings", h.UserBookings)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestBookRoom() {
	s.Run("success: 201 with the stored row", func() {
		stored := model.Booking{ID: 4, UserID: 5, Room: "Room A", SlotTime: []string{"09:00", "10:00"}, CreatedAt: s.at, Status: model.StatusPending}
		s.bookings.EXPECT().Create(gomock.Any(), uint64(5), "Room A", []string{"09:00", "10:00"}).Return(stored, nil)

		rec := performRequest(s.T(), s.e, http.MethodPost, "/book-room",
			map[string]any{"userId": "5", "room": "Room A", "slots": []string{"09:00", "10:00"}})
		s.Require().Equal(http.StatusCreated, rec.Code)
		resp := decode[map[string]model.Booking](s.T(), rec)
		s.Equal(stored, resp["booking"])
	})

	s.Run("error: 400 on missing fields", func() {
		cases := []map[string]any{
			{"room": "Room A", "slots": []string{"09:00"}},
			{"userId": 5, "slots": []string{"09:00"}},
			{"userId": 5, "room": "Room A"},
			{"userId": 5, "room": "Room A", "slots": []string{}},
			{"userId": 5, "room": "Room A", "slots": []string{""}},
		}
		for _, tc := range cases {
			rec := performRequest(s.T(), s.e, http.MethodPost, "/book-room", tc)
			assertMessage(s.T(), rec, http.StatusBadRequest, "Missing required fields")
		}
	})

	s.Run("error: 500 on store failure", func() {
		s.bookings.EXPECT().Create(gomock.Any(), uint64(5), "Room A", gomock.Any()).Return(model.Booking{}, errors.New("fk"))

		rec := performRequest(s.T(), s.e, http.MethodPost, "/book-room",
			map[string]any{"userId": 5, "room": "Room A", "slots": []string{"09:00"}})
		assertMessage(s.T(), rec, http.StatusInternalServerError, "Error booking the room")
	})
}

func (s *BookingHandlerTestSuite) TestBookGameRoom() {
	s.Run("success: single slot value", func() {
		stored := model.GameRoomBooking{ID: 2, UserID: 5, Room: model.GameRoomLabel, SlotTime: "18:00", CreatedAt: s.at}
		s.games.EXPECT().Create(gomock.Any(), uint64(5), "18:00").Return(stored, nil)

		rec := performRequest(s.T(), s.e, http.MethodPost, "/game-room/book", map[string]any{"user_id": 5, "slot_time": "18:00"})
		s.Require().Equal(http.StatusCreated, rec.Code)
		resp := decode[map[string]model.GameRoomBooking](s.T(), rec)
		s.Equal(stored, resp["booking"])
	})

	s.Run("error: 400 on missing fields", func() {
		rec := performRequest(s.T(), s.e, http.MethodPost, "/game-room/book", map[string]any{"user_id": 5})
		assertMessage(s.T(), rec, http.StatusBadRequest, "Missing required fields")
	})

	s.Run("error: 500 on store failure", func() {
		s.games.EXPECT().Create(gomock.Any(), uint64(5), "18:00").Return(model.GameRoomBooking{}, errors.New("db"))

		rec := performRequest(s.T(), s.e, http.MethodPost, "/game-room/book", map[string]any{"user_id": 5, "slot_time": "18:00"})
		assertMessage(s.T(), rec, http.StatusInternalServerError, "Error booking game room")
	})
}

func (s *BookingHandlerTestSuite) TestBookCinemaRoom() {
	s.Run("success", func() {
		stored := model.CinemaRoomBooking{ID: 3, UserID: 5, Room: model.CinemaRoomLabel, SlotTime: []string{"20:00"}, CreatedAt: s.at}
		s.cinemas.EXPECT().Create(gomock.Any(), uint64(5), []string{"20:00"}).Return(stored, nil)

		rec := performRequest(s.T(), s.e, http.MethodPost, "/cinema-room/book", map[string]any{"userId": 5, "slots": []string{"20:00"}})
		s.Require().Equal(http.StatusCreated, rec.Code)
		resp := decode[map[string]model.CinemaRoomBooking](s.T(), rec)
		s.Equal(stored, resp["booking"])
	})

	s.Run("success with empty slots", func() {
		stored := model.CinemaRoomBooking{ID: 4, UserID: 5, Room: model.CinemaRoomLabel, SlotTime: []string{}, CreatedAt: s.at}
		s.cinemas.EXPECT().Create(gomock.Any(), uint64(5), []string{}).Return(stored, nil)

		rec := performRequest(s.T(), s.e, http.MethodPost, "/cinema-room/book", map[string]any{"userId": 5, "slots": []string{}})
		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
		s.JSONEq(`[]`, mustField(s.T(), rec, "booking", "slot_time"))
	})

	s.Run("error: 400 on missing slots", func() {
		rec := performRequest(s.T(), s.e, http.MethodPost, "/cinema-room/book", map[string]any{"userId": 5})
		assertMessage(s.T(), rec, http.StatusBadRequest, "Missing required fields")
	})

	s.Run("error: 500 on store failure", func() {
		s.cinemas.EXPECT().Create(gomock.Any(), uint64(5), gomock.Any()).Return(model.CinemaRoomBooking{}, errors.New("db"))

		rec := performRequest(s.T(), s.e, http.MethodPost, "/cinema-room/book", map[string]any{"userId": 5, "slots": []string{"20:00"}})
		assertMessage(s.T(), rec, http.StatusInternalServerError, "Error booking cinema room")
	})
}

func (s *BookingHandlerTestSuite) TestBookedSlots() {
	s.Run("generic", func() {
		s.bookings.EXPECT().BookedSlots(gomock.Any(), "Room A").Return([]string{"09:00", "10:00"}, nil)

		rec := performRequest(s.T(), s.e, http.MethodGet, "/book-room/booked-slots?room=Room%20A", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Equal([]string{"09:00", "10:00"}, decode[[]string](s.T(), rec))
	})

	s.Run("game", func() {
		s.games.EXPECT().BookedSlots(gomock.Any(), "Game Room").Return([]string{"18:00"}, nil)

		rec := performRequest(s.T(), s.e, http.MethodGet, "/game-room/booked-slots?room=Game%20Room", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Equal([]string{"18:00"}, decode[[]string](s.T(), rec))
	})

	s.Run("cinema empty list encodes as []", func() {
		s.cinemas.EXPECT().BookedSlots(gomock.Any(), "Cinema Room").Return([]string{}, nil)

		rec := performRequest(s.T(), s.e, http.MethodGet, "/cinema-room/booked-slots?room=Cinema%20Room", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.JSONEq(`[]`, rec.Body.String())
	})

	s.Run("error: 500 on store failure", func() {
		s.bookings.EXPECT().BookedSlots(gomock.Any(), "Room A").Return(nil, errors.New("db"))

		rec := performRequest(s.T(), s.e, http.MethodGet, "/book-room/booked-slots?room=Room%20A", nil)
		assertMessage(s.T(), rec, http.StatusInternalServerError, "Error fetching booked slots")
	})
}

func (s *BookingHandlerTestSuite) TestUserBookings() {
	s.Run("success: three kinds newest first", func() {
		pending := model.StatusPending
		list := []model.UserBooking{
			{ID: 4, UserID: 7, Kind: model.KindCinema, Room: model.CinemaRoomLabel, SlotTime: []string{"20:00"}, CreatedAt: s.at.Add(2 * time.Hour)},
			{ID: 9, UserID: 7, Kind: model.KindGame, Room: model.GameRoomLabel, SlotTime: []string{"18:00"}, CreatedAt: s.at.Add(time.Hour)},
			{ID: 2, UserID: 7, Kind: model.KindGeneric, Room: "Room A", SlotTime: []string{"09:00"}, CreatedAt: s.at, Status: &pending},
		}
		s.bookings.EXPECT().ListByUser(gomock.Any(), uint64(7)).Return(list, nil)

		rec := performRequest(s.T(), s.e, http.MethodGet, "/get-bookings?userId=7", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		got := decode[[]model.UserBooking](s.T(), rec)
		s.Equal(list, got)
	})

	s.Run("error: 400 without userId", func() {
		rec := performRequest(s.T(), s.e, http.MethodGet, "/get-bookings", nil)
		assertMessage(s.T(), rec, http.StatusBadRequest, "User ID is required")
	})

	s.Run("error: 400 on non-numeric userId", func() {
		rec := performRequest(s.T(), s.e, http.MethodGet, "/get-bookings?userId=abc", nil)
		assertMessage(s.T(), rec, http.StatusBadRequest, "Invalid user ID")
	})

	s.Run("error: 500 on store failure", func() {
		s.bookings.EXPECT().ListByUser(gomock.Any(), uint64(7)).Return(nil, errors.New("db"))

		rec := performRequest(s.T(), s.e, http.MethodGet, "/get-bookings?userId=7", nil)
		assertMessage(s.T(), rec, http.StatusInternalServerError, "Error fetching booking history")
	})
}
