//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"court-booking/internal/domain/booking"
	reqdto "court-booking/internal/handler/dto/request"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/mock/storemock"
	"court-booking/tests/mock/uowmock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// 10:00 in Moscow
var bookingNow = time.Date(2030, 5, 10, 7, 0, 0, 0, time.UTC)

func civilAt(hour, minute int) time.Time {
	return time.Date(2030, 5, 10, hour, minute, 0, 0, time.UTC)
}

type BookingCommandsTestSuite struct {
	suite.Suite
	uow       *uowmock.UoW
	readStore *storemock.MockBookingReadStore
	commands  commands.BookingCommands
	courtID   uuid.UUID
	actor     shared.Actor
	admin     shared.Actor
}

func (s *BookingCommandsTestSuite) SetupSubTest() {
	loc, err := time.LoadLocation("Europe/Moscow")
	s.Require().NoError(err)

	s.uow = uowmock.New()
	s.readStore = &storemock.MockBookingReadStore{}
	services := &booking.Services{
		Clock:           clock.NewMockClock(bookingNow),
		Civil:           clock.NewCivil(loc),
		PriceCalculator: booking.NewDefaultPriceCalculator(100000),
	}
	s.commands = commands.NewBookingCommands(s.uow, services, s.readStore)
	s.courtID = uuid.New()
	s.actor = shared.Actor{ID: uuid.New(), Role: "user"}
	s.admin = shared.Actor{ID: uuid.New(), Role: "admin"}
}

func (s *BookingCommandsTestSuite) TearDownSubTest() {
	s.uow.AssertExpectations(s.T())
	s.readStore.AssertExpectations(s.T())
}

func TestBookingCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) request(start, end string) reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{CourtID: s.courtID, StartTime: start, EndTime: end}
}

func (s *BookingCommandsTestSuite) expectFreeCourt(start, end time.Time) {
	s.uow.Bookings.On("LockCourt", mock.Anything, s.courtID).Return(nil).Once()
	s.uow.Bookings.On("FindOverlapping", mock.Anything, s.courtID, start, end, booking.StatusActive).
		Return([]booking.TimeSlot(nil), nil).Once()
}

func (s *BookingCommandsTestSuite) TestCreateBooking() {
	s.Run("正常系: 空き枠の予約が作成される", func() {
		start, end := civilAt(14, 0), civilAt(15, 0)
		s.expectFreeCourt(start, end)

		var inserted *booking.Booking
		s.uow.Bookings.On("Insert", mock.Anything, mock.AnythingOfType("*booking.Booking")).
			Run(func(args mock.Arguments) { inserted = args.Get(1).(*booking.Booking) }).
			Return(nil, nil).Once()
		s.readStore.On("FindByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
			Return(&queries.BookingView{CourtID: s.courtID, StartTime: start, EndTime: end, Status: "active"}, nil).Once()

		view, err := s.commands.CreateBooking(context.Background(), s.request("2030-05-10T14:00:00", "2030-05-10T15:00:00"), s.actor)

		s.Require().NoError(err)
		s.Equal("active", view.Status)
		s.Require().NotNil(inserted)
		s.Equal(s.actor.ID, inserted.UserID())
		s.Equal(int64(100000), inserted.Price().Cents())
		s.Equal(1, s.uow.Calls)
	})

	s.Run("正常系: オフセット付きの時刻は営業タイムゾーンに変換される", func() {
		start, end := civilAt(14, 0), civilAt(15, 30)
		s.expectFreeCourt(start, end)
		s.uow.Bookings.On("Insert", mock.Anything, mock.Anything).Return(nil, nil).Once()
		s.readStore.On("FindByID", mock.Anything, mock.Anything).Return(&queries.BookingView{}, nil).Once()

		_, err := s.commands.CreateBooking(context.Background(), s.request("2030-05-10T11:00:00Z", "2030-05-10T15:30:00+03:00"), s.actor)

		s.Require().NoError(err)
	})

	s.Run("正常系: 管理者は他ユーザーの代理で予約できる", func() {
		owner := uuid.New()
		s.expectFreeCourt(civilAt(14, 0), civilAt(15, 0))
		s.uow.Bookings.On("Insert", mock.Anything, mock.MatchedBy(func(b *booking.Booking) bool {
			return b.UserID() == owner
		})).Return(nil, nil).Once()
		s.readStore.On("FindByID", mock.Anything, mock.Anything).Return(&queries.BookingView{UserID: owner}, nil).Once()

		req := s.request("2030-05-10T14:00", "2030-05-10T15:00")
		req.UserID = &owner
		view, err := s.commands.CreateBooking(context.Background(), req, s.admin)

		s.Require().NoError(err)
		s.Equal(owner, view.UserID)
	})

	s.Run("正常系: 明示した価格が優先される", func() {
		price := int64(0)
		s.expectFreeCourt(civilAt(14, 0), civilAt(15, 0))
		s.uow.Bookings.On("Insert", mock.Anything, mock.MatchedBy(func(b *booking.Booking) bool {
			return b.Price().Cents() == 0
		})).Return(nil, nil).Once()
		s.readStore.On("FindByID", mock.Anything, mock.Anything).Return(&queries.BookingView{}, nil).Once()

		req := s.request("2030-05-10T14:00", "2030-05-10T15:00")
		req.PriceCents = &price
		_, err := s.commands.CreateBooking(context.Background(), req, s.actor)

		s.Require().NoError(err)
	})
}

func (s *BookingCommandsTestSuite) TestCreateBooking_Validation() {
	cases := []struct {
		name       string
		start, end string
		want       error
	}{
		{name: "不正な日時文字列", start: "tomorrow", end: "2030-05-10T15:00", want: commands.ErrMalformedDateTime},
		{name: "終了日時が不正", start: "2030-05-10T14:00", end: "", want: commands.ErrMalformedDateTime},
		{name: "日付を跨ぐ予約", start: "2030-05-10T23:00", end: "2030-05-11T01:00", want: booking.ErrOvernightBooking},
		{name: "過去かつ日跨ぎは日跨ぎが優先", start: "2030-05-09T23:00", end: "2030-05-10T01:00", want: booking.ErrOvernightBooking},
		{name: "開始が現在時刻ちょうど", start: "2030-05-10T10:00", end: "2030-05-10T11:00", want: booking.ErrStartNotInFuture},
		{name: "過去かつ逆転は過去が優先", start: "2030-05-10T09:00", end: "2030-05-10T08:00", want: booking.ErrStartNotInFuture},
		{name: "終了が開始より前", start: "2030-05-10T15:00", end: "2030-05-10T14:00", want: booking.ErrInvertedInterval},
		{name: "長さゼロ", start: "2030-05-10T15:00", end: "2030-05-10T15:00", want: booking.ErrInvertedInterval},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.commands.CreateBooking(context.Background(), s.request(tc.start, tc.end), s.actor)

			s.Require().Error(err)
			s.True(errs.Is(err, tc.want), "want %v, got %v", tc.want, err)
			s.Equal(errs.CategoryValidation, errs.CategoryOf(err))
			s.Zero(s.uow.Calls)
		})
	}
}

func (s *BookingCommandsTestSuite) TestCreateBooking_Failures() {
	s.Run("異常系: 既存予約と重なると競合", func() {
		occupied, err := booking.NewTimeSlot(civilAt(14, 30), civilAt(15, 30))
		s.Require().NoError(err)
		s.uow.Bookings.On("LockCourt", mock.Anything, s.courtID).Return(nil).Once()
		s.uow.Bookings.On("FindOverlapping", mock.Anything, s.courtID, civilAt(14, 0), civilAt(15, 0), booking.StatusActive).
			Return([]booking.TimeSlot{occupied}, nil).Once()

		_, err = s.commands.CreateBooking(context.Background(), s.request("2030-05-10T14:00", "2030-05-10T15:00"), s.actor)

		s.Require().Error(err)
		s.True(errs.Is(err, commands.ErrBookingConflict))
		s.True(errs.Is(err, booking.ErrSlotOccupied))
		s.Equal(errs.CategoryConflict, errs.CategoryOf(err))
		s.uow.Bookings.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything)
	})

	s.Run("異常系: 排他制約違反も同じ競合として扱う", func() {
		s.expectFreeCourt(civilAt(14, 0), civilAt(15, 0))
		s.uow.Bookings.On("Insert", mock.Anything, mock.Anything).
			Return(nil, infra.WrapRepoErr("insert booking", &pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"})).Once()

		_, err := s.commands.CreateBooking(context.Background(), s.request("2030-05-10T14:00", "2030-05-10T15:00"), s.actor)

		s.Require().Error(err)
		s.True(errs.Is(err, commands.ErrBookingConflict))
		s.Equal(errs.CategoryConflict, errs.CategoryOf(err))
	})

	s.Run("異常系: 存在しないコート", func() {
		s.uow.Bookings.On("LockCourt", mock.Anything, s.courtID).Return(infra.WrapRepoErr("lock court", pgx.ErrNoRows)).Once()

		_, err := s.commands.CreateBooking(context.Background(), s.request("2030-05-10T14:00", "2030-05-10T15:00"), s.actor)

		s.Require().Error(err)
		s.True(errs.Is(err, commands.ErrCourtNotFound))
		s.Equal(errs.CategoryNotFound, errs.CategoryOf(err))
	})

	s.Run("異常系: 一般ユーザーは代理予約できない", func() {
		other := uuid.New()
		req := s.request("2030-05-10T14:00", "2030-05-10T15:00")
		req.UserID = &other

		_, err := s.commands.CreateBooking(context.Background(), req, s.actor)

		s.Require().Error(err)
		s.Equal(errs.CategoryForbidden, errs.CategoryOf(err))
		s.Zero(s.uow.Calls)
	})

	s.Run("異常系: ストレージ障害はインフラエラー", func() {
		s.uow.Bookings.On("LockCourt", mock.Anything, s.courtID).Return(nil).Once()
		s.uow.Bookings.On("FindOverlapping", mock.Anything, s.courtID, mock.Anything, mock.Anything, booking.StatusActive).
			Return(nil, infra.WrapRepoErr("find overlapping", errors.New("connection reset"))).Once()

		_, err := s.commands.CreateBooking(context.Background(), s.request("2030-05-10T14:00", "2030-05-10T15:00"), s.actor)

		s.Require().Error(err)
		s.Equal(errs.CategoryInfrastructure, errs.CategoryOf(err))
	})
}

func (s *BookingCommandsTestSuite) existingBooking(owner uuid.UUID, status booking.Status) *booking.Booking {
	slot, err := booking.NewTimeSlot(civilAt(14, 0), civilAt(15, 0))
	s.Require().NoError(err)
	price, err := booking.NewMoney(100000)
	s.Require().NoError(err)
	return booking.ReconstructBooking(uuid.New(), s.courtID, owner, slot, status, price, bookingNow)
}

func (s *BookingCommandsTestSuite) TestCancelBooking() {
	s.Run("正常系: 所有者がキャンセルできる", func() {
		b := s.existingBooking(s.actor.ID, booking.StatusActive)
		s.uow.Bookings.On("FindByIDForUpdate", mock.Anything, b.ID()).Return(b, nil).Once()
		s.uow.Bookings.On("UpdateStatus", mock.Anything, mock.MatchedBy(func(got *booking.Booking) bool {
			return got.Status() == booking.StatusCanceled
		})).Return(nil).Once()
		s.readStore.On("FindByID", mock.Anything, b.ID()).Return(&queries.BookingView{ID: b.ID(), Status: "canceled"}, nil).Once()

		view, err := s.commands.CancelBooking(context.Background(), b.ID(), s.actor)

		s.Require().NoError(err)
		s.Equal("canceled", view.Status)
	})

	s.Run("正常系: 管理者は他人の予約をキャンセルできる", func() {
		b := s.existingBooking(uuid.New(), booking.StatusActive)
		s.uow.Bookings.On("FindByIDForUpdate", mock.Anything, b.ID()).Return(b, nil).Once()
		s.uow.Bookings.On("UpdateStatus", mock.Anything, b).Return(nil).Once()
		s.readStore.On("FindByID", mock.Anything, b.ID()).Return(&queries.BookingView{ID: b.ID()}, nil).Once()

		_, err := s.commands.CancelBooking(context.Background(), b.ID(), s.admin)

		s.Require().NoError(err)
	})

	s.Run("異常系: 他人の予約は403", func() {
		b := s.existingBooking(uuid.New(), booking.StatusActive)
		s.uow.Bookings.On("FindByIDForUpdate", mock.Anything, b.ID()).Return(b, nil).Once()

		_, err := s.commands.CancelBooking(context.Background(), b.ID(), s.actor)

		s.Require().Error(err)
		s.Equal(errs.CategoryForbidden, errs.CategoryOf(err))
	})

	s.Run("異常系: キャンセル済みは競合", func() {
		b := s.existingBooking(s.actor.ID, booking.StatusCanceled)
		s.uow.Bookings.On("FindByIDForUpdate", mock.Anything, b.ID()).Return(b, nil).Once()

		_, err := s.commands.CancelBooking(context.Background(), b.ID(), s.actor)

		s.Require().Error(err)
		s.True(errs.Is(err, booking.ErrAlreadyCanceled))
		s.Equal(errs.CategoryConflict, errs.CategoryOf(err))
	})

	s.Run("異常系: 存在しない予約", func() {
		id := uuid.New()
		s.uow.Bookings.On("FindByIDForUpdate", mock.Anything, id).Return(nil, infra.WrapRepoErr("find booking", pgx.ErrNoRows)).Once()

		_, err := s.commands.CancelBooking(context.Background(), id, s.actor)

		s.Require().Error(err)
		s.True(errs.Is(err, commands.ErrBookingNotFound))
		s.Equal(errs.CategoryNotFound, errs.CategoryOf(err))
	})
}

func (s *BookingCommandsTestSuite) TestDeleteBooking() {
	s.Run("正常系: 管理者が削除", func() {
		id := uuid.New()
		s.uow.Bookings.On("Delete", mock.Anything, id).Return(nil).Once()

		s.Require().NoError(s.commands.DeleteBooking(context.Background(), id, s.admin))
	})

	s.Run("異常系: 一般ユーザーは削除できない", func() {
		err := s.commands.DeleteBooking(context.Background(), uuid.New(), s.actor)

		s.Require().Error(err)
		s.Equal(errs.CategoryForbidden, errs.CategoryOf(err))
		s.Zero(s.uow.Calls)
	})

	s.Run("異常系: 存在しない予約", func() {
		id := uuid.New()
		s.uow.Bookings.On("Delete", mock.Anything, id).Return(infra.WrapRepoErr("delete booking", pgx.ErrNoRows)).Once()

		err := s.commands.DeleteBooking(context.Background(), id, s.admin)

		require.Error(s.T(), err)
		s.Equal(errs.CategoryNotFound, errs.CategoryOf(err))
	})
}
