//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/user"
	"court-booking/internal/handler/api"
	reqdto "court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/common/builder"
	"court-booking/tests/common/httptest"
	"court-booking/tests/common/testutil"
	commandsmock "court-booking/tests/mock/commands"
	queriesmock "court-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	member       shared.Actor
	admin        shared.Actor
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.member = shared.Actor{ID: uuid.New(), Role: user.RoleUser}
	s.admin = shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// routerAs mounts the booking routes with the given caller already authenticated.
func (s *BookingHandlerTestSuite) routerAs(actor *shared.Actor) *gin.Engine {
	r := gin.New()
	r.Use(withActor(actor))
	r.POST("/bookings", s.handler.CreateBooking)
	r.GET("/bookings/availability", s.handler.GetAvailability)
	r.GET("/bookings/my", s.handler.GetMyBookings)
	r.GET("/bookings/all", s.handler.GetAllBookings)
	r.GET("/bookings/filter", s.handler.FilterBookings)
	r.GET("/bookings/:id", s.handler.GetBooking)
	r.POST("/bookings/:id/cancel", s.handler.CancelBooking)
	r.DELETE("/bookings/:id", s.handler.DeleteBooking)
	return r
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"
	b := builder.NewBookingBuilder()
	reqBody := b.BuildCreateDTO()
	view := b.BuildView()

	s.Run("success: 201 with civil times and no user name for members", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody, s.member).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.routerAs(&s.member), http.MethodPost, url, reqBody, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("2030-05-10T14:00:00", response.StartTime)
		s.Equal("2030-05-10T15:00:00", response.EndTime)
		s.Equal(int64(100000), response.PriceCents)
		s.Nil(response.UserName)
	})

	s.Run("success: admin sees the owner's name", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody, s.admin).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.routerAs(&s.admin), http.MethodPost, url, reqBody, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Require().NotNil(response.UserName)
		s.Equal("Ivan P.", *response.UserName)
	})

	s.Run("error: 400 on missing fields", func() {
		for _, field := range []string{"court_id", "start_time", "end_time"} {
			s.Run(field, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
				rec := httptest.PerformRequest(s.T(), s.routerAs(&s.member), http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: 500 when no caller is in context", func() {
		rec := httptest.PerformRequest(s.T(), s.routerAs(nil), http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "malformed date-time",
				commandsError:  errs.MarkAll(errors.New("parse"), commands.ErrMalformedDateTime, errs.ErrValidation),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    commands.ErrMalformedDateTime.Error(),
			},
			{
				name:           "overnight booking",
				commandsError:  errs.MarkAll(booking.ErrOvernightBooking, commands.ErrInvalidBooking, errs.ErrValidation),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    booking.ErrOvernightBooking.Error(),
			},
			{
				name:           "start in the past",
				commandsError:  errs.MarkAll(booking.ErrStartNotInFuture, commands.ErrInvalidBooking, errs.ErrValidation),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    booking.ErrStartNotInFuture.Error(),
			},
			{
				name:           "inverted interval",
				commandsError:  errs.MarkAll(booking.ErrInvertedInterval, commands.ErrInvalidBooking, errs.ErrValidation),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    booking.ErrInvertedInterval.Error(),
			},
			{
				name:           "slot occupied",
				commandsError:  errs.MarkAll(booking.ErrSlotOccupied, commands.ErrBookingConflict, errs.ErrConflict),
				expectedStatus: http.StatusConflict,
				expectedMsg:    booking.ErrSlotOccupied.Error(),
			},
			{
				name:           "court not found",
				commandsError:  errs.MarkAll(errors.New("no rows"), commands.ErrCourtNotFound, errs.ErrNotFound),
				expectedStatus: http.StatusNotFound,
				expectedMsg:    commands.ErrCourtNotFound.Error(),
			},
			{
				name:           "booking for someone else",
				commandsError:  errs.MarkAll(errors.New("denied"), commands.ErrBookingAccess, errs.ErrForbidden),
				expectedStatus: http.StatusForbidden,
				expectedMsg:    commands.ErrBookingAccess.Error(),
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody, s.member).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.routerAs(&s.member), http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestGetAvailability() {
	courtID := uuid.New()
	url := "/bookings/availability?court_id=" + courtID.String() + "&date=2030-05-10"
	req := reqdto.AvailabilityRequest{CourtID: courtID.String(), Date: "2030-05-10"}
	name := "Ivan P."
	view := &queries.AvailabilityView{
		CourtID: courtID,
		Date:    "2030-05-10",
		Slots: []queries.SlotView{
			{Start: "08:00", End: "09:00"},
			{Start: "09:00", End: "10:00", IsBooked: true, OccupantName: &name},
		},
	}

	s.Run("success: anonymous caller", func() {
		s.mockQueries.EXPECT().GetAvailability(gomock.Any(), req, gomock.Nil()).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.routerAs(nil), http.MethodGet, url, nil, "")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		if diff := cmp.Diff(view.Slots, response.Slots); diff != "" {
			s.T().Errorf("slots mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("success: admin caller is forwarded", func() {
		s.mockQueries.EXPECT().GetAvailability(gomock.Any(), req, &s.admin).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.routerAs(&s.admin), http.MethodGet, url, nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 without date", func() {
		rec := httptest.PerformRequest(s.T(), s.routerAs(nil), http.MethodGet, "/bookings/availability?court_id="+courtID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 on malformed date", func() {
		s.mockQueries.EXPECT().GetAvailability(gomock.Any(), gomock.Any(), gomock.Nil()).
			Return(nil, errs.MarkAll(errors.New("parse"), queries.ErrMalformedDate, errs.ErrValidation)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.routerAs(nil), http.MethodGet, "/bookings/availability?court_id="+courtID.String()+"&date=10.05.2030", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, queries.ErrMalformedDate.Error())
	})

	s.Run("error: 404 for unknown court", func() {
		s.mockQueries.EXPECT().GetAvailability(gomock.Any(), req, gomock.Nil()).
			Return(nil, errs.MarkAll(errors.New("no rows"), queries.ErrCourtNotFound, errs.ErrNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.routerAs(nil), http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, queries.ErrCourtNotFound.Error())
	})
}

func (s *BookingHandlerTestSuite) TestGetMyBookings() {
	views := []*queries.BookingView{builder.NewBookingBuilder().BuildView()}

	s.Run("success: defaults to the caller", func() {
		s.mockQueries.EXPECT().ListForUser(gomock.Any(), s.member.ID, s.member).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.routerAs(&s.member), http.MethodGet, "/bookings/my", nil, "")

		var response []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("success: admin asks for another user", func() {
		other := uuid.New()
		s.mockQueries.EXPECT().ListForUser(gomock.Any(), other, s.admin).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.routerAs(&s.admin), http.MethodGet, "/bookings/my?user_id="+other.String(), nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 403 when a member asks for another user", func() {
		other := uuid.New()
		s.mockQueries.EXPECT().ListForUser(gomock.Any(), other, s.member).
			Return(nil, errs.MarkAll(errors.New("denied"), queries.ErrBookingAccess, errs.ErrForbidden)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.routerAs(&s.member), http.MethodGet, "/bookings/my?user_id="+other.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 400 on malformed user_id", func() {
		rec := httptest.PerformRequest(s.T(), s.routerAs(&s.member), http.MethodGet, "/bookings/my?user_id=abc", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid user ID format")
	})
}

func (s *BookingHandlerTestSuite) TestAdminListings() {
	views := []*queries.BookingView{
		builder.NewBookingBuilder().BuildView(),
		builder.NewBookingBuilder().Canceled().BuildView(),
	}

	s.Run("all bookings include user names", func() {
		s.mockQueries.EXPECT().ListAll(gomock.Any(), s.admin).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.routerAs(&s.admin), http.MethodGet, "/bookings/all", nil, "")

		var response []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 2)
		s.Require().NotNil(response[0].UserName)
		s.Equal("Ivan P.", *response[0].UserName)
		s.Equal("canceled", response[1].Status)
	})

	s.Run("filter binds repeated user_ids", func() {
		u1, u2 := uuid.New().String(), uuid.New().String()
		from := "2030-05-01"
		expected := reqdto.BookingFilterRequest{DateFrom: &from, UserIDs: []string{u1, u2}}
		s.mockQueries.EXPECT().Filter(gomock.Any(), expected, s.admin).Return(views[:1], nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.routerAs(&s.admin), http.MethodGet,
			"/bookings/filter?date_from=2030-05-01&user_ids="+u1+"&user_ids="+u2, nil, "")

		var response []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	view := builder.NewBookingBuilder().BuildView()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.member).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.routerAs(&s.member), http.MethodGet, "/bookings/"+view.ID.String(), nil, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.routerAs(&s.member), http.MethodGet, "/bookings/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID format")
	})

	s.Run("error: 404", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.member).
			Return(nil, errs.MarkAll(errors.New("no rows"), queries.ErrBookingNotFound, errs.ErrNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.routerAs(&s.member), http.MethodGet, "/bookings/"+view.ID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, queries.ErrBookingNotFound.Error())
	})
}

func (s *BookingHandlerTestSuite) TestCancelAndDelete() {
	view := builder.NewBookingBuilder().Canceled().BuildView()

	s.Run("cancel returns the canceled booking", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), view.ID, s.member).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.routerAs(&s.member), http.MethodPost, "/bookings/"+view.ID.String()+"/cancel", nil, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("canceled", response.Status)
	})

	s.Run("cancel twice is a conflict", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), view.ID, s.member).
			Return(nil, errs.MarkAll(booking.ErrAlreadyCanceled, commands.ErrBookingAlreadyCanceled, errs.ErrConflict)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.routerAs(&s.member), http.MethodPost, "/bookings/"+view.ID.String()+"/cancel", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, booking.ErrAlreadyCanceled.Error())
	})

	s.Run("delete returns 204", func() {
		s.mockCommands.EXPECT().DeleteBooking(gomock.Any(), view.ID, s.admin).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.routerAs(&s.admin), http.MethodDelete, "/bookings/"+view.ID.String(), nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("delete of a missing booking is 404", func() {
		s.mockCommands.EXPECT().DeleteBooking(gomock.Any(), view.ID, s.admin).
			Return(errs.MarkAll(errors.New("no rows"), commands.ErrBookingNotFound, errs.ErrNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.routerAs(&s.admin), http.MethodDelete, "/bookings/"+view.ID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
