package api

import (
	"log/slog"
	"net/http"

	"court-booking/internal/domain/auth"
	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/court"
	"court-booking/internal/domain/user"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/handler/middleware"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/pkg/password"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

// Errors whose message is safe to show. Checked in order, most specific first.
var publicErrors = []error{
	booking.ErrOvernightBooking,
	booking.ErrStartNotInFuture,
	booking.ErrInvertedInterval,
	booking.ErrNegativePrice,
	booking.ErrSlotOccupied,
	booking.ErrAlreadyCanceled,
	user.ErrInvalidEmail,
	user.ErrInvalidPhone,
	user.ErrInvalidBirthDate,
	user.ErrBirthDateFuture,
	user.ErrEmptyName,
	user.ErrNameTooLong,
	password.ErrTooShort,
	password.ErrTooLong,
	court.ErrEmptyCourtName,
	court.ErrCourtNameTooLong,
	court.ErrDescriptionTooLong,
	auth.ErrInvalidCode,
	commands.ErrMalformedDateTime,
	commands.ErrInvalidCode,
	commands.ErrBookingNotFound,
	commands.ErrCourtNotFound,
	commands.ErrUserNotFound,
	commands.ErrUserAlreadyExists,
	commands.ErrCourtNameTaken,
	commands.ErrAdminCreation,
	commands.ErrUserInactive,
	commands.ErrBookingAccess,
	commands.ErrProfileAccess,
	commands.ErrCourtAccess,
	commands.ErrTokenValidation,
	queries.ErrMalformedDate,
	queries.ErrMalformedID,
	queries.ErrBookingNotFound,
	queries.ErrCourtNotFound,
	queries.ErrUserNotFound,
	queries.ErrUserInactive,
	queries.ErrBookingAccess,
	queries.ErrUserAccess,
}

const stackLogLines = 12

// respondError maps a usecase error onto the status of its category.
// Infrastructure failures are reported without detail.
func respondError(c *gin.Context, err error) {
	switch errs.CategoryOf(err) {
	case errs.CategoryValidation:
		status := http.StatusBadRequest
		if errs.Is(err, commands.ErrInvalidBooking) {
			status = http.StatusUnprocessableEntity
		}
		httperr.AbortWithError(c, status, err, publicMessage(err, "Invalid request data"), nil)
	case errs.CategoryConflict:
		httperr.AbortWithError(c, http.StatusConflict, err, publicMessage(err, "Conflict"), nil)
	case errs.CategoryNotFound:
		httperr.AbortWithError(c, http.StatusNotFound, err, publicMessage(err, "Not found"), nil)
	case errs.CategoryForbidden:
		httperr.AbortWithError(c, http.StatusForbidden, err, publicMessage(err, "Forbidden"), nil)
	case errs.CategoryUnauthorized:
		httperr.AbortWithError(c, http.StatusUnauthorized, err, publicMessage(err, "Unauthorized"), nil)
	default:
		slog.Error("request failed",
			"request_id", middleware.GetRequestID(c),
			"route", c.FullPath(),
			"error", err.Error(),
			"stack", errs.ExtractStackLines(err, stackLogLines),
		)
		httperr.AbortInternal(c, err)
	}
}

func publicMessage(err error, fallback string) string {
	for _, e := range publicErrors {
		if errs.Is(err, e) {
			return e.Error()
		}
	}
	return fallback
}

func respondBindError(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
}

// requireActor is used behind RequireAuth; a missing actor is a wiring bug.
func requireActor(c *gin.Context) (shared.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortInternal(c, errs.New("actor missing from context"))
		return shared.Actor{}, false
	}
	return actor, true
}

func optionalActor(c *gin.Context) *shared.Actor {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return nil
	}
	return &actor
}
