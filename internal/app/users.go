package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/cinetrack/api"
	"github.com/metinatakli/cinetrack/internal/domain"
)

func (app *Application) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	user, err := app.userRepo.GetById(r.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			app.contextGetLogger(r).Error("user id in session but not found in store", "user_id", userId)
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toUserResponse(user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserBookings(w http.ResponseWriter, r *http.Request, params api.GetUserBookingsParams) {
	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)
	pagination := toPagination(params.Page, params.PageSize)

	bookings, metadata, err := app.reservations.ListBookings(r.Context(), userId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.BookingListResponse{
		Bookings: toBookingSummaries(bookings),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserBookingById(w http.ResponseWriter, r *http.Request, bookingId api.BookingId) {
	if bookingId < 1 {
		app.badRequestResponse(w, r, errors.New("booking ID must be greater than zero"))
		return
	}

	userId := app.contextGetUserId(r)

	booking, err := app.reservations.GetBooking(r.Context(), bookingId, userId)
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingSummary(*booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingSummaries(bookings []domain.BookingSummary) []api.BookingSummary {
	summaries := make([]api.BookingSummary, len(bookings))

	for i, v := range bookings {
		summaries[i] = toBookingSummary(v)
	}

	return summaries
}

func toBookingSummary(booking domain.BookingSummary) api.BookingSummary {
	return api.BookingSummary{
		Id:             booking.BookingID,
		Reference:      booking.Reference,
		ShowingId:      booking.ShowingID,
		MovieTitle:     booking.MovieTitle,
		MoviePosterUrl: booking.MoviePosterUrl,
		Theater:        booking.Theater,
		StartTime:      booking.StartTime,
		SeatId:         booking.SeatID,
		SeatCode:       booking.SeatCode,
		CreatedAt:      booking.CreatedAt,
	}
}
