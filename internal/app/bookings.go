package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/metinatakli/cinetrack/api"
	"github.com/metinatakli/cinetrack/internal/domain"
	"github.com/metinatakli/cinetrack/internal/mailer"
)

func (app *Application) ClaimSeat(w http.ResponseWriter, r *http.Request) {
	var input api.ClaimSeatRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	booking, err := app.reservations.ClaimSeat(r.Context(), input.SeatId, userId)
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("seat claimed",
		"booking_id", booking.ID,
		"seat_id", booking.SeatID,
		"showing_id", booking.ShowingID)

	app.background(r, "booking confirmation email", func(ctx context.Context) error {
		return app.sendBookingConfirmation(ctx, booking.ID, userId)
	})

	err = app.writeJSON(w, http.StatusCreated, toBookingResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ReleaseBooking(w http.ResponseWriter, r *http.Request, bookingId api.BookingId) {
	if bookingId < 1 {
		app.badRequestResponse(w, r, errors.New("booking ID must be greater than zero"))
		return
	}

	userId := app.contextGetUserId(r)

	booking, err := app.reservations.ReleaseBooking(r.Context(), bookingId, userId)
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("booking released",
		"booking_id", booking.ID,
		"seat_id", booking.SeatID)

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) sendBookingConfirmation(ctx context.Context, bookingId, userId int) error {
	user, err := app.userRepo.GetById(ctx, userId)
	if err != nil {
		return err
	}

	booking, err := app.reservations.GetBooking(ctx, bookingId, userId)
	if err != nil {
		return err
	}

	data := map[string]any{
		"name":       user.Name,
		"movieTitle": booking.MovieTitle,
		"theater":    booking.Theater,
		"startTime":  booking.StartTime.Format("Mon, 02 Jan 2006 15:04"),
		"seatCode":   booking.SeatCode,
		"reference":  booking.Reference.String(),
	}

	return app.mailer.Send(user.Email, mailer.BookingConfirmedTemplate, data)
}

func toBookingResponse(booking *domain.Booking) api.BookingResponse {
	return api.BookingResponse{
		Id:        booking.ID,
		Reference: booking.Reference,
		SeatId:    booking.SeatID,
		SeatCode:  booking.SeatCode,
		ShowingId: booking.ShowingID,
		CreatedAt: booking.CreatedAt,
	}
}
