package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/cinetrack/api"
	"github.com/metinatakli/cinetrack/internal/domain"
)

func (app *Application) GetSeatLayout(w http.ResponseWriter, r *http.Request, showingId api.ShowingId) {
	if showingId < 1 {
		app.badRequestResponse(w, r, errors.New("showing ID must be greater than zero"))
		return
	}

	layout, err := app.reservations.DescribeLayout(r.Context(), showingId)
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toSeatLayoutResponse(layout), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatLayoutResponse(layout *domain.SeatLayout) api.SeatLayoutResponse {
	resp := api.SeatLayoutResponse{
		ShowingId: layout.ShowingID,
		Rows:      make([]api.SeatRow, len(layout.Rows)),
	}

	for i, row := range layout.Rows {
		resp.Rows[i] = api.SeatRow{
			Row:   row.Label,
			Seats: toApiSeats(row.Seats),
		}
	}

	return resp
}

func toApiSeats(seats []domain.Seat) []api.Seat {
	result := make([]api.Seat, len(seats))

	for i, seat := range seats {
		result[i] = api.Seat{
			Id:       seat.ID,
			Row:      seat.Row,
			Number:   seat.Number,
			Code:     seat.Code,
			Reserved: seat.Reserved,
		}
	}

	return result
}
