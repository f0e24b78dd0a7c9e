package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/cinetrack/api"
	"github.com/metinatakli/cinetrack/internal/domain"
)

func (app *Application) GetShowings(w http.ResponseWriter, r *http.Request, params api.GetShowingsParams) {
	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movieId := 0
	if params.MovieId != nil {
		movieId = *params.MovieId
	}

	showings, metadata, err := app.showingRepo.GetAll(r.Context(), movieId, toPagination(params.Page, params.PageSize))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ShowingListResponse{
		Showings: make([]api.Showing, len(showings)),
		Metadata: toApiMetadata(metadata),
	}

	for i := range showings {
		resp.Showings[i] = toApiShowing(&showings[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShowingById(w http.ResponseWriter, r *http.Request, showingId api.ShowingId) {
	if showingId < 1 {
		app.badRequestResponse(w, r, errors.New("showing ID must be greater than zero"))
		return
	}

	showing, err := app.showingRepo.GetById(r.Context(), showingId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrShowingNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiShowing(showing), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CreateShowing schedules a movie and provisions its seats in one step unless
// the caller defers the layout.
func (app *Application) CreateShowing(w http.ResponseWriter, r *http.Request) {
	var input api.CreateShowingRequest

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

	newShowing := domain.NewShowing{
		MovieID:     input.MovieId,
		Theater:     input.Theater,
		StartTime:   input.StartTime,
		Layout:      app.toLayout(input.Rows, input.SeatsPerRow),
		DeferLayout: input.DeferLayout != nil && *input.DeferLayout,
	}

	showing, seats, err := app.reservations.CreateShowing(r.Context(), newShowing)
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("showing created",
		"showing_id", showing.ID,
		"movie_id", showing.MovieID,
		"seats", len(seats))

	resp := api.CreateShowingResponse{
		Showing: toApiShowing(showing),
		Seats:   toApiSeats(seats),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GenerateShowingLayout(w http.ResponseWriter, r *http.Request, showingId api.ShowingId) {
	if showingId < 1 {
		app.badRequestResponse(w, r, errors.New("showing ID must be greater than zero"))
		return
	}

	var input api.GenerateLayoutRequest

	err := app.readJSON(w, r, &input)
	if err != nil && !errors.Is(err, errEmptyBody) {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	seats, err := app.reservations.GenerateLayout(r.Context(), showingId, app.toLayout(input.Rows, input.SeatsPerRow))
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	resp := api.SeatListResponse{
		ShowingId: showingId,
		Seats:     toApiSeats(seats),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// toLayout returns the zero layout when neither dimension is given, which lets
// the reservation service apply its default. A single missing dimension is
// taken from the configured default.
func (app *Application) toLayout(rows, seatsPerRow *int) domain.Layout {
	if rows == nil && seatsPerRow == nil {
		return domain.Layout{}
	}

	layout := app.config.Layout

	if rows != nil {
		layout.Rows = *rows
	}
	if seatsPerRow != nil {
		layout.SeatsPerRow = *seatsPerRow
	}

	return layout
}

func toApiShowing(showing *domain.Showing) api.Showing {
	return api.Showing{
		Id:         showing.ID,
		MovieId:    showing.MovieID,
		MovieTitle: showing.MovieTitle,
		Theater:    showing.Theater,
		StartTime:  showing.StartTime,
		CreatedAt:  showing.CreatedAt,
	}
}
