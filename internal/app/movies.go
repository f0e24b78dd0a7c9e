package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/cinetrack/api"
	"github.com/metinatakli/cinetrack/internal/domain"
	"github.com/oapi-codegen/runtime/types"
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request, params api.GetMoviesParams) {
	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), toMovieFilters(params))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies:   toApiMovies(movies),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieById(w http.ResponseWriter, r *http.Request, movieId int) {
	if movieId < 1 {
		app.badRequestResponse(w, r, errors.New("movie ID must be greater than zero"))
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMovieNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiMovie(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ImportMovie looks the title up in the external catalog and stores it,
// refreshing the existing row when the title is already known.
func (app *Application) ImportMovie(w http.ResponseWriter, r *http.Request, params api.ImportMovieParams) {
	logger := app.contextGetLogger(r)

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie, err := app.catalog.FetchByTitle(r.Context(), params.Title)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMovieNotInCatalog):
			logger.Warn("movie not found in catalog", "title", params.Title)
			app.errorResponse(w, r, http.StatusNotFound, ErrMovieNotInCatalog)
		case errors.Is(err, domain.ErrCatalogUnavailable):
			logger.Warn("movie import attempted without a catalog API key")
			app.errorResponse(w, r, http.StatusServiceUnavailable, ErrCatalogUnavailable)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.movieRepo.Upsert(r.Context(), movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	logger.Info("movie imported", "movie_id", movie.ID, "title", movie.Title)

	err = app.writeJSON(w, http.StatusOK, toApiMovie(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toMovieFilters(params api.GetMoviesParams) domain.Pagination {
	filters := toPagination(params.Page, params.PageSize)
	filters.Sort = DefaultSort

	if params.Sort != nil {
		filters.Sort = *params.Sort
	}
	if params.Term != nil {
		filters.Term = *params.Term
	}

	return filters
}

func toApiMovies(movies []*domain.Movie) []api.Movie {
	result := make([]api.Movie, len(movies))

	for i, movie := range movies {
		result[i] = toApiMovie(movie)
	}

	return result
}

func toApiMovie(movie *domain.Movie) api.Movie {
	if movie == nil {
		return api.Movie{}
	}

	m := api.Movie{
		Id:         movie.ID,
		Title:      movie.Title,
		Genre:      movie.Genre,
		Duration:   movie.Duration,
		PosterUrl:  movie.PosterUrl,
		ImdbRating: movie.ImdbRating,
	}

	if !movie.ReleaseDate.IsZero() {
		m.ReleaseDate = &types.Date{Time: movie.ReleaseDate}
	}

	return m
}
