package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinetrack/api"
	"github.com/metinatakli/cinetrack/internal/domain"
	appvalidator "github.com/metinatakli/cinetrack/internal/validator"
)

const (
	ErrInternalServer      = "The server encountered a problem and could not process your request"
	ErrNotFound            = "The requested resource not found"
	ErrUnauthorized        = "You must be authenticated to access this resource"
	ErrInvalidCredentials  = "Invalid authentication credentials"
	ErrFailedValidation    = "One or more fields have invalid values"
	ErrEmailTaken          = "A user with this email address already exists"
	ErrSeatAlreadyReserved = "The seat is already reserved"
	ErrLayoutAlreadyExists = "The showing already has a seat layout"
	ErrShowingHasNoSeats   = "The showing has no seats yet"
	ErrUnknownUser         = "The booking refers to a user that does not exist"
	ErrMovieNotInCatalog   = "The movie could not be found in the catalog"
	ErrCatalogUnavailable  = "The movie catalog is not available"
)

func (app *Application) logError(r *http.Request, err error) {
	app.contextGetLogger(r).Error(err.Error())
}

func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("The %s method is not supported for this resource", r.Method)
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrUnauthorized)
}

func (app *Application) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrInvalidCredentials)
}

func (app *Application) conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, http.StatusConflict, message)
}

// failedValidationResponse reports every field the validator rejected. Errors
// of any other kind are treated as a malformed request.
func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.badRequestResponse(w, r, err)
		return
	}

	resp := api.ValidationErrorResponse{
		Message:          ErrFailedValidation,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: make([]api.ValidationError, len(validationErrors)),
	}

	for i, fieldErr := range validationErrors {
		resp.ValidationErrors[i] = api.ValidationError{
			Field: fieldErr.Field(),
			Issue: appvalidator.ValidationMessage(fieldErr),
		}
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// paramErrorResponse handles path and query parameters that could not be bound.
func (app *Application) paramErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var (
		formatErr   *api.InvalidParamFormatError
		requiredErr *api.RequiredParamError
	)

	switch {
	case errors.As(err, &formatErr):
		app.badRequestResponse(w, r, fmt.Errorf("invalid value for parameter %s", formatErr.ParamName))
	case errors.As(err, &requiredErr):
		app.badRequestResponse(w, r, fmt.Errorf("parameter %s is required", requiredErr.ParamName))
	default:
		app.badRequestResponse(w, r, err)
	}
}

// reservationErrorResponse maps the outcome of a reservation operation to a
// response. Expected outcomes are logged at warn level.
func (app *Application) reservationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logger := app.contextGetLogger(r)

	switch {
	case errors.Is(err, domain.ErrShowingHasNoSeats):
		logger.Warn("showing has no seats")
		app.errorResponse(w, r, http.StatusNotFound, ErrShowingHasNoSeats)
	case errors.Is(err, domain.ErrSeatNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrShowingNotFound),
		errors.Is(err, domain.ErrMovieNotFound),
		errors.Is(err, domain.ErrRecordNotFound):
		logger.Warn("reservation target not found", "error", err)
		app.notFoundResponse(w, r)
	case errors.Is(err, domain.ErrSeatAlreadyReserved):
		logger.Warn("seat already reserved")
		app.conflictResponse(w, r, ErrSeatAlreadyReserved)
	case errors.Is(err, domain.ErrLayoutAlreadyExists):
		logger.Warn("seat layout already exists")
		app.conflictResponse(w, r, ErrLayoutAlreadyExists)
	case errors.Is(err, domain.ErrInvalidLayout):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, domain.ErrUserNotFound):
		logger.Warn("booking attempted for unknown user")
		app.errorResponse(w, r, http.StatusBadRequest, ErrUnknownUser)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
