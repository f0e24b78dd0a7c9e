package domain

import "errors"

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrMovieNotFound       = errors.New("movie not found")
	ErrShowingNotFound     = errors.New("showing not found")
	ErrShowingHasNoSeats   = errors.New("showing has no seats")
	ErrSeatNotFound        = errors.New("seat not found")
	ErrSeatAlreadyReserved = errors.New("seat is already reserved")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrLayoutAlreadyExists = errors.New("seat layout already exists for showing")
	ErrInvalidLayout       = errors.New("invalid seat layout")
	ErrMovieNotInCatalog   = errors.New("movie not found in catalog")
	ErrCatalogUnavailable  = errors.New("movie catalog is not configured")
)
