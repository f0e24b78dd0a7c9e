package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID        int
	Reference uuid.UUID
	SeatID    int
	SeatCode  string
	ShowingID int
	UserID    int
	CreatedAt time.Time
}

// BookingSummary is a booking joined with the showing, movie and seat it refers to.
type BookingSummary struct {
	BookingID      int
	Reference      uuid.UUID
	ShowingID      int
	MovieTitle     string
	MoviePosterUrl string
	Theater        string
	StartTime      time.Time
	SeatID         int
	SeatCode       string
	CreatedAt      time.Time
}

type BookingRepository interface {
	// Claim flips the seat's reservation flag and records the booking as a single
	// unit. It fails with ErrSeatNotFound, ErrSeatAlreadyReserved or ErrUserNotFound
	// and leaves nothing behind on failure.
	Claim(ctx context.Context, seatID, userID int) (*Booking, error)
	// Release deletes the user's booking and clears the seat's flag as a single unit.
	Release(ctx context.Context, bookingID, userID int) (*Booking, error)
	GetSummariesByUserId(ctx context.Context, userID int, pagination Pagination) ([]BookingSummary, *Metadata, error)
	GetSummaryByIdAndUserId(ctx context.Context, bookingID, userID int) (*BookingSummary, error)
}
