package domain

import "context"

// ReservationService is the seat reservation core exposed to the transport layer.
type ReservationService interface {
	CreateShowing(ctx context.Context, input NewShowing) (*Showing, []Seat, error)
	GenerateLayout(ctx context.Context, showingID int, layout Layout) ([]Seat, error)
	DescribeLayout(ctx context.Context, showingID int) (*SeatLayout, error)
	ClaimSeat(ctx context.Context, seatID, userID int) (*Booking, error)
	ReleaseBooking(ctx context.Context, bookingID, userID int) (*Booking, error)
	ListBookings(ctx context.Context, userID int, pagination Pagination) ([]BookingSummary, *Metadata, error)
	GetBooking(ctx context.Context, bookingID, userID int) (*BookingSummary, error)
}
