package mocks

import (
	"context"

	"github.com/metinatakli/cinetrack/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockReservationService struct {
	mock.Mock
	domain.ReservationService
}

func (m *MockReservationService) CreateShowing(ctx context.Context, input domain.NewShowing) (*domain.Showing, []domain.Seat, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Showing), args.Get(1).([]domain.Seat), args.Error(2)
}

func (m *MockReservationService) GenerateLayout(ctx context.Context, showingID int, layout domain.Layout) ([]domain.Seat, error) {
	args := m.Called(ctx, showingID, layout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockReservationService) DescribeLayout(ctx context.Context, showingID int) (*domain.SeatLayout, error) {
	args := m.Called(ctx, showingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatLayout), args.Error(1)
}

func (m *MockReservationService) ClaimSeat(ctx context.Context, seatID, userID int) (*domain.Booking, error) {
	args := m.Called(ctx, seatID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockReservationService) ReleaseBooking(ctx context.Context, bookingID, userID int) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockReservationService) ListBookings(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {

	args := m.Called(ctx, userID, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.BookingSummary), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockReservationService) GetBooking(ctx context.Context, bookingID, userID int) (*domain.BookingSummary, error) {
	args := m.Called(ctx, bookingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingSummary), args.Error(1)
}
