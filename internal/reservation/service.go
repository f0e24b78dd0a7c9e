// Package reservation implements the seat reservation core on top of the
// repository interfaces: showing provisioning, layout views, and the claim and
// release of seats.
package reservation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/metinatakli/cinetrack/internal/domain"
	"github.com/metinatakli/cinetrack/internal/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/metinatakli/cinetrack/internal/reservation"

	defaultPageSize = 10
	publishTimeout  = 3 * time.Second
)

type Service struct {
	showings  domain.ShowingRepository
	seats     domain.SeatRepository
	bookings  domain.BookingRepository
	publisher events.Publisher
	logger    *slog.Logger
	layout    domain.Layout
	now       func() time.Time

	tracer trace.Tracer
	claims metric.Int64Counter
}

var _ domain.ReservationService = (*Service)(nil)

type Option func(*Service)

func WithPublisher(publisher events.Publisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithDefaultLayout sets the grid used when a caller does not specify one.
func WithDefaultLayout(layout domain.Layout) Option {
	return func(s *Service) {
		s.layout = layout
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(
	showings domain.ShowingRepository,
	seats domain.SeatRepository,
	bookings domain.BookingRepository,
	opts ...Option) (*Service, error) {

	s := &Service{
		showings:  showings,
		seats:     seats,
		bookings:  bookings,
		publisher: events.NopPublisher{},
		logger:    slog.Default(),
		layout:    domain.DefaultLayout(),
		now:       time.Now,
		tracer:    otel.Tracer(instrumentationName),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.layout.Validate(); err != nil {
		return nil, err
	}

	claims, err := otel.Meter(instrumentationName).Int64Counter(
		"seat_claims",
		metric.WithDescription("Seat claim attempts by outcome"),
	)
	if err != nil {
		return nil, err
	}

	s.claims = claims

	return s, nil
}

func (s *Service) CreateShowing(ctx context.Context, input domain.NewShowing) (*domain.Showing, []domain.Seat, error) {
	ctx, span := s.tracer.Start(ctx, "reservation.CreateShowing",
		trace.WithAttributes(attribute.Int("movie.id", input.MovieID)))
	defer span.End()

	layout := s.layoutOrDefault(input.Layout)
	if err := layout.Validate(); err != nil {
		return nil, nil, endSpan(span, err)
	}

	showing := &domain.Showing{
		MovieID:   input.MovieID,
		Theater:   input.Theater,
		StartTime: input.StartTime,
	}

	if input.DeferLayout {
		if err := s.showings.Create(ctx, showing); err != nil {
			return nil, nil, endSpan(span, err)
		}

		return showing, []domain.Seat{}, nil
	}

	seats, err := s.showings.CreateWithLayout(ctx, showing, layout)
	if err != nil {
		return nil, nil, endSpan(span, err)
	}

	span.SetAttributes(attribute.Int("showing.id", showing.ID), attribute.Int("seats.count", len(seats)))

	return showing, seats, nil
}

func (s *Service) GenerateLayout(ctx context.Context, showingID int, layout domain.Layout) ([]domain.Seat, error) {
	ctx, span := s.tracer.Start(ctx, "reservation.GenerateLayout",
		trace.WithAttributes(attribute.Int("showing.id", showingID)))
	defer span.End()

	layout = s.layoutOrDefault(layout)
	if err := layout.Validate(); err != nil {
		return nil, endSpan(span, err)
	}

	seats, err := s.showings.GenerateLayout(ctx, showingID, layout)
	if err != nil {
		return nil, endSpan(span, err)
	}

	return seats, nil
}

func (s *Service) DescribeLayout(ctx context.Context, showingID int) (*domain.SeatLayout, error) {
	ctx, span := s.tracer.Start(ctx, "reservation.DescribeLayout",
		trace.WithAttributes(attribute.Int("showing.id", showingID)))
	defer span.End()

	seats, err := s.seats.GetByShowing(ctx, showingID)
	if err != nil {
		return nil, endSpan(span, err)
	}

	if len(seats) == 0 {
		return nil, endSpan(span, domain.ErrShowingHasNoSeats)
	}

	return domain.GroupSeats(showingID, seats), nil
}

func (s *Service) ClaimSeat(ctx context.Context, seatID, userID int) (*domain.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "reservation.ClaimSeat",
		trace.WithAttributes(attribute.Int("seat.id", seatID), attribute.Int("user.id", userID)))
	defer span.End()

	booking, err := s.bookings.Claim(ctx, seatID, userID)

	s.claims.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", claimOutcome(err))))

	if err != nil {
		return nil, endSpan(span, err)
	}

	span.SetAttributes(attribute.Int("booking.id", booking.ID))
	s.publish(ctx, events.TypeBookingClaimed, booking)

	return booking, nil
}

func (s *Service) ReleaseBooking(ctx context.Context, bookingID, userID int) (*domain.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "reservation.ReleaseBooking",
		trace.WithAttributes(attribute.Int("booking.id", bookingID), attribute.Int("user.id", userID)))
	defer span.End()

	booking, err := s.bookings.Release(ctx, bookingID, userID)
	if err != nil {
		return nil, endSpan(span, err)
	}

	s.publish(ctx, events.TypeBookingReleased, booking)

	return booking, nil
}

func (s *Service) ListBookings(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {

	ctx, span := s.tracer.Start(ctx, "reservation.ListBookings",
		trace.WithAttributes(attribute.Int("user.id", userID)))
	defer span.End()

	if pagination.Page < 1 {
		pagination.Page = 1
	}

	if pagination.PageSize < 1 {
		pagination.PageSize = defaultPageSize
	}

	bookings, metadata, err := s.bookings.GetSummariesByUserId(ctx, userID, pagination)
	if err != nil {
		return nil, nil, endSpan(span, err)
	}

	return bookings, metadata, nil
}

func (s *Service) GetBooking(ctx context.Context, bookingID, userID int) (*domain.BookingSummary, error) {
	ctx, span := s.tracer.Start(ctx, "reservation.GetBooking",
		trace.WithAttributes(attribute.Int("booking.id", bookingID), attribute.Int("user.id", userID)))
	defer span.End()

	booking, err := s.bookings.GetSummaryByIdAndUserId(ctx, bookingID, userID)
	if err != nil {
		return nil, endSpan(span, err)
	}

	return booking, nil
}

func (s *Service) layoutOrDefault(layout domain.Layout) domain.Layout {
	if layout == (domain.Layout{}) {
		return s.layout
	}

	return layout
}

// publish runs after the change is committed; a broker failure is logged and
// never undoes or fails the operation.
func (s *Service) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := events.NewBookingEvent(eventType, booking, s.now())

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish booking event",
			"type", eventType,
			"booking_id", booking.ID,
			"error", err)
	}
}

func claimOutcome(err error) string {
	switch {
	case err == nil:
		return "claimed"
	case errors.Is(err, domain.ErrSeatAlreadyReserved):
		return "already_reserved"
	case errors.Is(err, domain.ErrSeatNotFound):
		return "seat_not_found"
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	default:
		return "error"
	}
}

func endSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	return err
}
