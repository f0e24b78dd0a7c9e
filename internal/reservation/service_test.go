package reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/cinetrack/internal/domain"
	"github.com/metinatakli/cinetrack/internal/events"
	"github.com/metinatakli/cinetrack/internal/mocks"
	"github.com/metinatakli/cinetrack/internal/repository"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *repository.MemoryStore
	publisher *mocks.MockPublisher
	service   *Service
	clock     time.Time
	movie     domain.Movie
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	var mu sync.Mutex
	tick := func() time.Time {
		mu.Lock()
		defer mu.Unlock()

		s.clock = s.clock.Add(time.Minute)
		return s.clock
	}

	s.store = repository.NewMemoryStore(repository.WithClock(tick))
	s.publisher = new(mocks.MockPublisher)
	s.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	var err error
	s.service, err = NewService(
		s.store.Showings(),
		s.store.Seats(),
		s.store.Bookings(),
		WithPublisher(s.publisher),
		WithClock(tick),
	)
	s.Require().NoError(err)

	s.movie = domain.Movie{Title: "Spirited Away", PosterUrl: "https://example.com/spirited.jpg"}
	s.Require().NoError(s.store.Movies().Upsert(s.ctx, &s.movie))
}

func (s *ServiceTestSuite) createUser(email string) domain.User {
	user := domain.User{Name: email, Email: email}
	s.Require().NoError(s.store.Users().Create(s.ctx, &user))

	return user
}

func (s *ServiceTestSuite) createShowing() (*domain.Showing, []domain.Seat) {
	showing, seats, err := s.service.CreateShowing(s.ctx, domain.NewShowing{
		MovieID:   s.movie.ID,
		Theater:   "Hall 1",
		StartTime: s.clock.Add(48 * time.Hour),
	})
	s.Require().NoError(err)

	return showing, seats
}

func (s *ServiceTestSuite) seatReserved(seatID int) bool {
	seat, err := s.store.Seats().GetById(s.ctx, seatID)
	s.Require().NoError(err)

	return seat.Reserved
}

func (s *ServiceTestSuite) TestCreateShowingProvisionsDefaultLayout() {
	showing, seats := s.createShowing()

	s.Equal("Spirited Away", showing.MovieTitle)
	s.Len(seats, 25)

	layout, err := s.service.DescribeLayout(s.ctx, showing.ID)
	s.Require().NoError(err)

	s.Len(layout.Rows, 5)

	var codes [][]string
	for _, row := range layout.Rows {
		var rowCodes []string
		for _, seat := range row.Seats {
			rowCodes = append(rowCodes, seat.Code)
			s.False(seat.Reserved)
		}
		codes = append(codes, rowCodes)
	}

	want := [][]string{
		{"A1", "A2", "A3", "A4", "A5"},
		{"B1", "B2", "B3", "B4", "B5"},
		{"C1", "C2", "C3", "C4", "C5"},
		{"D1", "D2", "D3", "D4", "D5"},
		{"E1", "E2", "E3", "E4", "E5"},
	}

	if diff := cmp.Diff(want, codes); diff != "" {
		s.Failf("layout mismatch", "(-want +got):\n%s", diff)
	}
}

func (s *ServiceTestSuite) TestCreateShowingUnknownMovie() {
	_, _, err := s.service.CreateShowing(s.ctx, domain.NewShowing{MovieID: 404, Theater: "Hall 9"})

	s.ErrorIs(err, domain.ErrMovieNotFound)
}

func (s *ServiceTestSuite) TestCreateShowingInvalidLayout() {
	_, _, err := s.service.CreateShowing(s.ctx, domain.NewShowing{
		MovieID: s.movie.ID,
		Theater: "Hall 1",
		Layout:  domain.Layout{Rows: 27, SeatsPerRow: 5},
	})

	s.ErrorIs(err, domain.ErrInvalidLayout)
}

func (s *ServiceTestSuite) TestGenerateLayoutGuard() {
	showing, seats, err := s.service.CreateShowing(s.ctx, domain.NewShowing{
		MovieID:     s.movie.ID,
		Theater:     "Hall 2",
		StartTime:   s.clock,
		DeferLayout: true,
	})
	s.Require().NoError(err)
	s.Empty(seats)

	_, err = s.service.DescribeLayout(s.ctx, showing.ID)
	s.ErrorIs(err, domain.ErrShowingHasNoSeats)

	seats, err = s.service.GenerateLayout(s.ctx, showing.ID, domain.Layout{})
	s.Require().NoError(err)
	s.Len(seats, 25)

	_, err = s.service.GenerateLayout(s.ctx, showing.ID, domain.Layout{Rows: 2, SeatsPerRow: 2})
	s.ErrorIs(err, domain.ErrLayoutAlreadyExists)

	layout, err := s.service.DescribeLayout(s.ctx, showing.ID)
	s.Require().NoError(err)
	s.Equal(25, layout.SeatCount())
}

func (s *ServiceTestSuite) TestConcurrentGenerateLayoutCreatesOneGrid() {
	showing, _, err := s.service.CreateShowing(s.ctx, domain.NewShowing{
		MovieID:     s.movie.ID,
		Theater:     "Hall 2",
		DeferLayout: true,
	})
	s.Require().NoError(err)

	const workers = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	start := make(chan struct{})

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			_, err := s.service.GenerateLayout(s.ctx, showing.ID, domain.DefaultLayout())

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrLayoutAlreadyExists):
				conflicts++
			}
		}()
	}

	close(start)
	wg.Wait()

	s.Equal(1, successes)
	s.Equal(workers-1, conflicts)

	layout, err := s.service.DescribeLayout(s.ctx, showing.ID)
	s.Require().NoError(err)
	s.Equal(25, layout.SeatCount())
}

func (s *ServiceTestSuite) TestDescribeLayoutUnknownShowing() {
	_, err := s.service.DescribeLayout(s.ctx, 999)

	s.ErrorIs(err, domain.ErrShowingNotFound)
}

func (s *ServiceTestSuite) TestClaimSeatMutualExclusion() {
	_, seats := s.createShowing()
	target := seats[12]

	const claimants = 16

	users := make([]domain.User, claimants)
	for i := range users {
		users[i] = s.createUser(fmt.Sprintf("user%d@example.com", i))
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
		other     []error
	)

	start := make(chan struct{})

	for _, user := range users {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()
			<-start

			_, err := s.service.ClaimSeat(s.ctx, target.ID, userID)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrSeatAlreadyReserved):
				conflicts++
			default:
				other = append(other, err)
			}
		}(user.ID)
	}

	close(start)
	wg.Wait()

	s.Empty(other)
	s.Equal(1, successes)
	s.Equal(claimants-1, conflicts)
	s.Equal(1, s.store.BookingCount())
	s.True(s.seatReserved(target.ID))
	s.publisher.AssertNumberOfCalls(s.T(), "Publish", 1)
}

func (s *ServiceTestSuite) TestReclaimAfterRelease() {
	_, seats := s.createShowing()
	seat := seats[0]
	alice := s.createUser("alice@example.com")
	bob := s.createUser("bob@example.com")

	booking, err := s.service.ClaimSeat(s.ctx, seat.ID, alice.ID)
	s.Require().NoError(err)
	s.True(s.seatReserved(seat.ID))

	_, err = s.service.ClaimSeat(s.ctx, seat.ID, bob.ID)
	s.ErrorIs(err, domain.ErrSeatAlreadyReserved)

	_, err = s.service.ReleaseBooking(s.ctx, booking.ID, alice.ID)
	s.Require().NoError(err)
	s.False(s.seatReserved(seat.ID))

	_, err = s.service.ClaimSeat(s.ctx, seat.ID, bob.ID)
	s.Require().NoError(err)
	s.True(s.seatReserved(seat.ID))
}

func (s *ServiceTestSuite) TestReleaseUnknownBooking() {
	user := s.createUser("carol@example.com")

	_, err := s.service.ReleaseBooking(s.ctx, 12345, user.ID)

	s.ErrorIs(err, domain.ErrBookingNotFound)
}

func (s *ServiceTestSuite) TestReleaseTwice() {
	_, seats := s.createShowing()
	user := s.createUser("dave@example.com")

	booking, err := s.service.ClaimSeat(s.ctx, seats[1].ID, user.ID)
	s.Require().NoError(err)

	_, err = s.service.ReleaseBooking(s.ctx, booking.ID, user.ID)
	s.Require().NoError(err)

	_, err = s.service.ReleaseBooking(s.ctx, booking.ID, user.ID)
	s.ErrorIs(err, domain.ErrBookingNotFound)
	s.False(s.seatReserved(seats[1].ID))
}

func (s *ServiceTestSuite) TestClaimUnknownSeat() {
	user := s.createUser("erin@example.com")

	_, err := s.service.ClaimSeat(s.ctx, 9999, user.ID)

	s.ErrorIs(err, domain.ErrSeatNotFound)
}

func (s *ServiceTestSuite) TestFailedClaimLeavesNoPartialState() {
	_, seats := s.createShowing()

	_, err := s.service.ClaimSeat(s.ctx, seats[4].ID, 424242)

	s.ErrorIs(err, domain.ErrUserNotFound)
	s.False(s.seatReserved(seats[4].ID))
	s.Zero(s.store.BookingCount())
	s.publisher.AssertNotCalled(s.T(), "Publish", mock.Anything, mock.Anything)
}

func (s *ServiceTestSuite) TestListBookingsMostRecentFirst() {
	_, seats := s.createShowing()
	user := s.createUser("frank@example.com")

	var ids []int
	for _, seat := range seats[:3] {
		booking, err := s.service.ClaimSeat(s.ctx, seat.ID, user.ID)
		s.Require().NoError(err)
		ids = append(ids, booking.ID)
	}

	bookings, metadata, err := s.service.ListBookings(s.ctx, user.ID, domain.Pagination{})
	s.Require().NoError(err)

	got := make([]int, 0, len(bookings))
	for _, b := range bookings {
		got = append(got, b.BookingID)
		s.Equal("Spirited Away", b.MovieTitle)
	}

	s.Equal([]int{ids[2], ids[1], ids[0]}, got)
	s.Equal(1, metadata.CurrentPage)
	s.Equal(10, metadata.PageSize)
	s.Equal(3, metadata.TotalRecords)
}

func (s *ServiceTestSuite) TestListBookingsEmpty() {
	user := s.createUser("grace@example.com")

	bookings, _, err := s.service.ListBookings(s.ctx, user.ID, domain.Pagination{Page: 1, PageSize: 5})

	s.Require().NoError(err)
	s.Empty(bookings)
}

func (s *ServiceTestSuite) TestGetBookingOwnedByAnotherUser() {
	_, seats := s.createShowing()
	owner := s.createUser("heidi@example.com")
	stranger := s.createUser("ivan@example.com")

	booking, err := s.service.ClaimSeat(s.ctx, seats[7].ID, owner.ID)
	s.Require().NoError(err)

	summary, err := s.service.GetBooking(s.ctx, booking.ID, owner.ID)
	s.Require().NoError(err)
	s.Equal(booking.Reference, summary.Reference)
	s.Equal(seats[7].Code, summary.SeatCode)

	_, err = s.service.GetBooking(s.ctx, booking.ID, stranger.ID)
	s.ErrorIs(err, domain.ErrBookingNotFound)

	_, err = s.service.ReleaseBooking(s.ctx, booking.ID, stranger.ID)
	s.ErrorIs(err, domain.ErrBookingNotFound)
	s.True(s.seatReserved(seats[7].ID))
}

func (s *ServiceTestSuite) TestPublishesLifecycleEvents() {
	publisher := new(mocks.MockPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.BookingEvent) bool {
		return e.Type == events.TypeBookingClaimed
	})).Return(nil).Once()
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.BookingEvent) bool {
		return e.Type == events.TypeBookingReleased
	})).Return(errors.New("broker unavailable")).Once()

	service, err := NewService(s.store.Showings(), s.store.Seats(), s.store.Bookings(), WithPublisher(publisher))
	s.Require().NoError(err)

	_, seats := s.createShowing()
	user := s.createUser("judy@example.com")

	booking, err := service.ClaimSeat(s.ctx, seats[2].ID, user.ID)
	s.Require().NoError(err)

	// a broker failure does not fail the release
	_, err = service.ReleaseBooking(s.ctx, booking.ID, user.ID)
	s.Require().NoError(err)
	s.False(s.seatReserved(seats[2].ID))

	publisher.AssertExpectations(s.T())
}

func TestNewServiceRejectsInvalidDefaultLayout(t *testing.T) {
	store := repository.NewMemoryStore()

	_, err := NewService(store.Showings(), store.Seats(), store.Bookings(),
		WithDefaultLayout(domain.Layout{Rows: 0, SeatsPerRow: 5}))

	if !errors.Is(err, domain.ErrInvalidLayout) {
		t.Fatalf("NewService() error = %v, want ErrInvalidLayout", err)
	}
}

func TestClaimOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "claimed"},
		{domain.ErrSeatAlreadyReserved, "already_reserved"},
		{fmt.Errorf("wrapped: %w", domain.ErrSeatNotFound), "seat_not_found"},
		{domain.ErrUserNotFound, "user_not_found"},
		{errors.New("connection reset"), "error"},
	}

	for _, tt := range tests {
		if got := claimOutcome(tt.err); got != tt.want {
			t.Errorf("claimOutcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
