package repository

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinetrack/internal/domain"
)

// MemoryStore keeps every table in process memory behind a single mutex. Each
// mutating operation runs entirely under the lock, which gives it the same
// all-or-nothing visibility a database transaction provides.
type MemoryStore struct {
	mu  sync.Mutex
	now func() time.Time

	movies   map[int]domain.Movie
	showings map[int]domain.Showing
	seats    map[int]domain.Seat
	bookings map[int]domain.Booking
	users    map[int]domain.User

	// seat id -> booking id
	seatBookings map[int]int

	nextMovieID   int
	nextShowingID int
	nextSeatID    int
	nextBookingID int
	nextUserID    int
}

type MemoryOption func(*MemoryStore)

// WithClock replaces the time source used for created_at values.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		now:          time.Now,
		movies:       make(map[int]domain.Movie),
		showings:     make(map[int]domain.Showing),
		seats:        make(map[int]domain.Seat),
		bookings:     make(map[int]domain.Booking),
		users:        make(map[int]domain.User),
		seatBookings: make(map[int]int),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *MemoryStore) Movies() *MemoryMovieRepository {
	return &MemoryMovieRepository{store: s}
}

func (s *MemoryStore) Showings() *MemoryShowingRepository {
	return &MemoryShowingRepository{store: s}
}

func (s *MemoryStore) Seats() *MemorySeatRepository {
	return &MemorySeatRepository{store: s}
}

func (s *MemoryStore) Bookings() *MemoryBookingRepository {
	return &MemoryBookingRepository{store: s}
}

func (s *MemoryStore) Users() *MemoryUserRepository {
	return &MemoryUserRepository{store: s}
}

// BookingCount returns the number of stored bookings across all users.
func (s *MemoryStore) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.bookings)
}

func paginate[T any](items []T, pagination domain.Pagination) ([]T, *domain.Metadata) {
	total := len(items)
	start := min(pagination.Offset(), total)
	end := min(start+pagination.Limit(), total)

	page := make([]T, 0, end-start)
	page = append(page, items[start:end]...)

	return page, domain.NewMetadata(total, pagination.Page, pagination.PageSize)
}

type MemoryMovieRepository struct {
	store *MemoryStore
}

func (r *MemoryMovieRepository) GetAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Movie, *domain.Metadata, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	term := strings.ToLower(pagination.Term)
	movies := make([]*domain.Movie, 0, len(r.store.movies))

	for _, movie := range r.store.movies {
		if term != "" && !strings.Contains(strings.ToLower(movie.Title), term) {
			continue
		}

		movie := movie
		movies = append(movies, &movie)
	}

	desc := pagination.SortDirection() == "DESC"
	slices.SortFunc(movies, func(a, b *domain.Movie) int {
		var c int

		switch pagination.SortColumn() {
		case "title":
			c = cmp.Compare(a.Title, b.Title)
		case "release_date":
			c = a.ReleaseDate.Compare(b.ReleaseDate)
		case "imdb_rating":
			c = cmp.Compare(a.ImdbRating, b.ImdbRating)
		}

		if desc {
			c = -c
		}

		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}

		return c
	})

	page, metadata := paginate(movies, pagination)

	return page, metadata, nil
}

func (r *MemoryMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	movie, ok := r.store.movies[id]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}

	return &movie, nil
}

func (r *MemoryMovieRepository) Upsert(ctx context.Context, movie *domain.Movie) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, existing := range r.store.movies {
		if existing.Title == movie.Title {
			movie.ID = id
			r.store.movies[id] = *movie
			return nil
		}
	}

	r.store.nextMovieID++
	movie.ID = r.store.nextMovieID
	r.store.movies[movie.ID] = *movie

	return nil
}

type MemoryShowingRepository struct {
	store *MemoryStore
}

func (r *MemoryShowingRepository) Create(ctx context.Context, showing *domain.Showing) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.insertShowing(showing)
}

func (r *MemoryShowingRepository) CreateWithLayout(
	ctx context.Context,
	showing *domain.Showing,
	layout domain.Layout) ([]domain.Seat, error) {

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.insertShowing(showing); err != nil {
		return nil, err
	}

	return r.store.insertSeats(showing.ID, layout), nil
}

// insertShowing must be called with the lock held.
func (s *MemoryStore) insertShowing(showing *domain.Showing) error {
	movie, ok := s.movies[showing.MovieID]
	if !ok {
		return domain.ErrMovieNotFound
	}

	s.nextShowingID++
	showing.ID = s.nextShowingID
	showing.MovieTitle = movie.Title
	showing.CreatedAt = s.now()
	s.showings[showing.ID] = *showing

	return nil
}

func (r *MemoryShowingRepository) GenerateLayout(
	ctx context.Context,
	showingID int,
	layout domain.Layout) ([]domain.Seat, error) {

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.showings[showingID]; !ok {
		return nil, domain.ErrShowingNotFound
	}

	if len(r.store.seatsOf(showingID)) > 0 {
		return nil, domain.ErrLayoutAlreadyExists
	}

	return r.store.insertSeats(showingID, layout), nil
}

func (r *MemoryShowingRepository) GetById(ctx context.Context, id int) (*domain.Showing, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	showing, ok := r.store.showings[id]
	if !ok {
		return nil, domain.ErrShowingNotFound
	}

	return &showing, nil
}

func (r *MemoryShowingRepository) GetAll(
	ctx context.Context,
	movieID int,
	pagination domain.Pagination) ([]domain.Showing, *domain.Metadata, error) {

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	showings := make([]domain.Showing, 0, len(r.store.showings))
	for _, showing := range r.store.showings {
		if movieID == 0 || showing.MovieID == movieID {
			showings = append(showings, showing)
		}
	}

	slices.SortFunc(showings, func(a, b domain.Showing) int {
		if c := a.StartTime.Compare(b.StartTime); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	page, metadata := paginate(showings, pagination)

	return page, metadata, nil
}

// insertSeats must be called with the lock held.
func (s *MemoryStore) insertSeats(showingID int, layout domain.Layout) []domain.Seat {
	seats := layout.Seats(showingID)

	for i := range seats {
		s.nextSeatID++
		seats[i].ID = s.nextSeatID
		s.seats[seats[i].ID] = seats[i]
	}

	return seats
}

// seatsOf must be called with the lock held.
func (s *MemoryStore) seatsOf(showingID int) []domain.Seat {
	seats := make([]domain.Seat, 0)
	for _, seat := range s.seats {
		if seat.ShowingID == showingID {
			seats = append(seats, seat)
		}
	}

	slices.SortFunc(seats, func(a, b domain.Seat) int {
		if c := cmp.Compare(a.Row, b.Row); c != 0 {
			return c
		}
		return cmp.Compare(a.Number, b.Number)
	})

	return seats
}

type MemorySeatRepository struct {
	store *MemoryStore
}

func (r *MemorySeatRepository) GetByShowing(ctx context.Context, showingID int) ([]domain.Seat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.showings[showingID]; !ok {
		return nil, domain.ErrShowingNotFound
	}

	return r.store.seatsOf(showingID), nil
}

func (r *MemorySeatRepository) GetById(ctx context.Context, id int) (*domain.Seat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	seat, ok := r.store.seats[id]
	if !ok {
		return nil, domain.ErrSeatNotFound
	}

	return &seat, nil
}

type MemoryBookingRepository struct {
	store *MemoryStore
}

func (r *MemoryBookingRepository) Claim(ctx context.Context, seatID, userID int) (*domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	seat, ok := r.store.seats[seatID]
	if !ok {
		return nil, domain.ErrSeatNotFound
	}

	if _, booked := r.store.seatBookings[seatID]; booked || seat.Reserved {
		return nil, domain.ErrSeatAlreadyReserved
	}

	seat.Reserved = true
	r.store.seats[seatID] = seat

	if _, ok := r.store.users[userID]; !ok {
		// The booking cannot be recorded, so the flag flip is undone.
		seat.Reserved = false
		r.store.seats[seatID] = seat

		return nil, domain.ErrUserNotFound
	}

	r.store.nextBookingID++
	booking := domain.Booking{
		ID:        r.store.nextBookingID,
		Reference: uuid.New(),
		SeatID:    seatID,
		SeatCode:  seat.Code,
		ShowingID: seat.ShowingID,
		UserID:    userID,
		CreatedAt: r.store.now(),
	}

	r.store.bookings[booking.ID] = booking
	r.store.seatBookings[seatID] = booking.ID

	return &booking, nil
}

func (r *MemoryBookingRepository) Release(ctx context.Context, bookingID, userID int) (*domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	booking, ok := r.store.bookings[bookingID]
	if !ok || booking.UserID != userID {
		return nil, domain.ErrBookingNotFound
	}

	delete(r.store.bookings, bookingID)
	delete(r.store.seatBookings, booking.SeatID)

	seat := r.store.seats[booking.SeatID]
	seat.Reserved = false
	r.store.seats[seat.ID] = seat

	return &booking, nil
}

func (r *MemoryBookingRepository) GetSummariesByUserId(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	bookings := make([]domain.Booking, 0)
	for _, booking := range r.store.bookings {
		if booking.UserID == userID {
			bookings = append(bookings, booking)
		}
	}

	slices.SortFunc(bookings, func(a, b domain.Booking) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	summaries := make([]domain.BookingSummary, 0, len(bookings))
	for _, booking := range bookings {
		summaries = append(summaries, r.store.summarize(booking))
	}

	page, metadata := paginate(summaries, pagination)

	return page, metadata, nil
}

func (r *MemoryBookingRepository) GetSummaryByIdAndUserId(
	ctx context.Context,
	bookingID,
	userID int) (*domain.BookingSummary, error) {

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	booking, ok := r.store.bookings[bookingID]
	if !ok || booking.UserID != userID {
		return nil, domain.ErrBookingNotFound
	}

	summary := r.store.summarize(booking)

	return &summary, nil
}

// summarize must be called with the lock held.
func (s *MemoryStore) summarize(booking domain.Booking) domain.BookingSummary {
	showing := s.showings[booking.ShowingID]
	movie := s.movies[showing.MovieID]

	return domain.BookingSummary{
		BookingID:      booking.ID,
		Reference:      booking.Reference,
		ShowingID:      showing.ID,
		MovieTitle:     movie.Title,
		MoviePosterUrl: movie.PosterUrl,
		Theater:        showing.Theater,
		StartTime:      showing.StartTime,
		SeatID:         booking.SeatID,
		SeatCode:       booking.SeatCode,
		CreatedAt:      booking.CreatedAt,
	}
}

type MemoryUserRepository struct {
	store *MemoryStore
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return domain.ErrUserAlreadyExists
		}
	}

	r.store.nextUserID++
	user.ID = r.store.nextUserID
	user.CreatedAt = r.store.now()
	r.store.users[user.ID] = *user

	return nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.users {
		if strings.EqualFold(user.Email, email) {
			return &user, nil
		}
	}

	return nil, domain.ErrUserNotFound
}

func (r *MemoryUserRepository) GetById(ctx context.Context, id int) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	return &user, nil
}
