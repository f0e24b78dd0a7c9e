package domain

import (
	"context"
	"time"
)

type Showing struct {
	ID         int
	MovieID    int
	MovieTitle string
	Theater    string
	StartTime  time.Time
	CreatedAt  time.Time
}

type NewShowing struct {
	MovieID   int
	Theater   string
	StartTime time.Time
	Layout    Layout
	// DeferLayout creates the showing without seats; they are provisioned later
	// with GenerateLayout.
	DeferLayout bool
}

type ShowingRepository interface {
	// Create inserts a showing without seats.
	Create(ctx context.Context, showing *Showing) error
	// CreateWithLayout inserts the showing and provisions its seats in the same
	// transaction. ErrMovieNotFound is returned for an unknown movie.
	CreateWithLayout(ctx context.Context, showing *Showing, layout Layout) ([]Seat, error)
	// GenerateLayout provisions seats for an existing showing that has none yet.
	GenerateLayout(ctx context.Context, showingID int, layout Layout) ([]Seat, error)
	GetById(ctx context.Context, id int) (*Showing, error)
	GetAll(ctx context.Context, movieID int, pagination Pagination) ([]Showing, *Metadata, error)
}
