package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID          int
	Title       string
	Genre       string
	Duration    int
	ReleaseDate time.Time
	PosterUrl   string
	ImdbRating  float64
}

type MovieRepository interface {
	GetAll(ctx context.Context, pagination Pagination) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	// Upsert inserts the movie or refreshes the row with the same title.
	Upsert(ctx context.Context, movie *Movie) error
}

// MovieCatalog looks movies up in an external metadata provider.
type MovieCatalog interface {
	FetchByTitle(ctx context.Context, title string) (*Movie, error)
}
