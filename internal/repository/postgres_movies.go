package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinetrack/internal/domain"
)

const movieColumns = `id, title, genre, duration, release_date, poster_url, imdb_rating`

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

// GetAll expects pagination.Sort to be validated against the sortable columns,
// it is interpolated into the query.
func (p *PostgresMovieRepository) GetAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Movie, *domain.Metadata, error) {
	query := fmt.Sprintf(`SELECT count(*) OVER(), %s
		FROM movies
		WHERE (to_tsvector('english', title) @@ plainto_tsquery('english', $1) OR $1 = '')
		ORDER BY %s %s, id ASC
		LIMIT $2 OFFSET $3`, movieColumns, pagination.SortColumn(), pagination.SortDirection())

	rows, err := p.db.Query(ctx, query, pagination.Term, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		var row movieRow

		err := rows.Scan(append([]any{&totalRecords}, row.dest()...)...)
		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, row.toDomain())
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)

	var row movieRow

	err := p.db.QueryRow(ctx, query, id).Scan(row.dest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovieNotFound
		}

		return nil, err
	}

	return row.toDomain(), nil
}

func (p *PostgresMovieRepository) Upsert(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, genre, duration, release_date, poster_url, imdb_rating)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (title) DO UPDATE SET
			genre = EXCLUDED.genre,
			duration = EXCLUDED.duration,
			release_date = EXCLUDED.release_date,
			poster_url = EXCLUDED.poster_url,
			imdb_rating = EXCLUDED.imdb_rating
		RETURNING id
	`

	var releaseDate pgtype.Date
	if !movie.ReleaseDate.IsZero() {
		releaseDate = pgtype.Date{Time: movie.ReleaseDate, Valid: true}
	}

	var duration pgtype.Int4
	if movie.Duration > 0 {
		duration = pgtype.Int4{Int32: int32(movie.Duration), Valid: true}
	}

	return p.db.QueryRow(ctx, query,
		movie.Title,
		movie.Genre,
		duration,
		releaseDate,
		movie.PosterUrl,
		movie.ImdbRating,
	).Scan(&movie.ID)
}

// movieRow holds the nullable columns of a movie until they are mapped to the domain type.
type movieRow struct {
	id          int
	title       string
	genre       string
	duration    pgtype.Int4
	releaseDate pgtype.Date
	posterUrl   string
	rating      pgtype.Numeric
}

func (r *movieRow) dest() []any {
	return []any{&r.id, &r.title, &r.genre, &r.duration, &r.releaseDate, &r.posterUrl, &r.rating}
}

func (r *movieRow) toDomain() *domain.Movie {
	movie := &domain.Movie{
		ID:         r.id,
		Title:      r.title,
		Genre:      r.genre,
		Duration:   int(r.duration.Int32),
		PosterUrl:  r.posterUrl,
		ImdbRating: toFloat64(r.rating),
	}

	if r.releaseDate.Valid {
		movie.ReleaseDate = r.releaseDate.Time
	}

	return movie
}

func toFloat64(n pgtype.Numeric) float64 {
	if !n.Valid {
		return 0
	}

	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return 0
	}

	return f.Float64
}
