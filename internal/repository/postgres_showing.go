package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinetrack/internal/domain"
)

type PostgresShowingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowingRepository(db *pgxpool.Pool) *PostgresShowingRepository {
	return &PostgresShowingRepository{
		db: db,
	}
}

func (p *PostgresShowingRepository) Create(ctx context.Context, showing *domain.Showing) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		return insertShowing(ctx, tx, showing)
	})
}

func (p *PostgresShowingRepository) CreateWithLayout(
	ctx context.Context,
	showing *domain.Showing,
	layout domain.Layout) ([]domain.Seat, error) {

	var seats []domain.Seat

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		err := insertShowing(ctx, tx, showing)
		if err != nil {
			return err
		}

		seats, err = insertSeats(ctx, tx, showing.ID, layout)

		return err
	})
	if err != nil {
		return nil, err
	}

	return seats, nil
}

func insertShowing(ctx context.Context, tx pgx.Tx, showing *domain.Showing) error {
	query := `
		INSERT INTO showings (movie_id, theater, start_time)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, (SELECT title FROM movies WHERE id = $1)
	`

	err := tx.QueryRow(ctx, query, showing.MovieID, showing.Theater, showing.StartTime).Scan(
		&showing.ID,
		&showing.CreatedAt,
		&showing.MovieTitle,
	)
	if err != nil {
		if isConstraintViolation(err, pgerrcode.ForeignKeyViolation, "showings_movie_id_fkey") {
			return domain.ErrMovieNotFound
		}

		return err
	}

	return nil
}

func (p *PostgresShowingRepository) GenerateLayout(
	ctx context.Context,
	showingID int,
	layout domain.Layout) ([]domain.Seat, error) {

	var seats []domain.Seat

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		// Concurrent generators for the same showing serialize on the showing row.
		err := tx.QueryRow(ctx, `SELECT id FROM showings WHERE id = $1 FOR UPDATE`, showingID).Scan(&showingID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrShowingNotFound
			}

			return err
		}

		var hasSeats bool

		err = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM seats WHERE showing_id = $1)`, showingID).Scan(&hasSeats)
		if err != nil {
			return err
		}

		if hasSeats {
			return domain.ErrLayoutAlreadyExists
		}

		seats, err = insertSeats(ctx, tx, showingID, layout)

		return err
	})
	if err != nil {
		return nil, err
	}

	return seats, nil
}

// insertSeats bulk loads the grid and reads it back with the generated ids.
func insertSeats(ctx context.Context, tx pgx.Tx, showingID int, layout domain.Layout) ([]domain.Seat, error) {
	grid := layout.Seats(showingID)

	rows := make([][]any, 0, len(grid))
	for _, seat := range grid {
		rows = append(rows, []any{seat.ShowingID, seat.Row, seat.Number, seat.Code})
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"seats"},
		[]string{"showing_id", "seat_row", "seat_number", "seat_code"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		if isConstraintViolation(err, pgerrcode.UniqueViolation, "seats_showing_position_key") ||
			isConstraintViolation(err, pgerrcode.UniqueViolation, "seats_showing_code_key") {
			return nil, domain.ErrLayoutAlreadyExists
		}

		return nil, err
	}

	return scanSeats(ctx, tx, showingID)
}

func scanSeats(ctx context.Context, tx pgx.Tx, showingID int) ([]domain.Seat, error) {
	query := `
		SELECT id, showing_id, seat_row, seat_number, seat_code, is_reserved
		FROM seats
		WHERE showing_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := tx.Query(ctx, query, showingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err := rows.Scan(&seat.ID, &seat.ShowingID, &seat.Row, &seat.Number, &seat.Code, &seat.Reserved)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresShowingRepository) GetById(ctx context.Context, id int) (*domain.Showing, error) {
	query := `
		SELECT s.id, s.movie_id, m.title, s.theater, s.start_time, s.created_at
		FROM showings s
		JOIN movies m ON s.movie_id = m.id
		WHERE s.id = $1
	`

	var showing domain.Showing

	err := p.db.QueryRow(ctx, query, id).Scan(
		&showing.ID,
		&showing.MovieID,
		&showing.MovieTitle,
		&showing.Theater,
		&showing.StartTime,
		&showing.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShowingNotFound
		}

		return nil, err
	}

	return &showing, nil
}

func (p *PostgresShowingRepository) GetAll(
	ctx context.Context,
	movieID int,
	pagination domain.Pagination) ([]domain.Showing, *domain.Metadata, error) {

	query := `
		SELECT COUNT(*) OVER(), s.id, s.movie_id, m.title, s.theater, s.start_time, s.created_at
		FROM showings s
		JOIN movies m ON s.movie_id = m.id
		WHERE ($1 = 0 OR s.movie_id = $1)
		ORDER BY s.start_time, s.id
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, movieID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	showings := make([]domain.Showing, 0)

	for rows.Next() {
		var showing domain.Showing

		err := rows.Scan(
			&totalRecords,
			&showing.ID,
			&showing.MovieID,
			&showing.MovieTitle,
			&showing.Theater,
			&showing.StartTime,
			&showing.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		showings = append(showings, showing)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return showings, metadata, nil
}
