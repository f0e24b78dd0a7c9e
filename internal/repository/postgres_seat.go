package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinetrack/internal/domain"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) GetByShowing(ctx context.Context, showingID int) ([]domain.Seat, error) {
	// The left join yields a single all-null seat row for a showing without seats
	// and no rows at all for a showing that does not exist.
	query := `
		SELECT sh.id, se.id, se.seat_row, se.seat_number, se.seat_code, se.is_reserved
		FROM showings sh
		LEFT JOIN seats se ON se.showing_id = sh.id
		WHERE sh.id = $1
		ORDER BY se.seat_row, se.seat_number
	`

	rows, err := p.db.Query(ctx, query, showingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := false
	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var (
			seatID   *int
			row      *string
			number   *int
			code     *string
			reserved *bool
		)

		err := rows.Scan(&showingID, &seatID, &row, &number, &code, &reserved)
		if err != nil {
			return nil, err
		}

		found = true

		if seatID == nil {
			continue
		}

		seats = append(seats, domain.Seat{
			ID:        *seatID,
			ShowingID: showingID,
			Row:       *row,
			Number:    *number,
			Code:      *code,
			Reserved:  *reserved,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, domain.ErrShowingNotFound
	}

	return seats, nil
}

func (p *PostgresSeatRepository) GetById(ctx context.Context, id int) (*domain.Seat, error) {
	query := `
		SELECT id, showing_id, seat_row, seat_number, seat_code, is_reserved
		FROM seats
		WHERE id = $1
	`

	var seat domain.Seat

	err := p.db.QueryRow(ctx, query, id).Scan(
		&seat.ID,
		&seat.ShowingID,
		&seat.Row,
		&seat.Number,
		&seat.Code,
		&seat.Reserved,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSeatNotFound
		}

		return nil, err
	}

	return &seat, nil
}
