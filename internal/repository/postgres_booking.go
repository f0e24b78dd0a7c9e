package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinetrack/internal/domain"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

func (p *PostgresBookingRepository) Claim(ctx context.Context, seatID, userID int) (*domain.Booking, error) {
	booking := domain.Booking{
		Reference: uuid.New(),
		SeatID:    seatID,
		UserID:    userID,
	}

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		// Only one of several concurrent claims can match is_reserved = FALSE; the
		// others wait for the row lock, re-check the predicate and update nothing.
		query := `
			UPDATE seats
			SET is_reserved = TRUE, updated_at = NOW()
			WHERE id = $1 AND is_reserved = FALSE
			RETURNING showing_id, seat_code
		`

		err := tx.QueryRow(ctx, query, seatID).Scan(&booking.ShowingID, &booking.SeatCode)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return unclaimableSeatError(ctx, tx, seatID)
			}

			return err
		}

		query = `
			INSERT INTO bookings (reference, seat_id, user_id)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`

		err = tx.QueryRow(ctx, query, booking.Reference, seatID, userID).Scan(&booking.ID, &booking.CreatedAt)
		if err != nil {
			switch {
			case isConstraintViolation(err, pgerrcode.ForeignKeyViolation, "bookings_user_id_fkey"):
				return domain.ErrUserNotFound
			case isConstraintViolation(err, pgerrcode.UniqueViolation, "bookings_seat_id_key"):
				return domain.ErrSeatAlreadyReserved
			default:
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

// unclaimableSeatError tells a missing seat apart from one that is already taken.
func unclaimableSeatError(ctx context.Context, tx pgx.Tx, seatID int) error {
	var exists bool

	err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM seats WHERE id = $1)`, seatID).Scan(&exists)
	if err != nil {
		return err
	}

	if !exists {
		return domain.ErrSeatNotFound
	}

	return domain.ErrSeatAlreadyReserved
}

func (p *PostgresBookingRepository) Release(ctx context.Context, bookingID, userID int) (*domain.Booking, error) {
	booking := domain.Booking{
		ID:     bookingID,
		UserID: userID,
	}

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			DELETE FROM bookings
			WHERE id = $1 AND user_id = $2
			RETURNING reference, seat_id, created_at
		`

		err := tx.QueryRow(ctx, query, bookingID, userID).Scan(
			&booking.Reference,
			&booking.SeatID,
			&booking.CreatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrBookingNotFound
			}

			return err
		}

		query = `
			UPDATE seats
			SET is_reserved = FALSE, updated_at = NOW()
			WHERE id = $1 AND is_reserved = TRUE
			RETURNING showing_id, seat_code
		`

		err = tx.QueryRow(ctx, query, booking.SeatID).Scan(&booking.ShowingID, &booking.SeatCode)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("seat %d of booking %d is not marked as reserved", booking.SeatID, bookingID)
			}

			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (p *PostgresBookingRepository) GetSummariesByUserId(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			b.id,
			b.reference,
			sh.id,
			m.title,
			m.poster_url,
			sh.theater,
			sh.start_time,
			se.id,
			se.seat_code,
			b.created_at
		FROM bookings b
		JOIN seats se ON b.seat_id = se.id
		JOIN showings sh ON se.showing_id = sh.id
		JOIN movies m ON sh.movie_id = m.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	bookings := make([]domain.BookingSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var booking domain.BookingSummary

		err := rows.Scan(
			&totalRecords,
			&booking.BookingID,
			&booking.Reference,
			&booking.ShowingID,
			&booking.MovieTitle,
			&booking.MoviePosterUrl,
			&booking.Theater,
			&booking.StartTime,
			&booking.SeatID,
			&booking.SeatCode,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return bookings, metadata, nil
}

func (p *PostgresBookingRepository) GetSummaryByIdAndUserId(
	ctx context.Context,
	bookingID,
	userID int) (*domain.BookingSummary, error) {

	query := `
		SELECT
			b.id,
			b.reference,
			sh.id,
			m.title,
			m.poster_url,
			sh.theater,
			sh.start_time,
			se.id,
			se.seat_code,
			b.created_at
		FROM bookings b
		JOIN seats se ON b.seat_id = se.id
		JOIN showings sh ON se.showing_id = sh.id
		JOIN movies m ON sh.movie_id = m.id
		WHERE b.id = $1 AND b.user_id = $2
	`

	var booking domain.BookingSummary

	err := p.db.QueryRow(ctx, query, bookingID, userID).Scan(
		&booking.BookingID,
		&booking.Reference,
		&booking.ShowingID,
		&booking.MovieTitle,
		&booking.MoviePosterUrl,
		&booking.Theater,
		&booking.StartTime,
		&booking.SeatID,
		&booking.SeatCode,
		&booking.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}

		return nil, err
	}

	return &booking, nil
}
