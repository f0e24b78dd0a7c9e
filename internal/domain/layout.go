package domain

import (
	"fmt"
	"strconv"
)

const (
	DefaultRows        = 5
	DefaultSeatsPerRow = 5
	MaxRows            = 26
	MaxSeatsPerRow     = 50
)

// Layout describes the rows x seats-per-row grid of a showing.
type Layout struct {
	Rows        int
	SeatsPerRow int
}

func DefaultLayout() Layout {
	return Layout{Rows: DefaultRows, SeatsPerRow: DefaultSeatsPerRow}
}

func (l Layout) Validate() error {
	if l.Rows < 1 || l.Rows > MaxRows {
		return fmt.Errorf("%w: rows must be between 1 and %d", ErrInvalidLayout, MaxRows)
	}

	if l.SeatsPerRow < 1 || l.SeatsPerRow > MaxSeatsPerRow {
		return fmt.Errorf("%w: seats per row must be between 1 and %d", ErrInvalidLayout, MaxSeatsPerRow)
	}

	return nil
}

func (l Layout) Capacity() int {
	return l.Rows * l.SeatsPerRow
}

// Seats returns the unsaved seats of the grid in row-major order: A1..A<n>, B1.. and so on.
func (l Layout) Seats(showingID int) []Seat {
	seats := make([]Seat, 0, l.Capacity())

	for r := 0; r < l.Rows; r++ {
		row := RowLabel(r)

		for n := 1; n <= l.SeatsPerRow; n++ {
			seats = append(seats, Seat{
				ShowingID: showingID,
				Row:       row,
				Number:    n,
				Code:      SeatCode(row, n),
			})
		}
	}

	return seats
}

// RowLabel maps a zero-based row index to its letter.
func RowLabel(index int) string {
	return string(rune('A' + index))
}

func SeatCode(row string, number int) string {
	return row + strconv.Itoa(number)
}

// ParseSeatCode splits a code such as "C12" into its row letter and number.
func ParseSeatCode(code string) (string, int, error) {
	if len(code) < 2 || code[0] < 'A' || code[0] > 'Z' {
		return "", 0, fmt.Errorf("invalid seat code %q", code)
	}

	number, err := strconv.Atoi(code[1:])
	if err != nil || number < 1 {
		return "", 0, fmt.Errorf("invalid seat code %q", code)
	}

	return code[:1], number, nil
}
