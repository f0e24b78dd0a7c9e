package domain

import (
	"cmp"
	"context"
	"slices"
)

type Seat struct {
	ID        int
	ShowingID int
	Row       string
	Number    int
	Code      string
	Reserved  bool
}

type SeatRow struct {
	Label string
	Seats []Seat
}

// SeatLayout is the read projection of a showing's seats grouped by row.
type SeatLayout struct {
	ShowingID int
	Rows      []SeatRow
}

// GroupSeats builds the layout of a showing. Rows are ordered by label and
// seats inside a row by number, so A2 comes before A10.
func GroupSeats(showingID int, seats []Seat) *SeatLayout {
	sorted := slices.Clone(seats)
	slices.SortStableFunc(sorted, func(a, b Seat) int {
		if c := cmp.Compare(a.Row, b.Row); c != 0 {
			return c
		}
		return cmp.Compare(a.Number, b.Number)
	})

	layout := &SeatLayout{ShowingID: showingID}

	for _, seat := range sorted {
		n := len(layout.Rows)
		if n == 0 || layout.Rows[n-1].Label != seat.Row {
			layout.Rows = append(layout.Rows, SeatRow{Label: seat.Row})
			n++
		}

		layout.Rows[n-1].Seats = append(layout.Rows[n-1].Seats, seat)
	}

	return layout
}

func (l *SeatLayout) Row(label string) ([]Seat, bool) {
	for _, row := range l.Rows {
		if row.Label == label {
			return row.Seats, true
		}
	}

	return nil, false
}

func (l *SeatLayout) ByRow() map[string][]Seat {
	rows := make(map[string][]Seat, len(l.Rows))
	for _, row := range l.Rows {
		rows[row.Label] = row.Seats
	}

	return rows
}

func (l *SeatLayout) SeatCount() int {
	total := 0
	for _, row := range l.Rows {
		total += len(row.Seats)
	}

	return total
}

type SeatRepository interface {
	// GetByShowing returns the seats of a showing ordered by row and number.
	// It fails with ErrShowingNotFound when the showing itself does not exist.
	GetByShowing(ctx context.Context, showingID int) ([]Seat, error)
	GetById(ctx context.Context, id int) (*Seat, error)
}
