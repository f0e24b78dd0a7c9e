// Package events publishes booking lifecycle notifications to a message broker.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinetrack/internal/domain"
)

const (
	TypeBookingClaimed  = "booking.claimed"
	TypeBookingReleased = "booking.released"
)

type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  int       `json:"bookingId"`
	Reference  uuid.UUID `json:"reference"`
	SeatID     int       `json:"seatId"`
	SeatCode   string    `json:"seatCode"`
	ShowingID  int       `json:"showingId"`
	UserID     int       `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewBookingEvent(eventType string, booking *domain.Booking, occurredAt time.Time) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		Reference:  booking.Reference,
		SeatID:     booking.SeatID,
		SeatCode:   booking.SeatCode,
		ShowingID:  booking.ShowingID,
		UserID:     booking.UserID,
		OccurredAt: occurredAt.UTC(),
	}
}

// Publisher delivers events after the state change they describe has been committed.
// Delivery is best effort: callers log failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}

// NopPublisher discards every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, BookingEvent) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
