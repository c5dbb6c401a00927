package entities

import (
	"strings"
	"time"
)

type Event struct {
	EventID   int64     `json:"event_id" db:"event_id"`
	Title     string    `json:"title" db:"title"`
	Date      string    `json:"date" db:"date"`
	Capacity  int       `json:"capacity" db:"capacity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// EventInput carries the operator-editable fields of an event.
type EventInput struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Capacity int    `json:"capacity"`
}

func (in EventInput) Normalize() (EventInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Date = strings.TrimSpace(in.Date)

	if in.Title == "" {
		return EventInput{}, NewValidationError("title is required")
	}
	if in.Date == "" {
		return EventInput{}, NewValidationError("date is required")
	}
	if in.Capacity < 0 {
		return EventInput{}, NewValidationError("capacity must be a non-negative integer")
	}

	return in, nil
}

type EventDetail struct {
	Event       Event         `json:"event"`
	Tickets     []TicketView  `json:"tickets"`
	Redemptions []Transaction `json:"redemptions"`
}
