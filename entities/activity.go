package entities

import (
	"encoding/json"
	"time"
)

// ActivityEntry is a domain event stored as it arrived from the message bus.
type ActivityEntry struct {
	EntryID     string          `json:"entry_id" db:"entry_id"`
	EventName   string          `json:"event_name" db:"event_name"`
	TicketID    int64           `json:"ticket_id" db:"ticket_id"`
	Payload     json.RawMessage `json:"payload" db:"payload"`
	PublishedAt time.Time       `json:"published_at" db:"published_at"`
}
