package db

import (
	"context"
	"fmt"

	"ticketledger/entities"
)

const defaultActivityLimit = 100

type ActivityRepository struct {
	db *DB
}

func NewActivityRepository(db *DB) ActivityRepository {
	if db == nil {
		panic("db is nil")
	}
	return ActivityRepository{
		db: db,
	}
}

// Add stores the entry once; redelivered events are ignored.
func (r ActivityRepository) Add(ctx context.Context, entry entities.ActivityEntry) error {
	_, err := r.db.Conn.NamedExecContext(ctx, `
		INSERT INTO
			activity_log (entry_id, event_name, ticket_id, payload, published_at)
		VALUES
			(:entry_id, :event_name, :ticket_id, :payload, :published_at)
		ON CONFLICT (entry_id) DO NOTHING`, entry)
	if err != nil {
		return fmt.Errorf("could not add activity entry: %w", err)
	}

	return nil
}

// List returns the newest entries first, optionally limited to one ticket.
func (r ActivityRepository) List(ctx context.Context, ticketID *int64, limit int) ([]entities.ActivityEntry, error) {
	if limit <= 0 || limit > defaultActivityLimit {
		limit = defaultActivityLimit
	}

	entries := []entities.ActivityEntry{}
	err := r.db.Conn.SelectContext(ctx, &entries, `
		SELECT entry_id, event_name, ticket_id, payload, published_at
		FROM activity_log
		WHERE $1::BIGINT IS NULL OR ticket_id = $1
		ORDER BY published_at DESC
		LIMIT $2`, ticketID, limit)
	if err != nil {
		return nil, fmt.Errorf("could not list activity: %w", err)
	}

	return entries, nil
}
