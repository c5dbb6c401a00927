package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ticketledger/entities"
)

type EventRepository struct {
	db *DB
}

func NewEventRepository(db *DB) EventRepository {
	if db == nil {
		panic("db is nil")
	}
	return EventRepository{
		db: db,
	}
}

func (r EventRepository) Create(ctx context.Context, in entities.EventInput) (entities.Event, error) {
	in, err := in.Normalize()
	if err != nil {
		return entities.Event{}, err
	}

	var event entities.Event
	err = r.db.Conn.GetContext(ctx, &event, `
		INSERT INTO events (title, date, capacity)
		VALUES ($1, $2, $3)
		RETURNING event_id, title, date, capacity, created_at`,
		in.Title, in.Date, in.Capacity,
	)
	if err != nil {
		return entities.Event{}, fmt.Errorf("could not save event: %w", err)
	}

	return event, nil
}

func (r EventRepository) Update(ctx context.Context, eventID int64, in entities.EventInput) (entities.Event, error) {
	in, err := in.Normalize()
	if err != nil {
		return entities.Event{}, err
	}

	var event entities.Event
	err = r.db.Conn.GetContext(ctx, &event, `
		UPDATE events
		SET title = $2, date = $3, capacity = $4
		WHERE event_id = $1
		RETURNING event_id, title, date, capacity, created_at`,
		eventID, in.Title, in.Date, in.Capacity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Event{}, fmt.Errorf("event %d: %w", eventID, entities.ErrNotFound)
	}
	if err != nil {
		return entities.Event{}, fmt.Errorf("could not update event: %w", err)
	}

	return event, nil
}

// Delete removes the event; tickets and their transactions go with it.
func (r EventRepository) Delete(ctx context.Context, eventID int64) error {
	res, err := r.db.Conn.ExecContext(ctx, `DELETE FROM events WHERE event_id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("could not delete event: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not delete event: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("event %d: %w", eventID, entities.ErrNotFound)
	}

	return nil
}

func (r EventRepository) EventByID(ctx context.Context, eventID int64) (entities.Event, error) {
	var event entities.Event
	err := r.db.Conn.GetContext(ctx, &event, `
		SELECT event_id, title, date, capacity, created_at
		FROM events
		WHERE event_id = $1`, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Event{}, fmt.Errorf("event %d: %w", eventID, entities.ErrNotFound)
	}
	if err != nil {
		return entities.Event{}, fmt.Errorf("could not get event: %w", err)
	}

	return event, nil
}

func (r EventRepository) List(ctx context.Context) ([]entities.Event, error) {
	events := []entities.Event{}
	err := r.db.Conn.SelectContext(ctx, &events, `
		SELECT event_id, title, date, capacity, created_at
		FROM events
		ORDER BY date, event_id`)
	if err != nil {
		return nil, fmt.Errorf("could not list events: %w", err)
	}

	return events, nil
}

func (r EventRepository) Detail(ctx context.Context, eventID int64) (entities.EventDetail, error) {
	event, err := r.EventByID(ctx, eventID)
	if err != nil {
		return entities.EventDetail{}, err
	}

	tickets, err := selectTicketViews(ctx, r.db.Conn, `WHERE t.event_id = $1 ORDER BY t.ticket_id`, eventID)
	if err != nil {
		return entities.EventDetail{}, err
	}

	redemptions := []entities.Transaction{}
	err = r.db.Conn.SelectContext(ctx, &redemptions, `
		SELECT transaction_id, ticket_id, event_id, type, amount, reason, processed_at
		FROM transactions
		WHERE event_id = $1 AND type = $2
		ORDER BY processed_at DESC, transaction_id DESC`,
		eventID, entities.TransactionTypeRedeem,
	)
	if err != nil {
		return entities.EventDetail{}, fmt.Errorf("could not get redemptions of event: %w", err)
	}

	return entities.EventDetail{
		Event:       event,
		Tickets:     tickets,
		Redemptions: redemptions,
	}, nil
}
