package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"ticketledger/entities"
	"ticketledger/message/event"
	"ticketledger/message/outbox"
)

// publishInTx stores the event in the outbox table within tx, so it is
// forwarded only if tx commits.
func publishInTx(ctx context.Context, tx *sqlx.Tx, e entities.IEvent) error {
	outboxPublisher, err := outbox.NewPublisherForDb(ctx, tx)
	if err != nil {
		return fmt.Errorf("could not create outbox publisher: %w", err)
	}

	if err := event.NewBus(outboxPublisher).Publish(ctx, e); err != nil {
		return fmt.Errorf("could not publish %T: %w", e, err)
	}

	return nil
}
