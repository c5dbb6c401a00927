package outbox

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-sql/v2/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"
)

func SubscribeForPGMessages(db *sqlx.DB, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	subConfig := sql.SubscriberConfig{
		SchemaAdapter:  sql.DefaultPostgreSQLSchema{},
		OffsetsAdapter: sql.DefaultPostgreSQLOffsetsAdapter{},
	}

	sub, err := sql.NewSubscriber(db, subConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("could not create outbox subscriber: %w", err)
	}

	// creates the outbox tables, publishers in transactions rely on them
	if err := sub.SubscribeInitialize(topic); err != nil {
		return nil, fmt.Errorf("could not initialize outbox topic: %w", err)
	}

	return sub, nil
}
