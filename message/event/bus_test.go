package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketledger/entities"
	"ticketledger/message/event"
)

func TestBus_publishes_to_event_topic(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{Persistent: true}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, "events.TicketSold_v1")
	require.NoError(t, err)

	sold := entities.TicketSold_v1{
		Header:   entities.NewEventHeader(),
		TicketID: 1,
		EventID:  2,
		Price:    1000,
		QRToken:  "abc123abc123",
	}
	require.NoError(t, event.NewBus(pubSub).Publish(ctx, sold))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, "TicketSold_v1", msg.Metadata.Get("name"))
		assert.Contains(t, string(msg.Payload), `"qr_token":"abc123abc123"`)
	case <-ctx.Done():
		t.Fatal("event was not published")
	}
}
