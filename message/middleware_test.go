package message_test

import (
	"testing"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ticketsMessage "ticketledger/message"
)

func TestPropagateCorrelationID(t *testing.T) {
	var got string
	handler := ticketsMessage.PropagateCorrelationID(func(msg *message.Message) ([]*message.Message, error) {
		got = log.CorrelationIDFromContext(msg.Context())
		return nil, nil
	})

	msg := message.NewMessage(watermill.NewUUID(), []byte("{}"))
	msg.Metadata.Set("correlation_id", "test-correlation-id")

	_, err := handler(msg)
	require.NoError(t, err)
	assert.Equal(t, "test-correlation-id", got)
}

func TestPropagateCorrelationID_generates_missing_id(t *testing.T) {
	var got string
	handler := ticketsMessage.PropagateCorrelationID(func(msg *message.Message) ([]*message.Message, error) {
		got = log.CorrelationIDFromContext(msg.Context())
		return nil, nil
	})

	_, err := handler(message.NewMessage(watermill.NewUUID(), []byte("{}")))
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}
