package observability

import (
	"context"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
)

type publisherMock struct {
	lock     sync.Mutex
	messages map[string][]*message.Message
}

func (p *publisherMock) Publish(topic string, messages ...*message.Message) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.messages == nil {
		p.messages = make(map[string][]*message.Message)
	}
	p.messages[topic] = append(p.messages[topic], messages...)
	return nil
}

func (p *publisherMock) Close() error {
	return nil
}

func TestTracingPublisherDecorator(t *testing.T) {
	tp := tracesdk.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	otel.SetTextMapPropagator(propagation.TraceContext{})

	ctx, span := tp.Tracer("test").Start(context.Background(), "publish")
	defer span.End()

	msg := message.NewMessage(watermill.NewUUID(), []byte(`{}`))
	msg.SetContext(ctx)

	pub := &publisherMock{}
	err := TracingPublisherDecorator{Publisher: pub}.Publish("events.TicketSold_v1", msg)
	require.NoError(t, err)

	require.Len(t, pub.messages["events.TicketSold_v1"], 1)
	traceparent := pub.messages["events.TicketSold_v1"][0].Metadata.Get("traceparent")
	assert.Contains(t, traceparent, span.SpanContext().TraceID().String())
}
