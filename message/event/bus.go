package event

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"

	"ticketledger/entities"
)

const (
	externalTopicPrefix = "events."
	internalTopicPrefix = "internal-events.svc-ticketledger."
)

func NewBus(pub message.Publisher) *cqrs.EventBus {
	eventBus, err := cqrs.NewEventBusWithConfig(
		pub,
		cqrs.EventBusConfig{
			GeneratePublishTopic: func(params cqrs.GenerateEventPublishTopicParams) (string, error) {
				return topicFor(params.EventName, params.Event)
			},
			Marshaler: marshaler,
		},
	)
	if err != nil {
		panic(err)
	}

	return eventBus
}

func topicFor(eventName string, e any) (string, error) {
	event, ok := e.(entities.IEvent)
	if !ok {
		return "", fmt.Errorf("invalid event type: %T doesn't implement entities.IEvent", e)
	}

	if event.IsInternal() {
		return internalTopicPrefix + eventName, nil
	}
	return externalTopicPrefix + eventName, nil
}
