package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"ticketledger/entities"
)

func (h Handler) StoreTicketSold(ctx context.Context, event *entities.TicketSold_v1) error {
	return h.store(ctx, event.Header, event.TicketID, event)
}

func (h Handler) StoreTicketRedeemed(ctx context.Context, event *entities.TicketRedeemed_v1) error {
	return h.store(ctx, event.Header, event.TicketID, event)
}

func (h Handler) StoreRedemptionUndone(ctx context.Context, event *entities.RedemptionUndone_v1) error {
	return h.store(ctx, event.Header, event.TicketID, event)
}

func (h Handler) StoreTicketUpdated(ctx context.Context, event *entities.TicketUpdated_v1) error {
	return h.store(ctx, event.Header, event.TicketID, event)
}

func (h Handler) store(ctx context.Context, header entities.EventHeader, ticketID int64, event any) error {
	eventName := cqrs.StructName(event)

	log.FromContext(ctx).
		WithField("event_name", eventName).
		WithField("ticket_id", ticketID).
		Info("Storing activity")

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal %s: %w", eventName, err)
	}

	return h.activityRepo.Add(ctx, entities.ActivityEntry{
		EntryID:     header.ID,
		EventName:   eventName,
		TicketID:    ticketID,
		Payload:     payload,
		PublishedAt: header.PublishedAt,
	})
}

// Handlers returns the event handlers to register on the event processor.
func (h Handler) Handlers() []cqrs.EventHandler {
	return []cqrs.EventHandler{
		cqrs.NewEventHandler("StoreTicketSoldActivity", h.StoreTicketSold),
		cqrs.NewEventHandler("StoreTicketRedeemedActivity", h.StoreTicketRedeemed),
		cqrs.NewEventHandler("StoreRedemptionUndoneActivity", h.StoreRedemptionUndone),
		cqrs.NewEventHandler("StoreTicketUpdatedActivity", h.StoreTicketUpdated),
	}
}
