package http

import (
	"context"

	"ticketledger/entities"
)

type Handler struct {
	eventRepo    EventRepository
	ticketRepo   TicketRepository
	ledgerRepo   LedgerRepository
	reportRepo   ReportRepository
	activityRepo ActivityRepository
}

type EventRepository interface {
	Create(ctx context.Context, in entities.EventInput) (entities.Event, error)
	Update(ctx context.Context, eventID int64, in entities.EventInput) (entities.Event, error)
	Delete(ctx context.Context, eventID int64) error
	EventByID(ctx context.Context, eventID int64) (entities.Event, error)
	List(ctx context.Context) ([]entities.Event, error)
	Detail(ctx context.Context, eventID int64) (entities.EventDetail, error)
}

type TicketRepository interface {
	Sell(ctx context.Context, ticket entities.Ticket) (entities.Ticket, error)
	Update(ctx context.Context, ticketID int64, edit entities.TicketEdit) (entities.Ticket, error)
	Delete(ctx context.Context, ticketID int64) error
	Detail(ctx context.Context, qrToken string) (entities.TicketDetail, error)
	SearchByToken(ctx context.Context, q string) ([]entities.Ticket, error)
	SearchByBuyer(ctx context.Context, name string) ([]entities.Ticket, error)
	Lookup(ctx context.Context, query entities.LookupQuery) (entities.Ticket, error)
}

type LedgerRepository interface {
	Redeem(ctx context.Context, redemption entities.Redemption) (entities.RedemptionResult, error)
	UndoRedemption(ctx context.Context, transactionID int64) (entities.RedemptionResult, error)
	RedemptionsByEvent(ctx context.Context, eventID int64) ([]entities.RedemptionRow, error)
}

type ReportRepository interface {
	Dashboard(ctx context.Context) (entities.Dashboard, error)
	EventTickets(ctx context.Context, eventID int64) (entities.Event, []entities.TicketView, error)
}

type ActivityRepository interface {
	List(ctx context.Context, ticketID *int64, limit int) ([]entities.ActivityEntry, error)
}
