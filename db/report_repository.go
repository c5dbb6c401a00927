package db

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"ticketledger/entities"
)

type ReportRepository struct {
	db     *DB
	events EventRepository
}

func NewReportRepository(db *DB) ReportRepository {
	if db == nil {
		panic("db is nil")
	}
	return ReportRepository{
		db:     db,
		events: NewEventRepository(db),
	}
}

// Dashboard recomputes the totals over every ticket on each call.
func (r ReportRepository) Dashboard(ctx context.Context) (entities.Dashboard, error) {
	events, err := r.events.List(ctx)
	if err != nil {
		return entities.Dashboard{}, err
	}

	tickets, err := selectTicketViews(ctx, r.db.Conn, `ORDER BY t.ticket_id`)
	if err != nil {
		return entities.Dashboard{}, err
	}

	var totalRedeemed int64
	err = r.db.Conn.GetContext(ctx, &totalRedeemed, `
		SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE type = $1`,
		entities.TransactionTypeRedeem,
	)
	if err != nil {
		return entities.Dashboard{}, fmt.Errorf("could not sum redemptions: %w", err)
	}

	return entities.Dashboard{
		TotalRevenue: lo.SumBy(tickets, func(t entities.TicketView) int64 {
			return t.Price
		}),
		TotalRedeemableIssued: lo.SumBy(tickets, func(t entities.TicketView) int64 {
			return t.RedeemableIssued
		}),
		TotalRedeemed: totalRedeemed,
		RemainingBalance: lo.SumBy(tickets, func(t entities.TicketView) int64 {
			return t.Balance
		}),
		Events: events,
	}, nil
}

// EventTickets returns the event and its tickets with balances, ordered by id.
func (r ReportRepository) EventTickets(ctx context.Context, eventID int64) (entities.Event, []entities.TicketView, error) {
	event, err := r.events.EventByID(ctx, eventID)
	if err != nil {
		return entities.Event{}, nil, err
	}

	tickets, err := selectTicketViews(ctx, r.db.Conn, `WHERE t.event_id = $1 ORDER BY t.ticket_id`, eventID)
	if err != nil {
		return entities.Event{}, nil, err
	}

	return event, tickets, nil
}
