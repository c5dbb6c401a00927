package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ticketledger/entities"
)

const (
	maxQRTokenAttempts = 5
	searchLimit        = 50

	uniqueViolationCode = "23505"
)

const ticketColumns = `ticket_id, event_id, buyer_name, tier, price, redeemable_issued, status, qr_token, issued_at`

const ticketViewSelect = `
	SELECT
		t.ticket_id, t.event_id, t.buyer_name, t.tier, t.price, t.redeemable_issued,
		t.status, t.qr_token, t.issued_at,
		e.title AS event_title,
		COALESCE((
			SELECT SUM(x.amount) FROM transactions x
			WHERE x.ticket_id = t.ticket_id AND x.type = 'redeem'
		), 0) AS redeemed
	FROM tickets t
	JOIN events e ON e.event_id = t.event_id
	`

type TicketRepository struct {
	db *DB

	newQRToken func() string
}

func NewTicketRepo(db *DB) TicketRepository {
	if db == nil {
		panic("db is nil")
	}
	return TicketRepository{
		db:         db,
		newQRToken: entities.NewQRToken,
	}
}

// Sell stores the ticket with a fresh QR token together with its sale
// transaction. A token collision retries the whole transaction with a new token.
func (tr TicketRepository) Sell(ctx context.Context, ticket entities.Ticket) (sold entities.Ticket, err error) {
	ctx, span := startSpan(ctx, "TicketRepository.Sell", trace.WithAttributes(
		attribute.Int64("event_id", ticket.EventID),
		attribute.Int64("price", ticket.Price),
	))
	defer func() { endSpan(span, err) }()

	for attempt := 1; ; attempt++ {
		ticket.QRToken = tr.newQRToken()

		sold, err = tr.sell(ctx, ticket)
		if isQRTokenCollision(err) && attempt < maxQRTokenAttempts {
			log.FromContext(ctx).WithFields(logrus.Fields{
				"qr_token": ticket.QRToken,
				"attempt":  attempt,
			}).Warn("QR token collision, generating a new one")
			continue
		}

		return sold, err
	}
}

func (tr TicketRepository) sell(ctx context.Context, ticket entities.Ticket) (entities.Ticket, error) {
	var sold entities.Ticket

	err := updateInTx(
		ctx,
		tr.db.Conn,
		sql.LevelReadCommitted,
		func(ctx context.Context, tx *sqlx.Tx) error {
			var eventID int64
			err := tx.GetContext(ctx, &eventID, `SELECT event_id FROM events WHERE event_id = $1 FOR SHARE`, ticket.EventID)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("event %d: %w", ticket.EventID, entities.ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("could not get event: %w", err)
			}

			err = tx.GetContext(ctx, &sold, `
				INSERT INTO
					tickets (event_id, buyer_name, tier, price, redeemable_issued, status, qr_token)
				VALUES
					($1, $2, $3, $4, $5, $6, $7)
				RETURNING `+ticketColumns,
				ticket.EventID, ticket.BuyerName, ticket.Tier, ticket.Price,
				ticket.RedeemableIssued, ticket.Status, ticket.QRToken,
			)
			if err != nil {
				return fmt.Errorf("could not save ticket: %w", err)
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO
					transactions (ticket_id, event_id, type, amount, reason)
				VALUES
					($1, $2, $3, $4, $5)`,
				sold.TicketID, sold.EventID, entities.TransactionTypeSale, sold.Price, "sale",
			)
			if err != nil {
				return fmt.Errorf("could not save sale transaction: %w", err)
			}

			return publishInTx(ctx, tx, entities.TicketSold_v1{
				Header:           entities.NewEventHeader(),
				TicketID:         sold.TicketID,
				EventID:          sold.EventID,
				BuyerName:        sold.BuyerName,
				Tier:             sold.Tier,
				Price:            sold.Price,
				RedeemableIssued: sold.RedeemableIssued,
				QRToken:          sold.QRToken,
			})
		},
	)
	if err != nil {
		return entities.Ticket{}, err
	}

	return sold, nil
}

// Update applies an operator edit and re-derives the status from the ledger.
func (tr TicketRepository) Update(ctx context.Context, ticketID int64, edit entities.TicketEdit) (entities.Ticket, error) {
	var updated entities.Ticket

	err := updateInTx(
		ctx,
		tr.db.Conn,
		sql.LevelReadCommitted,
		func(ctx context.Context, tx *sqlx.Tx) error {
			ticket, err := lockTicket(ctx, tx, "ticket_id", ticketID)
			if err != nil {
				return err
			}

			redeemed, err := redeemedTotal(ctx, tx, ticket.TicketID)
			if err != nil {
				return err
			}

			updated, err = edit.Apply(ticket, redeemed)
			if err != nil {
				return err
			}

			_, err = tx.NamedExecContext(ctx, `
				UPDATE tickets
				SET buyer_name = :buyer_name, tier = :tier, price = :price,
					redeemable_issued = :redeemable_issued, status = :status
				WHERE ticket_id = :ticket_id`, updated)
			if err != nil {
				return fmt.Errorf("could not update ticket: %w", err)
			}

			return publishInTx(ctx, tx, entities.TicketUpdated_v1{
				Header:           entities.NewEventHeader(),
				TicketID:         updated.TicketID,
				EventID:          updated.EventID,
				BuyerName:        updated.BuyerName,
				Tier:             updated.Tier,
				Price:            updated.Price,
				RedeemableIssued: updated.RedeemableIssued,
				Status:           updated.Status,
			})
		},
	)
	if err != nil {
		return entities.Ticket{}, err
	}

	return updated, nil
}

func (tr TicketRepository) Delete(ctx context.Context, ticketID int64) error {
	res, err := tr.db.Conn.ExecContext(ctx, `DELETE FROM tickets WHERE ticket_id = $1`, ticketID)
	if err != nil {
		return fmt.Errorf("could not delete ticket: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not delete ticket: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("ticket %d: %w", ticketID, entities.ErrNotFound)
	}

	return nil
}

// Detail returns the ticket with the given QR token, its balance and its
// redemptions, newest first.
func (tr TicketRepository) Detail(ctx context.Context, qrToken string) (entities.TicketDetail, error) {
	views, err := selectTicketViews(ctx, tr.db.Conn, `WHERE t.qr_token = $1`, qrToken)
	if err != nil {
		return entities.TicketDetail{}, err
	}
	if len(views) == 0 {
		return entities.TicketDetail{}, fmt.Errorf("ticket %q: %w", qrToken, entities.ErrNotFound)
	}

	redemptions := []entities.Transaction{}
	err = tr.db.Conn.SelectContext(ctx, &redemptions, `
		SELECT transaction_id, ticket_id, event_id, type, amount, reason, processed_at
		FROM transactions
		WHERE ticket_id = $1 AND type = $2
		ORDER BY processed_at DESC, transaction_id DESC`,
		views[0].TicketID, entities.TransactionTypeRedeem,
	)
	if err != nil {
		return entities.TicketDetail{}, fmt.Errorf("could not get redemptions of ticket: %w", err)
	}

	return entities.TicketDetail{
		Ticket:      views[0],
		Redemptions: redemptions,
	}, nil
}

// SearchByToken returns the ticket whose token equals q, or else every ticket
// whose token contains q. Both comparisons ignore case.
func (tr TicketRepository) SearchByToken(ctx context.Context, q string) ([]entities.Ticket, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, entities.NewValidationError("search query is required")
	}

	var exact entities.Ticket
	err := tr.db.Conn.GetContext(ctx, &exact, `SELECT `+ticketColumns+` FROM tickets WHERE lower(qr_token) = lower($1)`, q)
	if err == nil {
		return []entities.Ticket{exact}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("could not search tickets by token: %w", err)
	}

	return tr.searchLike(ctx, "qr_token", q)
}

func (tr TicketRepository) SearchByBuyer(ctx context.Context, name string) ([]entities.Ticket, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, entities.NewValidationError("buyer name is required")
	}

	return tr.searchLike(ctx, "buyer_name", name)
}

func (tr TicketRepository) Lookup(ctx context.Context, query entities.LookupQuery) (entities.Ticket, error) {
	var (
		candidates []entities.Ticket
		err        error
	)
	if query.Name != "" {
		candidates, err = tr.SearchByBuyer(ctx, query.Name)
	} else {
		candidates, err = tr.SearchByToken(ctx, query.Token)
	}
	if err != nil {
		return entities.Ticket{}, err
	}

	return query.PickSingle(candidates)
}

func (tr TicketRepository) searchLike(ctx context.Context, column, q string) ([]entities.Ticket, error) {
	tickets := []entities.Ticket{}
	err := tr.db.Conn.SelectContext(ctx, &tickets, fmt.Sprintf(`
		SELECT %s
		FROM tickets
		WHERE %s ILIKE $1 ESCAPE '\'
		ORDER BY ticket_id
		LIMIT %d`, ticketColumns, column, searchLimit),
		"%"+escapeLike(q)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("could not search tickets by %s: %w", column, err)
	}

	return tickets, nil
}

// isQRTokenCollision reports a unique violation, the only one a ticket insert
// can raise is on qr_token.
func isQRTokenCollision(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func selectTicketViews(ctx context.Context, q sqlx.QueryerContext, where string, args ...any) ([]entities.TicketView, error) {
	views := []entities.TicketView{}
	if err := sqlx.SelectContext(ctx, q, &views, ticketViewSelect+where, args...); err != nil {
		return nil, fmt.Errorf("could not get tickets: %w", err)
	}

	for i := range views {
		if err := views[i].ComputeBalance(); err != nil {
			return nil, err
		}
	}

	return views, nil
}

// lockTicket selects a single ticket FOR UPDATE, serializing writers of the
// same ticket until tx ends.
func lockTicket(ctx context.Context, tx *sqlx.Tx, column string, value any) (entities.Ticket, error) {
	var ticket entities.Ticket
	err := tx.GetContext(ctx, &ticket, `SELECT `+ticketColumns+` FROM tickets WHERE `+column+` = $1 FOR UPDATE`, value)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Ticket{}, fmt.Errorf("ticket with %s %v: %w", column, value, entities.ErrNotFound)
	}
	if err != nil {
		return entities.Ticket{}, fmt.Errorf("could not lock ticket: %w", err)
	}

	return ticket, nil
}

func redeemedTotal(ctx context.Context, tx *sqlx.Tx, ticketID int64) (int64, error) {
	var total int64
	err := tx.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE ticket_id = $1 AND type = $2`,
		ticketID, entities.TransactionTypeRedeem,
	)
	if err != nil {
		return 0, fmt.Errorf("could not sum redemptions: %w", err)
	}

	return total, nil
}
