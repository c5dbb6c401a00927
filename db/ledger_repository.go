package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ticketledger/entities"
)

type LedgerRepository struct {
	db *DB
}

func NewLedgerRepository(db *DB) LedgerRepository {
	if db == nil {
		panic("db is nil")
	}
	return LedgerRepository{
		db: db,
	}
}

// Redeem consumes part of a ticket's balance. The balance check, the ledger
// insert and the status update happen in one transaction holding the ticket
// row lock, so concurrent redemptions of one ticket cannot over-redeem.
func (r LedgerRepository) Redeem(ctx context.Context, redemption entities.Redemption) (result entities.RedemptionResult, err error) {
	ctx, span := startSpan(ctx, "LedgerRepository.Redeem", trace.WithAttributes(
		attribute.String("qr_token", redemption.QRToken),
		attribute.Int64("amount", redemption.Amount),
	))
	defer func() { endSpan(span, err) }()

	err = updateInTx(
		ctx,
		r.db.Conn,
		sql.LevelReadCommitted,
		func(ctx context.Context, tx *sqlx.Tx) error {
			ticket, err := lockTicket(ctx, tx, "qr_token", redemption.QRToken)
			if err != nil {
				return err
			}

			redeemed, err := redeemedTotal(ctx, tx, ticket.TicketID)
			if err != nil {
				return err
			}

			balance, err := entities.Balance(ticket.RedeemableIssued, redeemed)
			if err != nil {
				return err
			}

			if err := entities.CheckRedemption(redemption.Amount, balance); err != nil {
				return err
			}

			var transaction entities.Transaction
			err = tx.GetContext(ctx, &transaction, `
				INSERT INTO
					transactions (ticket_id, event_id, type, amount, reason)
				VALUES
					($1, $2, $3, $4, $5)
				RETURNING transaction_id, ticket_id, event_id, type, amount, reason, processed_at`,
				ticket.TicketID, ticket.EventID, entities.TransactionTypeRedeem, redemption.Amount, redemption.Reason,
			)
			if err != nil {
				return fmt.Errorf("could not save redemption: %w", err)
			}

			newBalance, status, err := r.updateStatus(ctx, tx, ticket, redeemed+redemption.Amount)
			if err != nil {
				return err
			}

			result = entities.RedemptionResult{
				Transaction: transaction,
				QRToken:     ticket.QRToken,
				Balance:     newBalance,
				Status:      status,
			}

			return publishInTx(ctx, tx, entities.TicketRedeemed_v1{
				Header:        entities.NewEventHeader(),
				TicketID:      ticket.TicketID,
				EventID:       ticket.EventID,
				TransactionID: transaction.TransactionID,
				Amount:        transaction.Amount,
				Reason:        transaction.Reason,
				Balance:       newBalance,
				Status:        status,
			})
		},
	)
	if err != nil {
		return entities.RedemptionResult{}, err
	}

	return result, nil
}

// UndoRedemption deletes a redeem transaction and re-derives the status of its
// ticket. When the ticket is gone only the deletion happens.
func (r LedgerRepository) UndoRedemption(ctx context.Context, transactionID int64) (result entities.RedemptionResult, err error) {
	ctx, span := startSpan(ctx, "LedgerRepository.UndoRedemption", trace.WithAttributes(
		attribute.Int64("transaction_id", transactionID),
	))
	defer func() { endSpan(span, err) }()

	err = updateInTx(
		ctx,
		r.db.Conn,
		sql.LevelReadCommitted,
		func(ctx context.Context, tx *sqlx.Tx) error {
			var transaction entities.Transaction
			err := tx.GetContext(ctx, &transaction, `
				SELECT transaction_id, ticket_id, event_id, type, amount, reason, processed_at
				FROM transactions
				WHERE transaction_id = $1 AND type = $2`,
				transactionID, entities.TransactionTypeRedeem,
			)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("redemption %d: %w", transactionID, entities.ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("could not get redemption: %w", err)
			}

			ticket, err := lockTicket(ctx, tx, "ticket_id", transaction.TicketID)
			ticketExists := true
			if errors.Is(err, entities.ErrNotFound) {
				ticketExists = false
			} else if err != nil {
				return err
			}

			res, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND type = $2`,
				transactionID, entities.TransactionTypeRedeem)
			if err != nil {
				return fmt.Errorf("could not delete redemption: %w", err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("could not delete redemption: %w", err)
			}
			if affected == 0 {
				// undone concurrently while we waited for the ticket lock
				return fmt.Errorf("redemption %d: %w", transactionID, entities.ErrNotFound)
			}

			result = entities.RedemptionResult{Transaction: transaction}

			if !ticketExists {
				log.FromContext(ctx).
					WithField("transaction_id", transactionID).
					Info("Redemption removed, its ticket no longer exists")
				return nil
			}

			redeemed, err := redeemedTotal(ctx, tx, ticket.TicketID)
			if err != nil {
				return err
			}

			result.QRToken = ticket.QRToken
			result.Balance, result.Status, err = r.updateStatus(ctx, tx, ticket, redeemed)
			if err != nil {
				return err
			}

			return publishInTx(ctx, tx, entities.RedemptionUndone_v1{
				Header:        entities.NewEventHeader(),
				TicketID:      ticket.TicketID,
				EventID:       ticket.EventID,
				TransactionID: transaction.TransactionID,
				Amount:        transaction.Amount,
				Balance:       result.Balance,
				Status:        result.Status,
			})
		},
	)
	if err != nil {
		return entities.RedemptionResult{}, err
	}

	return result, nil
}

func (r LedgerRepository) updateStatus(
	ctx context.Context,
	tx *sqlx.Tx,
	ticket entities.Ticket,
	redeemed int64,
) (int64, entities.TicketStatus, error) {
	balance, err := entities.Balance(ticket.RedeemableIssued, redeemed)
	if err != nil {
		return 0, "", err
	}

	status, err := entities.DeriveStatus(balance, ticket.RedeemableIssued)
	if err != nil {
		return 0, "", err
	}

	if status != ticket.Status {
		_, err = tx.ExecContext(ctx, `UPDATE tickets SET status = $1 WHERE ticket_id = $2`, status, ticket.TicketID)
		if err != nil {
			return 0, "", fmt.Errorf("could not update ticket status: %w", err)
		}

		log.FromContext(ctx).WithFields(logrus.Fields{
			"ticket_id":  ticket.TicketID,
			"old_status": ticket.Status,
			"new_status": status,
		}).Info("Ticket status changed")
	}

	return balance, status, nil
}

// RedemptionsByEvent returns the redeem transactions of an event in the order
// they were processed, each with the buyer of its ticket.
func (r LedgerRepository) RedemptionsByEvent(ctx context.Context, eventID int64) ([]entities.RedemptionRow, error) {
	rows := []entities.RedemptionRow{}
	err := r.db.Conn.SelectContext(ctx, &rows, `
		SELECT
			x.transaction_id, x.ticket_id, x.event_id, x.type, x.amount, x.reason, x.processed_at,
			COALESCE(t.buyer_name, '') AS buyer_name
		FROM transactions x
		LEFT JOIN tickets t ON t.ticket_id = x.ticket_id
		WHERE x.event_id = $1 AND x.type = $2
		ORDER BY x.processed_at, x.transaction_id`,
		eventID, entities.TransactionTypeRedeem,
	)
	if err != nil {
		return nil, fmt.Errorf("could not get redemptions of event: %w", err)
	}

	return rows, nil
}
