// Package export writes event tickets and redemptions as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"ticketledger/entities"
)

const timestampLayout = "2006-01-02 15:04:05"

var (
	ticketsHeader     = []string{"Ticket ID", "Event Title", "Buyer Name", "Tier", "Price", "Redeemable Balance", "Status", "QR Token", "Issued At"}
	redemptionsHeader = []string{"Ticket ID", "Buyer", "Amount", "Reason", "Timestamp"}
)

func TicketsFileName(event entities.Event) string {
	return fmt.Sprintf("tickets_%s.csv", event.Title)
}

func RedemptionsFileName(eventID int64) string {
	return fmt.Sprintf("redemptions_%d.csv", eventID)
}

// WriteTickets writes a header and one row per ticket. Balances must already be
// computed.
func WriteTickets(w io.Writer, event entities.Event, tickets []entities.TicketView) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ticketsHeader); err != nil {
		return fmt.Errorf("could not write tickets header: %w", err)
	}

	for _, t := range tickets {
		err := cw.Write([]string{
			strconv.FormatInt(t.TicketID, 10),
			event.Title,
			t.BuyerName,
			t.Tier,
			strconv.FormatInt(t.Price, 10),
			strconv.FormatInt(t.Balance, 10),
			string(t.Status),
			t.QRToken,
			formatTimestamp(t.IssuedAt),
		})
		if err != nil {
			return fmt.Errorf("could not write ticket %d: %w", t.TicketID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteRedemptions(w io.Writer, rows []entities.RedemptionRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(redemptionsHeader); err != nil {
		return fmt.Errorf("could not write redemptions header: %w", err)
	}

	for _, r := range rows {
		err := cw.Write([]string{
			strconv.FormatInt(r.TicketID, 10),
			r.BuyerName,
			strconv.FormatInt(r.Amount, 10),
			r.Reason,
			formatTimestamp(r.ProcessedAt),
		})
		if err != nil {
			return fmt.Errorf("could not write redemption %d: %w", r.TransactionID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
