package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketledger/entities"
)

func TestWriteTickets(t *testing.T) {
	event := entities.Event{EventID: 7, Title: "Gala"}
	issuedAt := time.Date(2024, 3, 1, 18, 30, 5, 0, time.UTC)

	tickets := []entities.TicketView{
		{
			Ticket: entities.Ticket{
				TicketID: 1, EventID: 7, BuyerName: "Asha", Tier: "VIP", Price: 1000,
				RedeemableIssued: 1000, Status: entities.TicketStatusPartiallyRedeemed,
				QRToken: "a1b2c3d4e5f6", IssuedAt: issuedAt,
			},
			Redeemed: 400,
			Balance:  600,
		},
		{
			Ticket: entities.Ticket{
				TicketID: 2, EventID: 7, BuyerName: "Guest, Jr.", Tier: "Full Cover", Price: 500,
				RedeemableIssued: 500, Status: entities.TicketStatusIssued,
				QRToken: "0f9e8d7c6b5a", IssuedAt: issuedAt,
			},
			Balance: 500,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTickets(&buf, event, tickets))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, len(tickets)+1)
	assert.Equal(t, []string{"Ticket ID", "Event Title", "Buyer Name", "Tier", "Price", "Redeemable Balance", "Status", "QR Token", "Issued At"}, records[0])
	assert.Equal(t, []string{"1", "Gala", "Asha", "VIP", "1000", "600", "partially_redeemed", "a1b2c3d4e5f6", "2024-03-01 18:30:05"}, records[1])
	assert.Equal(t, "Guest, Jr.", records[2][2])
}

func TestWriteTickets_no_tickets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTickets(&buf, entities.Event{Title: "Empty"}, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestWriteRedemptions(t *testing.T) {
	processedAt := time.Date(2024, 3, 1, 21, 0, 0, 0, time.UTC)
	rows := []entities.RedemptionRow{
		{
			Transaction: entities.Transaction{
				TransactionID: 10, TicketID: 1, EventID: 7, Type: entities.TransactionTypeRedeem,
				Amount: 400, Reason: "drinks", ProcessedAt: processedAt,
			},
			BuyerName: "Asha",
		},
		{
			Transaction: entities.Transaction{
				TransactionID: 11, TicketID: 3, EventID: 7, Type: entities.TransactionTypeRedeem,
				Amount: 50, ProcessedAt: processedAt,
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRedemptions(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, []string{"Ticket ID", "Buyer", "Amount", "Reason", "Timestamp"}, records[0])
	assert.Equal(t, []string{"1", "Asha", "400", "drinks", "2024-03-01 21:00:00"}, records[1])
	assert.Equal(t, []string{"3", "", "50", "", "2024-03-01 21:00:00"}, records[2])
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "tickets_Gala.csv", TicketsFileName(entities.Event{Title: "Gala"}))
	assert.Equal(t, "redemptions_7.csv", RedemptionsFileName(7))
}
