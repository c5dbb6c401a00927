package tests

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketledger/db"
	"ticketledger/entities"
	"ticketledger/service"
)

func TestComponent(t *testing.T) {
	if os.Getenv("POSTGRES_URL") == "" || os.Getenv("REDIS_ADDR") == "" {
		t.Skip("POSTGRES_URL and REDIS_ADDR are required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})
	defer rdb.Close()

	conn, err := db.NewDBConn(os.Getenv("POSTGRES_URL"))
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.MigrateSchema())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := service.New(
		service.Config{HTTPAddr: ":8080", ServiceName: "ticketledger-component-test"},
		rdb,
		&conn,
	)
	require.NoError(t, err)

	go func() {
		assert.NoError(t, svc.Run(ctx))
	}()
	waitForHttpServer(t)

	event := createEvent(t, entities.EventInput{Title: "Gala", Date: "2024-03-01", Capacity: 100})
	ticket := sellTicket(t, event.EventID, `{"buyer_name":"Asha","tier":"VIP","price":1000}`)

	first := redeem(t, ticket.QRToken, `{"amount":400,"reason":"drinks"}`, http.StatusCreated)
	assert.Equal(t, int64(600), first.Balance)

	redeem(t, ticket.QRToken, `{"amount":700}`, http.StatusUnprocessableEntity)

	undo(t, first.Transaction.TransactionID)

	detail := getTicket(t, ticket.QRToken)
	assert.Equal(t, int64(1000), detail.Ticket.Balance)
	assert.Equal(t, entities.TicketStatusIssued, detail.Ticket.Status)

	assertActivityStored(t, ticket.TicketID, []string{
		"TicketSold_v1",
		"TicketRedeemed_v1",
		"RedemptionUndone_v1",
	})
}

func assertActivityStored(t *testing.T, ticketID int64, eventNames []string) bool {
	return assert.EventuallyWithT(
		t,
		func(t *assert.CollectT) {
			var entries []entities.ActivityEntry
			if !getJSON(t, fmt.Sprintf("http://localhost:8080/activity?ticket_id=%d", ticketID), &entries) {
				return
			}

			stored := []string{}
			for _, e := range entries {
				stored = append(stored, e.EventName)
			}

			assert.ElementsMatch(t, eventNames, stored, "activity of ticket %d", ticketID)
		},
		10*time.Second,
		100*time.Millisecond,
	)
}

func waitForHttpServer(t *testing.T) {
	t.Helper()

	require.EventuallyWithT(
		t,
		func(t *assert.CollectT) {
			resp, err := http.Get("http://localhost:8080/health")
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()

			if assert.Less(t, resp.StatusCode, 300, "API not ready, http status: %d", resp.StatusCode) {
				return
			}
		},
		time.Second*10,
		time.Millisecond*50,
	)
}
