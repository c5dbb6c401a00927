package event_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketledger/entities"
	"ticketledger/message/event"
)

type activityRepoMock struct {
	mu      sync.Mutex
	entries []entities.ActivityEntry
}

func (m *activityRepoMock) Add(_ context.Context, entry entities.ActivityEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, entry)
	return nil
}

func TestStoreTicketRedeemed(t *testing.T) {
	repo := &activityRepoMock{}
	handler := event.NewHandler(repo)

	redeemed := &entities.TicketRedeemed_v1{
		Header:        entities.NewEventHeader(),
		TicketID:      7,
		EventID:       3,
		TransactionID: 11,
		Amount:        400,
		Balance:       600,
		Status:        entities.TicketStatusPartiallyRedeemed,
	}
	require.NoError(t, handler.StoreTicketRedeemed(context.Background(), redeemed))

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, redeemed.Header.ID, entry.EntryID)
	assert.Equal(t, "TicketRedeemed_v1", entry.EventName)
	assert.Equal(t, int64(7), entry.TicketID)
	assert.Equal(t, redeemed.Header.PublishedAt, entry.PublishedAt)
	assert.Contains(t, string(entry.Payload), `"amount":400`)
}

func TestHandlers(t *testing.T) {
	handler := event.NewHandler(&activityRepoMock{})

	names := []string{}
	for _, h := range handler.Handlers() {
		names = append(names, h.HandlerName())
	}

	assert.ElementsMatch(t, []string{
		"StoreTicketSoldActivity",
		"StoreTicketRedeemedActivity",
		"StoreRedemptionUndoneActivity",
		"StoreTicketUpdatedActivity",
	}, names)
}
