package entities_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketledger/entities"
)

func TestLookupQuery_PickSingle(t *testing.T) {
	abc := entities.Ticket{TicketID: 1, QRToken: "abc123abc123", BuyerName: "Asha"}
	abd := entities.Ticket{TicketID: 2, QRToken: "abc123abd999", BuyerName: "Ashok"}

	t.Run("none", func(t *testing.T) {
		_, err := entities.LookupQuery{Token: "zzz"}.PickSingle(nil)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("single", func(t *testing.T) {
		got, err := entities.LookupQuery{Token: "abd"}.PickSingle([]entities.Ticket{abd})
		require.NoError(t, err)
		assert.Equal(t, abd, got)
	})

	t.Run("exact token wins", func(t *testing.T) {
		got, err := entities.LookupQuery{Token: "ABC123ABC123"}.PickSingle([]entities.Ticket{abc, abd})
		require.NoError(t, err)
		assert.Equal(t, abc, got)
	})

	t.Run("ambiguous", func(t *testing.T) {
		_, err := entities.LookupQuery{Name: "ash"}.PickSingle([]entities.Ticket{abc, abd})

		var ambiguous *entities.AmbiguousLookupError
		require.True(t, errors.As(err, &ambiguous))
		assert.Len(t, ambiguous.Candidates, 2)
		assert.Equal(t, "ash", ambiguous.Query)
	})
}
