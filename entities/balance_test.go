package entities_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketledger/entities"
)

func TestBalance(t *testing.T) {
	balance, err := entities.Balance(1000, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)

	balance, err = entities.Balance(1000, 400)
	require.NoError(t, err)
	assert.Equal(t, int64(600), balance)

	balance, err = entities.Balance(1000, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestBalance_negative_is_integrity_error(t *testing.T) {
	_, err := entities.Balance(500, 600)
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrNegativeBalance)
	assert.True(t, entities.IsIntegrityError(err))
}

func TestDeriveStatus(t *testing.T) {
	testCases := []struct {
		name       string
		balance    int64
		redeemable int64
		want       entities.TicketStatus
	}{
		{name: "nothing redeemed", balance: 1000, redeemable: 1000, want: entities.TicketStatusIssued},
		{name: "partially redeemed", balance: 600, redeemable: 1000, want: entities.TicketStatusPartiallyRedeemed},
		{name: "one unit left", balance: 1, redeemable: 1000, want: entities.TicketStatusPartiallyRedeemed},
		{name: "fully redeemed", balance: 0, redeemable: 1000, want: entities.TicketStatusRedeemed},
		{name: "zero redeemable", balance: 0, redeemable: 0, want: entities.TicketStatusRedeemed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, err := entities.DeriveStatus(tc.balance, tc.redeemable)
			require.NoError(t, err)
			assert.Equal(t, tc.want, status)
		})
	}
}

func TestDeriveStatus_out_of_range(t *testing.T) {
	_, err := entities.DeriveStatus(-1, 1000)
	assert.ErrorIs(t, err, entities.ErrNegativeBalance)

	_, err = entities.DeriveStatus(1001, 1000)
	assert.ErrorIs(t, err, entities.ErrBalanceAboveIssued)
	assert.True(t, entities.IsIntegrityError(err))
}

func TestCheckRedemption(t *testing.T) {
	assert.NoError(t, entities.CheckRedemption(400, 1000))
	assert.NoError(t, entities.CheckRedemption(1000, 1000))

	assert.ErrorIs(t, entities.CheckRedemption(0, 1000), entities.ErrInvalidAmount)
	assert.ErrorIs(t, entities.CheckRedemption(-5, 1000), entities.ErrInvalidAmount)
	assert.ErrorIs(t, entities.CheckRedemption(1, 0), entities.ErrNoBalanceLeft)

	err := entities.CheckRedemption(600, 500)
	var exceeds *entities.ExceedsBalanceError
	require.True(t, errors.As(err, &exceeds))
	assert.Equal(t, int64(100), exceeds.Excess())
	assert.Equal(t, "redeem amount exceeds remaining balance by 100", err.Error())
	assert.True(t, entities.IsBusinessRuleViolation(err))
}

// replays the ledger of the "Gala" walkthrough without a database
func TestLedgerWalkthrough(t *testing.T) {
	const issued = int64(1000)
	var redemptions []int64

	state := func() (int64, entities.TicketStatus) {
		var redeemed int64
		for _, r := range redemptions {
			redeemed += r
		}
		balance, err := entities.Balance(issued, redeemed)
		require.NoError(t, err)
		status, err := entities.DeriveStatus(balance, issued)
		require.NoError(t, err)
		return balance, status
	}
	redeem := func(amount int64) error {
		balance, _ := state()
		if err := entities.CheckRedemption(amount, balance); err != nil {
			return err
		}
		redemptions = append(redemptions, amount)
		return nil
	}

	balance, status := state()
	assert.Equal(t, int64(1000), balance)
	assert.Equal(t, entities.TicketStatusIssued, status)

	require.NoError(t, redeem(400))
	balance, status = state()
	assert.Equal(t, int64(600), balance)
	assert.Equal(t, entities.TicketStatusPartiallyRedeemed, status)

	require.NoError(t, redeem(600))
	balance, status = state()
	assert.Equal(t, int64(0), balance)
	assert.Equal(t, entities.TicketStatusRedeemed, status)

	assert.ErrorIs(t, redeem(1), entities.ErrNoBalanceLeft)
	balance, _ = state()
	assert.Equal(t, int64(0), balance)

	// undo the first redemption
	redemptions = redemptions[1:]
	balance, status = state()
	assert.Equal(t, int64(400), balance)
	assert.Equal(t, entities.TicketStatusPartiallyRedeemed, status)
}
