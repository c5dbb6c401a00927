package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"ticketledger/entities"
)

func TestRedemptionOutcome(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{name: "success", err: nil, want: OutcomeSuccess},
		{name: "invalid amount", err: entities.ErrInvalidAmount, want: OutcomeInvalidAmount},
		{name: "no balance", err: entities.ErrNoBalanceLeft, want: OutcomeNoBalance},
		{name: "exceeds", err: &entities.ExceedsBalanceError{Amount: 600, Balance: 500}, want: OutcomeExceeds},
		{name: "wrapped not found", err: fmt.Errorf("ticket: %w", entities.ErrNotFound), want: OutcomeNotFound},
		{name: "other", err: errors.New("connection reset"), want: OutcomeError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RedemptionOutcome(tc.err))
		})
	}
}

func TestRedemptionAttempted_counts_amount_only_on_success(t *testing.T) {
	before := testutil.ToFloat64(redeemedAmount)

	RedemptionAttempted(400, time.Now(), nil)
	RedemptionAttempted(600, time.Now(), entities.ErrNoBalanceLeft)

	assert.Equal(t, before+400, testutil.ToFloat64(redeemedAmount))
}
