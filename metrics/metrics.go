package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"ticketledger/entities"
)

const (
	OutcomeSuccess       = "success"
	OutcomeInvalidAmount = "invalid_amount"
	OutcomeNoBalance     = "no_balance"
	OutcomeExceeds       = "exceeds_balance"
	OutcomeNotFound      = "not_found"
	OutcomeError         = "error"
)

var (
	ticketsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketledger_tickets_sold_total",
			Help: "Tickets sold per event",
		},
		[]string{"event_id"},
	)

	redemptions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketledger_redemptions_total",
			Help: "Redemption attempts by outcome",
		},
		[]string{"outcome"},
	)

	redeemedAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticketledger_redeemed_amount_total",
			Help: "Sum of successfully redeemed amounts",
		},
	)

	redemptionsUndone = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticketledger_redemptions_undone_total",
			Help: "Redemptions removed by an operator",
		},
	)

	redemptionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ticketledger_redemption_duration_seconds",
			Help:    "Duration of the redemption transaction",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)
)

func TicketSold(eventID string) {
	ticketsSold.WithLabelValues(eventID).Inc()
}

// RedemptionAttempted records the outcome of a redemption that took since start.
func RedemptionAttempted(amount int64, start time.Time, err error) {
	redemptionDuration.Observe(time.Since(start).Seconds())

	outcome := RedemptionOutcome(err)
	redemptions.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		redeemedAmount.Add(float64(amount))
	}
}

func RedemptionUndone() {
	redemptionsUndone.Inc()
}

func RedemptionOutcome(err error) string {
	var exceeds *entities.ExceedsBalanceError

	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, entities.ErrInvalidAmount):
		return OutcomeInvalidAmount
	case errors.Is(err, entities.ErrNoBalanceLeft):
		return OutcomeNoBalance
	case errors.As(err, &exceeds):
		return OutcomeExceeds
	case errors.Is(err, entities.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
