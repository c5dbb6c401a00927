package entities

import "fmt"

// Balance returns what is left of the issued redeemable amount after the
// redeemed total. A negative result means the ledger is inconsistent.
func Balance(redeemableIssued, redeemedTotal int64) (int64, error) {
	balance := redeemableIssued - redeemedTotal
	if balance < 0 {
		return 0, fmt.Errorf("%w: issued %d, redeemed %d", ErrNegativeBalance, redeemableIssued, redeemedTotal)
	}

	return balance, nil
}

func DeriveStatus(balance, redeemableIssued int64) (TicketStatus, error) {
	switch {
	case balance < 0:
		return "", fmt.Errorf("%w: balance %d", ErrNegativeBalance, balance)
	case balance > redeemableIssued:
		return "", fmt.Errorf("%w: balance %d above issued %d", ErrBalanceAboveIssued, balance, redeemableIssued)
	case balance == 0:
		return TicketStatusRedeemed, nil
	case balance < redeemableIssued:
		return TicketStatusPartiallyRedeemed, nil
	default:
		return TicketStatusIssued, nil
	}
}

// CheckRedemption validates a redemption of amount against the current balance.
func CheckRedemption(amount, balance int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if balance <= 0 {
		return ErrNoBalanceLeft
	}
	if amount > balance {
		return &ExceedsBalanceError{Amount: amount, Balance: balance}
	}

	return nil
}

func (t *TicketView) ComputeBalance() error {
	balance, err := Balance(t.RedeemableIssued, t.Redeemed)
	if err != nil {
		return fmt.Errorf("ticket %d: %w", t.TicketID, err)
	}
	t.Balance = balance

	return nil
}
