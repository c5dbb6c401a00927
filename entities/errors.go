package entities

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	ErrInvalidAmount = errors.New("enter a valid amount")
	ErrNoBalanceLeft = errors.New("no balance left")

	ErrNegativeBalance    = errors.New("derived balance is negative")
	ErrBalanceAboveIssued = errors.New("derived balance exceeds issued amount")
)

type ValidationError struct {
	Message string
}

func NewValidationError(msg string) ValidationError {
	return ValidationError{Message: msg}
}

func (v ValidationError) Error() string {
	return v.Message
}

type ExceedsBalanceError struct {
	Amount  int64
	Balance int64
}

func (e *ExceedsBalanceError) Excess() int64 {
	return e.Amount - e.Balance
}

func (e *ExceedsBalanceError) Error() string {
	return fmt.Sprintf("redeem amount exceeds remaining balance by %d", e.Excess())
}

// AmbiguousLookupError is returned when a lookup matches more than one ticket.
type AmbiguousLookupError struct {
	Query      string
	Candidates []Ticket
}

func (e *AmbiguousLookupError) Error() string {
	return fmt.Sprintf("%d tickets match %q", len(e.Candidates), e.Query)
}

// IsBusinessRuleViolation reports whether err rejects a redemption without any
// state change.
func IsBusinessRuleViolation(err error) bool {
	var exceeds *ExceedsBalanceError
	return errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrNoBalanceLeft) || errors.As(err, &exceeds)
}

// IsIntegrityError reports whether err signals a ledger inconsistency.
func IsIntegrityError(err error) bool {
	return errors.Is(err, ErrNegativeBalance) || errors.Is(err, ErrBalanceAboveIssued)
}
