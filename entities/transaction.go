package entities

import "time"

type TransactionType string

const (
	TransactionTypeSale   TransactionType = "sale"
	TransactionTypeRedeem TransactionType = "redeem"
)

// Transaction is a ledger entry. Redeem entries are never updated, only
// inserted or deleted (undo).
type Transaction struct {
	TransactionID int64           `json:"transaction_id" db:"transaction_id"`
	TicketID      int64           `json:"ticket_id" db:"ticket_id"`
	EventID       int64           `json:"event_id" db:"event_id"`
	Type          TransactionType `json:"type" db:"type"`
	Amount        int64           `json:"amount" db:"amount"`
	Reason        string          `json:"reason" db:"reason"`
	ProcessedAt   time.Time       `json:"processed_at" db:"processed_at"`
}

type Redemption struct {
	QRToken string `json:"qr_token"`
	Amount  int64  `json:"amount"`
	Reason  string `json:"reason"`
}

type RedemptionResult struct {
	Transaction Transaction  `json:"transaction"`
	QRToken     string       `json:"qr_token,omitempty"`
	Balance     int64        `json:"balance"`
	Status      TicketStatus `json:"status"`
}

// RedemptionRow is a redeem transaction joined with the buyer of its ticket.
type RedemptionRow struct {
	Transaction
	BuyerName string `json:"buyer_name" db:"buyer_name"`
}
