package entities

import (
	"time"

	"github.com/google/uuid"
)

type IEvent interface {
	IsInternal() bool
}

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: uuid.NewString(),
	}
}

type TicketSold_v1 struct {
	Header EventHeader `json:"header"`

	TicketID         int64  `json:"ticket_id"`
	EventID          int64  `json:"event_id"`
	BuyerName        string `json:"buyer_name"`
	Tier             string `json:"tier"`
	Price            int64  `json:"price"`
	RedeemableIssued int64  `json:"redeemable_issued"`
	QRToken          string `json:"qr_token"`
}

func (e TicketSold_v1) IsInternal() bool {
	return false
}

type TicketRedeemed_v1 struct {
	Header EventHeader `json:"header"`

	TicketID      int64        `json:"ticket_id"`
	EventID       int64        `json:"event_id"`
	TransactionID int64        `json:"transaction_id"`
	Amount        int64        `json:"amount"`
	Reason        string       `json:"reason"`
	Balance       int64        `json:"balance"`
	Status        TicketStatus `json:"status"`
}

func (e TicketRedeemed_v1) IsInternal() bool {
	return false
}

type RedemptionUndone_v1 struct {
	Header EventHeader `json:"header"`

	TicketID      int64        `json:"ticket_id"`
	EventID       int64        `json:"event_id"`
	TransactionID int64        `json:"transaction_id"`
	Amount        int64        `json:"amount"`
	Balance       int64        `json:"balance"`
	Status        TicketStatus `json:"status"`
}

func (e RedemptionUndone_v1) IsInternal() bool {
	return false
}

type TicketUpdated_v1 struct {
	Header EventHeader `json:"header"`

	TicketID         int64        `json:"ticket_id"`
	EventID          int64        `json:"event_id"`
	BuyerName        string       `json:"buyer_name"`
	Tier             string       `json:"tier"`
	Price            int64        `json:"price"`
	RedeemableIssued int64        `json:"redeemable_issued"`
	Status           TicketStatus `json:"status"`
}

func (e TicketUpdated_v1) IsInternal() bool {
	return false
}
