package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketStatusIssued            TicketStatus = "issued"
	TicketStatusPartiallyRedeemed TicketStatus = "partially_redeemed"
	TicketStatusRedeemed          TicketStatus = "redeemed"
)

const (
	DefaultBuyerName = "Guest"
	DefaultTier      = "Full Cover"

	QRTokenLength = 12
)

type Ticket struct {
	TicketID         int64        `json:"ticket_id" db:"ticket_id"`
	EventID          int64        `json:"event_id" db:"event_id"`
	BuyerName        string       `json:"buyer_name" db:"buyer_name"`
	Tier             string       `json:"tier" db:"tier"`
	Price            int64        `json:"price" db:"price"`
	RedeemableIssued int64        `json:"redeemable_issued" db:"redeemable_issued"`
	Status           TicketStatus `json:"status" db:"status"`
	QRToken          string       `json:"qr_token" db:"qr_token"`
	IssuedAt         time.Time    `json:"issued_at" db:"issued_at"`
}

// TicketView is a ticket together with its balance derived from the ledger.
type TicketView struct {
	Ticket
	EventTitle string `json:"event_title" db:"event_title"`
	Redeemed   int64  `json:"redeemed" db:"redeemed"`
	Balance    int64  `json:"balance" db:"-"`
}

type TicketDetail struct {
	Ticket      TicketView    `json:"ticket"`
	Redemptions []Transaction `json:"redemptions"`
}

// TicketSale is the input of a ticket sale. Nil pointers fall back to defaults.
type TicketSale struct {
	BuyerName  string `json:"buyer_name"`
	Tier       string `json:"tier"`
	Price      *int64 `json:"price"`
	Redeemable *int64 `json:"redeemable"`
}

func (s TicketSale) ToTicket(eventID int64) (Ticket, error) {
	buyer := strings.TrimSpace(s.BuyerName)
	if buyer == "" {
		buyer = DefaultBuyerName
	}
	tier := strings.TrimSpace(s.Tier)
	if tier == "" {
		tier = DefaultTier
	}

	var price int64
	if s.Price != nil {
		price = *s.Price
	}
	if price < 0 {
		return Ticket{}, NewValidationError("price must not be negative")
	}

	redeemable := price
	if s.Redeemable != nil {
		redeemable = *s.Redeemable
	}
	if redeemable < 0 {
		return Ticket{}, NewValidationError("redeemable amount must not be negative")
	}

	status, err := DeriveStatus(redeemable, redeemable)
	if err != nil {
		return Ticket{}, err
	}

	return Ticket{
		EventID:          eventID,
		BuyerName:        buyer,
		Tier:             tier,
		Price:            price,
		RedeemableIssued: redeemable,
		Status:           status,
	}, nil
}

// TicketEdit holds the editable ticket fields. A nil Redeemable keeps the
// issued amount unchanged.
type TicketEdit struct {
	BuyerName  string `json:"buyer_name"`
	Tier       string `json:"tier"`
	Price      int64  `json:"price"`
	Redeemable *int64 `json:"redeemable"`
}

func (e TicketEdit) Apply(t Ticket, redeemed int64) (Ticket, error) {
	if e.Price < 0 {
		return Ticket{}, NewValidationError("price must not be negative")
	}

	t.BuyerName = strings.TrimSpace(e.BuyerName)
	if t.BuyerName == "" {
		t.BuyerName = DefaultBuyerName
	}
	t.Tier = strings.TrimSpace(e.Tier)
	if t.Tier == "" {
		t.Tier = DefaultTier
	}
	t.Price = e.Price

	if e.Redeemable != nil {
		if *e.Redeemable < 0 {
			return Ticket{}, NewValidationError("redeemable amount must not be negative")
		}
		if *e.Redeemable < redeemed {
			return Ticket{}, NewValidationError(fmt.Sprintf(
				"redeemable amount %d is below the %d already redeemed", *e.Redeemable, redeemed,
			))
		}
		t.RedeemableIssued = *e.Redeemable
	}

	balance, err := Balance(t.RedeemableIssued, redeemed)
	if err != nil {
		return Ticket{}, err
	}
	t.Status, err = DeriveStatus(balance, t.RedeemableIssued)
	if err != nil {
		return Ticket{}, err
	}

	return t, nil
}

// NewQRToken returns the first 12 hex characters of a random UUID.
func NewQRToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:QRTokenLength]
}
