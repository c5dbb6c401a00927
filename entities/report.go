package entities

type Dashboard struct {
	TotalRevenue          int64   `json:"total_revenue"`
	TotalRedeemableIssued int64   `json:"total_redeemable_issued"`
	TotalRedeemed         int64   `json:"total_redeemed"`
	RemainingBalance      int64   `json:"remaining_balance"`
	Events                []Event `json:"events"`
}
