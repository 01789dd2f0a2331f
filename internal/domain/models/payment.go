package models

import "hostelmeals/internal/domain"

// PaymentIntent is the processor-side handle created before a membership
// checkout is confirmed.
type PaymentIntent struct {
	ID           string       `json:"id"`
	ClientSecret string       `json:"client_secret"`
	Badge        domain.Badge `json:"badge"`
	Amount       int64        `json:"amount"`
}

// Payment is a settled membership purchase shown in payment history.
type Payment struct {
	ID        string       `json:"id"`
	UserEmail string       `json:"user_email"`
	Badge     domain.Badge `json:"badge"`
	Amount    int64        `json:"amount"`
	TxnID     string       `json:"txn_id"`
	PaidAt    string       `json:"paid_at"`
}
