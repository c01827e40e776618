package models

import "time"

const (
	PaymentTypeTrip  = "trip"
	PaymentTypeTopUp = "credit_topup"

	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"

	MethodCredits = "credits"
)

// Payment is an immutable audit record for every wallet-affecting event.
// Amount is positive KES cents; PaymentType carries the direction.
type Payment struct {
	ID            int64      `json:"id"`
	PassengerID   int64      `json:"passenger_id"`
	PaymentType   string     `json:"payment_type"`
	Amount        int64      `json:"amount"`
	TransactionID string     `json:"transaction_id"`
	PaymentMethod string     `json:"payment_method"`
	Status        string     `json:"status"`
	Description   string     `json:"description"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}
