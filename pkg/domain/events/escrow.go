package events

import (
	"github.com/google/uuid"
)

// EscrowReleased is emitted after the landlord payout succeeded.
type EscrowReleased struct {
	FlowEvent
	TransactionID         uuid.UUID `json:"transactionId"`
	Reference             string    `json:"transactionReference"`
	RenterID              uuid.UUID `json:"renterId"`
	LandlordID            uuid.UUID `json:"landlordId"`
	ReleasedBy            uuid.UUID `json:"releasedBy"`
	Method                string    `json:"method"`
	Amount                int64     `json:"amount"`
	Commission            int64     `json:"commission"`
	DisbursedAmount       int64     `json:"disbursedAmount"`
	Currency              string    `json:"currency"`
	DisbursementReference string    `json:"disbursementReference"`
}

// RefundRequested is emitted when a renter asks for held funds back.
type RefundRequested struct {
	FlowEvent
	TransactionID uuid.UUID `json:"transactionId"`
	Reference     string    `json:"transactionReference"`
	RenterID      uuid.UUID `json:"renterId"`
	LandlordID    uuid.UUID `json:"landlordId"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Reason        string    `json:"reason"`
}

func (e EscrowReleased) Type() string  { return EventTypeEscrowReleased.String() }
func (e RefundRequested) Type() string { return EventTypeRefundRequested.String() }
