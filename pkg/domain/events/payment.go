package events

import (
	"github.com/google/uuid"
)

// PaymentProcessing is emitted once a provider accepted a collection request.
type PaymentProcessing struct {
	FlowEvent
	TransactionID     uuid.UUID `json:"transactionId"`
	Method            string    `json:"method"`
	ProviderReference string    `json:"providerReference"`
	Amount            int64     `json:"amount"`
	Currency          string    `json:"currency"`
}

// PaymentCompleted is emitted when the provider confirms the collection; escrow is now held.
type PaymentCompleted struct {
	FlowEvent
	TransactionID uuid.UUID `json:"transactionId"`
	Reference     string    `json:"transactionReference"`
	PropertyID    uuid.UUID `json:"propertyId"`
	RenterID      uuid.UUID `json:"renterId"`
	LandlordID    uuid.UUID `json:"landlordId"`
	Method        string    `json:"method"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	ExternalID    string    `json:"externalId,omitempty"`
}

// PaymentFailed is emitted when the provider rejects the payment or the request itself fails.
type PaymentFailed struct {
	FlowEvent
	TransactionID uuid.UUID `json:"transactionId"`
	Reference     string    `json:"transactionReference"`
	RenterID      uuid.UUID `json:"renterId"`
	LandlordID    uuid.UUID `json:"landlordId"`
	Method        string    `json:"method"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Reason        string    `json:"reason,omitempty"`
}

func (e PaymentProcessing) Type() string { return EventTypePaymentProcessing.String() }
func (e PaymentCompleted) Type() string  { return EventTypePaymentCompleted.String() }
func (e PaymentFailed) Type() string     { return EventTypePaymentFailed.String() }
