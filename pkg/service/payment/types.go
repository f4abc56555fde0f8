package payment

import (
	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain/transaction"
)

// CreateTransactionInput describes what a renter wants to pay for.
type CreateTransactionInput struct {
	PropertyID uuid.UUID
	Type       transaction.Type
	Amount     int64
	// Currency defaults to the property's rent currency.
	Currency   string
	Method     transaction.Method
	PayerPhone string
}

// ProcessPaymentInput starts the collection of a pending transaction.
type ProcessPaymentInput struct {
	TransactionID uuid.UUID
	// Method, when set, must match the method chosen at creation.
	Method transaction.Method
	// Phone overrides the payer phone stored on the transaction.
	Phone string
	// ReturnURL and CancelURL are required for Orange Money.
	ReturnURL string
	CancelURL string
}

// ProcessPaymentResult tells the caller how the payer approves the payment.
// MTN prompts the payer's phone; Orange redirects to PaymentURL.
type ProcessPaymentResult struct {
	TransactionID    uuid.UUID `json:"transactionId"`
	RequiresRedirect bool      `json:"requiresRedirect"`
	ReferenceID      string    `json:"referenceId,omitempty"`
	PaymentURL       string    `json:"paymentUrl,omitempty"`
	PayToken         string    `json:"payToken,omitempty"`
	OrderID          string    `json:"orderId,omitempty"`
}

// ReleaseResult is the outcome of a successful escrow release.
type ReleaseResult struct {
	TransactionID   uuid.UUID `json:"transactionId"`
	DisbursedAmount int64     `json:"disbursedAmount"`
	Commission      int64     `json:"commission"`
	ReferenceID     string    `json:"referenceId"`
}

// ReconcileReport summarizes a stale processing sweep.
type ReconcileReport struct {
	Checked   int `json:"checked"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Pending   int `json:"pending"`

	// Unreferenced lists transactions the provider accepted but whose provider
	// reference was never stored. No status check can resolve them.
	Unreferenced []string `json:"unreferenced,omitempty"`
	Errors       []string `json:"errors,omitempty"`
}
