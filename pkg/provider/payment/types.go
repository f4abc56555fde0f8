package payment

import (
	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain/transaction"
)

// Status is the provider-agnostic collection state.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusSuccessful Status = "SUCCESSFUL"
	StatusFailed     Status = "FAILED"
)

// PaymentStatus maps a provider status to the transaction status it implies.
// Anything the provider has not settled yet keeps the transaction processing.
func (s Status) PaymentStatus() transaction.Status {
	switch s {
	case StatusSuccessful:
		return transaction.StatusCompleted
	case StatusFailed:
		return transaction.StatusFailed
	default:
		return transaction.StatusProcessing
	}
}

// CollectionRequest holds the parameters for RequestCollection.
type CollectionRequest struct {
	TransactionID uuid.UUID
	// Reference is the transaction reference, sent as the provider-side external id.
	Reference  string
	Amount     int64
	Currency   string
	PayerPhone string
	Message    string
	// ReturnURL and CancelURL are required by redirect-based providers.
	ReturnURL string
	CancelURL string
	NotifyURL string
}

// CollectionResult is the normalized answer of a collection request.
type CollectionResult struct {
	ProviderReference string
	RequiresRedirect  bool
	PaymentURL        string
	PayToken          string
	// NotifToken authenticates the provider's webhook for this payment.
	NotifToken string
	OrderID    string
}

// StatusResult is the normalized answer of a status query.
type StatusResult struct {
	Status                 Status
	Reason                 string
	FinancialTransactionID string
}

// DisbursementRequest holds the parameters for Disburse.
type DisbursementRequest struct {
	TransactionID uuid.UUID
	Reference     string
	Amount        int64
	Currency      string
	PayeePhone    string
	Message       string
}

// DisbursementResult is the normalized answer of a disbursement.
type DisbursementResult struct {
	ReferenceID string
	Status      Status
}

// AccountInfo is the best-effort result of an account lookup.
type AccountInfo struct {
	Valid      bool   `json:"valid"`
	GivenName  string `json:"givenName,omitempty"`
	FamilyName string `json:"familyName,omitempty"`
}
