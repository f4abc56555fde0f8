// Package transaction models a rent-related money movement and its escrow lifecycle.
package transaction

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain"
)

// Type is what the renter is paying for.
type Type string

const (
	TypeRentPayment Type = "rent_payment"
	TypeDeposit     Type = "deposit"
	TypeCommission  Type = "commission"
)

// Valid reports whether t is a known transaction type.
func (t Type) Valid() bool {
	return t == TypeRentPayment || t == TypeDeposit || t == TypeCommission
}

// Method is how the payer settles the transaction.
type Method string

const (
	MethodMTNMoMo      Method = "mtn_momo"
	MethodOrangeMoney  Method = "orange_money"
	MethodBankTransfer Method = "bank_transfer"
	MethodCash         Method = "cash"
)

// Valid reports whether m is a known payment method.
func (m Method) Valid() bool {
	switch m {
	case MethodMTNMoMo, MethodOrangeMoney, MethodBankTransfer, MethodCash:
		return true
	}
	return false
}

// MobileMoney reports whether the method is collected through a provider API.
func (m Method) MobileMoney() bool {
	return m == MethodMTNMoMo || m == MethodOrangeMoney
}

// Status is the payment status. It only moves forward:
// pending -> processing -> completed | failed.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusRefunded   Status = "refunded"
)

// Terminal reports whether no further payment status change is allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusRefunded
}

// CanTransitionTo reports whether next is a forward move from s.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusCompleted || next == StatusFailed
	}
	return false
}

// EscrowStatus is empty until the payment completes, then held until released or refunded.
// Releasing marks a payout in flight; it returns to held if the payout fails.
type EscrowStatus string

const (
	EscrowNone      EscrowStatus = ""
	EscrowHeld      EscrowStatus = "held"
	EscrowReleasing EscrowStatus = "releasing"
	EscrowReleased  EscrowStatus = "released"
	EscrowRefunded  EscrowStatus = "refunded"
)

// DefaultCurrency is XAF, which has no subunit.
const DefaultCurrency = "XAF"

// ReferencePrefix starts every transaction reference.
const ReferencePrefix = "PIOL"

// Transaction represents one money movement tied to a property rental.
type Transaction struct {
	ID                   uuid.UUID    `json:"id"`
	PropertyID           uuid.UUID    `json:"propertyId"`
	RenterID             uuid.UUID    `json:"renterId"`
	LandlordID           uuid.UUID    `json:"landlordId"`
	Type                 Type         `json:"transactionType"`
	Amount               int64        `json:"amount"`
	Currency             string       `json:"currency"`
	Method               Method       `json:"paymentMethod"`
	Status               Status       `json:"paymentStatus"`
	Reference            string       `json:"transactionReference"`
	MobileMoneyReference string       `json:"mobileMoneyReference,omitempty"`
	ExternalID           string       `json:"externalId,omitempty"`
	EscrowStatus         EscrowStatus `json:"escrowStatus,omitempty"`
	PayerPhone           string       `json:"payerPhone,omitempty"`
	CallbackReceived     bool         `json:"callbackReceived"`
	CompletedAt          *time.Time   `json:"completedAt,omitempty"`

	// Orange Money web payment session.
	PaymentURL string `json:"paymentUrl,omitempty"`
	PayToken   string `json:"-"`
	NotifToken string `json:"-"`

	// Escrow release outcome.
	DisbursementReference string     `json:"disbursementReference,omitempty"`
	Commission            *int64     `json:"commission,omitempty"`
	DisbursedAmount       *int64     `json:"disbursedAmount,omitempty"`
	ReleasedAt            *time.Time `json:"releasedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New creates a pending transaction with a freshly generated reference.
func New(
	propertyID, renterID, landlordID uuid.UUID,
	typ Type,
	amount int64,
	currency string,
	method Method,
	payerPhone string,
	now time.Time,
) (*Transaction, error) {
	const op = "transaction.New"
	switch {
	case propertyID == uuid.Nil:
		return nil, domain.NewValidationError(op, "propertyId", "is required")
	case renterID == uuid.Nil:
		return nil, domain.NewValidationError(op, "renterId", "is required")
	case landlordID == uuid.Nil:
		return nil, domain.NewValidationError(op, "landlordId", "is required")
	case !typ.Valid():
		return nil, domain.NewValidationError(op, "transactionType", "unknown type "+string(typ))
	case amount <= 0:
		return nil, domain.NewValidationError(op, "amount", "must be a positive integer")
	case !method.Valid():
		return nil, domain.NewValidationError(op, "paymentMethod", "unknown method "+string(method))
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Transaction{
		ID:         uuid.New(),
		PropertyID: propertyID,
		RenterID:   renterID,
		LandlordID: landlordID,
		Type:       typ,
		Amount:     amount,
		Currency:   strings.ToUpper(currency),
		Method:     method,
		Status:     StatusPending,
		Reference:  NewReference(now),
		PayerPhone: payerPhone,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// NewReference builds a human-readable reference: PIOL-<YYYYMMDD>-<12 hex>.
func NewReference(now time.Time) string {
	id := uuid.New()
	return ReferencePrefix + "-" + now.UTC().Format("20060102") + "-" + strings.ToUpper(hex.EncodeToString(id[:6]))
}

// IsParty reports whether userID is the renter or the landlord of the transaction.
func (t *Transaction) IsParty(userID uuid.UUID) bool {
	return t.RenterID == userID || t.LandlordID == userID
}

// EscrowHeld reports whether funds are currently held.
func (t *Transaction) EscrowHeld() bool {
	return t.EscrowStatus == EscrowHeld
}
