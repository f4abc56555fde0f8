package dto

import (
	"time"

	"github.com/piolcm/piol/pkg/domain/transaction"
)

// TransactionUpdate is a DTO for updating one or more fields of a transaction.
// Nil fields are left untouched.
type TransactionUpdate struct {
	Status                *transaction.Status
	EscrowStatus          *transaction.EscrowStatus
	MobileMoneyReference  *string
	ExternalID            *string
	PayerPhone            *string
	CallbackReceived      *bool
	CompletedAt           *time.Time
	PaymentURL            *string
	PayToken              *string
	NotifToken            *string
	DisbursementReference *string
	Commission            *int64
	DisbursedAmount       *int64
	ReleasedAt            *time.Time
}

// TransactionGuard restricts an update to rows still in one of the listed states.
// Empty slices do not constrain.
type TransactionGuard struct {
	Status []transaction.Status
	Escrow []transaction.EscrowStatus
}

// StatusIn is a guard on payment status only.
func StatusIn(statuses ...transaction.Status) TransactionGuard {
	return TransactionGuard{Status: statuses}
}

// EscrowIn is a guard on escrow status only.
func EscrowIn(statuses ...transaction.EscrowStatus) TransactionGuard {
	return TransactionGuard{Escrow: statuses}
}
