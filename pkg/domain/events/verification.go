package events

import (
	"github.com/google/uuid"
)

// VerificationClaimed is emitted when a verifier takes an inspection.
type VerificationClaimed struct {
	FlowEvent
	VerificationID   uuid.UUID `json:"verificationId"`
	PropertyID       uuid.UUID `json:"propertyId"`
	VerifierID       uuid.UUID `json:"verifierId"`
	VerificationType string    `json:"verificationType"`
}

// VerificationCompleted is emitted when an inspection is approved or rejected.
type VerificationCompleted struct {
	FlowEvent
	VerificationID   uuid.UUID `json:"verificationId"`
	PropertyID       uuid.UUID `json:"propertyId"`
	PropertyTitle    string    `json:"propertyTitle"`
	LandlordID       uuid.UUID `json:"landlordId"`
	VerifierID       uuid.UUID `json:"verifierId"`
	VerificationType string    `json:"verificationType"`
	Status           string    `json:"status"`
	Notes            string    `json:"notes,omitempty"`
}

func (e VerificationClaimed) Type() string   { return EventTypeVerificationClaimed.String() }
func (e VerificationCompleted) Type() string { return EventTypeVerificationCompleted.String() }
