package property

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain"
)

// Status is the listing status of a property.
type Status string

const (
	StatusDraft               Status = "draft"
	StatusPendingVerification Status = "pending_verification"
	StatusVerified            Status = "verified"
	StatusActive              Status = "active"
	StatusRented              Status = "rented"
	StatusArchived            Status = "archived"
)

// VerificationStatus tracks where the property stands in the inspection workflow.
type VerificationStatus string

const (
	VerificationPending    VerificationStatus = "pending"
	VerificationInProgress VerificationStatus = "in_progress"
	VerificationApproved   VerificationStatus = "approved"
	VerificationRejected   VerificationStatus = "rejected"
)

// DefaultCurrency is used when a listing omits its rent currency.
const DefaultCurrency = "XAF"

// Property holds the listing fields the payment and verification flows depend on.
type Property struct {
	ID                 uuid.UUID          `json:"id"`
	LandlordID         uuid.UUID          `json:"landlordId"`
	Title              string             `json:"title"`
	City               string             `json:"city"`
	Neighborhood       string             `json:"neighborhood,omitempty"`
	MonthlyRent        int64              `json:"monthlyRent"`
	Currency           string             `json:"currency"`
	Status             Status             `json:"status"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	VerifierID         *uuid.UUID         `json:"verifierId,omitempty"`
	VerifiedAt         *time.Time         `json:"verifiedAt,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// New creates a draft listing owned by landlordID.
func New(landlordID uuid.UUID, title, city, neighborhood string, monthlyRent int64, currency string) (*Property, error) {
	const op = "property.New"
	if landlordID == uuid.Nil {
		return nil, domain.NewValidationError(op, "landlordId", "is required")
	}
	if strings.TrimSpace(title) == "" {
		return nil, domain.NewValidationError(op, "title", "is required")
	}
	if strings.TrimSpace(city) == "" {
		return nil, domain.NewValidationError(op, "city", "is required")
	}
	if monthlyRent <= 0 {
		return nil, domain.NewValidationError(op, "monthlyRent", "must be a positive integer")
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	now := time.Now().UTC()
	return &Property{
		ID:                 uuid.New(),
		LandlordID:         landlordID,
		Title:              strings.TrimSpace(title),
		City:               strings.TrimSpace(city),
		Neighborhood:       strings.TrimSpace(neighborhood),
		MonthlyRent:        monthlyRent,
		Currency:           strings.ToUpper(currency),
		Status:             StatusDraft,
		VerificationStatus: VerificationPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// Payable reports whether renters may open transactions against the property.
func (p *Property) Payable() bool {
	return p.Status == StatusVerified || p.Status == StatusActive
}

// SubmitForVerification queues a draft (or previously rejected) listing for inspection.
func (p *Property) SubmitForVerification(now time.Time) error {
	if p.Status != StatusDraft {
		return domain.NewInvalidStateError("property.SubmitForVerification", "property", string(p.Status),
			"only draft properties can be submitted")
	}
	p.Status = StatusPendingVerification
	p.VerificationStatus = VerificationPending
	p.UpdatedAt = now
	return nil
}

// StartVerification marks the inspection as claimed.
func (p *Property) StartVerification(now time.Time) error {
	if p.Status != StatusPendingVerification {
		return domain.NewInvalidStateError("property.StartVerification", "property", string(p.Status),
			"property is not pending verification")
	}
	p.VerificationStatus = VerificationInProgress
	p.UpdatedAt = now
	return nil
}

// Approve publishes the verification outcome: a pending listing becomes verified.
// A listing already approved by another check is left as it is. Any other
// listing, including one sent back to draft by a rejected check, must be
// resubmitted first.
func (p *Property) Approve(verifierID uuid.UUID, now time.Time) error {
	switch p.Status {
	case StatusPendingVerification:
	case StatusVerified, StatusActive, StatusRented:
		if p.VerificationStatus == VerificationApproved {
			return nil
		}
		fallthrough
	default:
		return domain.NewInvalidStateError("property.Approve", "property", string(p.Status),
			"property is not pending verification")
	}
	p.Status = StatusVerified
	p.VerificationStatus = VerificationApproved
	p.VerifiedAt = &now
	p.VerifierID = &verifierID
	p.UpdatedAt = now
	return nil
}

// Reject sends the listing back to draft so the landlord can fix and resubmit it.
func (p *Property) Reject(now time.Time) {
	p.Status = StatusDraft
	p.VerificationStatus = VerificationRejected
	p.UpdatedAt = now
}

// SetActive toggles the listing between active and verified.
// Activation requires an approved verification.
func (p *Property) SetActive(active bool, now time.Time) error {
	const op = "property.SetActive"
	if active {
		if p.VerificationStatus != VerificationApproved {
			return domain.NewInvalidStateError(op, "property", string(p.VerificationStatus),
				"property must be approved before it can be activated")
		}
		if p.Status != StatusVerified && p.Status != StatusActive {
			return domain.NewInvalidStateError(op, "property", string(p.Status),
				"only verified properties can be activated")
		}
		p.Status = StatusActive
	} else {
		if p.Status != StatusActive && p.Status != StatusVerified {
			return domain.NewInvalidStateError(op, "property", string(p.Status),
				"only active properties can be deactivated")
		}
		p.Status = StatusVerified
	}
	p.UpdatedAt = now
	return nil
}

// Archive withdraws the listing for good.
func (p *Property) Archive(now time.Time) error {
	if p.Status == StatusArchived {
		return domain.NewInvalidStateError("property.Archive", "property", string(p.Status), "already archived")
	}
	p.Status = StatusArchived
	p.UpdatedAt = now
	return nil
}
