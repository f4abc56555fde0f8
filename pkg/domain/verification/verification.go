package verification

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain"
)

// Type is the kind of inspection performed.
type Type string

const (
	TypePropertyVisit     Type = "property_visit"
	TypeOwnershipDocument Type = "ownership_document"
	TypeIDVerification    Type = "id_verification"
)

// Valid reports whether t is a known verification type.
func (t Type) Valid() bool {
	return t == TypePropertyVisit || t == TypeOwnershipDocument || t == TypeIDVerification
}

// Status of a claimed verification. Before a claim there is no record at all.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
)

// Outcome reports whether s is a valid completion status.
func (s Status) Outcome() bool {
	return s == StatusApproved || s == StatusRejected
}

// Document is a piece of evidence attached to a verification.
type Document struct {
	Type      string `json:"type"`
	StorageID string `json:"storageId"`
	Verified  bool   `json:"verified"`
}

// Photo is a picture taken during a property visit.
type Photo struct {
	StorageID string    `json:"storageId"`
	Timestamp time.Time `json:"timestamp"`
}

// Verification is one inspection assignment for one property.
type Verification struct {
	ID          uuid.UUID  `json:"id"`
	PropertyID  uuid.UUID  `json:"propertyId"`
	VerifierID  uuid.UUID  `json:"verifierId"`
	Type        Type       `json:"verificationType"`
	Status      Status     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	VisitDate   *time.Time `json:"visitDate,omitempty"`
	Documents   []Document `json:"documents"`
	VisitPhotos []Photo    `json:"visitPhotos"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Claim opens an in-progress verification assigned to verifierID.
func Claim(propertyID, verifierID uuid.UUID, typ Type, now time.Time) (*Verification, error) {
	const op = "verification.Claim"
	if propertyID == uuid.Nil {
		return nil, domain.NewValidationError(op, "propertyId", "is required")
	}
	if !typ.Valid() {
		return nil, domain.NewValidationError(op, "verificationType", "unknown type "+string(typ))
	}
	return &Verification{
		ID:          uuid.New(),
		PropertyID:  propertyID,
		VerifierID:  verifierID,
		Type:        typ,
		Status:      StatusInProgress,
		Documents:   []Document{},
		VisitPhotos: []Photo{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update carries the evidence recorded by the verifier. Nil fields are left untouched;
// documents and photos are appended.
type Update struct {
	Notes       *string
	VisitDate   *time.Time
	Documents   []Document
	VisitPhotos []Photo
}

// Apply records evidence on an in-progress verification.
func (v *Verification) Apply(u Update, now time.Time) error {
	const op = "verification.Apply"
	if v.Status != StatusInProgress {
		return domain.NewInvalidStateError(op, "verification", string(v.Status), "verification is already completed")
	}
	for _, d := range u.Documents {
		if strings.TrimSpace(d.StorageID) == "" {
			return domain.NewValidationError(op, "documents.storageId", "is required")
		}
	}
	for _, p := range u.VisitPhotos {
		if strings.TrimSpace(p.StorageID) == "" {
			return domain.NewValidationError(op, "visitPhotos.storageId", "is required")
		}
	}
	if u.Notes != nil {
		v.Notes = *u.Notes
	}
	if u.VisitDate != nil {
		d := u.VisitDate.UTC()
		v.VisitDate = &d
	}
	v.Documents = append(v.Documents, u.Documents...)
	v.VisitPhotos = append(v.VisitPhotos, u.VisitPhotos...)
	v.UpdatedAt = now
	return nil
}

// Complete closes the verification with an approved or rejected outcome.
// CompletedAt is stamped here and never again.
func (v *Verification) Complete(status Status, notes string, now time.Time) error {
	const op = "verification.Complete"
	if !status.Outcome() {
		return domain.NewValidationError(op, "status", "must be approved or rejected")
	}
	if v.Status != StatusInProgress {
		return domain.NewInvalidStateError(op, "verification", string(v.Status), "verification is already completed")
	}
	v.Status = status
	if notes != "" {
		v.Notes = notes
	}
	v.CompletedAt = &now
	v.UpdatedAt = now
	return nil
}

// Active reports whether the verification still blocks a new claim of the same type.
func (v *Verification) Active() bool {
	return v.Status != StatusRejected
}
