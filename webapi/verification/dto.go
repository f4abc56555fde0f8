package verification

import "time"

type ClaimInput struct {
	PropertyID string `json:"propertyId" validate:"required,uuid"`
	Type       string `json:"verificationType" validate:"required,oneof=property_visit ownership_document id_verification"`
}

type DocumentInput struct {
	Type      string `json:"type" validate:"required"`
	StorageID string `json:"storageId" validate:"required"`
	Verified  bool   `json:"verified"`
}

type PhotoInput struct {
	StorageID string    `json:"storageId" validate:"required"`
	Timestamp time.Time `json:"timestamp"`
}

// UpdateInput records evidence. Documents and photos are appended.
type UpdateInput struct {
	Notes       *string         `json:"notes" validate:"omitempty,max=5000"`
	VisitDate   *time.Time      `json:"visitDate"`
	Documents   []DocumentInput `json:"documents" validate:"omitempty,dive"`
	VisitPhotos []PhotoInput    `json:"visitPhotos" validate:"omitempty,dive"`
}

type CompleteInput struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Notes  string `json:"notes" validate:"max=5000"`
}
