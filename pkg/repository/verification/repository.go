package verification

import (
	"context"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain/verification"
)

// Repository defines the interface for verification data access operations.
type Repository interface {
	// Create inserts a claimed verification. A second non-rejected verification
	// for the same property and type fails with domain.ErrAlreadyExists.
	Create(ctx context.Context, v *verification.Verification) error
	Save(ctx context.Context, v *verification.Verification) error
	Get(ctx context.Context, id uuid.UUID) (*verification.Verification, error)
	// FindActive returns the non-rejected verification of typ for the property, or nil.
	FindActive(ctx context.Context, propertyID uuid.UUID, typ verification.Type) (*verification.Verification, error)
	ListByVerifier(ctx context.Context, verifierID uuid.UUID) ([]*verification.Verification, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*verification.Verification, error)
}
