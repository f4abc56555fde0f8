package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain/property"
)

// Repository defines the interface for property data access operations.
type Repository interface {
	Create(ctx context.Context, p *property.Property) error
	// Save persists every mutable field of p.
	Save(ctx context.Context, p *property.Property) error
	Get(ctx context.Context, id uuid.UUID) (*property.Property, error)
	ListByStatus(ctx context.Context, status property.Status) ([]*property.Property, error)
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*property.Property, error)
}
