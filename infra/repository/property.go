package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain/property"
	repoproperty "github.com/piolcm/piol/pkg/repository/property"
	"gorm.io/gorm"
)

type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a property repository on the given session.
func NewPropertyRepository(db *gorm.DB) repoproperty.Repository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, p *property.Property) error {
	m := mapPropertyToModel(p)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

func (r *propertyRepository) Save(ctx context.Context, p *property.Property) error {
	p.UpdatedAt = time.Now().UTC()
	m := mapPropertyToModel(p)
	res := r.db.WithContext(ctx).Model(&Property{}).Where("id = ?", p.ID).Updates(map[string]any{
		"title":               m.Title,
		"city":                m.City,
		"neighborhood":        m.Neighborhood,
		"monthly_rent":        m.MonthlyRent,
		"currency":            m.Currency,
		"status":              m.Status,
		"verification_status": m.VerificationStatus,
		"verifier_id":         m.VerifierID,
		"verified_at":         m.VerifiedAt,
		"updated_at":          m.UpdatedAt,
	})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return MapGormErrorToDomain(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *propertyRepository) Get(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	var m Property
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapPropertyToDomain(&m), nil
}

func (r *propertyRepository) ListByStatus(ctx context.Context, status property.Status) ([]*property.Property, error) {
	return r.list(ctx, "status = ?", string(status), "updated_at ASC")
}

func (r *propertyRepository) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*property.Property, error) {
	return r.list(ctx, "landlord_id = ?", landlordID, "created_at DESC")
}

func (r *propertyRepository) list(ctx context.Context, query string, arg any, order string) ([]*property.Property, error) {
	var models []Property
	if err := r.db.WithContext(ctx).Where(query, arg).Order(order).Find(&models).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*property.Property, 0, len(models))
	for i := range models {
		out = append(out, mapPropertyToDomain(&models[i]))
	}
	return out, nil
}

func mapPropertyToModel(p *property.Property) Property {
	return Property{
		ID:                 p.ID,
		LandlordID:         p.LandlordID,
		Title:              p.Title,
		City:               p.City,
		Neighborhood:       p.Neighborhood,
		MonthlyRent:        p.MonthlyRent,
		Currency:           p.Currency,
		Status:             string(p.Status),
		VerificationStatus: string(p.VerificationStatus),
		VerifierID:         p.VerifierID,
		VerifiedAt:         p.VerifiedAt,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func mapPropertyToDomain(m *Property) *property.Property {
	return &property.Property{
		ID:                 m.ID,
		LandlordID:         m.LandlordID,
		Title:              m.Title,
		City:               m.City,
		Neighborhood:       m.Neighborhood,
		MonthlyRent:        m.MonthlyRent,
		Currency:           m.Currency,
		Status:             property.Status(m.Status),
		VerificationStatus: property.VerificationStatus(m.VerificationStatus),
		VerifierID:         m.VerifierID,
		VerifiedAt:         m.VerifiedAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

var _ repoproperty.Repository = (*propertyRepository)(nil)
