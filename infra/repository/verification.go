package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/verification"
	repoverification "github.com/piolcm/piol/pkg/repository/verification"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a verification repository on the given session.
func NewVerificationRepository(db *gorm.DB) repoverification.Repository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Create(ctx context.Context, v *verification.Verification) error {
	m := mapVerificationToModel(v)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

func (r *verificationRepository) Save(ctx context.Context, v *verification.Verification) error {
	v.UpdatedAt = time.Now().UTC()
	m := mapVerificationToModel(v)
	res := r.db.WithContext(ctx).Model(&Verification{}).Where("id = ?", v.ID).Updates(map[string]any{
		"status":       m.Status,
		"notes":        m.Notes,
		"visit_date":   m.VisitDate,
		"documents":    m.Documents,
		"visit_photos": m.VisitPhotos,
		"completed_at": m.CompletedAt,
		"updated_at":   m.UpdatedAt,
	})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return MapGormErrorToDomain(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *verificationRepository) Get(ctx context.Context, id uuid.UUID) (*verification.Verification, error) {
	var m Verification
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapVerificationToDomain(&m), nil
}

func (r *verificationRepository) FindActive(
	ctx context.Context,
	propertyID uuid.UUID,
	typ verification.Type,
) (*verification.Verification, error) {
	var m Verification
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND verification_type = ? AND status <> ?",
			propertyID, string(typ), string(verification.StatusRejected)).
		First(&m).Error
	if err != nil {
		mapped := MapGormErrorToDomain(err)
		if errors.Is(mapped, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, mapped
	}
	return mapVerificationToDomain(&m), nil
}

func (r *verificationRepository) ListByVerifier(
	ctx context.Context,
	verifierID uuid.UUID,
) ([]*verification.Verification, error) {
	return r.list(ctx, "verifier_id = ?", verifierID)
}

func (r *verificationRepository) ListByProperty(
	ctx context.Context,
	propertyID uuid.UUID,
) ([]*verification.Verification, error) {
	return r.list(ctx, "property_id = ?", propertyID)
}

func (r *verificationRepository) list(ctx context.Context, query string, arg any) ([]*verification.Verification, error) {
	var models []Verification
	if err := r.db.WithContext(ctx).Where(query, arg).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*verification.Verification, 0, len(models))
	for i := range models {
		out = append(out, mapVerificationToDomain(&models[i]))
	}
	return out, nil
}

func mapVerificationToModel(v *verification.Verification) Verification {
	docs := v.Documents
	if docs == nil {
		docs = []verification.Document{}
	}
	photos := v.VisitPhotos
	if photos == nil {
		photos = []verification.Photo{}
	}
	return Verification{
		ID:               v.ID,
		PropertyID:       v.PropertyID,
		VerificationType: string(v.Type),
		VerifierID:       v.VerifierID,
		Status:           string(v.Status),
		Notes:            v.Notes,
		VisitDate:        v.VisitDate,
		Documents:        datatypes.NewJSONSlice(docs),
		VisitPhotos:      datatypes.NewJSONSlice(photos),
		CompletedAt:      v.CompletedAt,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func mapVerificationToDomain(m *Verification) *verification.Verification {
	return &verification.Verification{
		ID:          m.ID,
		PropertyID:  m.PropertyID,
		VerifierID:  m.VerifierID,
		Type:        verification.Type(m.VerificationType),
		Status:      verification.Status(m.Status),
		Notes:       m.Notes,
		VisitDate:   m.VisitDate,
		Documents:   []verification.Document(m.Documents),
		VisitPhotos: []verification.Photo(m.VisitPhotos),
		CompletedAt: m.CompletedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

var _ repoverification.Repository = (*verificationRepository)(nil)
