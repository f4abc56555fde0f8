package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain/user"
	"github.com/piolcm/piol/pkg/dto"
	repouser "github.com/piolcm/piol/pkg/repository/user"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository on the given session.
func NewUserRepository(db *gorm.DB) repouser.Repository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	m := mapUserToModel(u)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, update dto.UserUpdate) error {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Phone != nil {
		updates["phone"] = *update.Phone
	}
	if update.Role != nil {
		updates["role"] = string(*update.Role)
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()

	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return MapGormErrorToDomain(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) GetByAuthSubject(ctx context.Context, subject string) (*user.User, error) {
	return r.first(ctx, "auth_subject = ?", subject)
}

func (r *userRepository) ListByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	var models []User
	if err := r.db.WithContext(ctx).
		Where("role = ?", string(role)).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	users := make([]*user.User, 0, len(models))
	for i := range models {
		users = append(users, mapUserToDomain(&models[i]))
	}
	return users, nil
}

func (r *userRepository) first(ctx context.Context, query string, arg any) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapUserToDomain(&m), nil
}

func mapUserToModel(u *user.User) User {
	return User{
		ID:          u.ID,
		AuthSubject: u.AuthSubject,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        string(u.Role),
		Password:    u.Password,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func mapUserToDomain(m *User) *user.User {
	return &user.User{
		ID:          m.ID,
		AuthSubject: m.AuthSubject,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Role:        user.Role(m.Role),
		Password:    m.Password,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

var _ repouser.Repository = (*userRepository)(nil)
