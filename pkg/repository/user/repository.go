package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain/user"
	"github.com/piolcm/piol/pkg/dto"
)

// Repository defines the interface for user data access operations.
// Lookups of missing users fail with domain.ErrNotFound.
type Repository interface {
	// Create inserts a new user. A taken email or auth subject fails with domain.ErrAlreadyExists.
	Create(ctx context.Context, u *user.User) error

	// Update updates the non-nil fields of a user.
	Update(ctx context.Context, id uuid.UUID, update dto.UserUpdate) error

	// Get retrieves a user by its ID.
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*user.User, error)

	// GetByAuthSubject retrieves the user an authenticated identity belongs to.
	GetByAuthSubject(ctx context.Context, subject string) (*user.User, error)

	// ListByRole lists every user holding role.
	ListByRole(ctx context.Context, role user.Role) ([]*user.User, error)
}
