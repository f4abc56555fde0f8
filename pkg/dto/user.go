package dto

import (
	"github.com/piolcm/piol/pkg/domain/user"
)

// UserUpdate represents the data that can be updated for a user.
type UserUpdate struct {
	Name  *string    `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone *string    `json:"phone,omitempty"`
	Role  *user.Role `json:"role,omitempty"`
}
