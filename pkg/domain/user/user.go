package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/utils"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserUnauthorized is returned when credentials or the token subject do not resolve to a user.
	ErrUserUnauthorized = errors.New("user unauthorized")
	// ErrInvalidRole is returned for a role outside the known set.
	ErrInvalidRole = errors.New("invalid role")
)

// Role is the single role a user holds on the marketplace.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleVerifier Role = "verifier"
	RoleLandlord Role = "landlord"
	RoleRenter   Role = "renter"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleVerifier, RoleLandlord, RoleRenter:
		return true
	}
	return false
}

// SelfAssignable reports whether a user may pick the role at registration.
func (r Role) SelfAssignable() bool {
	return r == RoleLandlord || r == RoleRenter
}

// LocalSubjectPrefix marks auth subjects issued by this service's own login.
const LocalSubjectPrefix = "piol|"

// User represents a user in the system.
type User struct {
	ID          uuid.UUID `json:"id"`
	AuthSubject string    `json:"-"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Role        Role      `json:"role"`
	Password    string    `json:"-"`
	CreatedAt   time.Time `json:"created"`
	UpdatedAt   time.Time `json:"updated"`
}

// NewUser creates a new User with a hashed password, a fresh auth subject and current timestamps.
func NewUser(name, email, password string, role Role) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name cannot be empty")
	}
	if !utils.IsEmail(email) {
		return nil, errors.New("email is invalid")
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	id := uuid.New()
	now := time.Now().UTC()
	return &User{
		ID:          id,
		AuthSubject: LocalSubjectPrefix + id.String(),
		Name:        name,
		Email:       strings.ToLower(email),
		Role:        role,
		Password:    hashedPassword,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// HasRole reports whether the user holds any of the given roles.
func (u *User) HasRole(roles ...Role) bool {
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// IsAdmin is shorthand for HasRole(RoleAdmin).
func (u *User) IsAdmin() bool { return u.HasRole(RoleAdmin) }

// SetPhone normalizes and stores a Cameroon mobile number.
func (u *User) SetPhone(phone string) error {
	msisdn, err := utils.NormalizeMSISDN(phone)
	if err != nil {
		return err
	}
	u.Phone = msisdn
	u.UpdatedAt = time.Now().UTC()
	return nil
}
