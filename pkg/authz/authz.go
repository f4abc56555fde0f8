// Package authz holds the role and ownership checks every mutation runs
// before touching state. Callers are identified by an AuthContext resolved
// server-side from the authenticated subject, never from client claims.
package authz

import (
	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/user"
)

// Identity is what the authentication layer vouches for.
type Identity struct {
	Subject string
}

// AuthContext is the resolved caller: the authenticated identity joined to the local user.
// A nil *AuthContext is an anonymous caller.
type AuthContext struct {
	Identity Identity
	User     *user.User
}

// New builds an AuthContext for a resolved user.
func New(u *user.User) *AuthContext {
	if u == nil {
		return nil
	}
	return &AuthContext{Identity: Identity{Subject: u.AuthSubject}, User: u}
}

// UserID returns the caller's user id, or uuid.Nil when anonymous.
func (a *AuthContext) UserID() uuid.UUID {
	if a == nil || a.User == nil {
		return uuid.Nil
	}
	return a.User.ID
}

// Authenticated reports whether the caller resolved to a local user.
func (a *AuthContext) Authenticated() bool {
	return a != nil && a.User != nil
}

// RequireUser returns the caller or an UnauthorizedError.
func RequireUser(a *AuthContext, op string) (*user.User, error) {
	if !a.Authenticated() {
		return nil, domain.NewUnauthorizedError(op, "authentication required")
	}
	return a.User, nil
}

// HasRole reports whether the caller holds one of roles.
func HasRole(a *AuthContext, roles ...user.Role) bool {
	return a.Authenticated() && a.User.HasRole(roles...)
}

// AssertRole fails unless the caller holds one of roles.
func AssertRole(a *AuthContext, op string, roles ...user.Role) error {
	if _, err := RequireUser(a, op); err != nil {
		return err
	}
	if !a.User.HasRole(roles...) {
		return domain.NewUnauthorizedError(op, "role "+string(a.User.Role)+" is not allowed")
	}
	return nil
}

// IsOwnerOrAdmin reports whether the caller is ownerID or an admin.
func IsOwnerOrAdmin(a *AuthContext, ownerID uuid.UUID) bool {
	if !a.Authenticated() {
		return false
	}
	return a.User.ID == ownerID || a.User.IsAdmin()
}

// AssertOwner fails unless the caller is ownerID or an admin.
func AssertOwner(a *AuthContext, op string, ownerID uuid.UUID) error {
	if _, err := RequireUser(a, op); err != nil {
		return err
	}
	if !IsOwnerOrAdmin(a, ownerID) {
		return domain.NewUnauthorizedError(op, "caller does not own the resource")
	}
	return nil
}

// AssertAdmin fails unless the caller is an admin.
func AssertAdmin(a *AuthContext, op string) error {
	return AssertRole(a, op, user.RoleAdmin)
}

// AssertAdminOrVerifier fails unless the caller is an admin or a verifier.
func AssertAdminOrVerifier(a *AuthContext, op string) error {
	return AssertRole(a, op, user.RoleAdmin, user.RoleVerifier)
}

// AssertLandlordOrAdmin fails unless the caller is a landlord or an admin.
func AssertLandlordOrAdmin(a *AuthContext, op string) error {
	return AssertRole(a, op, user.RoleLandlord, user.RoleAdmin)
}
