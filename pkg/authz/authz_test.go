package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func caller(role user.Role) *AuthContext {
	return New(&user.User{ID: uuid.New(), AuthSubject: "piol|x", Role: role})
}

func TestAnonymousCaller(t *testing.T) {
	t.Parallel()

	var anon *AuthContext
	assert.False(t, anon.Authenticated())
	assert.Equal(t, uuid.Nil, anon.UserID())
	assert.False(t, HasRole(anon, user.RoleAdmin))
	assert.False(t, IsOwnerOrAdmin(anon, uuid.Nil))
	assert.ErrorIs(t, AssertAdmin(anon, "op"), domain.ErrUnauthorized)
	assert.ErrorIs(t, AssertOwner(anon, "op", uuid.New()), domain.ErrUnauthorized)
	assert.Nil(t, New(nil))
}

func TestRoleAssertions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role            user.Role
		admin           bool
		adminOrVerifier bool
		landlordOrAdmin bool
	}{
		{user.RoleAdmin, true, true, true},
		{user.RoleVerifier, false, true, false},
		{user.RoleLandlord, false, false, true},
		{user.RoleRenter, false, false, false},
	}
	check := func(t *testing.T, ok bool, err error) {
		t.Helper()
		if ok {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		}
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			t.Parallel()
			ac := caller(tt.role)
			check(t, tt.admin, AssertAdmin(ac, "op"))
			check(t, tt.adminOrVerifier, AssertAdminOrVerifier(ac, "op"))
			check(t, tt.landlordOrAdmin, AssertLandlordOrAdmin(ac, "op"))
			assert.True(t, HasRole(ac, tt.role))
		})
	}
}

func TestOwnership(t *testing.T) {
	t.Parallel()

	landlord := caller(user.RoleLandlord)
	other := caller(user.RoleLandlord)
	admin := caller(user.RoleAdmin)

	assert.True(t, IsOwnerOrAdmin(landlord, landlord.UserID()))
	assert.False(t, IsOwnerOrAdmin(other, landlord.UserID()))
	assert.True(t, IsOwnerOrAdmin(admin, landlord.UserID()))

	require.NoError(t, AssertOwner(landlord, "op", landlord.UserID()))
	require.NoError(t, AssertOwner(admin, "op", landlord.UserID()))
	err := AssertOwner(other, "property.Archive", landlord.UserID())
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Contains(t, err.Error(), "property.Archive")
}

func TestRequireUser(t *testing.T) {
	t.Parallel()

	ac := caller(user.RoleRenter)
	u, err := RequireUser(ac, "op")
	require.NoError(t, err)
	assert.Equal(t, ac.User, u)

	_, err = RequireUser(&AuthContext{Identity: Identity{Subject: "piol|ghost"}}, "op")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
