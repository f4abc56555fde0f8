package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	infrarepo "github.com/piolcm/piol/infra/repository"
	"github.com/piolcm/piol/pkg/authz"
	"github.com/piolcm/piol/pkg/domain/property"
	"github.com/piolcm/piol/pkg/domain/transaction"
	"github.com/piolcm/piol/pkg/domain/user"
	"github.com/piolcm/piol/pkg/dto"
	"github.com/piolcm/piol/pkg/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SeedUser stores a user with role and phone and returns its resolved AuthContext.
// The password is not a real hash; use the user service to test logins.
func SeedUser(t testing.TB, uow repository.UnitOfWork, role user.Role, phone string) *authz.AuthContext {
	t.Helper()
	id := uuid.New()
	now := time.Now().UTC()
	u := &user.User{
		ID:          id,
		AuthSubject: user.LocalSubjectPrefix + id.String(),
		Name:        string(role) + " " + id.String()[:4],
		Email:       id.String()[:8] + "@piol.test",
		Phone:       phone,
		Role:        role,
		Password:    "not-a-hash",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	repo, err := uow.UserRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))
	return authz.New(u)
}

// SeedProperty stores a property owned by landlordID in status.
// Verified and active properties are stored with an approved verification.
func SeedProperty(t testing.TB, uow repository.UnitOfWork, landlordID uuid.UUID, status property.Status) *property.Property {
	t.Helper()
	p, err := property.New(landlordID, "Studio meublé Bastos", "Yaoundé", "Bastos", 150000, "XAF")
	require.NoError(t, err)
	p.Status = status
	switch status {
	case property.StatusVerified, property.StatusActive, property.StatusRented:
		p.VerificationStatus = property.VerificationApproved
		now := time.Now().UTC()
		p.VerifiedAt = &now
	}
	repo, err := uow.PropertyRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

// SeedTransaction stores a transaction already moved to status, with escrow
// held when status is completed.
func SeedTransaction(
	t testing.TB,
	uow repository.UnitOfWork,
	prop *property.Property,
	renterID uuid.UUID,
	method transaction.Method,
	amount int64,
	status transaction.Status,
) *transaction.Transaction {
	t.Helper()
	ctx := context.Background()
	tx, err := transaction.New(prop.ID, renterID, prop.LandlordID, transaction.TypeRentPayment,
		amount, prop.Currency, method, "237699000002", time.Now().UTC())
	require.NoError(t, err)
	repo, err := uow.TransactionRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, tx))
	if status == transaction.StatusPending {
		return tx
	}

	update := dto.TransactionUpdate{Status: &status, MobileMoneyReference: ptr(uuid.NewString())}
	if status == transaction.StatusCompleted {
		update.EscrowStatus = ptr(transaction.EscrowHeld)
		update.CompletedAt = ptr(time.Now().UTC())
	}
	_, err = repo.Transition(ctx, tx.ID, dto.TransactionGuard{}, update)
	require.NoError(t, err)
	tx, err = repo.Get(ctx, tx.ID)
	require.NoError(t, err)
	return tx
}

func ptr[T any](v T) *T {
	return &v
}

// Env is a test database seeded with one user per role.
type Env struct {
	DB       *gorm.DB
	Uow      *infrarepo.UoW
	Admin    *authz.AuthContext
	Verifier *authz.AuthContext
	Landlord *authz.AuthContext
	Renter   *authz.AuthContext
}

// NewEnv creates an Env. The landlord has a mobile-money number on file.
func NewEnv(t testing.TB) *Env {
	t.Helper()
	db := NewTestDB(t)
	uow := infrarepo.NewUoW(db)
	return &Env{
		DB:       db,
		Uow:      uow,
		Admin:    SeedUser(t, uow, user.RoleAdmin, ""),
		Verifier: SeedUser(t, uow, user.RoleVerifier, ""),
		Landlord: SeedUser(t, uow, user.RoleLandlord, "237699000001"),
		Renter:   SeedUser(t, uow, user.RoleRenter, "237677000002"),
	}
}
