package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/notification"
	"github.com/piolcm/piol/pkg/domain/property"
	"github.com/piolcm/piol/pkg/domain/transaction"
	"github.com/piolcm/piol/pkg/domain/user"
	"github.com/piolcm/piol/pkg/domain/verification"
	"github.com/piolcm/piol/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(Models()...))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newTestTransaction(t *testing.T) *transaction.Transaction {
	t.Helper()
	tx, err := transaction.New(uuid.New(), uuid.New(), uuid.New(),
		transaction.TypeRentPayment, 150000, "XAF", transaction.MethodMTNMoMo, "237699000002", time.Now().UTC())
	require.NoError(t, err)
	return tx
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	u := &user.User{
		ID:          uuid.New(),
		AuthSubject: "piol|abc",
		Name:        "Mbarga",
		Email:       "mbarga@piol.cm",
		Role:        user.RoleLandlord,
		Password:    "hash",
	}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByAuthSubject(ctx, "piol|abc")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, user.RoleLandlord, got.Role)

	phone := "237699000001"
	role := user.RoleAdmin
	require.NoError(t, repo.Update(ctx, u.ID, dto.UserUpdate{Phone: &phone, Role: &role}))
	got, err = repo.GetByEmail(ctx, "mbarga@piol.cm")
	require.NoError(t, err)
	assert.Equal(t, phone, got.Phone)
	assert.Equal(t, user.RoleAdmin, got.Role)

	admins, err := repo.ListByRole(ctx, user.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, admins, 1)

	_, err = repo.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, uuid.New(), dto.UserUpdate{Phone: &phone}), domain.ErrNotFound)
}

func TestPropertyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPropertyRepository(newTestDB(t))

	p, err := property.New(uuid.New(), "Villa Bonapriso", "Douala", "Bonapriso", 450000, "XAF")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, p.SubmitForVerification(time.Now().UTC()))
	require.NoError(t, repo.Save(ctx, p))

	pending, err := repo.ListByStatus(ctx, property.StatusPendingVerification)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, p.ID, pending[0].ID)

	verifier := uuid.New()
	require.NoError(t, p.Approve(verifier, time.Now().UTC()))
	require.NoError(t, repo.Save(ctx, p))

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, property.StatusVerified, got.Status)
	assert.Equal(t, property.VerificationApproved, got.VerificationStatus)
	require.NotNil(t, got.VerifierID)
	assert.Equal(t, verifier, *got.VerifierID)
	assert.NotNil(t, got.VerifiedAt)

	mine, err := repo.ListByLandlord(ctx, p.LandlordID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	assert.ErrorIs(t, repo.Save(ctx, &property.Property{ID: uuid.New()}), domain.ErrNotFound)
}

func TestTransactionRepositoryLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTestDB(t))

	tx := newTestTransaction(t)
	require.NoError(t, repo.Create(ctx, tx))

	byRef, err := repo.GetByReference(ctx, tx.Reference)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, byRef.ID)
	assert.Equal(t, transaction.StatusPending, byRef.Status)
	assert.Equal(t, transaction.EscrowNone, byRef.EscrowStatus)

	dup := newTestTransaction(t)
	dup.Reference = tx.Reference
	require.Error(t, repo.Create(ctx, dup), "transaction references are unique")

	asRenter, err := repo.ListByUser(ctx, tx.RenterID)
	require.NoError(t, err)
	assert.Len(t, asRenter, 1)
	asLandlord, err := repo.ListByUser(ctx, tx.LandlordID)
	require.NoError(t, err)
	assert.Len(t, asLandlord, 1)

	_, err = repo.GetByMobileMoneyReference(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactionRepositoryTransition(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTestDB(t))

	tx := newTestTransaction(t)
	require.NoError(t, repo.Create(ctx, tx))

	processing := transaction.StatusProcessing
	ref := uuid.NewString()
	applied, err := repo.Transition(ctx, tx.ID, dto.StatusIn(transaction.StatusPending),
		dto.TransactionUpdate{Status: &processing, MobileMoneyReference: &ref})
	require.NoError(t, err)
	assert.True(t, applied)

	// the guard no longer matches: nothing changes
	applied, err = repo.Transition(ctx, tx.ID, dto.StatusIn(transaction.StatusPending),
		dto.TransactionUpdate{Status: &processing})
	require.NoError(t, err)
	assert.False(t, applied)

	completed := transaction.StatusCompleted
	held := transaction.EscrowHeld
	now := time.Now().UTC()
	received := true
	ext := "FT-1"
	applied, err = repo.Transition(ctx, tx.ID, dto.StatusIn(transaction.StatusProcessing), dto.TransactionUpdate{
		Status:           &completed,
		EscrowStatus:     &held,
		CompletedAt:      &now,
		ExternalID:       &ext,
		CallbackReceived: &received,
	})
	require.NoError(t, err)
	assert.True(t, applied)

	got, err := repo.GetByMobileMoneyReference(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusCompleted, got.Status)
	assert.Equal(t, transaction.EscrowHeld, got.EscrowStatus)
	assert.Equal(t, "FT-1", got.ExternalID)
	assert.True(t, got.CallbackReceived)
	assert.NotNil(t, got.CompletedAt)

	released := transaction.EscrowReleased
	applied, err = repo.Transition(ctx, tx.ID, dto.EscrowIn(transaction.EscrowHeld),
		dto.TransactionUpdate{EscrowStatus: &released})
	require.NoError(t, err)
	assert.True(t, applied)
	applied, err = repo.Transition(ctx, tx.ID, dto.EscrowIn(transaction.EscrowHeld),
		dto.TransactionUpdate{EscrowStatus: &released})
	require.NoError(t, err)
	assert.False(t, applied, "released escrow cannot be released twice")

	_, err = repo.Transition(ctx, uuid.New(), dto.TransactionGuard{}, dto.TransactionUpdate{Status: &completed})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactionRepositoryListStale(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTransactionRepository(db)

	old := newTestTransaction(t)
	old.Status = transaction.StatusProcessing
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, db.Model(&Transaction{}).Where("id = ?", old.ID).
		UpdateColumn("updated_at", time.Now().UTC().Add(-2*time.Hour)).Error)

	fresh := newTestTransaction(t)
	fresh.Status = transaction.StatusProcessing
	require.NoError(t, repo.Create(ctx, fresh))

	stale, err := repo.ListStale(ctx, transaction.StatusProcessing, time.Now().UTC().Add(-time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, old.ID, stale[0].ID)
}

func TestVerificationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewVerificationRepository(newTestDB(t))
	propertyID := uuid.New()

	v, err := verification.Claim(propertyID, uuid.New(), verification.TypePropertyVisit, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, v))

	active, err := repo.FindActive(ctx, propertyID, verification.TypePropertyVisit)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, v.ID, active.ID)

	second, err := verification.Claim(propertyID, uuid.New(), verification.TypePropertyVisit, time.Now().UTC())
	require.NoError(t, err)
	require.Error(t, repo.Create(ctx, second), "one active verification per property and type")

	other, err := verification.Claim(propertyID, uuid.New(), verification.TypeOwnershipDocument, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, other))

	require.NoError(t, v.Apply(verification.Update{
		Documents:   []verification.Document{{Type: "land_title", StorageID: "st_1"}},
		VisitPhotos: []verification.Photo{{StorageID: "ph_1", Timestamp: time.Now().UTC()}},
	}, time.Now().UTC()))
	require.NoError(t, v.Complete(verification.StatusRejected, "blurry photos", time.Now().UTC()))
	require.NoError(t, repo.Save(ctx, v))

	got, err := repo.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, verification.StatusRejected, got.Status)
	require.Len(t, got.Documents, 1)
	assert.Equal(t, "st_1", got.Documents[0].StorageID)
	require.Len(t, got.VisitPhotos, 1)
	assert.NotNil(t, got.CompletedAt)

	none, err := repo.FindActive(ctx, propertyID, verification.TypePropertyVisit)
	require.NoError(t, err)
	assert.Nil(t, none)
	require.NoError(t, repo.Create(ctx, second), "a rejected verification frees the slot")

	byProperty, err := repo.ListByProperty(ctx, propertyID)
	require.NoError(t, err)
	assert.Len(t, byProperty, 3)
	mine, err := repo.ListByVerifier(ctx, v.VerifierID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestNotificationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository(newTestDB(t))
	owner := uuid.New()

	n1 := notification.New(owner, notification.TypePaymentCompleted, "Payment received", "150000 XAF", uuid.New())
	n2 := notification.New(owner, notification.TypeEscrowReleased, "Funds released", "142500 XAF", uuid.Nil)
	require.NoError(t, repo.Create(ctx, n1))
	require.NoError(t, repo.Create(ctx, n2))

	assert.ErrorIs(t, repo.MarkRead(ctx, n1.ID, uuid.New()), domain.ErrNotFound)
	require.NoError(t, repo.MarkRead(ctx, n1.ID, owner))

	unread, err := repo.ListByUser(ctx, owner, true, 0)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, n2.ID, unread[0].ID)
	assert.Nil(t, unread[0].RelatedID)

	all, err := repo.ListByUser(ctx, owner, false, 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
