package payment_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	infraeventbus "github.com/piolcm/piol/infra/eventbus"
	infrarepo "github.com/piolcm/piol/infra/repository"
	"github.com/piolcm/piol/internal/fixtures"
	"github.com/piolcm/piol/internal/fixtures/mocks"
	"github.com/piolcm/piol/pkg/authz"
	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/events"
	"github.com/piolcm/piol/pkg/domain/property"
	"github.com/piolcm/piol/pkg/domain/transaction"
	"github.com/piolcm/piol/pkg/domain/user"
	provider "github.com/piolcm/piol/pkg/provider/payment"
	paymentsvc "github.com/piolcm/piol/pkg/service/payment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const landlordPhone = "237699000001"

// mtnProvider combines the collection and disbursement mocks the way the MTN adapter does.
type mtnProvider struct {
	*mocks.MockPaymentProvider
	*mocks.MockDisburser
}

type harness struct {
	db        *gorm.DB
	uow       *infrarepo.UoW
	bus       *infraeventbus.MemoryEventBus
	mtn       *mocks.MockPaymentProvider
	disburser *mocks.MockDisburser
	orange    *mocks.MockPaymentProvider
	svc       *paymentsvc.Service

	renter   *authz.AuthContext
	landlord *authz.AuthContext
	admin    *authz.AuthContext
	property *property.Property
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := fixtures.NewTestDB(t)
	h := &harness{
		db:        db,
		uow:       infrarepo.NewUoW(db),
		bus:       infraeventbus.NewWithMemory(slog.Default()),
		mtn:       mocks.NewMockPaymentProvider(t),
		disburser: mocks.NewMockDisburser(t),
		orange:    mocks.NewMockPaymentProvider(t),
	}
	h.svc = paymentsvc.NewService(config.Deps{
		Uow: h.uow,
		Providers: provider.Registry{
			transaction.MethodMTNMoMo:     mtnProvider{h.mtn, h.disburser},
			transaction.MethodOrangeMoney: h.orange,
		},
		EventBus: h.bus,
		Logger:   slog.Default(),
		Config: &config.App{
			CallbackBaseURL: "https://api.piol.cm/",
			Escrow: &config.Escrow{
				CommissionRate:     decimal.RequireFromString("0.05"),
				DisbursementMethod: string(transaction.MethodMTNMoMo),
			},
		},
	})
	h.renter = fixtures.SeedUser(t, h.uow, user.RoleRenter, "237677000002")
	h.landlord = fixtures.SeedUser(t, h.uow, user.RoleLandlord, landlordPhone)
	h.admin = fixtures.SeedUser(t, h.uow, user.RoleAdmin, "")
	h.property = fixtures.SeedProperty(t, h.uow, h.landlord.UserID(), property.StatusActive)
	return h
}

func (h *harness) seedTx(t *testing.T, method transaction.Method, amount int64, status transaction.Status) *transaction.Transaction {
	t.Helper()
	return fixtures.SeedTransaction(t, h.uow, h.property, h.renter.UserID(), method, amount, status)
}

func (h *harness) reload(t *testing.T, id uuid.UUID) *transaction.Transaction {
	t.Helper()
	repo, err := h.uow.TransactionRepository()
	require.NoError(t, err)
	tx, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	return tx
}

func (h *harness) publishedTypes() []string {
	var out []string
	for _, e := range h.bus.Published() {
		out = append(out, e.Type())
	}
	return out
}

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	tx, err := h.svc.CreateTransaction(ctx, h.renter, paymentsvc.CreateTransactionInput{
		PropertyID: h.property.ID,
		Type:       transaction.TypeRentPayment,
		Amount:     150000,
		Method:     transaction.MethodMTNMoMo,
	})
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusPending, tx.Status)
	assert.Equal(t, h.landlord.UserID(), tx.LandlordID)
	assert.Equal(t, h.renter.UserID(), tx.RenterID)
	assert.Equal(t, "XAF", tx.Currency)
	assert.Equal(t, "237677000002", tx.PayerPhone, "defaults to the renter's phone")
	assert.Regexp(t, `^PIOL-\d{8}-[0-9A-F]{12}$`, tx.Reference)

	t.Run("landlord cannot pay", func(t *testing.T) {
		_, err := h.svc.CreateTransaction(ctx, h.landlord, paymentsvc.CreateTransactionInput{
			PropertyID: h.property.ID, Type: transaction.TypeDeposit, Amount: 1, Method: transaction.MethodCash,
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("draft property is not payable", func(t *testing.T) {
		draft := fixtures.SeedProperty(t, h.uow, h.landlord.UserID(), property.StatusDraft)
		_, err := h.svc.CreateTransaction(ctx, h.renter, paymentsvc.CreateTransactionInput{
			PropertyID: draft.ID, Type: transaction.TypeDeposit, Amount: 1000, Method: transaction.MethodCash,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("unknown property", func(t *testing.T) {
		_, err := h.svc.CreateTransaction(ctx, h.renter, paymentsvc.CreateTransactionInput{
			PropertyID: uuid.New(), Type: transaction.TypeDeposit, Amount: 1000, Method: transaction.MethodCash,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("amount must be positive", func(t *testing.T) {
		_, err := h.svc.CreateTransaction(ctx, h.renter, paymentsvc.CreateTransactionInput{
			PropertyID: h.property.ID, Type: transaction.TypeDeposit, Amount: 0, Method: transaction.MethodCash,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestCreateTransaction_ReferencesAreUnique(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		tx, err := h.svc.CreateTransaction(ctx, h.renter, paymentsvc.CreateTransactionInput{
			PropertyID: h.property.ID,
			Type:       transaction.TypeRentPayment,
			Amount:     150000,
			Method:     transaction.MethodMTNMoMo,
		})
		require.NoError(t, err)
		require.False(t, seen[tx.Reference], "duplicate reference %s", tx.Reference)
		seen[tx.Reference] = true
	}
}

func TestGetTransactionVisibility(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	tx := h.seedTx(t, transaction.MethodMTNMoMo, 150000, transaction.StatusPending)
	stranger := fixtures.SeedUser(t, h.uow, user.RoleRenter, "")

	for name, ac := range map[string]*authz.AuthContext{"renter": h.renter, "landlord": h.landlord, "admin": h.admin} {
		got, err := h.svc.GetTransaction(ctx, ac, tx.ID)
		require.NoError(t, err, name)
		require.NotNil(t, got, name)
		assert.Equal(t, tx.ID, got.ID)
	}

	got, err := h.svc.GetTransaction(ctx, stranger, tx.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = h.svc.GetTransaction(ctx, h.renter, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)

	mine, err := h.svc.ListMyTransactions(ctx, h.landlord)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	mine, err = h.svc.ListMyTransactions(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestEscrowLifecycle_MTN(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	tx, err := h.svc.CreateTransaction(ctx, h.renter, paymentsvc.CreateTransactionInput{
		PropertyID: h.property.ID,
		Type:       transaction.TypeRentPayment,
		Amount:     150000,
		Method:     transaction.MethodMTNMoMo,
	})
	require.NoError(t, err)

	h.mtn.EXPECT().
		RequestCollection(mock.Anything, mock.MatchedBy(func(req *provider.CollectionRequest) bool {
			return req.TransactionID == tx.ID && req.Amount == 150000 &&
				req.PayerPhone == "237677000003" && req.Reference == tx.Reference
		})).
		Return(&provider.CollectionResult{ProviderReference: "R1"}, nil).
		Once()

	res, err := h.svc.ProcessPayment(ctx, h.renter, paymentsvc.ProcessPaymentInput{
		TransactionID: tx.ID,
		Method:        transaction.MethodMTNMoMo,
		Phone:         "677 00 00 03",
	})
	require.NoError(t, err)
	assert.False(t, res.RequiresRedirect)
	assert.Equal(t, "R1", res.ReferenceID)

	stored := h.reload(t, tx.ID)
	assert.Equal(t, transaction.StatusProcessing, stored.Status)
	assert.Equal(t, "R1", stored.MobileMoneyReference)
	assert.Equal(t, "237677000003", stored.PayerPhone)
	assert.Equal(t, transaction.EscrowNone, stored.EscrowStatus)

	h.mtn.EXPECT().
		CheckStatus(mock.Anything, "R1").
		Return(&provider.StatusResult{Status: provider.StatusSuccessful, FinancialTransactionID: "FT-1"}, nil).
		Once()

	polled, err := h.svc.CheckPaymentStatus(ctx, h.renter, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusCompleted, polled.Status)
	assert.Equal(t, transaction.EscrowHeld, polled.EscrowStatus)
	assert.Equal(t, "FT-1", polled.ExternalID)
	assert.True(t, polled.CallbackReceived)
	require.NotNil(t, polled.CompletedAt)

	// completed transactions are not polled again
	again, err := h.svc.CheckPaymentStatus(ctx, h.landlord, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusCompleted, again.Status)

	h.disburser.EXPECT().
		Disburse(mock.Anything, mock.MatchedBy(func(req *provider.DisbursementRequest) bool {
			return req.Amount == 142500 && req.PayeePhone == landlordPhone && req.TransactionID == tx.ID
		})).
		Return(&provider.DisbursementResult{ReferenceID: "D1", Status: provider.StatusPending}, nil).
		Once()

	release, err := h.svc.ReleaseEscrowFunds(ctx, h.landlord, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(142500), release.DisbursedAmount)
	assert.Equal(t, int64(7500), release.Commission)
	assert.Equal(t, "D1", release.ReferenceID)

	stored = h.reload(t, tx.ID)
	assert.Equal(t, transaction.StatusCompleted, stored.Status)
	assert.Equal(t, transaction.EscrowReleased, stored.EscrowStatus)
	assert.Equal(t, "D1", stored.DisbursementReference)
	require.NotNil(t, stored.Commission)
	assert.Equal(t, int64(7500), *stored.Commission)
	require.NotNil(t, stored.ReleasedAt)

	assert.Equal(t, []string{
		events.EventTypePaymentProcessing.String(),
		events.EventTypePaymentCompleted.String(),
		events.EventTypeEscrowReleased.String(),
	}, h.publishedTypes())

	_, err = h.svc.ReleaseEscrowFunds(ctx, h.landlord, tx.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "escrow cannot be released twice")
}

func TestProcessPayment_ProviderFailureMarksFailed(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	tx := h.seedTx(t, transaction.MethodMTNMoMo, 150000, transaction.StatusPending)

	providerErr := domain.NewProviderRequestError("mtnmomo.RequestCollection", 500, `{"code":"INTERNAL_PROCESSING_ERROR"}`)
	h.mtn.EXPECT().RequestCollection(mock.Anything, mock.Anything).Return(nil, providerErr).Once()

	_, err := h.svc.ProcessPayment(ctx, h.renter, paymentsvc.ProcessPaymentInput{TransactionID: tx.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderRequest)
	assert.Same(t, providerErr, err)

	stored := h.reload(t, tx.ID)
	assert.Equal(t, transaction.StatusFailed, stored.Status, "never left in processing")
	assert.Equal(t, transaction.EscrowNone, stored.EscrowStatus)
	assert.Equal(t, []string{events.EventTypePaymentFailed.String()}, h.publishedTypes())

	_, err = h.svc.ProcessPayment(ctx, h.renter, paymentsvc.ProcessPaymentInput{TransactionID: tx.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "a failed transaction is not resumed")
}

func TestProcessPayment_Validation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	t.Run("orange requires return and cancel urls", func(t *testing.T) {
		tx := h.seedTx(t, transaction.MethodOrangeMoney, 50000, transaction.StatusPending)
		_, err := h.svc.ProcessPayment(ctx, h.renter, paymentsvc.ProcessPaymentInput{
			TransactionID: tx.ID,
			ReturnURL:     "https://piol.cm/pay/ok",
		})
		var de *domain.Error
		require.ErrorAs(t, err, &de)
		assert.Equal(t, domain.KindValidation, de.Kind)
		assert.Equal(t, transaction.StatusPending, h.reload(t, tx.ID).Status)
	})

	t.Run("method must match the transaction", func(t *testing.T) {
		tx := h.seedTx(t, transaction.MethodMTNMoMo, 50000, transaction.StatusPending)
		_, err := h.svc.ProcessPayment(ctx, h.renter, paymentsvc.ProcessPaymentInput{
			TransactionID: tx.ID,
			Method:        transaction.MethodOrangeMoney,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("cash has no provider", func(t *testing.T) {
		tx := h.seedTx(t, transaction.MethodCash, 50000, transaction.StatusPending)
		_, err := h.svc.ProcessPayment(ctx, h.renter, paymentsvc.ProcessPaymentInput{TransactionID: tx.ID})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("only the renter or an admin", func(t *testing.T) {
		tx := h.seedTx(t, transaction.MethodMTNMoMo, 50000, transaction.StatusPending)
		_, err := h.svc.ProcessPayment(ctx, h.landlord, paymentsvc.ProcessPaymentInput{TransactionID: tx.ID})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		_, err = h.svc.ProcessPayment(ctx, nil, paymentsvc.ProcessPaymentInput{TransactionID: tx.ID})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		_, err := h.svc.ProcessPayment(ctx, h.renter, paymentsvc.ProcessPaymentInput{TransactionID: uuid.New()})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestProcessPayment_OrangeRedirect(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	tx := h.seedTx(t, transaction.MethodOrangeMoney, 50000, transaction.StatusPending)

	h.orange.EXPECT().
		RequestCollection(mock.Anything, mock.MatchedBy(func(req *provider.CollectionRequest) bool {
			return req.NotifyURL == "https://api.piol.cm/webhooks/orange" &&
				req.ReturnURL == "https://piol.cm/ok" && req.CancelURL == "https://piol.cm/cancel"
		})).
		Return(&provider.CollectionResult{
			ProviderReference: "order-1",
			OrderID:           "order-1",
			RequiresRedirect:  true,
			PaymentURL:        "https://webpayment.orange.cm/pay/abc",
			PayToken:          "pay-abc",
			NotifToken:        "notif-abc",
		}, nil).
		Once()

	res, err := h.svc.ProcessPayment(ctx, h.renter, paymentsvc.ProcessPaymentInput{
		TransactionID: tx.ID,
		ReturnURL:     "https://piol.cm/ok",
		CancelURL:     "https://piol.cm/cancel",
	})
	require.NoError(t, err)
	assert.True(t, res.RequiresRedirect)
	assert.Equal(t, "https://webpayment.orange.cm/pay/abc", res.PaymentURL)
	assert.Equal(t, "pay-abc", res.PayToken)
	assert.Equal(t, "order-1", res.OrderID)

	t.Run("notification with a forged token is rejected", func(t *testing.T) {
		_, err := h.svc.HandleOrangeNotification(ctx, "order-1", "forged",
			provider.StatusResult{Status: provider.StatusSuccessful})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Equal(t, transaction.StatusProcessing, h.reload(t, tx.ID).Status)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := h.svc.HandleOrangeNotification(ctx, "order-404", "notif-abc",
			provider.StatusResult{Status: provider.StatusSuccessful})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("valid notification completes the payment", func(t *testing.T) {
		got, err := h.svc.HandleOrangeNotification(ctx, "order-1", "notif-abc",
			provider.StatusResult{Status: provider.StatusSuccessful, FinancialTransactionID: "MP2601"})
		require.NoError(t, err)
		assert.Equal(t, transaction.StatusCompleted, got.Status)
		assert.Equal(t, transaction.EscrowHeld, got.EscrowStatus)
		assert.Equal(t, "MP2601", got.ExternalID)
	})
}

func TestApplyProviderStatus_ForwardOnly(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	tx := h.seedTx(t, transaction.MethodMTNMoMo, 150000, transaction.StatusProcessing)

	got, err := h.svc.ApplyProviderStatus(ctx, tx.ID, provider.StatusResult{Status: provider.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusProcessing, got.Status)
	assert.True(t, got.CallbackReceived)
	assert.Empty(t, h.bus.Published())

	for i := 0; i < 2; i++ {
		got, err = h.svc.ApplyProviderStatus(ctx, tx.ID, provider.StatusResult{Status: provider.StatusSuccessful})
		require.NoError(t, err)
		assert.Equal(t, transaction.StatusCompleted, got.Status)
		assert.Equal(t, transaction.EscrowHeld, got.EscrowStatus)
	}
	assert.Len(t, h.bus.Published(), 1, "a replayed result emits nothing")
	completedAt := got.CompletedAt

	got, err = h.svc.ApplyProviderStatus(ctx, tx.ID, provider.StatusResult{Status: provider.StatusFailed})
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusCompleted, got.Status, "completed is terminal")
	assert.Equal(t, transaction.EscrowHeld, got.EscrowStatus)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, completedAt.Equal(*got.CompletedAt))

	_, err = h.svc.ApplyProviderStatus(ctx, uuid.New(), provider.StatusResult{Status: provider.StatusSuccessful})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHandleMTNCallback(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	tx := h.seedTx(t, transaction.MethodMTNMoMo, 150000, transaction.StatusProcessing)

	h.mtn.EXPECT().
		CheckStatus(mock.Anything, tx.MobileMoneyReference).
		Return(&provider.StatusResult{Status: provider.StatusFailed, Reason: "APPROVAL_REJECTED"}, nil).
		Once()

	got, err := h.svc.HandleMTNCallback(ctx, tx.Reference)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusFailed, got.Status)
	assert.Equal(t, transaction.EscrowNone, got.EscrowStatus)

	published := h.bus.Published()
	require.Len(t, published, 1)
	failed, ok := published[0].(*events.PaymentFailed)
	require.True(t, ok)
	assert.Equal(t, "APPROVAL_REJECTED", failed.Reason)

	_, err = h.svc.HandleMTNCallback(ctx, "PIOL-20260101-000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = h.svc.HandleMTNCallback(ctx, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReleaseEscrowFunds_Gating(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	for _, status := range []transaction.Status{
		transaction.StatusPending,
		transaction.StatusProcessing,
		transaction.StatusFailed,
	} {
		t.Run(string(status), func(t *testing.T) {
			tx := h.seedTx(t, transaction.MethodMTNMoMo, 150000, status)
			_, err := h.svc.ReleaseEscrowFunds(ctx, h.landlord, tx.ID)
			assert.ErrorIs(t, err, domain.ErrInvalidState)
			stored := h.reload(t, tx.ID)
			assert.Equal(t, status, stored.Status)
			assert.Equal(t, transaction.EscrowNone, stored.EscrowStatus)
		})
	}

	t.Run("unknown transaction", func(t *testing.T) {
		_, err := h.svc.ReleaseEscrowFunds(ctx, h.landlord, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("renter cannot release", func(t *testing.T) {
		tx := h.seedTx(t, transaction.MethodMTNMoMo, 150000, transaction.StatusCompleted)
		_, err := h.svc.ReleaseEscrowFunds(ctx, h.renter, tx.ID)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("landlord without phone", func(t *testing.T) {
		landlord := fixtures.SeedUser(t, h.uow, user.RoleLandlord, "")
		prop := fixtures.SeedProperty(t, h.uow, landlord.UserID(), property.StatusVerified)
		tx := fixtures.SeedTransaction(t, h.uow, prop, h.renter.UserID(),
			transaction.MethodMTNMoMo, 150000, transaction.StatusCompleted)
		_, err := h.svc.ReleaseEscrowFunds(ctx, landlord, tx.ID)
		var de *domain.Error
		require.ErrorAs(t, err, &de)
		assert.Equal(t, domain.KindValidation, de.Kind)
		assert.Equal(t, transaction.EscrowHeld, h.reload(t, tx.ID).EscrowStatus)
	})

	t.Run("failed disbursement keeps escrow held", func(t *testing.T) {
		tx := h.seedTx(t, transaction.MethodMTNMoMo, 150000, transaction.StatusCompleted)
		h.disburser.EXPECT().
			Disburse(mock.Anything, mock.Anything).
			Return(nil, domain.NewProviderRequestError("mtnmomo.Disburse", 409, `{"code":"RESOURCE_ALREADY_EXIST"}`)).
			Once()
		_, err := h.svc.ReleaseEscrowFunds(ctx, h.admin, tx.ID)
		assert.ErrorIs(t, err, domain.ErrProviderRequest)
		assert.Equal(t, transaction.EscrowHeld, h.reload(t, tx.ID).EscrowStatus)
	})
}

func TestReleaseEscrowFunds_PaysOutOnce(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	tx := h.seedTx(t, transaction.MethodMTNMoMo, 150000, transaction.StatusCompleted)

	var concurrentErr error
	h.disburser.EXPECT().
		Disburse(mock.Anything, mock.Anything).
		Run(func(_ context.Context, _ *provider.DisbursementRequest) {
			assert.Equal(t, transaction.EscrowReleasing, h.reload(t, tx.ID).EscrowStatus)
			// a second release arriving while the payout is in flight
			_, concurrentErr = h.svc.ReleaseEscrowFunds(ctx, h.admin, tx.ID)
		}).
		Return(&provider.DisbursementResult{ReferenceID: "D1"}, nil).
		Once()

	res, err := h.svc.ReleaseEscrowFunds(ctx, h.landlord, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "D1", res.ReferenceID)
	assert.ErrorIs(t, concurrentErr, domain.ErrInvalidState)

	stored := h.reload(t, tx.ID)
	assert.Equal(t, transaction.EscrowReleased, stored.EscrowStatus)
	assert.Equal(t, "D1", stored.DisbursementReference)
}

func TestReleaseEscrowFunds_Commission(t *testing.T) {
	tests := []struct {
		amount       int64
		commission   int64
		disbursement int64
	}{
		{amount: 1500000, commission: 75000, disbursement: 1425000},
		{amount: 100001, commission: 5000, disbursement: 95001},
		{amount: 150000, commission: 7500, disbursement: 142500},
		{amount: 10, commission: 1, disbursement: 9},
	}
	for _, tt := range tests {
		t.Run(decimal.NewFromInt(tt.amount).String(), func(t *testing.T) {
			ctx := context.Background()
			h := newHarness(t)
			tx := h.seedTx(t, transaction.MethodMTNMoMo, tt.amount, transaction.StatusCompleted)
			h.disburser.EXPECT().
				Disburse(mock.Anything, mock.MatchedBy(func(req *provider.DisbursementRequest) bool {
					return req.Amount == tt.disbursement
				})).
				Return(&provider.DisbursementResult{ReferenceID: uuid.NewString()}, nil).
				Once()

			res, err := h.svc.ReleaseEscrowFunds(ctx, h.admin, tx.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.commission, res.Commission)
			assert.Equal(t, tt.disbursement, res.DisbursedAmount)
			assert.Equal(t, tt.amount, res.Commission+res.DisbursedAmount)
			assert.Equal(t, tt.amount, h.reload(t, tx.ID).Amount, "amount is never mutated")
		})
	}
}

func TestRequestRefund(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	held := h.seedTx(t, transaction.MethodMTNMoMo, 150000, transaction.StatusCompleted)

	require.NoError(t, h.svc.RequestRefund(ctx, h.renter, held.ID, "the apartment was already rented"))
	assert.Equal(t, transaction.EscrowHeld, h.reload(t, held.ID).EscrowStatus, "a request does not move escrow")
	published := h.bus.Published()
	require.Len(t, published, 1)
	req, ok := published[0].(*events.RefundRequested)
	require.True(t, ok)
	assert.Equal(t, held.ID, req.TransactionID)
	assert.Equal(t, "the apartment was already rented", req.Reason)

	assert.ErrorIs(t, h.svc.RequestRefund(ctx, h.landlord, held.ID, "reason"), domain.ErrUnauthorized)
	assert.ErrorIs(t, h.svc.RequestRefund(ctx, h.admin, held.ID, "reason"), domain.ErrUnauthorized)
	assert.ErrorIs(t, h.svc.RequestRefund(ctx, h.renter, held.ID, "  "), domain.ErrValidation)
	assert.ErrorIs(t, h.svc.RequestRefund(ctx, h.renter, uuid.New(), "reason"), domain.ErrNotFound)

	pending := h.seedTx(t, transaction.MethodMTNMoMo, 150000, transaction.StatusPending)
	assert.ErrorIs(t, h.svc.RequestRefund(ctx, h.renter, pending.ID, "reason"), domain.ErrInvalidState)
}

func TestReconcileStale(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	settled := h.seedTx(t, transaction.MethodMTNMoMo, 150000, transaction.StatusProcessing)
	waiting := h.seedTx(t, transaction.MethodMTNMoMo, 150000, transaction.StatusProcessing)
	fresh := h.seedTx(t, transaction.MethodMTNMoMo, 150000, transaction.StatusProcessing)
	for _, id := range []uuid.UUID{settled.ID, waiting.ID} {
		require.NoError(t, h.db.Model(&infrarepo.Transaction{}).Where("id = ?", id).
			UpdateColumn("updated_at", time.Now().UTC().Add(-2*time.Hour)).Error)
	}

	h.mtn.EXPECT().CheckStatus(mock.Anything, settled.MobileMoneyReference).
		Return(&provider.StatusResult{Status: provider.StatusSuccessful}, nil).Once()
	h.mtn.EXPECT().CheckStatus(mock.Anything, waiting.MobileMoneyReference).
		Return(&provider.StatusResult{Status: provider.StatusPending}, nil).Once()

	report, err := h.svc.ReconcileStale(ctx, time.Hour, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Checked)
	assert.Equal(t, 1, report.Completed)
	assert.Equal(t, 1, report.Pending)
	assert.Empty(t, report.Errors)

	assert.Equal(t, transaction.StatusCompleted, h.reload(t, settled.ID).Status)
	assert.Equal(t, transaction.StatusProcessing, h.reload(t, waiting.ID).Status, "no failure is invented")
	assert.Equal(t, transaction.StatusProcessing, h.reload(t, fresh.ID).Status)
}

func TestReconcileStale_ReportsUnreferenced(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	orphan := h.seedTx(t, transaction.MethodMTNMoMo, 150000, transaction.StatusProcessing)
	require.NoError(t, h.db.Model(&infrarepo.Transaction{}).Where("id = ?", orphan.ID).
		UpdateColumns(map[string]any{
			"mobile_money_reference": nil,
			"updated_at":             time.Now().UTC().Add(-2 * time.Hour),
		}).Error)

	report, err := h.svc.ReconcileStale(ctx, time.Hour, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Checked)
	assert.Equal(t, []string{orphan.Reference}, report.Unreferenced)
	assert.Zero(t, report.Pending)
	assert.Equal(t, transaction.StatusProcessing, h.reload(t, orphan.ID).Status)

	got, err := h.svc.CheckPaymentStatus(ctx, h.renter, orphan.ID)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusProcessing, got.Status)
}

func TestValidateAccount(t *testing.T) {
	ctx := context.Background()
	validator := mocks.NewMockAccountValidator(t)
	collection := mocks.NewMockPaymentProvider(t)
	svc := paymentsvc.NewService(config.Deps{
		Providers: provider.Registry{
			transaction.MethodMTNMoMo: struct {
				*mocks.MockPaymentProvider
				*mocks.MockAccountValidator
			}{collection, validator},
		},
		Logger: slog.Default(),
	})
	ac := authz.New(&user.User{ID: uuid.New(), Role: user.RoleLandlord})

	validator.EXPECT().ValidateAccount(mock.Anything, "237677112233").
		Return(&provider.AccountInfo{Valid: true, GivenName: "Ngo", FamilyName: "Biyong"}, nil).Once()

	info, err := svc.ValidateAccount(ctx, ac, "+237 677 11 22 33")
	require.NoError(t, err)
	assert.True(t, info.Valid)

	info, err = svc.ValidateAccount(ctx, ac, "not-a-number")
	require.NoError(t, err)
	assert.False(t, info.Valid)

	_, err = svc.ValidateAccount(ctx, nil, "237677112233")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
