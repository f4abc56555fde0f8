package mockpayment

import (
	"context"
	"testing"
	"time"

	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/transaction"
	"github.com/piolcm/piol/pkg/provider/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockCollectionSettles(t *testing.T) {
	ctx := context.Background()
	m := NewMockPaymentProvider(transaction.MethodMTNMoMo, 0)

	res, err := m.RequestCollection(ctx, &payment.CollectionRequest{Amount: 1000, PayerPhone: "237699000002"})
	require.NoError(t, err)
	assert.False(t, res.RequiresRedirect)

	status, err := m.CheckStatus(ctx, res.ProviderReference)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusSuccessful, status.Status)
	assert.NotEmpty(t, status.FinancialTransactionID)
}

func TestMockCollectionStaysPendingUntilDelay(t *testing.T) {
	ctx := context.Background()
	m := NewMockPaymentProvider(transaction.MethodMTNMoMo, time.Hour)

	res, err := m.RequestCollection(ctx, &payment.CollectionRequest{Amount: 1000, PayerPhone: "237699000002"})
	require.NoError(t, err)
	status, err := m.CheckStatus(ctx, res.ProviderReference)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusPending, status.Status)
}

func TestMockFailingPhone(t *testing.T) {
	ctx := context.Background()
	m := NewMockPaymentProvider(transaction.MethodMTNMoMo, 0)

	res, err := m.RequestCollection(ctx, &payment.CollectionRequest{Amount: 1000, PayerPhone: "237690000000"})
	require.NoError(t, err)
	status, err := m.CheckStatus(ctx, res.ProviderReference)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusFailed, status.Status)

	info, err := m.ValidateAccount(ctx, "237690000000")
	require.NoError(t, err)
	assert.False(t, info.Valid)

	_, err = m.CheckStatus(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrProviderRequest)
}

func TestMockOrangeRedirect(t *testing.T) {
	ctx := context.Background()
	m := NewMockPaymentProvider(transaction.MethodOrangeMoney, 0)

	_, err := m.RequestCollection(ctx, &payment.CollectionRequest{Amount: 1000})
	assert.ErrorIs(t, err, domain.ErrValidation)

	res, err := m.RequestCollection(ctx, &payment.CollectionRequest{Amount: 1000, ReturnURL: "r", CancelURL: "c"})
	require.NoError(t, err)
	assert.True(t, res.RequiresRedirect)
	assert.Equal(t, res.ProviderReference, res.OrderID)
	assert.NotEmpty(t, res.PaymentURL)
	assert.NotEmpty(t, res.NotifToken)
}

func TestMockDisburse(t *testing.T) {
	m := NewMockPaymentProvider(transaction.MethodMTNMoMo, 0)
	_, err := m.Disburse(context.Background(), &payment.DisbursementRequest{Amount: 142500, PayeePhone: "237699000001"})
	require.NoError(t, err)
	require.Len(t, m.Disbursements(), 1)
	assert.Equal(t, int64(142500), m.Disbursements()[0].Amount)
}
