// Package mockpayment simulates a mobile-money provider for local development and tests.
package mockpayment

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/transaction"
	"github.com/piolcm/piol/pkg/provider/payment"
)

// FailingPhoneSuffix makes every collection from a payer phone ending with it fail.
const FailingPhoneSuffix = "0000"

type mockPayment struct {
	status    payment.Status
	createdAt time.Time
}

// MockPaymentProvider settles every collection after settleAfter, except those
// from numbers ending in FailingPhoneSuffix. It is NOT for production use.
type MockPaymentProvider struct {
	method      transaction.Method
	settleAfter time.Duration

	mu            sync.Mutex
	payments      map[string]*mockPayment
	disbursements []payment.DisbursementRequest
}

// NewMockPaymentProvider creates a mock standing in for the given method.
func NewMockPaymentProvider(method transaction.Method, settleAfter time.Duration) *MockPaymentProvider {
	return &MockPaymentProvider{
		method:      method,
		settleAfter: settleAfter,
		payments:    make(map[string]*mockPayment),
	}
}

func (m *MockPaymentProvider) Method() transaction.Method { return m.method }

// RequestCollection records a pending payment. Orange stand-ins behave like a redirect flow.
func (m *MockPaymentProvider) RequestCollection(
	ctx context.Context,
	req *payment.CollectionRequest,
) (*payment.CollectionResult, error) {
	if m.method == transaction.MethodOrangeMoney && (req.ReturnURL == "" || req.CancelURL == "") {
		return nil, domain.NewValidationError(
			"mockpayment.RequestCollection", "returnUrl", "returnUrl and cancelUrl are required")
	}
	ref := uuid.NewString()
	status := payment.StatusPending
	if strings.HasSuffix(req.PayerPhone, FailingPhoneSuffix) {
		status = payment.StatusFailed
	}
	m.mu.Lock()
	m.payments[ref] = &mockPayment{status: status, createdAt: time.Now()}
	m.mu.Unlock()

	res := &payment.CollectionResult{ProviderReference: ref}
	if m.method == transaction.MethodOrangeMoney {
		res.RequiresRedirect = true
		res.OrderID = ref
		res.PayToken = "mock-pay-" + ref[:8]
		res.NotifToken = "mock-notif-" + ref[:8]
		res.PaymentURL = "https://mock.piol.local/pay/" + ref
	}
	return res, nil
}

// CheckStatus reports SUCCESSFUL once the settle delay has elapsed.
func (m *MockPaymentProvider) CheckStatus(ctx context.Context, ref string) (*payment.StatusResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[ref]
	if !ok {
		return nil, domain.NewProviderRequestError("mockpayment.CheckStatus", 404, `{"message":"unknown reference"}`)
	}
	if p.status == payment.StatusPending && time.Since(p.createdAt) >= m.settleAfter {
		p.status = payment.StatusSuccessful
	}
	res := &payment.StatusResult{Status: p.status}
	switch p.status {
	case payment.StatusSuccessful:
		res.FinancialTransactionID = "MOCK-" + ref[:8]
	case payment.StatusFailed:
		res.Reason = "PAYER_LIMIT_REACHED"
	}
	return res, nil
}

// Disburse always succeeds and records the request.
func (m *MockPaymentProvider) Disburse(
	ctx context.Context,
	req *payment.DisbursementRequest,
) (*payment.DisbursementResult, error) {
	m.mu.Lock()
	m.disbursements = append(m.disbursements, *req)
	m.mu.Unlock()
	return &payment.DisbursementResult{ReferenceID: uuid.NewString(), Status: payment.StatusSuccessful}, nil
}

// ValidateAccount accepts any number not ending in FailingPhoneSuffix.
func (m *MockPaymentProvider) ValidateAccount(ctx context.Context, phone string) (*payment.AccountInfo, error) {
	if strings.HasSuffix(phone, FailingPhoneSuffix) {
		return &payment.AccountInfo{Valid: false}, nil
	}
	return &payment.AccountInfo{Valid: true, GivenName: "Mock", FamilyName: "Account"}, nil
}

// Disbursements returns the disbursements made so far.
func (m *MockPaymentProvider) Disbursements() []payment.DisbursementRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]payment.DisbursementRequest, len(m.disbursements))
	copy(out, m.disbursements)
	return out
}

var (
	_ payment.PaymentProvider  = (*MockPaymentProvider)(nil)
	_ payment.Disburser        = (*MockPaymentProvider)(nil)
	_ payment.AccountValidator = (*MockPaymentProvider)(nil)
)
