package mtnmomo

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/provider/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMTN struct {
	tokenCalls atomic.Int32
	mu         sync.Mutex
	lastBody   map[string]any
	lastHeader http.Header
	handler    func(w http.ResponseWriter, r *http.Request) bool
}

func (f *fakeMTN) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost && (r.URL.Path == "/collection/token/" || r.URL.Path == "/disbursement/token/") {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "api-user" || pass != "api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.tokenCalls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-123",
			"token_type":   "access_token",
			"expires_in":   3600,
		})
		return
	}
	if r.Header.Get("Authorization") != "Bearer tok-123" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	f.mu.Lock()
	f.lastHeader = r.Header.Clone()
	f.lastBody = nil
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &f.lastBody)
	}
	f.mu.Unlock()
	if f.handler != nil && f.handler(w, r) {
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func newTestProvider(t *testing.T, fake *fakeMTN) *Provider {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return New(config.MTNMoMo{
		BaseURL:                     srv.URL,
		TargetEnvironment:           "sandbox",
		CollectionSubscriptionKey:   "sub-key",
		CollectionAPIUser:           "api-user",
		CollectionAPIKey:            "api-key",
		DisbursementSubscriptionKey: "sub-key-d",
		DisbursementAPIUser:         "api-user",
		DisbursementAPIKey:          "api-key",
		CallbackURL:                 "https://piol.cm/webhooks/mtn",
	}, slog.New(slog.DiscardHandler))
}

func TestRequestCollection(t *testing.T) {
	fake := &fakeMTN{handler: func(w http.ResponseWriter, r *http.Request) bool {
		if r.Method == http.MethodPost && r.URL.Path == "/collection/v1_0/requesttopay" {
			w.WriteHeader(http.StatusAccepted)
			return true
		}
		return false
	}}
	p := newTestProvider(t, fake)

	res, err := p.RequestCollection(context.Background(), &payment.CollectionRequest{
		TransactionID: uuid.New(),
		Reference:     "PIOL-20260101-ABCDEF123456",
		Amount:        150000,
		Currency:      "XAF",
		PayerPhone:    "237699000002",
		Message:       "Rent",
	})
	require.NoError(t, err)
	_, err = uuid.Parse(res.ProviderReference)
	require.NoError(t, err, "reference id is a client generated uuid")
	assert.False(t, res.RequiresRedirect)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, res.ProviderReference, fake.lastHeader.Get("X-Reference-Id"))
	assert.Equal(t, "sandbox", fake.lastHeader.Get("X-Target-Environment"))
	assert.Equal(t, "sub-key", fake.lastHeader.Get("Ocp-Apim-Subscription-Key"))
	assert.Equal(t, "https://piol.cm/webhooks/mtn", fake.lastHeader.Get("X-Callback-Url"))
	assert.Equal(t, "150000", fake.lastBody["amount"])
	assert.Equal(t, "PIOL-20260101-ABCDEF123456", fake.lastBody["externalId"])
	assert.Equal(t, map[string]any{"partyIdType": "MSISDN", "partyId": "237699000002"}, fake.lastBody["payer"])
}

func TestRequestCollectionProviderError(t *testing.T) {
	fake := &fakeMTN{handler: func(w http.ResponseWriter, r *http.Request) bool {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"RESOURCE_ALREADY_EXIST"}`))
		return true
	}}
	p := newTestProvider(t, fake)

	_, err := p.RequestCollection(context.Background(), &payment.CollectionRequest{Amount: 100, Currency: "XAF"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderRequest)
	assert.Contains(t, err.Error(), "RESOURCE_ALREADY_EXIST")

	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, http.StatusConflict, de.StatusCode)
}

func TestMissingCredentials(t *testing.T) {
	p := New(config.MTNMoMo{BaseURL: "http://127.0.0.1:1"}, slog.New(slog.DiscardHandler))

	_, err := p.RequestCollection(context.Background(), &payment.CollectionRequest{Amount: 100})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	_, err = p.Disburse(context.Background(), &payment.DisbursementRequest{Amount: 100})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	_, err = p.CheckStatus(context.Background(), "ref")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   payment.Status
		reason string
		ftID   string
	}{
		{"successful", `{"status":"SUCCESSFUL","financialTransactionId":"FT-9"}`, payment.StatusSuccessful, "", "FT-9"},
		{"pending", `{"status":"PENDING"}`, payment.StatusPending, "", ""},
		{"failed string reason", `{"status":"FAILED","reason":"APPROVAL_REJECTED"}`, payment.StatusFailed, "APPROVAL_REJECTED", ""},
		{"failed object reason", `{"status":"FAILED","reason":{"code":"PAYER_NOT_FOUND","message":"unknown"}}`,
			payment.StatusFailed, "PAYER_NOT_FOUND unknown", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeMTN{handler: func(w http.ResponseWriter, r *http.Request) bool {
				if r.Method == http.MethodGet && r.URL.Path == "/collection/v1_0/requesttopay/ref-1" {
					_, _ = w.Write([]byte(tt.body))
					return true
				}
				return false
			}}
			p := newTestProvider(t, fake)

			res, err := p.CheckStatus(context.Background(), "ref-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
			assert.Equal(t, tt.reason, res.Reason)
			assert.Equal(t, tt.ftID, res.FinancialTransactionID)
		})
	}
}

func TestTokenIsReused(t *testing.T) {
	fake := &fakeMTN{handler: func(w http.ResponseWriter, r *http.Request) bool {
		_, _ = w.Write([]byte(`{"status":"PENDING"}`))
		return true
	}}
	p := newTestProvider(t, fake)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.CheckStatus(context.Background(), "ref")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	_, err := p.CheckStatus(context.Background(), "ref")
	require.NoError(t, err)
	assert.LessOrEqual(t, fake.tokenCalls.Load(), int32(5))
	before := fake.tokenCalls.Load()
	_, err = p.CheckStatus(context.Background(), "ref")
	require.NoError(t, err)
	assert.Equal(t, before, fake.tokenCalls.Load(), "cached token is used until it expires")
}

func TestDisburse(t *testing.T) {
	fake := &fakeMTN{handler: func(w http.ResponseWriter, r *http.Request) bool {
		if r.Method == http.MethodPost && r.URL.Path == "/disbursement/v1_0/transfer" {
			w.WriteHeader(http.StatusAccepted)
			return true
		}
		return false
	}}
	p := newTestProvider(t, fake)

	res, err := p.Disburse(context.Background(), &payment.DisbursementRequest{
		TransactionID: uuid.New(),
		Reference:     "PIOL-20260101-ABCDEF123456",
		Amount:        142500,
		Currency:      "XAF",
		PayeePhone:    "237699000001",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ReferenceID)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, "sub-key-d", fake.lastHeader.Get("Ocp-Apim-Subscription-Key"))
	assert.Equal(t, "142500", fake.lastBody["amount"])
	assert.Equal(t, map[string]any{"partyIdType": "MSISDN", "partyId": "237699000001"}, fake.lastBody["payee"])
	assert.Nil(t, fake.lastBody["payer"])
}

func TestValidateAccount(t *testing.T) {
	fake := &fakeMTN{handler: func(w http.ResponseWriter, r *http.Request) bool {
		switch r.URL.Path {
		case "/collection/v1_0/accountholder/msisdn/237699000001/basicuserinfo":
			_, _ = w.Write([]byte(`{"given_name":"Paul","family_name":"Biya"}`))
			return true
		case "/collection/v1_0/accountholder/msisdn/237600000000/basicuserinfo":
			w.WriteHeader(http.StatusInternalServerError)
			return true
		}
		return false
	}}
	p := newTestProvider(t, fake)

	info, err := p.ValidateAccount(context.Background(), "237699000001")
	require.NoError(t, err)
	assert.True(t, info.Valid)
	assert.Equal(t, "Paul", info.GivenName)

	info, err = p.ValidateAccount(context.Background(), "237677777777")
	require.NoError(t, err, "unknown accounts are reported, not raised")
	assert.False(t, info.Valid)

	_, err = p.ValidateAccount(context.Background(), "237600000000")
	assert.ErrorIs(t, err, domain.ErrProviderRequest)
}
