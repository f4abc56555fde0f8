package orangemoney

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/provider/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, tokenStatus int, api http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var tokenCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/v3/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		if tokenStatus != http.StatusOK {
			w.WriteHeader(tokenStatus)
			_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"orange-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer orange-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		api(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &tokenCalls
}

func newTestProvider(srv *httptest.Server) *Provider {
	return New(config.OrangeMoney{
		BaseURL:      srv.URL + "/api",
		TokenURL:     srv.URL + "/oauth/v3/token",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		MerchantKey:  "merchant-key",
	}, slog.New(slog.DiscardHandler))
}

func TestRequestCollection(t *testing.T) {
	var got webPaymentRequest
	srv, tokenCalls := newTestServer(t, http.StatusOK, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"status":"PENDING"}`))
			return
		}
		assert.Equal(t, "/api/webpayment", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"status":201,"message":"OK","pay_token":"pt-1",` +
			`"payment_url":"https://webpayment.orange.cm/pay/pt-1","notif_token":"nt-1"}`))
	})
	p := newTestProvider(srv)

	req := &payment.CollectionRequest{
		TransactionID: uuid.New(),
		Reference:     "PIOL-20260101-ABCDEF123456",
		Amount:        50000,
		Currency:      "XAF",
		ReturnURL:     "https://piol.cm/return",
		CancelURL:     "https://piol.cm/cancel",
		NotifyURL:     "https://api.piol.cm/webhooks/orange",
	}
	res, err := p.RequestCollection(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.RequiresRedirect)
	assert.Equal(t, "https://webpayment.orange.cm/pay/pt-1", res.PaymentURL)
	assert.Equal(t, "pt-1", res.PayToken)
	assert.Equal(t, "nt-1", res.NotifToken)
	assert.Equal(t, res.OrderID, res.ProviderReference)

	assert.Equal(t, "merchant-key", got.MerchantKey)
	assert.Equal(t, res.OrderID, got.OrderID)
	assert.Equal(t, int64(50000), got.Amount)
	assert.Equal(t, "fr", got.Lang)
	assert.Equal(t, "https://api.piol.cm/webhooks/orange", got.NotifURL)
	assert.Equal(t, "PIOL-20260101-ABCDEF123456", got.Reference)

	status, err := p.CheckStatus(context.Background(), res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusPending, status.Status)
	assert.Equal(t, int32(1), tokenCalls.Load(), "token is reused across calls")
}

func TestRequestCollectionRequiresRedirectURLs(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	p := newTestProvider(srv)

	_, err := p.RequestCollection(context.Background(), &payment.CollectionRequest{Amount: 100, ReturnURL: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMissingCredentials(t *testing.T) {
	p := New(config.OrangeMoney{BaseURL: "http://127.0.0.1:1"}, slog.New(slog.DiscardHandler))

	_, err := p.RequestCollection(context.Background(), &payment.CollectionRequest{
		Amount: 100, ReturnURL: "r", CancelURL: "c",
	})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	_, err = p.CheckStatus(context.Background(), "order")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestProviderRejectsWebPayment(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"invalid_amount"}`))
	})
	p := newTestProvider(srv)

	_, err := p.RequestCollection(context.Background(), &payment.CollectionRequest{
		Amount: 100, ReturnURL: "r", CancelURL: "c",
	})
	assert.ErrorIs(t, err, domain.ErrProviderRequest)
	assert.Contains(t, err.Error(), "invalid_amount")
}

func TestTokenFailureIsAProviderError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusUnauthorized, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no api call expected without a token")
	})
	p := newTestProvider(srv)

	_, err := p.CheckStatus(context.Background(), "order")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderRequest)
	assert.Contains(t, err.Error(), "invalid_client")
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		orange string
		txnKey string
		want   payment.Status
	}{
		{"SUCCESS", "txn_id", payment.StatusSuccessful},
		{"PENDING", "txn_id", payment.StatusPending},
		{"INITIATED", "txn_id", payment.StatusPending},
		{"EXPIRED", "txn_id", payment.StatusFailed},
		{"FAILED", "txnid", payment.StatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.orange, func(t *testing.T) {
			srv, _ := newTestServer(t, http.StatusOK, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/webpayment/order-1/status", r.URL.Path)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"status": tt.orange, "order_id": "order-1", tt.txnKey: "MP2601.0001",
				})
			})
			res, err := newTestProvider(srv).CheckStatus(context.Background(), "order-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
			assert.Equal(t, "MP2601.0001", res.FinancialTransactionID)
		})
	}
}
