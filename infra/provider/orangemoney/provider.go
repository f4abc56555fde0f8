// Package orangemoney talks to the Orange Money Web Payment API.
package orangemoney

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/transaction"
	"github.com/piolcm/piol/pkg/provider/payment"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Provider implements payment.PaymentProvider. Orange has no disbursement path.
type Provider struct {
	baseURL     string
	merchantKey string
	lang        string
	configured  bool
	client      *http.Client
	logger      *slog.Logger
}

// New builds an Orange Money adapter whose HTTP client obtains and refreshes
// its bearer token through the client-credentials grant.
func New(cfg config.OrangeMoney, logger *slog.Logger) *Provider {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	base := &http.Client{Timeout: timeout}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	client := cc.Client(ctx)
	client.Timeout = timeout

	lang := cfg.Lang
	if lang == "" {
		lang = "fr"
	}
	return &Provider{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		merchantKey: cfg.MerchantKey,
		lang:        lang,
		configured:  cfg.ClientID != "" && cfg.ClientSecret != "" && cfg.MerchantKey != "",
		client:      client,
		logger:      logger.With("provider", "orange_money"),
	}
}

func (p *Provider) Method() transaction.Method { return transaction.MethodOrangeMoney }

type webPaymentRequest struct {
	MerchantKey string `json:"merchant_key"`
	Currency    string `json:"currency"`
	OrderID     string `json:"order_id"`
	Amount      int64  `json:"amount"`
	ReturnURL   string `json:"return_url"`
	CancelURL   string `json:"cancel_url"`
	NotifURL    string `json:"notif_url"`
	Lang        string `json:"lang"`
	Reference   string `json:"reference"`
}

type webPaymentResponse struct {
	Status     int    `json:"status"`
	Message    string `json:"message"`
	PayToken   string `json:"pay_token"`
	PaymentURL string `json:"payment_url"`
	NotifToken string `json:"notif_token"`
}

type statusResponse struct {
	Status  string `json:"status"`
	OrderID string `json:"order_id"`
	TxnID   string `json:"txn_id"`
	Txnid   string `json:"txnid"`
}

func (r statusResponse) transactionID() string {
	if r.TxnID != "" {
		return r.TxnID
	}
	return r.Txnid
}

// RequestCollection creates a web payment the payer completes on Orange's page.
func (p *Provider) RequestCollection(
	ctx context.Context,
	req *payment.CollectionRequest,
) (*payment.CollectionResult, error) {
	const op = "orangemoney.RequestCollection"
	if !p.configured {
		return nil, domain.NewConfigurationError(op, "Orange Money credentials are not configured")
	}
	if req.ReturnURL == "" || req.CancelURL == "" {
		return nil, domain.NewValidationError(op, "returnUrl", "returnUrl and cancelUrl are required for Orange Money")
	}

	orderID := uuid.NewString()
	body := webPaymentRequest{
		MerchantKey: p.merchantKey,
		Currency:    req.Currency,
		OrderID:     orderID,
		Amount:      req.Amount,
		ReturnURL:   req.ReturnURL,
		CancelURL:   req.CancelURL,
		NotifURL:    req.NotifyURL,
		Lang:        p.lang,
		Reference:   req.Reference,
	}
	raw, err := p.call(ctx, op, http.MethodPost, "/webpayment", body, http.StatusCreated, http.StatusOK)
	if err != nil {
		return nil, err
	}
	var resp webPaymentResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	p.logger.Info("Web payment created",
		"transaction_id", req.TransactionID,
		"order_id", orderID,
		"amount", req.Amount)
	return &payment.CollectionResult{
		ProviderReference: orderID,
		RequiresRedirect:  true,
		PaymentURL:        resp.PaymentURL,
		PayToken:          resp.PayToken,
		NotifToken:        resp.NotifToken,
		OrderID:           orderID,
	}, nil
}

// CheckStatus reads the state of a web payment by order id.
func (p *Provider) CheckStatus(ctx context.Context, orderID string) (*payment.StatusResult, error) {
	const op = "orangemoney.CheckStatus"
	if !p.configured {
		return nil, domain.NewConfigurationError(op, "Orange Money credentials are not configured")
	}
	raw, err := p.call(ctx, op, http.MethodGet, "/webpayment/"+url.PathEscape(orderID)+"/status", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	var resp statusResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	res := &payment.StatusResult{Status: MapStatus(resp.Status), FinancialTransactionID: resp.transactionID()}
	if res.Status == payment.StatusFailed {
		res.Reason = resp.Status
	}
	return res, nil
}

func (p *Provider) call(ctx context.Context, op, method, path string, body any, expected ...int) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		var rErr *oauth2.RetrieveError
		if errors.As(err, &rErr) && rErr.Response != nil {
			return nil, domain.NewProviderRequestError(op, rErr.Response.StatusCode, string(rErr.Body))
		}
		return nil, fmt.Errorf("%s: failed to make request: %w", op, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, _ := io.ReadAll(resp.Body)
	for _, code := range expected {
		if resp.StatusCode == code {
			return raw, nil
		}
	}
	p.logger.Warn("Orange Money request failed", "op", op, "status", resp.StatusCode)
	return nil, domain.NewProviderRequestError(op, resp.StatusCode, string(raw))
}

// MapStatus normalizes an Orange payment status. Anything other than
// SUCCESS or a still-open state counts as failed.
func MapStatus(s string) payment.Status {
	switch strings.ToUpper(s) {
	case "SUCCESS", "SUCCESSFUL":
		return payment.StatusSuccessful
	case "PENDING", "INITIATED":
		return payment.StatusPending
	default:
		return payment.StatusFailed
	}
}

var _ payment.PaymentProvider = (*Provider)(nil)
