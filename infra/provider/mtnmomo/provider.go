// Package mtnmomo talks to the MTN Mobile Money collection and disbursement APIs.
package mtnmomo

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
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/transaction"
	"github.com/piolcm/piol/pkg/provider/payment"
	"golang.org/x/sync/singleflight"
)

const (
	productCollection   = "collection"
	productDisbursement = "disbursement"

	// tokens are refreshed this long before the provider expires them
	tokenExpiryMargin = 30 * time.Second
)

type credentials struct {
	subscriptionKey string
	apiUser         string
	apiKey          string
}

func (c credentials) complete() bool {
	return c.subscriptionKey != "" && c.apiUser != "" && c.apiKey != ""
}

type cachedToken struct {
	value     string
	expiresAt time.Time
}

// Provider implements payment.PaymentProvider, payment.Disburser and payment.AccountValidator.
type Provider struct {
	baseURL           string
	targetEnvironment string
	callbackURL       string
	products          map[string]credentials
	httpClient        *http.Client
	logger            *slog.Logger

	tokenGroup singleflight.Group
	mu         sync.Mutex
	tokens     map[string]cachedToken
}

// New builds an MTN MoMo adapter. Missing credentials surface as configuration
// errors on the first call that needs them.
func New(cfg config.MTNMoMo, logger *slog.Logger) *Provider {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Provider{
		baseURL:           strings.TrimRight(cfg.BaseURL, "/"),
		targetEnvironment: cfg.TargetEnvironment,
		callbackURL:       cfg.CallbackURL,
		products: map[string]credentials{
			productCollection: {
				subscriptionKey: cfg.CollectionSubscriptionKey,
				apiUser:         cfg.CollectionAPIUser,
				apiKey:          cfg.CollectionAPIKey,
			},
			productDisbursement: {
				subscriptionKey: cfg.DisbursementSubscriptionKey,
				apiUser:         cfg.DisbursementAPIUser,
				apiKey:          cfg.DisbursementAPIKey,
			},
		},
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("provider", "mtn_momo"),
		tokens:     make(map[string]cachedToken),
	}
}

func (p *Provider) Method() transaction.Method { return transaction.MethodMTNMoMo }

type party struct {
	PartyIDType string `json:"partyIdType"`
	PartyID     string `json:"partyId"`
}

type transferRequest struct {
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	ExternalID   string `json:"externalId"`
	Payer        *party `json:"payer,omitempty"`
	Payee        *party `json:"payee,omitempty"`
	PayerMessage string `json:"payerMessage"`
	PayeeNote    string `json:"payeeNote"`
}

type statusResponse struct {
	Status                 string          `json:"status"`
	Reason                 json.RawMessage `json:"reason,omitempty"`
	FinancialTransactionID string          `json:"financialTransactionId"`
	ExternalID             string          `json:"externalId"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type basicUserInfo struct {
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// RequestCollection sends a request-to-pay prompt to the payer's phone.
func (p *Provider) RequestCollection(
	ctx context.Context,
	req *payment.CollectionRequest,
) (*payment.CollectionResult, error) {
	const op = "mtnmomo.RequestCollection"
	referenceID := uuid.NewString()
	body := transferRequest{
		Amount:       strconv.FormatInt(req.Amount, 10),
		Currency:     req.Currency,
		ExternalID:   req.Reference,
		Payer:        &party{PartyIDType: "MSISDN", PartyID: req.PayerPhone},
		PayerMessage: req.Message,
		PayeeNote:    req.Message,
	}
	if _, err := p.call(ctx, op, productCollection, http.MethodPost,
		"/collection/v1_0/requesttopay", referenceID, body, http.StatusAccepted); err != nil {
		return nil, err
	}
	p.logger.Info("Collection requested",
		"transaction_id", req.TransactionID,
		"reference_id", referenceID,
		"amount", req.Amount,
		"currency", req.Currency)
	return &payment.CollectionResult{ProviderReference: referenceID}, nil
}

// CheckStatus reads the state of a request-to-pay.
func (p *Provider) CheckStatus(ctx context.Context, referenceID string) (*payment.StatusResult, error) {
	const op = "mtnmomo.CheckStatus"
	raw, err := p.call(ctx, op, productCollection, http.MethodGet,
		"/collection/v1_0/requesttopay/"+url.PathEscape(referenceID), "", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	var resp statusResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return &payment.StatusResult{
		Status:                 mapStatus(resp.Status),
		Reason:                 reasonText(resp.Reason),
		FinancialTransactionID: resp.FinancialTransactionID,
	}, nil
}

// Disburse transfers funds to the payee's wallet.
func (p *Provider) Disburse(
	ctx context.Context,
	req *payment.DisbursementRequest,
) (*payment.DisbursementResult, error) {
	const op = "mtnmomo.Disburse"
	referenceID := uuid.NewString()
	body := transferRequest{
		Amount:       strconv.FormatInt(req.Amount, 10),
		Currency:     req.Currency,
		ExternalID:   req.Reference,
		Payee:        &party{PartyIDType: "MSISDN", PartyID: req.PayeePhone},
		PayerMessage: req.Message,
		PayeeNote:    req.Message,
	}
	if _, err := p.call(ctx, op, productDisbursement, http.MethodPost,
		"/disbursement/v1_0/transfer", referenceID, body, http.StatusAccepted); err != nil {
		return nil, err
	}
	p.logger.Info("Disbursement requested",
		"transaction_id", req.TransactionID,
		"reference_id", referenceID,
		"amount", req.Amount)
	return &payment.DisbursementResult{ReferenceID: referenceID, Status: payment.StatusPending}, nil
}

// ValidateAccount looks the wallet up. An unknown number is reported as invalid, not as an error.
func (p *Provider) ValidateAccount(ctx context.Context, phone string) (*payment.AccountInfo, error) {
	const op = "mtnmomo.ValidateAccount"
	raw, err := p.call(ctx, op, productCollection, http.MethodGet,
		"/collection/v1_0/accountholder/msisdn/"+url.PathEscape(phone)+"/basicuserinfo", "", nil, http.StatusOK)
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) && de.Kind == domain.KindProviderRequest && de.StatusCode == http.StatusNotFound {
			return &payment.AccountInfo{Valid: false}, nil
		}
		return nil, err
	}
	var info basicUserInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return &payment.AccountInfo{Valid: true, GivenName: info.GivenName, FamilyName: info.FamilyName}, nil
}

// call performs one authenticated request and returns the response body when
// the status matches expected.
func (p *Provider) call(
	ctx context.Context,
	op, product, method, path, referenceID string,
	body any,
	expected int,
) ([]byte, error) {
	creds := p.products[product]
	if !creds.complete() {
		return nil, domain.NewConfigurationError(op, "MTN MoMo "+product+" credentials are not configured")
	}
	token, err := p.token(ctx, op, product, creds)
	if err != nil {
		return nil, err
	}

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
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Ocp-Apim-Subscription-Key", creds.subscriptionKey)
	req.Header.Set("X-Target-Environment", p.targetEnvironment)
	if referenceID != "" {
		req.Header.Set("X-Reference-Id", referenceID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		if p.callbackURL != "" {
			req.Header.Set("X-Callback-Url", p.callbackURL)
		}
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to make request: %w", op, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expected {
		p.logger.Warn("MTN MoMo request failed", "op", op, "status", resp.StatusCode)
		return nil, domain.NewProviderRequestError(op, resp.StatusCode, string(raw))
	}
	return raw, nil
}

// token returns a cached access token or fetches a new one. Concurrent callers
// share a single in-flight fetch per product.
func (p *Provider) token(ctx context.Context, op, product string, creds credentials) (string, error) {
	p.mu.Lock()
	cached, ok := p.tokens[product]
	p.mu.Unlock()
	if ok && time.Now().Before(cached.expiresAt) {
		return cached.value, nil
	}

	v, err, _ := p.tokenGroup.Do(product, func() (any, error) {
		return p.fetchToken(ctx, op, product, creds)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (p *Provider) fetchToken(ctx context.Context, op, product string, creds credentials) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/"+product+"/token/", nil)
	if err != nil {
		return "", fmt.Errorf("%s: failed to create token request: %w", op, err)
	}
	req.SetBasicAuth(creds.apiUser, creds.apiKey)
	req.Header.Set("Ocp-Apim-Subscription-Key", creds.subscriptionKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: failed to request token: %w", op, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", domain.NewProviderRequestError(op, resp.StatusCode, string(raw))
	}
	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("%s: failed to decode token: %w", op, err)
	}

	ttl := time.Duration(tok.ExpiresIn)*time.Second - tokenExpiryMargin
	if ttl > 0 {
		p.mu.Lock()
		p.tokens[product] = cachedToken{value: tok.AccessToken, expiresAt: time.Now().Add(ttl)}
		p.mu.Unlock()
	}
	return tok.AccessToken, nil
}

func mapStatus(s string) payment.Status {
	switch strings.ToUpper(s) {
	case "SUCCESSFUL":
		return payment.StatusSuccessful
	case "FAILED", "REJECTED", "TIMEOUT":
		return payment.StatusFailed
	default:
		return payment.StatusPending
	}
}

// reasonText flattens the reason field, which is either a string or an object.
func reasonText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && (obj.Code != "" || obj.Message != "") {
		return strings.TrimSpace(obj.Code + " " + obj.Message)
	}
	return string(raw)
}

var (
	_ payment.PaymentProvider  = (*Provider)(nil)
	_ payment.Disburser        = (*Provider)(nil)
	_ payment.AccountValidator = (*Provider)(nil)
)
