// Package testutils runs the full HTTP stack in process for handler tests:
// an SQLite database, the in-memory event bus and mock mobile money providers.
package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	infra_eventbus "github.com/piolcm/piol/infra/eventbus"
	"github.com/piolcm/piol/infra/provider/mockpayment"
	"github.com/piolcm/piol/internal/fixtures"
	"github.com/piolcm/piol/pkg/app"
	"github.com/piolcm/piol/pkg/authz"
	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/domain/transaction"
	"github.com/piolcm/piol/pkg/provider/payment"
	"github.com/piolcm/piol/webapi"
	"github.com/piolcm/piol/webapi/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const TestPassword = "password123"

// E2ETestSuite serves the API against a fresh database for every test.
type E2ETestSuite struct {
	suite.Suite
	Env    *fixtures.Env
	App    *app.App
	Fiber  *fiber.App
	Cfg    *config.App
	Bus    *infra_eventbus.MemoryEventBus
	MTN    *mockpayment.MockPaymentProvider
	Orange *mockpayment.MockPaymentProvider
}

func testConfig() *config.App {
	return &config.App{
		Env:       "test",
		Auth:      &config.Auth{Strategy: "jwt", Jwt: &config.Jwt{Secret: "test-secret", Expiry: time.Hour}},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
		Escrow: &config.Escrow{
			CommissionRate:     decimal.RequireFromString("0.05"),
			DisbursementMethod: string(transaction.MethodMTNMoMo),
		},
		CallbackBaseURL: "http://localhost:3000",
	}
}

// SetupTest builds the app. Mock collections settle on the first status check.
func (s *E2ETestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Env = fixtures.NewEnv(s.T())
	s.Cfg = testConfig()
	s.Bus = infra_eventbus.NewWithMemory(logger)
	s.MTN = mockpayment.NewMockPaymentProvider(transaction.MethodMTNMoMo, 0)
	s.Orange = mockpayment.NewMockPaymentProvider(transaction.MethodOrangeMoney, 0)
	s.App = app.New(config.Deps{
		Uow:       s.Env.Uow,
		Providers: payment.NewRegistry(s.MTN, s.Orange),
		EventBus:  s.Bus,
		Logger:    logger,
		Config:    s.Cfg,
	}, s.Cfg)
	s.Fiber = webapi.SetupApp(s.App)
}

// MakeRequest sends a request through the Fiber app. body is sent as JSON when not empty.
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Fiber.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// Decode reads a success envelope, unmarshalling its data into out when out is not nil.
func (s *E2ETestSuite) Decode(resp *http.Response, out any) common.Response {
	defer resp.Body.Close() //nolint:errcheck
	var envelope struct {
		common.Response
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	if out != nil && len(envelope.Data) > 0 {
		s.Require().NoError(json.Unmarshal(envelope.Data, out))
	}
	return envelope.Response
}

// Problem reads a problem details body.
func (s *E2ETestSuite) Problem(resp *http.Response) common.ProblemDetails {
	defer resp.Body.Close() //nolint:errcheck
	var pd common.ProblemDetails
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}

// Token issues a token for a seeded user.
func (s *E2ETestSuite) Token(ac *authz.AuthContext) string {
	token, err := s.App.AuthService.GenerateToken(context.Background(), ac.User)
	s.Require().NoError(err)
	return token
}

// CreateTestUser registers a user with role through POST /users and returns its email.
func (s *E2ETestSuite) CreateTestUser(role string) string {
	email := fmt.Sprintf("test_%s@piol.test", uuid.NewString()[:8])
	body := fmt.Sprintf(`{"name":"Test User","email":"%s","password":"%s","role":"%s"}`, email, TestPassword, role)
	resp := s.MakeRequest(fiber.MethodPost, "/users", body, "")
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()
	return email
}

// LoginUser logs in through POST /auth/login and returns the token.
func (s *E2ETestSuite) LoginUser(email string) string {
	body := fmt.Sprintf(`{"email":"%s","password":"%s"}`, email, TestPassword)
	resp := s.MakeRequest(fiber.MethodPost, "/auth/login", body, "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var data struct {
		Token string `json:"token"`
	}
	s.Decode(resp, &data)
	s.Require().NotEmpty(data.Token)
	return data.Token
}
