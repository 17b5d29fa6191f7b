package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dinero-app/dinero/internal/fixtures"
	"github.com/dinero-app/dinero/pkg/app"
	"github.com/dinero-app/dinero/pkg/config"
	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/dinero-app/dinero/pkg/repository"
	accountrepo "github.com/dinero-app/dinero/pkg/repository/account"
	transactionrepo "github.com/dinero-app/dinero/pkg/repository/transaction"
	userrepo "github.com/dinero-app/dinero/pkg/repository/user"
	"github.com/dinero-app/dinero/webapi"
	"github.com/dinero-app/dinero/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestConfig returns a configuration suitable for handler tests.
func TestConfig() *config.App {
	return &config.App{
		Env: "test",
		Auth: &config.Auth{
			Strategy: "jwt",
			Jwt: &config.Jwt{
				Secret:        "test-secret",
				Algorithm:     "HS256",
				ExpireMinutes: 15,
			},
		},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
		Plaid:     &config.Plaid{Env: "mock", ClientName: "My Dinero"},
	}
}

// MockApp is the full HTTP stack over mocked repositories and a mocked
// aggregator.
type MockApp struct {
	t            *testing.T
	App          *fiber.App
	Services     *app.App
	Uow          *fixtures.MockUnitOfWork
	Users        *fixtures.MockUserRepository
	Accounts     *fixtures.MockAccountRepository
	Transactions *fixtures.MockTransactionRepository
	Aggregator   *fixtures.MockAggregator
}

// NewMockApp builds a MockApp with TestConfig.
func NewMockApp(t *testing.T) *MockApp {
	t.Helper()
	return NewMockAppWithConfig(t, TestConfig())
}

// NewMockAppWithConfig builds a MockApp. The unit of work runs callbacks
// inline and hands out the mocked repositories.
func NewMockAppWithConfig(t *testing.T, cfg *config.App) *MockApp {
	t.Helper()
	m := &MockApp{
		t:            t,
		Uow:          fixtures.NewMockUnitOfWork(t),
		Users:        fixtures.NewMockUserRepository(t),
		Accounts:     fixtures.NewMockAccountRepository(t),
		Transactions: fixtures.NewMockTransactionRepository(t),
		Aggregator:   fixtures.NewMockAggregator(t),
	}
	m.Uow.EXPECT().Do(mock.Anything, mock.Anything).RunAndReturn(
		func(ctx context.Context, fn func(repository.UnitOfWork) error) error {
			return fn(m.Uow)
		},
	).Maybe()
	m.Uow.EXPECT().GetRepository((*userrepo.Repository)(nil)).Return(m.Users, nil).Maybe()
	m.Uow.EXPECT().GetRepository((*accountrepo.Repository)(nil)).Return(m.Accounts, nil).Maybe()
	m.Uow.EXPECT().GetRepository((*transactionrepo.Repository)(nil)).Return(m.Transactions, nil).Maybe()

	services, err := app.New(&app.Deps{
		Uow:        m.Uow,
		Aggregator: m.Aggregator,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, cfg)
	require.NoError(t, err)
	m.Services = services
	m.App = webapi.SetupApp(services)
	return m
}

// Token issues a bearer token for userID.
func (m *MockApp) Token(userID uuid.UUID) string {
	m.t.Helper()
	token, err := m.Services.AuthService.GenerateToken(context.Background(), &dto.UserRead{ID: userID})
	require.NoError(m.t, err)
	return token.AccessToken
}

// MakeRequest sends a JSON request through the app.
func (m *MockApp) MakeRequest(method, path, body, token string) *http.Response {
	m.t.Helper()
	return MakeRequest(m.t, m.App, method, path, body, token)
}

// MakeRequest is a helper for making HTTP requests in tests.
func MakeRequest(t *testing.T, app *fiber.App, method, path, body, token string) *http.Response {
	t.Helper()
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
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// DecodeResponse reads a success envelope, decoding its data into out.
func DecodeResponse(t *testing.T, resp *http.Response, out any) common.Response {
	t.Helper()
	var raw struct {
		Status  int             `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	if out != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, out))
	}
	return common.Response{Status: raw.Status, Message: raw.Message, Data: out}
}

// DecodeProblem reads a problem document.
func DecodeProblem(t *testing.T, resp *http.Response) common.ProblemDetails {
	t.Helper()
	var pd common.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}
