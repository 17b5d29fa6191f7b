package testutils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dinero-app/dinero/infra"
	"github.com/dinero-app/dinero/infra/provider/mockaggregator"
	infra_repository "github.com/dinero-app/dinero/infra/repository"
	"github.com/dinero-app/dinero/pkg/app"
	"github.com/dinero-app/dinero/pkg/config"
	"github.com/dinero-app/dinero/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestPassword is the password of users created by CreateTestUser.
const TestPassword = "password123"

// E2ETestSuite runs the full stack against a real Postgres started with
// Testcontainers and the in-process fake aggregator.
type E2ETestSuite struct {
	suite.Suite
	pgContainer *tcpostgres.PostgresContainer
	Aggregator  *mockaggregator.MockAggregator
	Services    *app.App
	App         *fiber.App
}

// TestUser is a user registered through the API.
type TestUser struct {
	ID    uuid.UUID
	Email string
}

func (s *E2ETestSuite) startPostgresContainer(ctx context.Context) (*tcpostgres.PostgresContainer, error) {
	return tcpostgres.Run(
		ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second),
		),
	)
}

// SetupSuite starts Postgres, applies the migrations and builds the app.
func (s *E2ETestSuite) SetupSuite() {
	ctx := context.Background()

	pg, err := s.startPostgresContainer(ctx)
	s.Require().NoError(err)
	s.pgContainer = pg

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	cfg := TestConfig()
	cfg.DB = &config.DB{Url: dsn, AutoMigrate: true}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Require().NoError(infra.RunMigrations(db, logger))

	s.Aggregator = mockaggregator.New()
	s.Services, err = app.New(&app.Deps{
		Uow:        infra_repository.NewUoW(db),
		Aggregator: s.Aggregator,
		Logger:     logger,
	}, cfg)
	s.Require().NoError(err)
	s.App = webapi.SetupApp(s.Services)
}

// TearDownSuite stops the database container.
func (s *E2ETestSuite) TearDownSuite() {
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(context.Background())
	}
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	return MakeRequest(s.T(), s.App, method, path, body, token)
}

// CreateTestUser registers a user with a unique email.
func (s *E2ETestSuite) CreateTestUser() *TestUser {
	email := fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8])
	body := fmt.Sprintf(`{"email":"%s","password":"%s"}`, email, TestPassword)
	resp := s.MakeRequest("POST", "/users/register", body, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var created struct {
		ID uuid.UUID `json:"id"`
	}
	DecodeResponse(s.T(), resp, &created)
	s.Require().NotEqual(uuid.Nil, created.ID)
	return &TestUser{ID: created.ID, Email: email}
}

// LoginUser logs in through the API and returns the bearer token.
func (s *E2ETestSuite) LoginUser(u *TestUser) string {
	body := fmt.Sprintf(`{"username":"%s","password":"%s"}`, u.Email, TestPassword)
	resp := s.MakeRequest("POST", "/auth/login", body, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var token struct {
		AccessToken string `json:"access_token"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&token))
	s.Require().NotEmpty(token.AccessToken)
	return token.AccessToken
}

// CreateTestAccount creates a manual account for u and returns its id.
func (s *E2ETestSuite) CreateTestAccount(u *TestUser) uuid.UUID {
	resp := s.MakeRequest("POST", "/accounts?user_id="+u.ID.String(),
		`{"institution_name":"Test Bank","account_type":"Checking","balance":100.0}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var created struct {
		ID uuid.UUID `json:"id"`
	}
	DecodeResponse(s.T(), resp, &created)
	return created.ID
}

// DecodeData decodes the data member of a success envelope into a generic map.
func (s *E2ETestSuite) DecodeData(resp *http.Response) map[string]any {
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}
