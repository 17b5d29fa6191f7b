package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/dinero-app/dinero/internal/fixtures"
	"github.com/dinero-app/dinero/pkg/config"
	"github.com/dinero-app/dinero/pkg/domain/user"
	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/dinero-app/dinero/pkg/repository"
	repouser "github.com/dinero-app/dinero/pkg/repository/user"
	authsvc "github.com/dinero-app/dinero/pkg/service/auth"
	"github.com/dinero-app/dinero/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-with-enough-entropy"

func jwtConfig(secret string, previous ...string) *config.Jwt {
	return &config.Jwt{
		Secret:          secret,
		PreviousSecrets: previous,
		Algorithm:       "HS256",
		ExpireMinutes:   15,
	}
}

func newJWTService(t *testing.T, uow *fixtures.MockUnitOfWork, cfg *config.Jwt) *authsvc.Service {
	t.Helper()
	var u repository.UnitOfWork
	if uow != nil {
		u = uow
	}
	s, err := authsvc.NewWithJWT(u, cfg, slog.Default())
	require.NoError(t, err)
	return s
}

func expectUserLookup(uow *fixtures.MockUnitOfWork, userRepo *fixtures.MockUserRepository) {
	uow.EXPECT().Do(mock.Anything, mock.Anything).RunAndReturn(
		func(ctx context.Context, fn func(repository.UnitOfWork) error) error {
			return fn(uow)
		},
	).Once()
	uow.EXPECT().GetRepository((*repouser.Repository)(nil)).Return(userRepo, nil).Once()
}

func storedUser(t *testing.T, email, password string) *dto.UserRead {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &dto.UserRead{ID: uuid.New(), Email: email, HashedPassword: string(hash), Currency: "CAD"}
}

func signRaw(t *testing.T, method jwt.SigningMethod, secret string, kid string, claims jwt.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(method, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestCheckPasswordHash(t *testing.T) {
	t.Parallel()
	hash, err := utils.HashPassword("password")
	require.NoError(t, err)
	s := authsvc.NewWithBasic(nil, slog.Default())
	assert.True(t, s.CheckPasswordHash("password", hash))
	assert.False(t, s.CheckPasswordHash("wrong", hash))
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewMockUnitOfWork(t)
	userRepo := fixtures.NewMockUserRepository(t)
	u := storedUser(t, "bob@example.com", "password")
	expectUserLookup(uow, userRepo)
	userRepo.EXPECT().GetByEmail(mock.Anything, "bob@example.com").Return(u, nil).Once()

	s := newJWTService(t, uow, jwtConfig(testSecret))
	got, err := s.Login(context.Background(), "  Bob@Example.com ", "password")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestLogin_WrongPasswordAndUnknownEmailAreIdentical(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewMockUnitOfWork(t)
	userRepo := fixtures.NewMockUserRepository(t)
	u := storedUser(t, "bob@example.com", "password")

	expectUserLookup(uow, userRepo)
	userRepo.EXPECT().GetByEmail(mock.Anything, "bob@example.com").Return(u, nil).Once()
	expectUserLookup(uow, userRepo)
	userRepo.EXPECT().GetByEmail(mock.Anything, "ghost@example.com").Return(nil, nil).Once()

	s := newJWTService(t, uow, jwtConfig(testSecret))
	_, wrongPassword := s.Login(context.Background(), "bob@example.com", "nope")
	_, unknownEmail := s.Login(context.Background(), "ghost@example.com", "password")

	assert.ErrorIs(t, wrongPassword, user.ErrUserUnauthorized)
	assert.ErrorIs(t, unknownEmail, user.ErrUserUnauthorized)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLogin_RepositoryError(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewMockUnitOfWork(t)
	userRepo := fixtures.NewMockUserRepository(t)
	expectUserLookup(uow, userRepo)
	dbErr := errors.New("db error")
	userRepo.EXPECT().GetByEmail(mock.Anything, "bob@example.com").Return(nil, dbErr).Once()

	s := newJWTService(t, uow, jwtConfig(testSecret))
	got, err := s.Login(context.Background(), "bob@example.com", "password")
	assert.ErrorIs(t, err, dbErr)
	assert.Nil(t, got)
}

func TestLogin_StrategyReturnsNoUser(t *testing.T) {
	t.Parallel()
	strategy := fixtures.NewMockAuthStrategy(t)
	strategy.EXPECT().Login(mock.Anything, "user@example.com", "password").Return(nil, nil).Once()
	s := authsvc.New(nil, strategy, slog.Default())

	got, err := s.Login(context.Background(), "user@example.com", "password")
	assert.ErrorIs(t, err, user.ErrUserUnauthorized)
	assert.Nil(t, got)
}

func TestLogin_BasicStrategy(t *testing.T) {
	t.Parallel()
	uow := fixtures.NewMockUnitOfWork(t)
	userRepo := fixtures.NewMockUserRepository(t)
	u := storedUser(t, "cli@example.com", "secret")
	expectUserLookup(uow, userRepo)
	userRepo.EXPECT().GetByEmail(mock.Anything, "cli@example.com").Return(u, nil).Once()

	s := authsvc.NewWithBasic(uow, slog.Default())
	got, err := s.Login(context.Background(), "cli@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.VerifyToken(context.Background(), "anything")
	assert.ErrorIs(t, err, authsvc.ErrInvalidToken)
}

func TestGenerateAndVerifyToken(t *testing.T) {
	t.Parallel()
	s := newJWTService(t, nil, jwtConfig(testSecret))
	u := &dto.UserRead{ID: uuid.New()}

	before := time.Now().UTC()
	token, err := s.GenerateToken(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	assert.WithinDuration(t, before.Add(15*time.Minute), token.ExpiresAt, 2*time.Second)

	got, err := s.VerifyToken(context.Background(), token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got)

	parsed, _, err := jwt.NewParser().ParseUnverified(token.AccessToken, jwt.MapClaims{})
	require.NoError(t, err)
	assert.Equal(t, authsvc.KeyID(testSecret), parsed.Header["kid"])
}

func TestGenerateToken_DefaultTTL(t *testing.T) {
	t.Parallel()
	cfg := jwtConfig(testSecret)
	cfg.ExpireMinutes = 0
	s := newJWTService(t, nil, cfg)

	token, err := s.GenerateToken(context.Background(), &dto.UserRead{ID: uuid.New()})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), token.ExpiresAt, 2*time.Second)
}

func TestVerifyToken_Rejections(t *testing.T) {
	t.Parallel()
	s := newJWTService(t, nil, jwtConfig(testSecret))
	kid := authsvc.KeyID(testSecret)
	sub := uuid.NewString()
	valid := jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}

	good := signRaw(t, jwt.SigningMethodHS256, testSecret, kid, valid)

	tests := map[string]string{
		"expired": signRaw(t, jwt.SigningMethodHS256, testSecret, kid, jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}),
		"tampered":        good[:len(good)-2] + "xx",
		"wrong algorithm": signRaw(t, jwt.SigningMethodHS512, testSecret, kid, valid),
		"unknown secret":  signRaw(t, jwt.SigningMethodHS256, "someone-else", authsvc.KeyID("someone-else"), valid),
		"missing subject": signRaw(t, jwt.SigningMethodHS256, testSecret, kid, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		}),
		"non uuid subject": signRaw(t, jwt.SigningMethodHS256, testSecret, kid, jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		}),
		"missing expiry": signRaw(t, jwt.SigningMethodHS256, testSecret, kid, jwt.RegisteredClaims{Subject: sub}),
		"garbage":        "not-a-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := s.VerifyToken(context.Background(), token)
			assert.ErrorIs(t, err, authsvc.ErrInvalidToken)
		})
	}

	got, err := s.VerifyToken(context.Background(), good)
	require.NoError(t, err)
	assert.Equal(t, sub, got.String())
}

func TestVerifyToken_SecretRotation(t *testing.T) {
	t.Parallel()
	oldService := newJWTService(t, nil, jwtConfig("old-secret"))
	u := &dto.UserRead{ID: uuid.New()}
	oldToken, err := oldService.GenerateToken(context.Background(), u)
	require.NoError(t, err)

	rotated := newJWTService(t, nil, jwtConfig("new-secret", "old-secret"))
	got, err := rotated.VerifyToken(context.Background(), oldToken.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got)

	newToken, err := rotated.GenerateToken(context.Background(), u)
	require.NoError(t, err)
	_, err = oldService.VerifyToken(context.Background(), newToken.AccessToken)
	assert.ErrorIs(t, err, authsvc.ErrInvalidToken)

	retired := newJWTService(t, nil, jwtConfig("new-secret"))
	_, err = retired.VerifyToken(context.Background(), oldToken.AccessToken)
	assert.ErrorIs(t, err, authsvc.ErrInvalidToken)
}

func TestNewWithJWT_InvalidConfig(t *testing.T) {
	t.Parallel()
	_, err := authsvc.NewWithJWT(nil, &config.Jwt{}, slog.Default())
	assert.Error(t, err)

	_, err = authsvc.NewWithJWT(nil, &config.Jwt{Secret: "s", Algorithm: "RS256"}, slog.Default())
	assert.Error(t, err)

	_, err = authsvc.NewWithJWT(nil, nil, slog.Default())
	assert.Error(t, err)
}

func TestGetCurrentUserId(t *testing.T) {
	t.Parallel()
	s := newJWTService(t, nil, jwtConfig(testSecret))
	u := &dto.UserRead{ID: uuid.New()}
	issued, err := s.GenerateToken(context.Background(), u)
	require.NoError(t, err)

	token, err := jwt.Parse(issued.AccessToken, s.Keyfunc())
	require.NoError(t, err)
	got, err := s.GetCurrentUserId(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got)

	_, err = s.GetCurrentUserId(&jwt.Token{})
	assert.Error(t, err)

	_, err = s.GetCurrentUserId(nil)
	assert.Error(t, err)
}

func TestKeyfunc_BasicStrategyRejects(t *testing.T) {
	t.Parallel()
	s := authsvc.NewWithBasic(nil, slog.Default())
	_, err := s.Keyfunc()(jwt.New(jwt.SigningMethodHS256))
	assert.ErrorIs(t, err, authsvc.ErrInvalidToken)
}
