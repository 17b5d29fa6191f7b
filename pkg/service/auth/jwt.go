package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dinero-app/dinero/pkg/config"
	"github.com/dinero-app/dinero/pkg/domain/user"
	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/dinero-app/dinero/pkg/repository"
	"github.com/dinero-app/dinero/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var supportedAlgorithms = map[string]*jwt.SigningMethodHMAC{
	jwt.SigningMethodHS256.Alg(): jwt.SigningMethodHS256,
	jwt.SigningMethodHS384.Alg(): jwt.SigningMethodHS384,
	jwt.SigningMethodHS512.Alg(): jwt.SigningMethodHS512,
}

// dummyHash is compared against when the login email is unknown. It uses
// the same cost as real hashes.
var dummyHash = sync.OnceValue(func() string {
	hash, err := utils.HashPassword(uuid.NewString())
	if err != nil {
		panic(fmt.Sprintf("auth: cannot create dummy hash: %v", err))
	}
	return hash
})

// KeyID derives the kid header value of a secret.
func KeyID(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:8])
}

// JWTStrategy implements Strategy for JWT-based authentication.
//
// Tokens are signed with the current secret and carry its KeyID in the kid
// header. Previous secrets stay valid for verification until removed.
type JWTStrategy struct {
	uow        repository.UnitOfWork
	method     *jwt.SigningMethodHMAC
	currentKid string
	keys       map[string][]byte
	ttl        time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

func NewJWTStrategy(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) (*JWTStrategy, error) {
	if cfg == nil || cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := supportedAlgorithms[alg]
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", alg)
	}

	keys := make(map[string][]byte, 1+len(cfg.PreviousSecrets))
	for _, secret := range cfg.PreviousSecrets {
		if secret != "" {
			keys[KeyID(secret)] = []byte(secret)
		}
	}
	currentKid := KeyID(cfg.Secret)
	keys[currentKid] = []byte(cfg.Secret)

	return &JWTStrategy{
		uow:        uow,
		method:     method,
		currentKid: currentKid,
		keys:       keys,
		ttl:        cfg.TTL(),
		logger:     logger,
		now:        time.Now,
	}, nil
}

func (s *JWTStrategy) GenerateToken(
	ctx context.Context,
	u *dto.UserRead,
) (*Token, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)
	token := jwt.NewWithClaims(s.method, jwt.RegisteredClaims{
		Subject:   u.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	token.Header["kid"] = s.currentKid
	signed, err := token.SignedString(s.keys[s.currentKid])
	if err != nil {
		return nil, err
	}
	return &Token{
		AccessToken: signed,
		TokenType:   TokenType,
		ExpiresAt:   time.Unix(expiresAt.Unix(), 0).UTC(),
	}, nil
}

// Keyfunc selects the verification key by kid. Tokens without a kid are
// checked against the current secret.
func (s *JWTStrategy) Keyfunc(token *jwt.Token) (any, error) {
	if token.Method == nil || token.Method.Alg() != s.method.Alg() {
		return nil, ErrInvalidToken
	}
	kid, _ := token.Header["kid"].(string)
	if kid == "" {
		kid = s.currentKid
	}
	key, ok := s.keys[kid]
	if !ok {
		return nil, ErrInvalidToken
	}
	return key, nil
}

func (s *JWTStrategy) VerifyToken(
	ctx context.Context,
	tokenString string,
) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		s.Keyfunc,
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return subjectOf(token)
}

func (s *JWTStrategy) Login(
	ctx context.Context,
	identity, password string,
) (*dto.UserRead, error) {
	log := s.logger.With("context", "Login")
	u, err := lookupUser(ctx, s.uow, identity, password)
	if err != nil {
		log.Warn("Login rejected", "error", err)
		return nil, err
	}
	return u, nil
}

// GetCurrentUserID reads the subject of a token already verified by the
// bearer middleware.
func (s *JWTStrategy) GetCurrentUserID(
	ctx context.Context,
) (uuid.UUID, error) {
	token, ok := ctx.Value(userContextKey).(*jwt.Token)
	if !ok || token == nil || !token.Valid {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	return subjectOf(token)
}

func subjectOf(token *jwt.Token) (uuid.UUID, error) {
	if token.Claims == nil {
		return uuid.Nil, ErrInvalidToken
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return uuid.Nil, ErrInvalidToken
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}
