package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/saulo-duarte/quizhub-api/internal/config"
)

const (
	minSecretLength   = 32
	refreshTokenBytes = 64
)

var (
	ErrSecretTooShort = errors.New("JWT_SECRET must be at least 32 bytes (256 bits)")
	ErrInvalidTTL     = errors.New("access token lifetime must be positive")
)

type UserClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// NumericUserID returns the numeric user id carried by the token.
func (c *UserClaims) NumericUserID() (uint, error) {
	id, err := strconv.ParseUint(c.UserID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id claim: %w", err)
	}
	return uint(id), nil
}

type TokenService struct {
	secret    []byte
	issuer    string
	audience  string
	accessTTL time.Duration
	now       func() time.Time
}

type Option func(*TokenService)

func WithClock(now func() time.Time) Option {
	return func(s *TokenService) {
		s.now = now
	}
}

func NewTokenService(cfg config.AuthConfig, opts ...Option) (*TokenService, error) {
	if len(cfg.Secret) < minSecretLength {
		return nil, ErrSecretTooShort
	}
	if cfg.AccessTokenMinutes <= 0 {
		return nil, ErrInvalidTTL
	}

	s := &TokenService{
		secret:    []byte(cfg.Secret),
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		accessTTL: cfg.AccessTokenTTL(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MustNewTokenService panics on a misconfigured secret so the process never
// starts serving with unusable token issuance.
func MustNewTokenService(cfg config.AuthConfig, opts ...Option) *TokenService {
	s, err := NewTokenService(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *TokenService) IssueAccessToken(userID uint, name, role string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.accessTTL)
	sub := strconv.FormatUint(uint64(userID), 10)

	claims := UserClaims{
		UserID: sub,
		Name:   name,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *TokenService) ValidateJWT(tokenStr string) (*UserClaims, error) {
	claims := &UserClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(0),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// IssueRefreshToken returns an opaque random token. It carries no claims.
func (s *TokenService) IssueRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
