package user

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizhub-api/internal/apperr"
	"github.com/saulo-duarte/quizhub-api/internal/auth"
	"github.com/saulo-duarte/quizhub-api/internal/config"
)

var (
	ErrEmailTaken          = apperr.New(apperr.ErrConflict, "email already registered")
	ErrInvalidCredentials  = apperr.New(apperr.ErrUnauthorized, "invalid credentials")
	ErrInvalidRefreshToken = apperr.New(apperr.ErrUnauthorized, "invalid refresh token")
)

type TokenIssuer interface {
	IssueAccessToken(userID uint, name, role string) (string, time.Time, error)
	IssueRefreshToken() (string, error)
}

type UserService interface {
	Register(ctx context.Context, dto RegisterDTO) (*User, error)
	EnsureAdmin(ctx context.Context, email, password string) (*User, error)
	Login(ctx context.Context, dto LoginDTO) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetByID(ctx context.Context, id uint) (*User, error)
}

type userService struct {
	users      UserRepository
	tokens     RefreshTokenRepository
	issuer     TokenIssuer
	refreshTTL time.Duration
	now        func() time.Time

	// Compared against on unknown emails so both failure paths cost a derivation.
	dummyHash []byte
	dummySalt []byte
}

func NewService(users UserRepository, tokens RefreshTokenRepository, issuer TokenIssuer, refreshTTL time.Duration) UserService {
	hash, salt, _ := auth.HashPassword("quizhub-timing-equaliser")
	return &userService{
		users:      users,
		tokens:     tokens,
		issuer:     issuer,
		refreshTTL: refreshTTL,
		now:        func() time.Time { return time.Now().UTC() },
		dummyHash:  hash,
		dummySalt:  salt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *userService) Register(ctx context.Context, dto RegisterDTO) (*User, error) {
	log := config.WithContext(ctx)
	email := normalizeEmail(dto.Email)

	if email == "" {
		return nil, apperr.Invalid("email", "email is required")
	}
	role := dto.Role
	if role == "" {
		role = RoleStudent
	}
	if !role.IsSelfAssignable() {
		return nil, apperr.Invalid("role", "role must be one of: student, teacher")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		log.WithError(err).Error("Failed to look up user by email")
		return nil, err
	}
	if existing != nil {
		log.WithField("email", email).Warn("Registration with an email already in use")
		return nil, ErrEmailTaken
	}

	hash, salt, err := auth.HashPassword(dto.Password)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return nil, err
	}

	name := strings.TrimSpace(dto.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	u := &User{
		Email:        email,
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         role,
		Name:         name,
	}
	if err := s.users.Add(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	log.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("User registered")
	return u, nil
}

// EnsureAdmin creates the configured administrator, or promotes the account
// when the email is already registered. The stored password is left alone
// for existing accounts.
func (s *userService) EnsureAdmin(ctx context.Context, email, password string) (*User, error) {
	log := config.WithContext(ctx)
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Invalid("email", "admin email and password are required")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Role != RoleAdmin {
			if _, err := s.users.UpdateRole(ctx, existing.ID, RoleAdmin); err != nil {
				log.WithError(err).Error("Failed to promote admin account")
				return nil, err
			}
			existing.Role = RoleAdmin
			log.WithField("user_id", existing.ID).Info("Existing account promoted to admin")
		}
		return existing, nil
	}

	hash, salt, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &User{
		Email:        email,
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         RoleAdmin,
		Name:         strings.SplitN(email, "@", 2)[0],
	}
	if err := s.users.Add(ctx, u); err != nil {
		log.WithError(err).Error("Failed to create admin account")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("Admin account created")
	return u, nil
}

func (s *userService) Login(ctx context.Context, dto LoginDTO) (*TokenPair, error) {
	log := config.WithContext(ctx)

	u, err := s.users.GetByEmail(ctx, normalizeEmail(dto.Email))
	if err != nil {
		log.WithError(err).Error("Failed to look up user for login")
		return nil, err
	}
	if u == nil {
		auth.VerifyPassword(dto.Password, s.dummyHash, s.dummySalt)
		log.Warn("Login attempt failed")
		return nil, ErrInvalidCredentials
	}
	if !auth.VerifyPassword(dto.Password, u.PasswordHash, u.PasswordSalt) {
		log.WithField("user_id", u.ID).Warn("Login attempt failed")
		return nil, ErrInvalidCredentials
	}

	refresh, expiresAt, err := s.newRefreshToken()
	if err != nil {
		log.WithError(err).Error("Failed to issue refresh token")
		return nil, err
	}
	if err := s.tokens.Add(ctx, &RefreshToken{
		UserID:    u.ID,
		TokenHash: hashRefreshToken(refresh),
		ExpiresAt: expiresAt,
	}); err != nil {
		log.WithError(err).Error("Failed to store refresh token")
		return nil, err
	}

	pair, err := s.buildPair(u, refresh, expiresAt)
	if err != nil {
		log.WithError(err).Error("Failed to issue access token")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User logged in")
	return pair, nil
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	log := config.WithContext(ctx)

	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}

	next, expiresAt, err := s.newRefreshToken()
	if err != nil {
		log.WithError(err).Error("Failed to issue refresh token")
		return nil, err
	}

	stored := &RefreshToken{
		TokenHash: hashRefreshToken(next),
		ExpiresAt: expiresAt,
	}
	if err := s.tokens.Rotate(ctx, hashRefreshToken(refreshToken), stored, s.now()); err != nil {
		if errors.Is(err, ErrTokenNotActive) {
			log.Warn("Refresh with unknown, expired or revoked token")
			return nil, ErrInvalidRefreshToken
		}
		log.WithError(err).Error("Failed to rotate refresh token")
		return nil, err
	}

	u, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to load user for refresh")
		return nil, err
	}
	if u == nil {
		log.WithField("user_id", stored.UserID).Warn("Refresh token owner no longer exists")
		return nil, ErrInvalidRefreshToken
	}

	pair, err := s.buildPair(u, next, expiresAt)
	if err != nil {
		log.WithError(err).Error("Failed to issue access token")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("Tokens refreshed")
	return pair, nil
}

func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	log := config.WithContext(ctx)

	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil
	}

	revoked, err := s.tokens.Revoke(ctx, hashRefreshToken(refreshToken), s.now())
	if err != nil {
		log.WithError(err).Error("Failed to revoke refresh token")
		return err
	}
	if revoked {
		log.Info("Refresh token revoked")
	}
	return nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to get user")
		return nil, err
	}
	return u, nil
}

func (s *userService) newRefreshToken() (string, time.Time, error) {
	token, err := s.issuer.IssueRefreshToken()
	if err != nil {
		return "", time.Time{}, err
	}
	return token, s.now().Add(s.refreshTTL), nil
}

func (s *userService) buildPair(u *User, refresh string, refreshExpiresAt time.Time) (*TokenPair, error) {
	access, accessExpiresAt, err := s.issuer.IssueAccessToken(u.ID, u.Name, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		TokenType:             "Bearer",
		AccessToken:           access,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshToken:          refresh,
		RefreshTokenExpiresAt: refreshExpiresAt,
		User:                  u,
	}, nil
}
