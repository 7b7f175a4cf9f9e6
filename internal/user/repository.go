package user

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrTokenNotActive = errors.New("refresh token is not active")

type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Add(ctx context.Context, u *User) error
	UpdateRole(ctx context.Context, id uint, role Role) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Add(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) UpdateRole(ctx context.Context, id uint, role Role) (bool, error) {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

type RefreshTokenRepository interface {
	Add(ctx context.Context, t *RefreshToken) error
	FindActiveByHash(ctx context.Context, hash string, now time.Time) (*RefreshToken, error)
	Rotate(ctx context.Context, oldHash string, next *RefreshToken, now time.Time) error
	Revoke(ctx context.Context, hash string, now time.Time) (bool, error)
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Add(ctx context.Context, t *RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *refreshTokenRepository) FindActiveByHash(ctx context.Context, hash string, now time.Time) (*RefreshToken, error) {
	return findActive(r.db.WithContext(ctx), hash, now)
}

// Rotate revokes the active token identified by oldHash and stores next for
// the same user. next.UserID is filled from the revoked token.
func (r *refreshTokenRepository) Rotate(ctx context.Context, oldHash string, next *RefreshToken, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findActive(tx, oldHash, now)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrTokenNotActive
		}

		res := tx.Model(&RefreshToken{}).
			Where("id = ? AND revoked_at IS NULL", current.ID).
			Update("revoked_at", now)
		if res.Error != nil {
			return res.Error
		}
		// A concurrent rotation already consumed this token.
		if res.RowsAffected == 0 {
			return ErrTokenNotActive
		}

		next.UserID = current.UserID
		return tx.Create(next).Error
	})
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, hash string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&RefreshToken{}).
		Where("token_hash = ? AND revoked_at IS NULL", hash).
		Update("revoked_at", now)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func findActive(db *gorm.DB, hash string, now time.Time) (*RefreshToken, error) {
	var t RefreshToken
	err := db.Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", hash, now).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
