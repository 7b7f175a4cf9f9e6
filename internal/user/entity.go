package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash []byte    `gorm:"not null" json:"-"`
	PasswordSalt []byte    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null;default:student" json:"role"`
	Name         string    `gorm:"type:varchar(120)" json:"name"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type RefreshToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"userId"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	TokenHash string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	RevokedAt *time.Time `json:"revokedAt,omitempty"`
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *RefreshToken) IsActive(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
