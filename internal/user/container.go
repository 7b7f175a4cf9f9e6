package user

import (
	"time"

	"gorm.io/gorm"
)

type UserContainer struct {
	Handler *Handler
	Service UserService
	Repo    UserRepository
}

func NewUserContainer(db *gorm.DB, issuer TokenIssuer, refreshTTL time.Duration) *UserContainer {
	repo := NewRepository(db)
	tokens := NewRefreshTokenRepository(db)
	service := NewService(repo, tokens, issuer, refreshTTL)
	handler := NewHandler(service)

	return &UserContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
