package container

import (
	"context"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/saulo-duarte/quizhub-api/internal/aiquiz"
	"github.com/saulo-duarte/quizhub-api/internal/auth"
	"github.com/saulo-duarte/quizhub-api/internal/config"
	"github.com/saulo-duarte/quizhub-api/internal/question"
	"github.com/saulo-duarte/quizhub-api/internal/quiz"
	"github.com/saulo-duarte/quizhub-api/internal/router"
	"github.com/saulo-duarte/quizhub-api/internal/seed"
	"github.com/saulo-duarte/quizhub-api/internal/submission"
	"github.com/saulo-duarte/quizhub-api/internal/user"
)

type Container struct {
	Config *config.Config
	DB     *gorm.DB
	Tokens *auth.TokenService

	UserContainer       *user.UserContainer
	QuizContainer       *quiz.QuizContainer
	QuestionContainer   *question.QuestionContainer
	SubmissionContainer *submission.SubmissionContainer
	AIQuizContainer     *aiquiz.AIQuizContainer
}

// Models lists every persisted entity in migration order.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&user.RefreshToken{},
		&quiz.Category{},
		&quiz.Tag{},
		&quiz.Quiz{},
		&quiz.Question{},
	}
}

// New wires the application from the environment. Startup failures are
// fatal because nothing can be served without them.
func New(ctx context.Context) *Container {
	cfg := config.MustLoad()
	config.InitLogger(cfg.LogLevel, cfg.IsProduction())

	db, err := config.Connect(ctx, cfg.Database)
	if err != nil {
		config.Log.WithError(err).Fatal("Failed to connect to the database")
	}

	c, err := Build(ctx, cfg, db)
	if err != nil {
		config.Log.WithError(err).Fatal("Failed to initialise the application")
	}
	return c
}

// Build migrates the schema, optionally seeds demo data and assembles the
// feature containers on an open database.
func Build(ctx context.Context, cfg *config.Config, db *gorm.DB) (*Container, error) {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	if cfg.SeedDemoData {
		if cfg.IsProduction() {
			config.Log.Warn("SEED_DEMO_DATA is ignored in production")
		} else if _, err := seed.Run(ctx, db); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	tokens, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, err
	}

	images := quiz.NewLocalImageStore(cfg.Uploads.Dir, cfg.Uploads.BaseURL)

	userContainer := user.NewUserContainer(db, tokens, cfg.Auth.RefreshTokenTTL())
	if cfg.Auth.AdminEmail != "" && cfg.Auth.AdminPassword != "" {
		if _, err := userContainer.Service.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
			return nil, fmt.Errorf("provision admin: %w", err)
		}
	}
	quizContainer := quiz.NewQuizContainer(db, images)
	questionContainer := question.NewQuestionContainer(db, quizContainer.Repo)
	submissionContainer := submission.NewSubmissionContainer(quizContainer.Repo)
	aiQuizContainer := aiquiz.NewAIQuizContainer(ctx, cfg.AI)

	return &Container{
		Config:              cfg,
		DB:                  db,
		Tokens:              tokens,
		UserContainer:       userContainer,
		QuizContainer:       quizContainer,
		QuestionContainer:   questionContainer,
		SubmissionContainer: submissionContainer,
		AIQuizContainer:     aiQuizContainer,
	}, nil
}

func (c *Container) Handler() http.Handler {
	return router.New(router.RouterConfig{
		Tokens:         c.Tokens,
		AllowedOrigins: c.Config.HTTP.AllowedOrigins,
		UploadDir:      c.Config.Uploads.Dir,
		UploadBaseURL:  c.Config.Uploads.BaseURL,
		HealthCheck:    c.ping,

		UserHandler:       c.UserContainer.Handler,
		QuizHandler:       c.QuizContainer.Handler,
		QuestionHandler:   c.QuestionContainer.Handler,
		SubmissionHandler: c.SubmissionContainer.Handler,
		AIQuizHandler:     c.AIQuizContainer.Handler,
	})
}

func (c *Container) ping(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (c *Container) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
