package quiz

import "gorm.io/gorm"

type QuizContainer struct {
	Handler *Handler
	Service QuizService
	Repo    QuizRepository
}

func NewQuizContainer(db *gorm.DB, images ImageStore) *QuizContainer {
	repo := NewRepository(db)
	categories := NewCategoryRepository(db)
	service := NewService(repo, categories, images)
	handler := NewHandler(service)

	return &QuizContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
