package question

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/saulo-duarte/quizhub-api/internal/quiz"
)

type QuestionRepository interface {
	GetByID(ctx context.Context, id uint) (*quiz.Question, error)
	ListByQuiz(ctx context.Context, quizID uint) ([]quiz.Question, error)
	Add(ctx context.Context, q *quiz.Question) error
	Update(ctx context.Context, q *quiz.Question) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) GetByID(ctx context.Context, id uint) (*quiz.Question, error) {
	var q quiz.Question
	if err := r.db.WithContext(ctx).First(&q, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *questionRepository) ListByQuiz(ctx context.Context, quizID uint) ([]quiz.Question, error) {
	questions := []quiz.Question{}
	if err := r.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("id ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Add(ctx context.Context, q *quiz.Question) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *questionRepository) Update(ctx context.Context, q *quiz.Question) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&quiz.Question{}).
		Where("id = ?", q.ID).
		Select("Type", "Text", "Choices", "CorrectAnswerIndex", "CorrectAnswerIndexes", "CorrectBoolean", "CorrectText").
		Updates(q)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *questionRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&quiz.Question{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
