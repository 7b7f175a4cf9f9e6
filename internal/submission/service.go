package submission

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizhub-api/internal/apperr"
	"github.com/saulo-duarte/quizhub-api/internal/config"
	"github.com/saulo-duarte/quizhub-api/internal/quiz"
)

var ErrQuizNotFound = apperr.New(apperr.ErrNotFound, "quiz not found")

// QuizLoader loads a quiz together with its questions in one read.
type QuizLoader interface {
	GetWithQuestions(ctx context.Context, id uint) (*quiz.Quiz, error)
}

type SubmissionService interface {
	Submit(ctx context.Context, quizID uint, answers []AnswerDTO) (*Result, error)
}

type submissionService struct {
	quizzes QuizLoader
}

func NewService(quizzes QuizLoader) SubmissionService {
	return &submissionService{quizzes: quizzes}
}

func (s *submissionService) Submit(ctx context.Context, quizID uint, answers []AnswerDTO) (*Result, error) {
	log := config.WithContext(ctx).WithField("quiz_id", quizID)

	q, err := s.quizzes.GetWithQuestions(ctx, quizID)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz for submission")
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	res, err := Score(q, answers)
	if err != nil {
		if errors.Is(err, ErrNoQuestions) {
			log.Warn("Submission for a quiz without questions")
		}
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"answers": len(answers),
		"correct": res.CorrectAnswers,
		"total":   res.TotalQuestions,
		"score":   res.Score,
	}).Info("Quiz submitted")
	return res, nil
}
