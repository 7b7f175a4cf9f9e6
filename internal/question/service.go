package question

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizhub-api/internal/apperr"
	"github.com/saulo-duarte/quizhub-api/internal/config"
	"github.com/saulo-duarte/quizhub-api/internal/quiz"
)

var (
	ErrTextRequired  = apperr.Invalid("text", "Text is required")
	ErrTooFewChoices = apperr.Invalid("choices", "Question requires at least two choices")
	ErrQuizNotFound  = apperr.New(apperr.ErrNotFound, "quiz not found")
)

// QuizLookup is the slice of the quiz repository the question service needs.
type QuizLookup interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type QuestionService interface {
	Create(ctx context.Context, dto CreateQuestionDTO) (*quiz.Question, error)
	Get(ctx context.Context, id uint) (*quiz.Question, error)
	ListByQuiz(ctx context.Context, quizID uint) ([]quiz.Question, error)
	Update(ctx context.Context, id uint, dto UpdateQuestionDTO) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type questionService struct {
	repo    QuestionRepository
	quizzes QuizLookup
}

func NewService(repo QuestionRepository, quizzes QuizLookup) QuestionService {
	return &questionService{repo: repo, quizzes: quizzes}
}

func (s *questionService) Create(ctx context.Context, dto CreateQuestionDTO) (*quiz.Question, error) {
	log := config.WithContext(ctx)

	if dto.QuizID == 0 {
		return nil, apperr.Invalid("quizId", "quizId must be a positive integer")
	}
	text := strings.TrimSpace(dto.Text)
	if text == "" {
		return nil, ErrTextRequired
	}
	qType, ok := quiz.ParseQuestionType(dto.Type)
	if !ok {
		return nil, invalidType()
	}

	q := &quiz.Question{
		QuizID:               dto.QuizID,
		Type:                 qType,
		Text:                 text,
		Choices:              quiz.Choices(dto.Choices),
		CorrectAnswerIndexes: dto.CorrectAnswerIndexes,
		CorrectBoolean:       dto.CorrectBoolean,
		CorrectText:          dto.CorrectText,
	}
	if dto.CorrectAnswerIndex != nil {
		q.CorrectAnswerIndex = *dto.CorrectAnswerIndex
	}
	if err := applyAnswerRules(q, dto.CorrectAnswerIndex != nil, true); err != nil {
		return nil, err
	}

	exists, err := s.quizzes.Exists(ctx, dto.QuizID)
	if err != nil {
		log.WithError(err).Error("Failed to check parent quiz")
		return nil, err
	}
	if !exists {
		log.WithField("quiz_id", dto.QuizID).Warn("Question for a quiz that does not exist")
		return nil, ErrQuizNotFound
	}

	if err := s.repo.Add(ctx, q); err != nil {
		log.WithError(err).Error("Failed to create question")
		return nil, err
	}

	log.WithFields(logrus.Fields{"question_id": q.ID, "quiz_id": q.QuizID, "type": q.Type}).Info("Question created")
	return q, nil
}

func (s *questionService) Get(ctx context.Context, id uint) (*quiz.Question, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to get question")
		return nil, err
	}
	return q, nil
}

func (s *questionService) ListByQuiz(ctx context.Context, quizID uint) ([]quiz.Question, error) {
	questions, err := s.repo.ListByQuiz(ctx, quizID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list questions")
		return nil, err
	}
	return questions, nil
}

func (s *questionService) Update(ctx context.Context, id uint, dto UpdateQuestionDTO) (bool, error) {
	log := config.WithContext(ctx).WithField("question_id", id)

	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to load question for update")
		return false, err
	}
	if q == nil {
		return false, nil
	}

	if dto.Text != nil {
		text := strings.TrimSpace(*dto.Text)
		if text == "" {
			return false, ErrTextRequired
		}
		q.Text = text
	}
	if dto.Type != nil {
		qType, ok := quiz.ParseQuestionType(*dto.Type)
		if !ok {
			return false, invalidType()
		}
		q.Type = qType
	}
	if dto.Choices != nil {
		q.Choices = quiz.Choices(*dto.Choices)
	}
	if dto.CorrectAnswerIndex != nil {
		q.CorrectAnswerIndex = *dto.CorrectAnswerIndex
		if dto.CorrectBoolean == nil {
			// re-derive the boolean from the index for true-false
			q.CorrectBoolean = nil
		}
	}
	if dto.CorrectAnswerIndexes != nil {
		q.CorrectAnswerIndexes = *dto.CorrectAnswerIndexes
	}
	if dto.CorrectBoolean != nil {
		v := *dto.CorrectBoolean
		q.CorrectBoolean = &v
	}
	if dto.CorrectText != nil {
		q.CorrectText = *dto.CorrectText
	}

	if err := applyAnswerRules(q, dto.CorrectAnswerIndex != nil, dto.CorrectAnswerIndexes != nil); err != nil {
		return false, err
	}

	updated, err := s.repo.Update(ctx, q)
	if err != nil {
		log.WithError(err).Error("Failed to update question")
		return false, err
	}
	if updated {
		log.Info("Question updated")
	}
	return updated, nil
}

func (s *questionService) Delete(ctx context.Context, id uint) (bool, error) {
	log := config.WithContext(ctx).WithField("question_id", id)

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to delete question")
		return false, err
	}
	if deleted {
		log.Info("Question deleted")
	}
	return deleted, nil
}

func invalidType() error {
	names := make([]string, len(quiz.AllQuestionTypes))
	for i, t := range quiz.AllQuestionTypes {
		names[i] = string(t)
	}
	return apperr.Invalid("type", "type must be one of: "+strings.Join(names, ", "))
}

func normalizeChoices(raw quiz.Choices) quiz.Choices {
	out := make(quiz.Choices, 0, len(raw))
	for _, c := range raw {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func indexOutOfRange(field string, n int) error {
	return apperr.OutOfRange(field, fmt.Sprintf("%s must be between 0 and %d", field, n-1))
}

// applyAnswerRules normalises the answer key for the question type.
// Indexes that were not supplied explicitly are repaired instead of
// rejected, so shrinking the choice list never leaves a dangling index.
func applyAnswerRules(q *quiz.Question, explicitIndex, explicitIndexes bool) error {
	switch {
	case q.Type == quiz.TypeTrueFalse:
		q.Choices = quiz.Choices{"True", "False"}
		q.CorrectAnswerIndexes = nil
		q.CorrectText = ""
		if q.CorrectBoolean == nil {
			if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex > 1 {
				if explicitIndex {
					return indexOutOfRange("correctAnswerIndex", 2)
				}
				q.CorrectAnswerIndex = 0
			}
			v := q.CorrectAnswerIndex == 0
			q.CorrectBoolean = &v
		}
		if *q.CorrectBoolean {
			q.CorrectAnswerIndex = 0
		} else {
			q.CorrectAnswerIndex = 1
		}
		return nil

	case q.Type.IsText():
		q.Choices = quiz.Choices{}
		q.CorrectAnswerIndex = 0
		q.CorrectAnswerIndexes = nil
		q.CorrectBoolean = nil
		q.CorrectText = strings.TrimSpace(q.CorrectText)
		if q.CorrectText == "" && q.Type != quiz.TypeLongAnswer {
			return apperr.Invalid("correctText", fmt.Sprintf("correctText is required for %s questions", q.Type))
		}
		return nil
	}

	q.Choices = normalizeChoices(q.Choices)
	if len(q.Choices) < 2 {
		return ErrTooFewChoices
	}
	q.CorrectBoolean = nil
	q.CorrectText = ""

	if q.Type == quiz.TypeMultiSelect {
		indexes, err := normalizeIndexes(q.CorrectAnswerIndexes, len(q.Choices), explicitIndexes)
		if err != nil {
			return err
		}
		if explicitIndex && !containsIndex(indexes, q.CorrectAnswerIndex) {
			return apperr.Invalid("correctAnswerIndex", "correctAnswerIndex must be one of correctAnswerIndexes for multi-select questions")
		}
		q.CorrectAnswerIndexes = indexes
		q.CorrectAnswerIndex = indexes[0]
		return nil
	}

	q.CorrectAnswerIndexes = nil
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Choices) {
		if explicitIndex {
			return indexOutOfRange("correctAnswerIndex", len(q.Choices))
		}
		q.CorrectAnswerIndex = 0
	}
	return nil
}

func containsIndex(indexes []int, i int) bool {
	for _, v := range indexes {
		if v == i {
			return true
		}
	}
	return false
}

func normalizeIndexes(raw []int, n int, strict bool) ([]int, error) {
	seen := make(map[int]struct{}, len(raw))
	out := make([]int, 0, len(raw))
	for _, i := range raw {
		if i < 0 || i >= n {
			if strict {
				return nil, indexOutOfRange("correctAnswerIndexes", n)
			}
			continue
		}
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}

	if len(out) == 0 {
		if strict {
			return nil, apperr.Invalid("correctAnswerIndexes", "multi-select questions need at least one correct choice")
		}
		out = append(out, 0)
	}
	sort.Ints(out)
	return out, nil
}
