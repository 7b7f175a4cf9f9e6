package question

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizhub-api/internal/apperr"
	"github.com/saulo-duarte/quizhub-api/internal/quiz"
	"github.com/saulo-duarte/quizhub-api/internal/testutil"
	"github.com/saulo-duarte/quizhub-api/internal/user"
)

func newTestService(t *testing.T) (QuestionService, uint) {
	t.Helper()
	ctx := context.Background()
	db := testutil.NewDB(t, &user.User{}, &quiz.Category{}, &quiz.Tag{}, &quiz.Quiz{}, &quiz.Question{})

	cat := &quiz.Category{Name: "General"}
	require.NoError(t, db.Create(cat).Error)
	quizzes := quiz.NewRepository(db)
	parent := &quiz.Quiz{Title: "Parent", CategoryID: cat.ID, Difficulty: quiz.DifficultyEasy}
	require.NoError(t, quizzes.Add(ctx, parent))

	return NewService(NewRepository(db), quizzes), parent.ID
}

func ptr[T any](v T) *T { return &v }

func TestCreateQuestion(t *testing.T) {
	ctx := context.Background()
	svc, quizID := newTestService(t)

	t.Run("MultipleChoice", func(t *testing.T) {
		q, err := svc.Create(ctx, CreateQuestionDTO{
			QuizID:             quizID,
			Text:               "  Capital of France?  ",
			Choices:            []string{" Paris ", "", "Lyon", "  "},
			CorrectAnswerIndex: ptr(0),
		})
		require.NoError(t, err)
		assert.NotZero(t, q.ID)
		assert.Equal(t, quiz.TypeMultipleChoice, q.Type)
		assert.Equal(t, "Capital of France?", q.Text)
		assert.Equal(t, quiz.Choices{"Paris", "Lyon"}, q.Choices)
	})

	t.Run("BlankTextRegardlessOfOtherFields", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateQuestionDTO{QuizID: 99999, Text: "   ", Choices: []string{"a"}, CorrectAnswerIndex: ptr(7)})
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
		assert.Equal(t, "Text is required", err.Error())
	})

	t.Run("TooFewChoicesAfterTrimming", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateQuestionDTO{QuizID: quizID, Text: "Q", Choices: []string{"only", "  ", ""}})
		assert.ErrorIs(t, err, ErrTooFewChoices)
		assert.Contains(t, err.Error(), "at least two choices")
	})

	t.Run("IndexOutOfRange", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateQuestionDTO{QuizID: quizID, Text: "Q", Choices: []string{"a", "b"}, CorrectAnswerIndex: ptr(2)})
		assert.ErrorIs(t, err, apperr.ErrOutOfRange)

		_, err = svc.Create(ctx, CreateQuestionDTO{QuizID: quizID, Text: "Q", Choices: []string{"a", "b"}, CorrectAnswerIndex: ptr(-1)})
		assert.ErrorIs(t, err, apperr.ErrOutOfRange)
	})

	t.Run("MissingQuiz", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateQuestionDTO{QuizID: quizID + 100, Text: "Q", Choices: []string{"a", "b"}})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.EqualError(t, err, "quiz not found")
	})

	t.Run("ZeroQuizID", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateQuestionDTO{Text: "Q", Choices: []string{"a", "b"}})
		var verr *apperr.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "quizId", verr.Field)
	})

	t.Run("UnknownType", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateQuestionDTO{QuizID: quizID, Type: "essay", Text: "Q"})
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("MultiSelectNormalisesIndexes", func(t *testing.T) {
		q, err := svc.Create(ctx, CreateQuestionDTO{
			QuizID:               quizID,
			Type:                 "multi-select",
			Text:                 "Primes?",
			Choices:              []string{"2", "3", "4"},
			CorrectAnswerIndexes: []int{1, 0, 1},
		})
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, []int(q.CorrectAnswerIndexes))
	})

	t.Run("MultiSelectRejectsStrayIndex", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateQuestionDTO{
			QuizID:               quizID,
			Type:                 "multi-select",
			Text:                 "Primes?",
			Choices:              []string{"2", "3", "4"},
			CorrectAnswerIndex:   ptr(2),
			CorrectAnswerIndexes: []int{0, 1},
		})
		var verr *apperr.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "correctAnswerIndex", verr.Field)

		q, err := svc.Create(ctx, CreateQuestionDTO{
			QuizID:               quizID,
			Type:                 "multi-select",
			Text:                 "Primes?",
			Choices:              []string{"2", "3", "4"},
			CorrectAnswerIndex:   ptr(1),
			CorrectAnswerIndexes: []int{0, 1},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, q.CorrectAnswerIndex)
	})

	t.Run("MultiSelectNeedsAnAnswer", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateQuestionDTO{QuizID: quizID, Type: "multi-select", Text: "Q", Choices: []string{"a", "b"}})
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("TrueFalse", func(t *testing.T) {
		q, err := svc.Create(ctx, CreateQuestionDTO{QuizID: quizID, Type: "true-false", Text: "Sky is green", CorrectBoolean: ptr(false)})
		require.NoError(t, err)
		assert.Equal(t, quiz.Choices{"True", "False"}, q.Choices)
		assert.Equal(t, 1, q.CorrectAnswerIndex)
		require.NotNil(t, q.CorrectBoolean)
		assert.False(t, *q.CorrectBoolean)
	})

	t.Run("ShortAnswerNeedsText", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateQuestionDTO{QuizID: quizID, Type: "short-answer", Text: "Q"})
		assert.True(t, apperr.IsValidation(err))

		q, err := svc.Create(ctx, CreateQuestionDTO{QuizID: quizID, Type: "long-answer", Text: "Discuss", Choices: []string{"x", "y"}})
		require.NoError(t, err)
		assert.Empty(t, q.Choices)
	})
}

func TestUpdateQuestion(t *testing.T) {
	ctx := context.Background()
	svc, quizID := newTestService(t)

	q, err := svc.Create(ctx, CreateQuestionDTO{
		QuizID:             quizID,
		Text:               "Pick the last",
		Choices:            []string{"a", "b", "c", "d"},
		CorrectAnswerIndex: ptr(3),
	})
	require.NoError(t, err)

	t.Run("ShrinkingChoicesResetsIndex", func(t *testing.T) {
		updated, err := svc.Update(ctx, q.ID, UpdateQuestionDTO{Choices: ptr([]string{"a", "b"})})
		require.NoError(t, err)
		assert.True(t, updated)

		got, err := svc.Get(ctx, q.ID)
		require.NoError(t, err)
		assert.Equal(t, quiz.Choices{"a", "b"}, got.Choices)
		assert.Equal(t, 0, got.CorrectAnswerIndex)
		assert.Equal(t, "Pick the last", got.Text)
	})

	t.Run("ExplicitIndexValidatedAgainstNewChoices", func(t *testing.T) {
		_, err := svc.Update(ctx, q.ID, UpdateQuestionDTO{Choices: ptr([]string{"x", "y", "z"}), CorrectAnswerIndex: ptr(3)})
		assert.ErrorIs(t, err, apperr.ErrOutOfRange)

		updated, err := svc.Update(ctx, q.ID, UpdateQuestionDTO{Choices: ptr([]string{"x", "y", "z"}), CorrectAnswerIndex: ptr(2)})
		require.NoError(t, err)
		assert.True(t, updated)

		got, err := svc.Get(ctx, q.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.CorrectAnswerIndex)
	})

	t.Run("BlankText", func(t *testing.T) {
		_, err := svc.Update(ctx, q.ID, UpdateQuestionDTO{Text: ptr("  ")})
		require.Error(t, err)
		assert.Equal(t, "Text is required", err.Error())
	})

	t.Run("TooFewChoices", func(t *testing.T) {
		_, err := svc.Update(ctx, q.ID, UpdateQuestionDTO{Choices: ptr([]string{"solo", " "})})
		assert.ErrorIs(t, err, ErrTooFewChoices)
	})

	t.Run("MultiSelectDropsOutOfRange", func(t *testing.T) {
		ms, err := svc.Create(ctx, CreateQuestionDTO{
			QuizID:               quizID,
			Type:                 "multi-select",
			Text:                 "Vowels",
			Choices:              []string{"a", "b", "e", "i"},
			CorrectAnswerIndexes: []int{0, 2, 3},
		})
		require.NoError(t, err)

		_, err = svc.Update(ctx, ms.ID, UpdateQuestionDTO{Choices: ptr([]string{"a", "b", "e"})})
		require.NoError(t, err)

		got, err := svc.Get(ctx, ms.ID)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 2}, []int(got.CorrectAnswerIndexes))
	})

	t.Run("Missing", func(t *testing.T) {
		updated, err := svc.Update(ctx, q.ID+1000, UpdateQuestionDTO{Text: ptr("x")})
		assert.NoError(t, err)
		assert.False(t, updated)
	})
}

func TestDeleteAndList(t *testing.T) {
	ctx := context.Background()
	svc, quizID := newTestService(t)

	first, err := svc.Create(ctx, CreateQuestionDTO{QuizID: quizID, Text: "One", Choices: []string{"a", "b"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateQuestionDTO{QuizID: quizID, Text: "Two", Choices: []string{"a", "b"}})
	require.NoError(t, err)

	list, err := svc.ListByQuiz(ctx, quizID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "One", list[0].Text)

	deleted, err := svc.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, first.ID)
	assert.NoError(t, err)
	assert.False(t, deleted)

	missing, err := svc.Get(ctx, first.ID)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	empty, err := svc.ListByQuiz(ctx, quizID+100)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
