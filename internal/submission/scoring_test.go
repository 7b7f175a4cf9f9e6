package submission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizhub-api/internal/apperr"
	"github.com/saulo-duarte/quizhub-api/internal/quiz"
)

func intPtr(i int) *int { return &i }
func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }

func twoQuestionQuiz() *quiz.Quiz {
	return &quiz.Quiz{
		ID:         7,
		Title:      "Basics",
		Difficulty: quiz.DifficultyMedium,
		Questions: []quiz.Question{
			{ID: 20, Type: quiz.TypeMultipleChoice, Text: "Q2", Choices: quiz.Choices{"A", "B"}, CorrectAnswerIndex: 0},
			{ID: 10, Type: quiz.TypeMultipleChoice, Text: "Q1", Choices: quiz.Choices{"A", "B"}, CorrectAnswerIndex: 1},
		},
	}
}

func TestScoreHalfRight(t *testing.T) {
	res, err := Score(twoQuestionQuiz(), []AnswerDTO{
		{QuestionID: 10, SelectedChoiceIndex: intPtr(1)},
		{QuestionID: 20, SelectedChoiceIndex: intPtr(1)},
	})
	require.NoError(t, err)

	assert.Equal(t, uint(7), res.QuizID)
	assert.Equal(t, "Basics", res.QuizTitle)
	assert.Equal(t, quiz.DifficultyMedium, res.Difficulty)
	assert.Equal(t, 2, res.TotalQuestions)
	assert.Equal(t, 1, res.CorrectAnswers)
	assert.Equal(t, 50, res.Score)
	assert.Equal(t, []string{
		"Question 1: correct.",
		`Question 2: wrong. You chose option 2 ("B"); the correct answer is option 1 ("A").`,
	}, res.Feedback)
}

func TestScoreIgnoresUnknownAndMissing(t *testing.T) {
	res, err := Score(twoQuestionQuiz(), []AnswerDTO{
		{QuestionID: 999, SelectedChoiceIndex: intPtr(0)},
		{QuestionID: 10, SelectedChoiceIndex: intPtr(1)},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.CorrectAnswers)
	assert.Equal(t, 50, res.Score)
	assert.Equal(t, "Question 2: no answer given.", res.Feedback[1])
}

func TestScoreFirstAnswerWins(t *testing.T) {
	res, err := Score(twoQuestionQuiz(), []AnswerDTO{
		{QuestionID: 10, SelectedChoiceIndex: intPtr(0)},
		{QuestionID: 10, SelectedChoiceIndex: intPtr(1)},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.CorrectAnswers)
}

func TestScoreOutOfRangeSelection(t *testing.T) {
	res, err := Score(twoQuestionQuiz(), []AnswerDTO{
		{QuestionID: 10, SelectedChoiceIndex: intPtr(42)},
	})
	require.NoError(t, err)
	assert.Equal(t, `Question 1: wrong. You chose option 43 ("?"); the correct answer is option 2 ("B").`, res.Feedback[0])
}

func TestScoreNoQuestions(t *testing.T) {
	_, err := Score(&quiz.Quiz{ID: 1, Title: "Empty"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoQuestions)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "quiz has no questions", err.Error())
}

func TestScoreRounding(t *testing.T) {
	q := &quiz.Quiz{ID: 1, Questions: []quiz.Question{
		{ID: 1, Choices: quiz.Choices{"a", "b"}},
		{ID: 2, Choices: quiz.Choices{"a", "b"}},
		{ID: 3, Choices: quiz.Choices{"a", "b"}},
	}}
	res, err := Score(q, []AnswerDTO{
		{QuestionID: 1, SelectedChoiceIndex: intPtr(0)},
		{QuestionID: 2, SelectedChoiceIndex: intPtr(0)},
	})
	require.NoError(t, err)
	assert.Equal(t, 67, res.Score)
}

func TestScoreQuestionTypes(t *testing.T) {
	q := &quiz.Quiz{ID: 3, Title: "Mixed", Questions: []quiz.Question{
		{ID: 1, Type: quiz.TypeMultiSelect, Choices: quiz.Choices{"2", "3", "4"}, CorrectAnswerIndexes: []int{0, 1}},
		{ID: 2, Type: quiz.TypeTrueFalse, Choices: quiz.Choices{"True", "False"}, CorrectAnswerIndex: 1, CorrectBoolean: boolPtr(false)},
		{ID: 3, Type: quiz.TypeFillInBlank, CorrectText: "Paris"},
		{ID: 4, Type: quiz.TypeShortAnswer, CorrectText: "Go"},
		{ID: 5, Type: quiz.TypeLongAnswer},
	}}

	res, err := Score(q, []AnswerDTO{
		{QuestionID: 1, SelectedChoiceIndexes: []int{1, 0, 1}},
		{QuestionID: 2, BooleanAnswer: boolPtr(true)},
		{QuestionID: 3, TextAnswer: strPtr("  paris ")},
		{QuestionID: 4, TextAnswer: strPtr("Rust")},
		{QuestionID: 5, TextAnswer: strPtr("An essay")},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.CorrectAnswers)
	assert.Equal(t, 40, res.Score)
	assert.Equal(t, []string{
		"Question 1: correct.",
		"Question 2: wrong. You answered True; the correct answer is False.",
		"Question 3: correct.",
		`Question 4: wrong. You answered "Rust"; the correct answer is "Go".`,
		"Question 5: requires manual review.",
	}, res.Feedback)
}

type stubLoader struct {
	quiz *quiz.Quiz
	err  error
}

func (s stubLoader) GetWithQuestions(ctx context.Context, id uint) (*quiz.Quiz, error) {
	return s.quiz, s.err
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		_, err := NewService(stubLoader{}).Submit(ctx, 5, nil)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.EqualError(t, err, "quiz not found")
	})

	t.Run("Scores", func(t *testing.T) {
		res, err := NewService(stubLoader{quiz: twoQuestionQuiz()}).Submit(ctx, 7, []AnswerDTO{
			{QuestionID: 10, SelectedChoiceIndex: intPtr(1)},
			{QuestionID: 20, SelectedChoiceIndex: intPtr(0)},
		})
		require.NoError(t, err)
		assert.Equal(t, 100, res.Score)
	})
}
