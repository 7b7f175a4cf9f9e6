package aiquiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizhub-api/internal/apperr"
	"github.com/saulo-duarte/quizhub-api/internal/config"
	"github.com/saulo-duarte/quizhub-api/internal/quiz"
)

type fakeProvider struct {
	drafts []DraftQuestion
	err    error
	user   string
}

func (f *fakeProvider) SendPrompt(ctx context.Context, system, user string) ([]DraftQuestion, error) {
	f.user = user
	return f.drafts, f.err
}

func draft(text string, correct int, choices ...string) DraftQuestion {
	return DraftQuestion{Text: text, Choices: choices, CorrectAnswerIndex: correct}
}

func TestGenerateQuestions(t *testing.T) {
	ctx := context.Background()

	t.Run("Unavailable", func(t *testing.T) {
		_, err := NewService(nil).GenerateQuestions(ctx, DraftRequest{Topic: "Algebra"})
		assert.ErrorIs(t, err, apperr.ErrUnavailable)
	})

	t.Run("BlankTopic", func(t *testing.T) {
		_, err := NewService(&fakeProvider{}).GenerateQuestions(ctx, DraftRequest{Topic: "  "})
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("SanitisesAndCaps", func(t *testing.T) {
		p := &fakeProvider{drafts: []DraftQuestion{
			draft("2 + 2?", 1, "A) 3", "B) 4", "C) 5", "D) 6"),
			draft("   ", 0, "a", "b"),
			draft("Broken index", 9, "a", "b"),
			draft("One choice", 0, "only", " "),
			draft("3 * 3?", 2, "6", "", "9"),
			draft("Extra", 0, "x", "y"),
		}}

		res, err := NewService(p).GenerateQuestions(ctx, DraftRequest{Topic: " Arithmetic ", Difficulty: "Medium", Count: 2})
		require.NoError(t, err)

		assert.Equal(t, "Arithmetic", res.Topic)
		assert.Equal(t, "medium", res.Difficulty)
		require.Len(t, res.Questions, 2)

		first := res.Questions[0]
		assert.Equal(t, quiz.TypeMultipleChoice, first.Type)
		assert.Equal(t, []string{"3", "4", "5", "6"}, first.Choices)
		assert.Equal(t, 1, first.CorrectAnswerIndex)

		second := res.Questions[1]
		assert.Equal(t, []string{"6", "9"}, second.Choices)
		assert.Equal(t, 1, second.CorrectAnswerIndex)

		assert.Contains(t, p.user, "Write 2 multiple-choice questions")
	})

	t.Run("ProviderError", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := NewService(&fakeProvider{err: boom}).GenerateQuestions(ctx, DraftRequest{Topic: "History"})
		assert.ErrorIs(t, err, boom)
	})
}

func TestBuildUserPromptClampsCount(t *testing.T) {
	assert.Contains(t, BuildUserPrompt(DraftRequest{Topic: "x"}), "Write 3 ")
	assert.Contains(t, BuildUserPrompt(DraftRequest{Topic: "x", Count: 50}), "Write 10 ")
	assert.Contains(t, BuildUserPrompt(DraftRequest{Topic: "x", Context: "final exam"}), "final exam")
}

func TestParseDrafts(t *testing.T) {
	raw := "```json\n[{\"text\":\"Q\",\"choices\":[\"a\",\"b\"],\"correctAnswerIndex\":1}]\n```"
	drafts, err := parseDrafts(raw)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, 1, drafts[0].CorrectAnswerIndex)

	_, err = parseDrafts("  ")
	assert.Error(t, err)
	_, err = parseDrafts("not json")
	assert.Error(t, err)
}

func TestNewGeminiProviderWithoutKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), config.AIConfig{Model: "gemini-2.0-flash"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
