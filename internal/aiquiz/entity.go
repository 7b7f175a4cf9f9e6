package aiquiz

import "github.com/saulo-duarte/quizhub-api/internal/quiz"

const (
	defaultCount = 3
	maxCount     = 10
)

type DraftRequest struct {
	Topic      string `json:"topic" validate:"required,max=200"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Count      int    `json:"count" validate:"gte=0"`
	Context    string `json:"context" validate:"max=2000"`
}

// DraftQuestion matches the create-question payload so a client can post
// an accepted draft straight to /api/quiz-questions.
type DraftQuestion struct {
	Type               quiz.QuestionType `json:"type"`
	Text               string            `json:"text"`
	Choices            []string          `json:"choices"`
	CorrectAnswerIndex int               `json:"correctAnswerIndex"`
	Explanation        string            `json:"explanation,omitempty"`
}

type DraftResponse struct {
	Topic      string          `json:"topic"`
	Difficulty string          `json:"difficulty"`
	Questions  []DraftQuestion `json:"questions"`
}

func clampCount(n int) int {
	if n <= 0 {
		return defaultCount
	}
	if n > maxCount {
		return maxCount
	}
	return n
}
