package submission

import "github.com/saulo-duarte/quizhub-api/internal/quiz"

// AnswerDTO is one submitted answer. Only the field matching the
// question's type is read.
type AnswerDTO struct {
	QuestionID            uint    `json:"questionId"`
	SelectedChoiceIndex   *int    `json:"selectedChoiceIndex,omitempty"`
	SelectedChoiceIndexes []int   `json:"selectedChoiceIndexes,omitempty"`
	BooleanAnswer         *bool   `json:"booleanAnswer,omitempty"`
	TextAnswer            *string `json:"textAnswer,omitempty"`
}

type SubmitDTO struct {
	Answers []AnswerDTO `json:"answers"`
}

type Result struct {
	QuizID         uint            `json:"quizId"`
	QuizTitle      string          `json:"quizTitle"`
	Difficulty     quiz.Difficulty `json:"difficulty"`
	TotalQuestions int             `json:"totalQuestions"`
	CorrectAnswers int             `json:"correctAnswers"`
	Score          int             `json:"score"`
	Feedback       []string        `json:"feedback"`
}
