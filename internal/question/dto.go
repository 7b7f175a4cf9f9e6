package question

type CreateQuestionDTO struct {
	QuizID               uint     `json:"quizId"`
	Type                 string   `json:"type"`
	Text                 string   `json:"text"`
	Choices              []string `json:"choices"`
	CorrectAnswerIndex   *int     `json:"correctAnswerIndex"`
	CorrectAnswerIndexes []int    `json:"correctAnswerIndexes"`
	CorrectBoolean       *bool    `json:"correctBoolean"`
	CorrectText          string   `json:"correctText"`
}

// UpdateQuestionDTO is a partial patch; nil fields are left untouched.
type UpdateQuestionDTO struct {
	Type                 *string   `json:"type"`
	Text                 *string   `json:"text"`
	Choices              *[]string `json:"choices"`
	CorrectAnswerIndex   *int      `json:"correctAnswerIndex"`
	CorrectAnswerIndexes *[]int    `json:"correctAnswerIndexes"`
	CorrectBoolean       *bool     `json:"correctBoolean"`
	CorrectText          *string   `json:"correctText"`
}
