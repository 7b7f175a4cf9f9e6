package quiz

import "strings"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var AllDifficulties = []Difficulty{
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
}

func (d Difficulty) IsValid() bool {
	for _, v := range AllDifficulties {
		if d == v {
			return true
		}
	}
	return false
}

type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeMultiSelect    QuestionType = "multi-select"
	TypeTrueFalse      QuestionType = "true-false"
	TypeFillInBlank    QuestionType = "fill-in-blank"
	TypeShortAnswer    QuestionType = "short-answer"
	TypeLongAnswer     QuestionType = "long-answer"
)

var AllQuestionTypes = []QuestionType{
	TypeMultipleChoice,
	TypeMultiSelect,
	TypeTrueFalse,
	TypeFillInBlank,
	TypeShortAnswer,
	TypeLongAnswer,
}

func ParseQuestionType(s string) (QuestionType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TypeMultipleChoice, true
	}
	for _, v := range AllQuestionTypes {
		if QuestionType(s) == v {
			return v, true
		}
	}
	return "", false
}

// UsesChoices reports whether answers are picked from the choice list.
func (t QuestionType) UsesChoices() bool {
	switch t {
	case TypeMultipleChoice, TypeMultiSelect, TypeTrueFalse:
		return true
	default:
		return false
	}
}

func (t QuestionType) IsText() bool {
	switch t {
	case TypeFillInBlank, TypeShortAnswer, TypeLongAnswer:
		return true
	default:
		return false
	}
}
