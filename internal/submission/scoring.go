package submission

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/saulo-duarte/quizhub-api/internal/apperr"
	"github.com/saulo-duarte/quizhub-api/internal/quiz"
)

var ErrNoQuestions = apperr.Invalid("quizId", "quiz has no questions")

// Score grades answers against the quiz. Questions are numbered in id
// order, the first answer per question wins and answers for questions
// outside the quiz are ignored.
func Score(q *quiz.Quiz, answers []AnswerDTO) (*Result, error) {
	if len(q.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	questions := make([]quiz.Question, len(q.Questions))
	copy(questions, q.Questions)
	sort.SliceStable(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })

	byQuestion := make(map[uint]AnswerDTO, len(answers))
	for _, a := range answers {
		if _, seen := byQuestion[a.QuestionID]; !seen {
			byQuestion[a.QuestionID] = a
		}
	}

	res := &Result{
		QuizID:         q.ID,
		QuizTitle:      q.Title,
		Difficulty:     q.Difficulty,
		TotalQuestions: len(questions),
		Feedback:       make([]string, 0, len(questions)),
	}

	for i, question := range questions {
		n := i + 1
		answer, ok := byQuestion[question.ID]
		if !ok {
			res.Feedback = append(res.Feedback, fmt.Sprintf("Question %d: no answer given.", n))
			continue
		}

		correct, line := grade(n, question, answer)
		if correct {
			res.CorrectAnswers++
		}
		res.Feedback = append(res.Feedback, line)
	}

	res.Score = int(math.Round(float64(res.CorrectAnswers) / float64(res.TotalQuestions) * 100))
	return res, nil
}

func noAnswer(n int) (bool, string) {
	return false, fmt.Sprintf("Question %d: no answer given.", n)
}

func correctLine(n int) (bool, string) {
	return true, fmt.Sprintf("Question %d: correct.", n)
}

func grade(n int, q quiz.Question, a AnswerDTO) (bool, string) {
	switch q.Type {
	case quiz.TypeMultiSelect:
		return gradeMultiSelect(n, q, a)
	case quiz.TypeTrueFalse:
		return gradeTrueFalse(n, q, a)
	case quiz.TypeFillInBlank, quiz.TypeShortAnswer:
		return gradeText(n, q, a)
	case quiz.TypeLongAnswer:
		if a.TextAnswer == nil || strings.TrimSpace(*a.TextAnswer) == "" {
			return noAnswer(n)
		}
		return false, fmt.Sprintf("Question %d: requires manual review.", n)
	default:
		return gradeMultipleChoice(n, q, a)
	}
}

func choiceText(q quiz.Question, i int) string {
	if text, ok := q.Choices.At(i); ok {
		return text
	}
	return "?"
}

func gradeMultipleChoice(n int, q quiz.Question, a AnswerDTO) (bool, string) {
	if a.SelectedChoiceIndex == nil {
		return noAnswer(n)
	}
	selected := *a.SelectedChoiceIndex
	if selected == q.CorrectAnswerIndex {
		return correctLine(n)
	}
	return false, fmt.Sprintf("Question %d: wrong. You chose option %d (%q); the correct answer is option %d (%q).",
		n, selected+1, choiceText(q, selected), q.CorrectAnswerIndex+1, choiceText(q, q.CorrectAnswerIndex))
}

func gradeMultiSelect(n int, q quiz.Question, a AnswerDTO) (bool, string) {
	if a.SelectedChoiceIndexes == nil {
		return noAnswer(n)
	}
	selected := uniqueSorted(a.SelectedChoiceIndexes)
	expected := uniqueSorted(q.CorrectAnswerIndexes)

	if equalInts(selected, expected) {
		return correctLine(n)
	}
	return false, fmt.Sprintf("Question %d: wrong. You chose %s; the correct answers are %s.",
		n, describeChoices(q, selected), describeChoices(q, expected))
}

func gradeTrueFalse(n int, q quiz.Question, a AnswerDTO) (bool, string) {
	var given bool
	switch {
	case a.BooleanAnswer != nil:
		given = *a.BooleanAnswer
	case a.SelectedChoiceIndex != nil && (*a.SelectedChoiceIndex == 0 || *a.SelectedChoiceIndex == 1):
		given = *a.SelectedChoiceIndex == 0
	default:
		return noAnswer(n)
	}

	expected := q.CorrectAnswerIndex == 0
	if q.CorrectBoolean != nil {
		expected = *q.CorrectBoolean
	}
	if given == expected {
		return correctLine(n)
	}
	return false, fmt.Sprintf("Question %d: wrong. You answered %s; the correct answer is %s.",
		n, boolText(given), boolText(expected))
}

func gradeText(n int, q quiz.Question, a AnswerDTO) (bool, string) {
	if a.TextAnswer == nil || strings.TrimSpace(*a.TextAnswer) == "" {
		return noAnswer(n)
	}
	given := strings.TrimSpace(*a.TextAnswer)
	if strings.EqualFold(given, strings.TrimSpace(q.CorrectText)) {
		return correctLine(n)
	}
	return false, fmt.Sprintf("Question %d: wrong. You answered %q; the correct answer is %q.", n, given, q.CorrectText)
}

func boolText(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func describeChoices(q quiz.Question, indexes []int) string {
	if len(indexes) == 0 {
		return "nothing"
	}
	parts := make([]string, len(indexes))
	for i, idx := range indexes {
		parts[i] = fmt.Sprintf("option %d (%q)", idx+1, choiceText(q, idx))
	}
	return strings.Join(parts, ", ")
}

func uniqueSorted(in []int) []int {
	seen := make(map[int]struct{}, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
