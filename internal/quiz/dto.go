package quiz

import "time"

type CreateQuizDTO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Difficulty  string   `json:"difficulty"`
	CategoryID  uint     `json:"categoryId"`
	Tags        []string `json:"tags"`
}

// UpdateQuizDTO carries a partial update; nil fields keep the stored value.
type UpdateQuizDTO struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	Difficulty  *string   `json:"difficulty"`
	CategoryID  *uint     `json:"categoryId"`
	Tags        *[]string `json:"tags"`
}

type CreateCategoryDTO struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=1000"`
}

// OwnerSummary is the public face of a quiz author.
type OwnerSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// QuestionView is a question as a quiz taker sees it. The answer key is
// only served by the authenticated question endpoints.
type QuestionView struct {
	ID        uint         `json:"id"`
	QuizID    uint         `json:"quizId"`
	Type      QuestionType `json:"type"`
	Text      string       `json:"text"`
	Choices   Choices      `json:"choices"`
	CreatedAt time.Time    `json:"createdAt"`
}

// QuizView shadows the owner and questions of the embedded quiz.
type QuizView struct {
	*Quiz
	Owner     *OwnerSummary  `json:"owner,omitempty"`
	Questions []QuestionView `json:"questions"`
}

func NewQuizView(q *Quiz) QuizView {
	v := QuizView{Quiz: q, Questions: make([]QuestionView, 0, len(q.Questions))}
	if q.Owner != nil {
		v.Owner = &OwnerSummary{ID: q.Owner.ID, Name: q.Owner.Name}
	}
	for _, question := range q.Questions {
		choices := question.Choices
		if choices == nil {
			choices = Choices{}
		}
		v.Questions = append(v.Questions, QuestionView{
			ID:        question.ID,
			QuizID:    question.QuizID,
			Type:      question.Type,
			Text:      question.Text,
			Choices:   choices,
			CreatedAt: question.CreatedAt,
		})
	}
	return v
}

func NewQuizViews(quizzes []*Quiz) []QuizView {
	views := make([]QuizView, 0, len(quizzes))
	for _, q := range quizzes {
		views = append(views, NewQuizView(q))
	}
	return views
}
