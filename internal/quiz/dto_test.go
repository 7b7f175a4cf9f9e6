package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizhub-api/internal/user"
)

func boolPtr(v bool) *bool { return &v }

func TestQuizViewHidesPrivateFields(t *testing.T) {
	ownerID := uint(4)
	q := &Quiz{
		ID:         9,
		Title:      "Capitals",
		Difficulty: DifficultyEasy,
		CategoryID: 1,
		OwnerID:    &ownerID,
		Owner:      &user.User{ID: ownerID, Email: "secret.teacher@example.com", Name: "Teacher", Role: user.RoleTeacher},
		Questions: []Question{
			{ID: 1, QuizID: 9, Type: TypeMultipleChoice, Text: "France?", Choices: Choices{"Paris", "Lyon"}, CorrectAnswerIndex: 1},
			{ID: 2, QuizID: 9, Type: TypeTrueFalse, Text: "Rome is in Italy", Choices: Choices{"True", "False"}, CorrectBoolean: boolPtr(true)},
			{ID: 3, QuizID: 9, Type: TypeShortAnswer, Text: "Capital of Spain?", CorrectText: "Madrid"},
		},
	}

	raw, err := json.Marshal(NewQuizView(q))
	require.NoError(t, err)
	body := string(raw)

	assert.NotContains(t, body, "secret.teacher@example.com")
	assert.NotContains(t, body, "correctAnswerIndex")
	assert.NotContains(t, body, "correctBoolean")
	assert.NotContains(t, body, "Madrid")

	var decoded struct {
		ID        uint `json:"id"`
		Title     string
		OwnerID   uint `json:"ownerId"`
		Owner     map[string]interface{}
		Questions []struct {
			ID      uint     `json:"id"`
			Choices []string `json:"choices"`
		}
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, uint(9), decoded.ID)
	assert.Equal(t, "Capitals", decoded.Title)
	assert.Equal(t, ownerID, decoded.OwnerID)
	assert.Equal(t, map[string]interface{}{"id": float64(4), "name": "Teacher"}, decoded.Owner)
	require.Len(t, decoded.Questions, 3)
	assert.Equal(t, []string{"Paris", "Lyon"}, decoded.Questions[0].Choices)
	assert.Equal(t, []string{}, decoded.Questions[2].Choices)
}

func TestQuizViewWithoutQuestions(t *testing.T) {
	raw, err := json.Marshal(NewQuizViews([]*Quiz{{ID: 1, Title: "Empty"}}))
	require.NoError(t, err)

	assert.JSONEq(t, `[]`, mustField(t, raw, 0, "questions"))
	assert.NotContains(t, string(raw), `"owner"`)
}

func mustField(t *testing.T, raw []byte, index int, field string) string {
	t.Helper()
	var items []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &items))
	require.Greater(t, len(items), index)
	return string(items[index][field])
}
