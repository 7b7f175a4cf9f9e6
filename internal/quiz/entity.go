package quiz

import (
	"time"

	"gorm.io/datatypes"

	"github.com/saulo-duarte/quizhub-api/internal/user"
)

type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(120);not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(60);uniqueIndex;not null" json:"name"`
}

type Quiz struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	ImageURL    string     `gorm:"type:text" json:"imageUrl"`
	Difficulty  Difficulty `gorm:"type:varchar(10);not null;default:easy" json:"difficulty"`
	CategoryID  uint       `gorm:"not null;index" json:"categoryId"`
	OwnerID     *uint      `gorm:"index" json:"ownerId"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`

	Category  *Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"`
	Owner     *user.User `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"-"`
	Questions []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Tags      []Tag      `gorm:"many2many:quiz_tags" json:"tags,omitempty"`
}

type Question struct {
	ID                   uint                     `gorm:"primaryKey" json:"id"`
	QuizID               uint                     `gorm:"not null;index" json:"quizId"`
	Type                 QuestionType             `gorm:"type:varchar(20);not null;default:multiple-choice" json:"type"`
	Text                 string                   `gorm:"type:text;not null" json:"text"`
	Choices              Choices                  `json:"choices"`
	CorrectAnswerIndex   int                      `gorm:"not null;default:0" json:"correctAnswerIndex"`
	CorrectAnswerIndexes datatypes.JSONSlice[int] `json:"correctAnswerIndexes,omitempty"`
	CorrectBoolean       *bool                    `json:"correctBoolean,omitempty"`
	CorrectText          string                   `gorm:"type:text" json:"correctText,omitempty"`
	CreatedAt            time.Time                `gorm:"autoCreateTime" json:"createdAt"`
}
