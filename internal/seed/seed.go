// Package seed loads the embedded demo catalogue into an empty database.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizhub-api/internal/config"
	"github.com/saulo-duarte/quizhub-api/internal/quiz"
)

//go:embed data/demo.json
var demoData []byte

type questionSeed struct {
	Type                 quiz.QuestionType `json:"type"`
	Text                 string            `json:"text"`
	Choices              []string          `json:"choices"`
	CorrectAnswerIndex   int               `json:"correctAnswerIndex"`
	CorrectAnswerIndexes []int             `json:"correctAnswerIndexes"`
	CorrectBoolean       *bool             `json:"correctBoolean"`
	CorrectText          string            `json:"correctText"`
}

type quizSeed struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Difficulty  quiz.Difficulty `json:"difficulty"`
	Tags        []string        `json:"tags"`
	Questions   []questionSeed  `json:"questions"`
}

type categorySeed struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Quizzes     []quizSeed `json:"quizzes"`
}

type catalogue struct {
	Categories []categorySeed `json:"categories"`
}

// Stats reports what a Run inserted.
type Stats struct {
	Categories int
	Quizzes    int
	Questions  int
}

// Run inserts the demo catalogue. Categories are matched by name and
// quizzes by title, so running it again inserts nothing.
func Run(ctx context.Context, db *gorm.DB) (Stats, error) {
	return run(ctx, db, demoData)
}

func run(ctx context.Context, db *gorm.DB, raw []byte) (Stats, error) {
	log := config.WithContext(ctx)

	var data catalogue
	if err := json.Unmarshal(raw, &data); err != nil {
		return Stats{}, fmt.Errorf("decode seed data: %w", err)
	}

	var stats Stats
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, cs := range data.Categories {
			cat, created, err := findOrCreateCategory(tx, cs)
			if err != nil {
				return err
			}
			if created {
				stats.Categories++
			}

			for _, qs := range cs.Quizzes {
				n, err := createQuiz(tx, cat.ID, qs)
				if err != nil {
					return fmt.Errorf("seed quiz %q: %w", qs.Title, err)
				}
				if n >= 0 {
					stats.Quizzes++
					stats.Questions += n
				}
			}
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Seeding demo data failed")
		return Stats{}, err
	}

	log.WithField("categories", stats.Categories).
		WithField("quizzes", stats.Quizzes).
		WithField("questions", stats.Questions).
		Info("Demo data seeded")
	return stats, nil
}

func findOrCreateCategory(tx *gorm.DB, cs categorySeed) (*quiz.Category, bool, error) {
	var cat quiz.Category
	err := tx.Where("name = ?", cs.Name).First(&cat).Error
	if err == nil {
		return &cat, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	cat = quiz.Category{Name: cs.Name, Description: cs.Description}
	if err := tx.Create(&cat).Error; err != nil {
		return nil, false, err
	}
	return &cat, true, nil
}

// createQuiz returns -1 when a quiz with the same title already exists.
func createQuiz(tx *gorm.DB, categoryID uint, qs quizSeed) (int, error) {
	var count int64
	if err := tx.Model(&quiz.Quiz{}).Where("title = ?", qs.Title).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return -1, nil
	}

	tags := make([]quiz.Tag, 0, len(qs.Tags))
	for _, name := range qs.Tags {
		var tag quiz.Tag
		if err := tx.Where(quiz.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return 0, err
		}
		tags = append(tags, tag)
	}

	difficulty := qs.Difficulty
	if !difficulty.IsValid() {
		difficulty = quiz.DifficultyEasy
	}
	q := quiz.Quiz{
		Title:       qs.Title,
		Description: qs.Description,
		Difficulty:  difficulty,
		CategoryID:  categoryID,
		Tags:        tags,
	}
	if err := tx.Omit("Category", "Owner", "Questions").Create(&q).Error; err != nil {
		return 0, err
	}

	for _, s := range qs.Questions {
		question := quiz.Question{
			QuizID:               q.ID,
			Type:                 s.Type,
			Text:                 s.Text,
			Choices:              quiz.Choices(s.Choices),
			CorrectAnswerIndex:   s.CorrectAnswerIndex,
			CorrectAnswerIndexes: datatypes.JSONSlice[int](s.CorrectAnswerIndexes),
			CorrectBoolean:       s.CorrectBoolean,
			CorrectText:          s.CorrectText,
		}
		if err := tx.Create(&question).Error; err != nil {
			return 0, err
		}
	}
	return len(qs.Questions), nil
}
