package quiz

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type QuizRepository interface {
	GetByID(ctx context.Context, id uint) (*Quiz, error)
	GetAllWithDetails(ctx context.Context) ([]*Quiz, error)
	GetWithQuestions(ctx context.Context, id uint) (*Quiz, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Add(ctx context.Context, q *Quiz) error
	Update(ctx context.Context, q *Quiz) (bool, error)
	UpdateImage(ctx context.Context, id uint, imageURL string) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	ResolveTags(ctx context.Context, names []string) ([]Tag, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Owner").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") }).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.id ASC") })
}

func (r *quizRepository) GetByID(ctx context.Context, id uint) (*Quiz, error) {
	var q Quiz
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Owner").
		Preload("Tags").
		First(&q, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *quizRepository) GetAllWithDetails(ctx context.Context) ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := withDetails(r.db.WithContext(ctx)).
		Order("quizzes.created_at DESC, quizzes.id DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

// GetWithQuestions loads the quiz and its questions inside one read
// transaction so scoring never sees a half-edited question set.
func (r *quizRepository) GetWithQuestions(ctx context.Context, id uint) (*Quiz, error) {
	var q *Quiz
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var found Quiz
		if err := withDetails(tx).First(&found, id).Error; err != nil {
			return err
		}
		q = &found
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return q, nil
}

func (r *quizRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Quiz{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *quizRepository) Add(ctx context.Context, q *Quiz) error {
	return r.db.WithContext(ctx).
		Omit("Category", "Owner", "Questions").
		Create(q).Error
}

func (r *quizRepository) Update(ctx context.Context, q *Quiz) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Quiz{}).Where("id = ?", q.ID).Updates(map[string]interface{}{
			"title":       q.Title,
			"description": q.Description,
			"image_url":   q.ImageURL,
			"difficulty":  q.Difficulty,
			"category_id": q.CategoryID,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true

		assoc := tx.Model(&Quiz{ID: q.ID}).Association("Tags")
		if len(q.Tags) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(q.Tags)
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

func (r *quizRepository) UpdateImage(ctx context.Context, id uint, imageURL string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Quiz{}).Where("id = ?", id).Update("image_url", imageURL)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *quizRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&Question{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM quiz_tags WHERE quiz_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&Quiz{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// ResolveTags finds or creates one tag per distinct, non-blank name.
func (r *quizRepository) ResolveTags(ctx context.Context, names []string) ([]Tag, error) {
	seen := make(map[string]struct{}, len(names))
	tags := make([]Tag, 0, len(names))

	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		var tag Tag
		err := r.db.WithContext(ctx).Where(Tag{Name: name}).FirstOrCreate(&tag).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a race with a concurrent insert of the same name
			err = r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id uint) (*Category, error)
	Add(ctx context.Context, c *Category) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*Category, error) {
	var c Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Add(ctx context.Context, c *Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}
