package quiz

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizhub-api/internal/apperr"
	"github.com/saulo-duarte/quizhub-api/internal/config"
)

type QuizService interface {
	Create(ctx context.Context, dto CreateQuizDTO, ownerID *uint) (*Quiz, error)
	Get(ctx context.Context, id uint) (*Quiz, error)
	GetWithQuestions(ctx context.Context, id uint) (*Quiz, error)
	List(ctx context.Context) ([]*Quiz, error)
	Update(ctx context.Context, id uint, dto UpdateQuizDTO) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	UploadImage(ctx context.Context, id uint, r io.Reader) (*Quiz, error)
	RemoveImage(ctx context.Context, id uint) (bool, error)

	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, dto CreateCategoryDTO) (*Category, error)
}

type quizService struct {
	repo       QuizRepository
	categories CategoryRepository
	images     ImageStore
}

func NewService(repo QuizRepository, categories CategoryRepository, images ImageStore) QuizService {
	return &quizService{
		repo:       repo,
		categories: categories,
		images:     images,
	}
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperr.Invalid("title", "Title is required")
	}
	return title, nil
}

func normalizeDifficulty(raw string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(raw)))
	if d == "" {
		return DifficultyEasy, nil
	}
	if !d.IsValid() {
		return "", apperr.Invalid("difficulty", "difficulty must be one of: easy, medium, hard")
	}
	return d, nil
}

func (s *quizService) checkCategory(ctx context.Context, id uint) error {
	if id == 0 {
		return apperr.Invalid("categoryId", "categoryId is required")
	}
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return apperr.Invalid("categoryId", fmt.Sprintf("category %d does not exist", id))
	}
	return nil
}

func (s *quizService) Create(ctx context.Context, dto CreateQuizDTO, ownerID *uint) (*Quiz, error) {
	log := config.WithContext(ctx)

	title, err := normalizeTitle(dto.Title)
	if err != nil {
		return nil, err
	}
	difficulty, err := normalizeDifficulty(dto.Difficulty)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, dto.CategoryID); err != nil {
		if !apperr.IsValidation(err) {
			log.WithError(err).Error("Failed to look up category")
		}
		return nil, err
	}

	tags, err := s.repo.ResolveTags(ctx, dto.Tags)
	if err != nil {
		log.WithError(err).Error("Failed to resolve tags")
		return nil, err
	}

	q := &Quiz{
		Title:       title,
		Description: strings.TrimSpace(dto.Description),
		ImageURL:    strings.TrimSpace(dto.ImageURL),
		Difficulty:  difficulty,
		CategoryID:  dto.CategoryID,
		OwnerID:     ownerID,
		Tags:        tags,
	}
	if err := s.repo.Add(ctx, q); err != nil {
		log.WithError(err).Error("Failed to create quiz")
		return nil, err
	}

	log.WithFields(logrus.Fields{"quiz_id": q.ID, "category_id": q.CategoryID}).Info("Quiz created")
	return q, nil
}

func (s *quizService) Get(ctx context.Context, id uint) (*Quiz, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to get quiz")
		return nil, err
	}
	return q, nil
}

func (s *quizService) GetWithQuestions(ctx context.Context, id uint) (*Quiz, error) {
	q, err := s.repo.GetWithQuestions(ctx, id)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to get quiz with questions")
		return nil, err
	}
	return q, nil
}

func (s *quizService) List(ctx context.Context) ([]*Quiz, error) {
	quizzes, err := s.repo.GetAllWithDetails(ctx)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list quizzes")
		return nil, err
	}
	return quizzes, nil
}

func (s *quizService) Update(ctx context.Context, id uint, dto UpdateQuizDTO) (bool, error) {
	log := config.WithContext(ctx).WithField("quiz_id", id)

	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz for update")
		return false, err
	}
	if q == nil {
		return false, nil
	}

	if dto.Title != nil {
		if q.Title, err = normalizeTitle(*dto.Title); err != nil {
			return false, err
		}
	}
	if dto.Description != nil {
		q.Description = strings.TrimSpace(*dto.Description)
	}
	if dto.ImageURL != nil {
		q.ImageURL = strings.TrimSpace(*dto.ImageURL)
	}
	if dto.Difficulty != nil {
		if q.Difficulty, err = normalizeDifficulty(*dto.Difficulty); err != nil {
			return false, err
		}
	}
	if dto.CategoryID != nil {
		if err := s.checkCategory(ctx, *dto.CategoryID); err != nil {
			return false, err
		}
		q.CategoryID = *dto.CategoryID
	}
	if dto.Tags != nil {
		if q.Tags, err = s.repo.ResolveTags(ctx, *dto.Tags); err != nil {
			log.WithError(err).Error("Failed to resolve tags")
			return false, err
		}
	}

	updated, err := s.repo.Update(ctx, q)
	if err != nil {
		log.WithError(err).Error("Failed to update quiz")
		return false, err
	}
	if updated {
		log.Info("Quiz updated")
	}
	return updated, nil
}

func (s *quizService) Delete(ctx context.Context, id uint) (bool, error) {
	log := config.WithContext(ctx).WithField("quiz_id", id)

	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz for delete")
		return false, err
	}
	if q == nil {
		return false, nil
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to delete quiz")
		return false, err
	}
	if !deleted {
		return false, nil
	}

	if err := s.images.Delete(ctx, q.ImageURL); err != nil {
		log.WithError(err).Warn("Quiz deleted but its image could not be removed")
	}
	log.Info("Quiz deleted")
	return true, nil
}

func (s *quizService) UploadImage(ctx context.Context, id uint, r io.Reader) (*Quiz, error) {
	log := config.WithContext(ctx).WithField("quiz_id", id)

	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz for image upload")
		return nil, err
	}
	if q == nil {
		return nil, nil
	}

	url, err := s.images.Save(ctx, r)
	if err != nil {
		if apperr.IsValidation(err) {
			log.WithError(err).Warn("Rejected quiz image")
		} else {
			log.WithError(err).Error("Failed to store quiz image")
		}
		return nil, err
	}

	previous := q.ImageURL
	updated, err := s.repo.UpdateImage(ctx, id, url)
	if err != nil || !updated {
		_ = s.images.Delete(ctx, url)
		if err != nil {
			log.WithError(err).Error("Failed to save quiz image url")
			return nil, err
		}
		return nil, nil
	}

	if err := s.images.Delete(ctx, previous); err != nil {
		log.WithError(err).Warn("Failed to remove previous quiz image")
	}
	q.ImageURL = url

	log.WithField("image_url", url).Info("Quiz image uploaded")
	return q, nil
}

func (s *quizService) RemoveImage(ctx context.Context, id uint) (bool, error) {
	log := config.WithContext(ctx).WithField("quiz_id", id)

	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz for image removal")
		return false, err
	}
	if q == nil {
		return false, nil
	}

	updated, err := s.repo.UpdateImage(ctx, id, "")
	if err != nil {
		log.WithError(err).Error("Failed to clear quiz image url")
		return false, err
	}
	if !updated {
		return false, nil
	}
	if err := s.images.Delete(ctx, q.ImageURL); err != nil {
		log.WithError(err).Warn("Failed to remove quiz image file")
	}

	log.Info("Quiz image removed")
	return true, nil
}

func (s *quizService) ListCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list categories")
		return nil, err
	}
	return categories, nil
}

func (s *quizService) CreateCategory(ctx context.Context, dto CreateCategoryDTO) (*Category, error) {
	log := config.WithContext(ctx)

	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, apperr.Invalid("name", "name is required")
	}

	c := &Category{Name: name, Description: strings.TrimSpace(dto.Description)}
	if err := s.categories.Add(ctx, c); err != nil {
		log.WithError(err).Error("Failed to create category")
		return nil, err
	}

	log.WithField("category_id", c.ID).Info("Category created")
	return c, nil
}
