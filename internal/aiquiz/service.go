package aiquiz

import (
	"context"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizhub-api/internal/apperr"
	"github.com/saulo-duarte/quizhub-api/internal/config"
	"github.com/saulo-duarte/quizhub-api/internal/quiz"
)

var ErrUnavailable = apperr.New(apperr.ErrUnavailable, "question drafting is not configured")

// strips "A) " or "b. " style labels the model sometimes keeps
var choiceLabel = regexp.MustCompile(`^[A-Za-z][).]\s+`)

type Service interface {
	GenerateQuestions(ctx context.Context, req DraftRequest) (*DraftResponse, error)
}

type service struct {
	provider Provider
}

// NewService accepts a nil provider; every call then fails with ErrUnavailable.
func NewService(provider Provider) Service {
	return &service{provider: provider}
}

func (s *service) GenerateQuestions(ctx context.Context, req DraftRequest) (*DraftResponse, error) {
	log := config.WithContext(ctx)

	if s.provider == nil {
		return nil, ErrUnavailable
	}
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return nil, apperr.Invalid("topic", "topic is required")
	}
	req.Difficulty = strings.ToLower(strings.TrimSpace(req.Difficulty))
	if req.Difficulty == "" {
		req.Difficulty = string(quiz.DifficultyEasy)
	}
	if !quiz.Difficulty(req.Difficulty).IsValid() {
		return nil, apperr.Invalid("difficulty", "difficulty must be one of: easy, medium, hard")
	}

	drafts, err := s.provider.SendPrompt(ctx, systemPrompt, BuildUserPrompt(req))
	if err != nil {
		return nil, err
	}

	count := clampCount(req.Count)
	kept := make([]DraftQuestion, 0, count)
	for _, d := range drafts {
		if len(kept) == count {
			break
		}
		if clean, ok := sanitize(d); ok {
			kept = append(kept, clean)
		}
	}

	log.WithFields(logrus.Fields{
		"topic":     req.Topic,
		"requested": count,
		"received":  len(drafts),
		"kept":      len(kept),
	}).Info("Drafted questions")

	return &DraftResponse{
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		Questions:  kept,
	}, nil
}

// sanitize drops drafts that would not pass question validation.
func sanitize(d DraftQuestion) (DraftQuestion, bool) {
	d.Type = quiz.TypeMultipleChoice
	d.Text = strings.TrimSpace(d.Text)
	d.Explanation = strings.TrimSpace(d.Explanation)
	if d.Text == "" {
		return d, false
	}

	correct := -1
	choices := make([]string, 0, len(d.Choices))
	for i, c := range d.Choices {
		c = strings.TrimSpace(choiceLabel.ReplaceAllString(strings.TrimSpace(c), ""))
		if c == "" {
			continue
		}
		if i == d.CorrectAnswerIndex {
			correct = len(choices)
		}
		choices = append(choices, c)
	}
	d.Choices = choices
	d.CorrectAnswerIndex = correct

	if len(choices) < 2 || correct < 0 {
		return d, false
	}
	return d, true
}
