package aiquiz

import (
	"context"
	"errors"

	"github.com/saulo-duarte/quizhub-api/internal/config"
)

type AIQuizContainer struct {
	Handler *Handler
}

func NewAIQuizContainer(ctx context.Context, cfg config.AIConfig) *AIQuizContainer {
	provider, err := NewGeminiProvider(ctx, cfg)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			config.Log.Info("GEMINI_API_KEY not set, question drafting disabled")
		} else {
			config.Log.WithError(err).Warn("Question drafting disabled")
		}
		provider = nil
	}

	return &AIQuizContainer{
		Handler: NewHandler(NewService(provider)),
	}
}
