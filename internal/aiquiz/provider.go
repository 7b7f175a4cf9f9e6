package aiquiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/saulo-duarte/quizhub-api/internal/config"
)

var ErrNotConfigured = errors.New("gemini api key is not configured")

type Provider interface {
	SendPrompt(ctx context.Context, system, user string) ([]DraftQuestion, error)
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, cfg config.AIConfig) (Provider, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: cfg.Model}, nil
}

func (p *geminiProvider) SendPrompt(ctx context.Context, system, user string) ([]DraftQuestion, error) {
	log := config.WithContext(ctx)

	result, err := p.client.Models.GenerateContent(
		ctx,
		p.model,
		genai.Text(system+"\n\n"+user),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		log.WithError(err).Error("Gemini content generation failed")
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := result.Text()
	log.Debugf("Raw Gemini response:\n%s", raw)

	drafts, err := parseDrafts(raw)
	if err != nil {
		log.WithError(err).Error("Could not decode Gemini response")
		return nil, err
	}
	return drafts, nil
}

// parseDrafts accepts the bare JSON array, optionally wrapped in a
// markdown code fence.
func parseDrafts(raw string) ([]DraftQuestion, error) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return nil, errors.New("empty model response")
	}
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(strings.Trim(clean, "`"))

	var drafts []DraftQuestion
	if err := json.Unmarshal([]byte(clean), &drafts); err != nil {
		return nil, fmt.Errorf("decode drafts: %w", err)
	}
	return drafts, nil
}
