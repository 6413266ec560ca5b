package services

import (
	"blueghost/internal/llm"
	"blueghost/internal/models"
	"blueghost/internal/providers"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	maxStoryTokens   = 300
	storyTemperature = 0.7

	OutcomeStored      = "stored"
	OutcomeBlank       = "blank"
	OutcomeInvalid     = "invalid"
	OutcomeFailed      = "failed"
	OutcomeStoreFailed = "store_failed"
)

type GenerationServiceInterface interface {
	Generate(ctx context.Context, prompt string, style models.Style) (string, error)
	Create(ctx context.Context, username, prompt string, style models.Style) (models.GenerationRecord, int, error)
}

type GenerationService struct {
	client  llm.Client
	store   StoryStoreInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
}

func NewGenerationService(client llm.Client, store StoryStoreInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) *GenerationService {
	return &GenerationService{
		client:  client,
		store:   store,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// HistoryCacheKey is versioned by the history length. Histories only grow, so
// an append moves readers to a fresh key and a response computed before the
// append can never be served after it.
func HistoryCacheKey(username string, n int) string {
	return fmt.Sprintf("history:%s:%d", username, n)
}

func StyleDirective(style models.Style) string {
	return fmt.Sprintf("You are a creative writer. Write in a %s style.", style)
}

// Generate makes exactly one completion call and returns the first choice
// verbatim. Nothing is stored.
func (g *GenerationService) Generate(ctx context.Context, prompt string, style models.Style) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrBlankInput
	}
	if !style.Valid() {
		return "", ErrInvalidStyle
	}

	start := time.Now()
	resp, err := g.client.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: StyleDirective(style)},
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   maxStoryTokens,
		Temperature: storyTemperature,
	})
	g.metrics.ObserveCompletionDuration(time.Since(start))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrServiceFailure, err)
	}

	return resp.Content, nil
}

// Create generates a story and appends it to the user's history. It returns the
// stored record with its chronological position.
func (g *GenerationService) Create(ctx context.Context, username, prompt string, style models.Style) (models.GenerationRecord, int, error) {
	story, err := g.Generate(ctx, prompt, style)
	if err != nil {
		outcome := OutcomeFailed
		switch {
		case errors.Is(err, ErrBlankInput):
			outcome = OutcomeBlank
		case errors.Is(err, ErrInvalidStyle):
			outcome = OutcomeInvalid
		default:
			g.logger.Errorf(providers.TypeApp, "Generation for %s failed: %s", username, err)
		}
		g.metrics.IncGenerations(style.String(), outcome)
		return models.GenerationRecord{}, 0, err
	}

	record := models.GenerationRecord{Prompt: prompt, Style: style, Story: story}

	start := time.Now()
	seq, err := g.store.Append(username, record)
	g.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		g.metrics.IncGenerations(style.String(), OutcomeStoreFailed)
		return models.GenerationRecord{}, 0, fmt.Errorf("failed to store story: %w", err)
	}

	// superseded entry; readers already moved on to the new length
	g.cache.Del(HistoryCacheKey(username, seq-1))
	g.metrics.IncGenerations(style.String(), OutcomeStored)
	return record, seq, nil
}
