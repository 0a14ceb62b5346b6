package services

import (
	"context"
	"log"
	"strings"
	"time"

	"innerglow/backend/internal/models"
	"innerglow/backend/internal/store"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const affirmationCacheType = "affirmation"

// fallbackAffirmations keep the endpoint serving when generation is
// unconfigured or failing. Indexed by day of year so the pick is stable
// within a day.
var fallbackAffirmations = []string{
	"You are allowed to take up space.",
	"Small steps today carry you further than standing still.",
	"Your feelings are valid, and they will pass through you.",
	"You have survived every hard day so far.",
	"Rest is productive too.",
	"You are more than your worst thought about yourself.",
	"Growth is quiet; trust it anyway.",
}

// Affirmations produces one affirmation per day, generated once and shared by
// every user through the daily cache.
type Affirmations struct {
	client    *openai.Client
	cache     *store.DailyCacheStore
	generated bool
}

// NewAffirmations builds the service. With no API key the service still works
// off the fallback list.
func NewAffirmations(apiKey string, cache *store.DailyCacheStore) *Affirmations {
	s := &Affirmations{cache: cache}
	if apiKey != "" {
		client := openai.NewClient(option.WithAPIKey(apiKey))
		s.client = &client
		s.generated = true
	} else {
		log.Println("[AffirmationService] OPENAI_API_KEY not set, using fallback affirmations")
	}
	return s
}

// Today returns the affirmation of the day. The first request of the day
// produces it; concurrent first requests race on the daily-cache key and the
// loser re-reads the winner's text.
func (s *Affirmations) Today(ctx context.Context) (string, error) {
	date := time.Now().Format(models.DateLayout)
	return s.cache.GetOrCreate(ctx, date, affirmationCacheType, s.produce)
}

func (s *Affirmations) produce(ctx context.Context) (string, error) {
	if !s.generated {
		return s.fallback(), nil
	}

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You write short daily affirmations for a wellness app. Respond with a single warm, secular affirmation of at most 20 words. No quotes, no emoji."),
			openai.UserMessage("Write today's affirmation."),
		},
		Model: openai.ChatModelGPT4oMini,
	})
	if err != nil {
		log.Printf("[AffirmationService] generation failed, using fallback: %v", err)
		return s.fallback(), nil
	}
	if len(completion.Choices) == 0 {
		return s.fallback(), nil
	}
	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return s.fallback(), nil
	}
	return text, nil
}

func (s *Affirmations) fallback() string {
	return fallbackAffirmations[time.Now().YearDay()%len(fallbackAffirmations)]
}
