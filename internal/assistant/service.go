package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"google.golang.org/genai"

	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/logger"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/storage"
	"github.com/julianstephens/nahar/internal/utils"
)

// ErrTopicRequired is returned by the monthly view until a topic is set.
var ErrTopicRequired = errors.New("no monthly topic set, run 'nahar topic set <topic>'")

// InfoView names one of the info dashboards.
type InfoView string

const (
	ViewTech     InfoView = "tech"
	ViewEconomic InfoView = "economic"
	ViewMonthly  InfoView = "monthly"
	ViewDaily    InfoView = "daily"
)

var InfoViews = []InfoView{ViewTech, ViewEconomic, ViewMonthly, ViewDaily}

func (v InfoView) Valid() bool {
	for _, known := range InfoViews {
		if v == known {
			return true
		}
	}
	return false
}

// Cached reports whether the view is kept for the rest of the day.
// Tech and economic news are always fetched live.
func (v InfoView) Cached() bool {
	return v == ViewMonthly || v == ViewDaily
}

// FetchError is the failure of an info fetch. Its message is safe to show.
type FetchError struct {
	View InfoView
	Lang string
	Err  error
}

func (e *FetchError) Error() string {
	return message(e.Lang, msgFetchFailed)
}

func (e *FetchError) Unwrap() error { return e.Err }

// UserMessage is the localized text shown in place of the view.
func (e *FetchError) UserMessage() string { return e.Error() }

// Service wires a Generator to the mapping store.
type Service struct {
	gen      Generator
	provider storage.Provider
	lang     string
	loc      *time.Location
	now      func() time.Time

	group singleflight.Group
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService builds a Service. gen may be nil when no API key is configured;
// every generating call then fails with ErrNoGenerator.
func NewService(gen Generator, p storage.Provider, settings models.Settings, opts ...Option) *Service {
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		logger.Warn("Invalid timezone, falling back to local", "timezone", settings.Timezone, "error", err)
		loc = time.Local
	}
	lang := settings.Language
	if !models.ValidLanguage(lang) {
		lang = constants.DefaultLanguage
	}
	s := &Service{gen: gen, provider: p, lang: lang, loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var ErrNoGenerator = errors.New("text generation is not configured, run 'nahar keyring set-api-key'")

func (s *Service) Language() string { return s.lang }

func (s *Service) today() string { return utils.Today(s.now().In(s.loc)) }

func (s *Service) generate(ctx context.Context, req Request) (string, error) {
	if s.gen == nil {
		return "", ErrNoGenerator
	}
	return s.gen.Generate(ctx, req)
}

// DailySummary writes a short encouraging paragraph about the pending tasks.
// It never fails: errors are logged and replaced with a localized notice.
func (s *Service) DailySummary(ctx context.Context, pending []models.Task) string {
	if len(pending) == 0 {
		return message(s.lang, msgNoTasks)
	}

	var b strings.Builder
	for _, t := range pending {
		fmt.Fprintf(&b, "- %s (Priority: %s, Due: %s)\n", t.Title, t.Priority, t.DueDate)
	}
	prompt := fmt.Sprintf(summaryPrompt, languageName(s.lang), strings.TrimRight(b.String(), "\n"))

	text, err := s.generate(ctx, Request{Prompt: prompt})
	if err != nil {
		logger.Error("Failed to generate daily summary", "error", err)
		return message(s.lang, msgSummaryFailed)
	}
	return text
}

type mealResponse struct {
	Meal string `json:"meal"`
	Time string `json:"time"`
}

var mealSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"meal": {
				Type:        genai.TypeString,
				Description: "The name of the meal, e.g., Breakfast, Lunch, Dinner.",
			},
			"time": {
				Type:        genai.TypeString,
				Description: "The time of the meal in HH:MM format (24-hour clock).",
			},
		},
		Required: []string{"meal", "time"},
	},
}

// ExtractMeals asks for the main meals of a free-text diet plan.
func (s *Service) ExtractMeals(ctx context.Context, plan string) ([]models.Meal, error) {
	plan = strings.TrimSpace(plan)
	if plan == "" {
		return nil, fmt.Errorf("diet plan is empty")
	}

	text, err := s.generate(ctx, Request{
		Prompt: fmt.Sprintf(mealPrompt, plan),
		Schema: mealSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract meals: %w", err)
	}

	var parsed []mealResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse meal list: %w", err)
	}

	meals := make([]models.Meal, 0, len(parsed))
	for _, m := range parsed {
		meals = append(meals, models.Meal{Meal: strings.TrimSpace(m.Meal), Time: strings.TrimSpace(m.Time)})
	}
	return meals, nil
}

// InfoCacheKey is the storage key of a cached view for a language and day.
func InfoCacheKey(view InfoView, lang, date string) string {
	return fmt.Sprintf("%s%s_%s_%s", constants.InfoCacheKeyPrefix, view, lang, date)
}

// Info returns the content of an info view. Monthly and daily views are
// served from today's cache unless fresh is set. Concurrent calls for the
// same key share one request.
func (s *Service) Info(ctx context.Context, view InfoView, fresh bool) (string, error) {
	if !view.Valid() {
		return "", fmt.Errorf("unknown info view %q", view)
	}

	var prompt string
	switch view {
	case ViewTech:
		prompt = techPrompt
	case ViewEconomic:
		prompt = economicPrompt
	case ViewDaily:
		prompt = dailyPrompt
	case ViewMonthly:
		topic, err := s.Topic(ctx)
		if err != nil {
			return "", err
		}
		if topic == "" {
			return "", ErrTopicRequired
		}
		prompt = fmt.Sprintf(monthlyPrompt, topic)
	}

	key := InfoCacheKey(view, s.lang, s.today())
	if view.Cached() && !fresh {
		cached, ok, err := s.provider.Get(ctx, key)
		if err != nil {
			logger.Warn("Info cache unreadable", "key", key, "error", err)
		} else if ok && cached != "" {
			logger.Debug("Serving cached info", "view", view)
			return cached, nil
		}
	}

	v, err, shared := s.group.Do(key, func() (any, error) {
		text, err := s.generate(ctx, Request{
			Prompt:    prompt + fmt.Sprintf(formattingInstructions, languageName(s.lang)),
			WebSearch: true,
		})
		if err != nil {
			return "", err
		}
		if view.Cached() {
			if err := s.provider.Set(ctx, key, text); err != nil {
				logger.Warn("Failed to cache info", "key", key, "error", err)
			}
		}
		return text, nil
	})
	if err != nil {
		logger.Error("Failed to fetch info", "view", view, "error", err)
		return "", &FetchError{View: view, Lang: s.lang, Err: err}
	}
	if shared {
		logger.Debug("Info request shared", "view", view)
	}
	return v.(string), nil
}

// Topic returns the monthly topic, or "" when none is set.
func (s *Service) Topic(ctx context.Context) (string, error) {
	topic, _, err := s.provider.Get(ctx, constants.KeyMonthlyTopic)
	if err != nil {
		return "", fmt.Errorf("failed to read monthly topic: %w", err)
	}
	return topic, nil
}

// SetTopic stores the monthly topic and drops today's cached monthly view
// so the next fetch covers the new topic.
func (s *Service) SetTopic(ctx context.Context, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return fmt.Errorf("topic cannot be empty")
	}
	if err := s.provider.Set(ctx, constants.KeyMonthlyTopic, topic); err != nil {
		return fmt.Errorf("failed to save monthly topic: %w", err)
	}
	for _, lang := range constants.SupportedLanguages {
		if err := s.provider.Delete(ctx, InfoCacheKey(ViewMonthly, lang, s.today())); err != nil {
			logger.Warn("Failed to clear monthly info cache", "lang", lang, "error", err)
		}
	}
	return nil
}

// PruneInfoCache removes cached views from days before the given date.
func (s *Service) PruneInfoCache(ctx context.Context, before string) (int, error) {
	keys, err := s.provider.Keys(ctx, constants.InfoCacheKeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("failed to list info cache: %w", err)
	}
	removed := 0
	for _, key := range keys {
		i := strings.LastIndexByte(key, '_')
		if i < 0 {
			continue
		}
		date := key[i+1:]
		if !utils.ValidateDateFormat(date) || date >= before {
			continue
		}
		if err := s.provider.Delete(ctx, key); err != nil {
			return removed, fmt.Errorf("failed to delete %s: %w", key, err)
		}
		removed++
	}
	return removed, nil
}
