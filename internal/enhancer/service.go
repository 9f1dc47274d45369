// Package enhancer orchestrates the enhancement pipeline: validation,
// normalization, cache lookup, composition, optional LLM refinement,
// scoring and persistence.
package enhancer

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/promptpilot/promptpilot/internal/adapters/metrics"
	"github.com/promptpilot/promptpilot/internal/cache"
	"github.com/promptpilot/promptpilot/internal/domain"
	"github.com/promptpilot/promptpilot/internal/domain/models"
	"github.com/promptpilot/promptpilot/internal/ports"
	"github.com/promptpilot/promptpilot/internal/techniques"
)

const (
	// MaxPromptLength bounds inbound prompt size in characters.
	MaxPromptLength = 5000

	// Results slower than this are not cached.
	cacheLatencyBound = 10 * time.Second

	baseScore    = 85.0
	scoreFloor   = 70.0
	scoreCeiling = 95.0
)

// EnhanceInput is one enhancement request.
type EnhanceInput struct {
	UserID     string
	Prompt     string
	Mode       string
	Techniques []string
	Preset     string
	// Provider lets the caller force the local fallback path. Any
	// value other than "fallback" leaves provider selection to the
	// service.
	Provider string
	Premium  bool
}

// Service runs the enhancement pipeline. The refiner and repositories
// are optional; without them the service degrades to the composed
// fallback path and skips persistence.
type Service struct {
	composer *techniques.Composer
	cache    *cache.Cache
	refiner  ports.Refiner

	prompts   ports.PromptRepository
	analytics ports.AnalyticsRepository
	tx        ports.TransactionManager
	ids       ports.IDGenerator
}

func NewService(composer *techniques.Composer, c *cache.Cache, refiner ports.Refiner,
	prompts ports.PromptRepository, analytics ports.AnalyticsRepository,
	tx ports.TransactionManager, ids ports.IDGenerator) *Service {
	return &Service{
		composer:  composer,
		cache:     c,
		refiner:   refiner,
		prompts:   prompts,
		analytics: analytics,
		tx:        tx,
		ids:       ids,
	}
}

// Enhance validates, composes and scores one prompt.
func (s *Service) Enhance(ctx context.Context, in EnhanceInput) (*models.EnhancementResult, error) {
	start := time.Now()

	prompt := strings.TrimSpace(in.Prompt)
	if prompt == "" {
		return nil, domain.ErrEmptyPrompt
	}
	if len(prompt) > MaxPromptLength {
		return nil, domain.ErrPromptTooLong
	}
	mode, ok := models.ParseMode(in.Mode)
	if !ok {
		return nil, domain.ErrInvalidMode
	}

	prompt = strings.Join(strings.Fields(prompt), " ")

	set, err := s.resolveTechniques(in)
	if err != nil {
		return nil, err
	}

	key := cache.Key(prompt, set, mode)
	if hit, ok := s.cache.Get(key); ok {
		metrics.CacheHitsTotal.Inc()
		result := *hit
		result.Cached = true
		result.Provider = models.ProviderCacheHit
		result.Duration = time.Since(start)
		s.cache.RecordLatency(result.Duration)
		metrics.EnhancementsTotal.WithLabelValues(result.Provider, string(mode)).Inc()
		return &result, nil
	}
	metrics.CacheMissesTotal.Inc()

	composed := s.composer.Compose(prompt, set, mode)

	text := composed
	provider := models.ProviderFallback
	if mode == models.ModeRewrite && s.refiner != nil && in.Provider != models.ProviderFallback {
		llmStart := time.Now()
		refined, err := s.refiner.Refine(ctx, composed, mode)
		metrics.LLMRequestDuration.Observe(time.Since(llmStart).Seconds())
		if err != nil {
			// the provider is untrusted, degrade to the composed text
			metrics.LLMRequestsTotal.WithLabelValues("error").Inc()
			log.Printf("enhancer: refine failed, using composed text: %v", err)
		} else {
			metrics.LLMRequestsTotal.WithLabelValues("ok").Inc()
			text = refined
			provider = models.ProviderExternalLLM
		}
	}

	result := &models.EnhancementResult{
		EnhancedText:      text,
		Provider:          provider,
		TechniquesApplied: len(set),
		OriginalLength:    len(prompt),
		EnhancedLength:    len(text),
		Duration:          time.Since(start),
	}
	result.Score = liveScore(mode, result.OriginalLength, result.EnhancedLength)

	if result.EnhancedText != "" && result.Duration < cacheLatencyBound {
		s.cache.Put(key, result)
	}
	s.cache.RecordLatency(result.Duration)
	metrics.EnhancementsTotal.WithLabelValues(provider, string(mode)).Inc()
	metrics.EnhancementDuration.WithLabelValues(string(mode)).Observe(result.Duration.Seconds())

	s.persist(in.UserID, prompt, result)

	return result, nil
}

func (s *Service) resolveTechniques(in EnhanceInput) ([]string, error) {
	var set []string
	switch {
	case in.Preset != "":
		resolved, err := techniques.ResolvePreset(in.Preset)
		if err != nil {
			return nil, err
		}
		set = resolved
	case len(in.Techniques) > 0:
		set = in.Techniques
	default:
		set = techniques.Defaults()
	}
	return techniques.Normalize(techniques.FilterEntitled(set, in.Premium)), nil
}

// liveScore is the heuristic used on the live path, where no usage
// history exists yet. Rewrite is rewarded for expansion, compress for
// shrinkage.
func liveScore(mode models.Mode, originalLen, enhancedLen int) float64 {
	if originalLen == 0 {
		return scoreFloor
	}
	ratio := float64(enhancedLen) / float64(originalLen)

	var reward float64
	if mode == models.ModeCompress {
		reward = (1 - ratio) * 30
		if reward > 15 {
			reward = 15
		}
	} else {
		reward = (ratio - 1) * 5
		if reward > 10 {
			reward = 10
		}
	}

	score := baseScore + reward
	if score < scoreFloor {
		score = scoreFloor
	}
	if score > scoreCeiling {
		score = scoreCeiling
	}
	return score
}

// persist records the enhancement asynchronously. Persistence failures
// never affect the response already computed.
func (s *Service) persist(userID, original string, result *models.EnhancementResult) {
	if s.prompts == nil || s.analytics == nil || userID == "" {
		return
	}

	record := models.NewPrompt(s.ids.PromptID(), userID, original, result.EnhancedText, result.Score)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		write := func(ctx context.Context) error {
			if err := s.prompts.Create(ctx, record); err != nil {
				return err
			}
			if err := s.analytics.RecordEnhancement(ctx, userID); err != nil {
				// first enhancement for this user, create the row
				a := models.NewAnalytics(s.ids.AnalyticsID(), userID)
				a.RecordEnhancement()
				return s.analytics.Upsert(ctx, a)
			}
			return nil
		}

		var err error
		if s.tx != nil {
			err = s.tx.WithTransaction(ctx, write)
		} else {
			err = write(ctx)
		}
		if err != nil {
			log.Printf("enhancer: failed to record enhancement for %s: %v", userID, err)
		}
	}()
}
