// Package scoring computes effectiveness scores for enhanced prompts
// from weighted clarity, quality and usage components.
package scoring

import (
	"math"
	"regexp"
	"strings"

	"github.com/promptpilot/promptpilot/internal/domain/models"
)

// Config bounds the normalization of raw metrics.
type Config struct {
	MaxTimeSavedSeconds float64
	MaxUsageCount       int
	MaxWordCount        int
	MinWordCount        int
	OptimalWordMin      int
	OptimalWordMax      int
}

func DefaultConfig() Config {
	return Config{
		MaxTimeSavedSeconds: 300,
		MaxUsageCount:       100,
		MaxWordCount:        500,
		MinWordCount:        10,
		OptimalWordMin:      20,
		OptimalWordMax:      200,
	}
}

// Component weights for the overall score.
const (
	clarityWeight = 0.40
	qualityWeight = 0.35
	usageWeight   = 0.25
)

// Quality sub-component weights.
const (
	lengthWeight      = 0.20
	structureWeight   = 0.25
	specificityWeight = 0.30
	formattingWeight  = 0.25
)

// Usage sub-component weights.
const (
	usageFrequencyWeight = 0.30
	userFeedbackWeight   = 0.25
	timeSavedWeight      = 0.25
	successRateWeight    = 0.20
)

// Breakdown reports the overall score, its components and the weights
// used to combine them. All values are 0.0 to 1.0.
type Breakdown struct {
	Overall       float64 `json:"overall_score"`
	Clarity       float64 `json:"clarity_score"`
	Quality       float64 `json:"quality_score"`
	Usage         float64 `json:"usage_score"`
	ClarityWeight float64 `json:"clarity_weight"`
	QualityWeight float64 `json:"quality_weight"`
	UsageWeight   float64 `json:"usage_weight"`
}

type clarityCategory struct {
	patterns []*regexp.Regexp
	cap      int
	weight   float64
}

// Scorer evaluates prompt effectiveness. Patterns are compiled once at
// construction; a Scorer is safe for concurrent use.
type Scorer struct {
	cfg Config

	clarity []clarityCategory

	structurePatterns  []*regexp.Regexp
	formattingPatterns []*regexp.Regexp
	specificWord       *regexp.Regexp

	suggestions *suggestionEngine
}

func NewScorer(cfg Config) *Scorer {
	s := &Scorer{cfg: cfg, suggestions: newSuggestionEngine()}

	compile := func(exprs ...string) []*regexp.Regexp {
		out := make([]*regexp.Regexp, len(exprs))
		for i, e := range exprs {
			out[i] = regexp.MustCompile(e)
		}
		return out
	}

	// Four equally weighted clarity categories. specific_instructions
	// saturates at 3 matches, the rest at 2.
	s.clarity = []clarityCategory{
		{cap: 3, weight: 0.25, patterns: compile(
			`(?i)please\s+provide`,
			`(?i)include\s+.*\s+in\s+your\s+response`,
			`(?i)focus\s+on`,
			`(?i)emphasize`,
			`(?i)highlight`,
			`(?i)explain\s+.*\s+in\s+detail`,
			`(?i)provide\s+examples`,
			`(?i)step\s+by\s+step`,
			`(?i)break\s+down`,
		)},
		{cap: 2, weight: 0.25, patterns: compile(
			`(?i)create`, `(?i)generate`, `(?i)write`, `(?i)analyze`,
			`(?i)review`, `(?i)compare`, `(?i)explain`, `(?i)describe`,
			`(?i)list`, `(?i)outline`,
		)},
		{cap: 2, weight: 0.25, patterns: compile(
			`(?i)limit\s+to`,
			`(?i)maximum\s+.*\s+words`,
			`(?i)minimum\s+.*\s+words`,
			`(?i)within\s+.*\s+constraints`,
			`(?i)following\s+.*\s+guidelines`,
			`(?i)according\s+to\s+.*\s+standards`,
		)},
		{cap: 2, weight: 0.25, patterns: compile(
			`(?i)format\s+as`,
			`(?i)structure\s+.*\s+as`,
			`(?i)organize\s+.*\s+into`,
			`(?i)present\s+.*\s+in\s+.*\s+format`,
			`(?i)use\s+.*\s+format`,
		)},
	}

	s.structurePatterns = compile(
		`\n\n`,
		`[1-9]\.`,
		`[-*]`,
		`(?i)first|second|third|finally`,
		`(?i)however|moreover|additionally`,
	)
	s.formattingPatterns = compile(
		`[A-Z][a-z]+:`,
		`\n`,
		`[.!?]`,
		`["']`,
		`\([^)]+\)`,
	)
	s.specificWord = regexp.MustCompile(`\b\w{6,}\b`)

	return s
}

// Breakdown scores an enhancement. Empty original or enhanced text
// yields a zero overall regardless of usage history.
func (s *Scorer) Breakdown(original, enhanced string, metrics models.UsageMetrics) Breakdown {
	if strings.TrimSpace(original) == "" || strings.TrimSpace(enhanced) == "" {
		return Breakdown{
			ClarityWeight: clarityWeight,
			QualityWeight: qualityWeight,
			UsageWeight:   usageWeight,
		}
	}

	clarity := s.clarityScore(enhanced)
	quality := s.qualityScore(original, enhanced)
	usage := s.usageScore(metrics)

	overall := clarity*clarityWeight + quality*qualityWeight + usage*usageWeight
	overall = math.Max(0, math.Min(1, overall))

	return Breakdown{
		Overall:       overall,
		Clarity:       clarity,
		Quality:       quality,
		Usage:         usage,
		ClarityWeight: clarityWeight,
		QualityWeight: qualityWeight,
		UsageWeight:   usageWeight,
	}
}

func (s *Scorer) clarityScore(text string) float64 {
	if text == "" {
		return 0
	}
	var score float64
	for _, cat := range s.clarity {
		matches := 0
		for _, p := range cat.patterns {
			if p.MatchString(text) {
				matches++
			}
		}
		score += math.Min(1, float64(matches)/float64(cat.cap)) * cat.weight
	}
	return score
}

func (s *Scorer) qualityScore(original, enhanced string) float64 {
	if original == "" || enhanced == "" {
		return 0
	}
	var score float64

	words := len(strings.Fields(enhanced))
	switch {
	case words >= s.cfg.OptimalWordMin && words <= s.cfg.OptimalWordMax:
		score += lengthWeight
	case words >= s.cfg.MinWordCount && words <= s.cfg.MaxWordCount:
		score += lengthWeight * 0.7
	}

	structure := 0
	for _, p := range s.structurePatterns {
		if p.MatchString(enhanced) {
			structure++
		}
	}
	score += math.Min(1, float64(structure)/3) * structureWeight

	gained := len(s.specificWord.FindAllString(enhanced, -1)) -
		len(s.specificWord.FindAllString(original, -1))
	score += math.Min(1, float64(gained)/10) * specificityWeight

	formatting := 0
	for _, p := range s.formattingPatterns {
		if p.MatchString(enhanced) {
			formatting++
		}
	}
	score += math.Min(1, float64(formatting)/5) * formattingWeight

	return score
}

func (s *Scorer) usageScore(m models.UsageMetrics) float64 {
	var score float64

	if m.UsageCount > 0 {
		freq := math.Log(float64(m.UsageCount)+1) / math.Log(float64(s.cfg.MaxUsageCount)+1)
		score += math.Min(1, freq) * usageFrequencyWeight
	}
	score += m.UserFeedback * userFeedbackWeight
	score += math.Min(1, m.TimeSavedSeconds/s.cfg.MaxTimeSavedSeconds) * timeSavedWeight
	score += m.SuccessRate * successRateWeight

	return score
}

// Suggestions returns advisory improvements for a prompt.
func (s *Scorer) Suggestions(text string) []string {
	return s.suggestions.suggest(text)
}
