package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/promptpilot/promptpilot/internal/domain/models"
)

func TestBreakdownEmptyText(t *testing.T) {
	s := NewScorer(DefaultConfig())

	b := s.Breakdown("", "", models.UsageMetrics{})
	assert.Zero(t, b.Clarity)
	assert.Zero(t, b.Quality)
	assert.Zero(t, b.Overall)

	// empty enhanced text scores zero clarity and quality even when the
	// original is present
	b = s.Breakdown("analyze this", "", models.UsageMetrics{})
	assert.Zero(t, b.Clarity)
	assert.Zero(t, b.Quality)

	// usage history never lifts an empty text above zero
	history := models.UsageMetrics{
		UsageCount:       50,
		UserFeedback:     1,
		TimeSavedSeconds: 300,
		SuccessRate:      1,
	}
	b = s.Breakdown("", "enhanced text", history)
	assert.Zero(t, b.Overall)
	b = s.Breakdown("analyze this", "   ", history)
	assert.Zero(t, b.Overall)
	assert.Equal(t, 0.40, b.ClarityWeight, "weights still reported for zero breakdowns")
}

func TestBreakdownWeights(t *testing.T) {
	s := NewScorer(DefaultConfig())
	b := s.Breakdown("short", "longer enhanced prompt", models.UsageMetrics{})
	assert.Equal(t, 0.40, b.ClarityWeight)
	assert.Equal(t, 0.35, b.QualityWeight)
	assert.Equal(t, 0.25, b.UsageWeight)
	assert.InDelta(t,
		b.Clarity*0.40+b.Quality*0.35+b.Usage*0.25,
		b.Overall, 1e-9)
}

func TestClarityScore(t *testing.T) {
	s := NewScorer(DefaultConfig())

	// saturate all four categories
	rich := "Please provide a step by step analysis. Focus on the data and break down " +
		"each component. Limit to 100 words maximum. Analyze and compare the options, " +
		"format as a numbered list, organize the points into sections, and follow " +
		"the following house guidelines."
	assert.InDelta(t, 1.0, s.clarityScore(rich), 0.01)

	// bare text matches little
	bare := s.clarityScore("hi")
	assert.Less(t, bare, 0.2)

	// actionable verbs alone only fill one category
	verbs := s.clarityScore("analyze and compare")
	assert.InDelta(t, 0.25, verbs, 0.01)
}

func TestQualityScoreLengthBands(t *testing.T) {
	cfg := DefaultConfig()
	s := NewScorer(cfg)

	word := func(n int) string {
		out := ""
		for i := 0; i < n; i++ {
			out += "word "
		}
		return out
	}

	optimal := s.qualityScore("x", word(50))
	acceptable := s.qualityScore("x", word(300))
	outOfRange := s.qualityScore("x", word(600))

	assert.Greater(t, optimal, acceptable)
	assert.Greater(t, acceptable, outOfRange)
}

func TestQualityScoreSpecificityCanBeNegative(t *testing.T) {
	s := NewScorer(DefaultConfig())
	// enhanced text with fewer long words than the original drags the
	// specificity component below zero
	lower := s.qualityScore("comprehensive detailed analysis requirements specification", "do it")
	higher := s.qualityScore("do it", "comprehensive detailed analysis requirements specification")
	assert.Less(t, lower, higher)
}

func TestUsageScore(t *testing.T) {
	s := NewScorer(DefaultConfig())

	assert.Zero(t, s.usageScore(models.UsageMetrics{}))

	full := s.usageScore(models.UsageMetrics{
		UsageCount:       100,
		UserFeedback:     1.0,
		TimeSavedSeconds: 300,
		SuccessRate:      1.0,
	})
	assert.InDelta(t, 1.0, full, 1e-9)

	// logarithmic usage normalization
	half := s.usageScore(models.UsageMetrics{UsageCount: 10})
	expected := math.Log(11) / math.Log(101) * 0.30
	assert.InDelta(t, expected, half, 1e-9)
}

func TestUsageScoreClampsTimeSaved(t *testing.T) {
	s := NewScorer(DefaultConfig())
	a := s.usageScore(models.UsageMetrics{TimeSavedSeconds: 300})
	b := s.usageScore(models.UsageMetrics{TimeSavedSeconds: 3000})
	assert.Equal(t, a, b)
}

func TestSuggestions(t *testing.T) {
	s := NewScorer(DefaultConfig())

	t.Run("empty text", func(t *testing.T) {
		assert.Equal(t, []string{"Add content to your prompt"}, s.Suggestions(""))
	})

	t.Run("bare prompt triggers most rules", func(t *testing.T) {
		got := s.Suggestions("fix bug")
		assert.Contains(t, got, "Add polite language (e.g., 'please', 'kindly')")
		assert.Contains(t, got, "Add context or background information")
		assert.Contains(t, got, "Specify desired format or structure")
		assert.Contains(t, got, "Add more detail and specificity")
	})

	t.Run("rules are independent", func(t *testing.T) {
		got := s.Suggestions("please provide context and format the output nicely")
		assert.NotContains(t, got, "Add polite language (e.g., 'please', 'kindly')")
		assert.NotContains(t, got, "Add context or background information")
		assert.NotContains(t, got, "Specify desired format or structure")
		assert.Contains(t, got, "Add more detail and specificity")
	})
}
