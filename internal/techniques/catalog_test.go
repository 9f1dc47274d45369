package techniques

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptpilot/promptpilot/internal/domain"
)

func TestCatalogSize(t *testing.T) {
	assert.Len(t, Catalog(), 25)
}

func TestLookup(t *testing.T) {
	tech, ok := Lookup("zero_shot_cot")
	require.True(t, ok)
	assert.Equal(t, "Zero-Shot Chain-of-Thought", tech.Name)
	assert.Equal(t, "reasoning", tech.Category)
	assert.True(t, tech.Default)

	_, ok = Lookup("does_not_exist")
	assert.False(t, ok)
}

func TestDefaults(t *testing.T) {
	defaults := Defaults()
	assert.ElementsMatch(t, []string{
		"zero_shot_cot", "compression", "role_prompting", "xml_schema",
		"negative_prompts", "triple_prime", "ethical_constraints",
	}, defaults)
	for _, id := range defaults {
		tech, ok := Lookup(id)
		require.True(t, ok)
		assert.False(t, tech.Premium, "default techniques must not be premium: %s", id)
	}
}

func TestResolvePreset(t *testing.T) {
	tests := []struct {
		name   string
		preset string
		want   []string
		err    error
	}{
		{
			name:   "lite",
			preset: "lite",
			want:   []string{"zero_shot_cot", "role_prompting", "xml_schema", "negative_prompts"},
		},
		{
			name:   "production",
			preset: "production",
			want:   []string{"xml_schema", "negative_prompts", "ethical_constraints", "compression", "triple_prime"},
		},
		{
			name:   "unknown preset",
			preset: "turbo",
			err:    domain.ErrUnknownPreset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePreset(tt.preset)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPresetsReferenceCatalog(t *testing.T) {
	info := Info()
	for name, ids := range info.Presets {
		for _, id := range ids {
			_, ok := Lookup(id)
			assert.True(t, ok, "preset %s references unknown technique %s", name, id)
		}
	}
}

func TestFilterEntitled(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		premium bool
		want    []string
	}{
		{
			name:    "premium user keeps premium techniques",
			ids:     []string{"tree_of_thought", "zero_shot_cot"},
			premium: true,
			want:    []string{"tree_of_thought", "zero_shot_cot"},
		},
		{
			name:    "free user loses premium techniques",
			ids:     []string{"tree_of_thought", "zero_shot_cot"},
			premium: false,
			want:    []string{"zero_shot_cot"},
		},
		{
			name: "unknown identifiers dropped",
			ids:  []string{"zero_shot_cot", "hyperspace"},
			want: []string{"zero_shot_cot"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterEntitled(tt.ids, tt.premium))
		})
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize([]string{"xml_schema", "zero_shot_cot", "xml_schema", "compression"})
	assert.Equal(t, []string{"compression", "xml_schema", "zero_shot_cot"}, got)
}

func TestInfoCategories(t *testing.T) {
	info := Info()
	assert.Contains(t, info.Categories, "reasoning")
	assert.Contains(t, info.Categories, "safety")
	assert.Len(t, info.Presets, 6)
	// categories are deduplicated
	seen := map[string]bool{}
	for _, c := range info.Categories {
		assert.False(t, seen[c], "duplicate category %s", c)
		seen[c] = true
	}
}
