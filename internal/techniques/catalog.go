// Package techniques holds the static prompt-engineering technique
// catalog and the composer that applies selected techniques to a prompt.
package techniques

import (
	"sort"

	"github.com/promptpilot/promptpilot/internal/domain"
)

// Technique describes one catalog entry. The catalog is immutable and
// defined at process start.
type Technique struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Default     bool   `json:"default"`
	Premium     bool   `json:"premium"`
}

var catalog = []Technique{
	{ID: "zero_shot_cot", Name: "Zero-Shot Chain-of-Thought", Description: "Add step-by-step reasoning trigger", Category: "reasoning", Default: true},
	{ID: "few_shot_cot", Name: "Few-Shot CoT", Description: "Include reasoning examples", Category: "reasoning"},
	{ID: "self_consistency", Name: "Self-Consistency", Description: "Multi-path reasoning verification", Category: "accuracy", Premium: true},
	{ID: "tree_of_thought", Name: "Tree-of-Thought", Description: "Branch multiple reasoning paths", Category: "planning", Premium: true},
	{ID: "reflection", Name: "Reflection/ReAct", Description: "Thought-Action-Observation loops", Category: "reasoning"},
	{ID: "program_aided", Name: "Program-Aided Reasoning", Description: "Code generation and execution", Category: "computation", Premium: true},
	{ID: "chain_verification", Name: "Chain-of-Verification", Description: "Self-critique and repair", Category: "accuracy"},
	{ID: "compression", Name: "Prompt Compression", Description: "Minimize tokens while preserving meaning", Category: "efficiency", Default: true},
	{ID: "role_prompting", Name: "Role Prompting", Description: "Expert persona assignment", Category: "style", Default: true},
	{ID: "clockwork", Name: "Clockwork Prompting", Description: "Timestamp-aware responses", Category: "temporal"},
	{ID: "xml_schema", Name: "XML/JSON Schema Guardrails", Description: "Structured output formatting", Category: "structure", Default: true},
	{ID: "rubric_critique", Name: "Rubric-based Critique", Description: "Self-evaluation and improvement", Category: "quality"},
	{ID: "contrastive", Name: "Contrastive Prompting", Description: "Good vs bad example guidance", Category: "style"},
	{ID: "negative_prompts", Name: "Negative/Anti-prompts", Description: "Explicit behavior constraints", Category: "safety", Default: true},
	{ID: "dynamic_memory", Name: "Dynamic Memory", Description: "Context-aware information injection", Category: "context"},
	{ID: "rag_augmented", Name: "RAG-Augmented Prompts", Description: "Source-cited factual enhancement", Category: "factuality", Premium: true},
	{ID: "multimodal_cot", Name: "Multimodal CoT", Description: "Cross-modal reasoning", Category: "multimodal", Premium: true},
	{ID: "custom_instructions", Name: "Parameter-Efficient Instructions", Description: "Learned prefix optimization", Category: "efficiency"},
	{ID: "triple_prime", Name: "System/Developer/User Roles", Description: "Hierarchical role separation", Category: "structure", Default: true},
	{ID: "temperature_scheduling", Name: "Temperature Scheduling", Description: "Dynamic creativity control", Category: "generation"},
	{ID: "iterative_decomposition", Name: "Iterative Decomposition", Description: "Atomic sub-task breakdown", Category: "planning"},
	{ID: "speculative_decoding", Name: "Speculative Decoding", Description: "Draft and verify approach", Category: "efficiency", Premium: true},
	{ID: "voice_anchor", Name: "Voice Anchor Style Transfer", Description: "Persona-consistent responses", Category: "style"},
	{ID: "ethical_constraints", Name: "Ethical Constraint Plugins", Description: "Policy-compliant output filtering", Category: "safety", Default: true},
	{ID: "meta_prompts", Name: "Meta-Prompts", Description: "Recursive prompt improvement", Category: "meta", Premium: true},
}

var presets = map[string][]string{
	"lite":         {"zero_shot_cot", "role_prompting", "xml_schema", "negative_prompts"},
	"reasoning":    {"zero_shot_cot", "few_shot_cot", "self_consistency", "reflection", "chain_verification"},
	"data_centric": {"rag_augmented", "dynamic_memory", "chain_verification", "xml_schema"},
	"creative":     {"role_prompting", "voice_anchor", "contrastive", "temperature_scheduling"},
	"production":   {"xml_schema", "negative_prompts", "ethical_constraints", "compression", "triple_prime"},
	"research":     {"tree_of_thought", "program_aided", "iterative_decomposition", "multimodal_cot"},
}

var byID = func() map[string]Technique {
	m := make(map[string]Technique, len(catalog))
	for _, t := range catalog {
		m[t.ID] = t
	}
	return m
}()

// Catalog returns all techniques in declaration order.
func Catalog() []Technique {
	out := make([]Technique, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the technique for id.
func Lookup(id string) (Technique, bool) {
	t, ok := byID[id]
	return t, ok
}

// Defaults returns the identifiers enabled by default.
func Defaults() []string {
	var ids []string
	for _, t := range catalog {
		if t.Default {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// ResolvePreset expands a named preset into its technique identifiers.
func ResolvePreset(name string) ([]string, error) {
	ids, ok := presets[name]
	if !ok {
		return nil, domain.ErrUnknownPreset
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

// FilterEntitled drops premium techniques for non-premium users and any
// identifier not present in the catalog. Entitlement is a policy check
// applied before composition, never inside the composer.
func FilterEntitled(ids []string, premium bool) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			continue
		}
		if t.Premium && !premium {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Normalize dedupes and sorts a technique set so that selection order
// never affects cache keys or composition.
func Normalize(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Info bundles the catalog, presets and category list for discovery.
type CatalogInfo struct {
	Techniques []Technique         `json:"techniques"`
	Presets    map[string][]string `json:"presets"`
	Categories []string            `json:"categories"`
}

func Info() CatalogInfo {
	seen := make(map[string]struct{})
	var categories []string
	for _, t := range catalog {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		categories = append(categories, t.Category)
	}
	sort.Strings(categories)

	p := make(map[string][]string, len(presets))
	for name, ids := range presets {
		cp := make([]string, len(ids))
		copy(cp, ids)
		p[name] = cp
	}
	return CatalogInfo{Techniques: Catalog(), Presets: p, Categories: categories}
}
