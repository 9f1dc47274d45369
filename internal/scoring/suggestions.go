package scoring

import (
	"regexp"
	"strings"
)

type suggestionRule struct {
	applies func(text string) bool
	text    string
}

// suggestionEngine holds independent pattern-absence rules. Each rule
// fires on its own; the rules do not interact.
type suggestionEngine struct {
	rules []suggestionRule
}

func newSuggestionEngine() *suggestionEngine {
	polite := regexp.MustCompile(`please|kindly|could you`)
	specific := regexp.MustCompile(`\b(provide|include|focus|emphasize)\b`)
	context := regexp.MustCompile(`context|background|situation`)
	format := regexp.MustCompile(`format|structure|organize`)

	absent := func(p *regexp.Regexp) func(string) bool {
		return func(text string) bool {
			return !p.MatchString(strings.ToLower(text))
		}
	}

	return &suggestionEngine{rules: []suggestionRule{
		{absent(polite), "Add polite language (e.g., 'please', 'kindly')"},
		{absent(specific), "Include specific instructions (e.g., 'provide', 'include', 'focus on')"},
		{absent(context), "Add context or background information"},
		{absent(format), "Specify desired format or structure"},
		{func(text string) bool { return len(strings.Fields(text)) < 20 },
			"Add more detail and specificity"},
		{func(text string) bool { return len(strings.Fields(text)) > 200 },
			"Consider breaking into smaller, focused prompts"},
	}}
}

func (e *suggestionEngine) suggest(text string) []string {
	if text == "" {
		return []string{"Add content to your prompt"}
	}
	var out []string
	for _, rule := range e.rules {
		if rule.applies(text) {
			out = append(out, rule.text)
		}
	}
	return out
}
