package techniques

import (
	"regexp"
	"strings"
)

type compressionRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Ordered filler-stripping rules. Applied top to bottom so that longer
// phrases are consumed before their sub-phrases.
var compressionRules = []compressionRule{
	{regexp.MustCompile(`(?i)\bplease\s+`), ""},
	{regexp.MustCompile(`(?i)\bcould\s+you\s+`), ""},
	{regexp.MustCompile(`(?i)\bi\s+would\s+like\s+you\s+to\s+`), ""},
	{regexp.MustCompile(`(?i)\bmake\s+sure\s+that\s+`), "ensure "},
	{regexp.MustCompile(`(?i)\bin\s+order\s+to\s+`), "to "},
	{regexp.MustCompile(`(?i)\bas\s+well\s+as\s+`), "and "},
	{regexp.MustCompile(`(?i)\bit\s+is\s+important\s+that\s+`), ""},
	{regexp.MustCompile(`(?i)\bcan\s+you\s+help\s+me\s+`), "help "},
	{regexp.MustCompile(`(?i)\bi\s+need\s+assistance\s+with\s+`), "assist with "},
	{regexp.MustCompile(`(?i)\bcreate\s+a\s+detailed\s+`), "create detailed "},
	{regexp.MustCompile(`(?i)\bprovide\s+me\s+with\s+`), "provide "},
}

// Compress strips filler phrasing and collapses whitespace. The result
// is never longer than the input and applying it twice changes nothing.
func Compress(prompt string, enabled []string) string {
	out := prompt
	for _, id := range enabled {
		if id == "compression" {
			for _, rule := range compressionRules {
				out = rule.pattern.ReplaceAllString(out, rule.replacement)
			}
			break
		}
	}
	return strings.Join(strings.Fields(out), " ")
}
