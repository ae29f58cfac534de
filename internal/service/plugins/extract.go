package plugins

import (
	"regexp"
	"strings"
)

// Ordered patterns: the first match wins.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)weather\s+(?:like\s+)?(?:in\s+)?([A-Za-z\s]+?)(?:\?|$|\s+and|\s+how)`),
	regexp.MustCompile(`(?i)(?:in|at)\s+([A-Za-z\s]+?)(?:\?|$|\s+and|\s+how)`),
	regexp.MustCompile(`(?i)weather\s+(?:for\s+)?([A-Za-z\s]+?)(?:\?|$|\s+and|\s+how)`),
}

// Words the location patterns tend to swallow that are never place names.
var locationStopWords = map[string]bool{
	"like": true, "what": true, "is": true, "the": true,
	"weather": true, "temperature": true, "forecast": true,
}

var expressionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+\s*[+\-*/]\s*\d+)`),
	regexp.MustCompile(`(?i)calculate\s+(.+)`),
	regexp.MustCompile(`(?i)solve\s+(.+)`),
}

// ExtractLocation pulls a place name out of a weather query. Returns ""
// when no pattern matches or only stop words remain.
func ExtractLocation(message string) string {
	for _, pattern := range locationPatterns {
		match := pattern.FindStringSubmatch(message)
		if len(match) < 2 || match[1] == "" {
			continue
		}

		var words []string
		for _, w := range strings.Fields(match[1]) {
			if !locationStopWords[strings.ToLower(w)] {
				words = append(words, w)
			}
		}
		if len(words) > 0 {
			return strings.Join(words, " ")
		}
	}
	return ""
}

// ExtractExpression pulls an arithmetic expression out of a message.
// Returns "" when no pattern matches.
func ExtractExpression(message string) string {
	for _, pattern := range expressionPatterns {
		match := pattern.FindStringSubmatch(message)
		if len(match) >= 2 && match[1] != "" {
			return strings.TrimSpace(match[1])
		}
	}
	return ""
}
