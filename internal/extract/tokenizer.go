package extract

import (
	"regexp"
	"strings"
)

// tokenPattern matches a run of word characters or a single punctuation
// symbol. Whitespace only separates and never becomes a token.
var tokenPattern = regexp.MustCompile(`\w+|[^\s\w]`)

// Tokenize splits text into lower-cased word runs and individual
// punctuation symbols.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}
