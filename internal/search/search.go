// Package search locates a keyword in judgment text.
package search

import (
	"regexp"
	"strings"

	"judgebrief/internal/textutil"
)

const (
	// SnippetRadius is the number of characters of context kept on each side of a match.
	SnippetRadius = 80
	// MaxMatches caps the matches returned by Find.
	MaxMatches = 100
)

// Match is one occurrence of the query.
type Match struct {
	Offset  int    `json:"offset"`
	Term    string `json:"term"`
	Snippet string `json:"snippet"`
}

func queryPattern(query string) *regexp.Regexp {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(query))
}

// Find returns up to MaxMatches case-insensitive occurrences of query in text,
// with character offsets and surrounding context. A blank query matches nothing.
func Find(text, query string) []Match {
	re := queryPattern(query)
	if re == nil {
		return nil
	}

	var matches []Match
	for _, loc := range re.FindAllStringIndex(text, MaxMatches) {
		start := textutil.CharOffset(text, loc[0])
		end := start + textutil.Len(text[loc[0]:loc[1]])
		snippet := textutil.Slice(text, start-SnippetRadius, end+SnippetRadius)
		matches = append(matches, Match{
			Offset:  start,
			Term:    text[loc[0]:loc[1]],
			Snippet: strings.Join(strings.Fields(snippet), " "),
		})
	}
	return matches
}

// Highlight wraps every case-insensitive occurrence of query in "**", keeping
// the text's own casing. A blank query returns text unchanged.
func Highlight(text, query string) string {
	re := queryPattern(query)
	if re == nil {
		return text
	}
	return re.ReplaceAllString(text, "**${0}**")
}

// Count returns the number of occurrences of query in text.
func Count(text, query string) int {
	re := queryPattern(query)
	if re == nil {
		return 0
	}
	return len(re.FindAllStringIndex(text, -1))
}
