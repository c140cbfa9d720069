// Package normalize strips PDF and reporting noise from extracted judgment text.
package normalize

import (
	"regexp"
	"strings"

	"judgebrief/internal/textutil"
)

// MinLength is the shortest input Normalize will process. Shorter input is
// returned unchanged.
const MinLength = 10

const (
	repeatedLineMinRunes = 10
	repeatedLineMinCount = 3
	shortLineMaxRunes    = 2
)

var (
	pageMarkerRe = regexp.MustCompile(`(?i)\bPage\s+\d+(?:\s+of\s+\d+)?\b`)
	numberLineRe = regexp.MustCompile(`(?m)^\s*\d+\s*$`)
	urlRe        = regexp.MustCompile(`https?://[^\s]+`)
	downloadedRe = regexp.MustCompile(`(?i)Downloaded from[^\n]+`)
	bracketRefRe = regexp.MustCompile(`\[\d+\]`)
	yearParenRe  = regexp.MustCompile(`\(\d{4}\)`)
	reportCiteRe = regexp.MustCompile(`\b(?:AIR|SCC|SCR)\s+\d{4}\s+\w+\s+\d+`)
	spaceRunRe   = regexp.MustCompile(` +`)
	newlineRunRe = regexp.MustCompile(`\n{3,}`)
)

// pass is one whole-buffer cleaning step. Passes run in order.
type pass struct {
	name  string
	apply func(string) string
}

func remove(re *regexp.Regexp) func(string) string {
	return func(s string) string { return re.ReplaceAllString(s, "") }
}

var passes = []pass{
	{name: "page_markers", apply: remove(pageMarkerRe)},
	{name: "number_lines", apply: remove(numberLineRe)},
	{name: "urls", apply: remove(urlRe)},
	{name: "downloaded_from", apply: remove(downloadedRe)},
	{name: "bracket_refs", apply: remove(bracketRefRe)},
	{name: "year_parens", apply: remove(yearParenRe)},
	{name: "report_citations", apply: remove(reportCiteRe)},
	{name: "repeated_lines", apply: dropRepeatedLines},
	{name: "short_lines", apply: dropShortLines},
	{name: "space_runs", apply: func(s string) string { return spaceRunRe.ReplaceAllString(s, " ") }},
	{name: "newline_runs", apply: func(s string) string { return newlineRunRe.ReplaceAllString(s, "\n\n") }},
}

// Normalize returns the cleaned form of raw. It is deterministic and never
// fails; input shorter than MinLength characters comes back unchanged.
func Normalize(raw string) string {
	if textutil.Len(raw) < MinLength {
		return raw
	}
	text := raw
	for _, p := range passes {
		text = p.apply(text)
	}
	return strings.TrimSpace(text)
}

// dropRepeatedLines removes every line whose trimmed text (longer than 10
// characters) occurs at least three times. Matching is exact, so headers that
// embed a changing page number are not treated as repeats.
func dropRepeatedLines(text string) string {
	lines := strings.Split(text, "\n")
	counts := make(map[string]int)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if textutil.Len(trimmed) > repeatedLineMinRunes {
			counts[trimmed]++
		}
	}

	kept := lines[:0:0]
	for _, line := range lines {
		if counts[strings.TrimSpace(line)] >= repeatedLineMinCount {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func dropShortLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if textutil.Len(strings.TrimSpace(line)) > shortLineMaxRunes {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
