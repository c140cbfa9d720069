// Package trace pulls verbatim, citable sentences out of a cleaned judgment.
//
// Each citation carries the character offset of the sentence in the cleaned
// text, so a reader can jump from a summary back to the source.
package trace

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"judgebrief/internal/domain"
	"judgebrief/internal/textutil"
)

// Keyword sets for the three source-log categories. Order matters: earlier
// keywords claim sentences first.
var (
	BackgroundKeywords = []string{
		"fact", "background", "incident", "allegation",
		"accused", "victim", "petitioner", "appellant", "case",
	}
	ObservationKeywords = []string{
		"observed", "held", "court", "opined", "noted",
		"finding", "concluded", "reasoning",
	}
	DecisionKeywords = []string{
		"directed", "ordered", "dismissed", "allowed",
		"disposed", "decree", "judgment", "held that",
	}
)

// Citation is one verbatim sentence and its character offset in the cleaned text.
type Citation struct {
	Offset   int
	Sentence string
}

// String renders the citation as "[Ref ID: offset] sentence".
func (c Citation) String() string {
	return domain.FormatTrace(c.Offset, c.Sentence)
}

var refRe = regexp.MustCompile(`(?s)^\[Ref ID: (\d+)\] (.*)$`)

// Parse reads back a rendered "[Ref ID: offset] sentence" entry.
func Parse(entry string) (Citation, bool) {
	m := refRe.FindStringSubmatch(entry)
	if m == nil {
		return Citation{}, false
	}
	offset, err := strconv.Atoi(m[1])
	if err != nil {
		return Citation{}, false
	}
	return Citation{Offset: offset, Sentence: m[2]}, true
}

var sentenceCache sync.Map // keyword -> *regexp.Regexp

func sentencePattern(keyword string) *regexp.Regexp {
	if re, ok := sentenceCache.Load(keyword); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?is)([A-Z][^.!?]*?\b` + regexp.QuoteMeta(keyword) + `\b[^.!?]*?[.!?])`)
	actual, _ := sentenceCache.LoadOrStore(keyword, re)
	return actual.(*regexp.Regexp)
}

// Citations returns up to domain.MaxTracesPerCategory sentences mentioning any
// of keywords. Sentences are unique by text; the first keyword to reach a
// sentence fixes its position in the result.
func Citations(cleaned string, keywords []string) []Citation {
	var out []Citation
	seen := make(map[string]bool)

	for _, kw := range keywords {
		for _, loc := range sentencePattern(kw).FindAllStringIndex(cleaned, -1) {
			sentence := strings.TrimSpace(cleaned[loc[0]:loc[1]])
			n := textutil.Len(sentence)
			if n <= domain.MinTraceSentenceRunes || n >= domain.MaxTraceSentenceRunes {
				continue
			}
			if seen[sentence] {
				continue
			}
			seen[sentence] = true
			out = append(out, Citation{Offset: textutil.CharOffset(cleaned, loc[0]), Sentence: sentence})
		}
	}

	if len(out) > domain.MaxTracesPerCategory {
		out = out[:domain.MaxTracesPerCategory]
	}
	return out
}

// Extract returns the formatted citations for keywords.
func Extract(cleaned string, keywords []string) []string {
	citations := Citations(cleaned, keywords)
	out := make([]string, len(citations))
	for i, c := range citations {
		out[i] = c.String()
	}
	return out
}

// SourceLog builds all three trace categories for a cleaned judgment.
func SourceLog(cleaned string) domain.SourceLog {
	return domain.SourceLog{
		domain.TraceBackground:  Extract(cleaned, BackgroundKeywords),
		domain.TraceObservation: Extract(cleaned, ObservationKeywords),
		domain.TraceDecision:    Extract(cleaned, DecisionKeywords),
	}
}
