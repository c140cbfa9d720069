// Package party resolves petitioner and respondent names from the header of a
// cleaned judgment.
//
// Resolution is a cascade. Six structural strategies run over a wide,
// whitespace-collapsed header; the first to match wins. When all six miss,
// two line-oriented fallbacks run over a narrower header that keeps its line
// breaks. Names recovered by the fallbacks pass through NormalizeName.
package party

import (
	"regexp"
	"strings"

	"judgebrief/internal/domain"
	"judgebrief/internal/textutil"
)

const (
	// PrimaryWindow bounds the header searched by the structural strategies.
	PrimaryWindow = 30000
	// FallbackWindow bounds the header searched by the line-oriented fallbacks.
	FallbackWindow = 6000
	// GenericSplitWindow bounds the generic versus split.
	GenericSplitWindow = 5000
)

// Strategy names reported in a Resolution.
const (
	StrategyAuthority      = "authority"
	StrategyLabeledColon   = "labeled_colon"
	StrategyCompany        = "company"
	StrategyCapsEllipsis   = "caps_ellipsis"
	StrategyHonorificState = "honorific_state"
	StrategyGenericSplit   = "generic_split"
	StrategyAnchorBlock    = "anchor_block"
	StrategyPositional     = "positional_split"
	StrategyNone           = "none"
)

// Resolution is the outcome of running the cascade.
type Resolution struct {
	Petitioner string
	Respondent string
	Strategy   string
}

// Found reports whether any strategy matched.
func (r Resolution) Found() bool {
	return r.Strategy != StrategyNone
}

// String renders the resolution as "A\n-vs-\nB", or domain.PartiesNotDetected.
func (r Resolution) String() string {
	if !r.Found() {
		return domain.PartiesNotDetected
	}
	return domain.FormatParties(r.Petitioner, r.Respondent)
}

// strategy tries to resolve parties from a prepared header.
type strategy struct {
	name    string
	resolve func(header string) (petitioner, respondent string, ok bool)
}

var (
	whitespaceRunRe = regexp.MustCompile(`\s+`)
	approvedRe      = regexp.MustCompile(`(?i)Approved\s+for\s+Reporting\s+(?:Yes|No|YesNo)`)
	withMarkerRe    = regexp.MustCompile(`(?i)\n\s*WITH\s*\n`)
)

// Resolve returns "<petitioner>\n-vs-\n<respondent>" or domain.PartiesNotDetected.
func Resolve(cleaned string) string {
	return ResolveDetailed(cleaned).String()
}

// ResolveDetailed runs the cascade and reports which strategy matched.
func ResolveDetailed(cleaned string) Resolution {
	if cleaned != "" {
		header := primaryHeader(cleaned)
		for _, s := range primaryStrategies {
			if p, r, ok := s.resolve(header); ok {
				return Resolution{Petitioner: p, Respondent: r, Strategy: s.name}
			}
		}
	}

	header := fallbackHeader(cleaned)
	for _, s := range fallbackStrategies {
		if p, r, ok := s.resolve(header); ok {
			return Resolution{Petitioner: p, Respondent: r, Strategy: s.name}
		}
	}
	return Resolution{Strategy: StrategyNone}
}

// primaryHeader collapses whitespace, takes the first PrimaryWindow characters
// and drops "Approved for Reporting" masthead noise.
func primaryHeader(text string) string {
	collapsed := whitespaceRunRe.ReplaceAllString(text, " ")
	return approvedRe.ReplaceAllString(textutil.Head(collapsed, PrimaryWindow), "")
}

// fallbackHeader keeps line structure, removes carriage returns and cuts at
// the first standalone WITH line, which introduces tagged-on petitions.
func fallbackHeader(text string) string {
	header := strings.ReplaceAll(textutil.Head(text, FallbackWindow), "\r", "")
	if loc := withMarkerRe.FindStringIndex(header); loc != nil {
		header = header[:loc[0]]
	}
	return header
}
