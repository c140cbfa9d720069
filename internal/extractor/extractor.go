// Package extractor resolves court, case number and jurisdiction from the
// header window of a cleaned judgment.
package extractor

import (
	"strings"

	"judgebrief/internal/domain"
	"judgebrief/internal/patterns"
	"judgebrief/internal/textutil"
)

// HeaderWindow is the number of leading characters consulted for header fields.
const HeaderWindow = 5000

// Fields holds the header metadata of one judgment.
type Fields struct {
	Court        string
	CaseNo       string
	Jurisdiction domain.Jurisdiction
}

// Extract resolves all header fields from cleaned text.
func Extract(cleaned string) Fields {
	header := Header(cleaned)
	return Fields{
		Court:        court(header),
		CaseNo:       caseNumber(header),
		Jurisdiction: jurisdiction(header),
	}
}

// Header returns the header window: the first HeaderWindow characters with
// carriage returns removed.
func Header(cleaned string) string {
	return strings.ReplaceAll(textutil.Head(cleaned, HeaderWindow), "\r", "")
}

// Court returns the court named in the header, or domain.CourtNotDetected.
func Court(cleaned string) string {
	return court(Header(cleaned))
}

// CaseNumber returns the first case number in the header verbatim, or domain.CaseNumberNotFound.
func CaseNumber(cleaned string) string {
	return caseNumber(Header(cleaned))
}

// Jurisdiction classifies the header, defaulting to domain.JurisdictionGeneral.
func Jurisdiction(cleaned string) domain.Jurisdiction {
	return jurisdiction(Header(cleaned))
}

func court(header string) string {
	for _, r := range patterns.Courts() {
		if m := r.Pattern.FindString(header); m != "" {
			return strings.TrimSpace(patterns.CleanCourtName(strings.ToUpper(m)))
		}
	}
	if m := patterns.CourtFallback().FindStringSubmatch(header); m != nil {
		return strings.TrimSpace(strings.ToUpper(m[1]))
	}
	return domain.CourtNotDetected
}

func caseNumber(header string) string {
	for _, r := range patterns.CaseNumbers() {
		if m := r.Pattern.FindString(header); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return domain.CaseNumberNotFound
}

func jurisdiction(header string) domain.Jurisdiction {
	for _, r := range patterns.Jurisdictions() {
		if r.Pattern.MatchString(header) {
			return r.Label
		}
	}
	return domain.JurisdictionGeneral
}
