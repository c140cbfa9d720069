package party

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"judgebrief/internal/domain"
	"judgebrief/internal/textutil"
)

var (
	authorityRe = regexp.MustCompile(`(?i)([A-Z][A-Za-z\s&\.,()-]{2,150}?)\s+Petitioner\s+Versus\s+([A-Z][A-Za-z\s&\.,()-]{2,150}?)\s+Respondents?`)
	othersRe    = regexp.MustCompile(`(?i)\s*(?:and|&)\s*(?:others?|ors?\.?)`)

	labeledColonRe  = regexp.MustCompile(`(?is)PETITIONER\s*:\s*(?:\d+\.\s*)?([A-Z][A-Za-z\s&\.,()-]+?)\s+Vs\.\s+RESPONDENT\s*:\s*([A-Z][A-Za-z\s&\.,()-]+)`)
	parentheticalRe = regexp.MustCompile(`\s*\(.*?\)`)

	companyRe           = regexp.MustCompile(`(?i)(M/s\s+[A-Za-z\s,\.]+?)(?:\s*--?\s*Petitioner|\s+Versus)`)
	companyRespondentRe = regexp.MustCompile(`(?i)Versus\s+([A-Z][A-Za-z\s,\.&]+?)(?:\s*--?\s*Respondent|\s+With)`)
	addressTailRe       = regexp.MustCompile(`\s*,.*$`)

	capsEllipsisRe = regexp.MustCompile(`(?i)([A-Z][A-Z\s]+[A-Z])\s+\.{3,}\s*PETITIONER\s+VERSUS\s+([A-Z][A-Z\s]+[A-Z])\s+\.{3,}\s*RESPONDENT`)

	honorificRe    = regexp.MustCompile(`(?i)((?:Smt\.|Shri|Sri|Dr\.|M/s|Mr\.|Mrs\.|Ms\.)\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
	versusMarkerRe = regexp.MustCompile(`(?i)(?:VERSUS|Versus|V/S|VS)`)
	governmentRe   = regexp.MustCompile(`(?i)(?:1\.\s*)?(?:The\s+)?((?:State|Union)\s+of\s+[A-Z][a-z]+)`)

	genericSplitRe = regexp.MustCompile(`([A-Z][A-Za-z\s\.]{5,80}?)\s+(?:VERSUS|versus|Versus|V/S|v/s|VS|vs\.?)\s+([A-Z][A-Za-z\s\.&]{5,80})`)
	dateTailRe     = regexp.MustCompile(`(?i)\s*on\s+\d+.*$`)
)

// governmentWindow bounds the search for a State/Union respondent after the versus marker.
const governmentWindow = 500

// mastheadNoise marks a generic split whose left side is a court masthead
// rather than a party line. Matching is case-sensitive.
var mastheadNoise = []string{
	"SUPREME COURT", "HIGH COURT", "SESSIONS", "COURT OF",
	"Approved", "Reporting", "YesNo", "Appearance",
}

var primaryStrategies = []strategy{
	{name: StrategyAuthority, resolve: resolveAuthority},
	{name: StrategyLabeledColon, resolve: resolveLabeledColon},
	{name: StrategyCompany, resolve: resolveCompany},
	{name: StrategyCapsEllipsis, resolve: resolveCapsEllipsis},
	{name: StrategyHonorificState, resolve: resolveHonorificState},
	{name: StrategyGenericSplit, resolve: resolveGenericSplit},
}

// resolveAuthority handles "<name> Petitioner Versus <name> Respondents",
// common in institutional and public-interest petitions.
func resolveAuthority(header string) (string, string, bool) {
	m := authorityRe.FindStringSubmatch(header)
	if m == nil {
		return "", "", false
	}
	p := othersRe.ReplaceAllString(strings.TrimSpace(m[1]), domain.OthersSuffix)
	r := othersRe.ReplaceAllString(strings.TrimSpace(m[2]), domain.OthersSuffix)
	return p, r, true
}

// resolveLabeledColon handles "PETITIONER: <name> Vs. RESPONDENT: <name>".
func resolveLabeledColon(header string) (string, string, bool) {
	m := labeledColonRe.FindStringSubmatch(header)
	if m == nil {
		return "", "", false
	}
	p := parentheticalRe.ReplaceAllString(strings.TrimSpace(m[1]), "")
	r := parentheticalRe.ReplaceAllString(strings.TrimSpace(m[2]), "")
	return p, r, true
}

// resolveCompany handles "M/s <name>, <address> -- Petitioner Versus <name> -- Respondent".
// The respondent is searched for after the petitioner match; without one the
// strategy does not match.
func resolveCompany(header string) (string, string, bool) {
	loc := companyRe.FindStringSubmatchIndex(header)
	if loc == nil {
		return "", "", false
	}
	p := addressTailRe.ReplaceAllString(strings.TrimSpace(header[loc[2]:loc[3]]), "")

	rm := companyRespondentRe.FindStringSubmatch(header[loc[1]:])
	if rm == nil {
		return "", "", false
	}
	r := addressTailRe.ReplaceAllString(strings.TrimSpace(rm[1]), "")
	return p, r, true
}

// resolveCapsEllipsis handles "NAME ... PETITIONER VERSUS NAME ... RESPONDENT".
func resolveCapsEllipsis(header string) (string, string, bool) {
	m := capsEllipsisRe.FindStringSubmatch(header)
	if m == nil {
		return "", "", false
	}
	return titleCase(m[1]), titleCase(m[2]), true
}

// resolveHonorificState handles an honorific-led petitioner against a State
// or Union respondent named shortly after the versus marker.
func resolveHonorificState(header string) (string, string, bool) {
	loc := honorificRe.FindStringSubmatchIndex(header)
	if loc == nil {
		return "", "", false
	}
	p := strings.TrimSpace(header[loc[2]:loc[3]])

	rest := header[loc[1]:]
	vs := versusMarkerRe.FindStringIndex(rest)
	if vs == nil {
		return "", "", false
	}
	after := textutil.Head(rest[vs[1]:], governmentWindow)
	gm := governmentRe.FindStringSubmatch(after)
	if gm == nil {
		return "", "", false
	}
	return p, gm[1], true
}

// resolveGenericSplit handles any "<text> VERSUS <text>" near the top of the
// document, discarding masthead matches.
func resolveGenericSplit(header string) (string, string, bool) {
	m := genericSplitRe.FindStringSubmatch(textutil.Head(header, GenericSplitWindow))
	if m == nil {
		return "", "", false
	}
	p := dateTailRe.ReplaceAllString(strings.TrimSpace(m[1]), "")
	r := dateTailRe.ReplaceAllString(strings.TrimSpace(m[2]), "")
	for _, noise := range mastheadNoise {
		if strings.Contains(p, noise) {
			return "", "", false
		}
	}
	return p, r, true
}

// titleCase upper-cases the first letter of each word and lower-cases the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
