package party

import (
	"regexp"
	"strings"

	"judgebrief/internal/domain"
	"judgebrief/internal/textutil"
)

// anchorBlockRe captures the text between a case-number-introducing token and
// a versus marker, then the text up to the next ORDER/JUDGMENT/CORAM-style
// line. The closing line is consumed rather than looked ahead at, which
// leaves both captured groups unchanged.
var anchorBlockRe = regexp.MustCompile(`(?i)(?:No\.?|Petition|Appeal|SLP|CRL\.A)(?:[\s\S]+?\d{4})?([\s\S]+?)\s+(?:VERSUS|V/S|VS\.?)\s+([\s\S]+?)\n\s*(?:ORDER|JUDGMENT|BEFORE|JUSTICE|CORAM|DATED|PRESENT)`)

// versusLineRes are the standalone versus lines tried by the positional split, in order.
var versusLineRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\n\s*VERSUS\s*\n`),
	regexp.MustCompile(`(?i)\n\s*V/S\s*\n`),
	regexp.MustCompile(`(?i)\n\s*VS\.?\s*\n`),
}

const positionalLines = 4

var fallbackStrategies = []strategy{
	{name: StrategyAnchorBlock, resolve: resolveAnchorBlock},
	{name: StrategyPositional, resolve: resolvePositional},
}

func resolveAnchorBlock(header string) (string, string, bool) {
	m := anchorBlockRe.FindStringSubmatch(header)
	if m == nil {
		return "", "", false
	}
	p := NormalizeName(m[1])
	r := NormalizeName(m[2])
	if strings.Contains(p, "Court") || textutil.Len(p) <= 2 {
		return "", "", false
	}
	return p, r, true
}

// resolvePositional splits the header at the first standalone versus line and
// normalizes the last lines before it and the first lines after it. Each
// marker is tried in turn until one yields a usable petitioner.
func resolvePositional(header string) (string, string, bool) {
	for _, re := range versusLineRes {
		loc := re.FindStringIndex(header)
		if loc == nil {
			continue
		}
		before := substantiveLines(header[:loc[0]])
		if len(before) > positionalLines {
			before = before[len(before)-positionalLines:]
		}
		after := substantiveLines(header[loc[1]:])
		if len(after) > positionalLines {
			after = after[:positionalLines]
		}

		p := NormalizeName(strings.Join(before, "\n"))
		r := NormalizeName(strings.Join(after, "\n"))
		if textutil.Len(p) > 3 {
			return p, r, true
		}
	}
	return "", "", false
}

// substantiveLines returns the lines of block whose trimmed length exceeds two characters.
func substantiveLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(block), "\n") {
		if textutil.Len(strings.TrimSpace(line)) > 2 {
			lines = append(lines, line)
		}
	}
	return lines
}

// addressMarkers signal where a party's name ends and personal or address
// details begin. Checked in order against the lower-cased line.
var addressMarkers = []string{
	"s/o", "d/o", "w/o", "aged", "r/o", "resident",
	"village", "dist", "pin", "po-", "ps-",
	"advocate", "counsel", "through", "represented by",
}

var (
	roleLabelRe     = regexp.MustCompile(`(?i)\.{3,}|\b\d+\.|\b(Petitioner|Respondent|Appellant|Accused|Applicant)\b.*`)
	trailingPunctRe = regexp.MustCompile(`[,\.\-]+$`)
)

const maxNameLines = 2

// NormalizeName extracts a clean party name from a multi-line block that may
// carry addresses, role labels and numbering. The first line holding an
// address marker ends the scan. Returns domain.PartyDetailsNotFound when no
// usable line is found.
func NormalizeName(block string) string {
	var names []string

scan:
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if textutil.Len(line) < 3 {
			continue
		}

		lower := strings.ToLower(line)
		for _, marker := range addressMarkers {
			if !strings.Contains(lower, marker) {
				continue
			}
			// The split is on the line as written, so a marker present only
			// in another case leaves the whole line as the name.
			name, _, _ := strings.Cut(line, marker)
			name = trailingPunctRe.ReplaceAllString(strings.TrimSpace(name), "")
			if textutil.Len(name) > 3 {
				names = append(names, name)
			}
			break scan
		}

		line = strings.TrimSpace(roleLabelRe.ReplaceAllString(line, ""))
		if textutil.Len(line) > 2 {
			names = append(names, line)
			if len(names) >= maxNameLines {
				break
			}
		}
	}

	if len(names) == 0 {
		return domain.PartyDetailsNotFound
	}
	joined := names
	if len(joined) > maxNameLines {
		joined = joined[:maxNameLines]
	}
	result := strings.Join(joined, " ")
	if len(names) > maxNameLines {
		result += domain.OthersSuffix
	}
	return result
}
