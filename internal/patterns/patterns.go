// Package patterns is the static recognition library for judgment headers.
//
// Every collection is ordered and evaluation is first-match-wins, so the
// position of a rule is part of its meaning. The slices are built once at
// package init and callers receive copies.
package patterns

import (
	"regexp"

	"judgebrief/internal/domain"
)

// Rule is one entry of an ordered recognition cascade.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

// JurisdictionRule maps a jurisdiction label to the pattern that selects it.
type JurisdictionRule struct {
	Label   domain.Jurisdiction
	Pattern *regexp.Regexp
}

func ci(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + expr)
}

func rule(name, expr string) Rule {
	return Rule{Name: name, Pattern: ci(expr)}
}

var courtRules = []Rule{
	// Supreme Court
	rule("supreme_court_in_the", `IN THE (SUPREME COURT OF INDIA)`),
	rule("supreme_court", `(SUPREME COURT OF INDIA)`),
	rule("supreme_court_before_the", `BEFORE THE (SUPREME COURT OF INDIA)`),

	// High Courts, generic shapes
	rule("high_court_in_the_at", `IN THE (HIGH COURT OF [A-Z\s]+ AT [A-Z\s]+)`),
	rule("high_court_in_the", `IN THE (HIGH COURT OF [A-Z\s]+)`),
	rule("high_court_of_at", `(HIGH COURT OF [A-Z\s]+ AT [A-Z\s]+)`),
	rule("high_court_of", `(HIGH COURT OF [A-Z\s]+)`),
	rule("high_court_before_the_at", `BEFORE THE (HIGH COURT OF [A-Z\s]+ AT [A-Z\s]+)`),

	// Named High Courts
	rule("delhi_high_court", `(DELHI HIGH COURT)`),
	rule("bombay_high_court", `(BOMBAY HIGH COURT)`),
	rule("calcutta_high_court", `(CALCUTTA HIGH COURT)`),
	rule("madras_high_court", `(MADRAS HIGH COURT)`),
	rule("karnataka_high_court", `(KARNATAKA HIGH COURT)`),
	rule("kerala_high_court", `(KERALA HIGH COURT)`),
	rule("gujarat_high_court", `(GUJARAT HIGH COURT)`),
	rule("allahabad_high_court", `(ALLAHABAD HIGH COURT)`),
	rule("punjab_haryana_high_court", `(PUNJAB AND HARYANA HIGH COURT)`),
	rule("rajasthan_high_court", `(RAJASTHAN HIGH COURT)`),
	rule("madhya_pradesh_high_court", `(MADHYA PRADESH HIGH COURT)`),
	rule("andhra_pradesh_high_court", `(ANDHRA PRADESH HIGH COURT)`),
	rule("telangana_high_court", `(TELANGANA HIGH COURT)`),
	rule("orissa_high_court", `(ORISSA HIGH COURT)`),
	rule("patna_high_court", `(PATNA HIGH COURT)`),
	rule("chhattisgarh_high_court", `(CHHATTISGARH HIGH COURT)`),
	rule("jharkhand_high_court", `(JHARKHAND HIGH COURT)`),
	rule("uttarakhand_high_court", `(UTTARAKHAND HIGH COURT)`),
	rule("himachal_pradesh_high_court", `(HIMACHAL PRADESH HIGH COURT)`),
	rule("jammu_kashmir_high_court", `(JAMMU AND KASHMIR HIGH COURT)`),
	rule("gauhati_high_court", `(GAUHATI HIGH COURT)`),
	rule("guwahati_high_court", `(GUWAHATI HIGH COURT)`),

	// District and sessions courts
	rule("district_court_of", `(DISTRICT COURT OF [A-Z\s]+)`),
	rule("district_court", `(DISTRICT COURT[,\s]+[A-Z\s]+)`),
	rule("district_judge", `IN THE COURT OF (DISTRICT JUDGE[,\s]+[A-Z\s]+)`),
	rule("district_sessions_court", `(DISTRICT & SESSIONS COURT[,\s]+[A-Z\s]+)`),
	rule("sessions_court", `(SESSIONS COURT[,\s]+[A-Z\s]+)`),
	rule("sessions_court_at", `(SESSIONS COURT AT [A-Z\s]+)`),
	rule("sessions_judge", `(COURT OF SESSIONS JUDGE[,\s]+[A-Z\s]+)`),
	rule("additional_sessions_judge", `(ADDITIONAL SESSIONS JUDGE[,\s]+[A-Z\s]+)`),

	// Special courts
	rule("special_court", `(SPECIAL COURT FOR [A-Z\s]+)`),
	rule("cbi_court", `(CBI COURT[,\s]+[A-Z\s]+)`),
	rule("family_court", `(FAMILY COURT[,\s]+[A-Z\s]+)`),

	// Tribunals
	rule("national_green_tribunal", `(NATIONAL GREEN TRIBUNAL)`),
	rule("armed_forces_tribunal", `(ARMED FORCES TRIBUNAL)`),
	rule("central_administrative_tribunal", `(CENTRAL ADMINISTRATIVE TRIBUNAL)`),
}

// courtFallback is the looser shape tried after every court rule misses.
// The court is its first capture group.
var courtFallback = ci(`(HIGH COURT OF [A-Z\s]+ AT [A-Z\s]+|SESSIONS COURT AT [A-Z\s]+)`)

var (
	courtPrefixRe    = regexp.MustCompile(`^(?:IN THE|BEFORE THE|THE)\s+`)
	courtHonorificRe = regexp.MustCompile(`HON'?BLE\s+`)
)

var caseNumberRules = []Rule{
	// Writ petitions
	rule("writ_petition_abbrev", `W\.?\s*P\.?\s*\(?(C|CR|Civil|Criminal|Crl\.?)\)?\s*(?:D\s+)?No\.?\s*\d+\s*(?:/|of)\s*\d{4}`),
	rule("wp_c_slash", `WP\s*\(C\)\s*No\.?\s*\d+/\d{4}`),
	rule("writ_petition_slash", `WRIT PETITION\s*\((?:CIVIL|CRIMINAL)\)\s*NO\.?\s*\d+/\d{4}`),
	rule("writ_petition_misc_single", `Writ Petition Misc\.\s+Single No\.\s*\d+\s+of\s+\d{4}`),
	rule("writ_petition_civil_of", `WRIT\s+PETITION\s+\(CIVIL\)\s+NO\.\d+\s+OF\s+\d{4}`),
	rule("writ_petition_criminal_diary", `WRIT\s+PETITION\s+\(CRIMINAL\)\s+D\s+NO\.\d+\s+OF\s+\d{4}`),

	// Appeals
	rule("appeal_civil_criminal", `(?:Civil|Criminal)\s+Appeal\s*(?:No\.?)?\s*\d+\s*(?:/|of)\s*\d{4}`),
	rule("criminal_appeal_against_conviction", `R/CRIMINAL APPEAL\s*\(AGAINST CONVICTION\)\s*NO\.\s*\d+\s+of\s+\d{4}`),
	rule("criminal_appeal_no", `Criminal Appeal No\.\s*\d+\s+of\s+\d{4}`),
	rule("writ_petition_spaced", `\bWRIT\s+PETITION\s*\(\s*(?:CIVIL|CRIMINAL)\s*\)\s*NO\.?\s*\d+\s*OF\s*\d{4}\b`),
	rule("writ_petition_spaced_diary", `\bWRIT\s+PETITION\s*\(\s*(?:CIVIL|CRIMINAL)\s*\)\s*D\s*NO\.?\s*\d+\s*OF\s*\d{4}\b`),
	rule("appeal_no_of", `\b(?:CIVIL|CRIMINAL)\s+APPEAL\s+NO\.?\s*\d+\s*OF\s*\d{4}\b`),
	rule("appeal_nos_range", `\b(?:CIVIL|CRIMINAL)\s+APPEAL\s+NOS?\.?\s*\d+(?:\s*[-–]\s*\d+)?\s*OF\s*\d{2}\s*\d{2}\b`),
	rule("appeal_crl", `\bAPPEAL\s*(?:\(\s*CRL\.?\s*\))?\s*\d+\s*of\s*\d{4}\b`),

	// Special leave
	rule("slp", `SLP\s*\(?(?:Civil|Crl\.?|Criminal|C|Crl)\)?\s*No\.?\s*\d+\s*(?:/|of)\s*\d{4}`),
	rule("special_leave_petition", `SPECIAL LEAVE PETITION\s*\((?:CIVIL|CRIMINAL)\)\s*NO\.?\s*\d+/\d{4}`),

	// Generic case numbers
	rule("case_no", `Case No\.\s*\d+\s+of\s+\d{4}`),
	rule("abbreviated_case_type", `\b(?:CRLA|CRA|CWP|RSA|FAO|LPA|WA|CMP|COCP|MAT|WPC)\s*No\.?\s*\d+/\d{4}`),

	// Neutral citations and CNR numbers
	rule("neutral_citation", `\b\d{4}\s+IN[SHD]C\s+\d+\b`),
	rule("cnr", `\b[A-Z0-9]{16}\b`),

	// Catch-all, always last
	rule("generic_no_of_year", `No\.?\s*\d+\s*(?:of|/)\s*\d{4}`),
}

// jurisdictionRules excludes the General label, which is the default branch
// taken when none of these match.
var jurisdictionRules = []JurisdictionRule{
	{Label: domain.JurisdictionWrit, Pattern: ci(`article\s+(?:226|32|227|136|142|141)|writ\s+petition|constitutional\s+remedy|writ\s+of\s+(?:habeas corpus|mandamus|prohibition|certiorari|quo warranto)`)},
	{Label: domain.JurisdictionAppellate, Pattern: ci(`civil\s+appeal|criminal\s+appeal|special\s+leave\s+petition|appellate\s+jurisdiction|regular\s+(?:first|second)\s+appeal`)},
	{Label: domain.JurisdictionOriginal, Pattern: ci(`original\s+suit|civil\s+original|original\s+side|original\s+jurisdiction`)},
	{Label: domain.JurisdictionBail, Pattern: ci(`bail\s+application|anticipatory\s+bail|section\s+(?:438|439|437|436|167)|regular\s+bail`)},
	{Label: domain.JurisdictionRevisional, Pattern: ci(`civil\s+revision|criminal\s+revision|revisional\s+jurisdiction|revision\s+petition`)},
	{Label: domain.JurisdictionCriminalOriginal, Pattern: ci(`criminal\s+complaint|complaint\s+case|section\s+(?:138|156|200|340|482)`)},
	{Label: domain.JurisdictionContempt, Pattern: ci(`contempt\s+of\s+court|criminal\s+contempt|civil\s+contempt`)},
	{Label: domain.JurisdictionExecution, Pattern: ci(`execution\s+petition|execution\s+proceedings|decree\s+execution`)},
}

// Courts returns the ordered court recognition rules.
func Courts() []Rule {
	out := make([]Rule, len(courtRules))
	copy(out, courtRules)
	return out
}

// CourtFallback returns the flexible court shape used when every court rule misses.
func CourtFallback() *regexp.Regexp {
	return courtFallback
}

// CleanCourtName strips leading articles and honorifics from an uppercased court match.
func CleanCourtName(upper string) string {
	name := courtPrefixRe.ReplaceAllString(upper, "")
	return courtHonorificRe.ReplaceAllString(name, "")
}

// CaseNumbers returns the ordered case-number rules. The generic catch-all is last.
func CaseNumbers() []Rule {
	out := make([]Rule, len(caseNumberRules))
	copy(out, caseNumberRules)
	return out
}

// Jurisdictions returns the ordered jurisdiction rules, without the default label.
func Jurisdictions() []JurisdictionRule {
	out := make([]JurisdictionRule, len(jurisdictionRules))
	copy(out, jurisdictionRules)
	return out
}
