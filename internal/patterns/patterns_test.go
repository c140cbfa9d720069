package patterns_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"judgebrief/internal/domain"
	"judgebrief/internal/patterns"
)

func TestCourts_NamedHighCourts(t *testing.T) {
	named := 0
	for _, r := range patterns.Courts() {
		if strings.HasSuffix(r.Name, "_high_court") {
			named++
		}
	}
	assert.Equal(t, 22, named)
}

func TestCourts_SupremeCourtFirst(t *testing.T) {
	rules := patterns.Courts()
	require.NotEmpty(t, rules)
	assert.Equal(t, "supreme_court_in_the", rules[0].Name)
}

func TestCaseNumbers_CatchAllLast(t *testing.T) {
	rules := patterns.CaseNumbers()
	require.NotEmpty(t, rules)
	assert.Equal(t, "generic_no_of_year", rules[len(rules)-1].Name)
}

func TestRuleNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range append(patterns.Courts(), patterns.CaseNumbers()...) {
		assert.False(t, seen[r.Name], "duplicate rule %s", r.Name)
		seen[r.Name] = true
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	courts := patterns.Courts()
	courts[0] = patterns.Rule{Name: "mutated"}
	assert.Equal(t, "supreme_court_in_the", patterns.Courts()[0].Name)

	cases := patterns.CaseNumbers()
	cases[0] = patterns.Rule{Name: "mutated"}
	assert.Equal(t, "writ_petition_abbrev", patterns.CaseNumbers()[0].Name)
}

func TestJurisdictions_Order(t *testing.T) {
	want := []domain.Jurisdiction{
		domain.JurisdictionWrit,
		domain.JurisdictionAppellate,
		domain.JurisdictionOriginal,
		domain.JurisdictionBail,
		domain.JurisdictionRevisional,
		domain.JurisdictionCriminalOriginal,
		domain.JurisdictionContempt,
		domain.JurisdictionExecution,
	}

	rules := patterns.Jurisdictions()
	require.Len(t, rules, len(want))
	for i, r := range rules {
		assert.Equal(t, want[i], r.Label)
	}
}

func TestCourtFallback(t *testing.T) {
	m := patterns.CourtFallback().FindStringSubmatch("judgment of the sessions court at pune, dated")
	require.NotNil(t, m)
	assert.Equal(t, "sessions court at pune", m[1])
}

func TestCleanCourtName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"IN THE SUPREME COURT OF INDIA", "SUPREME COURT OF INDIA"},
		{"BEFORE THE HON'BLE HIGH COURT", "HIGH COURT"},
		{"THE HONBLE DISTRICT COURT", "DISTRICT COURT"},
		{"DELHI HIGH COURT", "DELHI HIGH COURT"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, patterns.CleanCourtName(tt.in))
		})
	}
}
