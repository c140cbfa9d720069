package party_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"judgebrief/internal/domain"
	"judgebrief/internal/party"
)

func TestResolve_AuthorityFormat(t *testing.T) {
	res := party.ResolveDetailed("ABC LTD Petitioner Versus XYZ CORP Respondents")

	assert.Equal(t, party.StrategyAuthority, res.Strategy)
	assert.Equal(t, "ABC LTD\n-vs-\nXYZ CORP", res.String())
	assert.Equal(t, "ABC LTD\n-vs-\nXYZ CORP", party.Resolve("ABC LTD Petitioner Versus XYZ CORP Respondents"))
}

func TestResolve_AuthorityFormat_OthersSuffix(t *testing.T) {
	res := party.ResolveDetailed("Ram Kumar and others Petitioner Versus State of Punjab and ors Respondents")

	assert.Equal(t, party.StrategyAuthority, res.Strategy)
	assert.Equal(t, "Ram Kumar & Ors", res.Petitioner)
	assert.Equal(t, "State of Punjab & Ors", res.Respondent)
}

func TestResolve_AuthorityFormat_AcrossLines(t *testing.T) {
	text := "Delhi Jal Board\nPetitioner\n\nVersus\n\nNational Campaign for Dignity\nRespondents"
	res := party.ResolveDetailed(text)

	assert.Equal(t, party.StrategyAuthority, res.Strategy)
	assert.Equal(t, "Delhi Jal Board", res.Petitioner)
	assert.Equal(t, "National Campaign for Dignity", res.Respondent)
}

func TestResolve_LabeledColon(t *testing.T) {
	res := party.ResolveDetailed("PETITIONER: Ramesh Chand (deceased) Vs. RESPONDENT: Union of India")

	assert.Equal(t, party.StrategyLabeledColon, res.Strategy)
	assert.Equal(t, "Ramesh Chand", res.Petitioner)
	assert.Equal(t, "Union of India", res.Respondent)
}

func TestResolve_Company(t *testing.T) {
	res := party.ResolveDetailed("M/s Sharma Traders, Main Road -- Petitioner Versus Punjab National Bank With W.P. 12")

	assert.Equal(t, party.StrategyCompany, res.Strategy)
	assert.Equal(t, "M/s Sharma Traders", res.Petitioner)
	assert.Equal(t, "Punjab National Bank", res.Respondent)
}

func TestResolve_CapsEllipsis(t *testing.T) {
	res := party.ResolveDetailed("RAMESH KUMAR ...PETITIONER VERSUS STATE OF BIHAR ...RESPONDENT")

	assert.Equal(t, party.StrategyCapsEllipsis, res.Strategy)
	assert.Equal(t, "Ramesh Kumar", res.Petitioner)
	assert.Equal(t, "State Of Bihar", res.Respondent)
}

func TestResolve_HonorificState(t *testing.T) {
	res := party.ResolveDetailed("Smt. Kamla Devi, widow, VERSUS State of Rajasthan")

	assert.Equal(t, party.StrategyHonorificState, res.Strategy)
	assert.Equal(t, "Smt. Kamla Devi", res.Petitioner)
	assert.Equal(t, "State of Rajasthan", res.Respondent)
}

func TestResolve_GenericSplit(t *testing.T) {
	res := party.ResolveDetailed("Ramesh Kumar Sharma Versus Union Bank of India, decided")

	assert.Equal(t, party.StrategyGenericSplit, res.Strategy)
	assert.Equal(t, "Ramesh Kumar Sharma", res.Petitioner)
	assert.Equal(t, "Union Bank of India", res.Respondent)
}

func TestResolve_GenericSplit_RejectsMasthead(t *testing.T) {
	res := party.ResolveDetailed("SUPREME COURT REPORTS Versus Digest Volume")

	assert.False(t, res.Found())
	assert.Equal(t, domain.PartiesNotDetected, res.String())
}

func TestResolve_AnchorBlockFallback(t *testing.T) {
	text := "Criminal Appeal No. 45 of 2019\n" +
		"Rajesh Kumar s/o Mohan Lal\n" +
		"r/o Village Rampur ...Appellant(s)\n" +
		"VERSUS\n" +
		"State of Haryana ...Respondent\n" +
		"JUDGMENT\n" +
		"The appeal is allowed."

	res := party.ResolveDetailed(text)

	assert.Equal(t, party.StrategyAnchorBlock, res.Strategy)
	assert.Equal(t, "Rajesh Kumar", res.Petitioner)
	assert.Equal(t, "State of Haryana", res.Respondent)
}

func TestResolve_PositionalFallback(t *testing.T) {
	text := "Rajesh Kumar (since deceased)\n" +
		"VERSUS\n" +
		"State of Haryana\n" +
		"through its Secretary\n" +
		"JUDGMENT\n" +
		"Heard learned counsel."

	res := party.ResolveDetailed(text)

	assert.Equal(t, party.StrategyPositional, res.Strategy)
	assert.Equal(t, "Rajesh Kumar (since deceased)", res.Petitioner)
	assert.Equal(t, "State of Haryana", res.Respondent)
}

func TestResolve_FallbackStopsAtWithLine(t *testing.T) {
	text := "Some header line here\nWITH\nRajesh Kumar (since deceased)\nVERSUS\nState of Haryana"

	assert.Equal(t, domain.PartiesNotDetected, party.Resolve(text))
}

func TestResolve_NotDetected(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t  "},
		{"prose_without_marker", "The matter was heard at length and reserved for orders."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, domain.PartiesNotDetected, party.Resolve(tt.text))
			assert.Equal(t, party.StrategyNone, party.ResolveDetailed(tt.text).Strategy)
		})
	}
}

func TestResolve_OutputShape(t *testing.T) {
	inputs := []string{
		"ABC LTD Petitioner Versus XYZ CORP Respondents",
		"Smt. Kamla Devi, widow, VERSUS State of Rajasthan",
		"nothing to see",
		"VERSUS",
	}
	for _, in := range inputs {
		out := party.Resolve(in)
		if out == domain.PartiesNotDetected {
			continue
		}
		assert.Contains(t, out, domain.PartySeparator, "input %q", in)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  string
	}{
		{
			name:  "address_marker_ends_name",
			block: "Ramesh Kumar s/o Suresh Kumar, r/o Delhi",
			want:  "Ramesh Kumar",
		},
		{
			name:  "marker_line_stops_scan",
			block: "Sunita Devi\nw/o Late Shri Ram\nAnita Devi",
			want:  "Sunita Devi",
		},
		{
			name:  "role_labels_and_numbering_stripped",
			block: "1. Sunita Devi ...Petitioner\n2. Anita Devi\n3. Kavita Devi",
			want:  "Sunita Devi Anita Devi",
		},
		{
			name:  "trailing_punctuation_trimmed",
			block: "Mohan Lal, aged about 45 years",
			want:  "Mohan Lal",
		},
		{
			name:  "short_lines_skipped",
			block: "\n  \nab\nKrishna Murthy",
			want:  "Krishna Murthy",
		},
		{
			name:  "empty_block",
			block: "",
			want:  domain.PartyDetailsNotFound,
		},
		{
			name:  "only_labels",
			block: "...Petitioner\nRespondent",
			want:  domain.PartyDetailsNotFound,
		},
		{
			name:  "marker_with_short_prefix",
			block: "Ram s/o Shyam Lal",
			want:  domain.PartyDetailsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, party.NormalizeName(tt.block))
		})
	}
}
