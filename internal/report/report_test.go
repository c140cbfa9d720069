package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"judgebrief/internal/domain"
	"judgebrief/internal/report"
)

func sampleBrief() *domain.Brief {
	return &domain.Brief{
		Court:        "SUPREME COURT OF INDIA",
		CaseNo:       "Civil Appeal No. 45 of 2019",
		Jurisdiction: domain.JurisdictionAppellate,
		Parties:      domain.FormatParties("ABC LTD", "XYZ CORP"),
		Summaries: domain.Summaries{
			ExecSummary:  "The appeal concerns a tax demand.",
			Background:   "The assessee was served a notice.",
			Issues:       "Whether the notice was time barred.",
			Observations: "The court found the notice stale.",
			Decision:     "The appeal is allowed.",
		},
		SourceLog: domain.SourceLog{
			domain.TraceDecision: {"[Ref ID: 120] The appeal is allowed with costs."},
		},
		SummaryModel: "lead-extractive",
	}
}

func TestRenderMarkdown(t *testing.T) {
	md := report.RenderMarkdown(sampleBrief())

	assert.True(t, strings.HasPrefix(md, "# Case Brief\n"))
	assert.Contains(t, md, "| Court | SUPREME COURT OF INDIA |")
	assert.Contains(t, md, "| Petitioner | ABC LTD |")
	assert.Contains(t, md, "| Respondent | XYZ CORP |")
	assert.Contains(t, md, "## Executive Summary\n\nThe appeal concerns a tax demand.\n")
	assert.Contains(t, md, "### Final Decision Trace\n\n1. \\[Ref ID: 120\\] The appeal is allowed with costs.\n")
	assert.Contains(t, md, "### Case Background Trace\n\n_No citations found._\n")
	assert.Contains(t, md, "Summaries generated by lead-extractive.")

	order := []string{"## Executive Summary", "## Background", "## Issues", "## Court Observations", "## Decision", "## Source Log"}
	last := -1
	for _, heading := range order {
		idx := strings.Index(md, heading)
		require.Greater(t, idx, last, heading)
		last = idx
	}
}

func TestRenderMarkdown_PartiesNotDetected(t *testing.T) {
	b := sampleBrief()
	b.Parties = domain.PartiesNotDetected

	md := report.RenderMarkdown(b)

	assert.Contains(t, md, "| Parties | Parties Not Detected |")
	assert.NotContains(t, md, "| Petitioner |")
}

func TestRenderMarkdown_EscapesJudgmentText(t *testing.T) {
	b := sampleBrief()
	b.Court = "COURT | OF <b>X</b>"
	b.Summaries.Issues = "Whether *interest* is payable under s. 34_A."

	md := report.RenderMarkdown(b)

	assert.Contains(t, md, `| Court | COURT \| OF \<b\>X\</b\> |`)
	assert.Contains(t, md, `Whether \*interest\* is payable under s. 34\_A.`)
}

func TestRenderHTML(t *testing.T) {
	out, err := report.RenderHTML(sampleBrief())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, "<title>Case Brief: Civil Appeal No. 45 of 2019</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>SUPREME COURT OF INDIA</td>")
	assert.Contains(t, out, "<h2>Executive Summary</h2>")
	assert.Contains(t, out, "[Ref ID: 120] The appeal is allowed with costs.")
}

func TestRenderHTML_NoCaseNumber(t *testing.T) {
	b := sampleBrief()
	b.CaseNo = domain.CaseNumberNotFound

	out, err := report.RenderHTML(b)

	require.NoError(t, err)
	assert.Contains(t, out, "<title>Case Brief</title>")
}
