// Package report renders a brief as markdown or a standalone HTML page.
package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"judgebrief/internal/domain"
)

// sections lists the summaries in the order they are rendered.
var sections = []struct {
	section domain.Section
	heading string
}{
	{domain.SectionExecSummary, "Executive Summary"},
	{domain.SectionBackground, "Background"},
	{domain.SectionIssues, "Issues"},
	{domain.SectionObservations, "Court Observations"},
	{domain.SectionDecision, "Decision"},
}

// TraceOrder is the order in which source log categories are rendered.
var TraceOrder = []domain.TraceCategory{
	domain.TraceBackground,
	domain.TraceObservation,
	domain.TraceDecision,
}

const noCitations = "_No citations found._"

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`,
	`[`, `\[`, `]`, `\]`, `#`, `\#`, `|`, `\|`, `<`, `\<`, `>`, `\>`,
)

// escape makes free text from a judgment inert under markdown.
func escape(s string) string {
	return mdEscaper.Replace(s)
}

// cell escapes s and folds it onto one line for a table cell.
func cell(s string) string {
	return strings.Join(strings.Fields(escape(s)), " ")
}

// RenderMarkdown renders the brief: a metadata table, the five summaries and
// the source log.
func RenderMarkdown(b *domain.Brief) string {
	var sb strings.Builder

	sb.WriteString("# Case Brief\n\n")
	sb.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Court | %s |\n", cell(b.Court))
	fmt.Fprintf(&sb, "| Case No. | %s |\n", cell(b.CaseNo))
	fmt.Fprintf(&sb, "| Jurisdiction | %s |\n", cell(string(b.Jurisdiction)))
	if p := b.Petitioner(); p != "" {
		fmt.Fprintf(&sb, "| Petitioner | %s |\n", cell(p))
		fmt.Fprintf(&sb, "| Respondent | %s |\n", cell(b.Respondent()))
	} else {
		fmt.Fprintf(&sb, "| Parties | %s |\n", cell(b.Parties))
	}

	for _, s := range sections {
		fmt.Fprintf(&sb, "\n## %s\n\n%s\n", s.heading, escape(b.Summaries.Get(s.section)))
	}

	sb.WriteString("\n## Source Log\n")
	for _, category := range TraceOrder {
		fmt.Fprintf(&sb, "\n### %s\n\n", category)
		entries := b.SourceLog[category]
		if len(entries) == 0 {
			sb.WriteString(noCitations + "\n")
			continue
		}
		for i, entry := range entries {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, cell(entry))
		}
	}

	if b.SummaryModel != "" {
		fmt.Fprintf(&sb, "\n---\n\nSummaries generated by %s.\n", cell(b.SummaryModel))
	}
	return sb.String()
}

const pageStyle = "body{font-family:Georgia,serif;max-width:900px;margin:2rem auto;padding:0 1rem;line-height:1.6;color:#1c1917;}" +
	"table{border-collapse:collapse;width:100%;}th,td{border:1px solid #a8a29e;padding:0.35rem 0.5rem;text-align:left;vertical-align:top;}" +
	"thead th{background:#f1f5f9;}ol li{margin-bottom:0.4rem;}"

// RenderHTML renders the brief as a standalone HTML page.
func RenderHTML(b *domain.Brief) (string, error) {
	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(RenderMarkdown(b)), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	title := "Case Brief"
	if b.CaseNo != "" && b.CaseNo != domain.CaseNumberNotFound {
		title += ": " + b.CaseNo
	}
	return "<!doctype html><html><head><meta charset='utf-8'><title>" + html.EscapeString(title) + "</title>" +
		"<style>" + pageStyle + "</style></head><body>" +
		content.String() +
		"</body></html>", nil
}
