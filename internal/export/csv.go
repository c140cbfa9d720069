// Package export writes persisted analyses as CSV or an Excel workbook.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"judgebrief/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the brief header row shared by the CSV and the Briefs sheet.
var columns = []string{
	"Analysis ID",
	"Source Name",
	"Status",
	"Court",
	"Case No.",
	"Jurisdiction",
	"Petitioner",
	"Respondent",
	"Executive Summary",
	"Background",
	"Issues",
	"Observations",
	"Decision",
	"Summary Model",
	"Content Hash",
	"Completed At",
	"Created At",
}

// Writer wraps csv.Writer for exporting analyses as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteAnalyses converts a batch of analyses to CSV rows and writes them.
func (w *Writer) WriteAnalyses(analyses []domain.Analysis) error {
	for i := range analyses {
		if err := w.csv.Write(analysisToRow(&analyses[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes the BOM, header and every analysis to out.
func WriteCSV(out io.Writer, analyses []domain.Analysis) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteAnalyses(analyses); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// analysisToRow converts one analysis to a row. Metadata columns are always
// filled; brief columns only when the analysis completed and its brief decodes.
func analysisToRow(a *domain.Analysis) []string {
	row := make([]string, len(columns))

	row[0] = a.ID.String()
	row[1] = a.SourceName
	row[2] = string(a.Status)
	row[14] = a.ContentHash
	row[15] = formatTime(a.CompletedAt)
	row[16] = a.CreatedAt.Format(time.RFC3339)

	b, err := a.DecodeBrief()
	if err != nil {
		return row
	}

	row[3] = b.Court
	row[4] = b.CaseNo
	row[5] = string(b.Jurisdiction)
	if p := b.Petitioner(); p != "" {
		row[6] = p
		row[7] = b.Respondent()
	} else {
		row[6] = b.Parties
	}
	row[8] = b.Summaries.ExecSummary
	row[9] = b.Summaries.Background
	row[10] = b.Summaries.Issues
	row[11] = b.Summaries.Observations
	row[12] = b.Summaries.Decision
	row[13] = b.SummaryModel

	return row
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string, now time.Time) string {
	sanitized := SanitizeFilename(name)
	if sanitized == "" {
		sanitized = "analyses"
	}
	return fmt.Sprintf("%s_%s.%s", sanitized, now.Format("2006-01-02"), ext)
}
