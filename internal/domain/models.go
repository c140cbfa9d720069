package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Summaries holds the five sectioned summaries of a judgment.
type Summaries struct {
	ExecSummary  string `json:"exec_summary"`
	Background   string `json:"background"`
	Issues       string `json:"issues"`
	Observations string `json:"observations"`
	Decision     string `json:"decision"`
}

// DegradedSummaries returns the fixed sentinels used when summarization fails.
func DegradedSummaries() Summaries {
	return Summaries{
		ExecSummary:  ExecSummaryUnavailable,
		Background:   BackgroundUnavailable,
		Issues:       IssuesUnavailable,
		Observations: ObservationsUnavailable,
		Decision:     DecisionUnavailable,
	}
}

// Get returns the summary for a section.
func (s Summaries) Get(section Section) string {
	switch section {
	case SectionExecSummary:
		return s.ExecSummary
	case SectionBackground:
		return s.Background
	case SectionIssues:
		return s.Issues
	case SectionObservations:
		return s.Observations
	case SectionDecision:
		return s.Decision
	}
	return ""
}

// Set stores the summary for a section.
func (s *Summaries) Set(section Section, text string) {
	switch section {
	case SectionExecSummary:
		s.ExecSummary = text
	case SectionBackground:
		s.Background = text
	case SectionIssues:
		s.Issues = text
	case SectionObservations:
		s.Observations = text
	case SectionDecision:
		s.Decision = text
	}
}

// SourceLog maps a trace category to its ordered "[Ref ID: n] sentence" citations.
type SourceLog map[TraceCategory][]string

// Brief is the structured result of analysing one judgment. Every field is
// always populated; sentinels stand in for anything that was not detected.
type Brief struct {
	Court        string       `json:"court"`
	CaseNo       string       `json:"case_no"`
	Jurisdiction Jurisdiction `json:"jurisdiction"`
	Parties      string       `json:"parties"`
	Summaries    Summaries    `json:"summaries"`
	SourceLog    SourceLog    `json:"source_log"`
	SummaryModel string       `json:"summary_model,omitempty"`

	// SummariesDegraded marks a brief whose summaries are the unavailable
	// sentinels. Such briefs are never reused for a repeated upload.
	SummariesDegraded bool `json:"summaries_degraded,omitempty"`
}

// Petitioner returns the petitioner side of Parties, or "" when parties were not detected.
func (b *Brief) Petitioner() string {
	p, _, ok := strings.Cut(b.Parties, PartySeparator)
	if !ok {
		return ""
	}
	return p
}

// Respondent returns the respondent side of Parties, or "" when parties were not detected.
func (b *Brief) Respondent() string {
	_, r, ok := strings.Cut(b.Parties, PartySeparator)
	if !ok {
		return ""
	}
	return r
}

// FormatParties joins petitioner and respondent in the canonical "A\n-vs-\nB" shape.
func FormatParties(petitioner, respondent string) string {
	return petitioner + PartySeparator + respondent
}

// FormatTrace renders a trace citation as "[Ref ID: offset] sentence".
func FormatTrace(offset int, sentence string) string {
	return fmt.Sprintf(TraceRefFormat, offset, sentence)
}

// Analysis is a persisted judgment analysis.
type Analysis struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	SourceName  string          `db:"source_name" json:"source_name"`
	FileType    FileType        `db:"file_type" json:"file_type"`
	ContentHash string          `db:"content_hash" json:"content_hash"`
	S3Bucket    string          `db:"s3_bucket" json:"-"`
	S3Key       string          `db:"s3_key" json:"-"`
	SizeBytes   int64           `db:"size_bytes" json:"size_bytes"`
	Status      AnalysisStatus  `db:"status" json:"status"`
	Error       string          `db:"error" json:"error,omitempty"`
	Attempts    int             `db:"attempts" json:"attempts"`
	Brief       json.RawMessage `db:"brief" json:"brief,omitempty"`
	CleanedText string          `db:"cleaned_text" json:"-"`
	CompletedAt *time.Time      `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// DecodeBrief unmarshals the stored brief. It returns ErrAnalysisNotReady
// when the analysis has not completed.
func (a *Analysis) DecodeBrief() (*Brief, error) {
	if a.Status != AnalysisStatusCompleted || len(a.Brief) == 0 {
		return nil, ErrAnalysisNotReady
	}
	var b Brief
	if err := json.Unmarshal(a.Brief, &b); err != nil {
		return nil, fmt.Errorf("decoding brief for %s: %w", a.ID, err)
	}
	return &b, nil
}
