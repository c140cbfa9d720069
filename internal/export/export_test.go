package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"judgebrief/internal/domain"
	"judgebrief/internal/export"
)

func completedAnalysis(t *testing.T) domain.Analysis {
	t.Helper()
	brief := domain.Brief{
		Court:        "HIGH COURT OF DELHI",
		CaseNo:       "W.P.(C) No. 1234/2019",
		Jurisdiction: domain.JurisdictionWrit,
		Parties:      domain.FormatParties("Delhi Jal Board", "National Campaign for Dignity"),
		Summaries: domain.Summaries{
			ExecSummary:  "Exec.",
			Background:   "Background.",
			Issues:       "Issues.",
			Observations: "Observations.",
			Decision:     "Decision.",
		},
		SourceLog: domain.SourceLog{
			domain.TraceBackground:  {"[Ref ID: 0] The petitioner filed a writ petition challenging the order."},
			domain.TraceObservation: {},
			domain.TraceDecision: {
				"[Ref ID: 140] The petition is allowed and the order is set aside.",
				"[Ref ID: 300] No order as to costs is directed by this court.",
			},
		},
		SummaryModel: "lead-extractive",
	}
	raw, err := json.Marshal(brief)
	require.NoError(t, err)

	completed := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	return domain.Analysis{
		ID:          uuid.New(),
		SourceName:  "wp-1234-2019.pdf",
		ContentHash: "abc123",
		Status:      domain.AnalysisStatusCompleted,
		Brief:       raw,
		CompletedAt: &completed,
		CreatedAt:   time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
	}
}

func queuedAnalysis() domain.Analysis {
	return domain.Analysis{
		ID:         uuid.New(),
		SourceName: "pending.pdf",
		Status:     domain.AnalysisStatusQueued,
		CreatedAt:  time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
	}
}

func TestWriteCSV(t *testing.T) {
	done := completedAnalysis(t)
	var buf bytes.Buffer

	require.NoError(t, export.WriteCSV(&buf, []domain.Analysis{done, queuedAnalysis()}))

	require.True(t, bytes.HasPrefix(buf.Bytes(), export.BOM))
	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(export.BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	header := rows[0]
	assert.Len(t, header, 17)
	assert.Equal(t, "Analysis ID", header[0])
	assert.Equal(t, "Created At", header[16])

	first := rows[1]
	assert.Equal(t, done.ID.String(), first[0])
	assert.Equal(t, "completed", first[2])
	assert.Equal(t, "HIGH COURT OF DELHI", first[3])
	assert.Equal(t, "Writ Jurisdiction", first[5])
	assert.Equal(t, "Delhi Jal Board", first[6])
	assert.Equal(t, "National Campaign for Dignity", first[7])
	assert.Equal(t, "Decision.", first[12])
	assert.Equal(t, "2025-03-02T10:00:00Z", first[15])

	second := rows[2]
	assert.Equal(t, "queued", second[2])
	assert.Empty(t, second[3])
	assert.Empty(t, second[15])
	assert.Equal(t, "2025-03-03T09:00:00Z", second[16])
}

func TestWriteCSV_PartiesNotDetected(t *testing.T) {
	a := completedAnalysis(t)
	a.Brief = json.RawMessage(`{"parties":"Parties Not Detected"}`)
	var buf bytes.Buffer

	require.NoError(t, export.WriteCSV(&buf, []domain.Analysis{a}))

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(export.BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, domain.PartiesNotDetected, rows[1][6])
	assert.Empty(t, rows[1][7])
}

func TestWriteXLSX(t *testing.T) {
	done := completedAnalysis(t)
	var buf bytes.Buffer

	require.NoError(t, export.WriteXLSX(&buf, []domain.Analysis{done, queuedAnalysis()}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.BriefsSheet, export.TracesSheet}, f.GetSheetList())

	briefs, err := f.GetRows(export.BriefsSheet)
	require.NoError(t, err)
	require.Len(t, briefs, 3)
	assert.Equal(t, "Analysis ID", briefs[0][0])
	assert.Equal(t, "HIGH COURT OF DELHI", briefs[1][3])

	traces, err := f.GetRows(export.TracesSheet)
	require.NoError(t, err)
	require.Len(t, traces, 4)
	assert.Equal(t, []string{"Analysis ID", "Source Name", "Category", "Ref ID", "Sentence"}, traces[0])
	assert.Equal(t, string(domain.TraceBackground), traces[1][2])
	assert.Equal(t, "0", traces[1][3])
	assert.Equal(t, string(domain.TraceDecision), traces[2][2])
	assert.Equal(t, "140", traces[2][3])
	assert.Equal(t, "The petition is allowed and the order is set aside.", traces[2][4])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"judgments", "judgments"},
		{"Writ Petitions (2019)", "Writ_Petitions_2019"},
		{"a//b??c", "a_b_c"},
		{"___", ""},
		{strings.Repeat("x", 150), strings.Repeat("x", 100)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, export.SanitizeFilename(tt.in), "input %q", tt.in)
	}
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "briefs_2025-03-02.csv", export.BuildFilename("briefs", "csv", now))
	assert.Equal(t, "analyses_2025-03-02.xlsx", export.BuildFilename("", "xlsx", now))
}
