package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"judgebrief/internal/domain"
)

func TestReadJudgment(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "order.TXT")
	require.NoError(t, os.WriteFile(txt, []byte("IN THE HIGH COURT OF DELHI"), 0o600))
	doc := filepath.Join(dir, "order.docx")
	require.NoError(t, os.WriteFile(doc, []byte("PK"), 0o600))

	text, err := readJudgment(context.Background(), txt)
	require.NoError(t, err)
	assert.Equal(t, "IN THE HIGH COURT OF DELHI", text)

	_, err = readJudgment(context.Background(), doc)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	_, err = readJudgment(context.Background(), filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	brief := &domain.Brief{
		Court:        "HIGH COURT OF DELHI",
		CaseNo:       domain.CaseNumberNotFound,
		Jurisdiction: domain.JurisdictionGeneral,
		Parties:      domain.PartiesNotDetected,
		Summaries:    domain.DegradedSummaries(),
	}

	var buf bytes.Buffer
	require.NoError(t, write(&buf, brief, "json"))
	var decoded domain.Brief
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, brief.Court, decoded.Court)

	buf.Reset()
	require.NoError(t, write(&buf, brief, "md"))
	assert.Contains(t, buf.String(), "# Case Brief")

	buf.Reset()
	require.NoError(t, write(&buf, brief, "html"))
	assert.Contains(t, buf.String(), "<!doctype html>")

	assert.Error(t, write(&buf, brief, "yaml"))
}
