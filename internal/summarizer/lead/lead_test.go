package lead_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"judgebrief/internal/port"
	"judgebrief/internal/summarizer"
	"judgebrief/internal/summarizer/lead"
)

func TestLead_StopsOnSentenceBoundary(t *testing.T) {
	text := "The appeal arises from a decree. The trial court dismissed the suit. The first appellate court reversed it."

	assert.Equal(t, "The appeal arises from a decree. The trial court dismissed the suit.", lead.Lead(text, 5, 12))
}

func TestLead_CutsWhenBelowMinimum(t *testing.T) {
	text := "One two three four five six seven eight nine ten."

	assert.Equal(t, "One two three four", lead.Lead(text, 3, 4))
}

func TestLead_WholeTextWhenShort(t *testing.T) {
	text := "Appeal allowed.\nNo costs."

	assert.Equal(t, "Appeal allowed. No costs.", lead.Lead(text, 1, 100))
}

func TestLead_TrailingFragment(t *testing.T) {
	assert.Equal(t, "First sentence. and a fragment", lead.Lead("First sentence. and a fragment", 1, 50))
}

func TestSummarize(t *testing.T) {
	s := lead.NewSummarizer(nil)

	out, err := s.Summarize(context.Background(), port.SummarizeInput{
		Text:      strings.Repeat("The court heard the matter at length. ", 20),
		MaxLength: 21,
		MinLength: 7,
	})

	require.NoError(t, err)
	assert.Equal(t, lead.ModelName, out.ModelUsed)
	assert.Len(t, strings.Fields(out.Summary), 21)
}

func TestSummarize_EmptyInput(t *testing.T) {
	s := lead.NewSummarizer(nil)

	_, err := s.Summarize(context.Background(), port.SummarizeInput{Text: " \n ", MaxLength: 10})

	assert.ErrorIs(t, err, summarizer.ErrEmptyInput)
}

func TestSummarize_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := lead.NewSummarizer(nil).Summarize(ctx, port.SummarizeInput{Text: "Some text here."})

	assert.ErrorIs(t, err, context.Canceled)
}
