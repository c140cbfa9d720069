// Package lead is an offline extractive summarizer. It returns the leading
// sentences of a window, bounded by the requested length in words. It needs
// no credentials, so it is the default provider and the last tier of most
// fallback chains.
package lead

import (
	"context"
	"regexp"
	"strings"

	"judgebrief/internal/config"
	"judgebrief/internal/port"
	"judgebrief/internal/summarizer"
)

// ModelName is reported as SummarizeOutput.ModelUsed.
const ModelName = "lead-extractive"

var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]+|[^.!?]+$`)

// Summarizer implements port.Summarizer by sentence selection.
type Summarizer struct{}

// NewSummarizer creates a lead summarizer. The provider config carries nothing it uses.
func NewSummarizer(_ *config.SummarizerProviderConfig) *Summarizer {
	return &Summarizer{}
}

func (s *Summarizer) Summarize(ctx context.Context, input port.SummarizeInput) (*port.SummarizeOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, summarizer.ErrEmptyInput
	}
	return &port.SummarizeOutput{
		Summary:   Lead(input.Text, input.MinLength, input.MaxLength),
		ModelUsed: ModelName,
	}, nil
}

// Lead selects whole sentences from the start of text until adding the next
// one would pass maxWords. Once minWords is reached the summary ends on a
// sentence boundary; below it, the overflowing sentence is cut at maxWords.
func Lead(text string, minWords, maxWords int) string {
	if maxWords <= 0 {
		maxWords = len(strings.Fields(text))
	}

	var out []string
	count := 0
	for _, sentence := range sentenceRe.FindAllString(text, -1) {
		words := strings.Fields(sentence)
		if len(words) == 0 {
			continue
		}
		if count+len(words) > maxWords {
			if count < minWords {
				out = append(out, words[:maxWords-count]...)
			}
			break
		}
		out = append(out, words...)
		count += len(words)
	}
	return strings.Join(out, " ")
}
