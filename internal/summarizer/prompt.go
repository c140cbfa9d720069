package summarizer

import (
	"fmt"

	"judgebrief/internal/port"
)

// SystemPrompt frames every abstractive summarization request.
const SystemPrompt = `You summarize excerpts of Indian court judgments for legal professionals.
Write plain prose in the third person. Do not invent facts, parties, dates or citations
that are not in the excerpt. Do not add headings, bullet points or commentary.`

// BuildPrompt renders the user prompt for one window.
func BuildPrompt(input port.SummarizeInput) string {
	return fmt.Sprintf(`Summarize the following judgment excerpt in %s.

--- BEGIN EXCERPT ---
%s
--- END EXCERPT ---`, lengthHint(input.MinLength, input.MaxLength), input.Text)
}

func lengthHint(minWords, maxWords int) string {
	switch {
	case minWords > 0 && maxWords > 0:
		return fmt.Sprintf("between %d and %d words", minWords, maxWords)
	case maxWords > 0:
		return fmt.Sprintf("at most %d words", maxWords)
	default:
		return "a single paragraph"
	}
}

// OutputTokenBudget is the completion token limit for a summary of at most
// maxWords words, leaving headroom for tokenization.
func OutputTokenBudget(maxWords int) int {
	if maxWords <= 0 {
		return 1024
	}
	return maxWords*2 + 64
}
