package port

import "context"

// SummarizeInput carries one text window and its length bounds, in words.
type SummarizeInput struct {
	Text      string
	MaxLength int
	MinLength int
}

// SummarizeOutput contains the abstractive summary of one window.
type SummarizeOutput struct {
	Summary   string
	ModelUsed string
}

// Summarizer abstracts abstractive summarization of a text window.
type Summarizer interface {
	Summarize(ctx context.Context, input SummarizeInput) (*SummarizeOutput, error)
}

// TextExtractor pulls plain text out of an uploaded document.
// Pages are joined with "\n". Image-only pages contribute empty text.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}
