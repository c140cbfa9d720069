package claude

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"judgebrief/internal/config"
	"judgebrief/internal/port"
	"judgebrief/internal/summarizer"
)

const defaultModel = "claude-sonnet-4-20250514"

// Messager is the subset of the Anthropic client used here.
type Messager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Summarizer implements port.Summarizer using the Anthropic Messages API.
type Summarizer struct {
	messages Messager
	model    string
}

// NewSummarizer creates a Claude-based summarizer from a provider config.
func NewSummarizer(cfg *config.SummarizerProviderConfig) *Summarizer {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(cfg.MaxRetries))
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	opts = append(opts, option.WithRequestTimeout(timeout))

	client := anthropic.NewClient(opts...)
	return NewSummarizerWithMessager(cfg, &client.Messages)
}

// NewSummarizerWithMessager creates a summarizer over a caller-supplied client (for testing).
func NewSummarizerWithMessager(cfg *config.SummarizerProviderConfig, m Messager) *Summarizer {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	return &Summarizer{messages: m, model: model}
}

func (s *Summarizer) Summarize(ctx context.Context, input port.SummarizeInput) (*port.SummarizeOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, summarizer.ErrEmptyInput
	}

	resp, err := s.messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: int64(summarizer.OutputTokenBudget(input.MaxLength)),
		System: []anthropic.TextBlockParam{
			{Text: summarizer.SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(summarizer.BuildPrompt(input))),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			var retryAfter time.Duration
			if apiErr.Response != nil {
				retryAfter = summarizer.ParseRetryAfter(apiErr.Response.Header.Get("Retry-After"), time.Now())
			}
			return nil, summarizer.NewRateLimitError("claude", err, retryAfter)
		}
		return nil, fmt.Errorf("calling claude API: %w", err)
	}

	var parts []string
	for _, block := range resp.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	text := strings.TrimSpace(strings.Join(parts, ""))
	if text == "" {
		return nil, fmt.Errorf("empty response from claude API")
	}

	return &port.SummarizeOutput{Summary: text, ModelUsed: s.model}, nil
}
