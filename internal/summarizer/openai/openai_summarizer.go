package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"judgebrief/internal/config"
	"judgebrief/internal/port"
	"judgebrief/internal/summarizer"
)

const (
	apiURL       = "https://api.openai.com/v1/chat/completions"
	defaultModel = "gpt-4o-mini"
)

// Summarizer implements port.Summarizer using the OpenAI Chat Completions API.
type Summarizer struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewSummarizer creates an OpenAI-based summarizer from a provider config.
func NewSummarizer(cfg *config.SummarizerProviderConfig) *Summarizer {
	return newSummarizer(cfg, apiURL)
}

// NewSummarizerWithEndpoint creates a summarizer pointing at a custom API endpoint (for testing).
func NewSummarizerWithEndpoint(cfg *config.SummarizerProviderConfig, endpoint string) *Summarizer {
	return newSummarizer(cfg, endpoint)
}

func newSummarizer(cfg *config.SummarizerProviderConfig, endpoint string) *Summarizer {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Summarizer{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string        `json:"model"`
	MaxCompletionTokens int           `json:"max_completion_tokens"`
	Messages            []chatMessage `json:"messages"`
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (s *Summarizer) Summarize(ctx context.Context, input port.SummarizeInput) (*port.SummarizeOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, summarizer.ErrEmptyInput
	}

	bodyBytes, err := json.Marshal(chatRequest{
		Model:               s.model,
		MaxCompletionTokens: summarizer.OutputTokenBudget(input.MaxLength),
		Messages: []chatMessage{
			{Role: "system", Content: summarizer.SystemPrompt},
			{Role: "user", Content: summarizer.BuildPrompt(input)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := summarizer.ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
			return nil, summarizer.NewRateLimitError("openai", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API: no choices")
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return nil, fmt.Errorf("empty summary (finish_reason: %s)", parsed.Choices[0].FinishReason)
	}
	return &port.SummarizeOutput{Summary: text, ModelUsed: s.model}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
