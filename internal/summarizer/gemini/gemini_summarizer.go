package gemini

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
	apiBaseURL   = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel = "gemini-2.0-flash"
)

// Summarizer implements port.Summarizer using Google's Gemini API.
type Summarizer struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewSummarizer creates a Gemini-based summarizer.
func NewSummarizer(cfg *config.SummarizerProviderConfig) *Summarizer {
	return newSummarizer(cfg, "")
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
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Summarizer{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction content          `json:"systemInstruction"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func (s *Summarizer) Summarize(ctx context.Context, input port.SummarizeInput) (*port.SummarizeOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, summarizer.ErrEmptyInput
	}

	bodyBytes, err := json.Marshal(generateRequest{
		SystemInstruction: content{Parts: []part{{Text: summarizer.SystemPrompt}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: summarizer.BuildPrompt(input)}}}},
		GenerationConfig:  generationConfig{MaxOutputTokens: summarizer.OutputTokenBudget(input.MaxLength)},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := summarizer.ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
			return nil, summarizer.NewRateLimitError("gemini", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from API: no candidates")
	}

	var b strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return nil, fmt.Errorf("empty summary (finishReason: %s)", parsed.Candidates[0].FinishReason)
	}
	return &port.SummarizeOutput{Summary: text, ModelUsed: s.model}, nil
}
