package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"judgebrief/internal/config"
	"judgebrief/internal/port"
	"judgebrief/internal/summarizer"
	"judgebrief/internal/summarizer/openai"
)

func newTestSummarizer(serverURL string) *openai.Summarizer {
	cfg := &config.SummarizerProviderConfig{
		Provider:     "openai",
		APIKey:       "test-openai-key",
		DefaultModel: "gpt-4o-mini",
		TimeoutSecs:  30,
	}
	return openai.NewSummarizerWithEndpoint(cfg, serverURL)
}

func successResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message":       map[string]interface{}{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
}

func TestOpenAISummarizer_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-openai-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "gpt-4o-mini", reqBody["model"])
		assert.Equal(t, float64(summarizer.OutputTokenBudget(120)), reqBody["max_completion_tokens"])

		messages := reqBody["messages"].([]interface{})
		require.Len(t, messages, 2)
		assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
		user := messages[1].(map[string]interface{})
		assert.Equal(t, "user", user["role"])
		assert.Contains(t, user["content"], "The appeal is dismissed.")
		assert.Contains(t, user["content"], "between 50 and 120 words")

		_ = json.NewEncoder(w).Encode(successResponse("  The appeal was dismissed.  "))
	}))
	defer server.Close()

	out, err := newTestSummarizer(server.URL).Summarize(context.Background(), port.SummarizeInput{
		Text:      "The appeal is dismissed.",
		MaxLength: 120,
		MinLength: 50,
	})

	require.NoError(t, err)
	assert.Equal(t, "The appeal was dismissed.", out.Summary)
	assert.Equal(t, "gpt-4o-mini", out.ModelUsed)
}

func TestOpenAISummarizer_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit"}}`))
	}))
	defer server.Close()

	_, err := newTestSummarizer(server.URL).Summarize(context.Background(), port.SummarizeInput{Text: "text"})

	var rlErr *summarizer.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "openai", rlErr.Provider)
	assert.Equal(t, 30*time.Second, rlErr.RetryAfter)
}

func TestOpenAISummarizer_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer server.Close()

	_, err := newTestSummarizer(server.URL).Summarize(context.Background(), port.SummarizeInput{Text: "text"})

	require.Error(t, err)
	assert.False(t, summarizer.IsRateLimited(err))
	assert.Contains(t, err.Error(), "status 500")
}

func TestOpenAISummarizer_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := newTestSummarizer(server.URL).Summarize(context.Background(), port.SummarizeInput{Text: "text"})

	assert.Error(t, err)
}

func TestOpenAISummarizer_EmptyInput(t *testing.T) {
	_, err := newTestSummarizer("http://127.0.0.1:0").Summarize(context.Background(), port.SummarizeInput{Text: ""})

	assert.ErrorIs(t, err, summarizer.ErrEmptyInput)
}
