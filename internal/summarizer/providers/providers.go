// Package providers registers every built-in summarizer provider.
package providers

import (
	"judgebrief/internal/config"
	"judgebrief/internal/port"
	"judgebrief/internal/summarizer"
	"judgebrief/internal/summarizer/claude"
	"judgebrief/internal/summarizer/gemini"
	"judgebrief/internal/summarizer/lead"
	"judgebrief/internal/summarizer/openai"
)

// Register adds the lead, claude, openai and gemini providers to the summarizer registry.
func Register() {
	summarizer.RegisterProvider("lead", func(cfg *config.SummarizerProviderConfig) (port.Summarizer, error) {
		return lead.NewSummarizer(cfg), nil
	})
	summarizer.RegisterProvider("claude", func(cfg *config.SummarizerProviderConfig) (port.Summarizer, error) {
		return claude.NewSummarizer(cfg), nil
	})
	summarizer.RegisterProvider("openai", func(cfg *config.SummarizerProviderConfig) (port.Summarizer, error) {
		return openai.NewSummarizer(cfg), nil
	})
	summarizer.RegisterProvider("gemini", func(cfg *config.SummarizerProviderConfig) (port.Summarizer, error) {
		return gemini.NewSummarizer(cfg), nil
	})
}
