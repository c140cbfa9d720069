package summarizer

import (
	"fmt"
	"sort"

	"judgebrief/internal/config"
	"judgebrief/internal/port"
)

// ProviderFactory creates a Summarizer from a provider config.
type ProviderFactory func(cfg *config.SummarizerProviderConfig) (port.Summarizer, error)

// registry of provider factories, populated via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a summarizer provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// RegisteredProviders returns the registered provider names in sorted order.
func RegisteredProviders() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSummarizer creates a Summarizer from a provider config using the registered factory.
func NewSummarizer(cfg *config.SummarizerProviderConfig) (port.Summarizer, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown summarizer provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// Build creates the configured provider chain. A single provider is returned
// as is; two or more are wrapped in a FallbackSummarizer.
func Build(cfg *config.SummarizerConfig) (port.Summarizer, error) {
	chain := cfg.Chain()
	tiers := make([]Tier, 0, len(chain))
	for _, pc := range chain {
		s, err := NewSummarizer(pc)
		if err != nil {
			return nil, fmt.Errorf("creating %s summarizer: %w", pc.Provider, err)
		}
		tiers = append(tiers, Tier{Name: pc.Provider, Summarizer: s})
	}
	if len(tiers) == 1 {
		return tiers[0].Summarizer, nil
	}
	return NewFallbackSummarizer(tiers...), nil
}
