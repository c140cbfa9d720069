// Package analysis runs the full judgment pipeline: normalization once, then
// field extraction, party resolution, verbatim tracing and summarization in
// parallel over the cleaned text.
package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"judgebrief/internal/config"
	"judgebrief/internal/domain"
	"judgebrief/internal/extractor"
	"judgebrief/internal/normalize"
	"judgebrief/internal/party"
	"judgebrief/internal/port"
	"judgebrief/internal/summary"
	"judgebrief/internal/trace"
)

// Result is a brief together with the cleaned text it was derived from.
type Result struct {
	Brief         domain.Brief
	Cleaned       string
	Hash          string
	PartyStrategy string
	Cached        bool

	// Degraded reports that the summaries are the unavailable sentinels.
	Degraded bool
}

// Pipeline analyses judgments. It is safe for concurrent use.
type Pipeline struct {
	summaries *summary.Orchestrator
	cache     *expirable.LRU[string, Result]
}

// NewPipeline creates a Pipeline summarizing with s. Results are cached by
// content hash when cacheCfg.Size is positive.
func NewPipeline(s port.Summarizer, cacheCfg config.CacheConfig) *Pipeline {
	p := &Pipeline{summaries: summary.NewOrchestrator(s)}
	if cacheCfg.Size > 0 {
		p.cache = expirable.NewLRU[string, Result](cacheCfg.Size, nil, cacheCfg.TTL)
	}
	return p
}

// Hash returns the hex SHA-256 of raw, the key under which analyses are
// cached and deduplicated.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Analyze returns the brief for raw. It never fails; undetected fields carry
// their sentinels.
func (p *Pipeline) Analyze(ctx context.Context, raw string) *domain.Brief {
	res := p.Run(ctx, raw)
	return &res.Brief
}

// Run analyses raw and returns the brief with its cleaned text.
func (p *Pipeline) Run(ctx context.Context, raw string) Result {
	key := Hash(raw)
	if p.cache != nil {
		if cached, ok := p.cache.Get(key); ok {
			cached.Cached = true
			return cached
		}
	}

	cleaned := normalize.Normalize(raw)

	var (
		wg        sync.WaitGroup
		fields    extractor.Fields
		parties   party.Resolution
		sourceLog domain.SourceLog
		summaries summary.Result
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		fields = extractor.Extract(cleaned)
	}()
	go func() {
		defer wg.Done()
		parties = party.ResolveDetailed(cleaned)
	}()
	go func() {
		defer wg.Done()
		sourceLog = trace.SourceLog(cleaned)
	}()
	go func() {
		defer wg.Done()
		summaries = p.summaries.Summarize(ctx, cleaned)
	}()
	wg.Wait()

	res := Result{
		Brief: domain.Brief{
			Court:             fields.Court,
			CaseNo:            fields.CaseNo,
			Jurisdiction:      fields.Jurisdiction,
			Parties:           parties.String(),
			Summaries:         summaries.Summaries,
			SourceLog:         sourceLog,
			SummaryModel:      summaries.ModelUsed,
			SummariesDegraded: summaries.Degraded,
		},
		Cleaned:       cleaned,
		Hash:          key,
		PartyStrategy: parties.Strategy,
		Degraded:      summaries.Degraded,
	}

	log.Printf("analysis.Pipeline: analysed %s (court=%q, parties via %s, degraded summaries=%t)",
		key[:12], res.Brief.Court, parties.Strategy, summaries.Degraded)

	// Degraded summaries may be transient, so they are not cached.
	if p.cache != nil && !summaries.Degraded {
		p.cache.Add(key, res)
	}
	return res
}

// Purge empties the result cache.
func (p *Pipeline) Purge() {
	if p.cache != nil {
		p.cache.Purge()
	}
}
