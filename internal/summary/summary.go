// Package summary produces the five sectioned summaries of a cleaned judgment.
package summary

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"judgebrief/internal/domain"
	"judgebrief/internal/port"
	"judgebrief/internal/textutil"
)

// Window describes the slice of text summarized for one section and its
// length bounds.
type Window struct {
	Section   domain.Section
	MaxLength int
	MinLength int
	text      func(cleaned string) string
}

// Text returns the window's slice of cleaned. Bounds are clamped to the text.
func (w Window) Text(cleaned string) string {
	return w.text(cleaned)
}

const windowSize = 3000

var thisPetitionRe = regexp.MustCompile(`(?i)this petition`)

// Windows are summarized in this order.
var Windows = []Window{
	{
		Section: domain.SectionExecSummary, MaxLength: 180, MinLength: 100,
		text: func(s string) string { return textutil.Head(s, 3200) },
	},
	{
		Section: domain.SectionBackground, MaxLength: 250, MinLength: 120,
		text: backgroundWindow,
	},
	{
		Section: domain.SectionIssues, MaxLength: 130, MinLength: 60,
		text: func(s string) string { return textutil.Slice(s, 1000, 4000) },
	},
	{
		Section: domain.SectionObservations, MaxLength: 200, MinLength: 80,
		text: func(s string) string {
			mid := textutil.Len(s) / 3
			return textutil.Slice(s, mid, mid+windowSize)
		},
	},
	{
		Section: domain.SectionDecision, MaxLength: 120, MinLength: 50,
		text: func(s string) string { return textutil.Tail(s, windowSize) },
	},
}

// backgroundWindow starts at the first "this petition", or at the beginning
// of the text when the phrase is absent.
func backgroundWindow(s string) string {
	loc := thisPetitionRe.FindStringIndex(s)
	if loc == nil {
		return textutil.Head(s, windowSize)
	}
	start := textutil.CharOffset(s, loc[0])
	return textutil.Slice(s, start, start+windowSize)
}

// Result is the outcome of summarizing one judgment.
type Result struct {
	Summaries domain.Summaries
	// ModelUsed lists the distinct models that produced the summaries, in order.
	ModelUsed string
	Degraded  bool
}

// Orchestrator runs the windows through a summarizer.
type Orchestrator struct {
	summarizer port.Summarizer
}

// NewOrchestrator creates an Orchestrator. A nil summarizer yields degraded
// summaries for every document.
func NewOrchestrator(s port.Summarizer) *Orchestrator {
	return &Orchestrator{summarizer: s}
}

// Summarize summarizes every window in order. A window with no text, such as
// the issues window of a judgment shorter than 1,000 characters, gets an empty
// summary without a summarizer call; a blank document gets the degraded
// sentinels. The first failure replaces all five summaries with the degraded
// sentinels; no error is returned.
func (o *Orchestrator) Summarize(ctx context.Context, cleaned string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("summary.Orchestrator: summarizer panicked: %v", r)
			res = degraded()
		}
	}()

	if o.summarizer == nil {
		log.Printf("summary.Orchestrator: no summarizer configured")
		return degraded()
	}

	if strings.TrimSpace(cleaned) == "" {
		return degraded()
	}

	var models []string
	for _, w := range Windows {
		text := w.Text(cleaned)
		if strings.TrimSpace(text) == "" {
			res.Summaries.Set(w.Section, "")
			continue
		}
		out, err := o.summarizer.Summarize(ctx, port.SummarizeInput{
			Text:      text,
			MaxLength: w.MaxLength,
			MinLength: w.MinLength,
		})
		if err == nil && out == nil {
			err = fmt.Errorf("no output")
		}
		if err != nil {
			log.Printf("summary.Orchestrator: %s failed, degrading all sections: %v", w.Section, err)
			return degraded()
		}
		res.Summaries.Set(w.Section, strings.TrimSpace(out.Summary))
		models = appendDistinct(models, out.ModelUsed)
	}
	res.ModelUsed = strings.Join(models, ",")
	return res
}

func degraded() Result {
	return Result{Summaries: domain.DegradedSummaries(), Degraded: true}
}

func appendDistinct(list []string, s string) []string {
	if s == "" {
		return list
	}
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
