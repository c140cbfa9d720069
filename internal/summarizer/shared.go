package summarizer

import (
	"sync"

	"judgebrief/internal/config"
	"judgebrief/internal/port"
)

// lazy holds one process-wide build of the summarizer chain.
type lazy struct {
	once sync.Once
	s    port.Summarizer
	err  error
}

var (
	sharedMu sync.Mutex
	shared   = &lazy{}
)

// Shared returns the process-wide summarizer, building it from cfg on first
// use. Concurrent first callers block until the single build finishes, and
// every caller observes the same result, including a build error. The cfg
// of later calls is ignored until Reset.
func Shared(cfg *config.SummarizerConfig) (port.Summarizer, error) {
	sharedMu.Lock()
	l := shared
	sharedMu.Unlock()

	l.once.Do(func() {
		l.s, l.err = Build(cfg)
	})
	return l.s, l.err
}

// Reset discards the shared summarizer so the next Shared call rebuilds it.
// Intended for tests.
func Reset() {
	sharedMu.Lock()
	shared = &lazy{}
	sharedMu.Unlock()
}
