package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Watcher runs a job on a cron cadence. It drives watch mode, where a
// configured schedule request is re-evaluated periodically without an HTTP
// caller.
type Watcher struct {
	cron *cron.Cron
}

// NewWatcher builds a watcher firing the job per the cron spec
// (standard 5-field syntax, e.g. "0 9 * * 1" for Mondays at 09:00).
func NewWatcher(spec string, job func(time.Time)) (*Watcher, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		fired := time.Now()
		log.Printf("[WATCHER] run triggered at %s", fired.Format(time.RFC3339))
		job(fired)
	}); err != nil {
		return nil, fmt.Errorf("invalid watch cron spec %q: %w", spec, err)
	}

	return &Watcher{cron: c}, nil
}

// Start begins firing scheduled runs in its own goroutine
func (w *Watcher) Start() {
	w.cron.Start()
}

// Stop halts scheduling and waits for an in-flight run to finish
func (w *Watcher) Stop(ctx context.Context) {
	stopped := w.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
	}
}
