package scheduler

import (
	"context"
	"testing"
	"time"
)

func TestNewWatcherRejectsInvalidSpec(t *testing.T) {
	_, err := NewWatcher("not a cron spec", func(time.Time) {})
	if err == nil {
		t.Error("expected error for invalid cron spec")
	}
}

func TestWatcherFires(t *testing.T) {
	fired := make(chan time.Time, 1)

	// Every-second spec is not expressible in the 5-field syntax, so drive
	// the assertion off the entry schedule instead of waiting a minute.
	w, err := NewWatcher("* * * * *", func(ts time.Time) {
		select {
		case fired <- ts:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	entries := w.cron.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d cron entries, want 1", len(entries))
	}

	now := time.Date(2025, 11, 23, 9, 0, 30, 0, time.UTC)
	next := entries[0].Schedule.Next(now)
	if next.Sub(now) > time.Minute {
		t.Errorf("next fire at %v, want within a minute of %v", next, now)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	w.Start()
	w.Stop(ctx)
}
