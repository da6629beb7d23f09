package janitor

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/marawan13001/zmarketfr-sub000/internal/storage"
)

type fakeSweeper struct {
	prefix string
	cutoff time.Time
	n      int
	err    error
}

func (f *fakeSweeper) DeleteOlderThan(ctx context.Context, prefix string, cutoff time.Time) (int, error) {
	f.prefix = prefix
	f.cutoff = cutoff
	return f.n, f.err
}

func TestSweepTargetsSessionKeys(t *testing.T) {
	sweeper := &fakeSweeper{n: 2}
	j, err := New("@hourly", sweeper, 72*time.Hour, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	before := time.Now().Add(-72 * time.Hour)
	j.sweep()

	if sweeper.prefix != storage.SessionPrefix() {
		t.Fatalf("prefix = %q, want session prefix", sweeper.prefix)
	}
	if sweeper.cutoff.Before(before) || sweeper.cutoff.After(time.Now().Add(-72*time.Hour)) {
		t.Fatalf("cutoff %v is not about now minus the TTL", sweeper.cutoff)
	}
}

func TestNewRejectsBadSchedule(t *testing.T) {
	_, err := New("not a schedule", &fakeSweeper{}, time.Hour, log.New(io.Discard, "", 0))
	if err == nil {
		t.Fatal("expected schedule parse error")
	}
}
