package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryGetMissing(t *testing.T) {
	m := NewMemory()

	_, err := m.Get(context.Background(), "nope")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestMemorySetGetDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "v1" {
		t.Fatalf("got %q", got)
	}

	// The store holds its own copy; mutating the returned slice must not
	// leak back in.
	got[0] = 'X'
	again, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(again) != "v1" {
		t.Fatalf("stored value mutated: %q", again)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.Get(ctx, "k"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestMemoryDeleteOlderThan(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	now := time.Now()
	m.now = func() time.Time { return now.Add(-2 * time.Hour) }
	if err := m.Set(ctx, SessionKey("old", KeyCartItems), []byte("[]")); err != nil {
		t.Fatalf("set: %v", err)
	}

	m.now = func() time.Time { return now }
	if err := m.Set(ctx, SessionKey("fresh", KeyCartItems), []byte("[]")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := m.Set(ctx, KeyStockItems, []byte("[]")); err != nil {
		t.Fatalf("set: %v", err)
	}

	n, err := m.DeleteOlderThan(ctx, SessionPrefix(), now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 removal, got %d", n)
	}

	if _, err := m.Get(ctx, SessionKey("old", KeyCartItems)); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("stale session key survived the sweep")
	}
	if _, err := m.Get(ctx, SessionKey("fresh", KeyCartItems)); err != nil {
		t.Fatalf("fresh session key swept: %v", err)
	}
	// Global keys never age out, even when stale.
	if _, err := m.Get(ctx, KeyStockItems); err != nil {
		t.Fatalf("global key swept: %v", err)
	}
}
