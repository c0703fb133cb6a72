package store

import (
	"context"
	"testing"
	"time"
)

func TestMemoryGetSetRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatal("expected miss before any Set")
	}
	if err := m.SetWithTTL(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}
	v, ok, err := m.Get(ctx, "k")
	if err != nil || !ok || string(v) != "v" {
		t.Fatalf("got %q %v %v", v, ok, err)
	}
}

func TestMemoryExpires(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	if err := m.SetWithTTL(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestMemoryIncr(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	n, err := m.Incr(ctx, "c", 3)
	if err != nil || n != 3 {
		t.Fatalf("got %d %v", n, err)
	}
	n, err = m.Incr(ctx, "c", 4)
	if err != nil || n != 7 {
		t.Fatalf("got %d %v", n, err)
	}
}

func TestMemoryIncrWindowExpiresAsUnit(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	n, err := m.IncrWindow(ctx, "w", 1, time.Millisecond)
	if err != nil || n != 1 {
		t.Fatalf("got %d %v", n, err)
	}
	time.Sleep(5 * time.Millisecond)
	n, err = m.IncrWindow(ctx, "w", 1, time.Hour)
	if err != nil || n != 1 {
		t.Fatalf("expected window reset after expiry, got %d %v", n, err)
	}
}
