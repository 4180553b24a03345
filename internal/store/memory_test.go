package store

import (
	"context"
	"testing"
)

func TestMemoryGetMissingKey(t *testing.T) {
	m := NewMemory()
	v, ok, err := m.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || v != nil {
		t.Errorf("Get(absent) = %v, %v; want nil, false", v, ok)
	}
}

func TestMemorySetThenGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	if err := m.Set(ctx, "k", []byte("value")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || string(v) != "value" {
		t.Errorf("Get(k) = %q, %v; want %q, true", v, ok, "value")
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	in := []byte("original")
	if err := m.Set(ctx, "k", in); err != nil {
		t.Fatalf("Set: %v", err)
	}
	in[0] = 'X' // mutating the caller's slice must not change the store
	out, _, _ := m.Get(ctx, "k")
	if string(out) != "original" {
		t.Errorf("stored value changed to %q", out)
	}
	out[0] = 'Y' // and mutating the returned slice must not either
	again, _, _ := m.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("stored value changed to %q after read mutation", again)
	}
}

func TestMemoryOverwrite(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	m.Set(ctx, "k", []byte("one"))
	m.Set(ctx, "k", []byte("two"))
	v, _, _ := m.Get(ctx, "k")
	if string(v) != "two" {
		t.Errorf("Get(k) = %q, want %q", v, "two")
	}
}
