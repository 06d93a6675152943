package identity

import "testing"

func TestAllocatorReuseBumpsGeneration(t *testing.T) {
	a := NewAllocator(4)

	h1 := a.Allocate()
	if h1.Index == 0 {
		t.Fatalf("Allocate returned reserved index 0")
	}

	a.Free(h1)
	h2 := a.Allocate()

	if h2.Index != h1.Index {
		// Free list is LIFO, so the same index should come back first.
		t.Fatalf("expected index reuse, got %v then %v", h1, h2)
	}
	if h2.Generation == h1.Generation {
		t.Fatalf("generation was not bumped on reuse: %v -> %v", h1, h2)
	}
	if a.IsLive(h1) {
		t.Fatalf("stale handle %v reported live", h1)
	}
}

func TestAllocatorExhaustionPanics(t *testing.T) {
	a := NewAllocator(2) // capacity 2: index 0 reserved, only index 1 allocatable
	a.Allocate()

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on exhaustion")
		}
	}()
	a.Allocate()
}

func TestMapStaleGenerationMisses(t *testing.T) {
	a := NewAllocator(4)
	m := NewMap[string](4)

	h := a.Allocate()
	m.Set(h, "entity-1")

	if v, ok := m.Get(h); !ok || v != "entity-1" {
		t.Fatalf("Get(%v) = %v, %v; want entity-1, true", h, v, ok)
	}

	a.Free(h)
	fresh := a.Allocate()
	if fresh.Index == h.Index && fresh.Generation != h.Generation {
		if _, ok := m.Get(fresh); ok {
			t.Fatalf("Get with fresh generation unexpectedly hit stale entry")
		}
	}

	// The map is not told about allocator frees; once the reused slot is
	// set for the new handle, the old handle's generation is stale.
	m.Set(fresh, "entity-2")
	stale := h
	if _, ok := m.Get(stale); ok {
		t.Fatalf("Get with stale generation succeeded, want miss")
	}
}

func TestHandleEncodeRoundTrip(t *testing.T) {
	h := Handle{Index: 1234, Generation: 5678}
	got := DecodeHandle(h.Encode())
	if got != h {
		t.Fatalf("round-trip = %v, want %v", got, h)
	}
}
