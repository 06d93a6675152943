package pool

import "testing"

type widget struct {
	value int
	live  bool
}

func TestPoolAcquireReleaseHooks(t *testing.T) {
	var acquired, released int
	p := New(
		func() *widget { return &widget{} },
		func(w *widget) { w.live = true; acquired++ },
		func(w *widget) { w.live = false; w.value = 0; released++ },
	)

	w := p.Acquire()
	if !w.live {
		t.Fatalf("expected OnAcquire to mark widget live")
	}
	w.value = 42
	p.Release(w)
	if w.live {
		t.Fatalf("expected OnRelease to mark widget dead")
	}
	if acquired != 1 || released != 1 {
		t.Fatalf("acquired=%d released=%d, want 1,1", acquired, released)
	}

	w2 := p.Acquire()
	if w2.value != 0 {
		t.Fatalf("expected recycled widget to be reset by OnRelease, got value=%d", w2.value)
	}
}
