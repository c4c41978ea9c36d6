package ids

import "testing"

func TestRegistryAllocatesMonotonically(t *testing.T) {
	var r Registry

	w1 := r.NewWindowID()
	w2 := r.NewWindowID()
	if w1 == 0 || w2 == 0 {
		t.Fatal("IDs must never be zero")
	}
	if w2 <= w1 {
		t.Fatalf("expected w2 (%d) > w1 (%d)", w2, w1)
	}

	t1 := r.NewTagID()
	if t1 == 0 {
		t.Fatal("tag IDs must never be zero")
	}

	b1 := r.NewBindID()
	b2 := r.NewBindID()
	if b2 <= b1 {
		t.Fatalf("expected b2 (%d) > b1 (%d)", b2, b1)
	}
}

func TestDifferentKindsHaveIndependentSequences(t *testing.T) {
	var r Registry
	w := r.NewWindowID()
	tg := r.NewTagID()
	if uint32(w) != 1 || uint32(tg) != 1 {
		t.Fatalf("expected independent counters starting at 1, got window=%d tag=%d", w, tg)
	}
}
