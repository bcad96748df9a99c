package sim

import "testing"

func TestBounceSequence(t *testing.T) {
	b := NewBounce(300)

	// up 3 ticks, down 3 ticks, ...
	expected := []float64{297, 294, 291, 294, 297, 300, 297, 294, 291, 294, 297, 300, 297, 294, 291, 294}
	for i, want := range expected {
		y, more := b.Step()
		if y != want {
			t.Errorf("tick %d: expected y=%.0f, got %.0f", i+1, want, y)
		}
		if more != (i < BounceTicks-1) {
			t.Errorf("tick %d: unexpected more=%v", i+1, more)
		}
	}

	if !b.Done() {
		t.Fatal("expected bounce to be done after 16 ticks")
	}
	if b.Count() != BounceTicks {
		t.Errorf("expected %d ticks, got %d", BounceTicks, b.Count())
	}
}

func TestBounceStopsItself(t *testing.T) {
	b := NewBounce(100)
	for i := 0; i < 40; i++ {
		b.Step()
	}
	if b.Count() != BounceTicks {
		t.Errorf("expected bounce to stop at %d ticks, got %d", BounceTicks, b.Count())
	}
	y, more := b.Step()
	if more || y != b.Y() {
		t.Errorf("expected finished bounce to stay put, got y=%f more=%v", y, more)
	}
}

func TestBounceOffset(t *testing.T) {
	b := NewBounce(50)
	if b.Direction() != Up {
		t.Error("bounce should start upwards")
	}
	b.Step()
	if b.Offset() != -BounceOffset {
		t.Errorf("expected offset %f, got %f", -BounceOffset, b.Offset())
	}
}
