package monitor

import "testing"

func TestPriceBufferEvictsOldest(t *testing.T) {
	b := NewPriceBuffer(3)
	for i := int64(1); i <= 5; i++ {
		b.Append(PricePoint{Tick: i, Price: float64(100 + i)})
	}

	if b.Len() != 3 {
		t.Fatalf("expected len 3 after overflow, got %d", b.Len())
	}

	points := b.Points()
	wantTicks := []int64{3, 4, 5}
	for i, want := range wantTicks {
		if points[i].Tick != want {
			t.Errorf("points[%d].Tick = %d, want %d", i, points[i].Tick, want)
		}
	}

	last, ok := b.Last()
	if !ok || last.Tick != 5 {
		t.Errorf("Last() = %+v, %v, want tick 5", last, ok)
	}
}

func TestPriceBufferEmpty(t *testing.T) {
	b := NewPriceBuffer(10)

	if b.Len() != 0 {
		t.Errorf("fresh buffer has len %d", b.Len())
	}
	if _, ok := b.Last(); ok {
		t.Error("Last() reported a point in an empty buffer")
	}
	if got := b.Prices(); len(got) != 0 {
		t.Errorf("Prices() = %v, want empty", got)
	}
}

func TestPriceBufferCloneIsIndependent(t *testing.T) {
	b := NewPriceBuffer(4)
	b.Append(PricePoint{Tick: 1, Price: 450})
	b.Append(PricePoint{Tick: 2, Price: 451})

	c := b.Clone()
	c.Append(PricePoint{Tick: 3, Price: 452})

	if b.Len() != 2 {
		t.Errorf("appending to clone changed original, len = %d", b.Len())
	}
	if c.Len() != 3 {
		t.Errorf("clone len = %d, want 3", c.Len())
	}
	if c.Capacity() != b.Capacity() {
		t.Errorf("clone capacity %d != original %d", c.Capacity(), b.Capacity())
	}
}

func TestPriceBufferMinimumCapacity(t *testing.T) {
	b := NewPriceBuffer(0)
	if b.Capacity() != 1 {
		t.Fatalf("capacity %d, want 1", b.Capacity())
	}
	b.Append(PricePoint{Tick: 1, Price: 450})
	b.Append(PricePoint{Tick: 2, Price: 451})
	if last, _ := b.Last(); last.Tick != 2 {
		t.Errorf("last tick = %d, want 2", last.Tick)
	}
}
