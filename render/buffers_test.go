package render

import "testing"

func TestBuffersPushAndCount(t *testing.T) {
	b := NewBuffers(2)

	if !b.push(1, 2, 3, 4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.5, 0) {
		t.Fatal("push into empty buffers failed")
	}
	if b.Count() != 1 {
		t.Errorf("count = %d, want 1", b.Count())
	}
	if b.Positions[0] != 1 || b.Positions[1] != 2 || b.Positions[2] != 3 {
		t.Errorf("positions = %v", b.Positions[:3])
	}
	if b.Sizes[0] != 4 || b.Alphas[0] != 0.8 || b.Glows[0] != 0.9 {
		t.Error("scalar attributes misplaced")
	}
}

func TestBuffersPushPastCapacity(t *testing.T) {
	b := NewBuffers(1)
	b.push(0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0)

	if b.push(0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0) {
		t.Error("push past capacity succeeded")
	}
	if b.Count() != 1 {
		t.Errorf("count = %d, want 1", b.Count())
	}
}

func TestResizeSameCapacityIsNoOp(t *testing.T) {
	b := NewBuffers(8)
	disposed := false
	b.SetDisposer(func() { disposed = true })
	b.push(1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0)

	before := &b.Positions[0]
	b.Resize(8)

	if disposed {
		t.Error("same-capacity resize invoked the disposer")
	}
	if &b.Positions[0] != before {
		t.Error("same-capacity resize reallocated the arrays")
	}
	if b.Count() != 1 {
		t.Errorf("count = %d, want 1 (resize must not reset the frame)", b.Count())
	}
}

func TestResizeDisposesBeforeRealloc(t *testing.T) {
	b := NewBuffers(4)
	calls := 0
	b.SetDisposer(func() {
		calls++
		if len(b.Positions) != 4*3 {
			t.Error("disposer ran after reallocation")
		}
	})

	b.Resize(16)
	if calls != 1 {
		t.Fatalf("disposer calls = %d, want 1", calls)
	}
	if b.Capacity() != 16 || len(b.Positions) != 16*3 {
		t.Errorf("capacity = %d, positions = %d", b.Capacity(), len(b.Positions))
	}
	if b.Count() != 0 {
		t.Error("resize did not rewind the draw range")
	}
}

func TestResetRewindsWithoutRealloc(t *testing.T) {
	b := NewBuffers(4)
	b.push(1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0)
	before := &b.Positions[0]

	b.Reset()
	if b.Count() != 0 {
		t.Errorf("count = %d, want 0", b.Count())
	}
	if &b.Positions[0] != before {
		t.Error("reset reallocated the arrays")
	}
}
