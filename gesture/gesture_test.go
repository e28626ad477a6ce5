package gesture

import "testing"

func TestAdvanceProgress(t *testing.T) {
	r := NewRunner()
	r.Trigger(Spin, 1.0)

	s := r.Advance(0.25)
	if s == nil {
		t.Fatal("expected active gesture snapshot")
	}
	if s.Name != Spin || s.Progress != 0.25 {
		t.Errorf("snapshot = %+v, want spin at 0.25", s)
	}
}

func TestIdleRunnerReturnsNil(t *testing.T) {
	r := NewRunner()
	if s := r.Advance(0.1); s != nil {
		t.Errorf("idle runner returned %+v, want nil", s)
	}
}

func TestCompletionFrameReportsProgressOne(t *testing.T) {
	r := NewRunner()
	r.Trigger(Glow, 0.5)

	s := r.Advance(0.75)
	if s == nil {
		t.Fatal("completion frame must still return a snapshot")
	}
	if s.Progress != 1 {
		t.Errorf("completion progress = %v, want exactly 1", s.Progress)
	}
	if r.Active() {
		t.Error("runner still active after completion")
	}
	if s2 := r.Advance(0.1); s2 != nil {
		t.Errorf("post-completion advance returned %+v, want nil", s2)
	}
}

func TestTriggerReplacesActiveGesture(t *testing.T) {
	r := NewRunner()
	r.Trigger(Spin, 2.0)
	r.Advance(1.0)

	r.Trigger(Rain, 1.0)
	s := r.Advance(0.5)
	if s == nil || s.Name != Rain {
		t.Fatalf("snapshot = %+v, want rain", s)
	}
	if s.Progress != 0.5 {
		t.Errorf("replacement progress = %v, want 0.5 (clock restarted)", s.Progress)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	r := NewRunner()
	r.Trigger(Shimmer, 1.0)

	a := r.Advance(0.2)
	a.Progress = 99

	b := r.Advance(0.2)
	if b.Progress != 0.4 {
		t.Errorf("mutating a snapshot leaked into the runner: progress = %v", b.Progress)
	}
}

func TestSetCenter(t *testing.T) {
	r := NewRunner()
	r.Trigger(Shimmer, 1.0)
	r.SetCenter(120, 80)

	s := r.Advance(0.1)
	if s.CenterX != 120 || s.CenterY != 80 {
		t.Errorf("center = (%v, %v), want (120, 80)", s.CenterX, s.CenterY)
	}
}

func TestCancel(t *testing.T) {
	r := NewRunner()
	r.Trigger(Spin, 1.0)
	r.Cancel()

	if r.Active() {
		t.Error("runner active after cancel")
	}
	if s := r.Advance(0.1); s != nil {
		t.Errorf("cancelled runner returned %+v, want nil", s)
	}
}

func TestZeroDurationGetsDefault(t *testing.T) {
	r := NewRunner()
	r.Trigger(Spin, 0)

	s := r.Advance(0.5)
	if s == nil || s.Progress >= 1 {
		t.Error("zero duration should fall back to a positive default")
	}
}
