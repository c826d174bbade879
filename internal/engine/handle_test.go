package engine_test

import (
	"errors"
	"testing"
	"time"

	"doodlebox/internal/engine"
	"doodlebox/internal/engine/enginetest"
)

func TestHandleDestroyOnce(t *testing.T) {
	fake := enginetest.New()
	h := engine.NewHandle(fake)

	if !h.Alive() {
		t.Fatal("Alive() = false before Destroy")
	}
	if err := h.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if h.Alive() {
		t.Error("Alive() = true after Destroy")
	}
	if err := h.Destroy(); !errors.Is(err, engine.ErrDestroyed) {
		t.Errorf("second Destroy() error = %v, want ErrDestroyed", err)
	}
	if fake.Freed != 1 {
		t.Errorf("Freed = %d, want exactly 1", fake.Freed)
	}
}

func TestHandleSuppressesAfterDestroy(t *testing.T) {
	fake := enginetest.New()
	h := engine.NewHandle(fake)
	if err := h.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}

	if _, ok := h.RunIteration(16 * time.Millisecond); ok {
		t.Error("RunIteration() ok = true after Destroy")
	}
	h.AddCircle(engine.Point{X: 1, Y: 2}, 10)
	h.AddPolygon([]engine.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}})
	h.AddRigid(engine.Point{X: 3, Y: 4})
	h.AddHinge(engine.Point{X: 5, Y: 6})
	h.EraseAt(engine.Point{X: 7, Y: 8})
	h.SetGravityMultiplier(5)
	h.SetDynamicFriction(false)

	if len(fake.Calls) != 0 {
		t.Errorf("calls after Destroy = %v, want none", fake.Calls)
	}
	if len(fake.Iterations) != 0 {
		t.Errorf("iterations after Destroy = %v, want none", fake.Iterations)
	}
}

func TestHandleForwardsWhileAlive(t *testing.T) {
	fake := enginetest.New()
	fake.PushSnapshot(engine.Snapshot{Circles: []engine.Circle{{Radius: 9}}})
	h := engine.NewHandle(fake)

	snap, ok := h.RunIteration(16 * time.Millisecond)
	if !ok {
		t.Fatal("RunIteration() ok = false while alive")
	}
	if len(snap.Circles) != 1 || snap.Circles[0].Radius != 9 {
		t.Errorf("snapshot = %+v, want the queued one", snap)
	}
	if len(fake.Iterations) != 1 || fake.Iterations[0] != 16*time.Millisecond {
		t.Errorf("iterations = %v, want [16ms]", fake.Iterations)
	}

	h.AddCircle(engine.Point{X: 10, Y: 20}, 30)
	calls := fake.Named("add_circle")
	if len(calls) != 1 || calls[0].Point != (engine.Point{X: 10, Y: 20}) || calls[0].Radius != 30 {
		t.Errorf("add_circle calls = %v, want one at (10,20) r=30", calls)
	}
}

func TestNilHandleIsDead(t *testing.T) {
	var h *engine.Handle
	if h.Alive() {
		t.Error("nil handle reports alive")
	}
}
