package canvas_test

import (
	"errors"
	"testing"
	"time"

	"doodlebox/internal/canvas"
	"doodlebox/internal/engine"
	"doodlebox/internal/engine/enginetest"
	"doodlebox/internal/input"
	"doodlebox/internal/metrics"
)

func TestControllerStepDeltas(t *testing.T) {
	fake := enginetest.New()
	ctrl := canvas.NewController(engine.NewHandle(fake), nil)
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	ctrl.Tick(t0)
	ctrl.Tick(t0.Add(16 * time.Millisecond))
	ctrl.Tick(t0.Add(33 * time.Millisecond))

	want := []time.Duration{0, 16 * time.Millisecond, 17 * time.Millisecond}
	if len(fake.Iterations) != len(want) {
		t.Fatalf("engine stepped %d times, want %d", len(fake.Iterations), len(want))
	}
	for i, d := range want {
		if fake.Iterations[i] != d {
			t.Errorf("step %d elapsed = %v, want %v", i, fake.Iterations[i], d)
		}
	}
}

func TestControllerMapsPointerToBackingPixels(t *testing.T) {
	fake := enginetest.New()
	ctrl := canvas.NewController(engine.NewHandle(fake), nil)
	ctrl.Resize(canvas.Rect{Left: 100, Top: 0, Right: 740, Bottom: 360}, 2)

	ctrl.KeyDown(input.ToolEraser)
	ctrl.PointerDown(110, 20, time.Now())

	erases := fake.Named("erase_at")
	if len(erases) != 1 {
		t.Fatalf("erase_at called %d times, want 1", len(erases))
	}
	if want := (engine.Point{X: 20, Y: 40}); erases[0].Point != want {
		t.Errorf("erase_at point = %v, want %v", erases[0].Point, want)
	}
}

func TestControllerHoldGesture(t *testing.T) {
	fake := enginetest.New()
	ctrl := canvas.NewController(engine.NewHandle(fake), nil)
	ctrl.Resize(canvas.Rect{Left: 0, Top: 0, Right: 640, Bottom: 360}, 1)
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	ctrl.PointerDown(50, 50, t0)
	ctrl.Tick(t0.Add(400 * time.Millisecond))
	if ctrl.Phase() != input.PhaseGrowing {
		t.Fatalf("Phase() = %v, want %v", ctrl.Phase(), input.PhaseGrowing)
	}
	ctrl.PointerUp(50, 50, t0.Add(600*time.Millisecond))

	circles := fake.Named("add_circle")
	if len(circles) != 1 {
		t.Fatalf("add_circle called %d times, want 1", len(circles))
	}
	if circles[0].Radius != 30 {
		t.Errorf("radius = %v, want 30", circles[0].Radius)
	}
	if want := (engine.Point{X: 50, Y: 50}); circles[0].Point != want {
		t.Errorf("center = %v, want %v", circles[0].Point, want)
	}
}

func TestControllerHonorsDeadlineElapsedBetweenFrames(t *testing.T) {
	fake := enginetest.New()
	ctrl := canvas.NewController(engine.NewHandle(fake), nil)
	ctrl.Resize(canvas.Rect{Left: 0, Top: 0, Right: 640, Bottom: 360}, 1)
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// No frame tick lands between the press and the release, but the hold
	// threshold passed, so the release must still commit a circle.
	ctrl.PointerDown(50, 50, t0)
	ctrl.PointerUp(50, 50, t0.Add(500*time.Millisecond))

	circles := fake.Named("add_circle")
	if len(circles) != 1 {
		t.Fatalf("add_circle called %d times, want 1", len(circles))
	}
	if circles[0].Radius != 25 {
		t.Errorf("radius = %v, want 25", circles[0].Radius)
	}
}

func TestControllerCloseSuppressesEverything(t *testing.T) {
	fake := enginetest.New()
	ctrl := canvas.NewController(engine.NewHandle(fake), nil)
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	fake.PushSnapshot(engine.Snapshot{Circles: []engine.Circle{{Radius: 5}}})
	snap, ok := ctrl.Tick(t0)
	if !ok || len(snap.Circles) != 1 {
		t.Fatalf("Tick() = (%d circles, %v), want (1, true)", len(snap.Circles), ok)
	}

	if err := ctrl.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if fake.Freed != 1 {
		t.Fatalf("engine freed %d times, want 1", fake.Freed)
	}
	if err := ctrl.Close(); !errors.Is(err, engine.ErrDestroyed) {
		t.Errorf("second Close() = %v, want ErrDestroyed", err)
	}

	// Callbacks already in flight at teardown degrade to no-ops: the stale
	// tick still reports the last good snapshot but never reaches the engine.
	snap, ok = ctrl.Tick(t0.Add(16 * time.Millisecond))
	if ok {
		t.Error("Tick() after Close reported ok")
	}
	if len(snap.Circles) != 1 {
		t.Errorf("Tick() after Close lost the cached snapshot")
	}
	ctrl.PointerDown(10, 10, t0.Add(20*time.Millisecond))
	ctrl.PointerUp(10, 10, t0.Add(700*time.Millisecond))

	if n := len(fake.Iterations); n != 1 {
		t.Errorf("engine stepped %d times, want 1", n)
	}
	if n := len(fake.Calls); n != 0 {
		t.Errorf("engine received %d mutations after Close, want 0", n)
	}
}

func TestControllerObservesStepTimes(t *testing.T) {
	fake := enginetest.New()
	steps := metrics.NewStepTime(16)
	ctrl := canvas.NewController(engine.NewHandle(fake), steps)
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	ctrl.Tick(t0)
	ctrl.Tick(t0.Add(16 * time.Millisecond))
	ctrl.Tick(t0.Add(32 * time.Millisecond))

	if steps.Count() != 3 {
		t.Errorf("Count() = %d, want 3", steps.Count())
	}
	if steps.Max() < 0 {
		t.Errorf("Max() = %v, want >= 0", steps.Max())
	}
}
