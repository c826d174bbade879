// Package canvas ties one engine handle, the gesture machine, the frame
// clock and the coordinate mapper into a single per-view controller.
//
// Hosts feed it three kinds of events, all on one goroutine:
//
//   - [Controller.Tick] once per frame with a monotonic timestamp
//   - [Controller.PointerDown], [Controller.PointerMove] and
//     [Controller.PointerUp] with positions in screen points
//   - [Controller.KeyDown] and [Controller.KeyUp] for tool keys
//
// Every entry point checks the handle's liveness first, so callbacks that
// were already scheduled when [Controller.Close] ran degrade to no-ops
// instead of touching freed engine memory.
package canvas

import (
	"time"

	"doodlebox/internal/engine"
	"doodlebox/internal/input"
	"doodlebox/internal/metrics"
)

type Controller struct {
	handle  *engine.Handle
	machine *input.Machine
	clock   *Clock
	mapper  *Mapper
	steps   *metrics.StepTime
	snap    engine.Snapshot
}

// NewController wraps a live handle. steps may be nil when the host does
// not chart step times.
func NewController(h *engine.Handle, steps *metrics.StepTime) *Controller {
	return &Controller{
		handle:  h,
		machine: input.NewMachine(h),
		clock:   NewClock(),
		mapper:  NewMapper(),
		steps:   steps,
	}
}

// Tick advances the gesture machine and steps the engine by the elapsed
// time since the previous tick. It returns the fresh snapshot, or the
// last cached one with ok=false once the controller is closed; hosts stop
// rescheduling frames on ok=false.
func (c *Controller) Tick(now time.Time) (snap engine.Snapshot, ok bool) {
	if !c.handle.Alive() {
		return c.snap, false
	}
	c.machine.Tick(now)
	elapsed := c.clock.Tick(now)

	start := time.Now()
	snap, ok = c.handle.RunIteration(elapsed)
	if !ok {
		return c.snap, false
	}
	if c.steps != nil {
		c.steps.Observe(time.Since(start))
	}
	c.snap = snap
	return c.snap, true
}

// Resize records the canvas rectangle and device pixel ratio, reporting
// whether the backing size changed.
func (c *Controller) Resize(rect Rect, scale float64) bool {
	return c.mapper.Update(rect, scale)
}

// ResetClock makes the next tick report zero elapsed time. Hosts call it
// when resuming from a pause so the engine never sees the gap as one
// giant step.
func (c *Controller) ResetClock() { c.clock.Reset() }

// Pointer handlers tick the machine with the event's own timestamp before
// delivering it, so a hold deadline that elapsed between frames is honored
// even when the event arrives first.

func (c *Controller) PointerDown(x, y float64, now time.Time) {
	if !c.handle.Alive() {
		return
	}
	c.machine.Tick(now)
	c.machine.PointerDown(c.mapper.ToSim(x, y), now)
}

func (c *Controller) PointerMove(x, y float64, now time.Time) {
	if !c.handle.Alive() {
		return
	}
	c.machine.Tick(now)
	c.machine.PointerMove(c.mapper.ToSim(x, y), now)
}

func (c *Controller) PointerUp(x, y float64, now time.Time) {
	if !c.handle.Alive() {
		return
	}
	c.machine.Tick(now)
	c.machine.PointerUp(c.mapper.ToSim(x, y), now)
}

func (c *Controller) KeyDown(t input.Tool) { c.machine.KeyDown(t) }
func (c *Controller) KeyUp(t input.Tool)   { c.machine.KeyUp(t) }

func (c *Controller) ActiveTool() input.Tool { return c.machine.ActiveTool() }
func (c *Controller) Phase() input.Phase     { return c.machine.Phase() }

// Preview reports the in-progress gesture for stroke-only rendering.
func (c *Controller) Preview(now time.Time) input.Preview {
	return c.machine.Preview(now)
}

func (c *Controller) Mapper() *Mapper           { return c.mapper }
func (c *Controller) Snapshot() engine.Snapshot { return c.snap }
func (c *Controller) Alive() bool               { return c.handle.Alive() }

// Close frees the engine exactly once. Later ticks and pointer events
// become no-ops rather than errors.
func (c *Controller) Close() error {
	return c.handle.Destroy()
}
