// Package enginetest provides an in-memory recording engine for exercising
// the controller without the wasm artifact.
package enginetest

import (
	"time"

	"doodlebox/internal/engine"
)

// Call is one recorded engine call: the export name plus whichever
// arguments that call carries.
type Call struct {
	Name   string
	Point  engine.Point
	Radius float64
	Path   []engine.Point
	Value  float64
	On     bool
}

// Fake implements engine.Engine and records every call made to it. Queue
// snapshots with PushSnapshot; RunIteration pops them in order and repeats
// the last one once the queue runs dry, so a test can drive as many frames
// as it likes.
type Fake struct {
	Calls      []Call
	Iterations []time.Duration
	Freed      int

	Gravity         float64
	Friction        float64
	Restitution     float64
	DynamicFriction bool
	StaticFriction  bool

	queue []engine.Snapshot
	last  engine.Snapshot
}

// New returns a Fake at the engine's defaults: all multipliers 1, both
// friction modes on.
func New() *Fake {
	return &Fake{
		Gravity:         1,
		Friction:        1,
		Restitution:     1,
		DynamicFriction: true,
		StaticFriction:  true,
	}
}

// PushSnapshot queues a snapshot for a future RunIteration to return.
func (f *Fake) PushSnapshot(s engine.Snapshot) {
	f.queue = append(f.queue, s)
}

// Named returns the recorded calls with the given name, in order.
func (f *Fake) Named(name string) []Call {
	var out []Call
	for _, c := range f.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fake) RunIteration(elapsed time.Duration) engine.Snapshot {
	f.Iterations = append(f.Iterations, elapsed)
	if len(f.queue) > 0 {
		f.last = f.queue[0]
		f.queue = f.queue[1:]
	}
	return f.last
}

func (f *Fake) AddCircle(center engine.Point, radius float64) {
	f.Calls = append(f.Calls, Call{Name: "add_circle", Point: center, Radius: radius})
}

func (f *Fake) AddPolygon(vertices []engine.Point) {
	path := append([]engine.Point(nil), vertices...)
	f.Calls = append(f.Calls, Call{Name: "add_polygon", Path: path})
}

func (f *Fake) AddRigid(p engine.Point) {
	f.Calls = append(f.Calls, Call{Name: "add_rigid", Point: p})
}

func (f *Fake) AddHinge(p engine.Point) {
	f.Calls = append(f.Calls, Call{Name: "add_hinge", Point: p})
}

func (f *Fake) EraseAt(p engine.Point) {
	f.Calls = append(f.Calls, Call{Name: "erase_at", Point: p})
}

func (f *Fake) SetGravityMultiplier(v float64) {
	f.Gravity = v
	f.Calls = append(f.Calls, Call{Name: "set_gravity_multiplier", Value: v})
}

func (f *Fake) SetFrictionMultiplier(v float64) {
	f.Friction = v
	f.Calls = append(f.Calls, Call{Name: "set_friction_multiplier", Value: v})
}

func (f *Fake) SetRestitutionMultiplier(v float64) {
	f.Restitution = v
	f.Calls = append(f.Calls, Call{Name: "set_restitution_multiplier", Value: v})
}

func (f *Fake) SetDynamicFriction(on bool) {
	f.DynamicFriction = on
	f.Calls = append(f.Calls, Call{Name: "set_dynamic_friction", On: on})
}

func (f *Fake) SetStaticFriction(on bool) {
	f.StaticFriction = on
	f.Calls = append(f.Calls, Call{Name: "set_static_friction", On: on})
}

func (f *Fake) Free() error {
	f.Freed++
	return nil
}
