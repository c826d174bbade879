package engine

import (
	"errors"
	"time"
)

// ErrDestroyed is returned by Destroy when the handle was already released.
var ErrDestroyed = errors.New("engine: handle already destroyed")

// Handle owns one live engine instance for the lifetime of one mounted
// view: created once on mount, destroyed once on unmount. Every call checks
// the destroyed flag first; after Destroy, mutators and setters become
// no-ops and RunIteration reports ok=false. That lets frame callbacks and
// hold timers armed before teardown fire harmlessly after it, which is the
// one latent failure mode the engine itself cannot guard against.
//
// Handle is not safe for concurrent use. The frame loop, input handling and
// teardown all run on one control flow, which is what makes a plain bool
// sufficient.
type Handle struct {
	eng       Engine
	destroyed bool
}

// NewHandle takes ownership of a freshly created engine.
func NewHandle(eng Engine) *Handle {
	return &Handle{eng: eng}
}

// Alive reports whether the underlying engine may still be called.
func (h *Handle) Alive() bool {
	return h != nil && !h.destroyed && h.eng != nil
}

// Destroy releases the engine. The first call frees native resources; every
// later call is a no-op returning ErrDestroyed.
func (h *Handle) Destroy() error {
	if !h.Alive() {
		return ErrDestroyed
	}
	h.destroyed = true
	return h.eng.Free()
}

// RunIteration advances the simulation. ok is false once the handle is
// destroyed; the zero snapshot it returns then must not be rendered.
func (h *Handle) RunIteration(elapsed time.Duration) (Snapshot, bool) {
	if !h.Alive() {
		return Snapshot{}, false
	}
	return h.eng.RunIteration(elapsed), true
}

func (h *Handle) AddCircle(center Point, radius float64) {
	if !h.Alive() {
		return
	}
	h.eng.AddCircle(center, radius)
}

func (h *Handle) AddPolygon(vertices []Point) {
	if !h.Alive() {
		return
	}
	h.eng.AddPolygon(vertices)
}

func (h *Handle) AddRigid(p Point) {
	if !h.Alive() {
		return
	}
	h.eng.AddRigid(p)
}

func (h *Handle) AddHinge(p Point) {
	if !h.Alive() {
		return
	}
	h.eng.AddHinge(p)
}

func (h *Handle) EraseAt(p Point) {
	if !h.Alive() {
		return
	}
	h.eng.EraseAt(p)
}

func (h *Handle) SetGravityMultiplier(v float64) {
	if !h.Alive() {
		return
	}
	h.eng.SetGravityMultiplier(v)
}

func (h *Handle) SetFrictionMultiplier(v float64) {
	if !h.Alive() {
		return
	}
	h.eng.SetFrictionMultiplier(v)
}

func (h *Handle) SetRestitutionMultiplier(v float64) {
	if !h.Alive() {
		return
	}
	h.eng.SetRestitutionMultiplier(v)
}

func (h *Handle) SetDynamicFriction(on bool) {
	if !h.Alive() {
		return
	}
	h.eng.SetDynamicFriction(on)
}

func (h *Handle) SetStaticFriction(on bool) {
	if !h.Alive() {
		return
	}
	h.eng.SetStaticFriction(on)
}
