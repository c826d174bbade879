// Package input disambiguates raw pointer gestures into one-shot engine
// mutations: grow a circle by holding, trace a polygon by dragging, or
// apply the active tool on tap. All timing is data-driven; the hold timer
// is a deadline consumed by [Machine.Tick], never a goroutine.
package input

import (
	"time"

	"doodlebox/internal/engine"
)

// Gesture tuning. A press that stays put for HoldThreshold becomes a
// growing circle; RadiusGrowthInterval converts held time to radius, one
// simulation unit per interval. Both are UX values, not physics.
const (
	HoldThreshold        = 400 * time.Millisecond
	RadiusGrowthInterval = 20 * time.Millisecond
)

// MinPolygonPath is the shortest recorded path that still commits a
// polygon; anything with fewer points is discarded on release.
const MinPolygonPath = 4

// Phase identifies the gesture currently being disambiguated.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseGrowing
	PhaseTracing
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseGrowing:
		return "growing"
	case PhaseTracing:
		return "tracing"
	default:
		return "idle"
	}
}

// Sink receives the one-shot commands a finished gesture produces.
// *engine.Handle satisfies it, and a destroyed handle absorbs the calls, so
// the machine itself never checks liveness.
type Sink interface {
	AddCircle(center engine.Point, radius float64)
	AddPolygon(vertices []engine.Point)
	AddRigid(p engine.Point)
	AddHinge(p engine.Point)
	EraseAt(p engine.Point)
}

// PreviewKind says what the in-progress gesture looks like.
type PreviewKind int

const (
	PreviewNone PreviewKind = iota
	PreviewCircle
	PreviewPath
)

// Preview describes the uncommitted gesture for stroke-only rendering.
// Path aliases the machine's live buffer; render it, don't retain it.
type Preview struct {
	Kind   PreviewKind
	Center engine.Point
	Radius float64
	Path   []engine.Point
}

// Machine turns pointer and key events into at most one engine mutation per
// completed gesture. Points arrive already mapped to simulation space.
//
// Hosts must call Tick once per frame before delivering that frame's
// pointer events, so a hold deadline that elapsed strictly before a release
// is honored. The machine is not safe for concurrent use; like the rest of
// the view it runs on the host's frame callback.
type Machine struct {
	sink Sink

	phase    Phase
	tool     Tool
	downAt   time.Time // pointer-down instant of the current gesture
	deadline time.Time // when Pending becomes Growing; zero when disarmed
	center   engine.Point
	path     []engine.Point
}

func NewMachine(sink Sink) *Machine {
	return &Machine{sink: sink, path: make([]engine.Point, 0, 64)}
}

// Phase returns the current gesture phase.
func (m *Machine) Phase() Phase { return m.phase }

// ActiveTool returns the tool armed by the most recent key-down.
func (m *Machine) ActiveTool() Tool { return m.tool }

// Tick fires the hold deadline. Pending becomes Growing once now reaches
// the deadline; all other phases ignore time.
func (m *Machine) Tick(now time.Time) {
	if m.phase == PhasePending && !m.deadline.IsZero() && !now.Before(m.deadline) {
		m.phase = PhaseGrowing
		m.deadline = time.Time{}
	}
}

// PointerDown starts disambiguating a gesture, or performs the active
// tool's one-shot action and stays idle. A down arriving mid-gesture (the
// previous up was lost) abandons the old gesture without committing it.
func (m *Machine) PointerDown(p engine.Point, now time.Time) {
	if m.phase != PhaseIdle {
		m.reset()
	}
	if m.tool != ToolNone {
		m.applyTool(p)
		return
	}
	m.phase = PhasePending
	m.downAt = now
	m.deadline = now.Add(HoldThreshold)
	m.center = p
}

// PointerMove reinterprets a pending press as polygon tracing and extends
// an active trace. A growing circle ignores movement entirely: its radius
// is time-derived, not distance-derived.
func (m *Machine) PointerMove(p engine.Point, now time.Time) {
	switch m.phase {
	case PhasePending:
		m.deadline = time.Time{}
		m.phase = PhaseTracing
		m.path = append(m.path[:0], m.center)
	case PhaseTracing:
		m.path = append(m.path, p)
	}
}

// PointerUp completes the gesture. A held circle commits with radius
// proportional to the total press duration; a traced path commits only
// when long enough to hull; a quick tap commits nothing.
func (m *Machine) PointerUp(p engine.Point, now time.Time) {
	switch m.phase {
	case PhaseGrowing:
		m.sink.AddCircle(m.center, m.radius(now))
	case PhaseTracing:
		if len(m.path) >= MinPolygonPath {
			m.sink.AddPolygon(append([]engine.Point(nil), m.path...))
		}
	}
	m.reset()
}

// KeyDown arms a tool, replacing any previous selection.
func (m *Machine) KeyDown(t Tool) {
	if t == ToolNone {
		return
	}
	m.tool = t
}

// KeyUp disarms a tool only when the released key matches the active one,
// so overlapping presses (E down, R down, E up) leave the newer tool armed.
func (m *Machine) KeyUp(t Tool) {
	if m.tool == t {
		m.tool = ToolNone
	}
}

// Preview reports the in-progress gesture at the given instant.
func (m *Machine) Preview(now time.Time) Preview {
	switch m.phase {
	case PhaseGrowing:
		return Preview{Kind: PreviewCircle, Center: m.center, Radius: m.radius(now)}
	case PhaseTracing:
		if len(m.path) >= 2 {
			return Preview{Kind: PreviewPath, Path: m.path}
		}
	}
	return Preview{}
}

func (m *Machine) radius(now time.Time) float64 {
	return float64(now.Sub(m.downAt)) / float64(RadiusGrowthInterval)
}

func (m *Machine) applyTool(p engine.Point) {
	switch m.tool {
	case ToolEraser:
		m.sink.EraseAt(p)
	case ToolRigid:
		m.sink.AddRigid(p)
	case ToolHinge:
		m.sink.AddHinge(p)
	}
}

func (m *Machine) reset() {
	m.phase = PhaseIdle
	m.deadline = time.Time{}
	m.path = m.path[:0]
}
