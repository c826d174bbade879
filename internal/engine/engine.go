package engine

import "time"

// Engine is one live simulation instance. Implementations are not safe for
// concurrent use; the controller drives them from a single frame loop.
//
// The surface is deliberately error-free: the engine treats every call as
// always-succeeding, invalid geometry is filtered by the caller before
// submission, and lifecycle misuse is absorbed by [Handle]. Only Free
// returns an error, for the host to report at teardown.
type Engine interface {
	// RunIteration advances the simulation by the elapsed wall time and
	// returns the scene produced by the step.
	RunIteration(elapsed time.Duration) Snapshot

	AddCircle(center Point, radius float64)
	AddPolygon(vertices []Point)
	AddRigid(p Point)
	AddHinge(p Point)
	EraseAt(p Point)

	SetGravityMultiplier(v float64)
	SetFrictionMultiplier(v float64)
	SetRestitutionMultiplier(v float64)
	SetDynamicFriction(on bool)
	SetStaticFriction(on bool)

	// Free releases the engine's native resources. Callers go through
	// Handle.Destroy, which guarantees exactly one call.
	Free() error
}
