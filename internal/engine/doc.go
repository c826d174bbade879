// Package engine defines the boundary to the black-box physics engine.
//
// The engine is an external collaborator: it owns collision detection,
// constraint resolution and integration, and this package only describes
// what crosses the boundary:
//
//   - [Engine]: the call surface of one live simulation instance
//   - [Handle]: ownership wrapper enforcing create-once / free-once
//   - [Snapshot]: the renderable result of one simulation step
//   - [Config]: the initial scene handed to the engine at creation
//
// # Lifetime
//
// One mounted view owns exactly one engine instance through a [Handle].
// After [Handle.Destroy] every call on the handle is silently suppressed,
// so frame callbacks and hold timers armed before teardown fire harmlessly
// after it. Engine calls themselves never fail; there is nothing sensible
// to do about a bad call mid-frame, and invalid input is the controller's
// job to filter out beforehand.
//
// # Conventions
//
// Points serialize as two-element JSON arrays and colors as three-element
// arrays with float channels in 0..1, matching the engine's native output.
// All coordinates are in simulation space, which is the canvas backing
// store's pixel grid, y-down.
package engine
