// Package wasm runs the physics engine as a WebAssembly module.
//
// The engine artifact exports a small C-style ABI:
//
//	alloc(len i32) -> ptr i32                 guest memory for host writes
//	create(ptr, len i32)                      JSON scene config
//	run_iteration(micros f64) -> u64          (ptr<<32 | len) of JSON snapshot
//	add_circle(x, y, radius f64)
//	add_polygon(ptr i32, count i32)           packed little-endian x,y f64 pairs
//	add_rigid(x, y f64)
//	add_hinge(x, y f64)
//	erase_at(x, y f64)
//	set_gravity_multiplier(v f64)
//	set_friction_multiplier(v f64)
//	set_restitution_multiplier(v f64)
//	set_dynamic_friction(on i32)
//	set_static_friction(on i32)
//
// One [Bridge] is one engine instance. Load compiles and instantiates the
// artifact with wazero (pure Go, no cgo), calls create with the encoded
// config, and the result satisfies engine.Engine. Per the engine boundary
// contract the call surface stays error-free: a bridge fault (missing
// export, trap, undecodable snapshot) latches into Err for diagnostics and
// the faulted call degrades to a no-op returning a zero snapshot.
package wasm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"doodlebox/internal/engine"
)

// Bridge drives one instantiated engine module. Not safe for concurrent
// use; the controller calls it from a single frame loop.
type Bridge struct {
	ctx     context.Context
	runtime wazero.Runtime
	module  api.Module

	alloc          api.Function
	runIteration   api.Function
	addCircle      api.Function
	addPolygon     api.Function
	addRigid       api.Function
	addHinge       api.Function
	eraseAt        api.Function
	setGravity     api.Function
	setFriction    api.Function
	setRestitution api.Function
	setDynamic     api.Function
	setStatic      api.Function

	err error // first fault, diagnostics only
}

// Load reads the engine artifact from disk and instantiates it with the
// given initial scene.
func Load(ctx context.Context, path string, cfg engine.Config) (*Bridge, error) {
	bin, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read engine artifact: %w", err)
	}
	return Instantiate(ctx, bin, cfg)
}

// Instantiate compiles the artifact bytes, resolves the exports and calls
// create with the JSON-encoded config. Errors here are real: no engine
// instance exists yet, so the error-free contract does not apply.
func Instantiate(ctx context.Context, bin []byte, cfg engine.Config) (*Bridge, error) {
	r := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, r)

	mod, err := r.Instantiate(ctx, bin)
	if err != nil {
		r.Close(ctx)
		return nil, fmt.Errorf("instantiate engine: %w", err)
	}

	b := &Bridge{ctx: ctx, runtime: r, module: mod}
	create, err := b.resolve(mod)
	if err != nil {
		r.Close(ctx)
		return nil, err
	}

	doc, err := json.Marshal(cfg)
	if err != nil {
		r.Close(ctx)
		return nil, fmt.Errorf("encode scene config: %w", err)
	}
	ptr, err := b.write(doc)
	if err != nil {
		r.Close(ctx)
		return nil, err
	}
	if _, err := create.Call(ctx, uint64(ptr), uint64(len(doc))); err != nil {
		r.Close(ctx)
		return nil, fmt.Errorf("create: %w", err)
	}
	return b, nil
}

// resolve binds every required export, returning the create function which
// is only needed once.
func (b *Bridge) resolve(mod api.Module) (api.Function, error) {
	var createFn api.Function
	for _, e := range []struct {
		name string
		dst  *api.Function
	}{
		{"alloc", &b.alloc},
		{"create", &createFn},
		{"run_iteration", &b.runIteration},
		{"add_circle", &b.addCircle},
		{"add_polygon", &b.addPolygon},
		{"add_rigid", &b.addRigid},
		{"add_hinge", &b.addHinge},
		{"erase_at", &b.eraseAt},
		{"set_gravity_multiplier", &b.setGravity},
		{"set_friction_multiplier", &b.setFriction},
		{"set_restitution_multiplier", &b.setRestitution},
		{"set_dynamic_friction", &b.setDynamic},
		{"set_static_friction", &b.setStatic},
	} {
		fn := mod.ExportedFunction(e.name)
		if fn == nil {
			return nil, fmt.Errorf("engine artifact does not export %q", e.name)
		}
		*e.dst = fn
	}
	return createFn, nil
}

// Err reports the first fault the bridge absorbed, if any. The engine call
// surface never surfaces errors; hosts may log this at teardown.
func (b *Bridge) Err() error {
	return b.err
}

func (b *Bridge) fault(err error) {
	if b.err == nil {
		b.err = err
	}
}

// write copies data into guest memory via the module's allocator.
func (b *Bridge) write(data []byte) (uint32, error) {
	res, err := b.alloc.Call(b.ctx, uint64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("alloc %d bytes: %w", len(data), err)
	}
	ptr := api.DecodeU32(res[0])
	if !b.module.Memory().Write(ptr, data) {
		return 0, fmt.Errorf("write %d bytes at %#x: out of range", len(data), ptr)
	}
	return ptr, nil
}

func (b *Bridge) RunIteration(elapsed time.Duration) engine.Snapshot {
	if b.err != nil {
		return engine.Snapshot{}
	}
	micros := float64(elapsed) / float64(time.Microsecond)
	res, err := b.runIteration.Call(b.ctx, api.EncodeF64(micros))
	if err != nil {
		b.fault(fmt.Errorf("run_iteration: %w", err))
		return engine.Snapshot{}
	}
	ptr, length := unpackRegion(res[0])
	data, ok := b.module.Memory().Read(ptr, length)
	if !ok {
		b.fault(fmt.Errorf("run_iteration: snapshot region %#x+%d out of range", ptr, length))
		return engine.Snapshot{}
	}
	var snap engine.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		b.fault(fmt.Errorf("decode snapshot: %w", err))
		return engine.Snapshot{}
	}
	return snap
}

func (b *Bridge) AddCircle(center engine.Point, radius float64) {
	b.callF64("add_circle", b.addCircle, center.X, center.Y, radius)
}

func (b *Bridge) AddPolygon(vertices []engine.Point) {
	if b.err != nil || len(vertices) == 0 {
		return
	}
	buf := packPoints(vertices)
	ptr, err := b.write(buf)
	if err != nil {
		b.fault(err)
		return
	}
	if _, err := b.addPolygon.Call(b.ctx, uint64(ptr), uint64(len(vertices))); err != nil {
		b.fault(fmt.Errorf("add_polygon: %w", err))
	}
}

func (b *Bridge) AddRigid(p engine.Point) {
	b.callF64("add_rigid", b.addRigid, p.X, p.Y)
}

func (b *Bridge) AddHinge(p engine.Point) {
	b.callF64("add_hinge", b.addHinge, p.X, p.Y)
}

func (b *Bridge) EraseAt(p engine.Point) {
	b.callF64("erase_at", b.eraseAt, p.X, p.Y)
}

func (b *Bridge) SetGravityMultiplier(v float64) {
	b.callF64("set_gravity_multiplier", b.setGravity, v)
}

func (b *Bridge) SetFrictionMultiplier(v float64) {
	b.callF64("set_friction_multiplier", b.setFriction, v)
}

func (b *Bridge) SetRestitutionMultiplier(v float64) {
	b.callF64("set_restitution_multiplier", b.setRestitution, v)
}

func (b *Bridge) SetDynamicFriction(on bool) {
	b.callI32("set_dynamic_friction", b.setDynamic, on)
}

func (b *Bridge) SetStaticFriction(on bool) {
	b.callI32("set_static_friction", b.setStatic, on)
}

func (b *Bridge) callF64(name string, fn api.Function, args ...float64) {
	if b.err != nil {
		return
	}
	params := make([]uint64, len(args))
	for i, a := range args {
		params[i] = api.EncodeF64(a)
	}
	if _, err := fn.Call(b.ctx, params...); err != nil {
		b.fault(fmt.Errorf("%s: %w", name, err))
	}
}

func (b *Bridge) callI32(name string, fn api.Function, on bool) {
	if b.err != nil {
		return
	}
	var v int32
	if on {
		v = 1
	}
	if _, err := fn.Call(b.ctx, api.EncodeI32(v)); err != nil {
		b.fault(fmt.Errorf("%s: %w", name, err))
	}
}

// Free tears down the wazero runtime, releasing the module and its memory.
func (b *Bridge) Free() error {
	if b.runtime == nil {
		return nil
	}
	err := b.runtime.Close(b.ctx)
	b.runtime = nil
	b.module = nil
	return err
}
