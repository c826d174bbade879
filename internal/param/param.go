// Package param binds the user-tunable simulation parameters to the
// engine: three scalar multipliers and two friction toggles. Every change
// is pushed synchronously as one engine setter call.
package param

import "fmt"

// Parameter names understood by [Binder.Set].
const (
	Gravity         = "gravity"
	Friction        = "friction"
	Restitution     = "restitution"
	DynamicFriction = "dynamic_friction"
	StaticFriction  = "static_friction"
)

// Kind distinguishes continuous multipliers from boolean toggles.
type Kind int

const (
	KindScalar Kind = iota
	KindToggle
)

// Spec describes one tunable control: its name, a display label, UI
// bounds and the increment hosts should use for slider steps.
type Spec struct {
	Name    string
	Label   string
	Min     float64
	Max     float64
	Step    float64
	Default float64
	Kind    Kind
}

// Specs returns the tunables in display order. The bounds are UI limits,
// not physical ones; the engine owns the resulting behavior.
func Specs() []Spec {
	return []Spec{
		{Name: Gravity, Label: "Gravity", Min: -10, Max: 10, Step: 0.1, Default: 1, Kind: KindScalar},
		{Name: Friction, Label: "Friction", Min: 0, Max: 10, Step: 0.1, Default: 1, Kind: KindScalar},
		{Name: Restitution, Label: "Restitution", Min: -10, Max: 10, Step: 0.1, Default: 1, Kind: KindScalar},
		{Name: DynamicFriction, Label: "Dynamic friction", Min: 0, Max: 1, Step: 1, Default: 1, Kind: KindToggle},
		{Name: StaticFriction, Label: "Static friction", Min: 0, Max: 1, Step: 1, Default: 1, Kind: KindToggle},
	}
}

// Sink is the slice of the engine surface the binder pushes to.
// *engine.Handle satisfies it.
type Sink interface {
	SetGravityMultiplier(v float64)
	SetFrictionMultiplier(v float64)
	SetRestitutionMultiplier(v float64)
	SetDynamicFriction(on bool)
	SetStaticFriction(on bool)
}

// Binder tracks the current value of each tunable and forwards changes.
// It never batches or deduplicates: two identical writes produce two
// engine calls.
type Binder struct {
	sink   Sink
	specs  []Spec
	values map[string]float64
}

func NewBinder(sink Sink) *Binder {
	b := &Binder{sink: sink, specs: Specs(), values: make(map[string]float64)}
	for _, s := range b.specs {
		b.values[s.Name] = s.Default
	}
	return b
}

func (b *Binder) Specs() []Spec { return b.specs }

// Value returns the last value written for name, or its default.
func (b *Binder) Value(name string) float64 { return b.values[name] }

// On reports a toggle's current state.
func (b *Binder) On(name string) bool { return b.values[name] != 0 }

// Set clamps v to the parameter's UI bounds, records it and pushes the
// matching engine setter. Unknown names are the only error.
func (b *Binder) Set(name string, v float64) error {
	spec, ok := b.spec(name)
	if !ok {
		return fmt.Errorf("unknown parameter %q", name)
	}
	if v < spec.Min {
		v = spec.Min
	}
	if v > spec.Max {
		v = spec.Max
	}
	if spec.Kind == KindToggle && v != 0 {
		v = 1
	}
	b.values[name] = v
	b.push(name, v)
	return nil
}

// Adjust moves a scalar by whole slider increments; on a toggle any
// nonzero step flips it.
func (b *Binder) Adjust(name string, steps int) error {
	spec, ok := b.spec(name)
	if !ok {
		return fmt.Errorf("unknown parameter %q", name)
	}
	if spec.Kind == KindToggle {
		if steps == 0 {
			return nil
		}
		return b.Toggle(name)
	}
	return b.Set(name, b.values[name]+float64(steps)*spec.Step)
}

// Toggle flips a boolean parameter and pushes the new state.
func (b *Binder) Toggle(name string) error {
	spec, ok := b.spec(name)
	if !ok {
		return fmt.Errorf("unknown parameter %q", name)
	}
	if spec.Kind != KindToggle {
		return fmt.Errorf("parameter %q is not a toggle", name)
	}
	if b.values[name] != 0 {
		return b.Set(name, 0)
	}
	return b.Set(name, 1)
}

// PushAll replays every current value into the engine, in display order.
// Hosts call it once after creating the engine so both sides start from
// the same state.
func (b *Binder) PushAll() {
	for _, s := range b.specs {
		b.push(s.Name, b.values[s.Name])
	}
}

func (b *Binder) push(name string, v float64) {
	switch name {
	case Gravity:
		b.sink.SetGravityMultiplier(v)
	case Friction:
		b.sink.SetFrictionMultiplier(v)
	case Restitution:
		b.sink.SetRestitutionMultiplier(v)
	case DynamicFriction:
		b.sink.SetDynamicFriction(v != 0)
	case StaticFriction:
		b.sink.SetStaticFriction(v != 0)
	}
}

func (b *Binder) spec(name string) (Spec, bool) {
	for _, s := range b.specs {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}
