package engine

import (
	"encoding/json"
	"fmt"
)

// Point is a position in simulation space. The engine serializes points as
// [x, y] arrays, not objects.
type Point struct {
	X float64
	Y float64
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var v [2]float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("point: %w", err)
	}
	p.X, p.Y = v[0], v[1]
	return nil
}

// Color is an RGB triple with float channels in 0..1, the engine's native
// convention. Serialized as [r, g, b]. Hosts scale by 255 and clamp when
// rasterizing; see RGBA8.
type Color struct {
	R float64
	G float64
	B float64
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{c.R, c.G, c.B})
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var v [3]float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	c.R, c.G, c.B = v[0], v[1], v[2]
	return nil
}

// RGBA8 converts to 8-bit channels, clamping values outside 0..1.
func (c Color) RGBA8() (r, g, b uint8) {
	return channel8(c.R), channel8(c.G), channel8(c.B)
}

func channel8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Polygon is one simulated body with its vertex loop and current color.
type Polygon struct {
	Vertices []Point `json:"vertices"`
	Color    Color   `json:"color"`
}

// Circle is one simulated body with its center, radius and current color.
type Circle struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
	Color  Color   `json:"color"`
}

// Flag is a static decorative marker. Flags carry no color: the renderer
// always uses its fixed flag color.
type Flag struct {
	Vertices []Point `json:"vertices"`
}

// Snapshot is the complete renderable scene produced by one simulation
// step. It is rebuilt from scratch every iteration; nothing here survives
// to the next frame. The four anchor slices are distinct categories and
// each is drawn exactly once.
type Snapshot struct {
	Polygons      []Polygon `json:"polygons"`
	Circles       []Circle  `json:"circles"`
	Flags         []Flag    `json:"flags"`
	RigidBindings []Point   `json:"rigid_bindings"`
	Hinges        []Point   `json:"hinges"`
	UnboundRigid  []Point   `json:"unbound_rigid_bindings"`
	UnboundHinges []Point   `json:"unbound_hinges"`
}

// CircleConfig is one pre-placed circle in the initial scene.
type CircleConfig struct {
	Static   bool    `json:"is_static"`
	Bindable bool    `json:"is_bindable"`
	Center   Point   `json:"center"`
	Radius   float64 `json:"radius"`
}

// PolygonConfig is one pre-placed polygon in the initial scene.
type PolygonConfig struct {
	Static   bool    `json:"is_static"`
	Bindable bool    `json:"is_bindable"`
	Vertices []Point `json:"vertices"`
}

// Config is the initial scene handed to the engine at creation: where the
// marker ball starts, the pre-placed shapes with their placement tags, and
// the flag positions. Static shapes never move; bindable shapes accept
// anchors and hinges.
type Config struct {
	BallPosition Point           `json:"initial_ball_position"`
	Circles      []CircleConfig  `json:"circles"`
	Polygons     []PolygonConfig `json:"polygons"`
	Flags        []Point         `json:"flags_positions"`
}

// Scale returns a copy of the config with every position scaled per axis.
// Radii scale by the smaller of the two factors so circles keep touching
// the surfaces they rest on. Hosts call this once at creation to map a
// level authored at a reference size onto the actual backing size; the
// engine itself never rescales.
func (c Config) Scale(sx, sy float64) Config {
	r := sx
	if sy < r {
		r = sy
	}
	at := func(p Point) Point { return Point{X: p.X * sx, Y: p.Y * sy} }

	out := Config{BallPosition: at(c.BallPosition)}
	out.Circles = make([]CircleConfig, len(c.Circles))
	for i, cc := range c.Circles {
		out.Circles[i] = CircleConfig{
			Static:   cc.Static,
			Bindable: cc.Bindable,
			Center:   at(cc.Center),
			Radius:   cc.Radius * r,
		}
	}
	out.Polygons = make([]PolygonConfig, len(c.Polygons))
	for i, pc := range c.Polygons {
		vs := make([]Point, len(pc.Vertices))
		for j, v := range pc.Vertices {
			vs[j] = at(v)
		}
		out.Polygons[i] = PolygonConfig{Static: pc.Static, Bindable: pc.Bindable, Vertices: vs}
	}
	out.Flags = make([]Point, len(c.Flags))
	for i, f := range c.Flags {
		out.Flags[i] = at(f)
	}
	return out
}
