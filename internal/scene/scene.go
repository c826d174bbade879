// Package scene flattens an engine snapshot plus the in-progress gesture
// preview into an ordered list of draw operations shared by every host.
// Hosts only decide how to rasterize an op, never what or in which order.
package scene

import (
	"doodlebox/internal/engine"
	"doodlebox/internal/input"
)

// RGB is an 8-bit sRGB color hosts can draw with directly.
type RGB struct {
	R, G, B uint8
}

// Fixed category colors. Engine-supplied colors apply only to committed
// polygons and circles; flags, anchors and previews always draw in these.
var (
	ColFlag         = RGB{R: 231, G: 76, B: 60}
	ColRigid        = RGB{R: 52, G: 73, B: 94}
	ColHinge        = RGB{R: 230, G: 126, B: 34}
	ColUnboundRigid = RGB{R: 149, G: 165, B: 166}
	ColUnboundHinge = RGB{R: 241, G: 196, B: 15}
	ColPreview      = RGB{R: 99, G: 110, B: 114}
)

// AnchorRadius is the binding marker radius in simulation pixels.
const AnchorRadius = 4

type OpKind int

const (
	OpPolygon OpKind = iota
	OpCircle
)

// Op is one draw operation. Polygon ops use Vertices, circle ops use
// Center and Radius. Fill=false means stroke only.
type Op struct {
	Kind     OpKind
	Vertices []engine.Point
	Center   engine.Point
	Radius   float64
	Color    RGB
	Fill     bool
}

// Build flattens one snapshot and preview into draw order: committed
// polygons, then circles, then flags, then the four anchor categories,
// then the preview. Later ops draw over earlier ones, so work in
// progress always stays visible, stroke-only to tell it apart from
// committed geometry.
func Build(snap engine.Snapshot, pv input.Preview) []Op {
	ops := make([]Op, 0,
		len(snap.Polygons)+len(snap.Circles)+len(snap.Flags)+
			len(snap.RigidBindings)+len(snap.Hinges)+
			len(snap.UnboundRigid)+len(snap.UnboundHinges)+1)

	for _, p := range snap.Polygons {
		ops = append(ops, Op{Kind: OpPolygon, Vertices: p.Vertices, Color: FromEngine(p.Color), Fill: true})
	}
	for _, c := range snap.Circles {
		ops = append(ops, Op{Kind: OpCircle, Center: c.Center, Radius: c.Radius, Color: FromEngine(c.Color), Fill: true})
	}
	for _, f := range snap.Flags {
		ops = append(ops, Op{Kind: OpPolygon, Vertices: f.Vertices, Color: ColFlag, Fill: true})
	}
	ops = appendAnchors(ops, snap.RigidBindings, ColRigid)
	ops = appendAnchors(ops, snap.Hinges, ColHinge)
	ops = appendAnchors(ops, snap.UnboundRigid, ColUnboundRigid)
	ops = appendAnchors(ops, snap.UnboundHinges, ColUnboundHinge)

	switch pv.Kind {
	case input.PreviewCircle:
		ops = append(ops, Op{Kind: OpCircle, Center: pv.Center, Radius: pv.Radius, Color: ColPreview})
	case input.PreviewPath:
		ops = append(ops, Op{Kind: OpPolygon, Vertices: pv.Path, Color: ColPreview})
	}
	return ops
}

func appendAnchors(ops []Op, points []engine.Point, col RGB) []Op {
	for _, p := range points {
		ops = append(ops, Op{Kind: OpCircle, Center: p, Radius: AnchorRadius, Color: col, Fill: true})
	}
	return ops
}

// FromEngine converts the engine's 0..1 float channels to 8-bit,
// clamping anything out of range.
func FromEngine(c engine.Color) RGB {
	r, g, b := c.RGBA8()
	return RGB{R: r, G: g, B: b}
}
