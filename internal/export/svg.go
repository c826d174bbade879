package export

import (
	"fmt"
	"strings"

	"doodlebox/internal/config"
	"doodlebox/internal/engine"
	"doodlebox/internal/input"
	"doodlebox/internal/scene"
)

// SnapshotSVG renders one scene snapshot, plus any in-progress gesture
// preview, as a standalone SVG document in simulation coordinates.
func SnapshotSVG(snap engine.Snapshot, pv input.Preview, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, op := range scene.Build(snap, pv) {
		writeOp(&sb, op)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// LevelSVG renders a level's initial scene so it can be previewed without
// running the engine. Shapes draw in neutral grays, the ball in white.
func LevelSVG(lvl *config.Level) string {
	var snap engine.Snapshot
	for _, p := range lvl.Polygons {
		poly := engine.Polygon{Color: engine.Color{R: 0.35, G: 0.4, B: 0.45}}
		for _, v := range p.Vertices {
			poly.Vertices = append(poly.Vertices, v.Point())
		}
		snap.Polygons = append(snap.Polygons, poly)
	}
	for _, c := range lvl.Circles {
		snap.Circles = append(snap.Circles, engine.Circle{
			Center: c.Center.Point(),
			Radius: c.Radius,
			Color:  engine.Color{R: 0.55, G: 0.6, B: 0.65},
		})
	}
	snap.Circles = append(snap.Circles, engine.Circle{
		Center: lvl.Ball.Point(),
		Radius: 10,
		Color:  engine.Color{R: 1, G: 1, B: 1},
	})
	for _, f := range lvl.Flags {
		snap.Flags = append(snap.Flags, engine.Flag{Vertices: flagShape(f.Point())})
	}
	return SnapshotSVG(snap, input.Preview{}, int(config.LevelWidth), int(config.LevelHeight))
}

// flagShape is the small pennant drawn at a flag position when the engine
// has not supplied flag geometry itself.
func flagShape(p engine.Point) []engine.Point {
	return []engine.Point{
		{X: p.X, Y: p.Y},
		{X: p.X, Y: p.Y - 18},
		{X: p.X + 12, Y: p.Y - 13},
	}
}

func writeOp(sb *strings.Builder, op scene.Op) {
	color := hex(op.Color)
	switch op.Kind {
	case scene.OpPolygon:
		if len(op.Vertices) < 2 {
			return
		}
		pts := make([]string, len(op.Vertices))
		for i, v := range op.Vertices {
			pts[i] = fmt.Sprintf("%.1f,%.1f", v.X, v.Y)
		}
		if op.Fill {
			sb.WriteString(fmt.Sprintf(`<polygon points="%s" fill="%s"/>
`, strings.Join(pts, " "), color))
		} else {
			sb.WriteString(fmt.Sprintf(`<polyline points="%s" fill="none" stroke="%s" stroke-width="1.5"/>
`, strings.Join(pts, " "), color))
		}
	case scene.OpCircle:
		if op.Fill {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, op.Center.X, op.Center.Y, op.Radius, color))
		} else {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="1.5"/>
`, op.Center.X, op.Center.Y, op.Radius, color))
		}
	}
}

func hex(c scene.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
