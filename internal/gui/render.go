package gui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"doodlebox/internal/scene"
)

// drawScene rasterizes the current snapshot plus the gesture preview into
// the scene texture. Coordinates are backing pixels, 1:1 with the engine.
func (a *App) drawScene() {
	for _, op := range scene.Build(a.snap, a.Ctrl.Preview(time.Now())) {
		switch op.Kind {
		case scene.OpPolygon:
			a.drawPolygon(op)
		case scene.OpCircle:
			a.drawCircle(op)
		}
	}
}

func (a *App) drawPolygon(op scene.Op) {
	pts := make([]rl.Vector2, len(op.Vertices))
	for i, v := range op.Vertices {
		pts[i] = rl.NewVector2(float32(v.X), float32(v.Y))
	}
	col := rlColor(op.Color)

	if op.Fill {
		// Engine polygons are convex hulls, so a fan fills them exactly.
		rl.DrawTriangleFan(pts, col)
		for i := 1; i < len(pts); i++ {
			rl.DrawLineV(pts[i-1], pts[i], col)
		}
		if len(pts) > 2 {
			rl.DrawLineV(pts[len(pts)-1], pts[0], col)
		}
		return
	}
	for i := 1; i < len(pts); i++ {
		rl.DrawLineV(pts[i-1], pts[i], col)
	}
}

func (a *App) drawCircle(op scene.Op) {
	center := rl.NewVector2(float32(op.Center.X), float32(op.Center.Y))
	col := rlColor(op.Color)
	if op.Fill {
		rl.DrawCircleV(center, float32(op.Radius), col)
	} else {
		rl.DrawCircleLinesV(center, float32(op.Radius), col)
	}
}

func rlColor(c scene.RGB) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, 255)
}
