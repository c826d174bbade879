// Package gui hosts the simulation canvas in a raylib window: a parameter
// panel on the left, the engine's scene filling the rest. The scene is
// rendered at backing resolution into a texture and blitted to the canvas
// area, so pointer mapping and drawing share one coordinate space.
package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"doodlebox/internal/audio"
	"doodlebox/internal/canvas"
	"doodlebox/internal/engine"
	"doodlebox/internal/input"
	"doodlebox/internal/metrics"
	"doodlebox/internal/param"
)

// PanelWidth is the parameter panel width in window points. Everything to
// the right of it belongs to the simulation canvas.
const PanelWidth = 300

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // deep black
	ColPanel   = rl.NewColor(16, 16, 16, 255)    // panel backdrop
	ColAccent  = rl.NewColor(180, 180, 180, 255) // soft white
	ColSelect  = rl.NewColor(255, 255, 255, 255) // bright white
	ColText    = rl.NewColor(140, 140, 140, 255) // neutral gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // dark gray
	ColTrack   = rl.NewColor(40, 40, 40, 255)    // slider track
)

type App struct {
	Ctrl   *canvas.Controller
	Binder *param.Binder
	Steps  *metrics.StepTime
	Drive  *audio.Drive
	Level  string
	Font   rl.Font

	target   rl.RenderTexture2D
	paused   bool
	down     bool // left button held over the canvas
	drag     int  // panel slider being dragged, -1 when none
	selected int  // panel row with keyboard focus
	hideHUD  bool
	quit     bool
	snap     engine.Snapshot
	sawFlag  bool
	cleared  bool
}

func initWindow(w, h, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi)
	rl.InitWindow(int32(w), int32(h), "doodlebox")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// Run opens the window and drives the controller until the user quits,
// then frees the engine. It blocks for the lifetime of the window.
func Run(ctrl *canvas.Controller, binder *param.Binder, steps *metrics.StepTime, drive *audio.Drive, level string, width, height, fps int) {
	initWindow(width, height, fps)
	defer rl.CloseWindow()

	app := &App{
		Ctrl:   ctrl,
		Binder: binder,
		Steps:  steps,
		Drive:  drive,
		Level:  level,
		Font:   loadFont(),
		drag:   -1,
	}
	app.resize()

	app.RunLoop()

	if drive != nil {
		drive.Stop()
	}
	rl.UnloadRenderTexture(app.target)
	ctrl.Close()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

// resize feeds the current canvas geometry to the controller and, when the
// backing size actually changed, recreates the scene texture to match.
func (a *App) resize() {
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	scale := float64(rl.GetWindowScaleDPI().X)

	rect := canvas.Rect{Left: PanelWidth, Top: 0, Right: w, Bottom: h}
	if !a.Ctrl.Resize(rect, scale) {
		return
	}
	rl.UnloadRenderTexture(a.target)
	bw, bh := a.Ctrl.Mapper().BackingSize()
	a.target = rl.LoadRenderTexture(int32(bw), int32(bh))
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}

	a.resize()

	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
		if !a.paused {
			a.Ctrl.ResetClock()
		}
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		a.hideHUD = !a.hideHUD
	}

	// Panel focus: tab cycles, arrows nudge, enter flips a toggle.
	specs := a.Binder.Specs()
	if rl.IsKeyPressed(rl.KeyTab) {
		a.selected = (a.selected + 1) % len(specs)
	}
	sel := specs[a.selected]
	if rl.IsKeyPressed(rl.KeyUp) {
		a.Binder.Adjust(sel.Name, 1)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		a.Binder.Adjust(sel.Name, -1)
	}
	if rl.IsKeyPressed(rl.KeyEnter) && sel.Kind == param.KindToggle {
		a.Binder.Toggle(sel.Name)
	}

	// Tool keys are held, matching the engine's modal pointer behavior.
	for _, tk := range toolKeys {
		if rl.IsKeyPressed(tk.key) {
			a.Ctrl.KeyDown(tk.tool)
		}
		if rl.IsKeyReleased(tk.key) {
			a.Ctrl.KeyUp(tk.tool)
		}
	}

	a.pointer()

	if a.Drive != nil {
		a.Drive.Pump()
	}

	if !a.paused {
		snap, ok := a.Ctrl.Tick(time.Now())
		if !ok {
			a.quit = true
			return
		}
		a.snap = snap
		a.trackFlags(snap)
	}
}

var toolKeys = []struct {
	key  int32
	tool input.Tool
}{
	{rl.KeyE, input.ToolEraser},
	{rl.KeyR, input.ToolRigid},
	{rl.KeyH, input.ToolHinge},
}

// pointer routes mouse input: presses over the panel drive the sliders,
// presses over the canvas drive draw gestures. A gesture started on the
// canvas keeps the pointer even when it strays over the panel.
func (a *App) pointer() {
	pos := rl.GetMousePosition()
	now := time.Now()

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		if pos.X < PanelWidth && !a.down {
			a.panelPress(pos)
		} else {
			a.down = true
			a.Ctrl.PointerDown(float64(pos.X), float64(pos.Y), now)
		}
		return
	}

	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		if a.drag >= 0 {
			a.panelDrag(pos)
		} else if a.down {
			delta := rl.GetMouseDelta()
			if delta.X != 0 || delta.Y != 0 {
				a.Ctrl.PointerMove(float64(pos.X), float64(pos.Y), now)
			}
		}
		return
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		if a.down {
			a.down = false
			a.Ctrl.PointerUp(float64(pos.X), float64(pos.Y), now)
		}
		a.drag = -1
	}
}

// trackFlags notices the level's flags disappearing: every flag collected
// means the course is clear.
func (a *App) trackFlags(snap engine.Snapshot) {
	if len(snap.Flags) > 0 {
		a.sawFlag = true
	} else if a.sawFlag {
		a.cleared = true
	}
}

func (a *App) Draw() {
	rl.BeginTextureMode(a.target)
	rl.ClearBackground(ColBg)
	a.drawScene()
	rl.EndTextureMode()

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	src := rl.NewRectangle(0, 0, float32(a.target.Texture.Width), -float32(a.target.Texture.Height))
	dst := rl.NewRectangle(PanelWidth, 0, w-PanelWidth, h)
	rl.DrawTexturePro(a.target.Texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)

	a.drawPanel()
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) drawHUD() {
	if a.hideHUD {
		return
	}
	w := int(rl.GetScreenWidth())
	h := int(rl.GetScreenHeight())

	status := "RUNNING"
	col := ColSelect
	switch {
	case a.cleared:
		status = "COURSE CLEAR"
	case a.paused:
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, w-160, 16, 16, col)

	if n := len(a.snap.Flags); n > 0 {
		a.drawText(fmt.Sprintf("flags: %d", n), w-160, 40, 16, ColText)
	}

	tool := a.Ctrl.ActiveTool()
	if tool != input.ToolNone {
		a.drawText(fmt.Sprintf("tool: %s", tool), PanelWidth+20, 16, 16, ColAccent)
	}

	a.drawText("[HOLD] CIRCLE  [DRAG] POLYGON  [E/R/H] TOOLS  [SPACE] PAUSE  [F1] HUD  [Q] QUIT", PanelWidth+20, h-30, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
