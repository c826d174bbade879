package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"doodlebox/internal/param"
)

// Panel geometry in window points. Slider rows are taller than toggle rows
// because the track sits under the label.
const (
	panelPad   = 20
	panelTop   = 120
	trackW     = PanelWidth - 2*panelPad
	sliderRowH = 56
	toggleRowH = 36
)

// rowY returns the top of parameter row i, walking the mixed slider and
// toggle heights above it.
func (a *App) rowY(i int) int {
	y := panelTop
	for j, spec := range a.Binder.Specs() {
		if j == i {
			break
		}
		if spec.Kind == param.KindToggle {
			y += toggleRowH
		} else {
			y += sliderRowH
		}
	}
	return y
}

// panelPress starts a slider drag or flips a toggle, depending on what the
// press landed on.
func (a *App) panelPress(pos rl.Vector2) {
	for i, spec := range a.Binder.Specs() {
		y := float32(a.rowY(i))
		if spec.Kind == param.KindToggle {
			if pos.Y >= y && pos.Y < y+toggleRowH-8 {
				a.Binder.Toggle(spec.Name)
				return
			}
			continue
		}
		trackY := y + 34
		if pos.Y >= trackY-12 && pos.Y <= trackY+12 {
			a.drag = i
			a.panelDrag(pos)
			return
		}
	}
}

// panelDrag maps the pointer's horizontal position onto the dragged
// slider's range and pushes the value.
func (a *App) panelDrag(pos rl.Vector2) {
	spec := a.Binder.Specs()[a.drag]
	t := (float64(pos.X) - panelPad) / trackW
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	a.Binder.Set(spec.Name, spec.Min+t*(spec.Max-spec.Min))
}

func (a *App) drawPanel() {
	h := int32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, PanelWidth, h, ColPanel)
	rl.DrawLine(PanelWidth, 0, PanelWidth, h, ColTextDim)

	a.drawText("doodlebox", panelPad, 24, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Level), panelPad, 56, 16, ColText)

	for i, spec := range a.Binder.Specs() {
		y := a.rowY(i)
		if spec.Kind == param.KindToggle {
			a.drawToggle(y, i, spec)
		} else {
			a.drawSlider(y, i, spec)
		}
	}

	a.drawMetrics(int(h))
}

func (a *App) drawSlider(y, i int, spec param.Spec) {
	val := a.Binder.Value(spec.Name)
	a.drawText(spec.Label, panelPad, y, 16, a.rowCol(i))
	a.drawText(fmt.Sprintf("%6.2f", val), PanelWidth-panelPad-70, y, 16, ColAccent)

	trackY := int32(y + 34)
	rl.DrawRectangle(panelPad, trackY-2, trackW, 4, ColTrack)

	t := (val - spec.Min) / (spec.Max - spec.Min)
	knobX := float32(panelPad) + float32(t)*trackW
	fill := int32(knobX) - panelPad
	if fill > 0 {
		rl.DrawRectangle(panelPad, trackY-2, fill, 4, ColText)
	}

	knobCol := ColAccent
	if a.drag == i {
		knobCol = ColSelect
	}
	rl.DrawCircleV(rl.NewVector2(knobX, float32(trackY)), 7, knobCol)
}

func (a *App) drawToggle(y, i int, spec param.Spec) {
	box := rl.NewRectangle(panelPad, float32(y+2), 16, 16)
	rl.DrawRectangleLinesEx(box, 1, ColText)
	if a.Binder.On(spec.Name) {
		rl.DrawRectangle(int32(box.X)+4, int32(box.Y)+4, 8, 8, ColSelect)
	}
	a.drawText(spec.Label, panelPad+28, y+2, 16, a.rowCol(i))
}

// rowCol brightens the label of the row holding keyboard focus.
func (a *App) rowCol(i int) rl.Color {
	if i == a.selected {
		return ColSelect
	}
	return ColText
}

func (a *App) drawMetrics(h int) {
	y := h - 110

	a.drawText("step time", panelPad, y, 14, ColTextDim)
	a.drawText(fmt.Sprintf("avg %5.2fms  max %5.2fms", a.Steps.Value(), a.Steps.Max()), panelPad, y+20, 14, ColText)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), panelPad, y+40, 14, ColTextDim)

	if a.Drive != nil && a.Drive.Active() {
		bars := int(a.Drive.Level() * 20)
		if bars > 20 {
			bars = 20
		}
		barStr := ""
		for i := 0; i < bars; i++ {
			barStr += "|"
		}
		a.drawText(fmt.Sprintf("MIC [%-20s]", barStr), panelPad, y+66, 14, ColAccent)
	}
}
