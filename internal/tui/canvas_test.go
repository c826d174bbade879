package tui

import (
	"strings"
	"testing"

	"doodlebox/internal/scene"
)

var ink = scene.RGB{R: 255, G: 255, B: 255}

func TestCanvasSetLightsBrailleDot(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0, ink)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("top-left dot = %#x, want %#x", c.Grid[0][0], 0x2801)
	}
	c.Set(1, 3, ink)
	if c.Grid[0][0] != 0x2801|0x80 {
		t.Errorf("after bottom-right dot = %#x, want %#x", c.Grid[0][0], 0x2801|0x80)
	}
}

func TestCanvasSetIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 8}, {100, 100}} {
		c.Set(p[0], p[1], ink)
	}
	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != 0x2800 {
				t.Fatalf("cell (%d,%d) lit by out-of-bounds Set", j, i)
			}
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.FillCircle(5, 5, 4, ink)
	c.Clear()
	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != 0x2800 {
				t.Fatalf("cell (%d,%d) not blank after Clear", j, i)
			}
		}
	}
}

func TestCanvasDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(0, 0, 19, 39, ink)
	if c.Grid[0][0] == 0x2800 {
		t.Error("line start not drawn")
	}
	if c.Grid[9][9] == 0x2800 {
		t.Error("line end not drawn")
	}
}

// litDots counts braille dots set across the whole grid.
func litDots(c *Canvas) int {
	n := 0
	for i := range c.Grid {
		for j := range c.Grid[i] {
			pattern := int(c.Grid[i][j] - 0x2800)
			for pattern != 0 {
				n += pattern & 1
				pattern >>= 1
			}
		}
	}
	return n
}

func TestCanvasFillPolygonCoversInterior(t *testing.T) {
	c := NewCanvas(10, 5)
	xs := []int{2, 17, 17, 2}
	ys := []int{2, 2, 17, 17}
	c.FillPolygon(xs, ys, ink)

	if got := litDots(c); got < 15*15 {
		t.Errorf("filled square lit %d dots, want at least %d", got, 15*15)
	}
	if c.Grid[0][0] != 0x2800 {
		t.Error("fill leaked outside the polygon")
	}
}

func TestCanvasFillPolygonDegenerate(t *testing.T) {
	c := NewCanvas(4, 4)
	c.FillPolygon([]int{1, 5}, []int{1, 5}, ink)
	if got := litDots(c); got != 0 {
		t.Errorf("two-point fill lit %d dots, want 0", got)
	}
}

func TestCanvasCircles(t *testing.T) {
	filled := NewCanvas(10, 5)
	filled.FillCircle(10, 10, 6, ink)
	outlined := NewCanvas(10, 5)
	outlined.DrawCircle(10, 10, 6, ink)

	if litDots(filled) <= litDots(outlined) {
		t.Errorf("filled circle (%d dots) should light more than outline (%d)",
			litDots(filled), litDots(outlined))
	}
	center := filled.Grid[2][5]
	if center == 0x2800 {
		t.Error("filled circle missing its center")
	}
	if outlined.Grid[2][5] != 0x2800 {
		t.Error("outlined circle should leave its center blank")
	}
}

func TestCanvasStringShape(t *testing.T) {
	c := NewCanvas(6, 3)
	c.Set(2, 2, scene.RGB{R: 231, G: 76, B: 60})
	out := c.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("String produced %d lines, want 3", len(lines))
	}
	if !strings.ContainsRune(out, 0x2804) {
		t.Error("set dot missing from output")
	}
	if !strings.ContainsRune(out, 0x2800) {
		t.Error("blank cells missing from output")
	}
}

func TestThemes(t *testing.T) {
	SetTheme("slate")
	if CurrentTheme.Name != "slate" {
		t.Fatalf("SetTheme(slate) left theme %q", CurrentTheme.Name)
	}
	start := CurrentTheme.Name
	seen := map[string]bool{start: true}
	for i := 0; i < len(Themes)-1; i++ {
		NextTheme()
		if seen[CurrentTheme.Name] {
			t.Fatalf("NextTheme revisited %q before completing the cycle", CurrentTheme.Name)
		}
		seen[CurrentTheme.Name] = true
	}
	NextTheme()
	if CurrentTheme.Name != start {
		t.Errorf("full cycle ended on %q, want %q", CurrentTheme.Name, start)
	}

	if got := GetTheme("no-such-theme"); got.Name != "slate" {
		t.Errorf("unknown theme resolved to %q, want slate fallback", got.Name)
	}
}
