package tui

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"doodlebox/internal/scene"
)

// Braille patterns: 2x4 dots per character cell.
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot grid with one color per character cell. Dot
// coordinates run over (Width*2) x (Height*4). The last color written to
// a cell wins, which keeps later draw ops on top of earlier ones.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]scene.RGB
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]scene.RGB, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]scene.RGB, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// DotSize returns the canvas extent in dot coordinates.
func (c *Canvas) DotSize() (w, h int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) Set(x, y int, col scene.RGB) {
	if x < 0 || y < 0 {
		return
	}
	cx := x / 2
	cy := y / 4
	if cx >= c.Width || cy >= c.Height {
		return
	}
	c.Grid[cy][cx] |= rune(pixelMap[y%4][x%2])
	c.Colors[cy][cx] = col
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
			c.Colors[i][j] = scene.RGB{}
		}
	}
}

// DrawLine draws with Bresenham's algorithm in dot coordinates.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col scene.RGB) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// StrokePath connects consecutive points; closed joins the last point
// back to the first.
func (c *Canvas) StrokePath(xs, ys []int, closed bool, col scene.RGB) {
	n := len(xs)
	if n == 0 || len(ys) != n {
		return
	}
	if n == 1 {
		c.Set(xs[0], ys[0], col)
		return
	}
	for i := 1; i < n; i++ {
		c.DrawLine(xs[i-1], ys[i-1], xs[i], ys[i], col)
	}
	if closed && n > 2 {
		c.DrawLine(xs[n-1], ys[n-1], xs[0], ys[0], col)
	}
}

// FillPolygon rasterizes with an even-odd scanline over dot rows.
func (c *Canvas) FillPolygon(xs, ys []int, col scene.RGB) {
	n := len(xs)
	if n < 3 || len(ys) != n {
		return
	}
	minY, maxY := ys[0], ys[0]
	for _, y := range ys {
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	if minY < 0 {
		minY = 0
	}
	if limit := c.Height*4 - 1; maxY > limit {
		maxY = limit
	}

	hits := make([]float64, 0, 8)
	for y := minY; y <= maxY; y++ {
		scan := float64(y) + 0.5
		hits = hits[:0]
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			y0, y1 := float64(ys[i]), float64(ys[j])
			if (y0 <= scan) == (y1 <= scan) {
				continue
			}
			t := (scan - y0) / (y1 - y0)
			hits = append(hits, float64(xs[i])+t*float64(xs[j]-xs[i]))
		}
		sort.Float64s(hits)
		for k := 0; k+1 < len(hits); k += 2 {
			x0 := int(math.Ceil(hits[k] - 0.5))
			x1 := int(math.Floor(hits[k+1] - 0.5))
			for x := x0; x <= x1; x++ {
				c.Set(x, y, col)
			}
		}
	}
}

// DrawCircle strokes a midpoint circle.
func (c *Canvas) DrawCircle(cx, cy, r int, col scene.RGB) {
	if r <= 0 {
		c.Set(cx, cy, col)
		return
	}
	x, y := r, 0
	err := 1 - r
	for x >= y {
		c.Set(cx+x, cy+y, col)
		c.Set(cx+y, cy+x, col)
		c.Set(cx-y, cy+x, col)
		c.Set(cx-x, cy+y, col)
		c.Set(cx-x, cy-y, col)
		c.Set(cx-y, cy-x, col)
		c.Set(cx+y, cy-x, col)
		c.Set(cx+x, cy-y, col)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// FillCircle fills horizontal spans inside the radius.
func (c *Canvas) FillCircle(cx, cy, r int, col scene.RGB) {
	if r <= 0 {
		c.Set(cx, cy, col)
		return
	}
	for dy := -r; dy <= r; dy++ {
		half := int(math.Sqrt(float64(r*r - dy*dy)))
		for dx := -half; dx <= half; dx++ {
			c.Set(cx+dx, cy+dy, col)
		}
	}
}

// String renders the grid with per-cell colors, grouping runs of equal
// color into one styled segment per run. Blank cells extend whatever run
// surrounds them.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		var run []rune
		var runCol scene.RGB
		haveCol := false
		flush := func() {
			if len(run) == 0 {
				return
			}
			if haveCol {
				b.WriteString(styleFor(runCol).Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
			run = run[:0]
			haveCol = false
		}
		for col := 0; col < c.Width; col++ {
			r := c.Grid[row][col]
			if r == 0x2800 {
				run = append(run, r)
				continue
			}
			cc := c.Colors[row][col]
			if haveCol && cc != runCol {
				flush()
			}
			run = append(run, r)
			runCol = cc
			haveCol = true
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

var styleCache = map[scene.RGB]lipgloss.Style{}

func styleFor(c scene.RGB) lipgloss.Style {
	if s, ok := styleCache[c]; ok {
		return s
	}
	hex := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	styleCache[c] = s
	return s
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
