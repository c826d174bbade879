package canvas

import (
	"math"

	"doodlebox/internal/engine"
)

// Rect is a canvas rectangle in screen points, y growing downward.
type Rect struct {
	Left, Top, Right, Bottom float64
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Mapper keeps the backing pixel grid in sync with the displayed canvas
// rectangle and the device pixel ratio. Each edge is scaled and rounded
// independently, then sizes are taken as differences of rounded edges.
// Rounding the edges rather than the raw width keeps the grid stable when
// the canvas sits at a fractional offset, and lets pointer coordinates be
// mapped through the identical rule so pointer and pixel never disagree.
type Mapper struct {
	rect   Rect
	scale  float64
	width  int
	height int
}

func NewMapper() *Mapper {
	return &Mapper{scale: 1}
}

// Update records the canvas rectangle and scale and reports whether the
// backing size changed, so hosts can resize their render target only when
// it actually did.
func (m *Mapper) Update(rect Rect, scale float64) bool {
	if scale <= 0 {
		scale = 1
	}
	w := edge(rect.Right, scale) - edge(rect.Left, scale)
	h := edge(rect.Bottom, scale) - edge(rect.Top, scale)
	changed := w != m.width || h != m.height
	m.rect = rect
	m.scale = scale
	m.width = w
	m.height = h
	return changed
}

func (m *Mapper) BackingSize() (w, h int) { return m.width, m.height }
func (m *Mapper) Scale() float64          { return m.scale }
func (m *Mapper) Rect() Rect              { return m.rect }

// ToSim maps a pointer position in screen points onto the backing grid,
// using the same per-edge rounding as Update. A pointer on the canvas
// edges lands exactly on 0 and width/height.
func (m *Mapper) ToSim(x, y float64) engine.Point {
	return engine.Point{
		X: float64(edge(x, m.scale) - edge(m.rect.Left, m.scale)),
		Y: float64(edge(y, m.scale) - edge(m.rect.Top, m.scale)),
	}
}

func edge(v, scale float64) int { return int(math.Round(v * scale)) }
