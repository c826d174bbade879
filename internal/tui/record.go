package tui

import (
	"image"
	"image/color"
	"image/gif"
	"os"
)

// captureFrame rasterizes the braille grid into a paletted frame, one
// 4x4 pixel block per dot. Recording stays two-color; the GIF is a motion
// sketch, not a faithful render.
func (m *Model) captureFrame() {
	charW, charH := 8, 16
	imgW, imgH := m.cells*charW, m.rows*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cells; col++ {
			pattern := int(m.canvas.Grid[row][col] - 0x2800)
			if pattern == 0 {
				continue
			}
			dotW, dotH := charW/2, charH/4
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create("doodlebox.gif")
	if err != nil {
		return
	}
	defer f.Close()
	gif.EncodeAll(f, &anim)
}
