package panel

import (
	"house-modeler/internal/textbox"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const spacing = 1

// text draws s with the panel font, or raylib's default font when none is set.
func (p *Panel) text(s string, pos rl.Vector2, size float32, c rl.Color) {
	if p.font.Texture.ID != 0 {
		rl.DrawTextEx(p.font, s, pos, size, spacing, c)
		return
	}
	rl.DrawText(s, int32(pos.X), int32(pos.Y), int32(size), c)
}

func (p *Panel) measure(s string, size float32) float32 {
	if p.font.Texture.ID != 0 {
		return rl.MeasureTextEx(p.font, s, size, spacing).X
	}
	return float32(rl.MeasureText(s, int32(size)))
}

func (p *Panel) wrap(s string, width, size float32) []string {
	return textbox.Wrap(s, width, func(line string) float32 { return p.measure(line, size) })
}

// drawHouseIcon draws a simple house outline centred in r.
func drawHouseIcon(r rl.Rectangle, c rl.Color) {
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	const thick = 2
	roofL := rl.NewVector2(cx-10, cy-1)
	roofTop := rl.NewVector2(cx, cy-10)
	roofR := rl.NewVector2(cx+10, cy-1)
	rl.DrawLineEx(roofL, roofTop, thick, c)
	rl.DrawLineEx(roofTop, roofR, thick, c)
	rl.DrawRectangleLinesEx(rl.NewRectangle(cx-7, cy-2, 14, 12), thick, c)
	rl.DrawRectangleRec(rl.NewRectangle(cx-2, cy+3, 4, 7), c)
}

// drawWandIcon draws a small magic wand with a spark next to the button label.
func drawWandIcon(center rl.Vector2, c rl.Color) {
	rl.DrawLineEx(rl.NewVector2(center.X-7, center.Y+7), rl.NewVector2(center.X+3, center.Y-3), 2, c)
	for _, d := range [][4]float32{{5, -9, 5, -6}, {8, -5, 11, -5}, {7, -8, 9, -10}} {
		rl.DrawLineEx(rl.NewVector2(center.X+d[0], center.Y+d[1]), rl.NewVector2(center.X+d[2], center.Y+d[3]), 2, c)
	}
}
