// Package debug draws the optional FPS and heap overlays in the corner of the 3D view.
package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 18
	padding    = 10
	lineHeight = fontSize + 4
	// refreshEvery limits how often the overlay text is rebuilt.
	refreshEvery = 30
)

var overlayColor = rl.NewColor(120, 230, 140, 255)

// Overlay holds the debug counters. Everything is hidden by default.
type Overlay struct {
	ShowFPS      bool
	ShowMemAlloc bool

	font     rl.Font
	frame    uint32
	fpsText  string
	memText  string
	memStats runtime.MemStats
}

// New returns an overlay with every counter hidden.
func New() *Overlay {
	return &Overlay{}
}

func (o *Overlay) SetShowFPS(show bool)      { o.ShowFPS = show }
func (o *Overlay) SetShowMemAlloc(show bool) { o.ShowMemAlloc = show }

// SetFont sets the font for the overlay text. A zero font uses raylib's default.
func (o *Overlay) SetFont(font rl.Font) {
	o.font = font
}

// Draw renders the enabled counters right-aligned at the top of area.
func (o *Overlay) Draw(area rl.Rectangle) {
	o.frame++
	refresh := o.frame%refreshEvery == 0
	if o.ShowFPS && (refresh || o.fpsText == "") {
		o.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
	}
	if o.ShowMemAlloc && (refresh || o.memText == "") {
		runtime.ReadMemStats(&o.memStats)
		o.memText = fmt.Sprintf("Mem: %.2f MiB", float64(o.memStats.Alloc)/(1024*1024))
	}

	right := area.X + area.Width - padding
	y := area.Y + padding
	if o.ShowFPS {
		o.drawRight(o.fpsText, right, y)
		y += lineHeight
	}
	if o.ShowMemAlloc {
		o.drawRight(o.memText, right, y)
	}
}

func (o *Overlay) drawRight(text string, right, y float32) {
	if text == "" {
		return
	}
	if o.font.Texture.ID != 0 {
		w := rl.MeasureTextEx(o.font, text, fontSize, 1).X
		rl.DrawTextEx(o.font, text, rl.NewVector2(right-w, y), fontSize, 1, overlayColor)
		return
	}
	w := float32(rl.MeasureText(text, fontSize))
	rl.DrawText(text, int32(right-w), int32(y), fontSize, overlayColor)
}
