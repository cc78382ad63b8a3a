// Package graphics owns the raylib window and the frame loop.
package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Background is the clear colour behind every frame.
var Background = rl.NewColor(17, 24, 39, 255)

// Window describes the application window.
type Window struct {
	Title  string
	Width  int
	Height int
	FPS    int32
}

// Run opens the window and calls update then draw once per frame until the window is closed.
// Both callbacks run on the calling goroutine, which must stay the one that opened the window.
func Run(w Window, update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	defer rl.CloseWindow()

	// ESC clears focus in the panel; the window closes from its close button.
	rl.SetExitKey(rl.KeyNull)
	fps := w.FPS
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(fps)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(Background)
		draw()
		rl.EndDrawing()
	}
}
