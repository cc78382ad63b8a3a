package viewer

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 40
	gridMajorAlpha = 100
	gridY          = 0.002
)

var (
	gridMinor = rl.NewColor(148, 163, 184, gridMinorAlpha)
	gridMajor = rl.NewColor(148, 163, 184, gridMajorAlpha)
)

// drawGrid draws the ground grid on the XZ plane, slightly above Y=0 to avoid z-fighting with
// ground boxes. Reuses start/end to avoid per-frame allocations.
func drawGrid() {
	var start, end rl.Vector3
	start.Y, end.Y = gridY, gridY
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := gridMinor
		if i%gridMajorStep == 0 {
			c = gridMajor
		}
		start.X, start.Z = float32(i), -gridExtent
		end.X, end.Z = float32(i), gridExtent
		rl.DrawLine3D(start, end, c)
		start.X, start.Z = -gridExtent, float32(i)
		end.X, end.Z = gridExtent, float32(i)
		rl.DrawLine3D(start, end, c)
	}
}
