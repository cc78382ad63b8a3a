// Package viewer draws a render.Frame with raylib inside a rectangle of the window and handles
// orbit navigation with the mouse.
package viewer

import (
	"house-modeler/internal/orbit"
	"house-modeler/internal/render"
	"house-modeler/internal/texture"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// Mouse sensitivities.
const (
	rotateSpeed = 0.008 // radians per pixel
	panSpeed    = 0.0015
	zoomStep    = 0.9 // distance factor per wheel notch
)

var (
	viewportBackground = rl.NewColor(31, 41, 55, 255)
	contactShadow      = rl.NewColor(0, 0, 0, 70)
)

// Viewer owns the 3D view: the frame being shown, the orbit camera and GPU resources.
// All methods must be called from the render goroutine.
type Viewer struct {
	log      *zap.Logger
	orbit    *orbit.Orbit
	boxes    boxes
	textures *textures

	frame   render.Frame
	version uint64
	grid    bool

	target     rl.RenderTexture2D
	targetW    int32
	targetH    int32
	dragRotate bool
	dragPan    bool
}

// New returns a viewer with an empty frame. loader provides textures; log may be nil.
func New(loader *texture.Loader, log *zap.Logger) *Viewer {
	if log == nil {
		log = zap.NewNop()
	}
	empty := render.Render(nil)
	return &Viewer{
		log:      log,
		orbit:    orbit.New(empty.Camera, empty.Controls),
		textures: newTextures(loader, log),
		frame:    empty,
		grid:     true,
	}
}

func (v *Viewer) GridVisible() bool           { return v.grid }
func (v *Viewer) SetGridVisible(visible bool) { v.grid = visible }

// ResetCamera returns to the pose chosen when the current frame was framed.
func (v *Viewer) ResetCamera() {
	v.orbit.Reset()
}

// SetFrame shows f. When version differs from the previous call the camera is framed around
// the new content and its textures are requested.
func (v *Viewer) SetFrame(f render.Frame, version uint64) {
	if version == v.version {
		return
	}
	v.version = version
	v.frame = f
	for _, m := range f.Meshes {
		v.textures.request(m.TextureURL)
	}
	v.orbit = orbit.New(f.Camera, f.Controls)
	v.orbit.Fit(f.Stage.Bounds)
	v.orbit.SetHome()
	v.log.Debug("Frame updated",
		zap.Uint64("version", version),
		zap.Int("meshes", len(f.Meshes)),
		zap.Int("lights", len(f.Lights)))
}

// Prefetch requests every url so the first frame of a scene does not wait on them.
func (v *Viewer) Prefetch(urls []string) {
	for _, u := range urls {
		v.textures.request(u)
	}
}

// Update applies mouse navigation: left drag orbits, right drag pans, the wheel zooms.
// Drags only start inside area.
func (v *Viewer) Update(area rl.Rectangle) {
	inside := rl.CheckCollisionPointRec(rl.GetMousePosition(), area)
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && inside {
		v.dragRotate = true
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) && inside {
		v.dragPan = true
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		v.dragRotate = false
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonRight) {
		v.dragPan = false
	}

	d := rl.GetMouseDelta()
	if v.dragRotate {
		v.orbit.Rotate(-d.X*rotateSpeed, d.Y*rotateSpeed)
	}
	if v.dragPan {
		v.orbit.Pan(-d.X*panSpeed, d.Y*panSpeed)
	}
	if inside {
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			v.orbit.Zoom(math32.Pow(zoomStep, wheel))
		}
	}
}

// Draw renders the frame into area.
func (v *Viewer) Draw(area rl.Rectangle) {
	w, h := int32(area.Width), int32(area.Height)
	if w <= 0 || h <= 0 {
		return
	}
	v.ensureTarget(w, h)

	eye := v.orbit.Position()
	cam := rl.Camera3D{
		Position:   vec(eye),
		Target:     vec(v.orbit.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       v.orbit.Fov,
		Projection: rl.CameraPerspective,
	}

	rl.BeginTextureMode(v.target)
	rl.ClearBackground(viewportBackground)
	rl.BeginMode3D(cam)
	if v.grid {
		drawGrid()
	}
	if v.frame.Stage.ContactShadows {
		drawContactShadow(v.frame.Stage.Bounds)
	}
	v.drawMeshes(eye)
	for _, l := range v.frame.Lights {
		rgb, _ := render.ParseColor(l.Marker.Color)
		seg := int32(l.Marker.Segments)
		rl.DrawSphereEx(vec(l.Position), l.Marker.Radius, seg, seg, rl.NewColor(rgb.R, rgb.G, rgb.B, 255))
	}
	rl.EndMode3D()
	rl.EndTextureMode()

	// Render textures are stored upside down.
	src := rl.NewRectangle(0, 0, float32(w), -float32(h))
	rl.DrawTextureRec(v.target.Texture, src, rl.NewVector2(area.X, area.Y), rl.White)
}

func (v *Viewer) drawMeshes(eye render.Vec3) {
	if len(v.frame.Meshes) == 0 {
		return
	}
	if v.boxes.ensure() {
		v.boxes.shader.setFrame(eye, v.frame.Stage, v.frame.Lights)
	}
	depthMask := true
	for _, i := range render.DrawOrder(v.frame.Meshes, eye) {
		m := v.frame.Meshes[i]
		tex, ready, textured := v.textures.lookup(m.TextureURL)
		if !ready {
			continue
		}
		if m.Surface.Transparent && depthMask {
			rl.DisableDepthMask()
			depthMask = false
		}
		v.boxes.draw(m, tex, textured)
	}
	if !depthMask {
		rl.EnableDepthMask()
	}
}

// drawContactShadow darkens the ground under the framed bounds.
func drawContactShadow(b render.Bounds) {
	if b.Empty {
		return
	}
	c := b.Center()
	rx := (b.Max[0] - b.Min[0]) / 2
	rz := (b.Max[2] - b.Min[2]) / 2
	r := rx
	if rz > r {
		r = rz
	}
	rl.DrawCylinder(rl.NewVector3(c[0], b.Min[1]+0.005, c[2]), r*1.1, r*1.1, 0.001, 48, contactShadow)
}

func (v *Viewer) ensureTarget(w, h int32) {
	if v.targetW == w && v.targetH == h && rl.IsRenderTextureValid(v.target) {
		return
	}
	if v.targetW != 0 {
		rl.UnloadRenderTexture(v.target)
	}
	v.target = rl.LoadRenderTexture(w, h)
	v.targetW, v.targetH = w, h
}

// Close releases GPU resources. Call before the window closes.
func (v *Viewer) Close() {
	v.textures.unload()
	v.boxes.unload()
	if v.targetW != 0 {
		rl.UnloadRenderTexture(v.target)
		v.targetW, v.targetH = 0, 0
	}
}

func vec(p render.Vec3) rl.Vector3 {
	return rl.NewVector3(p[0], p[1], p[2])
}
