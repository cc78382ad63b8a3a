// Package orbit implements the viewer's orbit camera: rotate around a target, pan the
// target, zoom between a minimum and maximum distance.
package orbit

import (
	"github.com/chewxy/math32"

	"house-modeler/internal/render"
)

// maxPitch keeps the camera off the poles, where yaw becomes degenerate.
const maxPitch = math32.Pi/2 - 0.01

// fitMargin leaves some room around framed bounds.
const fitMargin = 1.2

// Orbit is a camera looking at Target from Distance along the direction given by Yaw (around
// the up axis, measured from +Z) and Pitch (elevation).
type Orbit struct {
	Target      render.Vec3
	Yaw         float32
	Pitch       float32
	Distance    float32
	MinDistance float32
	MaxDistance float32
	Fov         float32 // vertical, degrees

	home Pose
}

// Pose is a saved camera placement.
type Pose struct {
	Target   render.Vec3
	Yaw      float32
	Pitch    float32
	Distance float32
}

// New places an orbit camera at cam.Position looking at the origin, bounded by ctl.
func New(cam render.Camera, ctl render.Controls) *Orbit {
	p := cam.Position
	dist := math32.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
	o := &Orbit{
		MinDistance: ctl.MinDistance,
		MaxDistance: ctl.MaxDistance,
		Fov:         cam.Fov,
		Distance:    dist,
	}
	if dist > 0 {
		o.Yaw = math32.Atan2(p[0], p[2])
		o.Pitch = math32.Asin(p[1] / dist)
	}
	o.clamp()
	o.home = o.pose()
	return o
}

// Position returns the camera position in world space.
func (o *Orbit) Position() render.Vec3 {
	cp, sp := math32.Cos(o.Pitch), math32.Sin(o.Pitch)
	cy, sy := math32.Cos(o.Yaw), math32.Sin(o.Yaw)
	return render.Vec3{
		o.Target[0] + o.Distance*cp*sy,
		o.Target[1] + o.Distance*sp,
		o.Target[2] + o.Distance*cp*cy,
	}
}

// Rotate turns the camera around the target by the given angles in radians.
func (o *Orbit) Rotate(dYaw, dPitch float32) {
	o.Yaw += dYaw
	o.Pitch += dPitch
	o.clamp()
}

// Pan moves the target in the camera's view plane. dx and dy are fractions of the current
// distance, so panning feels the same at every zoom level.
func (o *Orbit) Pan(dx, dy float32) {
	cp, sp := math32.Cos(o.Pitch), math32.Sin(o.Pitch)
	cy, sy := math32.Cos(o.Yaw), math32.Sin(o.Yaw)
	right := render.Vec3{cy, 0, -sy}
	up := render.Vec3{-sp * sy, cp, -sp * cy}
	for i := 0; i < 3; i++ {
		o.Target[i] += (right[i]*dx + up[i]*dy) * o.Distance
	}
}

// Zoom multiplies the distance by factor (< 1 moves closer), within the distance bounds.
func (o *Orbit) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	o.Distance *= factor
	o.clamp()
}

// Fit centres the target on b and backs off until b fits the field of view. The viewing
// direction is kept. Empty bounds leave the camera untouched.
func (o *Orbit) Fit(b render.Bounds) {
	if b.Empty {
		return
	}
	o.Target = b.Center()
	half := o.Fov * math32.Pi / 360
	if s := math32.Sin(half); s > 0 {
		o.Distance = b.Radius() / s * fitMargin
	}
	o.clamp()
}

// SetHome makes the current pose the one Reset returns to.
func (o *Orbit) SetHome() {
	o.home = o.pose()
}

// Reset restores the home pose.
func (o *Orbit) Reset() {
	o.Target, o.Yaw, o.Pitch, o.Distance = o.home.Target, o.home.Yaw, o.home.Pitch, o.home.Distance
}

func (o *Orbit) pose() Pose {
	return Pose{Target: o.Target, Yaw: o.Yaw, Pitch: o.Pitch, Distance: o.Distance}
}

func (o *Orbit) clamp() {
	o.Pitch = math32.Max(-maxPitch, math32.Min(maxPitch, o.Pitch))
	if o.MaxDistance > 0 {
		o.Distance = math32.Min(o.Distance, o.MaxDistance)
	}
	o.Distance = math32.Max(o.Distance, o.MinDistance)
}
