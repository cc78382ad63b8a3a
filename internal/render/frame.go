package render

import (
	"math"

	"house-modeler/internal/model"
)

// Vec3 is an x, y, z triple in world units.
type Vec3 [3]float32

// Surface holds the physically based response of a mesh.
type Surface struct {
	Transparent bool    `json:"transparent"`
	Opacity     float32 `json:"opacity"`
	Roughness   float32 `json:"roughness"`
	Metalness   float32 `json:"metalness"`
}

// Mesh is a textured cuboid ready to draw.
type Mesh struct {
	Position   Vec3           `json:"position"`
	Size       Vec3           `json:"size"`
	Rotation   Vec3           `json:"rotation"` // Euler XYZ, radians
	Material   model.Material `json:"material"`
	TextureURL string         `json:"textureUrl"`
	// Repeat is the texture tiling along U and V.
	Repeat        [2]float32 `json:"repeat"`
	Surface       Surface    `json:"surface"`
	CastShadow    bool       `json:"castShadow"`
	ReceiveShadow bool       `json:"receiveShadow"`
}

// Marker is the small emissive sphere drawn at a light's position.
type Marker struct {
	Radius   float32 `json:"radius"`
	Segments int     `json:"segments"`
	Color    string  `json:"color"`
}

// PointLight is an omnidirectional light with distance falloff.
type PointLight struct {
	Position      Vec3    `json:"position"`
	Color         string  `json:"color"`
	Intensity     float32 `json:"intensity"`
	Distance      float32 `json:"distance"`
	Decay         float32 `json:"decay"`
	CastShadow    bool    `json:"castShadow"`
	ShadowMapSize [2]int  `json:"shadowMapSize"`
	ShadowBias    float32 `json:"shadowBias"`
	Marker        Marker  `json:"marker"`
}

// Bounds is an axis-aligned box around everything in a frame. Empty when nothing renders.
type Bounds struct {
	Min   Vec3 `json:"min"`
	Max   Vec3 `json:"max"`
	Empty bool `json:"empty"`
}

// Center returns the middle of the bounds (the origin when empty).
func (b Bounds) Center() Vec3 {
	if b.Empty {
		return Vec3{}
	}
	return Vec3{(b.Min[0] + b.Max[0]) / 2, (b.Min[1] + b.Max[1]) / 2, (b.Min[2] + b.Max[2]) / 2}
}

// Radius returns half the diagonal of the bounds.
func (b Bounds) Radius() float32 {
	if b.Empty {
		return 0
	}
	dx, dy, dz := b.Max[0]-b.Min[0], b.Max[1]-b.Min[1], b.Max[2]-b.Min[2]
	return float32(math.Sqrt(float64(dx*dx+dy*dy+dz*dz))) / 2
}

// Stage is the staging preset: ambient environment light plus ground contact shadows,
// framed around Bounds.
type Stage struct {
	Environment    string  `json:"environment"`
	Preset         string  `json:"preset"`
	Intensity      float32 `json:"intensity"`
	ContactShadows bool    `json:"contactShadows"`
	Bounds         Bounds  `json:"bounds"`
}

// Camera is the initial perspective camera.
type Camera struct {
	Fov      float32 `json:"fov"` // vertical, degrees
	Position Vec3    `json:"position"`
}

// Controls bounds the orbit navigation.
type Controls struct {
	MinDistance float32 `json:"minDistance"`
	MaxDistance float32 `json:"maxDistance"`
}

// Frame is everything needed to draw one scene.
type Frame struct {
	Meshes   []Mesh       `json:"meshes"`
	Lights   []PointLight `json:"lights"`
	Stage    Stage        `json:"stage"`
	Camera   Camera       `json:"camera"`
	Controls Controls     `json:"controls"`
}

// Empty reports whether the frame draws nothing.
func (f Frame) Empty() bool {
	return len(f.Meshes) == 0 && len(f.Lights) == 0
}
