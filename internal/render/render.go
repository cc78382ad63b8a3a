package render

import (
	"math"
	"sort"

	"house-modeler/internal/model"
)

// Fixed light, staging and navigation parameters.
const (
	LightDistance      = 50
	LightDecay         = 2
	LightShadowMapSize = 1024
	LightShadowBias    = -0.001
	MarkerRadius       = 0.05
	MarkerSegments     = 16

	StageEnvironment = "city"
	StagePreset      = "rembrandt"
	StageIntensity   = 0.2

	CameraFov       = 50
	ControlsMinDist = 5
	ControlsMaxDist = 100

	glassOpacity        = 0.4
	waterOpacity        = 0.75
	defaultRoughness    = 1
	defaultMetalness    = 0
	reflectiveRoughness = 0.1
)

// CameraStart is the initial camera position before framing.
var CameraStart = Vec3{20, 15, 25}

// Render maps a scene onto drawable primitives. It is a pure function of the scene: the same
// input always yields an equal Frame. Objects that are not boxes or lights are skipped.
func Render(scene model.Scene) Frame {
	f := Frame{
		Meshes: make([]Mesh, 0, len(scene)),
		Lights: make([]PointLight, 0),
		Stage: Stage{
			Environment:    StageEnvironment,
			Preset:         StagePreset,
			Intensity:      StageIntensity,
			ContactShadows: true,
		},
		Camera:   Camera{Fov: CameraFov, Position: CameraStart},
		Controls: Controls{MinDistance: ControlsMinDist, MaxDistance: ControlsMaxDist},
	}
	var bb boundsBuilder
	for _, obj := range scene {
		switch o := obj.(type) {
		case model.Box:
			m := BoxMesh(o)
			f.Meshes = append(f.Meshes, m)
			bb.addMesh(m)
		case model.Light:
			l := LightSource(o)
			f.Lights = append(f.Lights, l)
			bb.addPoint(l.Position)
		case model.Unknown:
			// dropped
		default:
			// dropped
		}
	}
	f.Stage.Bounds = bb.bounds()
	return f
}

// BoxMesh maps a box onto a textured cuboid.
func BoxMesh(b model.Box) Mesh {
	size := vec3(b.Size)
	return Mesh{
		Position:      vec3(b.Position),
		Size:          size,
		Rotation:      vec3(b.Rotation),
		Material:      b.Material,
		TextureURL:    TextureURL(b.Material),
		Repeat:        TextureRepeat(size),
		Surface:       SurfaceFor(b.Material),
		CastShadow:    true,
		ReceiveShadow: true,
	}
}

// LightSource maps a light onto a shadow-casting point light with a visible marker.
func LightSource(l model.Light) PointLight {
	return PointLight{
		Position:      vec3(l.Position),
		Color:         l.Color,
		Intensity:     float32(l.Intensity),
		Distance:      LightDistance,
		Decay:         LightDecay,
		CastShadow:    true,
		ShadowMapSize: [2]int{LightShadowMapSize, LightShadowMapSize},
		ShadowBias:    LightShadowBias,
		Marker:        Marker{Radius: MarkerRadius, Segments: MarkerSegments, Color: l.Color},
	}
}

// TextureRepeat tiles a texture by the two largest dimensions of size, largest first,
// so that texels keep roughly the same world size on every box.
func TextureRepeat(size Vec3) [2]float32 {
	dims := []float32{size[0], size[1], size[2]}
	sort.Slice(dims, func(i, j int) bool { return dims[i] > dims[j] })
	return [2]float32{dims[0], dims[1]}
}

// SurfaceFor returns the surface response of a material. Glass and water are translucent
// and smoother; every other material is opaque with the default response.
func SurfaceFor(m model.Material) Surface {
	switch m {
	case model.MaterialGlass:
		return Surface{Transparent: true, Opacity: glassOpacity, Roughness: reflectiveRoughness, Metalness: 0.1}
	case model.MaterialWater:
		return Surface{Transparent: true, Opacity: waterOpacity, Roughness: reflectiveRoughness, Metalness: 0.2}
	default:
		return Surface{Opacity: 1, Roughness: defaultRoughness, Metalness: defaultMetalness}
	}
}

func vec3(v [3]float64) Vec3 {
	return Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

type boundsBuilder struct {
	min, max Vec3
	any      bool
}

func (b *boundsBuilder) addPoint(p Vec3) {
	if !b.any {
		b.min, b.max, b.any = p, p, true
		return
	}
	for i := 0; i < 3; i++ {
		b.min[i] = float32(math.Min(float64(b.min[i]), float64(p[i])))
		b.max[i] = float32(math.Max(float64(b.max[i]), float64(p[i])))
	}
}

// addMesh adds the eight rotated corners of m.
func (b *boundsBuilder) addMesh(m Mesh) {
	rot := RotationXYZ(m.Rotation)
	for _, sx := range []float32{-0.5, 0.5} {
		for _, sy := range []float32{-0.5, 0.5} {
			for _, sz := range []float32{-0.5, 0.5} {
				local := Vec3{sx * m.Size[0], sy * m.Size[1], sz * m.Size[2]}
				w := rot.Apply(local)
				b.addPoint(Vec3{w[0] + m.Position[0], w[1] + m.Position[1], w[2] + m.Position[2]})
			}
		}
	}
}

func (b *boundsBuilder) bounds() Bounds {
	if !b.any {
		return Bounds{Empty: true}
	}
	return Bounds{Min: b.min, Max: b.max}
}

// Mat3 is a row-major 3x3 rotation matrix.
type Mat3 [3][3]float64

// RotationXYZ returns the matrix of Euler angles r applied in XYZ order, i.e. Rx·Ry·Rz,
// so a vector is rotated about Z first, then Y, then X.
func RotationXYZ(r Vec3) Mat3 {
	sx, cx := math.Sincos(float64(r[0]))
	sy, cy := math.Sincos(float64(r[1]))
	sz, cz := math.Sincos(float64(r[2]))
	rx := Mat3{{1, 0, 0}, {0, cx, -sx}, {0, sx, cx}}
	ry := Mat3{{cy, 0, sy}, {0, 1, 0}, {-sy, 0, cy}}
	rz := Mat3{{cz, -sz, 0}, {sz, cz, 0}, {0, 0, 1}}
	return rx.Mul(ry).Mul(rz)
}

// Mul returns m·n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += m[i][k] * n[k][j]
			}
		}
	}
	return out
}

// Apply returns m·v.
func (m Mat3) Apply(v Vec3) Vec3 {
	var out Vec3
	for i := 0; i < 3; i++ {
		out[i] = float32(m[i][0]*float64(v[0]) + m[i][1]*float64(v[1]) + m[i][2]*float64(v[2]))
	}
	return out
}
