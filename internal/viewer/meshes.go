package viewer

import (
	"house-modeler/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// untexturedTint is the neutral albedo of a box whose texture failed to load.
var untexturedTint = rl.NewColor(205, 205, 205, 255)

// boxes draws unit cubes scaled, rotated and placed per render.Mesh. GPU resources are created
// on first use so they are allocated after the window and GL context exist.
type boxes struct {
	ready  bool
	mesh   rl.Mesh
	mtl    rl.Material
	shader *litShader

	// blank is the default material's own albedo texture, rebound for untextured boxes.
	blank rl.Texture2D
}

func (b *boxes) ensure() bool {
	if b.ready {
		return b.shader != nil
	}
	b.ready = true
	b.mesh = rl.GenMeshCube(1, 1, 1)
	b.mtl = rl.LoadMaterialDefault()
	if albedo := b.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		b.blank = albedo.Texture
	}
	if sh, ok := loadLitShader(); ok {
		b.shader = sh
		b.mtl.Shader = sh.shader
	}
	return b.shader != nil
}

// transform builds scale, then rotation about Z, Y and X (Euler XYZ), then translation.
func transform(m render.Mesh) rl.Matrix {
	scale := rl.MatrixScale(m.Size[0], m.Size[1], m.Size[2])
	rot := rl.MatrixMultiply(
		rl.MatrixMultiply(rl.MatrixRotateZ(m.Rotation[2]), rl.MatrixRotateY(m.Rotation[1])),
		rl.MatrixRotateX(m.Rotation[0]),
	)
	trans := rl.MatrixTranslate(m.Position[0], m.Position[1], m.Position[2])
	return rl.MatrixMultiply(rl.MatrixMultiply(scale, rot), trans)
}

// draw renders one box. tex is used when textured is true; otherwise the neutral tint is.
// Must be called between BeginMode3D and EndMode3D after the shader's frame uniforms are set.
func (b *boxes) draw(m render.Mesh, tex rl.Texture2D, textured bool) {
	tint := rl.White
	if !textured {
		tint = untexturedTint
	}
	tint.A = uint8(m.Surface.Opacity*255 + 0.5)
	if albedo := b.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	rl.SetMaterialTexture(&b.mtl, rl.MapAlbedo, albedoTexture(tex, b.blank, textured))
	if b.shader != nil {
		b.shader.setMesh(m, textured)
	}
	rl.DrawMesh(b.mesh, b.mtl, transform(m))
}

// albedoTexture picks the texture bound for a box. An untextured box gets blank so it never
// samples the previous box's image when the default shader is in use.
func albedoTexture(tex, blank rl.Texture2D, textured bool) rl.Texture2D {
	if textured {
		return tex
	}
	return blank
}

func (b *boxes) unload() {
	if !b.ready {
		return
	}
	rl.UnloadMesh(&b.mesh)
	if b.shader != nil {
		b.shader.unload()
	}
	b.ready = false
}
