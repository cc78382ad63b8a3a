package viewer

import (
	"house-modeler/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxLights is the number of point lights the shader evaluates; further lights keep their
// marker but do not illuminate.
const maxLights = 8

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	// litFS shades with a sky/ground environment term plus up to 8 point lights using the
	// same smooth distance cutoff and decay as a physically based point light.
	litFS = `#version 330
#define MAX_LIGHTS 8
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec2 texRepeat;
uniform float useTexture;
uniform float roughness;
uniform float metalness;
uniform float envIntensity;
uniform float lightCount;
uniform vec3 lightPos[MAX_LIGHTS];
uniform vec3 lightColor[MAX_LIGHTS];
uniform float lightIntensity[MAX_LIGHTS];
uniform float lightDistance;
uniform float lightDecay;
out vec4 finalColor;
void main() {
  vec4 base = colDiffuse;
  if (useTexture > 0.5) {
    base *= texture(texture0, fragTexCoord * texRepeat);
  }
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  vec3 env = mix(vec3(0.36, 0.33, 0.30), vec3(0.86, 0.89, 0.96), 0.5 + 0.5 * N.y);
  vec3 color = base.rgb * env * (envIntensity + 0.45);
  float shininess = mix(128.0, 4.0, roughness);
  float specStrength = mix(0.04, 0.9, metalness) * (1.0 - roughness);
  for (int i = 0; i < MAX_LIGHTS; i++) {
    if (float(i) >= lightCount) break;
    vec3 toLight = lightPos[i] - fragPosition;
    float d = length(toLight);
    vec3 L = toLight / max(d, 0.0001);
    float cutoff = clamp(1.0 - pow(d / lightDistance, 4.0), 0.0, 1.0);
    float att = cutoff * cutoff / max(pow(d, lightDecay), 0.01);
    vec3 radiance = lightColor[i] * lightIntensity[i] * att;
    float NdotL = max(dot(N, L), 0.0);
    vec3 H = normalize(L + V);
    float spec = pow(max(dot(N, H), 0.0), shininess) * specStrength;
    color += (base.rgb * (1.0 - 0.5 * metalness) * NdotL + spec * step(0.0, NdotL)) * radiance;
  }
  color = vec3(1.0) - exp(-color * 1.6);
  finalColor = vec4(color, base.a);
}
`
)

// litShader is the mesh shader with its uniform locations resolved once.
type litShader struct {
	shader rl.Shader

	viewPos, texRepeat, useTexture   int32
	roughness, metalness, envIntens  int32
	lightCount, lightPos, lightColor int32
	lightIntensity                   int32
	lightDistance, lightDecay        int32
}

func loadLitShader() (*litShader, bool) {
	sh := rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(sh) {
		return nil, false
	}
	loc := func(name string) int32 { return rl.GetShaderLocation(sh, name) }
	return &litShader{
		shader:         sh,
		viewPos:        loc("viewPos"),
		texRepeat:      loc("texRepeat"),
		useTexture:     loc("useTexture"),
		roughness:      loc("roughness"),
		metalness:      loc("metalness"),
		envIntens:      loc("envIntensity"),
		lightCount:     loc("lightCount"),
		lightPos:       loc("lightPos"),
		lightColor:     loc("lightColor"),
		lightIntensity: loc("lightIntensity"),
		lightDistance:  loc("lightDistance"),
		lightDecay:     loc("lightDecay"),
	}, true
}

func (s *litShader) setFloat(loc int32, v float32) {
	if loc >= 0 {
		rl.SetShaderValue(s.shader, loc, []float32{v}, rl.ShaderUniformFloat)
	}
}

// setFrame uploads the per-frame uniforms: eye position, environment and lights.
func (s *litShader) setFrame(eye render.Vec3, stage render.Stage, lights []render.PointLight) {
	if s.viewPos >= 0 {
		rl.SetShaderValueV(s.shader, s.viewPos, []float32{eye[0], eye[1], eye[2]}, rl.ShaderUniformVec3, 1)
	}
	s.setFloat(s.envIntens, stage.Intensity)

	n := len(lights)
	if n > maxLights {
		n = maxLights
	}
	pos := make([]float32, 0, maxLights*3)
	col := make([]float32, 0, maxLights*3)
	intensity := make([]float32, 0, maxLights)
	for _, l := range lights[:n] {
		pos = append(pos, l.Position[0], l.Position[1], l.Position[2])
		rgb, _ := render.ParseColor(l.Color)
		f := rgb.Floats()
		col = append(col, f[0], f[1], f[2])
		intensity = append(intensity, l.Intensity)
	}
	s.setFloat(s.lightCount, float32(n))
	if n > 0 {
		if s.lightPos >= 0 {
			rl.SetShaderValueV(s.shader, s.lightPos, pos, rl.ShaderUniformVec3, int32(n))
		}
		if s.lightColor >= 0 {
			rl.SetShaderValueV(s.shader, s.lightColor, col, rl.ShaderUniformVec3, int32(n))
		}
		if s.lightIntensity >= 0 {
			rl.SetShaderValueV(s.shader, s.lightIntensity, intensity, rl.ShaderUniformFloat, int32(n))
		}
		s.setFloat(s.lightDistance, lights[0].Distance)
		s.setFloat(s.lightDecay, lights[0].Decay)
	}
}

// setMesh uploads the per-mesh uniforms.
func (s *litShader) setMesh(m render.Mesh, textured bool) {
	if s.texRepeat >= 0 {
		rl.SetShaderValueV(s.shader, s.texRepeat, []float32{m.Repeat[0], m.Repeat[1]}, rl.ShaderUniformVec2, 1)
	}
	use := float32(0)
	if textured {
		use = 1
	}
	s.setFloat(s.useTexture, use)
	s.setFloat(s.roughness, m.Surface.Roughness)
	s.setFloat(s.metalness, m.Surface.Metalness)
}

func (s *litShader) unload() {
	rl.UnloadShader(s.shader)
}
