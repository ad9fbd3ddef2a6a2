package primitives

import rl "github.com/gen2brain/raylib-go/raylib"

// loadLitShader returns a shader that does directional light, ambient and a rim term so
// the silhouette of each region stays readable against a dark background.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform float lightIntensity;
uniform float rimStrength;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  if (dot(N, V) < 0.0) N = -N;
  vec3 L = normalize(lightDir);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = colDiffuse.rgb * NdotL * lightIntensity;
  vec3 amb = ambient.rgb * colDiffuse.rgb;
  float rim = pow(1.0 - max(dot(N, V), 0.0), 3.0) * rimStrength;
  finalColor = vec4(amb + diffuse + vec3(rim), colDiffuse.a);
}
`
)

var defaultAmbient = [4]float32{0.3, 0.32, 0.36, 1.0}

const (
	defaultLightIntensity = float32(0.8)
	defaultRimStrength    = float32(0.25)
)

// setLitShaderUniforms sets the per-frame uniforms (cgo-safe: local arrays).
func setLitShaderUniforms(shader rl.Shader, view, light [3]float32) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{view[0], view[1], view[2]}
	lightDir := [3]float32{light[0], light[1], light[2]}
	amb := [4]float32{defaultAmbient[0], defaultAmbient[1], defaultAmbient[2], defaultAmbient[3]}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "rimStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultRimStrength}, rl.ShaderUniformFloat)
	}
}
