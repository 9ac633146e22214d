package primitives

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// cached holds mesh and material for a primitive type. Created lazily on first Draw.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Registry holds the unit meshes every drillhole is drawn with: a cylinder for the hole body,
// a sphere for the collar marker and a flat disc around the collar. Meshes are created on first
// use so that GPU resources are allocated after the window/OpenGL context exists.
type Registry struct {
	detail   Detail
	cache    map[string]cached
	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame
}

// NewRegistry returns a registry with no meshes loaded yet.
func NewRegistry(detail Detail) *Registry {
	return &Registry{
		detail:   detail.withDefaults(),
		cache:    make(map[string]cached),
		lightDir: [3]float32{0.5, 1, 0.5}, // default: from above-right
	}
}

// SetView sets camera position and direction-to-light for this frame. Call once per frame
// before drawing so the lit meshes get correct shading.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

func (r *Registry) ensure(key string, gen func() rl.Mesh) (cached, bool) {
	if c, ok := r.cache[key]; ok {
		return c, true
	}
	mesh := gen()
	if mesh.VertexCount == 0 {
		return cached{}, false
	}
	mtl := rl.LoadMaterialDefault()
	if shader := loadLitShader(); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	c := cached{mesh: mesh, mtl: mtl}
	r.cache[key] = c
	return c, true
}

// loadLitShader returns a shader that does simple directional light + ambient.
// Same vertex attributes as raylib meshes: vertexPosition, vertexTexCoord, vertexNormal.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
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
	// litFS shades both faces so the collar disc reads from below in the 3D view.
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  if (dot(N, V) < 0.0) N = -N;
  vec3 L = normalize(lightDir);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float spec = pow(NdotH, specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
)

// defaultAmbient is the ambient term (bright enough that the far side of a hole is not black).
var defaultAmbient = [4]float32{0.35, 0.37, 0.4, 1.0}

// defaultLightColor is a soft warm-white for the directional light.
var defaultLightColor = [3]float32{1.0, 0.98, 0.95}

const (
	defaultLightIntensity   = float32(0.7)
	defaultSpecularPower    = float32(32.0)
	defaultSpecularStrength = float32(0.2)
)

// setLitShaderUniforms sets viewPos, lightDir, ambient, light color/intensity, and specular on the given shader (cgo-safe: local arrays).
func (r *Registry) setLitShaderUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{r.viewPos[0], r.viewPos[1], r.viewPos[2]}
	lightDir := [3]float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	amb := [4]float32{defaultAmbient[0], defaultAmbient[1], defaultAmbient[2], defaultAmbient[3]}
	lightColor := [3]float32{defaultLightColor[0], defaultLightColor[1], defaultLightColor[2]}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
	}
}

func (r *Registry) draw(c cached, color rl.Color, transform rl.Matrix) {
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = color
	}
	r.setLitShaderUniforms(c.mtl.Shader)
	rl.DrawMesh(c.mesh, c.mtl, transform)
}

// DrawCylinder draws a cylinder of the given radius from a to b.
// Must be called between BeginMode3D and EndMode3D.
func (r *Registry) DrawCylinder(a, b mgl32.Vec3, radius float32, color rl.Color) {
	c, ok := r.ensure("cylinder", func() rl.Mesh {
		// Unit cylinder: base at Y=0, top at Y=1.
		return rl.GenMeshCylinder(1, 1, r.detail.CylinderSlices)
	})
	if !ok {
		return
	}
	axis := b.Sub(a)
	length := axis.Len()
	if length == 0 {
		return
	}
	scaleM := rl.MatrixScale(radius, length, radius)
	rotM := alignY(axis.Mul(1 / length))
	transM := rl.MatrixTranslate(a.X(), a.Y(), a.Z())
	// Order: scale the unit mesh, turn +Y onto the axis, then move the base to a.
	r.draw(c, color, rl.MatrixMultiply(rl.MatrixMultiply(scaleM, rotM), transM))
}

// DrawSphere draws a sphere centered at center.
func (r *Registry) DrawSphere(center mgl32.Vec3, radius float32, color rl.Color) {
	c, ok := r.ensure("sphere", func() rl.Mesh {
		return rl.GenMeshSphere(1, r.detail.SphereRings, r.detail.SphereSlices)
	})
	if !ok {
		return
	}
	scaleM := rl.MatrixScale(radius, radius, radius)
	transM := rl.MatrixTranslate(center.X(), center.Y(), center.Z())
	r.draw(c, color, rl.MatrixMultiply(scaleM, transM))
}

// DrawDisc draws a flat disc facing normal. The color's alpha gives the disc's translucency.
func (r *Registry) DrawDisc(center, normal mgl32.Vec3, radius float32, color rl.Color) {
	c, ok := r.ensure("disc", func() rl.Mesh {
		// raylib polygons lie in the XZ plane facing +Y.
		return rl.GenMeshPoly(r.detail.DiscSides, 1)
	})
	if !ok {
		return
	}
	if normal.Len() == 0 {
		normal = mgl32.Vec3{0, 1, 0}
	}
	scaleM := rl.MatrixScale(radius, 1, radius)
	rotM := alignY(normal.Normalize())
	transM := rl.MatrixTranslate(center.X(), center.Y(), center.Z())
	r.draw(c, color, rl.MatrixMultiply(rl.MatrixMultiply(scaleM, rotM), transM))
}

// alignY returns the rotation that turns +Y onto the unit vector dir.
func alignY(dir mgl32.Vec3) rl.Matrix {
	up := mgl32.Vec3{0, 1, 0}
	d := mgl32.Clamp(up.Dot(dir), -1, 1)
	if d > 1-1e-6 {
		return rl.MatrixIdentity()
	}
	if d < -1+1e-6 {
		return rl.MatrixRotate(rl.NewVector3(1, 0, 0), math32.Pi)
	}
	axis := up.Cross(dir).Normalize()
	return rl.MatrixRotate(rl.NewVector3(axis.X(), axis.Y(), axis.Z()), math32.Acos(d))
}

// Unload releases every mesh and material. The registry can be used again afterwards; meshes
// are recreated on the next draw.
func (r *Registry) Unload() {
	for key, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		rl.UnloadMaterial(c.mtl)
		delete(r.cache, key)
	}
}
