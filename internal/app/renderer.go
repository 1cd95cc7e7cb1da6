package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gostruct/internal/scene"
	"github.com/philipparndt/gostruct/pkg/geometry"
	"github.com/philipparndt/gostruct/pkg/model"
)

const (
	ambient     = 0.6
	diffuse     = 0.8
	glyphSides  = 12
	previewFade = 0.5
)

// Light direction for baked lighting, pointing from the light into the scene
var lightDir = geometry.NewVector3(-1, -1, -1).Normalize()

// Emissive highlight added on top of the lit color
var highlightEmissive = map[scene.Highlight]geometry.Color{
	scene.HighlightHovered:  {R: 0x22 / 255.0, G: 0x22 / 255.0, B: 0x22 / 255.0},
	scene.HighlightSelected: {R: 0x55 / 255.0, G: 0x55 / 255.0, B: 0x55 / 255.0},
	scene.HighlightDragged:  {R: 0x88 / 255.0, G: 0xff / 255.0, B: 0x88 / 255.0},
}

// proxyToRaylibMesh converts a proxy mesh to an unindexed raylib mesh with
// baked lighting. Vertex colors come from the field mapper when the proxy
// shows results, otherwise every vertex gets the base color.
func proxyToRaylibMesh(p *scene.Proxy) *gpuMesh {
	m := p.Mesh
	vertexCount := len(m.Indices)
	g := &gpuMesh{
		revision:  p.Revision,
		highlight: p.Highlight,
		rotation:  p.Rotation,
		vertices:  make([]float32, vertexCount*3),
		normals:   make([]float32, vertexCount*3),
		colors:    make([]uint8, vertexCount*4),
	}
	g.mesh = rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(vertexCount / 3),
	}

	emissive := highlightEmissive[p.Highlight]
	useField := p.Appearance == scene.AppearanceField && len(m.Colors) == len(m.Positions)

	for i, vi := range m.Indices {
		pos := m.Positions[vi]
		normal := m.Normals[vi]
		base := scene.DefaultColor
		if useField {
			base = m.Colors[vi]
		}

		// Lighting is evaluated with the world space normal
		world := p.Rotation.Rotate(normal)
		intensity := ambient + diffuse*math.Max(0, -world.Dot(lightDir))

		g.vertices[i*3+0] = float32(pos.X)
		g.vertices[i*3+1] = float32(pos.Y)
		g.vertices[i*3+2] = float32(pos.Z)
		g.normals[i*3+0] = float32(normal.X)
		g.normals[i*3+1] = float32(normal.Y)
		g.normals[i*3+2] = float32(normal.Z)
		g.colors[i*4+0] = channel(base.R*intensity + emissive.R)
		g.colors[i*4+1] = channel(base.G*intensity + emissive.G)
		g.colors[i*4+2] = channel(base.B*intensity + emissive.B)
		g.colors[i*4+3] = 255
	}

	// Assign mesh data
	if vertexCount > 0 {
		g.mesh.Vertices = &g.vertices[0]
		g.mesh.Normals = &g.normals[0]
		g.mesh.Colors = &g.colors[0]
	}

	// Upload mesh data to GPU
	rl.UploadMesh(&g.mesh, false)
	return g
}

func channel(v float64) uint8 {
	return uint8(math.Round(255 * math.Max(0, math.Min(1, v))))
}

func toColor(c geometry.Color) rl.Color {
	return rl.NewColor(channel(c.R), channel(c.G), channel(c.B), 255)
}

// stale reports whether the uploaded mesh no longer matches the proxy
func (g *gpuMesh) stale(p *scene.Proxy) bool {
	return g.revision != p.Revision || g.highlight != p.Highlight || g.rotation != p.Rotation
}

// syncMeshes uploads new or changed proxy meshes and unloads the meshes of
// proxies that are gone
func (app *App) syncMeshes() {
	seen := make(map[string]struct{}, app.Scene.engine.Scene().Len())
	for _, p := range app.Scene.engine.Scene().Proxies() {
		seen[p.ID] = struct{}{}
		g, ok := app.Scene.meshes[p.ID]
		if ok && !g.stale(p) {
			continue
		}
		if ok {
			rl.UnloadMesh(&g.mesh)
		}
		app.Scene.meshes[p.ID] = proxyToRaylibMesh(p)
	}
	for id, g := range app.Scene.meshes {
		if _, ok := seen[id]; !ok {
			rl.UnloadMesh(&g.mesh)
			delete(app.Scene.meshes, id)
		}
	}
}

// unloadMeshes releases every uploaded mesh
func (app *App) unloadMeshes() {
	for id, g := range app.Scene.meshes {
		rl.UnloadMesh(&g.mesh)
		delete(app.Scene.meshes, id)
	}
}

// modelMatrix builds the proxy transform, rotation first then translation
func modelMatrix(rotation geometry.Euler, position geometry.Vector3) rl.Matrix {
	r := rotation.Matrix()
	return rl.Matrix{
		M0: float32(r[0][0]), M4: float32(r[0][1]), M8: float32(r[0][2]), M12: float32(position.X),
		M1: float32(r[1][0]), M5: float32(r[1][1]), M9: float32(r[1][2]), M13: float32(position.Y),
		M2: float32(r[2][0]), M6: float32(r[2][1]), M10: float32(r[2][2]), M14: float32(position.Z),
		M3: 0, M7: 0, M11: 0, M15: 1,
	}
}

// drawProxies draws every solid at its current transform
func (app *App) drawProxies() {
	for _, p := range app.Scene.engine.Scene().Proxies() {
		g, ok := app.Scene.meshes[p.ID]
		if !ok {
			continue
		}
		rl.DrawMesh(g.mesh, app.Scene.material, modelMatrix(p.Rotation, p.Position))
	}
}

// drawGlyphs draws the load and support markers
func (app *App) drawGlyphs() {
	for _, set := range app.Scene.engine.Scene().GlyphSets() {
		for _, g := range set.Glyphs {
			drawGlyph(g)
		}
	}
}

func drawGlyph(g scene.Glyph) {
	color := toColor(g.Color)
	switch g.Kind {
	case scene.GlyphBall:
		rl.DrawSphereEx(toRaylib(g.Origin), float32(g.Radius), glyphSides, glyphSides, color)

	case scene.GlyphCone:
		rl.DrawCylinderEx(toRaylib(g.Origin), toRaylib(g.Tip()), float32(g.Radius), 0, glyphSides, color)

	case scene.GlyphArrow:
		// Shaft ends where the head starts
		headLength := math.Min(g.HeadLength, g.Length)
		neck := g.Origin.Add(g.Direction.Mul(g.Length - headLength))
		shaft := float32(math.Max(g.Radius, g.HeadWidth/6))
		rl.DrawCylinderEx(toRaylib(g.Origin), toRaylib(neck), shaft, shaft, glyphSides, color)
		rl.DrawCylinderEx(toRaylib(neck), toRaylib(g.Tip()), float32(g.HeadWidth/2), 0, glyphSides, color)
	}
}

// drawPreview draws the translucent shape of a creation drag
func (app *App) drawPreview() {
	preview, ok := app.Scene.engine.Preview()
	if !ok {
		return
	}
	color := rl.Fade(toColor(scene.DefaultColor), previewFade)
	center := toRaylib(preview.Position)
	d := preview.Dims

	switch preview.Kind {
	case model.ShapeBox:
		rl.DrawCube(center, float32(d.Width), float32(d.Height), float32(d.Depth), color)
		rl.DrawCubeWires(center, float32(d.Width), float32(d.Height), float32(d.Depth), rl.White)
	case model.ShapeCylinder:
		bottom := rl.Vector3{X: center.X, Y: center.Y - float32(d.Height/2), Z: center.Z}
		rl.DrawCylinder(bottom, float32(d.Radius), float32(d.Radius), float32(d.Height), int32(app.cfg.Mesh.RadialSegments), color)
		rl.DrawCylinderWires(bottom, float32(d.Radius), float32(d.Radius), float32(d.Height), int32(app.cfg.Mesh.RadialSegments), rl.White)
	case model.ShapeSphere:
		segments := int32(app.cfg.Mesh.SphereSegments)
		rl.DrawSphereEx(center, float32(d.Radius), segments, segments, color)
	}
}

// drawGround draws the grid and the world axes
func (app *App) drawGround() {
	if app.View.showGrid {
		rl.DrawGrid(10, 1)
	}
	if app.View.showAxes {
		origin := rl.Vector3{}
		rl.DrawLine3D(origin, rl.Vector3{X: 5}, rl.Red)
		rl.DrawLine3D(origin, rl.Vector3{Y: 5}, rl.Green)
		rl.DrawLine3D(origin, rl.Vector3{Z: 5}, rl.Blue)
	}
}
