package app

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gostruct/internal/scene"
	"github.com/philipparndt/gostruct/pkg/geometry"
)

const (
	fovY          = 75.0
	minDistance   = 1.0
	maxDistance   = 200.0
	maxPitch      = math32.Pi/2 - 0.01
	orbitSpeed    = 0.005
	zoomSpeedStep = 0.1
)

// initCamera places the camera like the default view of the editor, looking
// at the origin from (5, 5, 5)
func (app *App) initCamera() {
	app.Camera.defaultDist = math32.Sqrt(75)
	app.Camera.defaultAngleX = math32.Asin(1 / math32.Sqrt(3))
	app.Camera.defaultAngleY = math32.Pi / 4

	app.Camera.camera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       fovY,
		Projection: rl.CameraPerspective,
	}
	app.resetCameraView()
}

// resetCameraView resets the camera to the default view
func (app *App) resetCameraView() {
	app.Camera.distance = app.Camera.defaultDist
	app.Camera.angleX = app.Camera.defaultAngleX
	app.Camera.angleY = app.Camera.defaultAngleY
	app.Camera.target = rl.Vector3{}
}

// setCameraTopView looks straight down onto the ground plane
func (app *App) setCameraTopView() {
	app.Camera.angleX = maxPitch
	app.Camera.angleY = 0
}

// setCameraFrontView looks along -Z
func (app *App) setCameraFrontView() {
	app.Camera.angleX = 0
	app.Camera.angleY = 0
}

// setCameraRightView looks along -X
func (app *App) setCameraRightView() {
	app.Camera.angleX = 0
	app.Camera.angleY = math32.Pi / 2
}

// frameScene points the camera at the bounds of every solid
func (app *App) frameScene() {
	bounds := geometry.NewBoundingBox()
	for _, p := range app.Scene.engine.Scene().Proxies() {
		b := p.Mesh.Bounds()
		if b.IsEmpty() {
			continue
		}
		bounds.Extend(b.Min.Add(p.Position))
		bounds.Extend(b.Max.Add(p.Position))
	}
	if bounds.IsEmpty() {
		app.resetCameraView()
		return
	}

	size := bounds.Size()
	maxDim := float32(max(size.X, size.Y, size.Z))
	app.Camera.target = toRaylib(bounds.Center())
	app.Camera.distance = max(minDistance, min(maxDistance, maxDim*2))
}

// updateCamera updates camera position based on angles
func (app *App) updateCamera() {
	c := &app.Camera
	x := c.distance * math32.Cos(c.angleX) * math32.Sin(c.angleY)
	y := c.distance * math32.Sin(c.angleX)
	z := c.distance * math32.Cos(c.angleX) * math32.Cos(c.angleY)

	c.camera.Position = rl.Vector3{
		X: c.target.X + x,
		Y: c.target.Y + y,
		Z: c.target.Z + z,
	}
	c.camera.Target = c.target
}

// doOrbit rotates the camera around its target
func (app *App) doOrbit(delta rl.Vector2) {
	app.Camera.angleY -= delta.X * orbitSpeed
	app.Camera.angleX += delta.Y * orbitSpeed
	app.Camera.angleX = max(-maxPitch, min(maxPitch, app.Camera.angleX))
}

// doPan performs camera panning based on mouse delta
func (app *App) doPan(delta rl.Vector2) {
	// Calculate camera right and up vectors for panning
	forward := rl.Vector3Normalize(rl.Vector3Subtract(app.Camera.target, app.Camera.camera.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, app.Camera.camera.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	// Pan speed based on distance from target
	panSpeed := app.Camera.distance * 0.001

	rightMove := rl.Vector3Scale(right, -delta.X*panSpeed)
	upMove := rl.Vector3Scale(up, delta.Y*panSpeed)

	app.Camera.target = rl.Vector3Add(app.Camera.target, rightMove)
	app.Camera.target = rl.Vector3Add(app.Camera.target, upMove)
}

// doZoom moves the camera towards or away from its target
func (app *App) doZoom(wheel float32) {
	app.Camera.distance *= 1 - wheel*zoomSpeedStep
	app.Camera.distance = max(minDistance, min(maxDistance, app.Camera.distance))
}

// sceneCamera mirrors the raylib camera for ray casting in the engine
func (app *App) sceneCamera() scene.Camera {
	c := app.Camera.camera
	return scene.NewCamera(
		toVector3(c.Position),
		toVector3(c.Target),
		float64(c.Fovy),
		rl.GetScreenWidth(),
		rl.GetScreenHeight(),
	)
}

func toVector3(v rl.Vector3) geometry.Vector3 {
	return geometry.NewVector3(float64(v.X), float64(v.Y), float64(v.Z))
}

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
