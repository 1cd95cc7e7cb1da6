package scene

import (
	"math"

	"github.com/philipparndt/gostruct/pkg/geometry"
)

// Camera is a perspective camera used to turn pointer coordinates into
// world space rays. FovY is the vertical field of view in degrees.
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FovY     float64
	Width    int
	Height   int
}

// NewCamera creates a camera looking from position at target with +Y up
func NewCamera(position, target geometry.Vector3, fovY float64, width, height int) Camera {
	return Camera{
		Position: position,
		Target:   target,
		Up:       geometry.UnitY,
		FovY:     fovY,
		Width:    width,
		Height:   height,
	}
}

func (c Camera) aspect() float64 {
	if c.Width <= 0 || c.Height <= 0 {
		return 1
	}
	return float64(c.Width) / float64(c.Height)
}

// basis returns the forward, right and up unit vectors of the view
func (c Camera) basis() (forward, right, up geometry.Vector3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

// Ray returns the world space ray through a normalized device coordinate
// (x right, y up, both in [-1,1]).
func (c Camera) Ray(ndcX, ndcY float64) geometry.Ray {
	forward, right, up := c.basis()
	tanHalf := math.Tan(c.FovY * math.Pi / 360)

	dir := forward.
		Add(right.Mul(ndcX * tanHalf * c.aspect())).
		Add(up.Mul(ndcY * tanHalf))
	return geometry.Ray{Origin: c.Position, Direction: dir.Normalize()}
}

// Project maps a world point to normalized device coordinates. ok is false
// for points behind the camera.
func (c Camera) Project(p geometry.Vector3) (x, y float64, ok bool) {
	forward, right, up := c.basis()
	rel := p.Sub(c.Position)
	depth := rel.Dot(forward)
	if depth <= 0 {
		return 0, 0, false
	}
	tanHalf := math.Tan(c.FovY * math.Pi / 360)
	x = rel.Dot(right) / (depth * tanHalf * c.aspect())
	y = rel.Dot(up) / (depth * tanHalf)
	return x, y, true
}

// PixelToNDC converts a pixel position with the origin at the top left
func PixelToNDC(px, py float64, width, height int) (float64, float64) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return px/float64(width)*2 - 1, -(py/float64(height)*2 - 1)
}
