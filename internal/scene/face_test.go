package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/philipparndt/gostruct/pkg/geometry"
	"github.com/philipparndt/gostruct/pkg/model"
)

func TestResolveFaceBox(t *testing.T) {
	dims := model.Dimensions{Width: 2, Height: 4, Depth: 6}
	tests := []struct {
		face   int
		center geometry.Vector3
		normal geometry.Vector3
	}{
		{0, geometry.NewVector3(0, 0, 3), geometry.NewVector3(0, 0, 1)},
		{1, geometry.NewVector3(0, 0, -3), geometry.NewVector3(0, 0, -1)},
		{2, geometry.NewVector3(0, 2, 0), geometry.NewVector3(0, 1, 0)},
		{3, geometry.NewVector3(0, -2, 0), geometry.NewVector3(0, -1, 0)},
		{4, geometry.NewVector3(1, 0, 0), geometry.NewVector3(1, 0, 0)},
		{5, geometry.NewVector3(-1, 0, 0), geometry.NewVector3(-1, 0, 0)},
		{9, geometry.NewVector3(0, 2, 0), geometry.NewVector3(0, 1, 0)},
		{-1, geometry.NewVector3(0, 2, 0), geometry.NewVector3(0, 1, 0)},
	}
	for _, tt := range tests {
		f := ResolveFace(model.ShapeBox, dims, tt.face)
		assert.Equal(t, tt.center, f.Center, "face %d center", tt.face)
		assert.Equal(t, tt.normal, f.Normal, "face %d normal", tt.face)
	}
}

func TestResolveFaceCylinder(t *testing.T) {
	dims := model.Dimensions{Radius: 0.5, Height: 2}

	top := ResolveFace(model.ShapeCylinder, dims, 0)
	assert.Equal(t, geometry.NewVector3(0, 1, 0), top.Center)
	assert.Equal(t, geometry.UnitY, top.Normal)

	bottom := ResolveFace(model.ShapeCylinder, dims, 1)
	assert.Equal(t, geometry.NewVector3(0, -1, 0), bottom.Center)
	assert.Equal(t, geometry.UnitY.Negate(), bottom.Normal)

	side := ResolveFace(model.ShapeCylinder, dims, 2)
	assert.Equal(t, geometry.NewVector3(0.5, 0, 0), side.Center)
	assert.Equal(t, geometry.UnitX, side.Normal)

	assert.Equal(t, top, ResolveFace(model.ShapeCylinder, dims, 7))
}

func TestResolveFaceSphereIgnoresIndex(t *testing.T) {
	dims := model.Dimensions{Radius: 1.5}
	want := ResolveFace(model.ShapeSphere, dims, 0)

	assert.Equal(t, geometry.NewVector3(0, 1.5, 0), want.Center)
	assert.Equal(t, geometry.UnitY, want.Normal)
	for _, face := range []int{1, 2, 5, 100} {
		assert.Equal(t, want, ResolveFace(model.ShapeSphere, dims, face))
	}
}

func TestWorldFaceTranslatesOnly(t *testing.T) {
	s := model.Solid{
		ID:       "a",
		Kind:     model.ShapeBox,
		Dims:     model.Dimensions{Width: 1, Height: 1, Depth: 1},
		Position: geometry.NewVector3(3, 0.5, -2),
		Rotation: geometry.Euler{Y: 1},
	}
	f := WorldFace(s, 4)
	assert.Equal(t, geometry.NewVector3(3.5, 0.5, -2), f.Center)
	assert.Equal(t, geometry.UnitX, f.Normal)
}
