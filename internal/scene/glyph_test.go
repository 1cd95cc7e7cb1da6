package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gostruct/pkg/geometry"
	"github.com/philipparndt/gostruct/pkg/model"
)

func unitBox(id string, pos geometry.Vector3) model.Solid {
	return model.Solid{ID: id, Kind: model.ShapeBox, Dims: model.Dimensions{Width: 1, Height: 1, Depth: 1}, Position: pos}
}

func TestSupportGlyphs(t *testing.T) {
	box := unitBox("g", geometry.NewVector3(0, 0.5, 0))
	glyphs := BuildGlyphs(model.Support{ID: "s", Kind: model.SupportFixed, TargetID: "g", Face: 3}, box, DefaultOptions().Glyphs)

	require.Len(t, glyphs, 2)
	cone, ball := glyphs[0], glyphs[1]
	assert.Equal(t, GlyphCone, cone.Kind)
	assert.Equal(t, GlyphBall, ball.Kind)
	assert.Equal(t, geometry.UnitY.Negate(), cone.Direction)
	assert.Equal(t, SupportColor, cone.Color)

	// bottom face at y=0, lifted 0.3 along -Y
	assert.InDelta(t, -0.3, cone.Origin.Y-cone.Length/2, 1e-12)
	assert.True(t, cone.Tip().NearlyEqual(ball.Origin, 1e-12))
}

func TestForceGlyphLengthIsCapped(t *testing.T) {
	box := unitBox("g", geometry.Vector3{})
	opts := DefaultOptions().Glyphs

	small := BuildGlyphs(model.Load{ID: "l", Kind: model.LoadForce, Face: 2, Force: geometry.NewVector3(0, -500, 0)}, box, opts)
	require.Len(t, small, 1)
	assert.InDelta(t, 0.5, small[0].Length, 1e-12)
	assert.Equal(t, geometry.UnitY.Negate(), small[0].Direction)
	assert.Equal(t, geometry.NewVector3(0, 0.5, 0), small[0].Origin)
	assert.InDelta(t, 0.15, small[0].HeadLength, 1e-12)

	big := BuildGlyphs(model.Load{ID: "l", Kind: model.LoadForce, Face: 2, Force: geometry.NewVector3(1e6, 0, 0)}, box, opts)
	require.Len(t, big, 1)
	assert.Equal(t, opts.MaxArrowLength, big[0].Length)
}

func TestZeroForceDrawsNothing(t *testing.T) {
	box := unitBox("g", geometry.Vector3{})
	glyphs := BuildGlyphs(model.Load{ID: "l", Kind: model.LoadForce, Force: geometry.NewVector3(0, 0.0001, 0)}, box, DefaultOptions().Glyphs)
	assert.Empty(t, glyphs)
}

func TestPressureGlyphGrid(t *testing.T) {
	box := unitBox("g", geometry.Vector3{})
	glyphs := BuildGlyphs(model.Load{ID: "p", Kind: model.LoadPressure, Face: 4, Pressure: 1e5}, box, DefaultOptions().Glyphs)

	require.Len(t, glyphs, 8)
	center := geometry.NewVector3(0.5, 0, 0)
	for _, g := range glyphs {
		assert.Equal(t, geometry.UnitX.Negate(), g.Direction)
		assert.Equal(t, PressureColor, g.Color)
		// all arrows lie in the face plane x=0.5
		assert.InDelta(t, 0.5, g.Origin.X, 1e-12)
		assert.False(t, g.Origin.NearlyEqual(center, 1e-9), "center cell must be skipped")
	}
}

func TestOutOfRangeFaceUsesTopFace(t *testing.T) {
	box := unitBox("g", geometry.NewVector3(0, 0.5, 0))
	opts := DefaultOptions().Glyphs

	bad := BuildGlyphs(model.Support{ID: "s", Kind: model.SupportFixed, TargetID: "g", Face: 9}, box, opts)
	top := BuildGlyphs(model.Support{ID: "s", Kind: model.SupportFixed, TargetID: "g", Face: 2}, box, opts)
	assert.Equal(t, top, bad)
}
