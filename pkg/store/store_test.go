package store

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gostruct/pkg/geometry"
	"github.com/philipparndt/gostruct/pkg/model"
)

func box(pos geometry.Vector3) model.Solid {
	return model.Solid{Kind: model.ShapeBox, Dims: model.Dimensions{Width: 1, Height: 1, Depth: 1}, Position: pos}
}

func populated(t *testing.T) (*Store, string) {
	t.Helper()
	s := New(nil)
	id, err := s.AddSolid(box(geometry.NewVector3(0, 0.5, 0)))
	require.NoError(t, err)
	_, err = s.AddLoad(model.Load{Kind: model.LoadForce, TargetID: id, Face: 2, Force: geometry.NewVector3(0, -1000, 0)})
	require.NoError(t, err)
	_, err = s.AddSupport(model.Support{Kind: model.SupportFixed, TargetID: id, Face: 3})
	require.NoError(t, err)
	return s, id
}

func TestAddSolidAssignsID(t *testing.T) {
	s := New(nil)
	id, err := s.AddSolid(box(geometry.Vector3{}))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "geo-"))

	other, err := s.AddSolid(box(geometry.Vector3{}))
	require.NoError(t, err)
	assert.NotEqual(t, id, other)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Solids, 2)
	assert.Equal(t, "Box", snap.Solids[0].Name)
}

func TestAddSolidRejectsInvalid(t *testing.T) {
	s := New(nil)
	_, err := s.AddSolid(model.Solid{Kind: model.ShapeSphere})
	assert.ErrorIs(t, err, model.ErrInvalidDimensions)
	assert.Zero(t, s.Revision())
}

func TestAnnotationNeedsTarget(t *testing.T) {
	s := New(nil)
	_, err := s.AddLoad(model.Load{Kind: model.LoadForce, TargetID: "geo-missing"})
	assert.ErrorIs(t, err, ErrDanglingTarget)
	_, err = s.AddSupport(model.Support{Kind: model.SupportFixed, TargetID: "geo-missing"})
	assert.ErrorIs(t, err, ErrDanglingTarget)
}

func TestRemoveSolidCascades(t *testing.T) {
	s, id := populated(t)
	s.Select(&model.Selection{Kind: model.SelectGeometry, ID: id})

	require.NoError(t, s.RemoveSolid(id))
	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Solids)
	assert.Empty(t, snap.Loads)
	assert.Empty(t, snap.Supports)
	assert.Nil(t, snap.Selection)

	assert.ErrorIs(t, s.RemoveSolid(id), ErrNotFound)
}

func TestRemoveSelectedAnnotation(t *testing.T) {
	s, _ := populated(t)
	snap, err := s.Snapshot()
	require.NoError(t, err)
	loadID := snap.Loads[0].ID

	s.Select(&model.Selection{Kind: model.SelectLoad, ID: loadID})
	require.NoError(t, s.RemoveSelected())

	snap, err = s.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Loads)
	assert.Len(t, snap.Supports, 1)
	assert.Nil(t, snap.Selection)
}

func TestSnapshotIsIsolated(t *testing.T) {
	s, id := populated(t)
	s.Select(&model.Selection{Kind: model.SelectGeometry, ID: id})
	snap, err := s.Snapshot()
	require.NoError(t, err)

	snap.Solids[0].Position.X = 42
	snap.Selection.ID = "other"

	again, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 0.0, again.Solids[0].Position.X)
	assert.Equal(t, id, again.Selection.ID)
	assert.Equal(t, snap.Revision, again.Revision)
}

func TestUpdateSolidKeepsIDAndValidates(t *testing.T) {
	s, id := populated(t)

	require.NoError(t, s.UpdateSolid(id, func(solid *model.Solid) {
		solid.ID = "renamed"
		solid.Dims.Width = 3
	}))
	err := s.UpdateSolid(id, func(solid *model.Solid) { solid.Dims.Depth = -1 })
	assert.ErrorIs(t, err, model.ErrInvalidDimensions)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, id, snap.Solids[0].ID)
	assert.Equal(t, 3.0, snap.Solids[0].Dims.Width)
	assert.Equal(t, 1.0, snap.Solids[0].Dims.Depth)
}

func TestResultsResetViewSettings(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.SetFieldSettings(model.FieldSettings{Kind: model.FieldDisplacement, ShowDeformed: true, DeformationScale: 5}))

	s.SetResults(&model.ResultField{})
	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, model.FieldSettings{Kind: model.FieldStress, DeformationScale: 5}, snap.View)
	assert.True(t, snap.HasResults())

	s.ClearResults()
	snap, err = s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultFieldSettings(), snap.View)
	assert.False(t, snap.HasResults())
}

func TestDeformationScaleOption(t *testing.T) {
	s := New(nil, WithDeformationScale(10))
	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 10.0, snap.View.DeformationScale)

	require.NoError(t, s.SetFieldSettings(model.FieldSettings{Kind: model.FieldDisplacement, ShowDeformed: true, DeformationScale: 2}))
	s.ClearResults()
	snap, err = s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, model.FieldSettings{Kind: model.FieldStress, DeformationScale: 10}, snap.View)

	require.NoError(t, s.SetFieldSettings(model.FieldSettings{Kind: model.FieldStress, DeformationScale: 3}))
	s.Reset()
	snap, err = s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 10.0, snap.View.DeformationScale)

	require.NoError(t, s.SetFieldSettings(model.FieldSettings{Kind: model.FieldStress, DeformationScale: 3}))
	require.NoError(t, s.LoadProject(Project{}))
	snap, err = s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 10.0, snap.View.DeformationScale)

	// non-positive scales keep the default
	assert.Equal(t, 1.0, New(nil, WithDeformationScale(0)).view.DeformationScale)
}

func TestSnapshotSharesResults(t *testing.T) {
	s := New(nil)
	results := &model.ResultField{}
	s.SetResults(results)

	a, err := s.Snapshot()
	require.NoError(t, err)
	b, err := s.Snapshot()
	require.NoError(t, err)
	assert.Same(t, results, a.Results)
	assert.Same(t, a.Results, b.Results)
}

func TestApplyCommands(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.ArmCreation(model.ShapeCylinder))

	err := s.Apply(
		model.CreateSolid{Kind: model.ShapeCylinder, Dims: model.CubeDimensions(model.ShapeCylinder, 2), Position: geometry.NewVector3(1, 1, 1)},
		model.ClearCreationMode{},
	)
	require.NoError(t, err)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Solids, 1)
	assert.False(t, snap.Creation.Armed)
	id := snap.Solids[0].ID

	require.NoError(t, s.Apply(
		model.SetSelection{Selection: &model.Selection{Kind: model.SelectGeometry, ID: id}},
		model.UpdateSolidTransform{ID: id, Position: geometry.NewVector3(4, 1, 0)},
	))
	snap, err = s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, geometry.NewVector3(4, 1, 0), snap.Solids[0].Position)
	assert.True(t, snap.IsSelected(id))

	err = s.Apply(model.UpdateSolidTransform{ID: "geo-missing"}, model.SetSelection{})
	assert.ErrorIs(t, err, ErrNotFound)
	snap, err = s.Snapshot()
	require.NoError(t, err)
	assert.Nil(t, snap.Selection)
}

func TestArmCreationRejectsUnknownShape(t *testing.T) {
	s := New(nil)
	assert.ErrorIs(t, s.ArmCreation("cone"), model.ErrUnknownShape)
}

func TestRevisionCountsMutations(t *testing.T) {
	s := New(nil)
	s.SetViewport(800, 600)
	r := s.Revision()
	s.SetViewport(800, 600)
	s.DisarmCreation()
	assert.Equal(t, r, s.Revision())

	s.Select(nil)
	assert.Equal(t, r+1, s.Revision())
}

func TestProjectRoundTrip(t *testing.T) {
	s, _ := populated(t)
	_, err := s.AddSolid(model.Solid{Kind: model.ShapeSphere, Dims: model.Dimensions{Radius: 0.5}, Position: geometry.NewVector3(3, 0.5, 0)})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf))
	assert.Contains(t, buf.String(), "geometries:")
	assert.Contains(t, buf.String(), "targetGeometryId:")

	loaded := New(nil)
	p, err := ReadProject(&buf)
	require.NoError(t, err)
	require.NoError(t, loaded.LoadProject(p))
	assert.Equal(t, s.Project(), loaded.Project())
}

func TestProjectFileRoundTrip(t *testing.T) {
	s, _ := populated(t)
	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, s.SaveFile(path))

	loaded := New(nil)
	require.NoError(t, loaded.LoadFile(path))
	assert.Equal(t, s.Project(), loaded.Project())
}

func TestLoadProjectRejectsDanglingTargets(t *testing.T) {
	s, _ := populated(t)
	before := s.Project()

	p := Project{
		Solids: []model.Solid{{ID: "geo-1", Kind: model.ShapeBox, Dims: model.Dimensions{Width: 1, Height: 1, Depth: 1}}},
		Loads:  []model.Load{{ID: "load-1", Kind: model.LoadForce, TargetID: "geo-2"}},
	}
	assert.ErrorIs(t, s.LoadProject(p), ErrDanglingTarget)
	assert.Equal(t, before, s.Project())
}

func TestReset(t *testing.T) {
	s, _ := populated(t)
	s.SetResults(&model.ResultField{})
	s.Reset()

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Solids)
	assert.Empty(t, snap.Loads)
	assert.False(t, snap.HasResults())
	assert.Equal(t, []model.Material{model.DefaultMaterial()}, s.Materials())
}
