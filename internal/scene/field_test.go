package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gostruct/pkg/geometry"
	"github.com/philipparndt/gostruct/pkg/model"
)

func TestMapColorRamp(t *testing.T) {
	tests := []struct {
		v    float64
		want geometry.Color
	}{
		{0, geometry.Color{R: 0, G: 0, B: 1}},
		{0.25, geometry.Color{R: 0, G: 1, B: 1}},
		{0.5, geometry.Color{R: 0, G: 1, B: 0}},
		{0.75, geometry.Color{R: 1, G: 1, B: 0}},
		{1, geometry.Color{R: 1, G: 0, B: 0}},
		{-3, geometry.Color{R: 0, G: 0, B: 1}},
		{7, geometry.Color{R: 1, G: 0, B: 0}},
		{0.125, geometry.Color{R: 0, G: 0.5, B: 1}},
	}
	for _, tt := range tests {
		got := MapColor(tt.v)
		assert.InDelta(t, tt.want.R, got.R, 1e-12, "v=%v", tt.v)
		assert.InDelta(t, tt.want.G, got.G, 1e-12, "v=%v", tt.v)
		assert.InDelta(t, tt.want.B, got.B, 1e-12, "v=%v", tt.v)
	}
}

func TestNormalize(t *testing.T) {
	r := model.Range{Min: 10, Max: 20}
	assert.Equal(t, 0.5, Normalize(15, r))
	assert.Equal(t, 0.0, Normalize(5, r))
	assert.Equal(t, 1.0, Normalize(25, r))
	assert.Equal(t, 0.0, Normalize(15, model.Range{Min: 3, Max: 3}))
	assert.Equal(t, 0.0, Normalize(math.NaN(), r))
}

func TestSampleIndex(t *testing.T) {
	assert.Equal(t, 0, SampleIndex(0, 24, 100))
	assert.Equal(t, 50, SampleIndex(12, 24, 100))
	assert.Equal(t, 95, SampleIndex(23, 24, 100))
	assert.Equal(t, 2, SampleIndex(23, 24, 3))
	assert.Equal(t, 0, SampleIndex(5, 0, 3))
}

func TestFormatFieldValue(t *testing.T) {
	assert.Equal(t, "1.23e-04", FormatFieldValue(model.FieldDisplacement, 1.2345e-4))
	assert.Equal(t, "0.00e+00", FormatFieldValue(model.FieldDisplacement, 0))
	assert.Equal(t, "123.5", FormatFieldValue(model.FieldStress, 123.46e6))
	assert.Equal(t, "m", FieldUnit(model.FieldDisplacement))
	assert.Equal(t, "MPa", FieldUnit(model.FieldStress))
	assert.Equal(t, "von Mises Stress", FieldLabel(model.FieldStress))
}

func fieldScene(t *testing.T) (*Scene, *FieldMapper) {
	t.Helper()
	s := NewScene(DefaultOptions(), nil)
	_, err := s.Sync(testSolids())
	require.NoError(t, err)
	return s, NewFieldMapper(DefaultOptions().UnitFactor, nil)
}

func rampResults(ids ...string) *model.ResultField {
	res := &model.ResultField{
		Displacement: model.Range{Min: 0, Max: 1e-3},
		Stress:       model.Range{Min: 0, Max: 100},
		Solids:       map[string]model.SolidResult{},
	}
	for _, id := range ids {
		var r model.SolidResult
		for i := 0; i < 100; i++ {
			r.Displacements = append(r.Displacements, float64(i)*1e-5)
			r.Stresses = append(r.Stresses, float64(i))
		}
		res.Solids[id] = r
	}
	return res
}

func TestFieldMapperColorsProxies(t *testing.T) {
	s, m := fieldScene(t)
	results := rampResults("box", "cyl")

	assert.Equal(t, 3, m.Apply(s.Proxies(), results, model.DefaultFieldSettings()))

	box, _ := s.Proxy("box")
	assert.Equal(t, AppearanceField, box.Appearance)
	require.Len(t, box.Mesh.Colors, box.Mesh.VertexCount())
	assert.Equal(t, MapColor(0), box.Mesh.Colors[0])
	assert.False(t, box.Deformed())

	// no entry for the sphere: default look
	ball, _ := s.Proxy("ball")
	assert.Equal(t, AppearanceDefault, ball.Appearance)
	assert.Nil(t, ball.Mesh.Colors)

	// unchanged inputs are not reapplied
	assert.Zero(t, m.Apply(s.Proxies(), results, model.DefaultFieldSettings()))
}

func TestDeformationRoundTrip(t *testing.T) {
	s, m := fieldScene(t)
	results := rampResults("box", "cyl", "ball")
	deform := model.FieldSettings{Kind: model.FieldDisplacement, ShowDeformed: true, DeformationScale: 2}

	m.Apply(s.Proxies(), results, deform)
	ball, _ := s.Proxy("ball")
	require.True(t, ball.Deformed())
	assert.NotEqual(t, ball.Pristine().Positions, ball.Mesh.Positions)

	// reapplying with a new scale starts from pristine again
	deform.DeformationScale = 1
	m.Apply(s.Proxies(), results, deform)
	last := ball.Mesh.VertexCount() - 1
	want := ball.Pristine().Positions[last].Add(
		ball.Pristine().Normals[last].Mul(results.Solids["ball"].Displacements[99] * 1 * 1000))
	assert.True(t, want.NearlyEqual(ball.Mesh.Positions[last], 1e-12))

	// toggling deformation off restores the exact pristine positions
	deform.ShowDeformed = false
	m.Apply(s.Proxies(), results, deform)
	for _, p := range s.Proxies() {
		assert.False(t, p.Deformed())
		assert.Equal(t, p.Pristine().Positions, p.Mesh.Positions, p.ID)
		assert.Equal(t, p.Pristine().Normals, p.Mesh.Normals, p.ID)
		assert.Equal(t, AppearanceField, p.Appearance)
	}
}

func TestSwitchingToStressRestoresGeometry(t *testing.T) {
	s, m := fieldScene(t)
	results := rampResults("box", "cyl", "ball")
	settings := model.FieldSettings{Kind: model.FieldDisplacement, ShowDeformed: true, DeformationScale: 5}

	m.Apply(s.Proxies(), results, settings)
	for _, p := range s.Proxies() {
		require.True(t, p.Deformed(), p.ID)
	}

	// showDeformed stays on; the stress field never deforms
	settings.Kind = model.FieldStress
	assert.Equal(t, 3, m.Apply(s.Proxies(), results, settings))
	for _, p := range s.Proxies() {
		assert.False(t, p.Deformed(), p.ID)
		assert.Equal(t, p.Pristine().Positions, p.Mesh.Positions, p.ID)
		assert.Equal(t, p.Pristine().Normals, p.Mesh.Normals, p.ID)
		assert.Equal(t, AppearanceField, p.Appearance, p.ID)
		assert.Len(t, p.Mesh.Colors, p.Mesh.VertexCount(), p.ID)
	}
}

func TestDeformationNeedsDisplacementField(t *testing.T) {
	s, m := fieldScene(t)
	m.Apply(s.Proxies(), rampResults("box"), model.FieldSettings{Kind: model.FieldStress, ShowDeformed: true, DeformationScale: 1})

	box, _ := s.Proxy("box")
	assert.False(t, box.Deformed())
	assert.Equal(t, box.Pristine().Positions, box.Mesh.Positions)
}

func TestClearingResultsRestoresDefault(t *testing.T) {
	s, m := fieldScene(t)
	results := rampResults("box", "cyl", "ball")
	m.Apply(s.Proxies(), results, model.FieldSettings{Kind: model.FieldDisplacement, ShowDeformed: true, DeformationScale: 1})

	assert.Equal(t, 3, m.Apply(s.Proxies(), nil, model.DefaultFieldSettings()))
	for _, p := range s.Proxies() {
		assert.Equal(t, AppearanceDefault, p.Appearance)
		assert.False(t, p.Deformed())
		assert.Nil(t, p.Mesh.Colors)
		assert.Equal(t, p.Pristine().Positions, p.Mesh.Positions)
	}
	assert.Zero(t, m.Apply(s.Proxies(), nil, model.DefaultFieldSettings()))
}

func TestFieldMapperReappliesAfterRebuild(t *testing.T) {
	s, m := fieldScene(t)
	results := rampResults("box")
	m.Apply(s.Proxies(), results, model.DefaultFieldSettings())

	solids := testSolids()
	solids[0].Dims.Height = 2
	var stats SyncStats
	require.NoError(t, s.Reconcile(solids, "", &stats))
	box, _ := s.Proxy("box")
	assert.Equal(t, AppearanceDefault, box.Appearance)

	assert.Equal(t, 1, m.Apply(s.Proxies(), results, model.DefaultFieldSettings()))
	assert.Equal(t, AppearanceField, box.Appearance)
}
