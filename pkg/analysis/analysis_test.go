package analysis

import (
	"bytes"
	"context"
	"math"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gostruct/pkg/geometry"
	"github.com/philipparndt/gostruct/pkg/model"
)

func testInput() Input {
	return Input{
		Solids: []model.Solid{
			{ID: "geo-a", Kind: model.ShapeBox, Dims: model.Dimensions{Width: 1, Height: 2, Depth: 3}},
			{ID: "geo-b", Kind: model.ShapeSphere, Dims: model.Dimensions{Radius: 1}},
		},
		Loads: []model.Load{
			{ID: "load-1", Kind: model.LoadForce, TargetID: "geo-a", Force: geometry.NewVector3(3000, 4000, 0)},
			{ID: "load-2", Kind: model.LoadPressure, TargetID: "geo-b", Pressure: -1e6},
		},
		Supports: []model.Support{{ID: "bc-1", Kind: model.SupportFixed, TargetID: "geo-a"}},
		Material: model.DefaultMaterial(),
	}
}

func seededSolver() *MockSolver {
	s := NewMockSolver(nil)
	s.Rand = rand.New(rand.NewPCG(1, 2))
	return s
}

func TestMockSolveBounds(t *testing.T) {
	results, err := seededSolver().Solve(context.Background(), testInput())
	require.NoError(t, err)
	require.Len(t, results.Solids, 2)

	a := results.Solids["geo-a"]
	require.Len(t, a.Displacements, DefaultSamples)
	require.Len(t, a.Stresses, DefaultSamples)

	// 5000 N damped by a support: base 0.0015, samples in [0.5, 1) of it
	for i, d := range a.Displacements {
		assert.GreaterOrEqual(t, d, 0.00075)
		assert.Less(t, d, 0.0015)
		strain := d / 2
		assert.GreaterOrEqual(t, a.Stresses[i], 200e9*strain*0.85-1e-6)
		assert.Less(t, a.Stresses[i], 200e9*strain*1.15)
	}

	// pressure 1e6 Pa counts as 1e4 without support
	for _, d := range results.Solids["geo-b"].Displacements {
		assert.GreaterOrEqual(t, d, 0.005)
		assert.Less(t, d, 0.01)
	}

	for _, r := range results.Solids {
		for i := range r.Displacements {
			assert.GreaterOrEqual(t, r.Displacements[i], results.Displacement.Min)
			assert.LessOrEqual(t, r.Displacements[i], results.Displacement.Max)
			assert.GreaterOrEqual(t, r.Stresses[i], results.Stress.Min)
			assert.LessOrEqual(t, r.Stresses[i], results.Stress.Max)
		}
	}
	assert.NoError(t, CheckResults(results))
}

func TestMockSolveIsDeterministicWithSeed(t *testing.T) {
	a, err := seededSolver().Solve(context.Background(), testInput())
	require.NoError(t, err)
	b, err := seededSolver().Solve(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMockSolveReportsProgress(t *testing.T) {
	s := seededSolver()
	var stages []Stage
	s.Progress = func(st Stage) { stages = append(stages, st) }

	_, err := s.Solve(context.Background(), testInput())
	require.NoError(t, err)
	require.NotEmpty(t, stages)
	assert.Equal(t, 100, stages[len(stages)-1].Percent)
	assert.Equal(t, "Processing 2 geometries", stages[1].Message)
}

func TestMockSolveHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := seededSolver().Solve(ctx, testInput())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockSolveEmpty(t *testing.T) {
	results, err := seededSolver().Solve(context.Background(), Input{})
	require.NoError(t, err)
	assert.Empty(t, results.Solids)
	assert.Equal(t, model.Range{}, results.Displacement)
	assert.NoError(t, CheckResults(results))
}

func TestResultsJSONShape(t *testing.T) {
	results := &model.ResultField{
		Displacement: model.Range{Min: 0, Max: 1e-3},
		Stress:       model.Range{Min: 1, Max: 2},
		Solids: map[string]model.SolidResult{
			"geo-a": {Displacements: []float64{0, 1e-3}, Stresses: []float64{1, 2}},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, results))
	assert.Contains(t, buf.String(), `"geometryResults"`)
	assert.Contains(t, buf.String(), `"displacements"`)

	decoded, err := ReadResults(&buf)
	require.NoError(t, err)
	assert.Equal(t, results, decoded)
}

func TestResultsFileRoundTrip(t *testing.T) {
	results, err := seededSolver().Solve(context.Background(), testInput())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, WriteResultsFile(path, results))
	decoded, err := ReadResultsFile(path)
	require.NoError(t, err)
	assert.Equal(t, results, decoded)
}

func TestReadResultsRejectsInvertedRange(t *testing.T) {
	_, err := ReadResults(strings.NewReader(`{"displacement":{"min":2,"max":1},"stress":{"min":0,"max":0}}`))
	assert.ErrorIs(t, err, ErrInvalidResults)

	_, err = ReadResults(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	in := testInput()
	in.Loads = append(in.Loads, model.Load{ID: "load-3", Kind: model.LoadForce, TargetID: "geo-gone"})

	summary := Summarize(in, nil)
	require.Len(t, summary.Solids, 2)
	assert.False(t, summary.Solved)
	assert.Equal(t, 2, summary.Loads)
	assert.Equal(t, 1, summary.Supports)
	assert.Equal(t, 1, summary.Dangling)

	assert.InDelta(t, 6, summary.Solids[0].Volume, 1e-12)
	assert.InDelta(t, 22, summary.Solids[0].SurfaceArea, 1e-12)
	assert.InDelta(t, 4.0/3.0*math.Pi, summary.Solids[1].Volume, 1e-12)
	assert.InDelta(t, 6+4.0/3.0*math.Pi, summary.Volume, 1e-12)

	results, err := seededSolver().Solve(context.Background(), testInput())
	require.NoError(t, err)
	solved := Summarize(in, results)
	assert.True(t, solved.Solved)
	assert.Equal(t, DefaultSamples, solved.Solids[0].Samples)
	assert.LessOrEqual(t, solved.Solids[0].MaxDisp, results.Displacement.Max)
}
