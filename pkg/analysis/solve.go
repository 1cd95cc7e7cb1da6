package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/philipparndt/gostruct/pkg/model"
)

// DefaultSamples is the number of result samples generated per solid
const DefaultSamples = 100

// Input is everything the solver reads
type Input struct {
	Solids   []model.Solid
	Loads    []model.Load
	Supports []model.Support
	Material model.Material
}

// Stage reports solver progress in percent
type Stage struct {
	Percent int
	Message string
}

// MockSolver produces plausible looking results without a real finite
// element model: each solid's displacement scales with the loads on it and
// is damped by supports, stress follows from the material stiffness.
type MockSolver struct {
	Samples  int
	Rand     *rand.Rand
	Logger   *slog.Logger
	Progress func(Stage)
}

// NewMockSolver creates a solver with a time seeded random source
func NewMockSolver(logger *slog.Logger) *MockSolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &MockSolver{
		Samples: DefaultSamples,
		Rand:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		Logger:  logger,
	}
}

func (s *MockSolver) stage(percent int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.Logger.Debug("solver", "progress", percent, "stage", msg)
	if s.Progress != nil {
		s.Progress(Stage{Percent: percent, Message: msg})
	}
}

// Solve computes a result field for in. It stops early if ctx is done.
func (s *MockSolver) Solve(ctx context.Context, in Input) (*model.ResultField, error) {
	material := in.Material
	if material.YoungModulus <= 0 {
		material = model.DefaultMaterial()
	}
	samples := s.Samples
	if samples <= 0 {
		samples = DefaultSamples
	}

	steps := []struct {
		percent int
		message string
	}{
		{10, "Initializing solver"},
		{25, fmt.Sprintf("Processing %d geometries", len(in.Solids))},
		{40, "Generating mesh"},
		{55, fmt.Sprintf("Applying %d loads", len(in.Loads))},
		{70, fmt.Sprintf("Applying %d boundary conditions", len(in.Supports))},
		{85, "Assembling system matrices"},
		{95, "Solving linear system"},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("solve aborted: %w", err)
		}
		s.stage(step.percent, "%s", step.message)
	}

	results := &model.ResultField{Solids: make(map[string]model.SolidResult, len(in.Solids))}
	dispRange := model.Range{Min: math.Inf(1), Max: math.Inf(-1)}
	stressRange := dispRange

	for _, solid := range in.Solids {
		base := loadMagnitude(solid.ID, in.Loads) / 1e6 * constraintFactor(solid.ID, in.Supports)
		length := characteristicLength(solid)

		var r model.SolidResult
		r.Displacements = make([]float64, samples)
		r.Stresses = make([]float64, samples)
		for i := range samples {
			d := base * (s.Rand.Float64()*0.5 + 0.5)
			strain := d / length
			stress := material.YoungModulus * strain * (s.Rand.Float64()*0.3 + 0.85)

			r.Displacements[i] = d
			r.Stresses[i] = stress
			dispRange = extend(dispRange, d)
			stressRange = extend(stressRange, stress)
		}
		results.Solids[solid.ID] = r
	}

	if len(in.Solids) == 0 {
		dispRange, stressRange = model.Range{}, model.Range{}
	}
	results.Displacement = dispRange
	results.Stress = stressRange

	s.stage(100, "Computing stresses")
	s.Logger.Info("solution complete", "solids", len(in.Solids), "samples", samples)
	return results, nil
}

// loadMagnitude sums the force magnitudes and a hundredth of the pressures
// acting on a solid.
func loadMagnitude(id string, loads []model.Load) float64 {
	sum := 0.0
	for _, l := range loads {
		if l.TargetID != id {
			continue
		}
		switch l.Kind {
		case model.LoadForce:
			sum += l.Force.Length()
		case model.LoadPressure:
			sum += math.Abs(l.Pressure) * 0.01
		}
	}
	return sum
}

func constraintFactor(id string, supports []model.Support) float64 {
	for _, b := range supports {
		if b.TargetID == id {
			return 0.3
		}
	}
	return 1
}

func characteristicLength(s model.Solid) float64 {
	switch {
	case s.Dims.Height > 0:
		return s.Dims.Height
	case s.Dims.Radius > 0:
		return s.Dims.Radius
	}
	return 1
}

func extend(r model.Range, v float64) model.Range {
	return model.Range{Min: math.Min(r.Min, v), Max: math.Max(r.Max, v)}
}
