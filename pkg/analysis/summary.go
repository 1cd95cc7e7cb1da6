package analysis

import (
	"math"

	"github.com/philipparndt/gostruct/pkg/model"
)

// SolidSummary describes one solid of a project
type SolidSummary struct {
	ID          string
	Name        string
	Kind        model.ShapeKind
	Volume      float64
	SurfaceArea float64
	Loads       int
	Supports    int
	Samples     int
	MaxDisp     float64
	MaxStress   float64
}

// ProjectSummary contains totals over every solid
type ProjectSummary struct {
	Solids      []SolidSummary
	Volume      float64
	SurfaceArea float64
	Loads       int
	Supports    int
	Solved      bool
	Dangling    int // annotations whose target is missing
}

// Summarize measures every solid and, when results are given, reports the
// peak values per solid.
func Summarize(in Input, results *model.ResultField) *ProjectSummary {
	summary := &ProjectSummary{
		Solids: make([]SolidSummary, 0, len(in.Solids)),
		Solved: results != nil,
	}
	known := make(map[string]int, len(in.Solids))

	for i, solid := range in.Solids {
		s := SolidSummary{
			ID:          solid.ID,
			Name:        solid.Name,
			Kind:        solid.Kind,
			Volume:      Volume(solid),
			SurfaceArea: SurfaceArea(solid),
		}
		if results != nil {
			if r, ok := results.Solids[solid.ID]; ok {
				s.Samples = len(r.Displacements)
				s.MaxDisp = maxOf(r.Displacements)
				s.MaxStress = maxOf(r.Stresses)
			}
		}
		summary.Volume += s.Volume
		summary.SurfaceArea += s.SurfaceArea
		summary.Solids = append(summary.Solids, s)
		known[solid.ID] = i
	}

	for _, l := range in.Loads {
		if i, ok := known[l.TargetID]; ok {
			summary.Solids[i].Loads++
			summary.Loads++
		} else {
			summary.Dangling++
		}
	}
	for _, b := range in.Supports {
		if i, ok := known[b.TargetID]; ok {
			summary.Solids[i].Supports++
			summary.Supports++
		} else {
			summary.Dangling++
		}
	}
	return summary
}

// Volume returns the enclosed volume of a solid
func Volume(s model.Solid) float64 {
	d := s.Dims
	switch s.Kind {
	case model.ShapeBox:
		return d.Width * d.Height * d.Depth
	case model.ShapeCylinder:
		return math.Pi * d.Radius * d.Radius * d.Height
	case model.ShapeSphere:
		return 4.0 / 3.0 * math.Pi * d.Radius * d.Radius * d.Radius
	}
	return 0
}

// SurfaceArea returns the outer surface area of a solid
func SurfaceArea(s model.Solid) float64 {
	d := s.Dims
	switch s.Kind {
	case model.ShapeBox:
		return 2 * (d.Width*d.Height + d.Width*d.Depth + d.Height*d.Depth)
	case model.ShapeCylinder:
		return 2*math.Pi*d.Radius*d.Height + 2*math.Pi*d.Radius*d.Radius
	case model.ShapeSphere:
		return 4 * math.Pi * d.Radius * d.Radius
	}
	return 0
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		m = math.Max(m, v)
	}
	return m
}
