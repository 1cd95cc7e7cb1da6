package scene

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/philipparndt/gostruct/pkg/geometry"
	"github.com/philipparndt/gostruct/pkg/model"
)

// rampStops are the five colors of the result ramp, evenly spaced over [0,1]
var rampStops = [...]colorful.Color{
	{R: 0, G: 0, B: 1}, // blue
	{R: 0, G: 1, B: 1}, // cyan
	{R: 0, G: 1, B: 0}, // green
	{R: 1, G: 1, B: 0}, // yellow
	{R: 1, G: 0, B: 0}, // red
}

// MapColor maps a normalized value to the blue, cyan, green, yellow, red
// ramp. Values outside [0,1] are clamped first.
func MapColor(v float64) geometry.Color {
	v = clamp01(v)
	segment := min(int(v/0.25), len(rampStops)-2)
	t := (v - float64(segment)*0.25) / 0.25
	c := rampStops[segment].BlendRgb(rampStops[segment+1], t)
	return geometry.Color{R: c.R, G: c.G, B: c.B}
}

// Normalize maps value into [0,1] relative to r. A flat range maps to 0.
func Normalize(value float64, r model.Range) float64 {
	span := r.Max - r.Min
	if span == 0 || math.IsNaN(value) {
		return 0
	}
	return clamp01((value - r.Min) / span)
}

// SampleIndex picks the sample for a vertex by its position in the vertex
// list: floor(vertex / vertexCount * sampleCount).
func SampleIndex(vertex, vertexCount, sampleCount int) int {
	if vertexCount <= 0 || sampleCount <= 0 {
		return 0
	}
	i := int(math.Floor(float64(vertex) / float64(vertexCount) * float64(sampleCount)))
	return min(max(i, 0), sampleCount-1)
}

// FieldUnit is the unit the legend shows for kind
func FieldUnit(kind model.FieldKind) string {
	if kind == model.FieldDisplacement {
		return "m"
	}
	return "MPa"
}

// FieldLabel is the legend title for kind
func FieldLabel(kind model.FieldKind) string {
	if kind == model.FieldDisplacement {
		return "Displacement"
	}
	return "von Mises Stress"
}

// FormatFieldValue formats a raw result value for the legend. Displacements
// are shown in exponential notation, stresses are converted from Pa to MPa.
func FormatFieldValue(kind model.FieldKind, v float64) string {
	if kind == model.FieldDisplacement {
		return fmt.Sprintf("%.2e", v)
	}
	return fmt.Sprintf("%.1f", v/1e6)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(math.Max(v, 0), 1)
}

// fieldStamp records what a proxy's current appearance was derived from
type fieldStamp struct {
	results    *model.ResultField
	settings   model.FieldSettings
	generation uint64
}

// FieldMapper applies result colors and deformation to proxies. It only
// touches a proxy when the results, the view settings or the proxy's
// geometry changed since the last pass.
type FieldMapper struct {
	unitFactor float64
	logger     *slog.Logger
	stamps     map[string]fieldStamp
}

// NewFieldMapper creates a mapper converting displacement units with unitFactor
func NewFieldMapper(unitFactor float64, logger *slog.Logger) *FieldMapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &FieldMapper{
		unitFactor: unitFactor,
		logger:     logger,
		stamps:     make(map[string]fieldStamp),
	}
}

// Apply converges every proxy to the given results and settings and returns
// the number of proxies it touched.
func (m *FieldMapper) Apply(proxies []*Proxy, results *model.ResultField, settings model.FieldSettings) int {
	touched := 0
	live := make(map[string]struct{}, len(proxies))

	for _, p := range proxies {
		live[p.ID] = struct{}{}

		if results == nil {
			delete(m.stamps, p.ID)
			if p.Appearance != AppearanceDefault || p.deformed {
				p.restore()
				touched++
			}
			continue
		}

		stamp := fieldStamp{results: results, settings: settings, generation: p.generation}
		if prev, ok := m.stamps[p.ID]; ok && prev == stamp {
			continue
		}
		m.stamps[p.ID] = stamp
		m.apply(p, results, settings)
		touched++
	}

	for id := range m.stamps {
		if _, ok := live[id]; !ok {
			delete(m.stamps, id)
		}
	}
	return touched
}

// apply always starts from the pristine mesh so displacement never
// accumulates across passes.
func (m *FieldMapper) apply(p *Proxy, results *model.ResultField, settings model.FieldSettings) {
	p.restore()

	values, ok := results.Values(p.ID, settings.Kind)
	if !ok || len(values) == 0 {
		m.logger.Debug("no result samples, keeping default appearance", "id", p.ID, "field", settings.Kind)
		return
	}

	mesh := p.Mesh
	pristine := p.pristine
	n := mesh.VertexCount()

	if settings.Deforming() {
		scale := settings.DeformationScale * m.unitFactor
		for i := range mesh.Positions {
			v := values[SampleIndex(i, n, len(values))]
			if math.IsNaN(v) {
				continue
			}
			mesh.Positions[i] = pristine.Positions[i].Add(pristine.Normals[i].Mul(v * scale))
		}
		mesh.ComputeVertexNormals()
		p.deformed = true
	}

	r := results.Range(settings.Kind)
	mesh.Colors = make([]geometry.Color, n)
	for i := range mesh.Colors {
		mesh.Colors[i] = MapColor(Normalize(values[SampleIndex(i, n, len(values))], r))
	}
	p.Appearance = AppearanceField
}
