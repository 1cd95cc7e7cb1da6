package model

// FieldKind selects which scalar of the result field is visualized
type FieldKind string

const (
	FieldDisplacement FieldKind = "displacement"
	FieldStress       FieldKind = "stress"
)

// Range is the global minimum and maximum of one scalar kind
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// SolidResult holds the per-sample scalars computed for one solid
type SolidResult struct {
	Displacements []float64 `json:"displacements" yaml:"displacements"`
	Stresses      []float64 `json:"stresses" yaml:"stresses"`
}

// ResultField is the analysis output. It is replaced or cleared as a whole,
// never updated in place.
type ResultField struct {
	Displacement Range                  `json:"displacement" yaml:"displacement"`
	Stress       Range                  `json:"stress" yaml:"stress"`
	Solids       map[string]SolidResult `json:"geometryResults" yaml:"geometryResults"`
}

// Range returns the global range of the given kind
func (r *ResultField) Range(kind FieldKind) Range {
	if kind == FieldDisplacement {
		return r.Displacement
	}
	return r.Stress
}

// Values returns the samples of the given kind for a solid
func (r *ResultField) Values(solidID string, kind FieldKind) ([]float64, bool) {
	res, ok := r.Solids[solidID]
	if !ok {
		return nil, false
	}
	if kind == FieldDisplacement {
		return res.Displacements, true
	}
	return res.Stresses, true
}

// FieldSettings control how results are drawn
type FieldSettings struct {
	Kind             FieldKind `yaml:"fieldType" json:"fieldType"`
	ShowDeformed     bool      `yaml:"showDeformed" json:"showDeformed"`
	DeformationScale float64   `yaml:"deformationScale" json:"deformationScale"`
}

// DefaultFieldSettings shows stress without deformation
func DefaultFieldSettings() FieldSettings {
	return FieldSettings{Kind: FieldStress, DeformationScale: 1.0}
}

// Deforming reports whether geometry should be displaced
func (s FieldSettings) Deforming() bool {
	return s.ShowDeformed && s.Kind == FieldDisplacement
}
