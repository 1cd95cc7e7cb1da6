package model

// SelectionKind tells which entity list a selection refers to
type SelectionKind string

const (
	SelectGeometry SelectionKind = "geometry"
	SelectLoad     SelectionKind = "load"
	SelectSupport  SelectionKind = "support"
)

// Selection identifies the single selected entity
type Selection struct {
	Kind SelectionKind `yaml:"type" json:"type"`
	ID   string        `yaml:"id" json:"id"`
}

// CreationMode is armed when the next pointer press should create a shape
type CreationMode struct {
	Armed bool
	Kind  ShapeKind
}

// Viewport is the pixel size of the drawing surface
type Viewport struct {
	Width  int
	Height int
}

// Snapshot is the read-only view of the model store the scene consumes on
// every pass.
type Snapshot struct {
	Revision  uint64
	Solids    []Solid
	Loads     []Load
	Supports  []Support
	Selection *Selection
	Results   *ResultField
	View      FieldSettings
	Creation  CreationMode
	Viewport  Viewport
}

// Solid looks up a solid by id
func (s *Snapshot) Solid(id string) (Solid, bool) {
	for _, solid := range s.Solids {
		if solid.ID == id {
			return solid, true
		}
	}
	return Solid{}, false
}

// AnnotationsFor returns the loads then supports targeting a solid
func (s *Snapshot) AnnotationsFor(solidID string) []Annotation {
	var out []Annotation
	for _, l := range s.Loads {
		out = appendTargeting(out, l, solidID)
	}
	for _, b := range s.Supports {
		out = appendTargeting(out, b, solidID)
	}
	return out
}

func appendTargeting(out []Annotation, a Annotation, solidID string) []Annotation {
	if a.Target() == solidID {
		return append(out, a)
	}
	return out
}

// IsSelected reports whether the solid with id is the selected geometry
func (s *Snapshot) IsSelected(id string) bool {
	return s.Selection != nil && s.Selection.Kind == SelectGeometry && s.Selection.ID == id
}

// HasResults reports whether a result field is present
func (s *Snapshot) HasResults() bool {
	return s.Results != nil
}
