package model

import (
	"errors"
	"fmt"

	"github.com/philipparndt/gostruct/pkg/geometry"
)

// ErrInvalidAnnotation is returned for loads and supports with bad payloads
var ErrInvalidAnnotation = errors.New("invalid annotation")

// Annotation is a load or support attached to one face of a solid
type Annotation interface {
	AnnotationID() string
	Target() string
	FaceIndex() int
}

// LoadKind distinguishes point forces from distributed pressure
type LoadKind string

const (
	LoadForce    LoadKind = "force"
	LoadPressure LoadKind = "pressure"
)

// Load applies a force vector in newtons or a pressure in pascals to a face
type Load struct {
	ID       string           `yaml:"id" json:"id" validate:"required"`
	Name     string           `yaml:"name,omitempty" json:"name,omitempty"`
	Kind     LoadKind         `yaml:"type" json:"type" validate:"oneof=force pressure"`
	TargetID string           `yaml:"targetGeometryId" json:"targetGeometryId" validate:"required"`
	Face     int              `yaml:"faceIndex" json:"faceIndex"`
	Force    geometry.Vector3 `yaml:"force,omitempty" json:"force"`
	Pressure float64          `yaml:"pressure,omitempty" json:"pressure,omitempty"`
}

func (l Load) AnnotationID() string { return l.ID }
func (l Load) Target() string       { return l.TargetID }
func (l Load) FaceIndex() int       { return l.Face }

// Validate checks identity and kind. Face range is checked against the
// target by the store since it depends on the target's shape.
func (l Load) Validate() error {
	if err := validate.Struct(l); err != nil {
		return fmt.Errorf("load %q: %w: %v", l.ID, ErrInvalidAnnotation, err)
	}
	return nil
}

// SupportKind names the constraint type of a support
type SupportKind string

// SupportFixed clamps every degree of freedom of the face
const SupportFixed SupportKind = "fixed"

// Support is a boundary condition attached to a face
type Support struct {
	ID       string      `yaml:"id" json:"id" validate:"required"`
	Name     string      `yaml:"name,omitempty" json:"name,omitempty"`
	Kind     SupportKind `yaml:"type" json:"type" validate:"oneof=fixed"`
	TargetID string      `yaml:"targetGeometryId" json:"targetGeometryId" validate:"required"`
	Face     int         `yaml:"faceIndex" json:"faceIndex"`
}

func (s Support) AnnotationID() string { return s.ID }
func (s Support) Target() string       { return s.TargetID }
func (s Support) FaceIndex() int       { return s.Face }

// Validate checks identity and kind
func (s Support) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("support %q: %w: %v", s.ID, ErrInvalidAnnotation, err)
	}
	return nil
}

// FaceInRange reports whether face addresses a face of the given shape
func FaceInRange(kind ShapeKind, face int) bool {
	return face >= 0 && face < kind.FaceCount()
}
