package model

import (
	"errors"
	"fmt"
	"slices"

	"github.com/philipparndt/gostruct/pkg/geometry"
)

var (
	// ErrUnknownShape is returned for a shape kind outside box/cylinder/sphere
	ErrUnknownShape = errors.New("unknown shape kind")
	// ErrInvalidDimensions is returned when a required dimension is not strictly positive
	ErrInvalidDimensions = errors.New("invalid dimensions")
)

// ShapeKind names the parametric shape of a solid
type ShapeKind string

const (
	ShapeBox      ShapeKind = "box"
	ShapeCylinder ShapeKind = "cylinder"
	ShapeSphere   ShapeKind = "sphere"
)

// ShapeKinds lists every supported shape in menu order
var ShapeKinds = []ShapeKind{ShapeBox, ShapeCylinder, ShapeSphere}

// Valid reports whether k is a known shape
func (k ShapeKind) Valid() bool {
	return slices.Contains(ShapeKinds, k)
}

// FaceCount returns the number of addressable faces of the shape
func (k ShapeKind) FaceCount() int {
	switch k {
	case ShapeBox:
		return 6
	case ShapeCylinder:
		return 3
	case ShapeSphere:
		return 1
	}
	return 0
}

// Dimensions holds the shape parameters. Only the fields relevant to the
// shape kind are meaningful: box uses width/height/depth, cylinder uses
// radius/height, sphere uses radius.
type Dimensions struct {
	Width  float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Height float64 `yaml:"height,omitempty" json:"height,omitempty"`
	Depth  float64 `yaml:"depth,omitempty" json:"depth,omitempty"`
	Radius float64 `yaml:"radius,omitempty" json:"radius,omitempty"`
}

// Solid is a parametric 3D shape placed in the scene
type Solid struct {
	ID       string           `yaml:"id" json:"id" validate:"required"`
	Name     string           `yaml:"name,omitempty" json:"name,omitempty"`
	Kind     ShapeKind        `yaml:"type" json:"type" validate:"oneof=box cylinder sphere"`
	Dims     Dimensions       `yaml:",inline" json:"dims"`
	Position geometry.Vector3 `yaml:"position" json:"position"`
	Rotation geometry.Euler   `yaml:"rotation" json:"rotation"`
}

// CubeDimensions derives the dimensions of a shape created from a single
// drag size: a cube of edge size, a cylinder of diameter and height size,
// a sphere of diameter size.
func CubeDimensions(kind ShapeKind, size float64) Dimensions {
	switch kind {
	case ShapeBox:
		return Dimensions{Width: size, Height: size, Depth: size}
	case ShapeCylinder:
		return Dimensions{Radius: size / 2, Height: size}
	case ShapeSphere:
		return Dimensions{Radius: size / 2}
	}
	return Dimensions{}
}

// RestHeight is the vertical offset that places the solid on the ground plane
func (s Solid) RestHeight() float64 {
	return restHeight(s.Kind, s.Dims)
}

func restHeight(kind ShapeKind, d Dimensions) float64 {
	switch kind {
	case ShapeBox, ShapeCylinder:
		return d.Height / 2
	case ShapeSphere:
		return d.Radius
	}
	return 0
}

// SameShape reports whether both solids share kind and dimensions, i.e.
// whether their meshes are interchangeable.
func (s Solid) SameShape(other Solid) bool {
	return s.Kind == other.Kind && s.Dims == other.Dims
}

// Validate checks the identity, kind and kind-specific dimensions
func (s Solid) Validate() error {
	if err := validate.Struct(s); err != nil {
		if !s.Kind.Valid() {
			return fmt.Errorf("solid %q: %w: %q", s.ID, ErrUnknownShape, s.Kind)
		}
		return fmt.Errorf("solid %q: %w", s.ID, err)
	}
	return validateDimensions(s.Kind, s.Dims)
}

func validateDimensions(kind ShapeKind, d Dimensions) error {
	var required map[string]float64
	switch kind {
	case ShapeBox:
		required = map[string]float64{"width": d.Width, "height": d.Height, "depth": d.Depth}
	case ShapeCylinder:
		required = map[string]float64{"radius": d.Radius, "height": d.Height}
	case ShapeSphere:
		required = map[string]float64{"radius": d.Radius}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownShape, kind)
	}
	for name, value := range required {
		if err := validate.Var(value, "gt=0"); err != nil {
			return fmt.Errorf("%s %s=%g: %w", kind, name, value, ErrInvalidDimensions)
		}
	}
	return nil
}
