package scene

import (
	"fmt"

	"github.com/philipparndt/gostruct/pkg/geometry"
	"github.com/philipparndt/gostruct/pkg/model"
)

// Appearance is the material state of a proxy
type Appearance int

const (
	// AppearanceDefault is the flat base material without vertex colors
	AppearanceDefault Appearance = iota
	// AppearanceField shows per-vertex result colors
	AppearanceField
)

// Highlight is the interaction feedback level of a proxy
type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightHovered
	HighlightSelected
	HighlightDragged
)

// DefaultColor is the base material color of every solid
var DefaultColor = geometry.Color{R: 0x34 / 255.0, G: 0x98 / 255.0, B: 0xdb / 255.0}

// Proxy is the renderable stand-in of one solid. It owns its current mesh
// and a pristine snapshot of the undeformed mesh that lives exactly as long
// as the shape parameters it was built from.
type Proxy struct {
	ID         string
	Mesh       *geometry.Mesh
	Position   geometry.Vector3
	Rotation   geometry.Euler
	Appearance Appearance
	Highlight  Highlight

	// Revision changes whenever Mesh or its colors change, so renderers
	// know when to upload again.
	Revision uint64

	shape      model.Solid
	pristine   *geometry.Mesh
	generation uint64
	deformed   bool
}

func newProxy(s model.Solid, opts Options) (*Proxy, error) {
	p := &Proxy{ID: s.ID}
	if err := p.rebuild(s, opts); err != nil {
		return nil, err
	}
	p.Position = s.Position
	p.Rotation = s.Rotation
	return p, nil
}

// Shape returns the solid the mesh was built from
func (p *Proxy) Shape() model.Solid {
	return p.shape
}

// Pristine returns the undeformed mesh snapshot. Callers must not modify it.
func (p *Proxy) Pristine() *geometry.Mesh {
	return p.pristine
}

// Deformed reports whether the mesh currently differs from the pristine one
func (p *Proxy) Deformed() bool {
	return p.deformed
}

// rebuild replaces mesh and pristine snapshot. On failure the proxy keeps
// its previous geometry.
func (p *Proxy) rebuild(s model.Solid, opts Options) error {
	mesh, err := BuildMesh(s, opts)
	if err != nil {
		return err
	}
	p.shape = s
	p.pristine = mesh
	p.Mesh = mesh.Clone()
	p.Appearance = AppearanceDefault
	p.deformed = false
	p.generation++
	p.Revision++
	return nil
}

// restore replaces the mesh with a fresh copy of the pristine snapshot and
// drops result colors.
func (p *Proxy) restore() {
	p.Mesh = p.pristine.Clone()
	p.Appearance = AppearanceDefault
	p.deformed = false
	p.Revision++
}

// moveTo updates the world transform without touching the mesh
func (p *Proxy) moveTo(position geometry.Vector3, rotation geometry.Euler) bool {
	if p.Position == position && p.Rotation == rotation {
		return false
	}
	p.Position = position
	p.Rotation = rotation
	return true
}

// Intersect returns the distance along a world space ray to the proxy's
// current mesh.
func (p *Proxy) Intersect(r geometry.Ray) (float64, bool) {
	local := geometry.Ray{
		Origin:    p.Rotation.InverseRotate(r.Origin.Sub(p.Position)),
		Direction: p.Rotation.InverseRotate(r.Direction),
	}
	if !p.Mesh.Bounds().IntersectsRay(local) {
		return 0, false
	}
	return p.Mesh.IntersectRay(local)
}

// BuildMesh tessellates a solid's shape in its local frame
func BuildMesh(s model.Solid, opts Options) (*geometry.Mesh, error) {
	var (
		mesh *geometry.Mesh
		err  error
	)
	switch s.Kind {
	case model.ShapeBox:
		mesh, err = geometry.NewBoxMesh(s.Dims.Width, s.Dims.Height, s.Dims.Depth)
	case model.ShapeCylinder:
		mesh, err = geometry.NewCylinderMesh(s.Dims.Radius, s.Dims.Height, opts.RadialSegments)
	case model.ShapeSphere:
		mesh, err = geometry.NewSphereMesh(s.Dims.Radius, opts.SphereSegments, opts.SphereSegments)
	default:
		err = model.ErrUnknownShape
	}
	if err != nil {
		return nil, fmt.Errorf("build mesh for %s %q: %w", s.Kind, s.ID, err)
	}
	return mesh, nil
}
