package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateShape is returned when a primitive cannot be tessellated
var ErrDegenerateShape = errors.New("degenerate shape")

// NewBoxMesh builds an axis aligned box centered at the origin. Every face
// owns its four vertices so face normals stay sharp.
func NewBoxMesh(width, height, depth float64) (*Mesh, error) {
	if !(width > 0 && height > 0 && depth > 0) {
		return nil, fmt.Errorf("box %gx%gx%g: %w", width, height, depth, ErrDegenerateShape)
	}
	hw, hh, hd := width/2, height/2, depth/2

	// normal, u, v with u×v = normal; half extents along each
	faces := []struct {
		normal, u, v Vector3
	}{
		{UnitX.Mul(hw), UnitZ.Mul(-hd), UnitY.Mul(hh)},
		{UnitX.Mul(-hw), UnitZ.Mul(hd), UnitY.Mul(hh)},
		{UnitY.Mul(hh), UnitX.Mul(hw), UnitZ.Mul(-hd)},
		{UnitY.Mul(-hh), UnitX.Mul(hw), UnitZ.Mul(hd)},
		{UnitZ.Mul(hd), UnitX.Mul(hw), UnitY.Mul(hh)},
		{UnitZ.Mul(-hd), UnitX.Mul(-hw), UnitY.Mul(hh)},
	}

	m := &Mesh{
		Positions: make([]Vector3, 0, 24),
		Normals:   make([]Vector3, 0, 24),
		Indices:   make([]uint32, 0, 36),
	}
	for _, f := range faces {
		base := uint32(len(m.Positions))
		n := f.normal.Normalize()
		m.Positions = append(m.Positions,
			f.normal.Sub(f.u).Sub(f.v),
			f.normal.Add(f.u).Sub(f.v),
			f.normal.Add(f.u).Add(f.v),
			f.normal.Sub(f.u).Add(f.v),
		)
		m.Normals = append(m.Normals, n, n, n, n)
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m, nil
}

// NewCylinderMesh builds a capped cylinder along Y centered at the origin
func NewCylinderMesh(radius, height float64, radialSegments int) (*Mesh, error) {
	if !(radius > 0 && height > 0) || radialSegments < 3 {
		return nil, fmt.Errorf("cylinder r=%g h=%g segments=%d: %w", radius, height, radialSegments, ErrDegenerateShape)
	}
	hh := height / 2
	m := &Mesh{}

	ring := func(i int) (Vector3, float64, float64) {
		theta := float64(i) / float64(radialSegments) * 2 * math.Pi
		s, c := math.Sin(theta), math.Cos(theta)
		return Vector3{X: radius * s, Z: radius * c}, s, c
	}

	// side
	for i := 0; i <= radialSegments; i++ {
		p, s, c := ring(i)
		n := Vector3{X: s, Z: c}
		m.Positions = append(m.Positions, p.Add(UnitY.Mul(hh)), p.Add(UnitY.Mul(-hh)))
		m.Normals = append(m.Normals, n, n)
	}
	for i := 0; i < radialSegments; i++ {
		t0, b0 := uint32(i*2), uint32(i*2+1)
		t1, b1 := t0+2, b0+2
		m.Indices = append(m.Indices, b0, b1, t1, b0, t1, t0)
	}

	// caps
	for _, top := range []bool{true, false} {
		y, n := hh, UnitY
		if !top {
			y, n = -hh, UnitY.Negate()
		}
		center := uint32(len(m.Positions))
		m.Positions = append(m.Positions, Vector3{Y: y})
		m.Normals = append(m.Normals, n)
		for i := 0; i <= radialSegments; i++ {
			p, _, _ := ring(i)
			p.Y = y
			m.Positions = append(m.Positions, p)
			m.Normals = append(m.Normals, n)
		}
		for i := 0; i < radialSegments; i++ {
			a := center + 1 + uint32(i)
			if top {
				m.Indices = append(m.Indices, center, a, a+1)
			} else {
				m.Indices = append(m.Indices, center, a+1, a)
			}
		}
	}
	return m, nil
}

// NewSphereMesh builds a UV sphere centered at the origin
func NewSphereMesh(radius float64, widthSegments, heightSegments int) (*Mesh, error) {
	if !(radius > 0) || widthSegments < 3 || heightSegments < 2 {
		return nil, fmt.Errorf("sphere r=%g segments=%dx%d: %w", radius, widthSegments, heightSegments, ErrDegenerateShape)
	}
	m := &Mesh{}
	grid := make([][]uint32, heightSegments+1)

	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		grid[iy] = make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			n := Vector3{
				X: -math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi),
				Y: math.Cos(v * math.Pi),
				Z: math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi),
			}
			grid[iy][ix] = uint32(len(m.Positions))
			m.Positions = append(m.Positions, n.Mul(radius))
			m.Normals = append(m.Normals, n.Normalize())
		}
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}
	return m, nil
}
