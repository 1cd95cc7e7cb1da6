package geometry

import "math"

// Color is a linear RGB triple with components in [0,1]
type Color struct {
	R, G, B float64
}

// Mesh is an indexed triangle mesh. Normals are per vertex and Colors,
// when present, hold one entry per vertex.
type Mesh struct {
	Positions []Vector3
	Normals   []Vector3
	Indices   []uint32
	Colors    []Color
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the i-th triangle with its face normal
func (m *Mesh) Triangle(i int) Triangle {
	v1 := m.Positions[m.Indices[i*3]]
	v2 := m.Positions[m.Indices[i*3+1]]
	v3 := m.Positions[m.Indices[i*3+2]]
	t := Triangle{V1: v1, V2: v2, V3: v3}
	t.Normal = t.CalculateNormal()
	return t
}

// Clone returns a deep copy that shares no backing arrays with m
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Positions: append([]Vector3(nil), m.Positions...),
		Normals:   append([]Vector3(nil), m.Normals...),
		Indices:   append([]uint32(nil), m.Indices...),
	}
	if m.Colors != nil {
		c.Colors = append([]Color(nil), m.Colors...)
	}
	return c
}

// ComputeVertexNormals rebuilds the normals by accumulating the
// area-weighted face normals of every triangle sharing a vertex.
func (m *Mesh) ComputeVertexNormals() {
	normals := make([]Vector3, len(m.Positions))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		pa, pb, pc := m.Positions[a], m.Positions[b], m.Positions[c]
		face := pc.Sub(pb).Cross(pa.Sub(pb))
		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	m.Normals = normals
}

// IntersectRay returns the nearest hit distance of the ray with any triangle
func (m *Mesh) IntersectRay(r Ray) (float64, bool) {
	best := math.Inf(1)
	hit := false
	for i := 0; i < m.TriangleCount(); i++ {
		if d, ok := m.Triangle(i).IntersectRay(r); ok && d < best {
			best = d
			hit = true
		}
	}
	return best, hit
}

// Bounds returns the axis aligned bounding box of the positions
func (m *Mesh) Bounds() BoundingBox {
	bbox := NewBoundingBox()
	for _, p := range m.Positions {
		bbox.Extend(p)
	}
	return bbox
}
