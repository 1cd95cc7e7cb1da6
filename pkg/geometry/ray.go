package geometry

import "math"

// Ray is a half line starting at Origin. Direction is expected to be unit length.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Plane is the set of points p with Normal·p + Constant = 0
type Plane struct {
	Normal   Vector3
	Constant float64
}

// HorizontalPlane returns the plane y = height with an upward normal
func HorizontalPlane(height float64) Plane {
	return Plane{Normal: UnitY, Constant: -height}
}

// IntersectPlane returns the point where the ray crosses the plane. ok is
// false when the ray runs parallel to the plane or points away from it.
func (r Ray) IntersectPlane(p Plane) (Vector3, bool) {
	denom := p.Normal.Dot(r.Direction)
	if math.Abs(denom) < rayEpsilon {
		return Vector3{}, false
	}
	t := -(r.Origin.Dot(p.Normal) + p.Constant) / denom
	if t < 0 {
		return Vector3{}, false
	}
	return r.At(t), true
}
