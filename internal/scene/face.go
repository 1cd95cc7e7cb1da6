package scene

import (
	"github.com/philipparndt/gostruct/pkg/geometry"
	"github.com/philipparndt/gostruct/pkg/model"
)

// FaceFrame is the center and outward unit normal of a face
type FaceFrame struct {
	Center geometry.Vector3
	Normal geometry.Vector3
}

// ResolveFace returns the frame of a face in the solid's local frame
// (untranslated, unrotated). Out of range indices fall back to the top face.
//
//	box:      0 +Z, 1 -Z, 2 +Y, 3 -Y, 4 +X, 5 -X
//	cylinder: 0 top, 1 bottom, 2 lateral reference point on +X
//	sphere:   0 top
func ResolveFace(kind model.ShapeKind, dims model.Dimensions, face int) FaceFrame {
	switch kind {
	case model.ShapeBox:
		hw, hh, hd := dims.Width/2, dims.Height/2, dims.Depth/2
		switch face {
		case 0:
			return FaceFrame{Center: geometry.Vector3{Z: hd}, Normal: geometry.UnitZ}
		case 1:
			return FaceFrame{Center: geometry.Vector3{Z: -hd}, Normal: geometry.UnitZ.Negate()}
		case 3:
			return FaceFrame{Center: geometry.Vector3{Y: -hh}, Normal: geometry.UnitY.Negate()}
		case 4:
			return FaceFrame{Center: geometry.Vector3{X: hw}, Normal: geometry.UnitX}
		case 5:
			return FaceFrame{Center: geometry.Vector3{X: -hw}, Normal: geometry.UnitX.Negate()}
		}
		return FaceFrame{Center: geometry.Vector3{Y: hh}, Normal: geometry.UnitY}

	case model.ShapeCylinder:
		hh := dims.Height / 2
		switch face {
		case 1:
			return FaceFrame{Center: geometry.Vector3{Y: -hh}, Normal: geometry.UnitY.Negate()}
		case 2:
			return FaceFrame{Center: geometry.Vector3{X: dims.Radius}, Normal: geometry.UnitX}
		}
		return FaceFrame{Center: geometry.Vector3{Y: hh}, Normal: geometry.UnitY}

	case model.ShapeSphere:
		return FaceFrame{Center: geometry.Vector3{Y: dims.Radius}, Normal: geometry.UnitY}
	}
	return FaceFrame{Normal: geometry.UnitY}
}

// WorldFace resolves a face and translates it to the solid's position
func WorldFace(s model.Solid, face int) FaceFrame {
	f := ResolveFace(s.Kind, s.Dims, face)
	f.Center = f.Center.Add(s.Position)
	return f
}
