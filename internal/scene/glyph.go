package scene

import (
	"math"
	"slices"

	"github.com/philipparndt/gostruct/pkg/geometry"
	"github.com/philipparndt/gostruct/pkg/model"
)

// GlyphKind is the primitive a glyph is drawn with
type GlyphKind int

const (
	// GlyphCone is a cone whose base is at Origin and apex at Origin+Direction*Length
	GlyphCone GlyphKind = iota
	// GlyphBall is a sphere of Radius at Origin
	GlyphBall
	// GlyphArrow is a shaft from Origin along Direction with a cone head at the tip
	GlyphArrow
)

// Marker colors
var (
	SupportColor  = geometry.Color{R: 1, G: 1, B: 0}
	ForceColor    = geometry.Color{R: 0, G: 1, B: 0}
	PressureColor = geometry.Color{R: 0x34 / 255.0, G: 0x98 / 255.0, B: 0xdb / 255.0}
)

// Glyph is a renderable marker primitive in world space
type Glyph struct {
	Kind         GlyphKind
	AnnotationID string
	Origin       geometry.Vector3
	Direction    geometry.Vector3
	Length       float64
	Radius       float64
	HeadLength   float64
	HeadWidth    float64
	Color        geometry.Color
}

// Tip returns the far end of a cone or arrow
func (g Glyph) Tip() geometry.Vector3 {
	return g.Origin.Add(g.Direction.Mul(g.Length))
}

// GlyphSet is every glyph of the annotations targeting one solid, plus the
// inputs it was built from so unchanged sets are not rebuilt.
type GlyphSet struct {
	SolidID string
	Glyphs  []Glyph

	solid       model.Solid
	annotations []model.Annotation
}

func (g *GlyphSet) matches(solid model.Solid, annotations []model.Annotation) bool {
	return g.solid == solid && slices.Equal(g.annotations, annotations)
}

func newGlyphSet(solid model.Solid, annotations []model.Annotation, opts GlyphOptions) *GlyphSet {
	set := &GlyphSet{SolidID: solid.ID, solid: solid, annotations: annotations}
	for _, a := range annotations {
		set.Glyphs = append(set.Glyphs, BuildGlyphs(a, solid, opts)...)
	}
	return set
}

// BuildGlyphs produces the markers for one annotation on its target solid.
// Unknown annotation kinds and zero forces produce nothing.
func BuildGlyphs(a model.Annotation, target model.Solid, opts GlyphOptions) []Glyph {
	face := WorldFace(target, a.FaceIndex())

	switch a := a.(type) {
	case model.Support:
		if a.Kind != model.SupportFixed {
			return nil
		}
		return supportGlyphs(a.ID, face, opts)
	case model.Load:
		switch a.Kind {
		case model.LoadForce:
			return forceGlyphs(a.ID, a.Force, face, opts)
		case model.LoadPressure:
			return pressureGlyphs(a.ID, face, opts)
		}
	}
	return nil
}

// supportGlyphs draws a downward cone with a ball at its apex, lifted off
// the face along the normal.
func supportGlyphs(id string, face FaceFrame, opts GlyphOptions) []Glyph {
	const (
		coneHeight = 0.3
		coneRadius = 0.15
		ballRadius = 0.1
	)
	anchor := face.Center.Add(face.Normal.Mul(opts.SupportOffset))
	down := geometry.UnitY.Negate()
	apex := anchor.Add(down.Mul(coneHeight / 2))

	return []Glyph{
		{
			Kind:         GlyphCone,
			AnnotationID: id,
			Origin:       anchor.Add(geometry.UnitY.Mul(coneHeight / 2)),
			Direction:    down,
			Length:       coneHeight,
			Radius:       coneRadius,
			Color:        SupportColor,
		},
		{
			Kind:         GlyphBall,
			AnnotationID: id,
			Origin:       apex,
			Radius:       ballRadius,
			Color:        SupportColor,
		},
	}
}

func forceGlyphs(id string, force geometry.Vector3, face FaceFrame, opts GlyphOptions) []Glyph {
	magnitude := force.Length()
	if magnitude < opts.ForceEpsilon {
		return nil
	}
	length := math.Min(magnitude*opts.ForceScale, opts.MaxArrowLength)
	return []Glyph{{
		Kind:         GlyphArrow,
		AnnotationID: id,
		Origin:       face.Center,
		Direction:    force.Normalize(),
		Length:       length,
		HeadLength:   length * 0.3,
		HeadWidth:    length * 0.2,
		Color:        ForceColor,
	}}
}

// pressureGlyphs lays a 3x3 grid without its center cell in the face's
// tangent plane, every arrow pointing into the solid.
func pressureGlyphs(id string, face FaceFrame, opts GlyphOptions) []Glyph {
	inward := face.Normal.Negate()
	step := opts.PressureSpacing
	glyphs := make([]Glyph, 0, 8)

	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			if i == 0 && j == 0 {
				continue
			}
			a, b := float64(i)*step, float64(j)*step
			var offset geometry.Vector3
			switch {
			case math.Abs(face.Normal.X) > 0.5:
				offset = geometry.Vector3{Y: a, Z: b}
			case math.Abs(face.Normal.Y) > 0.5:
				offset = geometry.Vector3{X: a, Z: b}
			default:
				offset = geometry.Vector3{X: a, Y: b}
			}
			glyphs = append(glyphs, Glyph{
				Kind:         GlyphArrow,
				AnnotationID: id,
				Origin:       face.Center.Add(offset),
				Direction:    inward,
				Length:       opts.PressureArrowLength,
				HeadLength:   opts.PressureArrowLength * 0.375,
				HeadWidth:    opts.PressureArrowLength * 0.25,
				Color:        PressureColor,
			})
		}
	}
	return glyphs
}
