package scene

// GlyphOptions size the load and support markers
type GlyphOptions struct {
	SupportOffset       float64 // distance of the support marker from the face
	ForceScale          float64 // arrow length per newton
	MaxArrowLength      float64 // force arrows never grow beyond this
	ForceEpsilon        float64 // forces below this magnitude draw nothing
	PressureSpacing     float64 // grid pitch of pressure arrows
	PressureArrowLength float64
}

// Options configure the scene engine
type Options struct {
	GroundHeight   float64 // y of the interaction plane
	MinCreateSize  float64 // smallest shape a creation drag can produce
	RadialSegments int     // cylinder tessellation
	SphereSegments int     // sphere tessellation in both directions
	UnitFactor     float64 // displacement unit to scene units
	Glyphs         GlyphOptions
}

// DefaultOptions returns the options the viewer ships with
func DefaultOptions() Options {
	return Options{
		GroundHeight:   0,
		MinCreateSize:  0.1,
		RadialSegments: 32,
		SphereSegments: 32,
		UnitFactor:     1000,
		Glyphs: GlyphOptions{
			SupportOffset:       0.3,
			ForceScale:          1.0 / 1000,
			MaxArrowLength:      2,
			ForceEpsilon:        0.001,
			PressureSpacing:     0.2,
			PressureArrowLength: 0.4,
		},
	}
}
